package agentrun

import (
	"context"
	"encoding/json"
	"fmt"
)

// Browser is the browser-automation view of a sandbox created from a
// browser-use template. Automation itself happens over the Chrome DevTools
// Protocol; the SDK only resolves the connection endpoint and session
// metadata.
type Browser struct {
	*Sandbox
}

// Unwrap returns the underlying sandbox.
func (b *Browser) Unwrap() *Sandbox { return b.Sandbox }

// BrowserSession describes the live browser session inside the sandbox.
type BrowserSession struct {
	SessionID   string `json:"sessionId"`
	CDPEndpoint string `json:"cdpEndpoint"`
	UserAgent   string `json:"userAgent,omitempty"`
}

// Session returns the current browser session metadata.
func (b *Browser) Session(ctx context.Context) (*BrowserSession, error) {
	raw, err := b.data.get(ctx, "/browser/session", nil)
	if err != nil {
		return nil, err
	}
	data, err := unwrapEnvelope(raw)
	if err != nil {
		return nil, err
	}

	var session BrowserSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, NewClientError(0, fmt.Sprintf("failed to parse session response: %v", err))
	}
	return &session, nil
}

// CDPEndpoint returns the Chrome DevTools Protocol endpoint for the
// session.
func (b *Browser) CDPEndpoint(ctx context.Context) (string, error) {
	session, err := b.Session(ctx)
	if err != nil {
		return "", err
	}
	if session.CDPEndpoint == "" {
		return "", NewClientError(0, "browser session reported no CDP endpoint")
	}
	return session.CDPEndpoint, nil
}
