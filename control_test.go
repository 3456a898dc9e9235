package agentrun

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

// fakeControlClient is a scriptable ControlClient for tests. Unset methods
// fail the call so tests only exercise the paths they script.
type fakeControlClient struct {
	createSandboxFn  func(ctx context.Context, input *CreateSandboxInput) (*SandboxSnapshot, error)
	getSandboxFn     func(ctx context.Context, sandboxID string) (*SandboxSnapshot, error)
	listSandboxesFn  func(ctx context.Context, input *ListSandboxesInput) ([]*SandboxSnapshot, error)
	deleteSandboxFn  func(ctx context.Context, sandboxID string) error
	createTemplateFn func(ctx context.Context, input *CreateTemplateInput) (*TemplateSnapshot, error)
	getTemplateFn    func(ctx context.Context, name string) (*TemplateSnapshot, error)
	listTemplatesFn  func(ctx context.Context, input *ListTemplatesInput) ([]*TemplateSnapshot, error)
	deleteTemplateFn func(ctx context.Context, name string) error
	getAccessTokenFn func(ctx context.Context, input *AccessTokenInput) (*AccessTokenOutput, error)
}

func (f *fakeControlClient) CreateSandbox(ctx context.Context, input *CreateSandboxInput) (*SandboxSnapshot, error) {
	if f.createSandboxFn == nil {
		return nil, NewClientError(0, "unexpected CreateSandbox call")
	}
	return f.createSandboxFn(ctx, input)
}

func (f *fakeControlClient) GetSandbox(ctx context.Context, sandboxID string) (*SandboxSnapshot, error) {
	if f.getSandboxFn == nil {
		return nil, NewClientError(0, "unexpected GetSandbox call")
	}
	return f.getSandboxFn(ctx, sandboxID)
}

func (f *fakeControlClient) ListSandboxes(ctx context.Context, input *ListSandboxesInput) ([]*SandboxSnapshot, error) {
	if f.listSandboxesFn == nil {
		return nil, NewClientError(0, "unexpected ListSandboxes call")
	}
	return f.listSandboxesFn(ctx, input)
}

func (f *fakeControlClient) DeleteSandbox(ctx context.Context, sandboxID string) error {
	if f.deleteSandboxFn == nil {
		return NewClientError(0, "unexpected DeleteSandbox call")
	}
	return f.deleteSandboxFn(ctx, sandboxID)
}

func (f *fakeControlClient) CreateTemplate(ctx context.Context, input *CreateTemplateInput) (*TemplateSnapshot, error) {
	if f.createTemplateFn == nil {
		return nil, NewClientError(0, "unexpected CreateTemplate call")
	}
	return f.createTemplateFn(ctx, input)
}

func (f *fakeControlClient) GetTemplate(ctx context.Context, name string) (*TemplateSnapshot, error) {
	if f.getTemplateFn == nil {
		return nil, NewClientError(0, "unexpected GetTemplate call")
	}
	return f.getTemplateFn(ctx, name)
}

func (f *fakeControlClient) ListTemplates(ctx context.Context, input *ListTemplatesInput) ([]*TemplateSnapshot, error) {
	if f.listTemplatesFn == nil {
		return nil, NewClientError(0, "unexpected ListTemplates call")
	}
	return f.listTemplatesFn(ctx, input)
}

func (f *fakeControlClient) DeleteTemplate(ctx context.Context, name string) error {
	if f.deleteTemplateFn == nil {
		return NewClientError(0, "unexpected DeleteTemplate call")
	}
	return f.deleteTemplateFn(ctx, name)
}

func (f *fakeControlClient) GetAccessToken(ctx context.Context, input *AccessTokenInput) (*AccessTokenOutput, error) {
	if f.getAccessTokenFn == nil {
		return &AccessTokenOutput{Token: "fake-token"}, nil
	}
	return f.getAccessTokenFn(ctx, input)
}

// capturingLogger records formatted debug lines for assertions.
type capturingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *capturingLogger) Debugf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *capturingLogger) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// newTestClient builds a Client over the given control client with test
// credentials.
func newTestClient(t *testing.T, control ControlClient, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{
		WithControlClient(control),
		WithAccountID("acct-test"),
		WithRegion("us-east-1"),
	}, opts...)
	client, err := NewClient(opts...)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

// testSandbox builds a sandbox bound to the given data-plane endpoint
// without going through the control plane.
func testSandbox(c *Client, endpoint string, templateType TemplateType) *Sandbox {
	return newSandboxFromSnapshot(c, &SandboxSnapshot{
		SandboxID:    "sbx-1",
		Name:         "test",
		TemplateName: "tpl-test",
		TemplateType: templateType,
		Status:       SandboxStateRunning,
		Endpoint:     endpoint,
	})
}
