package agentrun

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// dataClient is the uniform HTTP pipeline for one resource's data plane.
// It builds target URLs, layers headers, attaches the resource-scoped bearer
// token, bounds every call with a timeout and converts responses into parsed
// JSON or a taxonomy error. It never retries.
type dataClient struct {
	httpClient   *http.Client
	baseURL      string
	resourceType ResourceType
	resourceKey  string
	config       *Config
	tokens       *tokenCache
	logger       Logger
}

// newDataClient creates a dataClient scoped to one resource.
func newDataClient(httpClient *http.Client, baseURL string, resourceType ResourceType, resourceKey string, config *Config, tokens *tokenCache, logger Logger) *dataClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &dataClient{
		httpClient:   httpClient,
		baseURL:      baseURL,
		resourceType: resourceType,
		resourceKey:  resourceKey,
		config:       config,
		tokens:       tokens,
		logger:       logger,
	}
}

// requestOptions describes a single pipeline request. Exactly one of body
// (JSON-encoded) and rawBody (pre-encoded, e.g. a multipart form) may be
// set.
type requestOptions struct {
	query       url.Values
	body        any
	rawBody     io.Reader
	contentType string
	headers     map[string]string
	timeout     time.Duration
}

func (dc *dataClient) get(ctx context.Context, path string, opts *requestOptions) (json.RawMessage, error) {
	return dc.do(ctx, http.MethodGet, path, opts)
}

func (dc *dataClient) post(ctx context.Context, path string, opts *requestOptions) (json.RawMessage, error) {
	return dc.do(ctx, http.MethodPost, path, opts)
}

func (dc *dataClient) put(ctx context.Context, path string, opts *requestOptions) (json.RawMessage, error) {
	return dc.do(ctx, http.MethodPut, path, opts)
}

func (dc *dataClient) patch(ctx context.Context, path string, opts *requestOptions) (json.RawMessage, error) {
	return dc.do(ctx, http.MethodPatch, path, opts)
}

func (dc *dataClient) delete(ctx context.Context, path string, opts *requestOptions) (json.RawMessage, error) {
	return dc.do(ctx, http.MethodDelete, path, opts)
}

// do executes one request and parses the response body as JSON.
func (dc *dataClient) do(ctx context.Context, method, path string, opts *requestOptions) (json.RawMessage, error) {
	resp, body, err := dc.roundTrip(ctx, method, path, opts)
	if err != nil {
		return nil, err
	}
	return parseResponse(resp, body)
}

// roundTrip builds and executes one request, returning the response and the
// fully read body. The call is bounded by the per-call timeout (or the
// configured default); when the timeout fires the in-flight transport call
// is aborted rather than left to finish in the background.
func (dc *dataClient) roundTrip(ctx context.Context, method, path string, opts *requestOptions) (*http.Response, []byte, error) {
	if opts == nil {
		opts = &requestOptions{}
	}

	reqURL := joinURL(dc.baseURL, path)
	if len(opts.query) > 0 {
		reqURL += "?" + opts.query.Encode()
	}

	var reqBody io.Reader
	switch {
	case opts.body != nil:
		data, err := json.Marshal(opts.body)
		if err != nil {
			return nil, nil, NewClientError(0, fmt.Sprintf("failed to marshal request body: %v", err))
		}
		reqBody = bytes.NewReader(data)
	case opts.rawBody != nil:
		reqBody = opts.rawBody
	}

	timeout := opts.timeout
	if timeout == 0 {
		timeout = dc.config.requestTimeout()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, nil, NewClientError(0, fmt.Sprintf("failed to create request: %v", err))
	}
	dc.setHeaders(ctx, req, opts)

	dc.logger.Debugf("%s %s", method, reqURL)
	resp, err := dc.httpClient.Do(req)
	if err != nil {
		return nil, nil, wrapTransportError(err, timeout)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, NewClientError(0, fmt.Sprintf("failed to read response body: %v", err))
	}

	return resp, body, nil
}

// setHeaders layers request headers in order: content type and user agent
// first, then configuration-level headers, then per-call overrides, then the
// bearer token. Later layers win on key collision.
func (dc *dataClient) setHeaders(ctx context.Context, req *http.Request, opts *requestOptions) {
	if opts.rawBody != nil {
		// The content type, boundary included, comes from whoever encoded
		// the raw body; the JSON default must not leak into multipart sends.
		if opts.contentType != "" {
			req.Header.Set("Content-Type", opts.contentType)
		}
	} else {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(headerClientRequestID, uuid.New().String())

	for k, v := range dc.config.ExtraHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range opts.headers {
		req.Header.Set(k, v)
	}

	if token := dc.tokens.ensureToken(ctx, dc.resourceType, dc.resourceKey); token != "" {
		req.Header.Set(headerAccessToken, token)
	}
}

// parseResponse turns a response into parsed JSON or a taxonomy error.
//
// The body is read as text first and then JSON-parsed. An empty 2xx body
// parses to {}. A non-JSON body on a 502 carrying a "Bad Gateway" marker is
// surfaced as a 502 ClientError with that literal text, so a parse failure
// never masks the true gateway failure. Any other parse failure becomes a
// status-0 ClientError naming the parse reason and the raw status; a
// non-JSON response is never swallowed silently.
func parseResponse(resp *http.Response, body []byte) (json.RawMessage, error) {
	text := string(body)

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusBadGateway && !json.Valid(body) && strings.Contains(text, "Bad Gateway") {
			return nil, NewClientError(http.StatusBadGateway, text)
		}

		var details struct {
			Message   string `json:"message"`
			RequestID string `json:"requestId"`
		}
		_ = json.Unmarshal(body, &details)

		message := details.Message
		if message == "" {
			message = strings.TrimSpace(text)
		}
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		requestID := details.RequestID
		if requestID == "" {
			requestID = resp.Header.Get(headerRequestID)
		}
		return nil, newStatusError(resp.StatusCode, message, requestID)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return json.RawMessage("{}"), nil
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, NewClientError(0, fmt.Sprintf("failed to parse response as JSON: %v (status %d)", err, resp.StatusCode))
	}

	return json.RawMessage(body), nil
}

// wrapTransportError maps a network-level failure into the taxonomy. A
// deadline becomes a timeout ClientError; an error already typed passes
// through; everything else (DNS, connection reset, abort) is wrapped into a
// status-0 ClientError.
func wrapTransportError(err error, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewClientError(0, fmt.Sprintf("request timed out after %s", timeout))
	}
	if httpErrorOf(err) != nil {
		return err
	}
	return NewClientError(0, err.Error())
}

// envelope is the data-plane response wrapper.
type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// unwrapEnvelope decodes the standard {code, message, data} wrapper and
// surfaces any non-SUCCESS code as a domain failure, defaulting the detail
// to "Unknown error" when the service reported none.
func unwrapEnvelope(raw json.RawMessage) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, NewClientError(0, fmt.Sprintf("failed to decode response envelope: %v", err))
	}
	if env.Code != envelopeCodeSuccess {
		message := env.Message
		if message == "" {
			message = "Unknown error"
		}
		return nil, NewClientError(0, message)
	}
	return env.Data, nil
}

// joinURL joins base and path segments with single slashes, collapsing any
// repeated slashes while preserving the scheme separator.
func joinURL(base string, parts ...string) string {
	joined := base
	for _, p := range parts {
		joined += "/" + p
	}

	scheme := ""
	if i := strings.Index(joined, "://"); i >= 0 {
		scheme = joined[:i+3]
		joined = joined[i+3:]
	}
	for strings.Contains(joined, "//") {
		joined = strings.ReplaceAll(joined, "//", "/")
	}
	return scheme + joined
}
