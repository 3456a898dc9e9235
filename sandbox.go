package agentrun

import (
	"context"
	"encoding/json"
	"fmt"
)

// Sandbox is a mutable projection of one remote sandbox. Create, Get and
// the WaitUntil* helpers keep it in sync with the control plane; Refresh
// mutates the receiver in place.
//
// The sandbox allows you to:
//   - Wait for provisioning to finish
//   - Check data-plane health
//   - Read, write, upload and download files
//   - Open the specialized view for its template type
type Sandbox struct {
	// SandboxID is the unique identifier for this sandbox.
	SandboxID string

	// Name is the caller-assigned sandbox name.
	Name string

	// TemplateName names the template this sandbox was created from.
	TemplateName string

	// TemplateType selects the specialized wrapper for this sandbox.
	TemplateType TemplateType

	// Status is the lifecycle state reported by the control plane.
	Status string

	// StatusReason explains the current status, when the service reports
	// one.
	StatusReason string

	// Endpoint is the sandbox's data-plane base URL.
	Endpoint string

	// CreatedAt and UpdatedAt are service-reported timestamps.
	CreatedAt string
	UpdatedAt string

	// Files provides filesystem operations for the sandbox.
	Files *Files

	client *Client
	data   *dataClient
}

// CreateSandboxParams describes a sandbox to create.
type CreateSandboxParams struct {
	Name         string
	TemplateName string
	EnvVars      map[string]string
	Labels       map[string]string
}

// CreateSandbox provisions a sandbox and returns its initial snapshot. The
// returned sandbox is usually still provisioning; call WaitUntilRunning to
// block until it is usable.
//
// Example:
//
//	sandbox, err := client.CreateSandbox(ctx, &agentrun.CreateSandboxParams{
//	    Name:         "demo",
//	    TemplateName: "code-interpreter",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sandbox, err = sandbox.WaitUntilRunning(ctx, nil)
func (c *Client) CreateSandbox(ctx context.Context, params *CreateSandboxParams) (*Sandbox, error) {
	if params == nil || params.TemplateName == "" {
		return nil, fmt.Errorf("%w: template name is required", ErrInvalidArgument)
	}

	snap, err := c.control.CreateSandbox(ctx, &CreateSandboxInput{
		Name:         params.Name,
		TemplateName: params.TemplateName,
		EnvVars:      params.EnvVars,
		Labels:       params.Labels,
	})
	if err != nil {
		return nil, toResourceError(err, ResourceTypeSandbox, params.Name)
	}

	return newSandboxFromSnapshot(c, snap), nil
}

// CreateSandboxFromTemplate is the legacy positional form of CreateSandbox.
//
// Deprecated: use CreateSandbox with CreateSandboxParams.
func (c *Client) CreateSandboxFromTemplate(ctx context.Context, name, templateName string) (*Sandbox, error) {
	c.logger.Debugf("deprecated: CreateSandboxFromTemplate is superseded by CreateSandbox (name=%q, template=%q)", name, templateName)
	return c.CreateSandbox(ctx, &CreateSandboxParams{Name: name, TemplateName: templateName})
}

// GetSandbox returns the sandbox with the given id.
func (c *Client) GetSandbox(ctx context.Context, sandboxID string) (*Sandbox, error) {
	if sandboxID == "" {
		return nil, fmt.Errorf("%w: sandbox id is required", ErrInvalidArgument)
	}

	snap, err := c.control.GetSandbox(ctx, sandboxID)
	if err != nil {
		return nil, toResourceError(err, ResourceTypeSandbox, sandboxID)
	}

	return newSandboxFromSnapshot(c, snap), nil
}

// ListSandboxes returns the sandboxes matching params. A nil params lists
// everything.
func (c *Client) ListSandboxes(ctx context.Context, params *ListSandboxesInput) ([]*Sandbox, error) {
	if params == nil {
		params = &ListSandboxesInput{}
	}

	snaps, err := c.control.ListSandboxes(ctx, params)
	if err != nil {
		return nil, err
	}

	sandboxes := make([]*Sandbox, len(snaps))
	for i, snap := range snaps {
		sandboxes[i] = newSandboxFromSnapshot(c, snap)
	}
	return sandboxes, nil
}

// DeleteSandbox removes the sandbox with the given id.
func (c *Client) DeleteSandbox(ctx context.Context, sandboxID string) error {
	if sandboxID == "" {
		return fmt.Errorf("%w: sandbox id is required", ErrInvalidArgument)
	}
	if err := c.control.DeleteSandbox(ctx, sandboxID); err != nil {
		return toResourceError(err, ResourceTypeSandbox, sandboxID)
	}
	return nil
}

// newSandboxFromSnapshot builds a Sandbox and its data-plane pipeline from
// a control-plane snapshot.
func newSandboxFromSnapshot(c *Client, snap *SandboxSnapshot) *Sandbox {
	s := &Sandbox{client: c}
	s.applySnapshot(snap)
	s.data = c.dataClientFor(ResourceTypeSandbox, s.SandboxID, s.Endpoint)
	s.Files = newFiles(s.data)
	return s
}

// applySnapshot copies snapshot fields onto the receiver in place.
func (s *Sandbox) applySnapshot(snap *SandboxSnapshot) {
	s.SandboxID = snap.SandboxID
	s.Name = snap.Name
	s.TemplateName = snap.TemplateName
	s.TemplateType = snap.TemplateType
	s.Status = snap.Status
	s.StatusReason = snap.StatusReason
	s.Endpoint = snap.Endpoint
	s.CreatedAt = snap.CreatedAt
	s.UpdatedAt = snap.UpdatedAt
}

// Refresh re-fetches the sandbox snapshot and mutates the receiver in
// place.
func (s *Sandbox) Refresh(ctx context.Context) error {
	snap, err := s.client.control.GetSandbox(ctx, s.SandboxID)
	if err != nil {
		return toResourceError(err, ResourceTypeSandbox, s.SandboxID)
	}
	s.applySnapshot(snap)
	return nil
}

// WaitUntil polls Refresh until the sandbox status lands in successStates
// or failureStates, or the PollOptions budget runs out. The receiver is
// refreshed in place and returned on success.
func (s *Sandbox) WaitUntil(ctx context.Context, successStates, failureStates []string, opts *PollOptions) (*Sandbox, error) {
	err := waitForState(ctx, opts, func(ctx context.Context) (string, string, error) {
		if err := s.Refresh(ctx); err != nil {
			return "", "", err
		}
		return s.Status, s.StatusReason, nil
	}, successStates, failureStates)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// WaitUntilRunning waits for the sandbox to become usable. Running and
// READY are both accepted success states; Failed is the terminal failure
// state.
func (s *Sandbox) WaitUntilRunning(ctx context.Context, opts *PollOptions) (*Sandbox, error) {
	return s.WaitUntil(ctx,
		[]string{SandboxStateRunning, SandboxStateReady},
		[]string{SandboxStateFailed},
		opts)
}

// Delete removes the sandbox via the control plane.
func (s *Sandbox) Delete(ctx context.Context) error {
	return s.client.DeleteSandbox(ctx, s.SandboxID)
}

// HealthStatus is the data-plane health report.
type HealthStatus struct {
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Healthy reports whether the data plane declared itself ok.
func (h *HealthStatus) Healthy() bool {
	return h.Status == "ok"
}

// Health calls the sandbox's data-plane health endpoint. The health
// response is not wrapped in the standard envelope.
func (s *Sandbox) Health(ctx context.Context) (*HealthStatus, error) {
	raw, err := s.data.get(ctx, "/health", nil)
	if err != nil {
		return nil, err
	}

	var health HealthStatus
	if err := json.Unmarshal(raw, &health); err != nil {
		return nil, NewClientError(0, fmt.Sprintf("failed to parse health response: %v", err))
	}
	return &health, nil
}

// WaitUntilHealthy polls the health endpoint until it reports ok, with the
// same timing semantics as WaitUntil.
func (s *Sandbox) WaitUntilHealthy(ctx context.Context, opts *PollOptions) error {
	return waitForState(ctx, opts, func(ctx context.Context) (string, string, error) {
		health, err := s.Health(ctx)
		if err != nil {
			return "", "", err
		}
		return health.Status, health.Message, nil
	}, []string{"ok"}, nil)
}

// sandboxWrapper is a specialized view over a sandbox, selected by template
// type.
type sandboxWrapper interface {
	// Unwrap returns the underlying sandbox.
	Unwrap() *Sandbox
}

// wrapperConstructors maps every known template type to its wrapper
// constructor. The table is built once; all variants are known at compile
// time, so no dispatch happens through deferred imports or reflection.
var wrapperConstructors = map[TemplateType]func(*Sandbox) sandboxWrapper{
	TemplateTypeCodeInterpreter: func(s *Sandbox) sandboxWrapper { return &CodeInterpreter{Sandbox: s} },
	TemplateTypeBrowserUse:      func(s *Sandbox) sandboxWrapper { return &Browser{Sandbox: s} },
}

// wrapSandbox builds the specialized wrapper for the sandbox's template
// type.
func wrapSandbox(s *Sandbox) (sandboxWrapper, error) {
	ctor, ok := wrapperConstructors[s.TemplateType]
	if !ok {
		return nil, fmt.Errorf("%w: no wrapper for template type %q", ErrInvalidArgument, s.TemplateType)
	}
	return ctor(s), nil
}

// AsCodeInterpreter returns the code-interpreter view of the sandbox.
func (s *Sandbox) AsCodeInterpreter() (*CodeInterpreter, error) {
	w, err := wrapSandbox(s)
	if err != nil {
		return nil, err
	}
	ci, ok := w.(*CodeInterpreter)
	if !ok {
		return nil, fmt.Errorf("%w: sandbox template type is %q, not %q", ErrInvalidArgument, s.TemplateType, TemplateTypeCodeInterpreter)
	}
	return ci, nil
}

// AsBrowser returns the browser view of the sandbox.
func (s *Sandbox) AsBrowser() (*Browser, error) {
	w, err := wrapSandbox(s)
	if err != nil {
		return nil, err
	}
	b, ok := w.(*Browser)
	if !ok {
		return nil, fmt.Errorf("%w: sandbox template type is %q, not %q", ErrInvalidArgument, s.TemplateType, TemplateTypeBrowserUse)
	}
	return b, nil
}
