package agentrun

import "context"

// ControlClient is the control-plane surface the SDK consumes. The concrete
// implementation signs requests with account credentials and performs the
// lifecycle CRUD; the SDK only sees typed inputs, typed snapshots and
// transport errors. Implementations report failures as *ClientError or
// *ServerError where an HTTP status is known.
type ControlClient interface {
	// CreateSandbox provisions a new sandbox.
	CreateSandbox(ctx context.Context, input *CreateSandboxInput) (*SandboxSnapshot, error)

	// GetSandbox returns the current snapshot of a sandbox.
	GetSandbox(ctx context.Context, sandboxID string) (*SandboxSnapshot, error)

	// ListSandboxes returns snapshots matching the input filter.
	ListSandboxes(ctx context.Context, input *ListSandboxesInput) ([]*SandboxSnapshot, error)

	// DeleteSandbox removes a sandbox.
	DeleteSandbox(ctx context.Context, sandboxID string) error

	// CreateTemplate provisions a new template.
	CreateTemplate(ctx context.Context, input *CreateTemplateInput) (*TemplateSnapshot, error)

	// GetTemplate returns the current snapshot of a template.
	GetTemplate(ctx context.Context, name string) (*TemplateSnapshot, error)

	// ListTemplates returns snapshots matching the input filter.
	ListTemplates(ctx context.Context, input *ListTemplatesInput) ([]*TemplateSnapshot, error)

	// DeleteTemplate removes a template.
	DeleteTemplate(ctx context.Context, name string) error

	// GetAccessToken issues a bearer token scoped to one resource.
	GetAccessToken(ctx context.Context, input *AccessTokenInput) (*AccessTokenOutput, error)
}

// AccessTokenInput identifies the resource a token is requested for.
// Sandboxes are addressed by ResourceID; every other resource type by
// ResourceName.
type AccessTokenInput struct {
	ResourceType ResourceType
	ResourceID   string
	ResourceName string
}

// AccessTokenOutput carries the issued bearer token.
type AccessTokenOutput struct {
	Token string
}

// CreateSandboxInput is the typed control-plane request for CreateSandbox.
type CreateSandboxInput struct {
	Name         string
	TemplateName string
	EnvVars      map[string]string
	Labels       map[string]string
}

// ListSandboxesInput filters ListSandboxes.
type ListSandboxesInput struct {
	// TemplateName restricts results to sandboxes of one template.
	TemplateName string
}

// CreateTemplateInput is the typed control-plane request for CreateTemplate.
type CreateTemplateInput struct {
	Name         string
	TemplateType TemplateType
	CPU          float64
	MemoryMB     int
	Image        string
}

// ListTemplatesInput filters ListTemplates.
type ListTemplatesInput struct {
	// TemplateType restricts results to one template type.
	TemplateType TemplateType
}

// SandboxSnapshot is the control plane's view of one sandbox.
type SandboxSnapshot struct {
	SandboxID    string
	Name         string
	TemplateName string
	TemplateType TemplateType
	Status       string
	StatusReason string
	Endpoint     string
	CreatedAt    string
	UpdatedAt    string
}

// TemplateSnapshot is the control plane's view of one template.
type TemplateSnapshot struct {
	Name         string
	TemplateType TemplateType
	Status       string
	StatusReason string
	CPU          float64
	MemoryMB     int
	CreatedAt    string
	UpdatedAt    string
}
