package agentrun

import "context"

// SandboxLifecycle is the client-side sandbox lifecycle surface.
type SandboxLifecycle interface {
	// CreateSandbox provisions a sandbox from a template.
	CreateSandbox(ctx context.Context, params *CreateSandboxParams) (*Sandbox, error)

	// GetSandbox returns a sandbox by id.
	GetSandbox(ctx context.Context, sandboxID string) (*Sandbox, error)

	// ListSandboxes returns sandboxes matching the filter.
	ListSandboxes(ctx context.Context, params *ListSandboxesInput) ([]*Sandbox, error)

	// DeleteSandbox removes a sandbox by id.
	DeleteSandbox(ctx context.Context, sandboxID string) error
}

// TemplateLifecycle is the client-side template lifecycle surface.
type TemplateLifecycle interface {
	// CreateTemplate registers a template.
	CreateTemplate(ctx context.Context, params *CreateTemplateParams) (*Template, error)

	// GetTemplate returns a template by name.
	GetTemplate(ctx context.Context, name string) (*Template, error)

	// ListTemplates returns templates matching the filter.
	ListTemplates(ctx context.Context, params *ListTemplatesInput) ([]*Template, error)

	// DeleteTemplate removes a template by name.
	DeleteTemplate(ctx context.Context, name string) error
}

// FileService is the data-plane filesystem surface.
type FileService interface {
	// Read reads the content of a remote file.
	Read(ctx context.Context, path string) (string, error)

	// Write writes content to a remote file.
	Write(ctx context.Context, path, content string, opts *WriteOptions) error

	// WriteFiles writes a batch of files concurrently.
	WriteFiles(ctx context.Context, entries []WriteEntry) error

	// Stat returns information about a remote file or directory.
	Stat(ctx context.Context, path string) (*EntryInfo, error)

	// Upload sends a local file to the sandbox.
	Upload(ctx context.Context, localPath, remotePath string) error

	// Download fetches a remote file to a local path.
	Download(ctx context.Context, remotePath, localPath string) (*DownloadResult, error)
}

// CodeRunner is the code-execution surface of a code interpreter.
type CodeRunner interface {
	// RunCode executes code and returns the execution result.
	RunCode(ctx context.Context, code string, params *RunCodeParams) (*Execution, error)

	// CreateContext creates an isolated execution context.
	CreateContext(ctx context.Context, params *CreateContextParams) (*ExecContext, error)

	// ListContexts returns all execution contexts.
	ListContexts(ctx context.Context) ([]*ExecContext, error)

	// RemoveContext removes an execution context.
	RemoveContext(ctx context.Context, contextID string) error
}

// Compile-time interface compliance checks.
var (
	_ SandboxLifecycle  = (*Client)(nil)
	_ TemplateLifecycle = (*Client)(nil)
	_ FileService       = (*Files)(nil)
	_ CodeRunner        = (*CodeInterpreter)(nil)
	_ sandboxWrapper    = (*CodeInterpreter)(nil)
	_ sandboxWrapper    = (*Browser)(nil)
)
