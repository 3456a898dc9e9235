package agentrun

import "time"

const (
	// Version is the SDK version.
	Version = "0.1.0"

	// DefaultDomain is the default AgentRun domain.
	DefaultDomain = "agentify.ai"

	// DefaultRegion is the region used when none is configured.
	DefaultRegion = "us-east-1"

	// DefaultRequestTimeout is the default timeout for HTTP requests.
	DefaultRequestTimeout = 60 * time.Second

	// DefaultPollTimeout is the default budget for a WaitUntil loop.
	DefaultPollTimeout = 300 * time.Second

	// DefaultPollInterval is the default sleep between refreshes in a
	// WaitUntil loop.
	DefaultPollInterval = 5 * time.Second
)

// HTTP header constants.
const (
	headerAccessToken     = "Agentrun-Access-Token"
	headerClientRequestID = "X-Client-Request-Id"
	headerRequestID       = "X-Request-Id"
)

// userAgent identifies the SDK on every request.
const userAgent = "agentrun-go-sdk/" + Version

// Environment variables recognized by NewClient.
const (
	envControlEndpoint = "AGENTRUN_CONTROL_ENDPOINT"
	envDataEndpoint    = "AGENTRUN_DATA_ENDPOINT"
	envAccessToken     = "AGENTRUN_ACCESS_TOKEN"
	envAccountID       = "AGENTRUN_ACCOUNT_ID"
	envRegion          = "AGENTRUN_REGION"
	envTimeoutMs       = "AGENTRUN_TIMEOUT_MS"
	envDebug           = "AGENTRUN_DEBUG"
)

// ResourceType identifies the kind of resource an access token is scoped to.
type ResourceType string

// Resource types known to the access-token endpoint. Sandboxes are keyed by
// id; every other resource type is keyed by name.
const (
	ResourceTypeSandbox         ResourceType = "Sandbox"
	ResourceTypeTemplate        ResourceType = "Template"
	ResourceTypeCodeInterpreter ResourceType = "CodeInterpreter"
	ResourceTypeBrowser         ResourceType = "Browser"
)

// Sandbox lifecycle states.
const (
	SandboxStateCreating = "Creating"
	SandboxStateRunning  = "Running"
	SandboxStateReady    = "READY"
	SandboxStateFailed   = "Failed"
	SandboxStateStopped  = "Stopped"
	SandboxStateDeleting = "Deleting"
)

// Template lifecycle statuses.
const (
	TemplateStatusCreating     = "CREATING"
	TemplateStatusReady        = "READY"
	TemplateStatusCreateFailed = "CREATE_FAILED"
)

// TemplateType selects the specialized sandbox wrapper for a template.
type TemplateType string

// Template types with a dedicated wrapper.
const (
	TemplateTypeCodeInterpreter TemplateType = "CodeInterpreter"
	TemplateTypeBrowserUse      TemplateType = "BrowserUse"
)

// envelopeCodeSuccess is the success marker in the data-plane response
// envelope.
const envelopeCodeSuccess = "SUCCESS"

// maxConcurrentWrites bounds WriteFiles fan-out.
const maxConcurrentWrites = 4
