package agentrun

import (
	"fmt"
	"net/http"
)

// Client is the entry point to the SDK. It owns the effective
// configuration, the control-plane client, the resource-scoped token cache
// and the logger. A Client is safe for concurrent use.
//
// Use NewClient to create a Client instance.
type Client struct {
	config     *Config
	control    ControlClient
	httpClient *http.Client
	logger     Logger
	tokens     *tokenCache
}

// NewClient creates a new Client.
//
// Configuration is resolved by merging layers per field: environment
// defaults first, then the instance configuration passed via WithConfig,
// then the remaining options. A zero value in a later layer never erases a
// value from an earlier one.
//
// A ControlClient is required; it is the external collaborator that signs
// and executes control-plane calls.
//
// Example:
//
//	client, err := agentrun.NewClient(
//	    agentrun.WithControlClient(control),
//	    agentrun.WithConfig(&agentrun.Config{Region: "eu-west-1"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewClient(opts ...Option) (*Client, error) {
	o := &clientOptions{}
	for _, opt := range opts {
		opt(o)
	}

	cfg := mergeConfigs(envConfig(), o.config, o.overrides)

	logger := cfg.Logger
	if logger == nil {
		logger = newLoggerFromEnv()
		cfg.Logger = logger
	}

	if o.control == nil {
		return nil, fmt.Errorf("%w: a control client is required (use WithControlClient)", ErrInvalidArgument)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		config:     cfg,
		control:    o.control,
		httpClient: httpClient,
		logger:     logger,
		tokens:     newTokenCache(o.control, cfg.AccessToken, logger),
	}, nil
}

// Config returns a copy of the client's effective configuration.
func (c *Client) Config() Config {
	return *c.config
}

// ControlEndpoint returns the resolved control-plane endpoint, deriving the
// regional default when none is configured.
func (c *Client) ControlEndpoint() string {
	return c.config.controlEndpoint()
}

// dataClientFor builds the HTTP pipeline for one resource's data plane.
// The configured data endpoint, when set, overrides the endpoint reported
// in the resource snapshot.
func (c *Client) dataClientFor(resourceType ResourceType, resourceKey, endpoint string) *dataClient {
	if c.config.DataEndpoint != "" {
		endpoint = c.config.DataEndpoint
	}
	return newDataClient(c.httpClient, endpoint, resourceType, resourceKey, c.config, c.tokens, c.logger)
}
