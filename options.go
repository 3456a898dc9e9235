package agentrun

import (
	"net/http"
	"time"
)

// clientOptions holds configuration collected by Option values.
type clientOptions struct {
	config     *Config
	overrides  *Config
	control    ControlClient
	httpClient *http.Client
}

// overrideConfig returns the call-site override layer, creating it lazily.
func (o *clientOptions) overrideConfig() *Config {
	if o.overrides == nil {
		o.overrides = &Config{}
	}
	return o.overrides
}

// Option configures a Client.
type Option func(*clientOptions)

// WithConfig sets the instance configuration layer. Fields left at their
// zero value fall through to the environment defaults.
func WithConfig(cfg *Config) Option {
	return func(o *clientOptions) {
		o.config = cfg
	}
}

// WithControlClient sets the control-plane client. Required.
func WithControlClient(control ControlClient) Option {
	return func(o *clientOptions) {
		o.control = control
	}
}

// WithHTTPClient sets a custom HTTP client for data-plane calls.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithAccessToken sets a static bearer token. A static token is used for
// every data-plane call and disables the per-resource token fetch.
func WithAccessToken(token string) Option {
	return func(o *clientOptions) {
		o.overrideConfig().AccessToken = token
	}
}

// WithTimeout sets the default timeout for HTTP requests.
// Defaults to 60 seconds.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		o.overrideConfig().Timeout = d
	}
}

// WithRegion sets the service region.
func WithRegion(region string) Option {
	return func(o *clientOptions) {
		o.overrideConfig().Region = region
	}
}

// WithAccountID sets the owning cloud account id.
func WithAccountID(accountID string) Option {
	return func(o *clientOptions) {
		o.overrideConfig().AccountID = accountID
	}
}

// WithExtraHeaders attaches headers to every data-plane request.
func WithExtraHeaders(headers map[string]string) Option {
	return func(o *clientOptions) {
		cfg := o.overrideConfig()
		if cfg.ExtraHeaders == nil {
			cfg.ExtraHeaders = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			cfg.ExtraHeaders[k] = v
		}
	}
}

// WithLogger sets the diagnostic logger. Defaults to a logger gated by the
// AGENTRUN_DEBUG environment variable.
func WithLogger(logger Logger) Option {
	return func(o *clientOptions) {
		o.overrideConfig().Logger = logger
	}
}
