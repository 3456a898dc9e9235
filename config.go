package agentrun

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds one layer of client configuration. Layers are merged per
// field in NewClient: call-site options win over instance configuration,
// which wins over environment defaults.
type Config struct {
	// ControlEndpoint is the control-plane base URL.
	ControlEndpoint string

	// DataEndpoint overrides the per-resource data-plane base URL. When
	// empty, the endpoint from the resource snapshot is used.
	DataEndpoint string

	// Timeout bounds each HTTP request. Zero means DefaultRequestTimeout.
	Timeout time.Duration

	// AccessToken is a static bearer token. When set, it is used for every
	// data-plane call and the per-resource token fetch is skipped.
	AccessToken string

	// ExtraHeaders are attached to every data-plane request, after the
	// defaults and before per-call overrides.
	ExtraHeaders map[string]string

	// AccountID identifies the owning cloud account.
	AccountID string

	// Region selects the service region.
	Region string

	// Logger receives diagnostic output. Defaults to the env-gated logger.
	Logger Logger
}

// mergeConfigs merges configuration layers into one effective configuration.
// Later layers win per field; a zero value in a later layer never erases a
// value set by an earlier layer.
func mergeConfigs(layers ...*Config) *Config {
	merged := &Config{}
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		if layer.ControlEndpoint != "" {
			merged.ControlEndpoint = layer.ControlEndpoint
		}
		if layer.DataEndpoint != "" {
			merged.DataEndpoint = layer.DataEndpoint
		}
		if layer.Timeout != 0 {
			merged.Timeout = layer.Timeout
		}
		if layer.AccessToken != "" {
			merged.AccessToken = layer.AccessToken
		}
		if len(layer.ExtraHeaders) > 0 {
			if merged.ExtraHeaders == nil {
				merged.ExtraHeaders = make(map[string]string, len(layer.ExtraHeaders))
			}
			for k, v := range layer.ExtraHeaders {
				merged.ExtraHeaders[k] = v
			}
		}
		if layer.AccountID != "" {
			merged.AccountID = layer.AccountID
		}
		if layer.Region != "" {
			merged.Region = layer.Region
		}
		if layer.Logger != nil {
			merged.Logger = layer.Logger
		}
	}
	return merged
}

// envConfig builds the environment-default configuration layer.
func envConfig() *Config {
	cfg := &Config{
		ControlEndpoint: os.Getenv(envControlEndpoint),
		DataEndpoint:    os.Getenv(envDataEndpoint),
		AccessToken:     os.Getenv(envAccessToken),
		AccountID:       os.Getenv(envAccountID),
		Region:          os.Getenv(envRegion),
	}
	if raw := os.Getenv(envTimeoutMs); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			cfg.Timeout = time.Duration(ms) * time.Millisecond
		}
	}
	return cfg
}

// requestTimeout returns the effective per-request timeout.
func (c *Config) requestTimeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultRequestTimeout
}

// RequireAccountID returns the account id, or a configuration error when it
// resolves empty. An explicitly empty override is rejected here, at the
// point of use, not at merge time. Control-client implementations call this
// when signing requests.
func (c *Config) RequireAccountID() (string, error) {
	if c.AccountID == "" {
		return "", NewClientError(0, "account id is not configured")
	}
	return c.AccountID, nil
}

// RequireRegion returns the region, or a configuration error when it
// resolves empty.
func (c *Config) RequireRegion() (string, error) {
	if c.Region == "" {
		return "", NewClientError(0, "region is not configured")
	}
	return c.Region, nil
}

// controlEndpoint returns the control-plane endpoint, deriving the regional
// default when none is configured.
func (c *Config) controlEndpoint() string {
	if c.ControlEndpoint != "" {
		return c.ControlEndpoint
	}
	region := c.Region
	if region == "" {
		region = DefaultRegion
	}
	return fmt.Sprintf("https://agentrun.%s.%s", region, DefaultDomain)
}
