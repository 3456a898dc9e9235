package agentrun

import (
	"context"
	"sync"
)

// tokenCache obtains and caches data-plane access tokens, keyed by the
// resource they are scoped to (sandbox id or template/resource name).
// Entries live as long as the owning client and are never proactively
// expired: a token the service no longer accepts surfaces as a domain error
// on the next call instead of being silently refetched, so authorization
// misconfiguration stays visible.
type tokenCache struct {
	control ControlClient
	static  string
	logger  Logger

	mu     sync.RWMutex
	tokens map[string]string
}

// newTokenCache creates a tokenCache. A non-empty static token always wins
// and is never cached under a resource key.
func newTokenCache(control ControlClient, static string, logger Logger) *tokenCache {
	return &tokenCache{
		control: control,
		static:  static,
		logger:  logger,
		tokens:  make(map[string]string),
	}
}

// ensureToken returns the bearer token for resourceKey, fetching and caching
// it on first use. A fetch failure is logged and reported as an empty token:
// the data-plane call proceeds without a bearer header and fails with
// whatever status the service returns, so unauthenticated and
// misauthenticated requests travel the same error path.
//
// Concurrent callers missing the same key may each fetch once; the duplicate
// fetch is benign and the last write wins.
func (tc *tokenCache) ensureToken(ctx context.Context, resourceType ResourceType, resourceKey string) string {
	if tc.static != "" {
		return tc.static
	}
	if resourceKey == "" {
		return ""
	}

	tc.mu.RLock()
	token, ok := tc.tokens[resourceKey]
	tc.mu.RUnlock()
	if ok {
		return token
	}

	input := &AccessTokenInput{ResourceType: resourceType}
	if resourceType == ResourceTypeSandbox {
		input.ResourceID = resourceKey
	} else {
		input.ResourceName = resourceKey
	}

	out, err := tc.control.GetAccessToken(ctx, input)
	if err != nil {
		tc.logger.Debugf("access token fetch for %s %q failed: %v", resourceType, resourceKey, err)
		return ""
	}
	if out == nil || out.Token == "" {
		tc.logger.Debugf("access token fetch for %s %q returned no token", resourceType, resourceKey)
		return ""
	}

	tc.mu.Lock()
	tc.tokens[resourceKey] = out.Token
	tc.mu.Unlock()

	return out.Token
}
