package agentrun

import (
	"context"
	"fmt"
	"time"
)

// PollOptions configures a WaitUntil loop. A nil *PollOptions uses the
// defaults throughout.
type PollOptions struct {
	// Timeout bounds the whole wait. Defaults to DefaultPollTimeout.
	Timeout time.Duration

	// Interval is the sleep between refreshes. Defaults to
	// DefaultPollInterval.
	Interval time.Duration

	// PreCheck, when set, runs after every refresh as an observability
	// hook. The refreshed snapshot is visible through the waited resource,
	// which is mutated in place. PreCheck must not influence the loop.
	PreCheck func()
}

func (o *PollOptions) timeout() time.Duration {
	if o == nil || o.Timeout == 0 {
		return DefaultPollTimeout
	}
	return o.Timeout
}

func (o *PollOptions) interval() time.Duration {
	if o == nil || o.Interval == 0 {
		return DefaultPollInterval
	}
	return o.Interval
}

// waitForState repeatedly refreshes a resource until its observed state
// lands in successStates or failureStates, or the time budget runs out.
//
// The success check runs before any sleep, so a resource already in a
// success state returns without waiting. A failure state raises a domain
// error carrying the state reason. Exhausting the budget raises a timeout
// error naming it. The two named state sets are kept separate because
// different resource kinds encode readiness differently.
func waitForState(
	ctx context.Context,
	opts *PollOptions,
	refresh func(context.Context) (state, reason string, err error),
	successStates, failureStates []string,
) error {
	timeout := opts.timeout()
	interval := opts.interval()
	start := time.Now()

	for time.Since(start) < timeout {
		state, reason, err := refresh(ctx)
		if err != nil {
			return err
		}

		if opts != nil && opts.PreCheck != nil {
			opts.PreCheck()
		}

		if containsState(successStates, state) {
			return nil
		}
		if containsState(failureStates, state) {
			if reason == "" {
				reason = "no reason reported"
			}
			return NewClientError(0, fmt.Sprintf("resource entered failure state %s: %s", state, reason))
		}

		select {
		case <-ctx.Done():
			return wrapTransportError(ctx.Err(), timeout)
		case <-time.After(interval):
		}
	}

	return NewClientError(0, fmt.Sprintf("timed out after %s waiting for states %v", timeout, successStates))
}

func containsState(states []string, state string) bool {
	for _, s := range states {
		if s == state {
			return true
		}
	}
	return false
}
