package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/go-github/v62/github"
)

const (
	maxAttempts = 3
	// Backoff grows linearly: 1s before the second attempt, 2s before the third.
	backoffUnit = time.Second
)

// RateLimitedError means the remote quota is exhausted. It is surfaced
// immediately without further retries, since the quota will not replenish
// within the bounded retry window.
type RateLimitedError struct {
	Reset time.Time
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit exceeded, resets at %s", e.Reset.Format(time.RFC1123))
}

// HTTPStatusError is a non-2xx response that is not a rate limit.
type HTTPStatusError struct {
	StatusCode int
	Err        error
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("GitHub API error: status %d: %v", e.StatusCode, e.Err)
}

func (e *HTTPStatusError) Unwrap() error { return e.Err }

// TransportError is a network-level failure before any HTTP status was read.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// classify maps a go-github call result onto the gateway error taxonomy.
func classify(resp *github.Response, err error) error {
	if err == nil {
		return nil
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &RateLimitedError{Reset: rateErr.Rate.Reset.Time}
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		reset := time.Now()
		if abuseErr.RetryAfter != nil {
			reset = reset.Add(*abuseErr.RetryAfter)
		}
		return &RateLimitedError{Reset: reset}
	}

	// A 403 carrying a reset header is a rate limit even when the remaining
	// count was not zeroed out in the same response.
	if resp != nil && resp.StatusCode == http.StatusForbidden {
		if v := resp.Header.Get("X-RateLimit-Reset"); v != "" {
			var reset time.Time
			if sec, perr := strconv.ParseInt(v, 10, 64); perr == nil {
				reset = time.Unix(sec, 0)
			}
			return &RateLimitedError{Reset: reset}
		}
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return &HTTPStatusError{StatusCode: ghErr.Response.StatusCode, Err: err}
	}
	if resp != nil && (resp.StatusCode < http.StatusOK || resp.StatusCode > 299) {
		return &HTTPStatusError{StatusCode: resp.StatusCode, Err: err}
	}
	return &TransportError{Err: err}
}

// withRetry runs fn up to maxAttempts times. Rate limits fail fast; other
// failures are retried on a linear backoff schedule (1s, 2s).
func (g *GitHubGateway) withRetry(ctx context.Context, op string, fn func() (*github.Response, error)) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := fn()
		lastErr = classify(resp, err)
		if lastErr == nil {
			return nil
		}

		var rl *RateLimitedError
		if errors.As(lastErr, &rl) {
			return fmt.Errorf("%s: %w", op, lastErr)
		}
		if attempt == maxAttempts {
			break
		}

		g.logger.Printf("  %s failed (attempt %d/%d), retrying: %v", op, attempt, maxAttempts, lastErr)
		if err := sleep(ctx, time.Duration(attempt)*g.backoff); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return fmt.Errorf("%s: %w", op, lastErr)
}

// sleep waits for d unless the context is cancelled first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
