// Package fallback implements ordered attempt chains with graceful degradation.
//
// Both the documentation selector and the speech chain are built from the
// same combinator: an ordered list of (tag, attempt) tiers where the first
// success wins and every tier failure means "advance to the next tier".
// Adding or reordering a tier is a data change, not new control flow.
package fallback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrUnavailable marks a tier whose backing dependency is not installed,
// not configured, or not loaded. Chains treat it exactly like a runtime
// failure of that tier.
var ErrUnavailable = errors.New("backend unavailable")

// Unavailable wraps err (or a plain reason) as an ErrUnavailable.
func Unavailable(reason string) error {
	return fmt.Errorf("%w: %s", ErrUnavailable, reason)
}

// IsTimeout reports whether err is a deadline expiry from a bounded
// backend call.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// Tier is one candidate backend in a chain, ranked by position.
type Tier[M ~string, T any] struct {
	// Tag identifies the tier in results and logs.
	Tag M

	// Attempt runs the tier. Any error advances the chain.
	Attempt func(ctx context.Context) (T, error)
}

// Outcome is the result of running a chain.
type Outcome[M ~string, T any] struct {
	// Value is the first successful tier's result.
	Value T

	// Tag identifies the tier that succeeded.
	Tag M

	// Note summarizes the tiers that were skipped or failed before the
	// winning one. Empty when the first tier succeeded.
	Note string
}

// First runs tiers in order and returns the first success.
//
// An error is returned only when every tier fails. Chains are expected to
// end with a tier that has no external dependencies, so a non-nil error
// here indicates a programmer or environment fault, not a degraded backend.
func First[M ~string, T any](ctx context.Context, name string, tiers []Tier[M, T]) (Outcome[M, T], error) {
	var failures []string

	for _, tier := range tiers {
		v, err := tier.Attempt(ctx)
		if err == nil {
			out := Outcome[M, T]{Value: v, Tag: tier.Tag}
			if len(failures) > 0 {
				out.Note = strings.Join(failures, "; ")
				slog.Info("chain degraded", "chain", name, "used", string(tier.Tag), "skipped", len(failures))
			}
			return out, nil
		}

		switch {
		case errors.Is(err, ErrUnavailable):
			slog.Debug("tier unavailable", "chain", name, "tier", string(tier.Tag), "error", err)
			failures = append(failures, fmt.Sprintf("%s unavailable", tier.Tag))
		case IsTimeout(err):
			slog.Warn("tier timed out", "chain", name, "tier", string(tier.Tag), "error", err)
			failures = append(failures, fmt.Sprintf("%s timed out", tier.Tag))
		default:
			slog.Warn("tier failed", "chain", name, "tier", string(tier.Tag), "error", err)
			failures = append(failures, fmt.Sprintf("%s failed: %v", tier.Tag, err))
		}
	}

	var zero Outcome[M, T]
	return zero, fmt.Errorf("%s chain exhausted: %s", name, strings.Join(failures, "; "))
}
