// Package retry provides the draw-until-accepted loop used by prime search and
// exponent selection.
//
// Until keeps drawing candidates until the predicate accepts one. With the zero
// Policy there is no iteration cap: termination depends only on the success
// probability of the predicate, which for prime search and coprime exponent
// selection is high enough that an endless run is a statistical curiosity, not
// a failure mode. A positive MaxAttempts turns the loop into a bounded one that
// fails with ErrExhausted.
package retry

import (
	"context"
	"errors"
	"fmt"
)

// ErrExhausted is returned when a bounded Policy runs out of attempts.
var ErrExhausted = errors.New("retry: attempts exhausted")

// Policy controls how many candidates Until may draw.
type Policy struct {
	// MaxAttempts caps the number of draws. Zero or negative means unbounded.
	MaxAttempts int
}

// Unbounded is the policy with no iteration cap.
var Unbounded = Policy{}

// Bounded returns a policy that allows at most n draws.
func Bounded(n int) Policy {
	return Policy{MaxAttempts: n}
}

// IsBounded reports whether the policy caps the number of attempts.
func (p Policy) IsBounded() bool {
	return p.MaxAttempts > 0
}

// Until calls draw until accept returns true for the drawn value and returns
// that value along with the number of attempts made. It stops early when draw
// fails, when ctx is done (checked before every draw), or when a bounded policy
// is exhausted.
func Until[T any](ctx context.Context, policy Policy, draw func() (T, error), accept func(T) bool) (T, int, error) {
	var zero T
	for attempt := 1; ; attempt++ {
		if policy.IsBounded() && attempt > policy.MaxAttempts {
			return zero, attempt - 1, fmt.Errorf("%w after %d attempts", ErrExhausted, policy.MaxAttempts)
		}
		if err := ctx.Err(); err != nil {
			return zero, attempt - 1, err
		}

		v, err := draw()
		if err != nil {
			return zero, attempt, err
		}
		if accept(v) {
			return v, attempt, nil
		}
	}
}
