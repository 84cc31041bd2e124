package sparseladder

import "github.com/pkg/errors"

// ErrRungTimeout is returned by Phase 1 initialization when no feasible
// cap vertex could be sampled for a rung within its per-rung timeout.
var ErrRungTimeout = errors.New("sparseladder: rung failed to sample a feasible orientation within timeout")

// NewRungTimeoutErr wraps ErrRungTimeout with the failing rung's index.
func NewRungTimeoutErr(rungID int) error {
	return errors.Wrapf(ErrRungTimeout, "rung %d", rungID)
}
