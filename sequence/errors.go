package sequence

import "github.com/pkg/errors"

// ErrOrientationExhausted marks a position after the first whose
// candidate elements all failed their constraints at the current branch
// (an element whose direction map has become empty is one such failure).
// It is a local constraint violation, not a fatal error: the search
// backtracks and continues (spec.md S7).
var ErrOrientationExhausted = errors.New("sequence: element has no feasible orientation")

// ErrInfeasible is returned by Search when no assignment exists at all:
// every value for position 0 has been exhausted (spec.md S4.2
// termination / S7 "Infeasible shape").
var ErrInfeasible = errors.New("sequence: no feasible build sequence exists")
