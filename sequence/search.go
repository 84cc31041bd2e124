package sequence

import (
	"context"

	"go.uber.org/multierr"

	"go.viam.com/choreo/assembly"
	"go.viam.com/choreo/direction"
	"go.viam.com/choreo/logging"
)

// AssignEvent records one suppose call made during the search, in
// chronological order, including branches later undone by backtracking
// -- the full per-assign history spec.md S6's persistent log calls for,
// not just the entries on the winning path.
type AssignEvent struct {
	Position int
	Element  assembly.ElementID
	// Restored reports whether this assignment was later undone because
	// its branch failed to reach a complete assignment.
	Restored bool
}

// Result is Search's outcome: a full or best-effort-partial build
// sequence, the direction maps as pruned along the winning path, and
// bookkeeping for diagnostics (spec.md S7 "Diagnostics on failure").
type Result struct {
	// Sequence is the solved build order, one element id per position.
	// On timeout or infeasibility it holds the deepest partial
	// assignment reached.
	Sequence []assembly.ElementID
	// Complete reports whether Sequence assigns every element.
	Complete bool
	// Cmaps holds the direction map for every element as of the
	// returned Sequence (pruned along whatever prefix was committed).
	Cmaps map[assembly.ElementID]direction.Map
	// Assigns and Backtracks count suppose/restore calls, for tuning
	// and test assertions.
	Assigns    int
	Backtracks int
	// History is every suppose call made during the search, in order,
	// including ones later restored -- spec.md S6's "assignment history".
	History []AssignEvent
}

// Search runs the Assembly Sequence CSP backtracking search of spec.md
// S4.2: depth-first, variable-ordered by position, value-ordered by
// orderedValues, with forward-checking pruning and full undo on
// backtrack.
//
// If ctx is cancelled before a complete assignment is found, Search
// returns the deepest partial assignment reached so far along with
// ctx.Err() (spec.md S5/S7's "best effort under a deadline").
func Search(ctx context.Context, logger logging.Logger, csp *CSP) (Result, error) {
	s := &searcher{csp: csp, logger: logger, best: []assembly.ElementID{}}
	err := s.backtrack(ctx, []assembly.ElementID{})

	res := Result{
		Sequence:   s.best,
		Complete:   len(s.best) == len(csp.variables),
		Cmaps:      snapshotCmaps(csp),
		Assigns:    s.assigns,
		Backtracks: s.backtracks,
		History:    s.history,
	}
	logger.Infow("sequence search finished",
		"complete", res.Complete, "assigns", res.Assigns, "backtracks", res.Backtracks)
	if err != nil {
		// err is ctx's deadline/cancellation error, ErrInfeasible
		// (position 0 exhausted) or an oracle error; it already carries
		// the diagnosis and passes through combinedDiagnostics
		// unchanged. The partial sequence is in res.Sequence.
		return res, combinedDiagnostics(err)
	}
	if !res.Complete {
		return res, ErrInfeasible
	}
	return res, nil
}

type searcher struct {
	csp        *CSP
	logger     logging.Logger
	best       []assembly.ElementID
	assigns    int
	backtracks int
	history    []AssignEvent
}

// backtrack assigns positions depth-first. assignment is the committed
// prefix so far; it returns ctx.Err() on deadline, ErrInfeasible when
// position 0's domain is exhausted, ErrOrientationExhausted when a later
// position's domain is exhausted, an oracle error as-is, or nil on
// success (csp.variables fully assigned). Every failed branch is undone
// via restore; on success the winning path's decisions stay applied, so
// the CSP's direction maps keep that path's pruning.
func (s *searcher) backtrack(ctx context.Context, assignment []assembly.ElementID) error {
	if len(assignment) > len(s.best) {
		s.best = append([]assembly.ElementID(nil), assignment...)
	}
	if len(assignment) == len(s.csp.variables) {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	pos := nextPosition(assignment)
	for _, val := range s.csp.orderedValues(pos) {
		nc, err := s.csp.nConflicts(val, assignment)
		if err != nil {
			return err
		}
		if nc != 0 {
			continue
		}

		d, err := s.csp.suppose(pos, val, assignment)
		if err != nil {
			return err
		}
		s.assigns++
		evtIdx := len(s.history)
		s.history = append(s.history, AssignEvent{Position: pos, Element: val})
		s.logger.Debugw("assigned element", "position", pos, "element", val, "backtracks", s.backtracks)

		err = s.backtrack(ctx, append(assignment, val))
		if err == nil {
			return nil
		}
		s.csp.restore(d)
		s.history[evtIdx].Restored = true
		if err != ErrOrientationExhausted {
			return err
		}
		s.backtracks++
	}

	if pos == 0 {
		return ErrInfeasible
	}
	return ErrOrientationExhausted
}

func snapshotCmaps(csp *CSP) map[assembly.ElementID]direction.Map {
	out := make(map[assembly.ElementID]direction.Map, len(csp.cmaps))
	for id, m := range csp.cmaps {
		out[id] = m.Clone()
	}
	return out
}

// combinedDiagnostics aggregates a terminal error with any late-stage
// bookkeeping error encountered while assembling the Result, per
// spec.md S7's diagnostics requirement.
func combinedDiagnostics(errs ...error) error {
	return multierr.Combine(errs...)
}
