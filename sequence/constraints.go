package sequence

import (
	"go.viam.com/choreo/assembly"
	"go.viam.com/choreo/direction"
	"go.viam.com/choreo/kinematics"
)

// allDifferent is constraint 1 of spec.md S4.2: val must not already
// appear in assignment.
func (csp *CSP) allDifferent(val assembly.ElementID, assignment []assembly.ElementID) bool {
	return !containsID(assignment, val)
}

// connected is constraint 2 of spec.md S4.2.
func (csp *CSP) connected(val assembly.ElementID, assignment []assembly.ElementID) bool {
	neighbors := csp.net.Neighbors(val)

	switch csp.mode {
	case Forward:
		for _, a := range assignment {
			if containsID(neighbors, a) {
				return true
			}
		}
		return csp.net.IsGrounded(val)
	case Backward:
		for _, a := range assignment {
			if containsID(neighbors, a) {
				return true
			}
		}
		// "any not-yet-assigned element is grounded" -- a deliberately
		// looser relaxation than the forward rule; see spec.md S9.
		for _, u := range csp.unassignedElements(assignment, -1) {
			if csp.net.IsGrounded(u) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// unassignedElements returns every element id not present in assignment,
// optionally excluding exclude (pass -1 to exclude nothing).
func (csp *CSP) unassignedElements(assignment []assembly.ElementID, exclude assembly.ElementID) []assembly.ElementID {
	n := csp.net.Size()
	out := make([]assembly.ElementID, 0, n-len(assignment))
	for i := 0; i < n; i++ {
		id := assembly.ElementID(i)
		if id == exclude {
			continue
		}
		if !containsID(assignment, id) {
			out = append(out, id)
		}
	}
	return out
}

// existsValidOrientation is constraint 3 of spec.md S4.2: at least one
// direction bit of cmap[val] must survive pruning against the current
// obstacle set, and have a collision-free IK solution.
//
// assignment is the assignment BEFORE val is added -- i.e. exactly the
// "already assigned" set for Forward, and exactly the complement used to
// compute "not-yet-assigned" for Backward.
func (csp *CSP) existsValidOrientation(val assembly.ElementID, assignment []assembly.ElementID) (bool, error) {
	cmap := csp.cmaps[val]
	if cmap.Empty() {
		return false, nil
	}

	var builtObstacles []kinematics.RigidBody
	builtObstacles = append(builtObstacles, csp.staticObstacles...)

	switch csp.mode {
	case Forward:
		for _, a := range assignment {
			builtObstacles = append(builtObstacles, csp.net.Body(a))
		}
	case Backward:
		// every not-yet-assigned element, including val itself: they are
		// still physically present and will only be removed later
		// (spec.md S4.2 "Simultaneously with placing e").
		for _, u := range csp.unassignedElements(assignment, -1) {
			builtObstacles = append(builtObstacles, csp.net.Body(u))
		}
	}

	pts := csp.samplePoints(val)
	pruned, _, err := direction.PruneBatch(csp.oracle, pts, csp.grid, cmap.Clone(), builtObstacles, csp.checkIKInPrune)
	if err != nil {
		return false, err
	}
	return !pruned.Empty(), nil
}

// nConflicts counts constraint violations for placing val at the next
// open position, given assignment (not yet containing val). Per spec.md
// S9's third design note, any nonzero result is treated as "reject" --
// callers never look at the magnitude, only whether it is zero.
func (csp *CSP) nConflicts(val assembly.ElementID, assignment []assembly.ElementID) (int, error) {
	if !csp.allDifferent(val, assignment) {
		return 1, nil
	}
	if !csp.connected(val, assignment) {
		return 1, nil
	}
	ok, err := csp.existsValidOrientation(val, assignment)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 1, nil
	}
	return 0, nil
}
