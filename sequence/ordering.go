package sequence

import "go.viam.com/choreo/assembly"

// nextPosition is the variable ordering of spec.md S4.2: the next
// unassigned position in sequence.
func nextPosition(assignment []assembly.ElementID) int { return len(assignment) }

// orderedValues returns pos's current domain values, ordered per spec.md
// S4.2's value-ordering rule: Forward prefers smallest remaining cmap
// bit-count (commit to the most constrained element first); Backward
// prefers the element farthest from ground (do it earliest in reverse).
// Ties break on ascending element id for determinism.
func (csp *CSP) orderedValues(pos int) []assembly.ElementID {
	values := append([]assembly.ElementID(nil), csp.curDomains[pos]...)

	switch csp.mode {
	case Forward:
		insertionSortBy(values, func(a, b assembly.ElementID) bool {
			ca, cb := csp.cmaps[a].Count(), csp.cmaps[b].Count()
			if ca != cb {
				return ca < cb
			}
			return a < b
		})
	case Backward:
		insertionSortBy(values, func(a, b assembly.ElementID) bool {
			da, db := csp.net.DistanceToGround(a), csp.net.DistanceToGround(b)
			if da != db {
				return da > db
			}
			return a < b
		})
	}
	return values
}

// insertionSortBy is a small stable sort avoiding a sort.Slice closure
// allocation per comparison; n is always small (one layer's worth of
// elements).
func insertionSortBy(vals []assembly.ElementID, less func(a, b assembly.ElementID) bool) {
	for i := 1; i < len(vals); i++ {
		for j := i; j > 0 && less(vals[j], vals[j-1]); j-- {
			vals[j], vals[j-1] = vals[j-1], vals[j]
		}
	}
}
