package sequence

import (
	"go.viam.com/choreo/assembly"
	"go.viam.com/choreo/direction"
)

// domainRemoval records one value removed from one position's current
// domain, so restore can put it back without recomputing anything.
type domainRemoval struct {
	pos int
	val assembly.ElementID
}

// decision is one suppose's undo record: spec.md S4.2's "suppose step
// records (1) the domain values removed ... and (2) per-element bit-delta
// vectors."
type decision struct {
	pos         int
	val         assembly.ElementID
	domainRemov []domainRemoval
	cmapDeltas  map[assembly.ElementID]direction.Delta
}

// suppose commits pos=val, propagating all-different domain pruning and
// the forward-check cmap pruning, and returns the decision needed to
// undo it later.
func (csp *CSP) suppose(pos int, val assembly.ElementID, assignmentBefore []assembly.ElementID) (*decision, error) {
	d := &decision{pos: pos, val: val}

	// record and collapse pos's own domain to [val]
	for _, a := range csp.curDomains[pos] {
		if a != val {
			d.domainRemov = append(d.domainRemov, domainRemoval{pos, a})
		}
	}
	csp.curDomains[pos] = []assembly.ElementID{val}

	// all-different: remove val from every still-open position's domain
	for p := pos + 1; p < len(csp.variables); p++ {
		dom := csp.curDomains[p]
		for i, a := range dom {
			if a == val {
				csp.curDomains[p] = append(dom[:i:i], dom[i+1:]...)
				d.domainRemov = append(d.domainRemov, domainRemoval{p, val})
				break
			}
		}
	}

	assignmentAfter := append(append([]assembly.ElementID(nil), assignmentBefore...), val)
	deltas, err := csp.supportPruning(pos, val, assignmentAfter)
	if err != nil {
		return nil, err
	}
	d.cmapDeltas = deltas
	return d, nil
}

// restore undoes exactly what suppose did, in either order (domain
// restoration and cmap restoration are independent).
func (csp *CSP) restore(d *decision) {
	for _, r := range d.domainRemov {
		csp.curDomains[r.pos] = append(csp.curDomains[r.pos], r.val)
	}
	for id, delta := range d.cmapDeltas {
		m := csp.cmaps[id]
		m.Restore(delta)
		csp.cmaps[id] = m
	}
}

// supportPruning is the forward-check inference of spec.md S4.2: after
// tentatively placing val, prune every still-unassigned element's cmap
// against val's newly-present body. Backward search performs no
// persistent propagation here -- its feasibility check instead
// recomputes a fresh batch-prune inside existsValidOrientation every
// time, matching the original implementation's asymmetry.
func (csp *CSP) supportPruning(pos int, val assembly.ElementID, assignmentAfter []assembly.ElementID) (map[assembly.ElementID]direction.Delta, error) {
	deltas := map[assembly.ElementID]direction.Delta{}
	if csp.mode != Forward {
		return deltas, nil
	}

	unassigned := csp.unassignedElements(assignmentAfter, -1)
	if len(assignmentAfter) == 1 {
		// Documented quirk (spec.md S9): on the first decision, also
		// prune the chosen element's own cmap against the static
		// obstacles, since no later step will ever do so for it.
		unassigned = append(unassigned, val)
	}

	for _, u := range unassigned {
		before := csp.cmaps[u]
		var pruned direction.Map
		var err error
		if u == val {
			pruned, _, err = direction.PruneBatch(csp.oracle, csp.samplePoints(u), csp.grid, before.Clone(), csp.staticObstacles, false)
		} else {
			pruned, _, err = direction.Prune(csp.oracle, csp.samplePoints(u), csp.grid, before.Clone(), csp.net.Body(val), false)
		}
		if err != nil {
			return nil, err
		}
		delta := pruned.Diff(before)
		csp.cmaps[u] = pruned
		if !delta.Empty() {
			deltas[u] = delta
		}
	}
	return deltas, nil
}
