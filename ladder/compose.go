package ladder

import "github.com/pkg/errors"

// Append concatenates next onto the end of current (current's rungs
// first, then next's), connecting the two at the boundary with a fresh
// fully-connected edge set, and returns current mutated in place --
// mirroring append_ladder_graph's current_graph-is-also-the-return-value
// convention.
func Append(current, next *Graph) (*Graph, error) {
	if current.Dof != next.Dof {
		return nil, errors.New("ladder: cannot append graphs with mismatched dof")
	}
	if len(current.Rungs) == 0 {
		return next, nil
	}

	boundary := len(current.Rungs) - 1
	current.Rungs = append(current.Rungs, next.Rungs...)
	current.connectRungs(boundary, nil)
	return current, nil
}

// ConcatenateVertically merges graph_below into graph_above rung-by-rung
// (same rung count required): each rung's vertex set becomes the union
// of both graphs' vertices at that waypoint, and graph_below's edges are
// copied in with destination indices shifted past graph_above's existing
// vertices in the next rung. Mirrors concatenate_graph_vertically.
func ConcatenateVertically(above, below *Graph) (*Graph, error) {
	if above.Dof != below.Dof {
		return nil, errors.New("ladder: cannot concatenate graphs with mismatched dof")
	}
	if len(above.Rungs) != len(below.Rungs) {
		return nil, errors.New("ladder: cannot vertically concatenate graphs with differing rung counts")
	}

	numRungs := len(above.Rungs)
	for i := 0; i < numRungs; i++ {
		aboveRung := &above.Rungs[i]
		belowRung := below.Rungs[i]
		aboveRung.Data = append(aboveRung.Data, belowRung.Data...)

		if i != numRungs-1 {
			nextAboveSize := above.Rungs[i+1].VertSize(above.Dof)
			for _, belowOut := range belowRung.Edges {
				shifted := make([]Edge, len(belowOut))
				for k, e := range belowOut {
					shifted[k] = Edge{To: e.To + nextAboveSize, Cost: e.Cost}
				}
				aboveRung.Edges = append(aboveRung.Edges, shifted)
			}
		}
	}
	return above, nil
}
