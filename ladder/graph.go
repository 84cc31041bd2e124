// Package ladder implements the Ladder Graph of spec.md S4.3: a layered
// DAG with one rung per Cartesian waypoint, each rung holding every IK
// solution surviving collision filtering at that waypoint, and a fully
// connected bipartite edge set between consecutive rungs weighted by L1
// joint distance. Grounded 1:1 on
// pychoreo/cartesian_planner/ladder_graph.py.
package ladder

import (
	"github.com/pkg/errors"

	"go.viam.com/choreo/kinematics"
)

// Edge points at a destination vertex index within the next rung, with
// the L1 joint-distance cost of traversing it.
type Edge struct {
	To   int
	Cost float64
}

// Rung holds one waypoint's surviving IK solutions, flattened into one
// contiguous slice (len(Data) % dof == 0, matching the Python
// implementation's packed storage), plus each vertex's outgoing edges to
// the next rung.
type Rung struct {
	Data  []kinematics.Input // dof-major contiguous joint data
	Edges [][]Edge           // Edges[v] = outgoing edges from vertex v
}

// VertSize returns the number of vertices (IK solutions) in the rung.
func (r Rung) VertSize(dof int) int { return len(r.Data) / dof }

// VertData returns vertex v's joint configuration.
func (r Rung) VertData(dof, v int) kinematics.JointVector {
	return kinematics.JointVector(r.Data[dof*v : dof*(v+1)])
}

// Graph is a ladder graph over a fixed dof.
type Graph struct {
	Dof   int
	Rungs []Rung
}

// ErrEmptyRung is returned when a waypoint has no surviving IK solutions
// at all, making the ladder graph un-traversable.
var ErrEmptyRung = errors.New("ladder: rung has no feasible vertices")

// New builds a graph from one solution set per rung (rungs[i][v] is
// vertex v's joint configuration at waypoint i). Edges are not yet
// populated; call BuildEdges next. Append adds only the boundary edges
// between two graphs, and ConcatenateVertically only copies the edges
// each graph already has.
func New(dof int, solutions [][]kinematics.JointVector) (*Graph, error) {
	if dof == 0 {
		panic("ladder: dof must be nonzero")
	}
	g := &Graph{Dof: dof, Rungs: make([]Rung, len(solutions))}
	for i, sols := range solutions {
		if len(sols) == 0 {
			return nil, errors.Wrapf(ErrEmptyRung, "rung %d", i)
		}
		data := make([]kinematics.Input, 0, len(sols)*dof)
		for _, s := range sols {
			data = append(data, s...)
		}
		g.Rungs[i] = Rung{Data: data}
	}
	return g, nil
}

// BuildEdges populates fully connected bipartite edges between every
// consecutive rung pair, weighted by L1 joint distance. velLimit, if
// non-nil, drops any edge whose per-joint delta exceeds the matching
// limit (spec.md S4.3's optional velocity-cap filter); pass nil to skip
// it.
func (g *Graph) BuildEdges(velLimit kinematics.JointVector) {
	for i := 0; i < len(g.Rungs)-1; i++ {
		g.connectRungs(i, velLimit)
	}
}

// connectRungs builds rung i's edges to rung i+1 via an EdgeBuilder,
// mirroring the Python EdgeBuilder's consider/next two-phase API.
func (g *Graph) connectRungs(i int, velLimit kinematics.JointVector) {
	a, b := g.Rungs[i], g.Rungs[i+1]
	nStart, nEnd := a.VertSize(g.Dof), b.VertSize(g.Dof)

	eb := newEdgeBuilder(nStart, nEnd)
	for k := 0; k < nStart; k++ {
		stJt := a.VertData(g.Dof, k)
		for j := 0; j < nEnd; j++ {
			endJt := b.VertData(g.Dof, j)
			if velLimit != nil && exceedsLimit(stJt, endJt, velLimit) {
				continue
			}
			eb.consider(stJt, endJt, j)
		}
		eb.next(k)
	}
	g.Rungs[i].Edges = eb.result
}

func exceedsLimit(a, b, limit kinematics.JointVector) bool {
	for i := range a {
		d := float64(a[i] - b[i])
		if d < 0 {
			d = -d
		}
		if d > float64(limit[i]) {
			return true
		}
	}
	return false
}

// edgeBuilder mirrors ladder_graph.py's EdgeBuilder: a scratch buffer for
// the current source vertex's candidate edges, committed into the result
// slice via next.
type edgeBuilder struct {
	result  [][]Edge
	scratch []Edge
	count   int
}

func newEdgeBuilder(nStart, nEnd int) *edgeBuilder {
	return &edgeBuilder{
		result:  make([][]Edge, nStart),
		scratch: make([]Edge, nEnd),
	}
}

func (eb *edgeBuilder) consider(st, end kinematics.JointVector, index int) {
	eb.scratch[eb.count] = Edge{To: index, Cost: kinematics.L1(st, end)}
	eb.count++
}

func (eb *edgeBuilder) next(i int) {
	out := make([]Edge, eb.count)
	copy(out, eb.scratch[:eb.count])
	eb.result[i] = out
	eb.count = 0
}
