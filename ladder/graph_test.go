package ladder

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/choreo/kinematics"
)

func jv(vals ...float64) kinematics.JointVector {
	out := make(kinematics.JointVector, len(vals))
	for i, v := range vals {
		out[i] = kinematics.Input(v)
	}
	return out
}

// Scenario: a two-rung path with a single IK solution each -- the
// shortest path's cost must equal the L1 distance between the two
// solutions.
func TestTwoRungPathCostIsL1Distance(t *testing.T) {
	solutions := [][]kinematics.JointVector{
		{jv(0, 0)},
		{jv(1, 2)},
	}
	g, err := New(2, solutions)
	test.That(t, err, test.ShouldBeNil)
	g.BuildEdges(nil)

	dag := NewDAGSearch(g)
	cost := dag.Run()
	test.That(t, cost, test.ShouldEqual, kinematics.L1(jv(0, 0), jv(1, 2)))

	path := dag.ShortestPath()
	test.That(t, len(path), test.ShouldEqual, 2)
	test.That(t, path[0], test.ShouldResemble, jv(0, 0))
	test.That(t, path[1], test.ShouldResemble, jv(1, 2))
}

func TestDAGSearchPicksCheaperBranch(t *testing.T) {
	solutions := [][]kinematics.JointVector{
		{jv(0, 0)},
		{jv(10, 10), jv(1, 0)}, // second option much cheaper
		{jv(1, 0)},
	}
	g, err := New(2, solutions)
	test.That(t, err, test.ShouldBeNil)
	g.BuildEdges(nil)

	dag := NewDAGSearch(g)
	cost := dag.Run()
	test.That(t, cost, test.ShouldEqual, 1.0) // 0,0 -> 1,0 -> 1,0: costs 1 + 0

	path := dag.ShortestPath()
	test.That(t, path[1], test.ShouldResemble, jv(1, 0))
}

func TestEmptyRungErrors(t *testing.T) {
	_, err := New(2, [][]kinematics.JointVector{{jv(0, 0)}, {}})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestAppendConnectsBoundary(t *testing.T) {
	a, err := New(1, [][]kinematics.JointVector{{jv(0)}, {jv(1)}})
	test.That(t, err, test.ShouldBeNil)
	a.BuildEdges(nil)

	b, err := New(1, [][]kinematics.JointVector{{jv(2)}, {jv(5)}})
	test.That(t, err, test.ShouldBeNil)
	b.BuildEdges(nil)

	merged, err := Append(a, b)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(merged.Rungs), test.ShouldEqual, 4)

	dag := NewDAGSearch(merged)
	cost := dag.Run()
	// 0->1 (|0-1|=1) -> 2 (|1-2|=1) -> 5 (|2-5|=3): total 5
	test.That(t, cost, test.ShouldEqual, 5.0)
}

func TestConcatenateVerticallyShiftsEdgeTargets(t *testing.T) {
	above, err := New(1, [][]kinematics.JointVector{{jv(0)}, {jv(10)}})
	test.That(t, err, test.ShouldBeNil)
	above.BuildEdges(nil)

	below, err := New(1, [][]kinematics.JointVector{{jv(100)}, {jv(110), jv(111)}})
	test.That(t, err, test.ShouldBeNil)
	below.BuildEdges(nil)

	merged, err := ConcatenateVertically(above, below)
	test.That(t, err, test.ShouldBeNil)

	// rung 0 now has 2 vertices (above's 1 + below's 1); rung 1 has 3
	// (above's 1 + below's 2).
	test.That(t, merged.Rungs[0].VertSize(1), test.ShouldEqual, 2)
	test.That(t, merged.Rungs[1].VertSize(1), test.ShouldEqual, 3)

	// below's vertex 0 is fully connected to below's two rung-1
	// vertices; its first edge (originally rung-local index 0) must now
	// point at index 1 (past above's single rung-1 vertex).
	shiftedEdges := merged.Rungs[0].Edges[1]
	test.That(t, len(shiftedEdges), test.ShouldEqual, 2)
	test.That(t, shiftedEdges[0].To, test.ShouldEqual, 1)
}
