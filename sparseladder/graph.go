// Package sparseladder implements the Sparse Ladder Graph of spec.md
// S4.4: a one-orientation-per-element sampled tree (Cap Rung/Cap Vertex),
// improved via an RRT*-style tree repair pass, before materializing full
// per-element ladder graphs only for the chosen orientations. Grounded on
// choreo/sc_cartesian_planner.py's SparseLadderGraph.
package sparseladder

import (
	"time"

	"go.viam.com/choreo/kinematics"
	"go.viam.com/choreo/spatial"
)

// Options carries planconfig.Tunables' sparse-ladder-graph knobs
// (spec.md S138) through to Initialize/Improve/FindPath. The zero value
// preserves the graph's original untuned behavior: continuous yaw
// sampling, no per-rung timeout, and Improve running until the caller's
// ctx is done.
type Options struct {
	// RungTimeout bounds how long Initialize spends on a single rung
	// before giving up with ErrRungTimeout, independent of the caller's
	// ctx deadline. Zero means no per-rung deadline beyond perRungAttempts.
	RungTimeout time.Duration
	// GlobalTimeout bounds FindPath's total Improve time, independent of
	// the caller's ctx. Zero means Improve runs until ctx is done.
	GlobalTimeout time.Duration
	// YawSamples discretizes yaw sampling into this many evenly spaced
	// buckets instead of sampling continuously. Zero or negative means
	// continuous sampling.
	YawSamples int
}

// Direction is one candidate end-effector approach direction, as
// surviving the sequence CSP's direction-map pruning.
type Direction struct {
	Phi, Theta float64
}

// CapRung is one element's sampling rung: its path sample points, the
// candidate approach directions to sample from, and the IK/collision
// oracles closed over that element's obstacle set (the obstacle set
// grows rung to rung as earlier elements become obstacles themselves --
// the caller's responsibility, mirroring sc_cartesian_planner.py's
// growing built_obstacles list).
type CapRung struct {
	PathPts   []spatial.Point
	EEDirs    []Direction
	IK        kinematics.IKSolver
	Collision kinematics.CollisionChecker
}

// CapVertex is one sampled, feasible orientation for a rung: the chosen
// direction and yaw, the IK solution sets at the rung's first and last
// path point (only these two are cached; full per-waypoint solving is
// deferred to ExtractSolution), and a parent reference into the Graph's
// vertex arena (ParentIdx == -1 means root, matching spec.md S9's note
// to use arena+index rather than raw pointers to avoid cyclic
// references).
type CapVertex struct {
	RungID     int
	Phi, Theta float64
	Yaw        float64
	StartJt    []kinematics.JointVector
	EndJt      []kinematics.JointVector
	ParentIdx  int
	ParentCost float64
}

// distanceTo returns the minimum L1 joint distance between any of to's
// end-of-rung solutions and any of v's start-of-rung solutions, or 0 if
// to is nil (v has no parent: g.vertex(-1) returns nil).
func distanceTo(v, to *CapVertex) float64 {
	if to == nil {
		return 0
	}
	best := float64(-1)
	for _, endSol := range to.EndJt {
		for _, stSol := range v.StartJt {
			d := kinematics.L1(endSol, stSol)
			if best < 0 || d < best {
				best = d
			}
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

// Graph is the sparse ladder graph: one CapRung per element in build
// order, plus a vertex arena shared across all rungs' sampled trees.
type Graph struct {
	Dof   int
	Rungs []CapRung

	opts      Options
	verts     []CapVertex
	rungVerts [][]int // rungVerts[r] = indices into verts sampled for rung r
}

// New allocates a sparse ladder graph over rungs, one per element in
// build-sequence order.
func New(dof int, rungs []CapRung, opts Options) *Graph {
	return &Graph{
		Dof:       dof,
		Rungs:     rungs,
		opts:      opts,
		rungVerts: make([][]int, len(rungs)),
	}
}

// costToRoot sums ParentCost along idx's parent chain back to the root,
// equivalent to get_cost_to_root's edge-cost accumulation since the root
// vertex's own ParentCost is always 0 (distanceTo returns 0 for a nil
// parent).
func (g *Graph) costToRoot(idx int) float64 {
	cost := 0.0
	for idx != -1 {
		v := &g.verts[idx]
		cost += v.ParentCost
		idx = v.ParentIdx
	}
	return cost
}

func (g *Graph) addVertex(v CapVertex) int {
	g.verts = append(g.verts, v)
	idx := len(g.verts) - 1
	g.rungVerts[v.RungID] = append(g.rungVerts[v.RungID], idx)
	return idx
}

func (g *Graph) vertex(idx int) *CapVertex {
	if idx == -1 {
		return nil
	}
	return &g.verts[idx]
}
