// Package sequence implements the Assembly Sequence CSP of spec.md S4.2:
// a backtracking constraint-satisfaction search that orders elements such
// that each is reachable given everything placed (or still to be placed)
// as obstacles, pruning end-effector direction maps along the way.
package sequence

import (
	"sort"

	"go.viam.com/choreo/assembly"
	"go.viam.com/choreo/direction"
	"go.viam.com/choreo/kinematics"
	"go.viam.com/choreo/spatial"
)

// Mode selects forward (start-to-end) or backward (end-to-start) search,
// per spec.md S4.2/S9's Forward/Backward glossary entries.
type Mode int

// Search modes.
const (
	Forward Mode = iota
	Backward
)

// CSP is the Assembly Sequence constraint-satisfaction problem: one
// position variable per element, domains decomposed by ascending
// (Forward) or descending (Backward) layer id.
type CSP struct {
	net             *assembly.Network
	grid            direction.Grid
	oracle          direction.Oracle
	staticObstacles []kinematics.RigidBody
	mode            Mode
	waypointStep    float64
	checkIKInPrune  bool

	variables  []int
	domains    map[int][]assembly.ElementID // decomposed, read-only after construction
	curDomains map[int][]assembly.ElementID // mutable working domains

	cmaps map[assembly.ElementID]direction.Map
}

// Options configures CSP construction.
type Options struct {
	Mode            Mode
	WaypointStep    float64 // sample-point spacing along an element, for pruning
	StaticObstacles []kinematics.RigidBody
	// CheckIKInPrune mirrors planconfig.Tunables.CheckIKInPrune: when true,
	// existsValidOrientation additionally rejects directions lacking a
	// collision-free IK solution rather than only checking end-effector
	// geometry. A composition root wanting the tunable's effect passes
	// Tunables.CheckIKInPrune through here explicitly.
	CheckIKInPrune bool
}

// New builds a CSP over net's elements. Initial direction maps start
// fully feasible (all bits set); the caller's oracle supplies collision
// and IK feasibility for the geometric pruning steps.
func New(net *assembly.Network, grid direction.Grid, oracle direction.Oracle, opts Options) *CSP {
	n := net.Size()
	csp := &CSP{
		net:             net,
		grid:            grid,
		oracle:          oracle,
		staticObstacles: opts.StaticObstacles,
		mode:            opts.Mode,
		waypointStep:    opts.WaypointStep,
		checkIKInPrune:  opts.CheckIKInPrune,
		variables:       make([]int, n),
		domains:         map[int][]assembly.ElementID{},
		curDomains:      map[int][]assembly.ElementID{},
		cmaps:           map[assembly.ElementID]direction.Map{},
	}
	for i := 0; i < n; i++ {
		csp.variables[i] = i
	}

	layers := append([]int(nil), net.Layers()...)
	if csp.mode == Forward {
		sort.Ints(layers)
	} else {
		sort.Sort(sort.Reverse(sort.IntSlice(layers)))
	}

	pos := 0
	for _, l := range layers {
		ids := net.LayerElements(l)
		for range ids {
			dom := append([]assembly.ElementID(nil), ids...)
			csp.domains[pos] = dom
			csp.curDomains[pos] = append([]assembly.ElementID(nil), dom...)
			pos++
		}
	}

	for i := 0; i < n; i++ {
		csp.cmaps[assembly.ElementID(i)] = direction.NewMap(grid.Size())
	}
	return csp
}

// Cmap returns the current direction map for element id.
func (csp *CSP) Cmap(id assembly.ElementID) direction.Map { return csp.cmaps[id] }

// samplePoints returns the waypoint-spaced sample points along element id,
// used by the pruner as the "small set of sample points along the
// element" spec.md S4.1 calls for.
func (csp *CSP) samplePoints(id assembly.ElementID) []spatial.Point {
	e := csp.net.Element(id)
	p1, p2 := e.Endpoints(csp.net.Nodes)
	return spatial.Interpolate(p1, p2, csp.waypointStep)
}

func containsID(s []assembly.ElementID, v assembly.ElementID) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
