package ladder

import (
	"math"

	"go.viam.com/choreo/kinematics"
)

// DAGSearch is the forward dynamic-programming shortest path of spec.md
// S4.3, grounded on sc_cartesian_planner.py's DAGSearch: one rung's
// worth of (distance, predecessor) pairs per vertex, propagated forward
// rung by rung.
type DAGSearch struct {
	graph *Graph
	dist  [][]float64
	pred  [][]int
}

// NewDAGSearch allocates search state for graph. graph must have at
// least one rung and every rung must have at least one vertex.
func NewDAGSearch(graph *Graph) *DAGSearch {
	s := &DAGSearch{
		graph: graph,
		dist:  make([][]float64, len(graph.Rungs)),
		pred:  make([][]int, len(graph.Rungs)),
	}
	for i, r := range graph.Rungs {
		n := r.VertSize(graph.Dof)
		s.dist[i] = make([]float64, n)
		s.pred[i] = make([]int, n)
	}
	return s
}

// Run performs the forward cost propagation and returns the minimum
// total cost across every vertex of the final rung.
func (s *DAGSearch) Run() float64 {
	for v := range s.dist[0] {
		s.dist[0][v] = 0
	}
	for r := 1; r < len(s.dist); r++ {
		for v := range s.dist[r] {
			s.dist[r][v] = math.Inf(1)
		}
	}

	for r := 0; r < len(s.graph.Rungs)-1; r++ {
		edges := s.graph.Rungs[r].Edges
		for v, uCost := range s.dist[r] {
			for _, e := range edges[v] {
				dv := uCost + e.Cost
				if dv < s.dist[r+1][e.To] {
					s.dist[r+1][e.To] = dv
					s.pred[r+1][e.To] = v
				}
			}
		}
	}

	return s.Cost()
}

// Cost returns the minimum cost across the final rung's vertices. Run
// must have been called first.
func (s *DAGSearch) Cost() float64 {
	last := s.dist[len(s.dist)-1]
	min := math.Inf(1)
	for _, d := range last {
		if d < min {
			min = d
		}
	}
	return min
}

// ShortestPath backtracks the predecessor chain from the last rung's
// minimum-cost vertex and returns one joint configuration per rung. Run
// must have been called first.
func (s *DAGSearch) ShortestPath() []kinematics.JointVector {
	last := s.dist[len(s.dist)-1]
	minVert := 0
	min := math.Inf(1)
	for v, d := range last {
		if d < min {
			min = d
			minVert = v
		}
	}

	pathIdx := make([]int, len(s.dist))
	cur := minVert
	for r := len(pathIdx) - 1; r >= 0; r-- {
		pathIdx[r] = cur
		if r > 0 {
			cur = s.pred[r][cur]
		}
	}

	sol := make([]kinematics.JointVector, len(pathIdx))
	for r, v := range pathIdx {
		sol[r] = s.graph.Rungs[r].VertData(s.graph.Dof, v)
	}
	return sol
}
