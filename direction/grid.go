// Package direction implements the Direction Map (cmap) and the
// Collision Pruner of spec.md S4.1: a fixed spherical discretization of
// end-effector approach directions per element, and the monotone
// bit-clearing operation that removes directions colliding with a body.
package direction

import "math"

// Grid is the fixed phi/theta discretization shared by every element and
// every use within one run (spec.md S6).
type Grid struct {
	PhiDisc   int
	ThetaDisc int
}

// Size returns the total number of discretized directions, PhiDisc*ThetaDisc.
func (g Grid) Size() int { return g.PhiDisc * g.ThetaDisc }

// Index returns the flat bit index for the (phiIdx, thetaIdx) bucket.
func (g Grid) Index(phiIdx, thetaIdx int) int {
	return phiIdx*g.ThetaDisc + thetaIdx
}

// Buckets decomposes a flat index back into (phiIdx, thetaIdx).
func (g Grid) Buckets(i int) (phiIdx, thetaIdx int) {
	return i / g.ThetaDisc, i % g.ThetaDisc
}

// Angles returns the (phi, theta) angle, in radians, at the center of the
// bucket for flat index i. phi in [0, 2pi), theta in [0, pi).
func (g Grid) Angles(i int) (phi, theta float64) {
	phiIdx, thetaIdx := g.Buckets(i)
	phiStep := 2 * math.Pi / float64(g.PhiDisc)
	thetaStep := math.Pi / float64(g.ThetaDisc)
	phi = (float64(phiIdx) + 0.5) * phiStep
	theta = (float64(thetaIdx) + 0.5) * thetaStep
	return phi, theta
}
