// Package spatial holds the minimal rigid-geometry primitives the core
// needs: points along an element, end-effector poses, and the fixed
// mapping from a discretized (phi, theta, yaw) direction sample to an
// orientation. It deliberately does not attempt to be a general collision
// or mesh library -- that is the out-of-scope collision oracle's job.
package spatial

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Point is a position in the robot's base frame, meters.
type Point = r3.Vector

// Pose is a rigid transform: a TCP position plus an orientation.
type Pose struct {
	Position    Point
	Orientation quat.Number
}

// NewZeroPose returns the identity pose at the origin.
func NewZeroPose() Pose {
	return Pose{Position: Point{}, Orientation: quat.Number{Real: 1}}
}

// Translated returns a copy of p offset by delta, orientation unchanged.
func (p Pose) Translated(delta Point) Pose {
	return Pose{Position: p.Position.Add(delta), Orientation: p.Orientation}
}

// Interpolate returns evenly spaced points along the segment p1->p2, at
// most step apart, always including both endpoints. step must be positive.
func Interpolate(p1, p2 Point, step float64) []Point {
	if step <= 0 {
		panic("spatial: interpolation step must be positive")
	}
	delta := p2.Sub(p1)
	length := delta.Norm()
	if length == 0 {
		return []Point{p1}
	}
	n := int(math.Ceil(length / step))
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		pts = append(pts, p1.Add(delta.Mul(t)))
	}
	return pts
}

// DirectionToQuat maps a discretized (phi, theta) end-effector approach
// direction plus a free yaw about the approach axis to an orientation
// quaternion. phi is the azimuth in [0, 2pi), theta is the polar angle
// from +Z in [0, pi), yaw is rotation about the approach axis itself.
// The mapping is fixed and implementation-defined but consistent across
// all uses within one run, as spec.md S6 requires.
func DirectionToQuat(phi, theta, yaw float64) quat.Number {
	// Rotate the approach axis (+Z) down by theta about Y, then around by
	// phi about Z, matching a spherical (phi, theta) parametrization; yaw
	// is then applied about the resulting approach axis (+Z of the result).
	qYaw := axisAngle(Point{Z: 1}, yaw)
	qTheta := axisAngle(Point{Y: 1}, theta)
	qPhi := axisAngle(Point{Z: 1}, phi)
	return quat.Mul(qPhi, quat.Mul(qTheta, qYaw))
}

func axisAngle(axis Point, angle float64) quat.Number {
	n := axis.Normalize()
	s, c := math.Sincos(angle / 2)
	return quat.Number{Real: c, Imag: n.X * s, Jmag: n.Y * s, Kmag: n.Z * s}
}

// Rotate applies q's rotation to vector v.
func Rotate(q quat.Number, v Point) Point {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return Point{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// PoseAt builds the end-effector pose for approaching a path point along
// an element in the given (phi, theta, yaw) direction.
func PoseAt(point Point, phi, theta, yaw float64) Pose {
	return Pose{Position: point, Orientation: DirectionToQuat(phi, theta, yaw)}
}
