// Package kinematics defines the oracle boundary the core planner
// consumes: inverse kinematics and collision checking are treated as
// pure, synchronous functions supplied by the caller (spec.md S6). This
// package owns only the shared vocabulary (joint vectors, rigid bodies,
// scenes) -- never an actual IK or collision implementation.
package kinematics

import (
	"context"

	"gonum.org/v1/gonum/floats"

	"go.viam.com/choreo/spatial"
)

// Input is a single joint value, analogous to referenceframe.Input in
// go.viam.com/rdk.
type Input float64

// JointVector is a full joint configuration, fixed length (dof) for a
// given robot.
type JointVector []Input

// Dof returns the vector's degrees of freedom.
func (v JointVector) Dof() int { return len(v) }

// Floats returns v as a []float64, for use with numeric libraries.
func (v JointVector) Floats() []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

// L1 returns the L1 (Manhattan) joint distance between a and b, summing
// |a_i - b_i|. Both vectors must share dof; this is the cost metric used
// throughout the ladder graph and sparse ladder graph (spec.md S4.3/S4.4).
func L1(a, b JointVector) float64 {
	if len(a) != len(b) {
		panic("kinematics: joint vectors have mismatched dof")
	}
	return floats.Distance(a.Floats(), b.Floats(), 1)
}

// RigidBody is an opaque handle to a collision body. Its concrete type
// and meaning are entirely owned by the collision oracle; the core only
// ever passes these around, never inspects them.
type RigidBody interface {
	// BodyID returns a stable identifier for logging/diagnostics.
	BodyID() string
}

// JointLimits optionally overrides a robot's default joint limits for one
// Scene construction.
type JointLimits map[string][2]float64

// IKSolver is the inverse-kinematics oracle contract: given a TCP pose,
// return every joint-space solution (empty if unreachable). Must be pure.
type IKSolver interface {
	Solve(ctx context.Context, pose spatial.Pose) ([]JointVector, error)
}

// CollisionChecker is the collision oracle contract, closed over a fixed
// obstacle set, disabled self-collision pairs, and joint limits.
type CollisionChecker interface {
	// CollisionFree reports whether q is free of collision.
	CollisionFree(q JointVector) (bool, error)
}

// SceneFactory constructs a new CollisionChecker whenever the obstacle set
// changes. Spec.md S6: "constructed once per obstacle-set change."
type SceneFactory interface {
	NewScene(obstacles []RigidBody, disabledPairs [][2]string, limits JointLimits) (CollisionChecker, error)
}
