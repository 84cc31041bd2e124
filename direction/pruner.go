package direction

import (
	"go.viam.com/choreo/kinematics"
	"go.viam.com/choreo/spatial"
)

// Oracle is the end-effector geometry/IK boundary the pruner consumes.
// Both methods are closed over a fixed end-effector body and are pure
// with respect to that body (spec.md S6's "must be pure" IK contract
// extended to the pruner's geometric proxy check).
type Oracle interface {
	// Collides reports whether the end-effector, at pose, collides with
	// obstacle.
	Collides(pose spatial.Pose, obstacle kinematics.RigidBody) (bool, error)
	// HasCollisionFreeIK reports whether at least one IK solution for
	// pose is itself collision-free.
	HasCollisionFreeIK(pose spatial.Pose) (bool, error)
}

// posesForDirection builds one end-effector pose per sample point for
// direction index i on the grid, with yaw fixed at 0 (the pruner only
// needs a representative pose per (phi, theta); the sparse planner later
// samples yaw freely around the surviving directions).
func posesForDirection(grid Grid, samplePoints []spatial.Point, i int) []spatial.Pose {
	phi, theta := grid.Angles(i)
	poses := make([]spatial.Pose, len(samplePoints))
	for k, pt := range samplePoints {
		poses[k] = spatial.PoseAt(pt, phi, theta, 0)
	}
	return poses
}

// Prune removes every direction from cmap whose end-effector pose, at any
// of samplePoints along the subject element, collides with blocking. If
// checkIK is true it additionally drops directions lacking any
// collision-free IK solution at those poses. The result is bitwise <=
// cmap (spec.md S4.1 monotone pruning contract); the returned Delta
// records exactly which bits were cleared, for restoration.
func Prune(oracle Oracle, samplePoints []spatial.Point, grid Grid, cmap Map, blocking kinematics.RigidBody, checkIK bool) (Map, Delta, error) {
	return PruneBatch(oracle, samplePoints, grid, cmap, []kinematics.RigidBody{blocking}, checkIK)
}

// PruneBatch is Prune against every body in blocking in a single pass.
func PruneBatch(
	oracle Oracle,
	samplePoints []spatial.Point,
	grid Grid,
	cmap Map,
	blocking []kinematics.RigidBody,
	checkIK bool,
) (Map, Delta, error) {
	before := cmap.Clone()
	result := cmap.Clone()

	for _, i := range cmap.Indices() {
		poses := posesForDirection(grid, samplePoints, i)

		collided := false
		for _, body := range blocking {
			for _, pose := range poses {
				ok, err := oracle.Collides(pose, body)
				if err != nil {
					return Map{}, Delta{}, err
				}
				if ok {
					collided = true
					break
				}
			}
			if collided {
				break
			}
		}
		if collided {
			result.Clear(i)
			continue
		}

		if checkIK {
			for _, pose := range poses {
				ok, err := oracle.HasCollisionFreeIK(pose)
				if err != nil {
					return Map{}, Delta{}, err
				}
				if !ok {
					result.Clear(i)
					break
				}
			}
		}
	}

	return result, result.Diff(before), nil
}
