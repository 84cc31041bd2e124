package direction

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/choreo/kinematics"
	"go.viam.com/choreo/spatial"
)

type fakeBody struct{ id string }

func (b fakeBody) BodyID() string { return b.id }

// fakeOracle collides with any body whenever the pose's orientation
// matches a flat direction index marked true in blockedPhi, letting tests
// control exactly which directions get pruned.
type fakeOracle struct {
	blockedPhi map[int]bool
	grid       Grid
	validIK    map[int]bool
}

func (o fakeOracle) Collides(pose spatial.Pose, obstacle kinematics.RigidBody) (bool, error) {
	// Recover which phi bucket this pose approximates by reusing the grid.
	for i := 0; i < o.grid.Size(); i++ {
		phi, theta := o.grid.Angles(i)
		want := spatial.PoseAt(spatial.Point{}, phi, theta, 0)
		if want.Orientation == pose.Orientation {
			return o.blockedPhi[i], nil
		}
	}
	return false, nil
}

func (o fakeOracle) HasCollisionFreeIK(pose spatial.Pose) (bool, error) {
	for i := 0; i < o.grid.Size(); i++ {
		phi, theta := o.grid.Angles(i)
		want := spatial.PoseAt(spatial.Point{}, phi, theta, 0)
		if want.Orientation == pose.Orientation {
			if o.validIK == nil {
				return true, nil
			}
			return o.validIK[i], nil
		}
	}
	return true, nil
}

func TestPruneMonotone(t *testing.T) {
	grid := Grid{PhiDisc: 4, ThetaDisc: 4}
	cmap := NewMap(grid.Size())
	pts := []spatial.Point{{}, {X: 1}}

	oracle := fakeOracle{grid: grid, blockedPhi: map[int]bool{0: true, 5: true}}
	pruned, delta, err := Prune(oracle, pts, grid, cmap, fakeBody{"obstacle"}, false)
	test.That(t, err, test.ShouldBeNil)

	// bitwise <= cmap
	for i := 0; i < grid.Size(); i++ {
		if pruned.Test(i) {
			test.That(t, cmap.Test(i), test.ShouldBeTrue)
		}
	}
	test.That(t, pruned.Test(0), test.ShouldBeFalse)
	test.That(t, pruned.Test(5), test.ShouldBeFalse)
	test.That(t, pruned.Count(), test.ShouldEqual, grid.Size()-2)
	test.That(t, delta.Empty(), test.ShouldBeFalse)
}

func TestRestoreUndoesExactly(t *testing.T) {
	grid := Grid{PhiDisc: 3, ThetaDisc: 3}
	cmap := NewMap(grid.Size())
	before := cmap.Clone()
	pts := []spatial.Point{{}}

	oracle := fakeOracle{grid: grid, blockedPhi: map[int]bool{2: true, 4: true}}
	pruned, delta, err := PruneBatch(oracle, pts, grid, cmap, []kinematics.RigidBody{fakeBody{"a"}}, false)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pruned.Count(), test.ShouldBeLessThan, before.Count())

	pruned.Restore(delta)
	test.That(t, pruned.Count(), test.ShouldEqual, before.Count())
	for i := 0; i < grid.Size(); i++ {
		test.That(t, pruned.Test(i), test.ShouldEqual, before.Test(i))
	}
}

func TestCheckIKDropsDirectionsWithNoValidSolution(t *testing.T) {
	grid := Grid{PhiDisc: 2, ThetaDisc: 2}
	cmap := NewMap(grid.Size())
	pts := []spatial.Point{{}}

	oracle := fakeOracle{grid: grid, blockedPhi: map[int]bool{}, validIK: map[int]bool{0: true, 1: false, 2: true, 3: false}}
	pruned, _, err := Prune(oracle, pts, grid, cmap, fakeBody{"x"}, true)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pruned.Test(0), test.ShouldBeTrue)
	test.That(t, pruned.Test(1), test.ShouldBeFalse)
	test.That(t, pruned.Test(2), test.ShouldBeTrue)
	test.That(t, pruned.Test(3), test.ShouldBeFalse)
}

func TestEmptyPredicate(t *testing.T) {
	m := NewMap(4)
	test.That(t, m.Empty(), test.ShouldBeFalse)
	for i := 0; i < 4; i++ {
		m.Clear(i)
	}
	test.That(t, m.Empty(), test.ShouldBeTrue)
}
