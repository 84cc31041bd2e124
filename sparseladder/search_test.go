package sparseladder

import (
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/choreo/kinematics"
	"go.viam.com/choreo/spatial"
)

// fakeIK returns one joint solution per pose, built deterministically
// from the pose's position so that different orientations/positions
// produce distinguishable (and comparable) joint values.
type fakeIK struct{}

func (fakeIK) Solve(_ context.Context, pose spatial.Pose) ([]kinematics.JointVector, error) {
	return []kinematics.JointVector{{
		kinematics.Input(pose.Position.X),
		kinematics.Input(pose.Position.Y),
	}}, nil
}

type alwaysFreeCollision struct{}

func (alwaysFreeCollision) CollisionFree(kinematics.JointVector) (bool, error) { return true, nil }

func testRung(x0 float64) CapRung {
	return CapRung{
		PathPts:   []spatial.Point{{X: x0}, {X: x0 + 1}},
		EEDirs:    []Direction{{Phi: 0, Theta: 0}, {Phi: 1, Theta: 0.5}},
		IK:        fakeIK{},
		Collision: alwaysFreeCollision{},
	}
}

func TestInitializeFindsFeasibleChain(t *testing.T) {
	g := New(2, []CapRung{testRung(0), testRung(10), testRung(20)}, Options{})
	rng := rand.New(rand.NewSource(1))

	cost, err := g.Initialize(context.Background(), rng)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cost, test.ShouldBeGreaterThanOrEqualTo, 0.0)
	for r := 0; r < 3; r++ {
		test.That(t, len(g.rungVerts[r]), test.ShouldEqual, 1)
	}
}

func TestImproveNeverWorsensCost(t *testing.T) {
	g := New(2, []CapRung{testRung(0), testRung(10), testRung(20)}, Options{})
	rng := rand.New(rand.NewSource(2))

	initial, err := g.Initialize(context.Background(), rng)
	test.That(t, err, test.ShouldBeNil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	improved, err := g.Improve(ctx, rng)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, improved, test.ShouldBeLessThanOrEqualTo, initial)
}

// Seed scenario: a global improvement timeout of 0 leaves the Phase 1
// initial solution untouched.
func TestZeroImproveTimeoutKeepsInitialCost(t *testing.T) {
	g := New(2, []CapRung{testRung(0), testRung(10)}, Options{})
	rng := rand.New(rand.NewSource(3))

	initial, err := g.Initialize(context.Background(), rng)
	test.That(t, err, test.ShouldBeNil)

	expired, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	time.Sleep(time.Millisecond) // ensure the deadline has definitely passed
	improved, err := g.Improve(expired, rng)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, improved, test.ShouldEqual, initial)
}

func TestInitializeDeterministicGivenSeed(t *testing.T) {
	rungs := func() []CapRung { return []CapRung{testRung(0), testRung(10)} }

	g1 := New(2, rungs(), Options{})
	cost1, err := g1.Initialize(context.Background(), rand.New(rand.NewSource(42)))
	test.That(t, err, test.ShouldBeNil)

	g2 := New(2, rungs(), Options{})
	cost2, err := g2.Initialize(context.Background(), rand.New(rand.NewSource(42)))
	test.That(t, err, test.ShouldBeNil)

	test.That(t, cost1, test.ShouldEqual, cost2)
}

func TestRungTimeoutWhenNoFeasibleOrientation(t *testing.T) {
	impossible := CapRung{
		PathPts:   []spatial.Point{{X: 0}},
		EEDirs:    []Direction{{Phi: 0, Theta: 0}},
		IK:        fakeIK{},
		Collision: neverFreeCollision{},
	}
	g := New(2, []CapRung{impossible}, Options{})
	_, err := g.Initialize(context.Background(), rand.New(rand.NewSource(1)))
	test.That(t, err, test.ShouldNotBeNil)
}

// Scenario: planconfig.Tunables.RungTimeout, threaded through Options,
// cuts Initialize short with NewRungTimeoutErr well before
// perRungAttempts would otherwise exhaust, even though ctx itself never
// expires.
func TestRungTimeoutCutsInitializeShort(t *testing.T) {
	impossible := CapRung{
		PathPts:   []spatial.Point{{X: 0}},
		EEDirs:    []Direction{{Phi: 0, Theta: 0}},
		IK:        fakeIK{},
		Collision: neverFreeCollision{},
	}
	g := New(2, []CapRung{impossible}, Options{RungTimeout: time.Microsecond})
	_, err := g.Initialize(context.Background(), rand.New(rand.NewSource(1)))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, ErrRungTimeout), test.ShouldBeTrue)
}

// Scenario: planconfig.Tunables.YawSamples, threaded through Options,
// restricts sampled yaw to the requested number of discrete buckets
// rather than the continuous default.
func TestYawSamplesDiscretizesYaw(t *testing.T) {
	g := New(2, []CapRung{testRung(0), testRung(10)}, Options{YawSamples: 4})
	rng := rand.New(rand.NewSource(7))
	_, err := g.Initialize(context.Background(), rng)
	test.That(t, err, test.ShouldBeNil)

	bucket := 2 * math.Pi / 4
	for _, idx := range g.rungVerts[0] {
		yaw := g.verts[idx].Yaw
		nearestCenter := -math.Pi + bucket/2
		for nearestCenter < yaw-1e-9 {
			nearestCenter += bucket
		}
		test.That(t, math.Abs(yaw-nearestCenter), test.ShouldBeLessThan, 1e-9)
	}
}

type neverFreeCollision struct{}

func (neverFreeCollision) CollisionFree(kinematics.JointVector) (bool, error) { return false, nil }
