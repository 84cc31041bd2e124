package sparseladder

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"go.viam.com/test"

	"go.viam.com/choreo/logging"
)

func TestFindPathLogsAndReturnsImprovedCost(t *testing.T) {
	g := New(2, []CapRung{testRung(0), testRung(10), testRung(20)}, Options{})
	rng := rand.New(rand.NewSource(11))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	cost, err := g.FindPath(ctx, logging.NewTest(t), rng)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cost, test.ShouldBeGreaterThanOrEqualTo, 0.0)
}

// Scenario: planconfig.Tunables.GlobalTimeout, threaded through Options,
// bounds FindPath's Improve phase even when the caller's own ctx has no
// deadline at all.
func TestGlobalTimeoutBoundsFindPath(t *testing.T) {
	g := New(2, []CapRung{testRung(0), testRung(10), testRung(20)}, Options{GlobalTimeout: 5 * time.Millisecond})
	rng := rand.New(rand.NewSource(13))

	cost, err := g.FindPath(context.Background(), logging.NewTest(t), rng)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cost, test.ShouldBeGreaterThanOrEqualTo, 0.0)
}

func TestExtractSolutionBuildsUnifiedGraph(t *testing.T) {
	g := New(2, []CapRung{testRung(0), testRung(10)}, Options{})
	rng := rand.New(rand.NewSource(7))

	_, err := g.Initialize(context.Background(), rng)
	test.That(t, err, test.ShouldBeNil)

	unified, search, err := g.ExtractSolution(context.Background())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(unified.Rungs), test.ShouldEqual, 4) // 2 waypoints per rung x 2 rungs

	cost := search.Cost()
	test.That(t, cost, test.ShouldBeGreaterThanOrEqualTo, 0.0)
}
