package sparseladder

import (
	"context"
	"math/rand"

	"go.viam.com/choreo/kinematics"
	"go.viam.com/choreo/ladder"
	"go.viam.com/choreo/logging"
	"go.viam.com/choreo/spatial"
)

// FindPath runs Phase 1 (Initialize) followed by Phase 2 (Improve) under
// a shared deadline carried by ctx, returning the best total cost found.
// If ctx is already past its deadline when Improve starts, Phase 1's
// initial solution is returned untouched -- exactly "global timeout 0
// after Phase 1" from spec.md S8's seed scenario.
func (g *Graph) FindPath(ctx context.Context, logger logging.Logger, rng *rand.Rand) (float64, error) {
	initial, err := g.Initialize(ctx, rng)
	if err != nil {
		logger.Errorw("sparse ladder graph initialize failed", "error", err)
		return 0, err
	}
	logger.Infow("sparse ladder graph initialized", "rungs", len(g.Rungs), "initial_cost", initial)

	improveCtx := ctx
	if g.opts.GlobalTimeout > 0 {
		var cancel context.CancelFunc
		improveCtx, cancel = context.WithTimeout(ctx, g.opts.GlobalTimeout)
		defer cancel()
	}

	improved, err := g.Improve(improveCtx, rng)
	if err != nil {
		logger.Errorw("sparse ladder graph improve failed", "error", err)
		return 0, err
	}
	logger.Infow("sparse ladder graph improved", "initial_cost", initial, "improved_cost", improved)
	return improved, nil
}

// ExtractSolution takes the last rung's minimum-cost-to-root vertex and
// its chain of parents (one chosen orientation per rung), materializes
// one full per-waypoint ladder.Graph per chosen orientation, appends them
// in rung order, and runs a single ladder.DAGSearch over the unified
// graph -- mirroring extract_solution's walk back up the winning
// vertex's parent chain.
func (g *Graph) ExtractSolution(ctx context.Context) (*ladder.Graph, *ladder.DAGSearch, error) {
	best := g.bestVertexAtRung(len(g.Rungs) - 1)

	chain := make([]int, len(g.Rungs))
	for idx := best; idx != -1; idx = g.vertex(idx).ParentIdx {
		v := g.vertex(idx)
		chain[v.RungID] = idx
	}

	var unified *ladder.Graph
	for r, rung := range g.Rungs {
		v := g.vertex(chain[r])
		poses := posesFor(rung, v.Phi, v.Theta, v.Yaw)

		solutions, err := solveAllWaypoints(ctx, rung, poses)
		if err != nil {
			return nil, nil, err
		}
		unit, err := ladder.New(g.Dof, solutions)
		if err != nil {
			return nil, nil, err
		}
		unit.BuildEdges(nil)

		if unified == nil {
			unified = unit
		} else {
			unified, err = ladder.Append(unified, unit)
			if err != nil {
				return nil, nil, err
			}
		}
	}

	search := ladder.NewDAGSearch(unified)
	search.Run()
	return unified, search, nil
}

// solveAllWaypoints re-solves IK and collision-filters at every waypoint
// pose (unlike checkFeasibility's first/last-only caching), since
// ExtractSolution needs a full ladder graph for the final trajectory.
func solveAllWaypoints(ctx context.Context, rung CapRung, poses []spatial.Pose) ([][]kinematics.JointVector, error) {
	out := make([][]kinematics.JointVector, len(poses))
	for i, pose := range poses {
		sols, err := rung.IK.Solve(ctx, pose)
		if err != nil {
			return nil, err
		}
		free := make([]kinematics.JointVector, 0, len(sols))
		for _, s := range sols {
			ok, err := rung.Collision.CollisionFree(s)
			if err != nil {
				return nil, err
			}
			if ok {
				free = append(free, s)
			}
		}
		out[i] = free
	}
	return out, nil
}
