package sparseladder

import (
	"context"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"go.viam.com/choreo/kinematics"
	"go.viam.com/choreo/spatial"
)

// sampleOrientation picks a random candidate direction from rung.EEDirs
// and a yaw about the approach axis, via rng -- never a package-level
// RNG, per spec.md S5/S9's seedability requirement. yawSamples > 0
// discretizes yaw into that many evenly spaced buckets (planconfig.
// Tunables.YawSamples); otherwise yaw is sampled continuously.
func sampleOrientation(rung CapRung, rng *rand.Rand, yawSamples int) (phi, theta, yaw float64) {
	dir := rung.EEDirs[rng.Intn(len(rung.EEDirs))]
	if yawSamples > 0 {
		idx := rng.Intn(yawSamples)
		bucket := 2 * math.Pi / float64(yawSamples)
		return dir.Phi, dir.Theta, -math.Pi + (float64(idx)+0.5)*bucket
	}
	yawDist := distuv.Uniform{Min: -math.Pi, Max: math.Pi, Src: rng}
	return dir.Phi, dir.Theta, yawDist.Rand()
}

func posesFor(rung CapRung, phi, theta, yaw float64) []spatial.Pose {
	poses := make([]spatial.Pose, len(rung.PathPts))
	for i, pt := range rung.PathPts {
		poses[i] = spatial.PoseAt(pt, phi, theta, yaw)
	}
	return poses
}

// checkFeasibility solves IK at every pose, keeping only collision-free
// solutions, and caches the first and last waypoint's solution sets onto
// vert (mirroring check_cap_vert_feasibility's "only store the first and
// last sol" optimization -- every waypoint is re-solved later in
// ExtractSolution). It reports false if any waypoint has no
// collision-free solution.
func checkFeasibility(ctx context.Context, rung CapRung, poses []spatial.Pose, vert *CapVertex) (bool, error) {
	for i, pose := range poses {
		sols, err := rung.IK.Solve(ctx, pose)
		if err != nil {
			return false, err
		}
		free := make([]kinematics.JointVector, 0, len(sols))
		for _, s := range sols {
			ok, err := rung.Collision.CollisionFree(s)
			if err != nil {
				return false, err
			}
			if ok {
				free = append(free, s)
			}
		}
		if len(free) == 0 {
			return false, nil
		}
		if i == 0 {
			vert.StartJt = free
		}
		if i == len(poses)-1 {
			vert.EndJt = free
		}
	}
	return true, nil
}

// perRungAttempts bounds how many samples Phase 1 tries per rung before
// giving up with ErrRungTimeout. The original samples against a wall-clock
// timeout; a fixed attempt budget gives the same "give up eventually"
// behavior deterministically given a seeded rng.
const perRungAttempts = 200

// Initialize runs Phase 1 (sc_cartesian_planner.py's find_sparse_path
// initial-solution loop): sample one feasible cap vertex per rung in
// order, chaining each to the previous rung's vertex as parent. Returns
// the initial (pre-improvement) total cost, or ErrRungTimeout if a rung
// can't find any feasible sample within its attempt budget.
func (g *Graph) Initialize(ctx context.Context, rng *rand.Rand) (float64, error) {
	prevIdx := -1
	for r, rung := range g.Rungs {
		idx, err := g.initRung(ctx, r, rung, rng, prevIdx)
		if err != nil {
			return 0, err
		}
		prevIdx = idx
	}

	return g.bestCostAtRung(len(g.Rungs) - 1), nil
}

// initRung runs Phase 1's per-rung sampling loop, bounded by both ctx
// and (if set) Options.RungTimeout, and returns the new vertex's arena
// index chained to prevIdx.
func (g *Graph) initRung(ctx context.Context, r int, rung CapRung, rng *rand.Rand, prevIdx int) (int, error) {
	rungCtx := ctx
	if g.opts.RungTimeout > 0 {
		var cancel context.CancelFunc
		rungCtx, cancel = context.WithTimeout(ctx, g.opts.RungTimeout)
		defer cancel()
	}

	for attempt := 0; attempt < perRungAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}
		select {
		case <-rungCtx.Done():
			return 0, NewRungTimeoutErr(r)
		default:
		}

		phi, theta, yaw := sampleOrientation(rung, rng, g.opts.YawSamples)
		poses := posesFor(rung, phi, theta, yaw)
		vert := CapVertex{RungID: r, Phi: phi, Theta: theta, Yaw: yaw}
		ok, err := checkFeasibility(ctx, rung, poses, &vert)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}

		vert.ParentIdx = prevIdx
		vert.ParentCost = distanceTo(&vert, g.vertex(prevIdx))
		return g.addVertex(vert), nil
	}
	return 0, NewRungTimeoutErr(r)
}

func (g *Graph) bestCostAtRung(r int) float64 {
	best := math.Inf(1)
	for _, idx := range g.rungVerts[r] {
		if c := g.costToRoot(idx); c < best {
			best = c
		}
	}
	return best
}

func (g *Graph) bestVertexAtRung(r int) int {
	best := -1
	bestCost := math.Inf(1)
	for _, idx := range g.rungVerts[r] {
		if c := g.costToRoot(idx); c < bestCost {
			bestCost = c
			best = idx
		}
	}
	return best
}

// Improve runs Phase 2 (the RRT*-style tree repair loop): until ctx is
// done, sample a new cap vertex in a random rung, attach it to its
// cheapest-to-root neighbor in the previous rung, then re-parent any
// next-rung vertex that would become cheaper through the new vertex.
// Returns the best cost reachable at the final rung after improvement.
func (g *Graph) Improve(ctx context.Context, rng *rand.Rand) (float64, error) {
	for {
		select {
		case <-ctx.Done():
			return g.bestCostAtRung(len(g.Rungs) - 1), nil
		default:
		}

		r := rng.Intn(len(g.Rungs))
		rung := g.Rungs[r]
		phi, theta, yaw := sampleOrientation(rung, rng, g.opts.YawSamples)
		poses := posesFor(rung, phi, theta, yaw)
		vert := CapVertex{RungID: r, Phi: phi, Theta: theta, Yaw: yaw}

		ok, err := checkFeasibility(ctx, rung, poses, &vert)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}

		nearest := -1
		cMin := math.Inf(1)
		if r > 0 {
			for _, candIdx := range g.rungVerts[r-1] {
				cand := &g.verts[candIdx]
				cost := g.costToRoot(candIdx) + distanceTo(&vert, cand)
				if cost < cMin {
					cMin = cost
					nearest = candIdx
				}
			}
		}

		vert.ParentIdx = nearest
		vert.ParentCost = distanceTo(&vert, g.vertex(nearest))
		newIdx := g.addVertex(vert)

		if r < len(g.Rungs)-1 {
			newCost := g.costToRoot(newIdx)
			for _, nextIdx := range g.rungVerts[r+1] {
				next := &g.verts[nextIdx]
				oldCost := g.costToRoot(nextIdx)
				newNextCost := newCost + distanceTo(next, &g.verts[newIdx])
				if newNextCost < oldCost {
					next.ParentIdx = newIdx
					next.ParentCost = distanceTo(next, &g.verts[newIdx])
				}
			}
		}
	}
}
