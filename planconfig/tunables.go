// Package planconfig decodes the planner's tunable parameters (spec.md
// S6 "Tunables") out of a generic map, the way go.viam.com/rdk decodes
// component/resource attribute maps throughout its config package.
package planconfig

import (
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"go.viam.com/choreo/kinematics"
	"go.viam.com/choreo/sequence"
	"go.viam.com/choreo/sparseladder"
)

// Tunables holds the planner's knobs: direction-grid resolution, waypoint
// spacing, the sparse ladder graph's per-rung and global timeouts and yaw
// sample count, and the IK-check-during-pruning toggle. It has no
// joint-resolution or self-collision-toggle field. Grid defaults follow
// PHI_DISC=THETA_DISC=4 from spec.md's S8 seed scenarios.
type Tunables struct {
	PhiDisc        int           `mapstructure:"phi_disc"`
	ThetaDisc      int           `mapstructure:"theta_disc"`
	WaypointStep   float64       `mapstructure:"waypoint_disc_len"`
	RungTimeout    time.Duration `mapstructure:"rung_timeout"`
	GlobalTimeout  time.Duration `mapstructure:"global_timeout"`
	YawSamples     int           `mapstructure:"yaw_samples"`
	CheckIKInPrune bool          `mapstructure:"check_ik_in_prune"`
}

// Default returns the Tunables used throughout spec.md's own examples.
func Default() Tunables {
	return Tunables{
		PhiDisc:        4,
		ThetaDisc:      4,
		WaypointStep:   0.01,
		RungTimeout:    10 * time.Second,
		GlobalTimeout:  4 * time.Second,
		YawSamples:     16,
		CheckIKInPrune: true,
	}
}

// Decode merges raw (e.g. parsed from the out-of-scope shape/config
// loader) onto Default(), returning the resulting Tunables.
func Decode(raw map[string]interface{}) (Tunables, error) {
	t := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &t,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Tunables{}, errors.Wrap(err, "planconfig: building decoder")
	}
	if err := dec.Decode(raw); err != nil {
		return Tunables{}, errors.Wrap(err, "planconfig: decoding tunables")
	}
	return t, nil
}

// Validate checks the invariants spec.md assumes everywhere (positive
// grid resolution, positive waypoint spacing).
func (t Tunables) Validate() error {
	if t.PhiDisc <= 0 || t.ThetaDisc <= 0 {
		return errors.New("planconfig: phi_disc and theta_disc must be positive")
	}
	if t.WaypointStep <= 0 {
		return errors.New("planconfig: waypoint_disc_len must be positive")
	}
	return nil
}

// SequenceOptions carries the subset of t that sequence.New's CSP
// construction actually reads -- a composition root wiring Tunables
// into a real sequence.Options. mode and staticObstacles are supplied
// by the caller's run, not by Tunables itself.
func (t Tunables) SequenceOptions(mode sequence.Mode, staticObstacles []kinematics.RigidBody) sequence.Options {
	return sequence.Options{
		Mode:            mode,
		WaypointStep:    t.WaypointStep,
		StaticObstacles: staticObstacles,
		CheckIKInPrune:  t.CheckIKInPrune,
	}
}

// SparseLadderOptions carries the subset of t that sparseladder.New
// reads to bound Initialize/Improve/FindPath.
func (t Tunables) SparseLadderOptions() sparseladder.Options {
	return sparseladder.Options{
		RungTimeout:   t.RungTimeout,
		GlobalTimeout: t.GlobalTimeout,
		YawSamples:    t.YawSamples,
	}
}
