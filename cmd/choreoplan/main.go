// Command choreoplan is a thin CLI wrapper around planconfig.Tunables:
// it decodes flags into a Tunables value, validates it, and prints the
// result. Per spec.md's scope, the CLI surface itself is out of scope --
// it owns no IK/collision oracle and performs no actual sequencing or
// trajectory planning; real callers wire the resolved Tunables into a
// sequence.Options/sparseladder.Options via Tunables.SequenceOptions and
// Tunables.SparseLadderOptions, then construct sequence.New/
// sparseladder.New themselves with their own oracles.
package main

import (
	"encoding/json"
	"os"

	"github.com/urfave/cli/v2"

	"go.viam.com/choreo/logging"
	"go.viam.com/choreo/planconfig"
)

func main() {
	// logger is resolved in Before, once --log-json has been parsed, so
	// its value must be read from this pointer rather than captured by
	// value at app-construction time.
	var logger logging.Logger

	app := &cli.App{
		Name:  "choreoplan",
		Usage: "additive-assembly planner tunable inspection",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "log-json", Usage: "emit JSON-structured logs instead of the development console format"},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("log-json") {
				l, err := logging.NewJSON("choreoplan")
				if err != nil {
					return err
				}
				logger = l
				return nil
			}
			logger = logging.New("choreoplan")
			return nil
		},
		Commands: []*cli.Command{
			tunablesCommand(&logger),
		},
	}

	if err := app.Run(os.Args); err != nil {
		if logger == nil {
			logger = logging.New("choreoplan")
		}
		logger.Errorw("choreoplan failed", "error", err)
		os.Exit(1)
	}
}

func tunablesCommand(logger *logging.Logger) *cli.Command {
	return &cli.Command{
		Name:  "tunables",
		Usage: "decode and print the effective Tunables for this run",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "phi-disc"},
			&cli.IntFlag{Name: "theta-disc"},
			&cli.Float64Flag{Name: "waypoint-step"},
			&cli.BoolFlag{Name: "check-ik-in-prune"},
			&cli.DurationFlag{Name: "rung-timeout"},
			&cli.DurationFlag{Name: "global-timeout"},
			&cli.IntFlag{Name: "yaw-samples"},
		},
		Action: func(c *cli.Context) error {
			raw := map[string]interface{}{}
			if c.IsSet("phi-disc") {
				raw["phi_disc"] = c.Int("phi-disc")
			}
			if c.IsSet("theta-disc") {
				raw["theta_disc"] = c.Int("theta-disc")
			}
			if c.IsSet("waypoint-step") {
				raw["waypoint_disc_len"] = c.Float64("waypoint-step")
			}
			if c.IsSet("check-ik-in-prune") {
				raw["check_ik_in_prune"] = c.Bool("check-ik-in-prune")
			}
			if c.IsSet("rung-timeout") {
				raw["rung_timeout"] = c.Duration("rung-timeout")
			}
			if c.IsSet("global-timeout") {
				raw["global_timeout"] = c.Duration("global-timeout")
			}
			if c.IsSet("yaw-samples") {
				raw["yaw_samples"] = c.Int("yaw-samples")
			}

			tun, err := planconfig.Decode(raw)
			if err != nil {
				return err
			}
			if err := tun.Validate(); err != nil {
				return err
			}

			(*logger).Infow("resolved tunables", "phi_disc", tun.PhiDisc, "theta_disc", tun.ThetaDisc)
			enc := json.NewEncoder(c.App.Writer)
			enc.SetIndent("", "  ")
			return enc.Encode(tun)
		},
	}
}
