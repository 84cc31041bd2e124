// Package planlog writes a persistent JSON solve-log record per planning
// run, tagged with a run id the way go.viam.com/rdk tags operations with
// uuid.New() (operation/web.go's opid pattern).
package planlog

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"go.viam.com/choreo/assembly"
	"go.viam.com/choreo/sequence"
)

// OrientationRecord is one element's chosen (phi, theta, yaw) direction
// in the final solution.
type OrientationRecord struct {
	Element assembly.ElementID `json:"element"`
	Phi     float64            `json:"phi"`
	Theta   float64            `json:"theta"`
	Yaw     float64            `json:"yaw"`
}

// AssignEvent is planlog's own serializable shape for one sequence.
// AssignEvent, following the same convention as OrientationRecord: the
// persistent log defines its own JSON-tagged record rather than
// reusing a domain package's type directly.
type AssignEvent struct {
	Position int                `json:"position"`
	Element  assembly.ElementID `json:"element"`
	Restored bool               `json:"restored"`
}

// Record is the persistent solve-log entry for one planning run: spec.md
// S6's "Outputs" plus the diagnostics S7 calls for on failure.
type Record struct {
	RunID     string `json:"run_id"`
	Mode      string `json:"mode"`
	ShapeFile string `json:"shape_file,omitempty"`
	// ElementCount and GroundedCount are the input network's size and
	// grounded-element count, for diagnosing runs without re-parsing the
	// shape file.
	ElementCount  int                  `json:"element_count"`
	GroundedCount int                  `json:"grounded_count"`
	Sequence      []assembly.ElementID `json:"sequence"`
	Complete      bool                 `json:"complete"`
	Assigns       int                  `json:"assigns"`
	Backtracks    int                  `json:"backtracks"`
	// AssignHistory is every suppose call made during the search, in
	// order, including branches later undone by backtracking.
	AssignHistory  []AssignEvent       `json:"assign_history,omitempty"`
	Orientations   []OrientationRecord `json:"orientations,omitempty"`
	TrajectoryCost float64             `json:"trajectory_cost,omitempty"`
	SolveTime      time.Duration       `json:"solve_time_ns"`
	Error          string              `json:"error,omitempty"`
}

// New starts a Record tagged with a fresh run id.
func New(mode string) *Record {
	return &Record{RunID: uuid.New().String(), Mode: mode}
}

// Populate fills r's network- and search-derived fields from net and
// res, the way a caller running sequence.Search against a parsed
// assembly.Network would build the log entry for that run. solveTime is
// the wall-clock duration of the Search call.
func (r *Record) Populate(net *assembly.Network, res sequence.Result, solveTime time.Duration) {
	r.ElementCount = net.Size()
	r.GroundedCount = len(net.GroundedElements())
	r.Sequence = res.Sequence
	r.Complete = res.Complete
	r.Assigns = res.Assigns
	r.Backtracks = res.Backtracks
	r.SolveTime = solveTime

	r.AssignHistory = make([]AssignEvent, len(res.History))
	for i, evt := range res.History {
		r.AssignHistory[i] = AssignEvent{
			Position: evt.Position,
			Element:  evt.Element,
			Restored: evt.Restored,
		}
	}
}

// Write encodes r as pretty-printed JSON to w.
func (r *Record) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, "planlog: encoding record")
	}
	return nil
}
