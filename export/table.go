// Package export renders a planned trajectory as a tabular sub-process
// breakdown (approach, extrude, retreat per element), the way
// go.viam.com/rdk renders structured data with
// github.com/jedib0t/go-pretty/v6/table (referenceframe/worldstate_test.go).
package export

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"go.viam.com/choreo/assembly"
	"go.viam.com/choreo/kinematics"
)

// SubProcess tags one contiguous slice of a trajectory belonging to one
// element, per spec.md S6's "tagged" sub-process export.
type SubProcess string

// The three sub-processes spec.md groups an element's trajectory into.
const (
	Approach SubProcess = "approach"
	Extrude  SubProcess = "extrude"
	Retreat  SubProcess = "retreat"
)

// Waypoint is one row of the exported trajectory: a global waypoint
// index, the element and sub-process it belongs to, and its joint
// configuration.
type Waypoint struct {
	Index   int
	Element assembly.ElementID
	Process SubProcess
	Joints  kinematics.JointVector
}

// Table renders waypoints as a go-pretty table, one row per waypoint,
// joint values space-joined in a single column (spec.md doesn't fix a
// column-per-joint layout, and dof varies by robot).
func Table(waypoints []Waypoint) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Element", "Sub-process", "Joints"})
	for _, wp := range waypoints {
		t.AppendRow(table.Row{wp.Index, wp.Element, string(wp.Process), jointsString(wp.Joints)})
	}
	return t.Render()
}

func jointsString(jv kinematics.JointVector) string {
	parts := make([]string, len(jv))
	for i, v := range jv {
		parts[i] = strconv.FormatFloat(float64(v), 'f', 4, 64)
	}
	return strings.Join(parts, " ")
}

// GroupByElement builds one Waypoint per entry in a per-element
// trajectory, tagging the first as Approach, the last as Retreat, and
// everything in between as Extrude -- spec.md S6's grouping rule. start
// is the global waypoint index of this element's first entry.
func GroupByElement(id assembly.ElementID, start int, traj []kinematics.JointVector) []Waypoint {
	out := make([]Waypoint, len(traj))
	for i, jv := range traj {
		proc := Extrude
		switch i {
		case 0:
			proc = Approach
		case len(traj) - 1:
			proc = Retreat
		}
		out[i] = Waypoint{Index: start + i, Element: id, Process: proc, Joints: jv}
	}
	return out
}
