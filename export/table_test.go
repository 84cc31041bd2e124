package export

import (
	"strings"
	"testing"

	"go.viam.com/test"

	"go.viam.com/choreo/kinematics"
)

func TestGroupByElementTagsFirstLastAndMiddle(t *testing.T) {
	traj := []kinematics.JointVector{{0}, {1}, {2}, {3}}
	wps := GroupByElement(5, 10, traj)

	test.That(t, len(wps), test.ShouldEqual, 4)
	test.That(t, wps[0].Process, test.ShouldEqual, Approach)
	test.That(t, wps[1].Process, test.ShouldEqual, Extrude)
	test.That(t, wps[2].Process, test.ShouldEqual, Extrude)
	test.That(t, wps[3].Process, test.ShouldEqual, Retreat)
	test.That(t, wps[0].Index, test.ShouldEqual, 10)
	test.That(t, wps[3].Index, test.ShouldEqual, 13)
}

func TestTableRendersHeaderAndRows(t *testing.T) {
	wps := GroupByElement(0, 0, []kinematics.JointVector{{0, 1}, {2, 3}})
	out := Table(wps)
	test.That(t, strings.Contains(out, "Element"), test.ShouldBeTrue)
	test.That(t, strings.Contains(out, "approach"), test.ShouldBeTrue)
	test.That(t, strings.Contains(out, "retreat"), test.ShouldBeTrue)
}
