package kinematics

import (
	"github.com/pkg/errors"
)

// ErrOracleContract is returned when an IK or collision oracle violates
// its contract (wrong dof, or a collision call itself failing). This is
// always fatal and propagated -- never recovered from locally.
var ErrOracleContract = errors.New("kinematics: oracle contract violation")

// NewDofMismatchErr wraps ErrOracleContract with the expected/actual dof.
func NewDofMismatchErr(want, got int) error {
	return errors.Wrapf(ErrOracleContract, "expected dof %d, got %d", want, got)
}
