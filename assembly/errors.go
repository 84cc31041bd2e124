package assembly

import "github.com/pkg/errors"

// ErrUnreachableElement is returned by NewNetwork when some element
// cannot be reached via element adjacency from any grounded element --
// the input shape is malformed (spec.md S3 invariant).
var ErrUnreachableElement = errors.New("assembly: element unreachable from any grounded element")

// NewUnreachableElementErr wraps ErrUnreachableElement with the offending
// element id.
func NewUnreachableElementErr(id ElementID) error {
	return errors.Wrapf(ErrUnreachableElement, "element %d", id)
}
