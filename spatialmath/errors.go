package spatialmath

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrDegenerateQuaternion is matched (via errors.Is) by every DegenerateQuaternionError.
var ErrDegenerateQuaternion = errors.New("degenerate quaternion")

// DegenerateQuaternionError is returned when an operation needs to divide by the norm of a
// quaternion whose norm is zero or indistinguishable from zero.
type DegenerateQuaternionError struct {
	Op   string
	Norm float64
}

// NewDegenerateQuaternionError is used when op cannot proceed on a quaternion of the given norm.
func NewDegenerateQuaternionError(op string, norm float64) error {
	return &DegenerateQuaternionError{Op: op, Norm: norm}
}

func (e *DegenerateQuaternionError) Error() string {
	return fmt.Sprintf("cannot %s quaternion with norm %g: %v", e.Op, e.Norm, ErrDegenerateQuaternion)
}

// Is lets errors.Is match ErrDegenerateQuaternion.
func (e *DegenerateQuaternionError) Is(target error) bool {
	return target == ErrDegenerateQuaternion
}

// IsDegenerateQuaternionError returns true if err is or wraps a DegenerateQuaternionError.
func IsDegenerateQuaternionError(err error) bool {
	var target *DegenerateQuaternionError
	return errors.As(err, &target)
}

// NewTooFewKeyframesError is used when a path has fewer than two keyframes to interpolate between.
func NewTooFewKeyframesError(count int) error {
	return errors.Errorf("need at least 2 keyframes to build a path, got %d", count)
}

// NewInvalidStepsError is used when a path is sampled with fewer than one step per segment, or
// with more than maxSteps.
func NewInvalidStepsError(steps, maxSteps int) error {
	if maxSteps < 1 {
		return errors.Errorf("too many keyframes to sample a path of at most %d quaternions", MaxPathSamples)
	}
	return errors.Errorf("steps per segment must be between 1 and %d, got %d", maxSteps, steps)
}
