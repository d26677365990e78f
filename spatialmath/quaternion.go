// Package spatialmath defines quaternion algebra for representing and interpolating orientations.
package spatialmath

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/spatial/utils"
)

// DefaultAlmostEqualTolerance is the per-component tolerance used when comparing quaternions.
const DefaultAlmostEqualTolerance = 1e-9

// Quaternion is the value w + xi + yj + zk. Real holds w and Imag, Jmag, Kmag hold x, y, z.
//
// A Quaternion is a plain value: every function here returns a new Quaternion and none mutate
// their arguments, so values can be shared between goroutines freely. Unit norm is not
// enforced on construction; it is a precondition of the rotation operations (Slerp,
// RotatePoint) and a postcondition of Normalize.
type Quaternion quat.Number

// NewQuaternion returns the quaternion w + xi + yj + zk.
func NewQuaternion(w, x, y, z float64) Quaternion {
	return Quaternion{Real: w, Imag: x, Jmag: y, Kmag: z}
}

// IdentityQuaternion returns the unit quaternion representing no rotation.
func IdentityQuaternion() Quaternion {
	return Quaternion{Real: 1}
}

// W returns the scalar component.
func (q Quaternion) W() float64 { return q.Real }

// X returns the i component.
func (q Quaternion) X() float64 { return q.Imag }

// Y returns the j component.
func (q Quaternion) Y() float64 { return q.Jmag }

// Z returns the k component.
func (q Quaternion) Z() float64 { return q.Kmag }

// Number returns q as a gonum quaternion.
func (q Quaternion) Number() quat.Number {
	return quat.Number(q)
}

// Mgl returns q as a mathgl quaternion.
func (q Quaternion) Mgl() mgl64.Quat {
	return mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}
}

// QuaternionFromMgl converts a mathgl quaternion.
func QuaternionFromMgl(m mgl64.Quat) Quaternion {
	return NewQuaternion(m.W, m.V[0], m.V[1], m.V[2])
}

// String renders q as (w+xi+yj+zk) using the shortest representation of each component that
// parses back to the same float64. ParseQuaternion reverses it.
func (q Quaternion) String() string {
	return fmt.Sprintf("(%g%+gi%+gj%+gk)", q.Real, q.Imag, q.Jmag, q.Kmag)
}

// ParseQuaternion parses the form produced by String, e.g. "(1+2i+3j+4k)".
func ParseQuaternion(s string) (Quaternion, error) {
	n, err := quat.Parse(s)
	if err != nil {
		return Quaternion{}, errors.Wrapf(err, "invalid quaternion %q", s)
	}
	return Quaternion(n), nil
}

type quaternionJSON struct {
	W float64 `json:"w"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// MarshalJSON encodes q as {"w":..,"x":..,"y":..,"z":..}.
func (q Quaternion) MarshalJSON() ([]byte, error) {
	return json.Marshal(quaternionJSON{W: q.Real, X: q.Imag, Y: q.Jmag, Z: q.Kmag})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (q *Quaternion) UnmarshalJSON(data []byte) error {
	var raw quaternionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "invalid quaternion json")
	}
	*q = NewQuaternion(raw.W, raw.X, raw.Y, raw.Z)
	return nil
}

// Norm returns the Euclidean magnitude sqrt(w²+x²+y²+z²). The zero quaternion has norm 0.
func Norm(q Quaternion) float64 {
	return quat.Abs(quat.Number(q))
}

// Normalize returns q scaled to unit norm. Any nonzero finite q can be normalized, however
// small. It fails with a DegenerateQuaternionError when the norm of q is zero, NaN or infinite,
// or so close to zero that its reciprocal overflows.
func Normalize(q Quaternion) (Quaternion, error) {
	n := Norm(q)
	if isDegenerateNorm(n) {
		return Quaternion{}, NewDegenerateQuaternionError("normalize", n)
	}
	return scale(1/n, q), nil
}

// Dot returns the four dimensional dot product of q0 and q1.
func Dot(q0, q1 Quaternion) float64 {
	return q0.Real*q1.Real + q0.Imag*q1.Imag + q0.Jmag*q1.Jmag + q0.Kmag*q1.Kmag
}

// Mul returns the Hamilton product a*b.
func Mul(a, b Quaternion) Quaternion {
	return Quaternion(quat.Mul(quat.Number(a), quat.Number(b)))
}

// Conj returns the conjugate of q.
func Conj(q Quaternion) Quaternion {
	return Quaternion(quat.Conj(quat.Number(q)))
}

// Inverse returns the multiplicative inverse of q. It fails like Normalize, but on the squared
// norm, since that is what the inverse divides by.
func Inverse(q Quaternion) (Quaternion, error) {
	if n := Norm(q); isDegenerateNorm(n * n) {
		return Quaternion{}, NewDegenerateQuaternionError("invert", n)
	}
	return Quaternion(quat.Inv(quat.Number(q))), nil
}

// Flip returns -q, which represents the same rotation as q.
func Flip(q Quaternion) Quaternion {
	return Quaternion{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}

// AlmostEqual returns whether every component of a is within tol of the matching component of b.
func AlmostEqual(a, b Quaternion, tol float64) bool {
	return utils.Float64AlmostEqual(a.Real, b.Real, tol) &&
		utils.Float64AlmostEqual(a.Imag, b.Imag, tol) &&
		utils.Float64AlmostEqual(a.Jmag, b.Jmag, tol) &&
		utils.Float64AlmostEqual(a.Kmag, b.Kmag, tol)
}

// AlmostEquivalent is AlmostEqual up to sign: a and -a are the same orientation.
func AlmostEquivalent(a, b Quaternion, tol float64) bool {
	return AlmostEqual(a, b, tol) || AlmostEqual(a, Flip(b), tol)
}

// AngleBetween returns the rotation angle in radians, in [0, π], that separates the
// orientations q0 and q1. Both must be unit quaternions.
func AngleBetween(q0, q1 Quaternion) float64 {
	return 2 * math.Acos(utils.Clamp(math.Abs(Dot(q0, q1)), 0, 1))
}

// IsFinite reports whether no component of q is NaN or infinite.
func IsFinite(q Quaternion) bool {
	return utils.IsFinite(q.Real) && utils.IsFinite(q.Imag) && utils.IsFinite(q.Jmag) && utils.IsFinite(q.Kmag)
}

// isDegenerateNorm reports whether dividing by n fails to give a finite result.
func isDegenerateNorm(n float64) bool {
	return n == 0 || math.IsNaN(n) || math.IsInf(n, 0) || math.IsInf(1/n, 0)
}

func scale(f float64, q Quaternion) Quaternion {
	return Quaternion(quat.Scale(f, quat.Number(q)))
}

func add(a, b Quaternion) Quaternion {
	return Quaternion(quat.Add(quat.Number(a), quat.Number(b)))
}
