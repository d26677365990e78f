package spatialmath

import (
	"github.com/golang/geo/r3"
)

// RotatePoint rotates v by the unit quaternion q, computing q * (0, v) * conj(q).
func RotatePoint(q Quaternion, v r3.Vector) r3.Vector {
	p := Quaternion{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	rotated := Mul(Mul(q, p), Conj(q))
	return r3.Vector{X: rotated.Imag, Y: rotated.Jmag, Z: rotated.Kmag}
}
