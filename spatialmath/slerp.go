package spatialmath

import (
	"math"

	"go.viam.com/spatial/utils"
)

// SlerpParallelThreshold controls when Slerp falls back to normalized linear interpolation:
// once the shortest-path dot product exceeds 1 - SlerpParallelThreshold the angle between the
// inputs is too small for 1/sin(θ) to be computed reliably.
const SlerpParallelThreshold = 1e-6

// MaxPathSamples bounds the number of quaternions SlerpPath returns.
const MaxPathSamples = 1 << 20

// Lerp interpolates q0 and q1 component-wise: q0*(1-t) + q1*t. t is not clamped.
func Lerp(q0, q1 Quaternion, t float64) Quaternion {
	return add(scale(1-t, q0), scale(t, q1))
}

// Nlerp returns Lerp(q0, q1, t) scaled to unit norm. It fails with a DegenerateQuaternionError
// when the interpolated value has no direction, e.g. q1 == -q0 at t = 0.5.
func Nlerp(q0, q1 Quaternion, t float64) (Quaternion, error) {
	return Normalize(Lerp(q0, q1, t))
}

// Slerp interpolates between the unit quaternions q0 and q1 along the shorter great-circle arc
// with constant angular velocity. t = 0 gives q0 and t = 1 gives q1 or -q1, whichever is closer
// to q0. Values of t outside [0, 1] extrapolate along the same arc; callers wanting clamped
// interpolation clamp t themselves.
//
// The inputs must already be unit quaternions; this is not checked. The result is normalized.
func Slerp(q0, q1 Quaternion, t float64) Quaternion {
	d := Dot(q0, q1)
	if d < 0 {
		q1 = Flip(q1)
		d = -d
	}

	if d > 1-SlerpParallelThreshold {
		// Nearly the same orientation. Unit inputs keep the lerp away from zero, so the
		// degenerate case of Normalize cannot occur here.
		l := Lerp(q0, q1, t)
		return scale(1/Norm(l), l)
	}

	theta := math.Acos(utils.Clamp(d, -1, 1))
	sinTheta := math.Sin(theta)
	s0 := math.Sin((1-t)*theta) / sinTheta
	s1 := math.Sin(t*theta) / sinTheta

	out := add(scale(s0, q0), scale(s1, q1))
	return scale(1/Norm(out), out)
}

// SlerpPath samples Slerp between each consecutive pair of keyframes. Each segment contributes
// steps samples starting at its first keyframe, and the final keyframe closes the path, so the
// result holds (len(keyframes)-1)*steps + 1 quaternions, which may not exceed MaxPathSamples.
// Keyframes must be unit quaternions.
func SlerpPath(keyframes []Quaternion, steps int) ([]Quaternion, error) {
	if len(keyframes) < 2 {
		return nil, NewTooFewKeyframesError(len(keyframes))
	}
	maxSteps := (MaxPathSamples - 1) / (len(keyframes) - 1)
	if steps < 1 || steps > maxSteps {
		return nil, NewInvalidStepsError(steps, maxSteps)
	}

	path := make([]Quaternion, 0, (len(keyframes)-1)*steps+1)
	for i := 0; i < len(keyframes)-1; i++ {
		from, to := keyframes[i], keyframes[i+1]
		for s := 0; s < steps; s++ {
			path = append(path, Slerp(from, to, float64(s)/float64(steps)))
		}
	}
	return append(path, keyframes[len(keyframes)-1]), nil
}
