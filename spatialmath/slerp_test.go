package spatialmath

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.viam.com/test"
)

func mustNormalize(t *testing.T, q Quaternion) Quaternion {
	t.Helper()
	unit, err := Normalize(q)
	test.That(t, err, test.ShouldBeNil)
	return unit
}

func TestSlerp(t *testing.T) {
	q1 := q45x
	q2 := Conj(q45x)
	s1 := Slerp(q1, q2, 0.25)
	s2 := Slerp(q1, q2, 0.5)

	expect1 := NewQuaternion(0.9808, 0.1951, 0, 0)
	expect2 := IdentityQuaternion()

	test.That(t, s1.Real, test.ShouldAlmostEqual, expect1.Real, 0.001)
	test.That(t, s1.Imag, test.ShouldAlmostEqual, expect1.Imag, 0.001)
	test.That(t, s1.Jmag, test.ShouldAlmostEqual, expect1.Jmag, 0.001)
	test.That(t, s1.Kmag, test.ShouldAlmostEqual, expect1.Kmag, 0.001)
	test.That(t, s2.Real, test.ShouldAlmostEqual, expect2.Real)
	test.That(t, s2.Imag, test.ShouldAlmostEqual, expect2.Imag)
	test.That(t, s2.Jmag, test.ShouldAlmostEqual, expect2.Jmag)
	test.That(t, s2.Kmag, test.ShouldAlmostEqual, expect2.Kmag)
}

func TestSlerpKnownPair(t *testing.T) {
	q0 := mustNormalize(t, NewQuaternion(1, 2, 3, 4))
	q1 := mustNormalize(t, NewQuaternion(2, -2, 1, 1))

	q := Slerp(q0, q1, 0.2)
	test.That(t, Norm(q), test.ShouldAlmostEqual, 1., 1e-9)
	test.That(t, q.W(), test.ShouldAlmostEqual, 0.3297313833861064, 1e-9)
	test.That(t, q.X(), test.ShouldAlmostEqual, 0.15844657720655952, 1e-9)
	test.That(t, q.Y(), test.ShouldAlmostEqual, 0.5716806588536082, 1e-9)
	test.That(t, q.Z(), test.ShouldAlmostEqual, 0.7344066457178302, 1e-9)

	// closer to the start than the end since t < 0.5
	test.That(t, Dot(q, q0), test.ShouldBeGreaterThan, Dot(q, q1))
	// on the arc between the two
	test.That(t, AngleBetween(q0, q)+AngleBetween(q, q1), test.ShouldAlmostEqual, AngleBetween(q0, q1), 1e-9)
	test.That(t, AngleBetween(q0, q), test.ShouldAlmostEqual, 0.2*AngleBetween(q0, q1), 1e-9)
}

func TestSlerpEndpoints(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	for i := 0; i < 200; i++ {
		q0 := randomUnitQuaternion(t, rng)
		q1 := randomUnitQuaternion(t, rng)
		test.That(t, AlmostEqual(Slerp(q0, q1, 0), q0, 1e-9), test.ShouldBeTrue)
		test.That(t, AlmostEquivalent(Slerp(q0, q1, 1), q1, 1e-9), test.ShouldBeTrue)
	}
}

func TestSlerpUnitNorm(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		q0 := randomUnitQuaternion(t, rng)
		q1 := randomUnitQuaternion(t, rng)
		for step := 0; step <= 20; step++ {
			q := Slerp(q0, q1, float64(step)/20)
			test.That(t, IsFinite(q), test.ShouldBeTrue)
			test.That(t, Norm(q), test.ShouldAlmostEqual, 1., 1e-6)
		}
	}
}

func TestSlerpShortestPath(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	for i := 0; i < 200; i++ {
		q0 := randomUnitQuaternion(t, rng)
		q1 := randomUnitQuaternion(t, rng)
		if Dot(q0, q1) > 0 {
			q1 = Flip(q1)
		}
		for step := 0; step <= 10; step++ {
			tt := float64(step) / 10
			q := Slerp(q0, q1, tt)
			// never more than 90 degrees from the start on the hypersphere
			test.That(t, Dot(q0, q), test.ShouldBeGreaterThanOrEqualTo, -1e-12)
			// q1 and -q1 give the same path
			test.That(t, AlmostEqual(q, Slerp(q0, Flip(q1), tt), 1e-9), test.ShouldBeTrue)
		}
	}
}

func TestSlerpAntipodal(t *testing.T) {
	q := mustNormalize(t, NewQuaternion(1, 2, 3, 4))
	for _, tt := range []float64{0, 0.3, 0.5, 1, 1.5} {
		test.That(t, AlmostEquivalent(Slerp(q, Flip(q), tt), q, 1e-12), test.ShouldBeTrue)
	}
}

func TestSlerpSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	for i := 0; i < 200; i++ {
		q0 := randomUnitQuaternion(t, rng)
		q1 := randomUnitQuaternion(t, rng)
		tt := rng.Float64()
		test.That(t, AlmostEquivalent(Slerp(q0, q1, tt), Slerp(q1, q0, 1-tt), 1e-9), test.ShouldBeTrue)
	}
}

func TestSlerpNearParallel(t *testing.T) {
	q0 := mustNormalize(t, NewQuaternion(1, 2, 3, 4))
	delta := NewQuaternion(0.3, -0.7, 0.2, 0.1)

	for _, eps := range []float64{1e-2, 3e-3, 2e-3, 1e-3, 1e-4, 1e-5, 1e-6, 1e-7, 1e-8, 1e-9, 1e-12, 0} {
		q1 := mustNormalize(t, add(q0, scale(eps, delta)))
		for _, tt := range []float64{-0.5, 0, 0.25, 0.5, 0.75, 1, 1.5} {
			q := Slerp(q0, q1, tt)
			test.That(t, IsFinite(q), test.ShouldBeTrue)
			test.That(t, Norm(q), test.ShouldAlmostEqual, 1., 1e-9)

			nlerp, err := Nlerp(q0, q1, tt)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, AlmostEqual(q, nlerp, 1e-6), test.ShouldBeTrue)
		}
	}

	// identical inputs take the fallback and return the input
	test.That(t, AlmostEqual(Slerp(q0, q0, 0.4), q0, 1e-12), test.ShouldBeTrue)
}

func TestSlerpAgreesWithMathgl(t *testing.T) {
	rng := rand.New(rand.NewSource(14))
	for i := 0; i < 200; i++ {
		q0 := randomUnitQuaternion(t, rng)
		q1 := randomUnitQuaternion(t, rng)
		if Dot(q0, q1) < 0 {
			q1 = Flip(q1)
		}
		if Dot(q0, q1) > 0.999 {
			continue
		}
		tt := rng.Float64()
		want := QuaternionFromMgl(mgl64.QuatSlerp(q0.Mgl(), q1.Mgl(), tt))
		test.That(t, AlmostEqual(Slerp(q0, q1, tt), want, 1e-9), test.ShouldBeTrue)
	}
}

func TestSlerpExtrapolation(t *testing.T) {
	q0 := mustNormalize(t, NewQuaternion(1, 2, 3, 4))
	q1 := mustNormalize(t, NewQuaternion(2, -2, 1, 1))
	for _, tt := range []float64{-0.5, 1.5} {
		q := Slerp(q0, q1, tt)
		test.That(t, IsFinite(q), test.ShouldBeTrue)
		test.That(t, Norm(q), test.ShouldAlmostEqual, 1., 1e-9)
	}

	// twice a 45 degree turn is a 90 degree turn
	q := Slerp(IdentityQuaternion(), q45x, 2)
	test.That(t, AlmostEqual(q, Mul(q45x, q45x), 1e-9), test.ShouldBeTrue)

	// and going backwards undoes it
	q = Slerp(IdentityQuaternion(), q45x, -1)
	test.That(t, AlmostEqual(q, Conj(q45x), 1e-9), test.ShouldBeTrue)
}

func TestLerp(t *testing.T) {
	a := NewQuaternion(1, 0, 0, 0)
	b := NewQuaternion(0, 1, 0, 0)
	test.That(t, Lerp(a, b, 0.5), test.ShouldResemble, NewQuaternion(0.5, 0.5, 0, 0))
	test.That(t, Lerp(a, b, 2), test.ShouldResemble, NewQuaternion(-1, 2, 0, 0))

	n, err := Nlerp(a, b, 0.5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, AlmostEqual(n, NewQuaternion(math.Sqrt2/2, math.Sqrt2/2, 0, 0), 1e-12), test.ShouldBeTrue)

	_, err = Nlerp(a, Flip(a), 0.5)
	test.That(t, IsDegenerateQuaternionError(err), test.ShouldBeTrue)
}

func TestSlerpPath(t *testing.T) {
	q90x := Mul(q45x, q45x)
	keyframes := []Quaternion{IdentityQuaternion(), q45x, q90x}

	path, err := SlerpPath(keyframes, 4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, path, test.ShouldHaveLength, 9)
	test.That(t, path[0], test.ShouldResemble, keyframes[0])
	test.That(t, AlmostEqual(path[4], q45x, 1e-12), test.ShouldBeTrue)
	test.That(t, path[8], test.ShouldResemble, q90x)
	for i := 1; i < len(path); i++ {
		// evenly spaced along a single axis
		test.That(t, AngleBetween(path[i-1], path[i]), test.ShouldAlmostEqual, th/4, 1e-9)
	}

	_, err = SlerpPath(keyframes[:1], 4)
	test.That(t, err, test.ShouldBeError, NewTooFewKeyframesError(1))

	maxSteps := (MaxPathSamples - 1) / 2
	_, err = SlerpPath(keyframes, 0)
	test.That(t, err, test.ShouldBeError, NewInvalidStepsError(0, maxSteps))

	// oversized step counts are rejected before anything is allocated
	for _, steps := range []int{maxSteps + 1, 1 << 40, math.MaxInt} {
		_, err = SlerpPath(keyframes, steps)
		test.That(t, err, test.ShouldBeError, NewInvalidStepsError(steps, maxSteps))
	}

	path, err = SlerpPath(keyframes, maxSteps)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(path), test.ShouldBeLessThanOrEqualTo, MaxPathSamples)
	test.That(t, path[len(path)-1], test.ShouldResemble, q90x)
}

func TestSlerpSharedInputs(t *testing.T) {
	q0 := mustNormalize(t, NewQuaternion(1, 2, 3, 4))
	q1 := mustNormalize(t, NewQuaternion(2, -2, 1, 1))
	want := Slerp(q0, q1, 0.2)

	var wg sync.WaitGroup
	results := make([]Quaternion, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Slerp(q0, q1, 0.2)
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		test.That(t, got, test.ShouldResemble, want)
	}
}
