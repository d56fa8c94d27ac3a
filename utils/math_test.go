package utils

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func withinAbs(a, b mgl32.Vec3, tolerance float64) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > tolerance {
			return false
		}
	}
	return true
}

func TestEulerQuatRoundTrip(t *testing.T) {
	for _, e := range []mgl32.Vec3{
		{0, 0, 0},
		{0.5, 0, 0},
		{0, -0.7, 0},
		{0, 0, 2.5},
		{0.1, 0.2, 0.3},
		{-1.2, 0.4, -2.9},
	} {
		q := EulerToQuat(e)
		if l := q.Len(); math.Abs(float64(l)-1) > 1e-5 {
			t.Errorf("EulerToQuat(%v) length %v", e, l)
		}
		if back := QuatToEuler(q); !withinAbs(back, e, 1e-4) {
			t.Errorf("QuatToEuler(EulerToQuat(%v))=%v", e, back)
		}
	}
}

func TestRadiansToDegreeV3(t *testing.T) {
	got := RadiansToDegreeV3(mgl32.Vec3{math.Pi, -math.Pi / 2, 0})
	if !withinAbs(got, mgl32.Vec3{180, -90, 0}, 1e-3) {
		t.Errorf("RadiansToDegreeV3=%v", got)
	}
}
