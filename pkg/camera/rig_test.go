package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// yaw extracts the rotation angle about the vertical axis by applying the
// rotation to the forward direction, normalized to [0, 2*pi)
func yaw(rot r3.Rotation) float64 {
	dir := rot.Rotate(r3.Vec{Z: 1})
	a := math.Atan2(dir.X, dir.Z)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// TestRingCount verifies that the rig has exactly one rotation per camera
func TestRingCount(t *testing.T) {
	for _, n := range []int{1, 2, 4, 5, 12} {
		if got := len(Ring(n)); got != n {
			t.Errorf("len(Ring(%d)) = %d, want %d", n, got, n)
		}
	}
}

// TestRingIdentity verifies that the first rotation is the identity
func TestRingIdentity(t *testing.T) {
	for _, n := range []int{1, 3, 5} {
		rot := Ring(n)[0]
		p := r3.Vec{X: 0.3, Y: -0.4, Z: 0.9}
		got := rot.Rotate(p)
		if r3.Norm(r3.Sub(got, p)) > 1e-12 {
			t.Errorf("Ring(%d)[0] is not the identity: %v -> %v", n, p, got)
		}
	}
}

// TestRingAnglesQuarters verifies the four-camera rig angles
func TestRingAnglesQuarters(t *testing.T) {
	rig := Ring(4)
	want := []float64{0, 90, 180, 270}
	for i, rot := range rig {
		got := yaw(rot) * 180 / math.Pi
		// Wrap 360 back to 0 for the comparison
		if math.Abs(got-360) < 1e-9 {
			got = 0
		}
		if math.Abs(got-want[i]) > 1e-9 {
			t.Errorf("Ring(4)[%d] angle = %f degrees, want %f", i, got, want[i])
		}
	}
}

// TestRingAnglesEvenlySpaced verifies spacing and monotonicity for an
// arbitrary split count
func TestRingAnglesEvenlySpaced(t *testing.T) {
	const n = 5
	rig := Ring(n)
	prev := -1.0
	for i, rot := range rig {
		want := 2 * math.Pi * float64(i) / n
		got := yaw(rot)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Ring(%d)[%d] angle = %f, want %f", n, i, got, want)
		}
		if got <= prev {
			t.Errorf("Ring(%d) angles not strictly increasing at index %d", n, i)
		}
		prev = got
	}
}
