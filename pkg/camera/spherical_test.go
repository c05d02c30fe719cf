package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// TestProjectForward verifies that the forward axis lands at the panorama
// center
func TestProjectForward(t *testing.T) {
	sphere := NewSpherical(4096, 2048)

	u, v := sphere.Project(r3.Vec{Z: 1})
	if math.Abs(u-2048) > 1e-9 || math.Abs(v-1024) > 1e-9 {
		t.Errorf("Project(forward) = (%f, %f), want (2048, 1024)", u, v)
	}
}

// TestProjectSeam verifies horizontal wrapping at the longitude seam
func TestProjectSeam(t *testing.T) {
	sphere := NewSpherical(4096, 2048)

	// Looking exactly backward hits the seam; u must stay in [0, W)
	u, _ := sphere.Project(r3.Vec{Z: -1})
	if u < 0 || u >= 4096 {
		t.Errorf("Project(backward) u = %f, want in [0, 4096)", u)
	}

	// Directions just east and just west of the seam land near opposite
	// image edges
	delta := 1e-3
	uEast, _ := sphere.Project(r3.Vec{X: math.Sin(math.Pi - delta), Z: math.Cos(math.Pi - delta)})
	uWest, _ := sphere.Project(r3.Vec{X: math.Sin(-math.Pi + delta), Z: math.Cos(-math.Pi + delta)})
	if uEast < 4090 {
		t.Errorf("u just east of the seam = %f, want near 4096", uEast)
	}
	if uWest > 6 {
		t.Errorf("u just west of the seam = %f, want near 0", uWest)
	}
}

// TestProjectUnnormalized verifies that Project accepts directions of any
// length
func TestProjectUnnormalized(t *testing.T) {
	sphere := NewSpherical(512, 256)

	u1, v1 := sphere.Project(r3.Vec{X: 0.3, Y: -0.2, Z: 0.9})
	u2, v2 := sphere.Project(r3.Scale(7.5, r3.Vec{X: 0.3, Y: -0.2, Z: 0.9}))
	if math.Abs(u1-u2) > 1e-9 || math.Abs(v1-v2) > 1e-9 {
		t.Errorf("Project not scale invariant: (%f, %f) vs (%f, %f)", u1, v1, u2, v2)
	}
}

// TestPixelRoundTrip verifies project(unproject(pixel)) away from the seam
// and the poles
func TestPixelRoundTrip(t *testing.T) {
	sphere := NewSpherical(512, 256)

	for u := 32.0; u < 480.0; u += 37.0 {
		for v := 16.0; v < 240.0; v += 23.0 {
			dir := sphere.Unproject(u, v)
			gotU, gotV := sphere.Project(dir)
			if math.Abs(gotU-u) > 1.0 || math.Abs(gotV-v) > 1.0 {
				t.Errorf("Round trip of (%f, %f) gave (%f, %f)", u, v, gotU, gotV)
			}
		}
	}
}

// TestDirectionRoundTrip verifies unproject(project(direction)) for
// directions strictly inside the valid latitude range
func TestDirectionRoundTrip(t *testing.T) {
	sphere := NewSpherical(1024, 512)

	dirs := []r3.Vec{
		{Z: 1},
		{X: 1},
		{X: -1},
		{X: 0.5, Y: 0.3, Z: 0.8},
		{X: -0.2, Y: -0.7, Z: 0.4},
	}
	for _, want := range dirs {
		want = r3.Unit(want)
		got := sphere.Unproject(sphere.Project(want))
		if r3.Norm(r3.Sub(got, want)) > 1e-9 {
			t.Errorf("Round trip of %v gave %v", want, got)
		}
	}
}
