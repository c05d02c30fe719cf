package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// vertical is the panorama's up axis; the rig rotates about it.
var vertical = r3.Vec{Y: 1}

// Ring returns n rotations evenly spaced around the vertical axis, one per
// virtual camera: rotation i turns by 2*pi*i/n radians, so index 0 is the
// identity and the camera looks along the panorama's forward direction.
// The slice order is significant; callers use the index to name outputs.
// n must be >= 1, enforced by configuration validation before this runs.
func Ring(n int) []r3.Rotation {
	alpha := 2.0 * math.Pi / float64(n)
	rig := make([]r3.Rotation, n)
	for i := range rig {
		rig[i] = r3.NewRotation(alpha*float64(i), vertical)
	}
	return rig
}
