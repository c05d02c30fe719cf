package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Spherical is an equirectangular camera model covering the full sphere:
// 360 degrees of longitude across the image width and 180 degrees of
// latitude across the height. For a full panorama Height == Width/2.
//
// Seam and pole convention: longitude lambda = atan2(x, z) lies in (-pi, pi]
// with lambda = 0 (the forward axis) at the horizontal image center, so the
// seam sits at the left/right image edges. Latitude phi = asin(y) grows
// toward the bottom of the image (y-down camera frame); the poles collapse
// to the top and bottom pixel rows, where any longitude is acceptable.
type Spherical struct {
	Width  int
	Height int
}

// NewSpherical builds a spherical camera for a panorama of the given pixel
// dimensions.
func NewSpherical(width, height int) Spherical {
	return Spherical{Width: width, Height: height}
}

// Project maps a bearing vector to equirectangular pixel coordinates.
// The direction does not need to be normalized. u lies in [0, Width),
// v in [0, Height].
func (s Spherical) Project(dir r3.Vec) (u, v float64) {
	lon := math.Atan2(dir.X, dir.Z)
	lat := math.Asin(dir.Y / r3.Norm(dir))
	u = (lon/(2.0*math.Pi) + 0.5) * float64(s.Width)
	v = (lat/math.Pi + 0.5) * float64(s.Height)
	if u >= float64(s.Width) {
		u -= float64(s.Width)
	}
	return u, v
}

// Unproject maps an equirectangular pixel back to a unit bearing vector.
// It is the exact inverse of Project away from the poles.
func (s Spherical) Unproject(u, v float64) r3.Vec {
	lon := (u/float64(s.Width) - 0.5) * 2.0 * math.Pi
	lat := (v/float64(s.Height) - 0.5) * math.Pi
	cosLat := math.Cos(lat)
	return r3.Vec{
		X: math.Sin(lon) * cosLat,
		Y: math.Sin(lat),
		Z: math.Cos(lon) * cosLat,
	}
}
