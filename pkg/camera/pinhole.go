// Package camera provides the virtual camera geometry used to slice an
// equirectangular panorama into rectilinear views: a pinhole camera model,
// a spherical (equirectangular) camera model, and a ring rig of evenly
// spaced rotations about the vertical axis.
//
// Coordinate convention: camera frames are x-right, y-down, z-forward.
// All bearing vectors are unit length.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Pinhole is an ideal rectilinear camera defined by its image size, focal
// length and principal point. It is an immutable value; construct it with
// NewPinhole and share it freely across goroutines.
type Pinhole struct {
	// Width and Height are the image dimensions in pixels. The views
	// produced by this tool are square, so Width == Height.
	Width  int
	Height int

	// Focal is the focal length in pixels. Always positive.
	Focal float64

	// Cx, Cy is the principal point in pixel coordinates.
	Cx float64
	Cy float64
}

// FocalFromFOV returns the focal length in pixels of a pinhole camera with
// the given image height and vertical field of view in degrees:
//
//	focal = (height/2) / tan(fov/2)
//
// The result is positive and finite for any fov in (0, 180). Validating the
// field of view is the caller's job (see config.Config.Validate).
func FocalFromFOV(height int, fovDegrees float64) float64 {
	fov := fovDegrees * math.Pi / 180.0
	return (float64(height) / 2.0) / math.Tan(fov/2.0)
}

// NewPinhole builds a square pinhole camera with the given resolution and
// vertical field of view in degrees. The principal point sits at the image
// center.
func NewPinhole(resolution int, fovDegrees float64) Pinhole {
	half := float64(resolution) / 2.0
	return Pinhole{
		Width:  resolution,
		Height: resolution,
		Focal:  FocalFromFOV(resolution, fovDegrees),
		Cx:     half,
		Cy:     half,
	}
}

// Bearing unprojects the pixel (x, y) to the unit direction from the optical
// center through that pixel, in the camera's own frame:
//
//	((x-cx)/focal, (y-cy)/focal, 1), normalized.
//
// The principal point maps to (0, 0, 1), the camera's forward axis.
func (p Pinhole) Bearing(x, y float64) r3.Vec {
	return r3.Unit(r3.Vec{
		X: (x - p.Cx) / p.Focal,
		Y: (y - p.Cy) / p.Focal,
		Z: 1,
	})
}
