// Package resample implements the forward reprojection of an
// equirectangular panorama into a set of rectilinear views, one per rig
// rotation. Every destination pixel is unprojected through the pinhole
// model, rotated into panorama space, projected onto the spherical pixel
// grid and filled by bilinear sampling of the source.
package resample

import (
	"errors"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/spatial/r3"

	"pano2pinhole/pkg/camera"
)

var (
	// ErrEmptyImage is returned when the decoded source panorama has zero
	// area; sampling such an image would read out of bounds.
	ErrEmptyImage = errors.New("source panorama has zero area")

	// ErrEmptyRig is returned when the rotation set is empty.
	ErrEmptyRig = errors.New("camera rig has no rotations")
)

// background fills destination pixels that fall outside the panorama's
// valid latitude range.
var background = color.NRGBA{A: 255}

// Split produces one rectilinear view of src per rig rotation. Views are
// independent of each other and are rendered concurrently, one goroutine
// per camera; the shared source and geometry are read-only. The result
// slice is indexed like rig.
func Split(src image.Image, pin camera.Pinhole, rig []r3.Rotation) ([]*image.NRGBA, error) {
	bounds := src.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, ErrEmptyImage
	}
	if len(rig) == 0 {
		return nil, ErrEmptyRig
	}

	// Clone normalizes any decoded image type to a zero-origin NRGBA so
	// the pixel loop can address raw bytes.
	pano := imaging.Clone(src)
	sphere := camera.NewSpherical(pano.Rect.Dx(), pano.Rect.Dy())

	views := make([]*image.NRGBA, len(rig))
	var wg sync.WaitGroup
	wg.Add(len(rig))
	for i := range rig {
		views[i] = imaging.New(pin.Width, pin.Height, background)
		go func(i int) {
			defer wg.Done()
			renderView(pano, sphere, pin, rig[i], views[i])
		}(i)
	}
	wg.Wait()
	return views, nil
}

// renderView fills dst by reprojecting pano through one rotated pinhole
// camera. This is the hot loop: per pixel it does one unprojection, one
// rotation, one spherical projection and a four-tap bilinear fetch, with
// no allocations.
func renderView(pano *image.NRGBA, sphere camera.Spherical, pin camera.Pinhole, rot r3.Rotation, dst *image.NRGBA) {
	for y := 0; y < pin.Height; y++ {
		row := dst.PixOffset(0, y)
		for x := 0; x < pin.Width; x++ {
			dir := rot.Rotate(pin.Bearing(float64(x), float64(y)))
			u, v := sphere.Project(dir)
			r, g, b, ok := bilinear(pano, sphere.Width, sphere.Height, u, v)
			if ok {
				off := row + x*4
				dst.Pix[off] = r
				dst.Pix[off+1] = g
				dst.Pix[off+2] = b
			}
		}
	}
}

// bilinear samples the panorama at the fractional coordinate (u, v).
// u wraps modulo the panorama width so the interpolation spans the
// longitude seam; v is bounded, and coordinates beyond the top or bottom
// row report ok=false so the caller keeps the background.
func bilinear(pano *image.NRGBA, w, h int, u, v float64) (r, g, b uint8, ok bool) {
	u = math.Mod(u, float64(w))
	if u < 0 {
		u += float64(w)
	}
	if v < 0 || v > float64(h-1) {
		return 0, 0, 0, false
	}

	u0 := int(u)
	v0 := int(v)
	fu := u - float64(u0)
	fv := v - float64(v0)
	u1 := u0 + 1
	if u1 == w {
		u1 = 0
	}
	v1 := v0 + 1
	if v1 > h-1 {
		v1 = h - 1
	}

	p00 := pano.PixOffset(u0, v0)
	p10 := pano.PixOffset(u1, v0)
	p01 := pano.PixOffset(u0, v1)
	p11 := pano.PixOffset(u1, v1)

	w00 := (1 - fu) * (1 - fv)
	w10 := fu * (1 - fv)
	w01 := (1 - fu) * fv
	w11 := fu * fv

	pix := pano.Pix
	r = uint8(w00*float64(pix[p00]) + w10*float64(pix[p10]) + w01*float64(pix[p01]) + w11*float64(pix[p11]) + 0.5)
	g = uint8(w00*float64(pix[p00+1]) + w10*float64(pix[p10+1]) + w01*float64(pix[p01+1]) + w11*float64(pix[p11+1]) + 0.5)
	b = uint8(w00*float64(pix[p00+2]) + w10*float64(pix[p10+2]) + w01*float64(pix[p01+2]) + w11*float64(pix[p11+2]) + 0.5)
	return r, g, b, true
}
