// Package frustum renders a diagnostic overlay of the camera rig onto a
// virtual panorama: the border pixels of every rectilinear view are
// projected through the same geometry the resampler uses and drawn as SVG
// markers, so gaps or excessive overlap in the ring are visible at a
// glance. No image resampling happens here.
package frustum

import (
	"io"

	svg "github.com/ajstarks/svgo"
	"gonum.org/v1/gonum/spatial/r3"

	"pano2pinhole/pkg/camera"
)

// Options controls the diagnostic canvas. The zero value selects the
// defaults below.
type Options struct {
	// PanoWidth is the virtual panorama width in pixels; the canvas height
	// is always PanoWidth/2. Default 4096.
	PanoWidth int

	// Step is the number of intervals sampled along each border, giving
	// Step+1 markers per border run. Default 10.
	Step int

	// MarkerRadius is the marker circle radius in pixels. Default 4.
	MarkerRadius int
}

const (
	defaultPanoWidth    = 4096
	defaultStep         = 10
	defaultMarkerRadius = 4

	lineStyle       = "stroke:black;stroke-width:1"
	verticalStyle   = "fill:green"
	horizontalStyle = "fill:yellow"
)

func (o Options) withDefaults() Options {
	if o.PanoWidth <= 0 {
		o.PanoWidth = defaultPanoWidth
	}
	if o.Step <= 0 {
		o.Step = defaultStep
	}
	if o.MarkerRadius <= 0 {
		o.MarkerRadius = defaultMarkerRadius
	}
	return o
}

// Render writes the diagnostic SVG document to w: two corner-to-corner
// reference lines, then per rig rotation one run of Step+1 green markers
// along the view's vertical border and one run of Step+1 yellow markers
// along its horizontal border, projected onto the virtual panorama.
func Render(w io.Writer, pin camera.Pinhole, rig []r3.Rotation, opts Options) {
	opts = opts.withDefaults()
	width := opts.PanoWidth
	height := width / 2
	sphere := camera.NewSpherical(width, height)

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Line(0, 0, width, height, lineStyle)
	canvas.Line(width, 0, 0, height, lineStyle)

	stride := float64(pin.Height) / float64(opts.Step)
	for _, rot := range rig {
		for k := 0; k <= opts.Step; k++ {
			j := float64(k) * stride
			drawMarker(canvas, sphere, pin, rot, 0, j, opts.MarkerRadius, verticalStyle)
		}
		for k := 0; k <= opts.Step; k++ {
			j := float64(k) * stride
			drawMarker(canvas, sphere, pin, rot, j, 0, opts.MarkerRadius, horizontalStyle)
		}
	}
	canvas.End()
}

func drawMarker(canvas *svg.SVG, sphere camera.Spherical, pin camera.Pinhole, rot r3.Rotation, x, y float64, radius int, style string) {
	u, v := sphere.Project(rot.Rotate(pin.Bearing(x, y)))
	canvas.Circle(int(u+0.5), int(v+0.5), radius, style)
}
