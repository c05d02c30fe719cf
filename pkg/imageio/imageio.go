// Package imageio abstracts the filesystem and image codec boundary so the
// conversion pipeline can run against in-memory fixtures in tests.
package imageio

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Store is the storage collaborator consumed by the pipeline.
type Store interface {
	// ListImages returns the paths in dir whose basename matches pattern
	// (e.g. "*.jpg"), non-recursively, in lexical order.
	ListImages(dir, pattern string) ([]string, error)

	// ReadImage decodes the image at path.
	ReadImage(path string) (image.Image, error)

	// WriteImage encodes img to path; the format follows the extension.
	WriteImage(img image.Image, path string) error

	// EnsureDir creates dir (and parents) if absent.
	EnsureDir(dir string) error

	// Create opens path for writing plain bytes (sidecar files, SVG).
	Create(path string) (io.WriteCloser, error)
}

// Disk is the production Store backed by the local filesystem, with decode
// and encode handled by the imaging library.
type Disk struct {
	// JPEGQuality is the encode quality for JPEG outputs, 1-100.
	JPEGQuality int
}

// NewDisk returns a disk store writing JPEGs at the given quality.
func NewDisk(jpegQuality int) *Disk {
	return &Disk{JPEGQuality: jpegQuality}
}

func (d *Disk) ListImages(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("listing %q in %s: %w", pattern, dir, err)
	}
	return matches, nil
}

func (d *Disk) ReadImage(path string) (image.Image, error) {
	return imaging.Open(path)
}

func (d *Disk) WriteImage(img image.Image, path string) error {
	return imaging.Save(img, path, imaging.JPEGQuality(d.JPEGQuality))
}

func (d *Disk) EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

func (d *Disk) Create(path string) (io.WriteCloser, error) {
	return os.Create(path)
}
