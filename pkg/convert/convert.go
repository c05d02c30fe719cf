// Package convert orchestrates the two run modes: conversion, which sweeps
// a directory of panoramas and writes one rectilinear view per camera for
// each, and demo, which writes a single diagnostic SVG of the rig's
// frustum coverage. Both modes share the same camera geometry, built once
// from the validated configuration.
package convert

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"pano2pinhole/pkg/camera"
	"pano2pinhole/pkg/config"
	"pano2pinhole/pkg/frustum"
	"pano2pinhole/pkg/imageio"
	"pano2pinhole/pkg/resample"
)

// ErrNoImages is returned when the input directory contains no file
// matching the source pattern. Discovery failure is fatal for the run.
var ErrNoImages = errors.New("no source images found")

// Params bundles the collaborators of a Converter.
type Params struct {
	Config *config.Config
	Store  imageio.Store
	Logger *zap.SugaredLogger
}

// Converter runs one conversion or demo pass. The geometry it holds is
// immutable after New, so a single Converter is safe for the concurrent
// per-image workers it spawns.
type Converter struct {
	cfg   *config.Config
	store imageio.Store
	log   *zap.SugaredLogger

	pin camera.Pinhole
	rig []r3.Rotation
}

// New builds a Converter from a validated configuration: the pinhole
// intrinsics and the ring of rotations are derived here, once per run.
func New(p Params) *Converter {
	return &Converter{
		cfg:   p.Config,
		store: p.Store,
		log:   p.Logger,
		pin:   camera.NewPinhole(p.Config.ImageResolution, p.Config.FOV),
		rig:   camera.Ring(p.Config.NbSplit),
	}
}

// Focal returns the focal length in pixels of the virtual pinhole cameras.
func (c *Converter) Focal() float64 {
	return c.pin.Focal
}

// Run executes the selected mode. Configuration-level failures (unusable
// output directory, empty discovery) abort the run; per-image failures are
// logged and skipped.
func (c *Converter) Run(ctx context.Context) error {
	if err := c.store.EnsureDir(c.cfg.OutputDir); err != nil {
		return fmt.Errorf("cannot create the output directory: %w", err)
	}
	if c.cfg.DemoMode {
		return c.runDemo()
	}
	return c.runConversion(ctx)
}

// runDemo writes the frustum coverage SVG and returns.
func (c *Converter) runDemo() error {
	path := filepath.Join(c.cfg.OutputDir, c.cfg.Demo.Filename)
	f, err := c.store.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	frustum.Render(f, c.pin, c.rig, frustum.Options{
		PanoWidth:    c.cfg.Demo.PanoWidth,
		Step:         c.cfg.Demo.Step,
		MarkerRadius: c.cfg.Demo.MarkerRadius,
	})
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	c.log.Infow("wrote frustum diagnostic", "path", path, "cameras", len(c.rig))
	return nil
}

// runConversion sweeps the input directory and converts every matching
// panorama, fanning images out to a bounded worker group. Each worker
// writes only its own output files, so the workers share nothing mutable.
func (c *Converter) runConversion(ctx context.Context) error {
	paths, err := c.store.ListImages(c.cfg.InputDir, c.cfg.Processing.Pattern)
	if err != nil {
		return fmt.Errorf("cannot list the input directory: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("%w: no %q file in %s", ErrNoImages, c.cfg.Processing.Pattern, c.cfg.InputDir)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Processing.Workers)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			return c.processImage(ctx, path)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return c.writeFocal()
}

// processImage converts one panorama. Decode and resampling failures are
// per-item conditions: they are reported and the image is skipped without
// affecting the rest of the run. Only context cancellation propagates.
func (c *Converter) processImage(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := c.store.ReadImage(path)
	if err != nil {
		c.log.Warnw("cannot read the image, skipping", "path", path, "error", err)
		return nil
	}

	views, err := resample.Split(src, c.pin, c.rig)
	if err != nil {
		c.log.Warnw("cannot resample the image, skipping", "path", path, "error", err)
		return nil
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(filepath.Base(path), ext)
	for i, view := range views {
		name := fmt.Sprintf("%s_%d%s", base, i, ext)
		if err := c.store.WriteImage(view, filepath.Join(c.cfg.OutputDir, name)); err != nil {
			c.log.Warnw("cannot write the view", "path", name, "error", err)
			continue
		}
		c.log.Infow("wrote view", "image", base, "cam", i)
	}
	return nil
}

// writeFocal records the computed focal length in a plain-text sidecar for
// downstream consumers that need the pinhole intrinsics.
func (c *Converter) writeFocal() error {
	path := filepath.Join(c.cfg.OutputDir, c.cfg.Output.FocalFile)
	f, err := c.store.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	if _, err := f.Write([]byte(strconv.FormatFloat(c.pin.Focal, 'f', -1, 64))); err != nil {
		f.Close()
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return f.Close()
}
