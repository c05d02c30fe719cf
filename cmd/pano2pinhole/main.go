// Command pano2pinhole converts equirectangular panoramas into rings of
// rectilinear pinhole views, or, in demo mode, renders the frustum
// coverage of the configured rig as an SVG diagnostic.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"pano2pinhole/pkg/config"
	"pano2pinhole/pkg/convert"
	"pano2pinhole/pkg/imageio"
)

func main() {
	app := &cli.App{
		Name:  "pano2pinhole",
		Usage: "convert spherical panoramas into rectilinear pinhole images",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input_dir",
				Aliases:  []string{"i"},
				Usage:    "path where the spherical panoramic images are saved",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "output_dir",
				Aliases:  []string{"o"},
				Usage:    "path where the output rectilinear images will be saved",
				Required: true,
			},
			&cli.IntFlag{
				Name:    "image_resolution",
				Aliases: []string{"r"},
				Usage:   "rectilinear image size in pixels",
				Value:   1024,
			},
			&cli.IntFlag{
				Name:    "nb_split",
				Aliases: []string{"n"},
				Usage:   "number of rectilinear cameras in the ring",
				Value:   5,
			},
			&cli.Float64Flag{
				Name:    "fov",
				Aliases: []string{"f"},
				Usage:   "rectilinear camera field of view in degrees",
				Value:   60.0,
			},
			&cli.BoolFlag{
				Name:    "demo_mode",
				Aliases: []string{"D"},
				Usage:   "export an SVG that simulates the asked rectilinear frustum configuration on the spherical image",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "optional YAML file with tuning parameters",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "number of images converted in parallel (default: all cores)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	cfg.InputDir = c.String("input_dir")
	cfg.OutputDir = c.String("output_dir")
	cfg.ImageResolution = c.Int("image_resolution")
	cfg.NbSplit = c.Int("nb_split")
	cfg.FOV = c.Float64("fov")
	cfg.DemoMode = c.Bool("demo_mode")
	if c.IsSet("jobs") {
		cfg.Processing.Workers = c.Int("jobs")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	converter := convert.New(convert.Params{
		Config: cfg,
		Store:  imageio.NewDisk(cfg.Output.JPEGQuality),
		Logger: logger.Sugar(),
	})
	return converter.Run(c.Context)
}
