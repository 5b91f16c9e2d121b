package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/lumen-rt/lumen/cmd"
	"github.com/lumen-rt/lumen/pkg/integrator"
	"github.com/lumen-rt/lumen/pkg/renderer"
)

func main() {
	app := cli.NewApp()
	app.Name = "lumen"
	app.Usage = "render scenes using Monte Carlo path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a built-in scene to a PNG file",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 512,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 512,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: renderer.DefaultSamplesPerPixel,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "max-depth",
					Value: integrator.DefaultMaxDepth,
					Usage: "maximum path length in bounces",
				},
				cli.IntFlag{
					Name:  "rr-depth",
					Value: integrator.DefaultRussianRouletteDepth,
					Usage: "depth at which russian roulette path termination starts",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: renderer.DefaultTileSize,
					Usage: "render tile side length in pixels",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers (default: all CPUs)",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "base seed for sample generation",
				},
				cli.StringFlag{
					Name:  "scene",
					Value: "cornell",
					Usage: "built-in scene name (see the scenes command)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: cmd.RenderScene,
		},
		{
			Name:   "scenes",
			Usage:  "list the available built-in scenes",
			Action: cmd.ListScenes,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
