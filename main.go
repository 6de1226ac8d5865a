package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/lumen/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "lumen"
	app.Usage = "render scenes using CPU ray tracing"
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
		cli.StringFlag{
			Name:  "log-level",
			Usage: "log level (debug, info, notice, warning, error)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a frame of a scene description (.json) or a compiled scene (.zip) and
save it as a png image. Flags override the renderer settings stored in the
scene.`,
			ArgsUsage: "scene_file",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 960,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 540,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 1,
					Usage: "samples per pixel",
				},
				cli.StringFlag{
					Name:  "sampler",
					Value: "stratified",
					Usage: "sample distribution (stratified, halton)",
				},
				cli.StringFlag{
					Name:  "filter",
					Value: "box",
					Usage: "reconstruction filter (box, mitchell)",
				},
				cli.IntFlag{
					Name:  "threads",
					Usage: "number of render workers; 0 uses one per CPU",
				},
				cli.IntFlag{
					Name:  "block-size",
					Value: 32,
					Usage: "edge length of the square blocks assigned to workers",
				},
				cli.StringFlag{
					Name:  "schedule",
					Value: "tiles",
					Usage: "block layout (tiles, rows)",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "seed for the per-block random streams",
				},
				cli.IntFlag{
					Name:  "camera",
					Usage: "index of the camera to render from",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
				cli.BoolFlag{
					Name:  "watch, w",
					Usage: "render again whenever the scene file changes",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:  "compile",
			Usage: "compile scene descriptions into a binary compressed format",
			Description: `
Load a scene description with its meshes and materials, bake the object
transforms and write the result to a zip archive next to the source file.

The compiled scene can be supplied as an argument to the render command.`,
			ArgsUsage: "scene_file1.json scene_file2.json ...",
			Action:    cmd.CompileScene,
		},
		{
			Name:      "info",
			Usage:     "print scene information",
			ArgsUsage: "scene_file",
			Action:    cmd.ShowSceneInfo,
		},
		{
			Name:      "template",
			Usage:     "write a template scene",
			ArgsUsage: "[dir]",
			Action:    cmd.WriteTemplate,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
