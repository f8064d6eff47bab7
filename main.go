package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/polaris-bvh/bvh"
	"github.com/achilleasa/polaris-bvh/cmd"
	"github.com/urfave/cli"
)

func bvhFlags() []cli.Flag {
	defaults := bvh.DefaultOptions()
	return []cli.Flag{
		cli.Float64Flag{
			Name:  "traversal-cost",
			Value: float64(defaults.TraversalCost),
			Usage: "SAH cost of traversing a BVH node",
		},
		cli.Float64Flag{
			Name:  "primitive-cost",
			Value: float64(defaults.PrimitiveCost),
			Usage: "SAH cost of intersecting a primitive",
		},
		cli.IntFlag{
			Name:  "max-depth",
			Value: defaults.MaxDepth,
			Usage: "max BVH depth; nodes at this depth become leafs (0 = unbounded)",
		},
	}
}

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "polaris-bvh"
	app.Usage = "build and inspect stackless bounding volume hierarchies for triangle scenes"
	app.Version = "0.0.1"
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
			Usage: "set log level (debug, info, notice, warning, error)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "compile",
			Usage: "compile text scene representation into a binary compressed format",
			Description: `
Parse a scene definition from a wavefront obj file, build a SAH BVH over its
triangles and flatten it into a stackless layout.

The compiled scene data is then written to a zip archive which can be supplied
as an argument to the info and preview commands.`,
			ArgsUsage: "scene_file1.obj scene_file2.obj ...",
			Flags:     bvhFlags(),
			Action:    cmd.CompileScene,
		},
		{
			Name:      "info",
			Usage:     "print scene and BVH statistics",
			ArgsUsage: "scene_file(.obj|.zip)",
			Flags:     bvhFlags(),
			Action:    cmd.ShowSceneInfo,
		},
		{
			Name:  "preview",
			Usage: "render a preview frame using stackless BVH traversal",
			Description: `
Render an orthographic view of the scene on the CPU. Each pixel is resolved
by walking the flattened BVH so the output can be used to inspect the tree.`,
			ArgsUsage: "scene_file(.obj|.zip)",
			Flags: append(bvhFlags(),
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
					Name:  "supersample",
					Value: 1,
					Usage: "render at N times the frame dims and downscale",
				},
				cli.StringFlag{
					Name:  "mode",
					Value: "depth",
					Usage: "render mode (depth, normal, heatmap)",
				},
				cli.StringFlag{
					Name:  "view",
					Value: "front",
					Usage: "view direction (front, side, top)",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "number of tracing workers (0 = one per CPU)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame (.png, .webp or .tga)",
				},
			),
			Action: cmd.PreviewScene,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
}
