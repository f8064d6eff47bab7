package cmd

import (
	"errors"
	"strings"

	"github.com/achilleasa/polaris-bvh/asset/scene/reader"
	"github.com/achilleasa/polaris-bvh/asset/scene/writer"
	"github.com/achilleasa/polaris-bvh/bvh"
	"github.com/urfave/cli"
)

// Build BVH options from the command flags. Flags that are not defined by
// the command fall back to the defaults.
func bvhOptions(ctx *cli.Context) bvh.Options {
	opts := bvh.DefaultOptions()
	if ctx.IsSet("traversal-cost") {
		opts.TraversalCost = float32(ctx.Float64("traversal-cost"))
	}
	if ctx.IsSet("primitive-cost") {
		opts.PrimitiveCost = float32(ctx.Float64("primitive-cost"))
	}
	if ctx.IsSet("max-depth") {
		opts.MaxDepth = ctx.Int("max-depth")
	}
	return opts
}

// Compile scene to binary format.
func CompileScene(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() == 0 {
		return errors.New("missing scene file argument")
	}

	opts := bvhOptions(ctx)
	for idx := 0; idx < ctx.NArg(); idx++ {
		sceneFile := ctx.Args().Get(idx)
		if !strings.HasSuffix(sceneFile, ".obj") {
			logger.Warningf("skipping unsupported file %s", sceneFile)
			continue
		}

		logger.Noticef("parsing and compiling scene: %s", sceneFile)
		sc, err := reader.ReadScene(sceneFile, opts)
		if err != nil {
			return err
		}

		// Display compiled scene info
		logger.Noticef("scene information:\n%s", sc.Stats())

		zipFile := strings.TrimSuffix(sceneFile, ".obj") + ".zip"
		err = writer.WriteScene(sc, zipFile)
		if err != nil {
			return err
		}
		logger.Noticef("wrote compiled scene to %s", zipFile)
	}

	return nil
}

// Display compiled scene info.
func ShowSceneInfo(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	sc, err := reader.ReadScene(ctx.Args().First(), bvhOptions(ctx))
	if err != nil {
		return err
	}

	// Display compiled scene info
	logger.Noticef("scene information:\n%s", sc.Stats())

	return nil
}
