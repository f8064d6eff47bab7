package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/achilleasa/polaris-bvh/asset/scene/reader"
	"github.com/achilleasa/polaris-bvh/renderer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render a preview frame of a scene.
func PreviewScene(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	mode, err := renderer.ParseMode(ctx.String("mode"))
	if err != nil {
		return err
	}
	view, err := renderer.ParseView(ctx.String("view"))
	if err != nil {
		return err
	}

	opts := renderer.Options{
		FrameW:      uint32(ctx.Int("width")),
		FrameH:      uint32(ctx.Int("height")),
		Supersample: uint32(ctx.Int("supersample")),
		Mode:        mode,
		View:        view,
		Workers:     ctx.Int("workers"),
	}

	// Load scene
	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	sc, err := reader.ReadScene(ctx.Args().First(), bvhOptions(ctx))
	if err != nil {
		return err
	}

	r, err := renderer.New(sc, opts)
	if err != nil {
		return err
	}

	frame, err := r.Render()
	if err != nil {
		return err
	}

	// Display stats
	displayFrameStats(r.Stats())

	imgFile := ctx.String("out")
	start := time.Now()
	if err = renderer.WriteImage(imgFile, frame); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s in %d ms", imgFile, time.Since(start).Nanoseconds()/1e6)

	return nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tracer", "Block height", "% of frame", "Rays", "Hits", "Render time"})
	for _, stat := range stats.Tracers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%d", stat.BlockH),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			fmt.Sprintf("%d", stat.Rays),
			fmt.Sprintf("%d", stat.Hits),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{"", "", "TOTAL", fmt.Sprintf("%d", stats.Rays()), fmt.Sprintf("%d", stats.Hits()), stats.RenderTime.String()})

	table.Render()
	logger.Noticef("frame statistics (%.1f nodes/ray)\n%s", stats.AvgNodesPerRay(), buf.String())
}
