package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/lumen-rt/lumen/pkg/integrator"
	"github.com/lumen-rt/lumen/pkg/renderer"
	"github.com/lumen-rt/lumen/pkg/scene"
)

// RenderScene renders a built-in scene to a PNG file
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	config := renderer.Config{
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
		TileSize:        ctx.Int("tile-size"),
		Workers:         ctx.Int("workers"),
		Seed:            ctx.Int64("seed"),
		Integrator: integrator.Config{
			MaxDepth:             ctx.Int("max-depth"),
			RussianRouletteDepth: ctx.Int("rr-depth"),
		},
	}

	builder, err := scene.ByName(ctx.String("scene"))
	if err != nil {
		return err
	}

	sc := builder(config.Width, config.Height)
	if err := sc.Build(); err != nil {
		return err
	}

	r, err := renderer.New(config, sc)
	if err != nil {
		return err
	}

	// Interrupt stops the render between tiles; completed tiles are
	// still written out
	renderCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	film, stats, renderErr := r.Render(renderCtx)
	if renderErr != nil && stats.CompletedTiles == 0 {
		return renderErr
	}

	out := ctx.String("out")
	if err := renderer.SavePNG(film, out); err != nil {
		return err
	}
	logger.Noticef("wrote %s", out)

	displayRenderStats(stats)
	return renderErr
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Resolution", "SPP", "Tiles", "Workers", "Discarded", "Samples/sec", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d", stats.SamplesPerPixel),
		fmt.Sprintf("%d/%d", stats.CompletedTiles, stats.TotalTiles),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%d", stats.DiscardedSamples),
		fmt.Sprintf("%.0f", stats.SamplesPerSecond()),
		stats.Elapsed.String(),
	})
	table.Render()
	logger.Noticef("render statistics\n%s", buf.String())
}
