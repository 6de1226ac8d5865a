package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os"
	"runtime"

	"github.com/achilleasa/lumen/asset/reader"
	"github.com/achilleasa/lumen/asset/texture"
	"github.com/achilleasa/lumen/renderer"
	"github.com/achilleasa/lumen/scene"
	"github.com/achilleasa/lumen/tracer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render a still frame. With --watch the frame is rendered again every time
// the scene file changes.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}
	sceneFile := ctx.Args().First()

	render := func() error {
		return renderScene(ctx, sceneFile)
	}
	if !ctx.Bool("watch") {
		return render()
	}
	return watchFile(sceneFile, interruptChan(), render)
}

func renderScene(ctx *cli.Context, sceneFile string) error {
	sc, err := reader.ReadScene(sceneFile)
	if err != nil {
		return err
	}

	opts, err := renderOptions(ctx, sc.Settings)
	if err != nil {
		return err
	}

	camIndex := sc.Settings.Camera
	if ctx.IsSet("camera") {
		camIndex = ctx.Int("camera")
	}
	cam, err := sc.World.Camera(camIndex)
	if err != nil {
		return err
	}

	textures, err := texture.LoadRegistry(sc.World.TexturePaths())
	if err != nil {
		return err
	}

	r, err := renderer.NewDefault(opts, textures)
	if err != nil {
		return err
	}
	frame, err := r.Render(sc.World, cam)
	if err != nil {
		return err
	}

	displayFrameStats(r.Stats())
	return writeFrame(frame, ctx.String("out"))
}

// Build render options from the scene settings. Flags set on the command
// line take precedence.
func renderOptions(ctx *cli.Context, settings scene.Settings) (renderer.Options, error) {
	opts := renderer.DefaultOptions()
	opts.FrameW, opts.FrameH = settings.Width, settings.Height
	opts.SamplesPerPixel = settings.SampleRate
	opts.NumWorkers = settings.Threads
	opts.BlockSize = settings.BlockSize
	opts.Background = settings.Background
	opts.Seed = settings.Seed
	samplerName, filterName := settings.Sampler, settings.Filter

	if ctx.IsSet("width") {
		opts.FrameW = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		opts.FrameH = ctx.Int("height")
	}
	if ctx.IsSet("spp") {
		opts.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("threads") {
		opts.NumWorkers = ctx.Int("threads")
	}
	if ctx.IsSet("block-size") {
		opts.BlockSize = ctx.Int("block-size")
	}
	if ctx.IsSet("seed") {
		opts.Seed = ctx.Int64("seed")
	}
	if ctx.IsSet("sampler") {
		samplerName = ctx.String("sampler")
	}
	if ctx.IsSet("filter") {
		filterName = ctx.String("filter")
	}
	opts.Schedule = ctx.String("schedule")

	var err error
	if samplerName != "" {
		if opts.Sampler, err = tracer.ParseSamplerKind(samplerName); err != nil {
			return opts, err
		}
	}
	if filterName != "" {
		if opts.Filter, err = tracer.ParseFilterKind(filterName); err != nil {
			return opts, err
		}
	}

	opts.Progress = logProgress
	return opts, opts.Validate()
}

// Log render progress in 10% steps.
func logProgress(done, total int) {
	if done == total || done*10/total != (done-1)*10/total {
		logger.Infof("rendered %d/%d blocks (%d%%)", done, total, done*100/total)
	}
}

func writeFrame(frame *renderer.Frame, imgFile string) error {
	f, err := os.Create(imgFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = png.Encode(f, frame.RGBA()); err != nil {
		return fmt.Errorf("could not write %s: %w", imgFile, err)
	}
	logger.Noticef("wrote frame to %s", imgFile)
	return nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Blocks", "Pixels", "Samples", "Hits", "% of frame", "Render time"})

	var blocks, pixels, samples, hits int
	for _, stat := range stats.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", stat.Id),
			fmt.Sprintf("%d", stat.Blocks),
			fmt.Sprintf("%d", stat.Pixels),
			fmt.Sprintf("%d", stat.Samples),
			fmt.Sprintf("%d", stat.Hits),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			stat.RenderTime.String(),
		})
		blocks += stat.Blocks
		pixels += stat.Pixels
		samples += stat.Samples
		hits += stat.Hits
	}
	table.SetFooter([]string{
		"TOTAL",
		fmt.Sprintf("%d", blocks),
		fmt.Sprintf("%d", pixels),
		fmt.Sprintf("%d", samples),
		fmt.Sprintf("%d", hits),
		"",
		stats.RenderTime.String(),
	})

	table.Render()
	logger.Noticef("frame statistics (%d CPUs)\n%s", runtime.NumCPU(), buf.String())
}
