package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"golang.org/x/xerrors"

	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// RenderFlags are the flags of the render command
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Value: "cornell",
		Usage: "built-in scene to render (see list-scenes)",
	},
	cli.IntFlag{
		Name:  "width",
		Value: 400,
		Usage: "frame width",
	},
	cli.IntFlag{
		Name:  "height",
		Value: 400,
		Usage: "frame height",
	},
	cli.IntFlag{
		Name:  "spp",
		Value: 100,
		Usage: "samples per pixel",
	},
	cli.IntFlag{
		Name:  "depth",
		Value: integrator.DefaultMaxDepth,
		Usage: "maximum number of intersection queries per path",
	},
	cli.IntFlag{
		Name:  "seed",
		Value: 0,
		Usage: "seed for the per-sample random streams and randomly placed objects",
	},
	cli.IntFlag{
		Name:  "workers",
		Value: 0,
		Usage: "number of parallel workers (0 uses every CPU)",
	},
	cli.IntFlag{
		Name:  "preview-every",
		Value: 0,
		Usage: "write the partial image every N samples (0 disables previews)",
	},
	cli.StringFlag{
		Name:  "earth",
		Usage: "image used for globe spheres",
	},
	cli.StringFlag{
		Name:  "env",
		Usage: "equirectangular environment map for the materials scene",
	},
	cli.StringFlag{
		Name:  "out, o",
		Usage: "image filename for the rendered frame (default output/<scene>/render_<timestamp>.png)",
	},
}

// renderConfig maps command line flags to a renderer configuration
func renderConfig(ctx *cli.Context) (renderer.Config, error) {
	config := renderer.DefaultConfig()
	config.Width = ctx.Int("width")
	config.Height = ctx.Int("height")
	config.SamplesPerPixel = ctx.Int("spp")
	config.NumWorkers = ctx.Int("workers")
	config.PreviewEvery = ctx.Int("preview-every")
	config.Tracer.MaxDepth = ctx.Int("depth")

	// The scene layout reads the same flag as an int64, so only values both agree on are accepted
	seed := ctx.Int("seed")
	if seed < 0 || int64(seed) > math.MaxUint32 {
		return config, xerrors.Errorf("seed %d outside [0, %d]: %w", seed, uint32(math.MaxUint32), renderer.ErrInvalidConfig)
	}
	config.Seed = uint32(seed)

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// outputPath returns the image filename, creating its directory if needed
func outputPath(out, sceneName string, now time.Time) (string, error) {
	if out == "" {
		out = filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", xerrors.Errorf("creating output directory: %w", err)
		}
	}
	return out, nil
}

// Render a still frame of a built-in scene.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	config, err := renderConfig(ctx)
	if err != nil {
		return err
	}

	sceneName := ctx.String("scene")
	start := time.Now()
	sc, err := scene.New(sceneName, scene.Options{
		Seed:             int64(ctx.Int("seed")),
		EarthTexture:     ctx.String("earth"),
		EnvironmentImage: ctx.String("env"),
	})
	if err != nil {
		return err
	}
	logger.Infof("built scene %s in %v", sceneName, time.Since(start))

	imgFile, err := outputPath(ctx.String("out"), sceneName, time.Now())
	if err != nil {
		return err
	}

	r, err := renderer.New(sc, config)
	if err != nil {
		return err
	}

	// Stop between samples on Ctrl-C and keep what was rendered so far
	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	preview := func(p renderer.Preview) {
		if err := renderer.SavePNG(imgFile, p.Image); err != nil {
			logger.Warningf("could not write preview: %v", err)
			return
		}
		logger.Infof("wrote preview after %d/%d samples to %s", p.Samples, config.SamplesPerPixel, imgFile)
	}

	frame, stats, err := r.Render(renderCtx, preview)
	if err != nil && !errors.Is(err, renderer.ErrInterrupted) {
		return err
	}
	if err != nil {
		logger.Warningf("saving partial frame: %v", err)
	}

	writeStart := time.Now()
	if saveErr := renderer.SavePNG(imgFile, frame); saveErr != nil {
		return saveErr
	}
	logger.Noticef("wrote frame to %s in %d ms", imgFile, time.Since(writeStart).Nanoseconds()/1000000)

	displayFrameStats(sc, frame, stats)
	return err
}

var terminationOrder = []integrator.Termination{
	integrator.Escaped,
	integrator.Absorbed,
	integrator.DepthLimit,
	integrator.Degenerate,
}

func displayFrameStats(sc *scene.Scene, frame *image.RGBA, stats renderer.RenderStats) {
	logger.Noticef("frame statistics\n%s", frameStatsTable(sc, frame, stats))
	logger.Noticef("path terminations\n%s", terminationsTable(stats))
}

func frameStatsTable(sc *scene.Scene, frame *image.RGBA, stats renderer.RenderStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Resolution", "Samples", "Non-finite", "Avg bounces", "Avg luminance", "BVH nodes", "BVH depth", "Render time"})

	bvh := sc.BVH.Stats()
	table.Append([]string{
		sc.Name,
		fmt.Sprintf("%dx%d", frame.Bounds().Dx(), frame.Bounds().Dy()),
		fmt.Sprintf("%d (%.0f spp)", stats.TotalSamples, stats.AverageSamples),
		fmt.Sprintf("%d", stats.NonFiniteSamples),
		fmt.Sprintf("%.2f", stats.AverageBounces),
		fmt.Sprintf("%.4f", renderer.CalculateAverageLuminance(frame)),
		fmt.Sprintf("%d (%d leaves)", bvh.TotalNodes, bvh.LeafNodes),
		fmt.Sprintf("%d (avg %.1f)", bvh.MaxDepth, bvh.AvgDepth),
		fmt.Sprintf("%s", stats.RenderTime),
	})

	table.Render()
	return buf.String()
}

func terminationsTable(stats renderer.RenderStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Termination", "Paths", "% of paths"})

	for _, termination := range terminationOrder {
		count := stats.Terminations[termination]
		percent := 0.0
		if stats.TotalSamples > 0 {
			percent = 100 * float64(count) / float64(stats.TotalSamples)
		}
		table.Append([]string{
			termination.String(),
			fmt.Sprintf("%d", count),
			fmt.Sprintf("%02.1f %%", percent),
		})
	}
	table.SetFooter([]string{"TOTAL", fmt.Sprintf("%d", stats.TotalSamples), ""})

	table.Render()
	return buf.String()
}
