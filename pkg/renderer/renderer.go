// Package renderer drives the radiance estimator over an image: it generates
// camera rays, runs per-sample passes in parallel and accumulates the results.
package renderer

import (
	"context"
	"image"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
)

var logger = log.New("renderer")

// Scene is an estimator scene that also knows where it is viewed from
type Scene interface {
	integrator.Scene

	// CameraConfig returns the camera setup. Width and AspectRatio are
	// replaced by the render configuration.
	CameraConfig() CameraConfig
}

// Preview is a snapshot of the image after a number of complete samples per pixel
type Preview struct {
	Samples int
	Image   *image.RGBA
	Stats   RenderStats
}

// Renderer accumulates complete per-sample passes into a framebuffer
type Renderer struct {
	config      Config
	camera      *Camera
	tracer      *integrator.PathTracer
	tiles       []*Tile
	framebuffer *Framebuffer
	scratch     []core.Vec3 // Samples of the pass in flight, merged only once it completes
	stats       RenderStats
	numWorkers  int
}

// New creates a renderer for scene
func New(scene Scene, config Config) (*Renderer, error) {
	if scene == nil {
		return nil, ErrNoScene
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	tracer, err := integrator.NewPathTracer(scene, config.Tracer)
	if err != nil {
		return nil, xerrors.Errorf("creating renderer: %w", err)
	}

	cameraConfig := scene.CameraConfig()
	cameraConfig.Width = config.Width
	cameraConfig.AspectRatio = float64(config.Width) / float64(config.Height)

	numWorkers := config.NumWorkers
	if numWorkers == 0 {
		numWorkers = runtime.NumCPU()
	}

	return &Renderer{
		config:      config,
		camera:      NewCamera(cameraConfig),
		tracer:      tracer,
		tiles:       NewTileGrid(config.Width, config.Height, config.TileSize),
		framebuffer: NewFramebuffer(config.Width, config.Height),
		scratch:     make([]core.Vec3, config.Width*config.Height),
		stats:       RenderStats{TotalPixels: config.Width * config.Height},
		numWorkers:  numWorkers,
	}, nil
}

// Render takes SamplesPerPixel complete passes. The context is checked
// between passes and a pass cut short by cancellation is discarded, so the
// framebuffer only ever holds whole samples. preview may be nil.
func (r *Renderer) Render(ctx context.Context, preview func(Preview)) (*image.RGBA, RenderStats, error) {
	start := time.Now()
	logger.Noticef("rendering %dx%d at %d spp with %d workers (%d tiles)",
		r.config.Width, r.config.Height, r.config.SamplesPerPixel, r.numWorkers, len(r.tiles))

	for sample := r.stats.Passes; sample < r.config.SamplesPerPixel; sample++ {
		if err := ctx.Err(); err != nil {
			r.stats.RenderTime += time.Since(start)
			logger.Warningf("render interrupted after %d samples: %v", r.stats.Passes, err)
			return r.framebuffer.Image(), r.stats, xerrors.Errorf("after %d samples (%v): %w", r.stats.Passes, err, ErrInterrupted)
		}

		passStart := time.Now()
		if err := r.RenderPass(ctx, sample); err != nil {
			r.stats.RenderTime += time.Since(start)
			return r.framebuffer.Image(), r.stats, err
		}
		logger.Debugf("sample %d completed in %v", sample+1, time.Since(passStart))

		if preview != nil && r.config.PreviewEvery > 0 && r.stats.Passes%r.config.PreviewEvery == 0 {
			preview(Preview{Samples: r.stats.Passes, Image: r.framebuffer.Image(), Stats: r.stats})
		}
	}

	r.stats.RenderTime += time.Since(start)
	if r.stats.NonFiniteSamples > 0 {
		logger.Warningf("%d non-finite samples were discarded", r.stats.NonFiniteSamples)
	}
	logger.Noticef("rendered %d samples in %v", r.stats.TotalSamples, r.stats.RenderTime)
	return r.framebuffer.Image(), r.stats, nil
}

// RenderPass estimates one sample for every pixel. Tiles are rendered in
// parallel; each pixel sample owns a random stream derived from its pixel
// index, sample index and the seed, so the result does not depend on scheduling.
func (r *Renderer) RenderPass(ctx context.Context, sampleIndex int) error {
	tallies := make([]passTally, len(r.tiles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.numWorkers)
	for _, tile := range r.tiles {
		tile := tile
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r.renderTile(tile, sampleIndex, &tallies[tile.ID])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return xerrors.Errorf("sample %d discarded (%v): %w", sampleIndex+1, err, ErrInterrupted)
	}

	// Tiles are disjoint, so the pass is merged only after every tile finished
	for i, radiance := range r.scratch {
		r.framebuffer.pixels[i].AddSample(radiance)
	}
	r.stats.merge(tallies)
	return nil
}

// renderTile writes one sample per pixel of tile into the scratch buffer
func (r *Renderer) renderTile(tile *Tile, sampleIndex int, tally *passTally) {
	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			pixelIndex := y*r.config.Width + x
			sampler := core.ForSample(pixelIndex, sampleIndex, r.config.Seed)

			ray := r.camera.GetRay(x, y, sampler)
			result := r.tracer.Trace(ray, sampler)

			r.scratch[pixelIndex] = result.Radiance
			tally.add(result)
		}
	}
}

// Framebuffer returns the accumulated samples
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.framebuffer
}

// Stats returns the statistics of all completed passes
func (r *Renderer) Stats() RenderStats {
	return r.stats
}
