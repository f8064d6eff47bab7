// Package renderer implements a CPU preview renderer for compiled scenes.
// Every pixel is resolved by the stackless BVH traversal so the preview
// doubles as a visual check of the flattened tree.
package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/achilleasa/polaris-bvh/asset/scene"
	"github.com/achilleasa/polaris-bvh/log"
	"golang.org/x/image/draw"
)

type Renderer interface {
	// Render frame.
	Render() (image.Image, error)

	// Get render statistics for the last rendered frame.
	Stats() FrameStats
}

// The traversal result for a single pixel.
type sample struct {
	hit       bool
	t         float32
	primitive int32
	visited   int
}

type cpuRenderer struct {
	logger log.Logger

	sc   *scene.Scene
	opts Options
	view *orthoView

	// Dimensions of the traced frame (frame dims x supersample factor).
	traceW, traceH uint32

	stats FrameStats
}

// Create a new CPU renderer for the given scene.
func New(sc *scene.Scene, opts Options) (Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	bbox, ok := sc.BBox()
	if !ok {
		return nil, ErrSceneNotDefined
	}
	if opts.FrameW == 0 || opts.FrameH == 0 {
		return nil, ErrInvalidFrameSize
	}
	if opts.Mode > HeatmapMode {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMode, opts.Mode)
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}

	r := &cpuRenderer{
		logger: log.New("renderer"),
		sc:     sc,
		opts:   opts,
		traceW: opts.FrameW * opts.Supersample,
		traceH: opts.FrameH * opts.Supersample,
	}

	var err error
	r.view, err = newOrthoView(opts.View, bbox, r.traceW, r.traceH)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Get render statistics for the last rendered frame.
func (r *cpuRenderer) Stats() FrameStats {
	return r.stats
}

// Render frame. The frame is split into horizontal blocks which are traced
// concurrently; the compiled scene is only read while tracing.
func (r *cpuRenderer) Render() (image.Image, error) {
	start := time.Now()

	workers := uint32(r.opts.Workers)
	if workers > r.traceH {
		workers = r.traceH
	}

	// Split rows evenly and assign any leftovers to the first block
	blockH := r.traceH / workers
	r.stats = FrameStats{Tracers: make([]TracerStat, workers)}
	samples := make([]sample, r.traceW*r.traceH)

	var wg sync.WaitGroup
	var blockY uint32
	for idx := uint32(0); idx < workers; idx++ {
		h := blockH
		if idx == 0 {
			h += r.traceH - blockH*workers
		}

		stat := &r.stats.Tracers[idx]
		stat.Id = fmt.Sprintf("cpu-%d", idx)
		stat.BlockY = blockY
		stat.BlockH = h
		stat.FramePercent = 100 * float32(h) / float32(r.traceH)

		wg.Add(1)
		go func(blockY, blockH uint32) {
			defer wg.Done()
			r.traceBlock(blockY, blockH, samples, stat)
		}(blockY, h)
		blockY += h
	}
	wg.Wait()

	img := r.shade(samples)
	var out image.Image = img
	if r.opts.Supersample > 1 {
		dst := image.NewRGBA(image.Rect(0, 0, int(r.opts.FrameW), int(r.opts.FrameH)))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
		out = dst
	}

	r.stats.RenderTime = time.Since(start)
	r.logger.Debugf(
		"rendered %dx%d frame (%s, %s view) in %d ms; rays: %d, hits: %d, avg nodes/ray: %.1f",
		r.opts.FrameW, r.opts.FrameH, r.opts.Mode, r.opts.View,
		r.stats.RenderTime.Nanoseconds()/1e6,
		r.stats.Rays(), r.stats.Hits(), r.stats.AvgNodesPerRay(),
	)
	return out, nil
}

// Trace all pixels in rows [blockY, blockY+blockH).
func (r *cpuRenderer) traceBlock(blockY, blockH uint32, samples []sample, stat *TracerStat) {
	start := time.Now()
	for y := blockY; y < blockY+blockH; y++ {
		for x := uint32(0); x < r.traceW; x++ {
			hit, found := r.sc.Intersect(r.view.ray(x, y, r.traceW, r.traceH))
			samples[y*r.traceW+x] = sample{
				hit:       found,
				t:         hit.T,
				primitive: hit.Primitive,
				visited:   hit.NodesVisited,
			}

			stat.Rays++
			stat.NodesVisited += uint64(hit.NodesVisited)
			if found {
				stat.Hits++
			}
		}
	}
	stat.RenderTime = time.Since(start)
}

// Convert traced samples into an image according to the render mode.
func (r *cpuRenderer) shade(samples []sample) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(r.traceW), int(r.traceH)))

	maxVisited := 1
	for _, s := range samples {
		if s.visited > maxVisited {
			maxVisited = s.visited
		}
	}

	for idx, s := range samples {
		x, y := idx%int(r.traceW), idx/int(r.traceW)

		var c color.RGBA
		switch r.opts.Mode {
		case DepthMode:
			c = r.shadeDepth(s)
		case NormalMode:
			c = r.shadeNormal(s)
		case HeatmapMode:
			c = heatmapColor(float32(s.visited) / float32(maxVisited))
		}
		img.SetRGBA(x, y, c)
	}
	return img
}

func (r *cpuRenderer) shadeDepth(s sample) color.RGBA {
	if !s.hit {
		return color.RGBA{A: 255}
	}

	// Map the hit distance inside the bbox to [1, 0]
	c := 1 - clamp((s.t-1)/r.view.depth)
	l := uint8(40 + 215*c)
	return color.RGBA{l, l, l, 255}
}

func (r *cpuRenderer) shadeNormal(s sample) color.RGBA {
	if !s.hit {
		return color.RGBA{A: 255}
	}

	tri := r.sc.VertexList[3*s.primitive : 3*s.primitive+3]
	n := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])).Normalize()
	return color.RGBA{
		uint8(255 * math.Abs(float64(n[0]))),
		uint8(255 * math.Abs(float64(n[1]))),
		uint8(255 * math.Abs(float64(n[2]))),
		255,
	}
}

// Map a value in [0, 1] to a blue-green-red ramp.
func heatmapColor(v float32) color.RGBA {
	v = clamp(v)
	g := 1 - float32(math.Abs(float64(2*v-1)))
	return color.RGBA{uint8(255 * v), uint8(255 * g), uint8(255 * (1 - v)), 255}
}

func clamp(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
