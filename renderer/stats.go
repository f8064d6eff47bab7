package renderer

import "time"

type TracerStat struct {
	// The tracer id.
	Id string

	// The block assigned to the tracer and the percentage of total frame
	// area it represents.
	BlockY       uint32
	BlockH       uint32
	FramePercent float32

	// Traversal counters for the assigned block.
	Rays         uint64
	Hits         uint64
	NodesVisited uint64

	// Render time for assigned block
	RenderTime time.Duration
}

type FrameStats struct {
	// Individual tracer stats.
	Tracers []TracerStat

	// Total render time for entire frame.
	RenderTime time.Duration
}

// Sum a counter across all tracers.
func (fs FrameStats) sum(counter func(TracerStat) uint64) uint64 {
	var total uint64
	for _, tr := range fs.Tracers {
		total += counter(tr)
	}
	return total
}

// Get the total number of rays traced.
func (fs FrameStats) Rays() uint64 {
	return fs.sum(func(tr TracerStat) uint64 { return tr.Rays })
}

// Get the total number of rays that hit a primitive.
func (fs FrameStats) Hits() uint64 {
	return fs.sum(func(tr TracerStat) uint64 { return tr.Hits })
}

// Get the average number of BVH nodes tested per ray.
func (fs FrameStats) AvgNodesPerRay() float64 {
	rays := fs.Rays()
	if rays == 0 {
		return 0
	}
	return float64(fs.sum(func(tr TracerStat) uint64 { return tr.NodesVisited })) / float64(rays)
}
