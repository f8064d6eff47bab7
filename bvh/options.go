package bvh

// Options control the SAH cost model used by the builder.
type Options struct {
	// Estimated cost of testing a ray against one node bbox. Every split
	// candidate is charged twice this value (one test per child).
	TraversalCost float32

	// Estimated cost of testing a ray against one primitive.
	PrimitiveCost float32

	// Nodes at this depth (root depth is 1) always become leafs. A value
	// <= 0 lets the cost model alone decide when to stop splitting.
	MaxDepth int
}

// Get the default builder options.
func DefaultOptions() Options {
	return Options{
		TraversalCost: 0.125,
		PrimitiveCost: 1.0,
		MaxDepth:      0,
	}
}
