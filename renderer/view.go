package renderer

import (
	"github.com/achilleasa/polaris-bvh/bvh"
	"github.com/achilleasa/polaris-bvh/types"
)

// Fraction of the scene extents added as a border around the framed scene.
const framePadding float32 = 0.05

// An orthographic projection that frames a scene bbox.
type orthoView struct {
	// The world axes mapped to the image X and Y axes and the sign
	// applied when stepping along them.
	uAxis, vAxis int
	vSign        float32

	// The view axis and the ray direction.
	wAxis int
	dir   types.Vec3

	// Frame center in world space along the u/v axes, world units per
	// pixel and the ray origin coordinate along the view axis.
	uCenter, vCenter float32
	pixelSize        float32
	wOrigin          float32

	// Distance from the ray origin to the far side of the bbox.
	depth float32
}

// Setup an orthographic projection that fits bbox inside a frameW x frameH image.
func newOrthoView(view View, bbox bvh.BBox, frameW, frameH uint32) (*orthoView, error) {
	v := &orthoView{}
	switch view {
	case FrontView:
		v.uAxis, v.vAxis, v.wAxis, v.vSign = 0, 1, 2, -1
		v.dir = types.Vec3{0, 0, 1}
	case SideView:
		v.uAxis, v.vAxis, v.wAxis, v.vSign = 2, 1, 0, -1
		v.dir = types.Vec3{-1, 0, 0}
	case TopView:
		v.uAxis, v.vAxis, v.wAxis, v.vSign = 0, 2, 1, 1
		v.dir = types.Vec3{0, -1, 0}
	default:
		return nil, ErrUnsupportedViewDir
	}

	extents := bbox[1].Sub(bbox[0])
	center := bbox[0].Add(bbox[1]).Mul(0.5)
	v.uCenter = center[v.uAxis]
	v.vCenter = center[v.vAxis]

	// Fit the larger of the two extents; flat scenes still get a non-zero
	// pixel size.
	uSize := extents[v.uAxis] * (1 + 2*framePadding) / float32(frameW)
	vSize := extents[v.vAxis] * (1 + 2*framePadding) / float32(frameH)
	v.pixelSize = uSize
	if vSize > v.pixelSize {
		v.pixelSize = vSize
	}
	if v.pixelSize == 0 {
		v.pixelSize = 1.0 / float32(frameW)
	}

	// Start rays one unit outside the bbox
	if v.dir[v.wAxis] > 0 {
		v.wOrigin = bbox[0][v.wAxis] - 1
	} else {
		v.wOrigin = bbox[1][v.wAxis] + 1
	}
	v.depth = extents[v.wAxis] + 1

	return v, nil
}

// Generate the ray through the center of pixel (x, y).
func (v *orthoView) ray(x, y, frameW, frameH uint32) bvh.Ray {
	var origin types.Vec3
	origin[v.uAxis] = v.uCenter + (float32(x)+0.5-float32(frameW)/2)*v.pixelSize
	origin[v.vAxis] = v.vCenter + v.vSign*(float32(y)+0.5-float32(frameH)/2)*v.pixelSize
	origin[v.wAxis] = v.wOrigin
	return bvh.NewRay(origin, v.dir)
}
