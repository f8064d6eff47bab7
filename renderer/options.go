package renderer

import (
	"fmt"
	"strings"
)

// The quantity visualized by the preview renderer.
type Mode uint8

const (
	// Grayscale distance to the nearest hit; closer surfaces are brighter.
	DepthMode Mode = iota

	// Absolute value of the geometric normal of the nearest hit.
	NormalMode

	// Number of BVH nodes tested per ray.
	HeatmapMode
)

var modeNames = []string{"depth", "normal", "heatmap"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", m)
}

// Parse a render mode name.
func ParseMode(name string) (Mode, error) {
	for idx, modeName := range modeNames {
		if strings.EqualFold(name, modeName) {
			return Mode(idx), nil
		}
	}
	return DepthMode, fmt.Errorf("%w: %q", ErrUnsupportedMode, name)
}

// The direction the orthographic preview camera looks at the scene from.
type View uint8

const (
	// Look along +Z.
	FrontView View = iota

	// Look along -X.
	SideView

	// Look along -Y.
	TopView
)

var viewNames = []string{"front", "side", "top"}

func (v View) String() string {
	if int(v) < len(viewNames) {
		return viewNames[v]
	}
	return fmt.Sprintf("view(%d)", v)
}

// Parse a view name.
func ParseView(name string) (View, error) {
	for idx, viewName := range viewNames {
		if strings.EqualFold(name, viewName) {
			return View(idx), nil
		}
	}
	return FrontView, fmt.Errorf("%w: %q", ErrUnsupportedViewDir, name)
}

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Render the frame at Supersample times the frame dims and downscale.
	// Values <= 1 disable supersampling.
	Supersample uint32

	Mode Mode
	View View

	// Number of concurrent tracing workers. Values <= 0 select one worker
	// per CPU.
	Workers int
}
