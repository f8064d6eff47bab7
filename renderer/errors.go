package renderer

import "errors"

var (
	ErrSceneNotDefined    = errors.New("renderer: no scene defined")
	ErrInvalidFrameSize   = errors.New("renderer: frame dimensions must be greater than zero")
	ErrUnsupportedFormat  = errors.New("renderer: unsupported image format")
	ErrUnsupportedMode    = errors.New("renderer: unsupported render mode")
	ErrUnsupportedViewDir = errors.New("renderer: unsupported view direction")
)
