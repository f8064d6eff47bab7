package bvh

import "errors"

var (
	ErrInvalidGeometry = errors.New("bvh: invalid geometry")
)
