package compiler

import (
	"errors"
	"time"

	"github.com/achilleasa/polaris-bvh/asset/compiler/input"
	"github.com/achilleasa/polaris-bvh/asset/scene"
	"github.com/achilleasa/polaris-bvh/bvh"
	"github.com/achilleasa/polaris-bvh/log"
)

var (
	ErrEmptyScene = errors.New("scene compiler: scene does not contain any primitives")
)

type sceneCompiler struct {
	logger log.Logger

	parsedScene    *input.Scene
	optimizedScene *scene.Scene
	opts           bvh.Options
}

// Compile a scene representation parsed by a scene reader into a compiled
// scene with a stackless BVH.
func Compile(parsedScene *input.Scene, opts bvh.Options) (*scene.Scene, error) {
	if parsedScene.PrimitiveCount() == 0 {
		return nil, ErrEmptyScene
	}

	compiler := &sceneCompiler{
		logger:         log.New("scene compiler"),
		parsedScene:    parsedScene,
		optimizedScene: &scene.Scene{},
		opts:           opts,
	}

	start := time.Now()
	compiler.logger.Noticef("compiling scene")

	compiler.collectMeshes()
	if err := compiler.partitionGeometry(); err != nil {
		return nil, err
	}

	compiler.logger.Noticef("compiled scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return compiler.optimizedScene, nil
}

// Concatenate mesh geometry into the scene vertex list and record the
// primitive range of each mesh. Empty meshes are skipped.
func (sc *sceneCompiler) collectMeshes() {
	sc.optimizedScene.VertexList = sc.parsedScene.VertexStream()

	var firstPrimitive uint32
	for _, mesh := range sc.parsedScene.Meshes {
		count := uint32(mesh.PrimitiveCount())
		if count == 0 {
			continue
		}
		sc.optimizedScene.Meshes = append(sc.optimizedScene.Meshes, scene.Mesh{
			Name:           mesh.Name,
			FirstPrimitive: firstPrimitive,
			PrimitiveCount: count,
		})
		firstPrimitive += count
	}
}

// Build the BVH over the scene vertex list and flatten it.
func (sc *sceneCompiler) partitionGeometry() error {
	sc.logger.Noticef("partitioning %d primitives", len(sc.optimizedScene.VertexList)/3)

	tree := bvh.New(sc.opts)
	if err := tree.Build(sc.optimizedScene.VertexList); err != nil {
		return err
	}

	sc.optimizedScene.Bvh = *tree.Info()
	sc.optimizedScene.BuildStats = tree.Stats()
	return nil
}
