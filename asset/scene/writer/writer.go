package writer

import (
	"archive/zip"
	"encoding/gob"
	"os"
	"time"

	"github.com/achilleasa/polaris-bvh/asset/scene"
	"github.com/achilleasa/polaris-bvh/log"
)

const (
	dataFile = "scene.bin"
)

// The Writer interface is implemented by all scene writers.
type Writer interface {
	// Write scene definition
	Write(*scene.Scene) error
}

// Write scene to binary format.
func WriteScene(sc *scene.Scene, filename string) error {
	writer := newZipSceneWriter(filename)
	return writer.Write(sc)
}

type zipSceneWriter struct {
	logger   log.Logger
	filename string
}

// Create a new zip scene writer.
func newZipSceneWriter(filename string) *zipSceneWriter {
	return &zipSceneWriter{
		logger:   log.New("zip writer"),
		filename: filename,
	}
}

// Write the gob-encoded scene into a zip archive.
func (w *zipSceneWriter) Write(sc *scene.Scene) error {
	w.logger.Noticef(`writing compiled scene to "%s"`, w.filename)
	start := time.Now()

	f, err := os.Create(w.filename)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	entry, err := zw.Create(dataFile)
	if err != nil {
		return err
	}
	if err = gob.NewEncoder(entry).Encode(sc); err != nil {
		return err
	}
	if err = zw.Close(); err != nil {
		return err
	}

	w.logger.Noticef("wrote compiled scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return f.Sync()
}
