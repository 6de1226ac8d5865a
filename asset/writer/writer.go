package writer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/achilleasa/lumen/scene"
)

// The Writer interface is implemented by all scene writers.
type Writer interface {
	// Write scene definition
	Write(*scene.Scene) error
}

// Write a compiled scene. Objects that have not been initialized yet are
// baked before writing so the output can be rendered as-is.
func WriteScene(sc *scene.Scene, filename string) error {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != ".zip" {
		return fmt.Errorf("writer: unsupported file format %q", ext)
	}
	if sc.World != nil {
		if err := sc.World.Initialize(); err != nil {
			return err
		}
	}
	if sc.Version == "" {
		sc.Version = scene.FormatVersion
	}

	return newZipSceneWriter(filename).Write(sc)
}
