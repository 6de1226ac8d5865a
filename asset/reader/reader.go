package reader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/achilleasa/lumen/asset"
	"github.com/achilleasa/lumen/scene"
)

// The Reader interface is implemented by all scene readers.
type Reader interface {
	// Read scene definition from a resource.
	Read(*asset.Resource) (*scene.Scene, error)
}

// Read scene from a file or URL. The reader is selected by the file
// extension: ".json" for scene descriptions and ".zip" for compiled scenes.
func ReadScene(filename string) (*scene.Scene, error) {
	var reader Reader
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		reader = newJSONSceneReader()
	case ".zip":
		reader = newZipSceneReader()
	default:
		return nil, fmt.Errorf("reader: unsupported file format %q", filepath.Ext(filename))
	}

	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return reader.Read(res)
}
