package reader

import (
	"archive/zip"
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/achilleasa/lumen/asset"
	"github.com/achilleasa/lumen/log"
	"github.com/achilleasa/lumen/scene"
)

// Name of the archive entry holding the encoded scene.
const DataFile = "scene.bin"

var ErrMissingSceneData = errors.New("reader: compiled scene archive does not contain " + DataFile)

type zipSceneReader struct {
	logger log.Logger
}

// Create a new compiled scene reader.
func newZipSceneReader() *zipSceneReader {
	return &zipSceneReader{
		logger: log.New("zip reader"),
	}
}

// Read a compiled scene from a zip archive. Compiled scenes are already baked
// so their objects are not initialized again.
func (r *zipSceneReader) Read(sceneRes *asset.Resource) (*scene.Scene, error) {
	r.logger.Noticef(`parsing compiled scene from "%s"`, sceneRes.Path())
	start := time.Now()

	// zip requires an io.ReaderAt so we buffer the whole archive; it may
	// be streamed over http.
	data, err := io.ReadAll(sceneRes)
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	var sc *scene.Scene
	for _, f := range zr.File {
		if f.Name != DataFile {
			r.logger.Warningf("unknown file %s in scene zip file; skipping", f.Name)
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		sc = &scene.Scene{}
		err = gob.NewDecoder(rc).Decode(sc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reader: failed to load %s: %w", f.Name, err)
		}
	}

	if sc == nil {
		return nil, ErrMissingSceneData
	}
	if err = checkVersion(sc.Version); err != nil {
		return nil, err
	}
	if sc.World == nil {
		sc.World = scene.NewWorld()
	}

	r.logger.Noticef("loaded scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return sc, nil
}
