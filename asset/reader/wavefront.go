package reader

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/lumen/asset"
	"github.com/achilleasa/lumen/geometry"
	"github.com/achilleasa/lumen/log"
	"github.com/achilleasa/lumen/types"
)

type wavefrontReader struct {
	logger log.Logger

	// Coordinates and faces collected from the parsed files.
	data *geometry.MeshData

	// Include chain used for error reporting.
	errStack []string
}

// Create a new wavefront mesh reader.
func newWavefrontReader() *wavefrontReader {
	return &wavefrontReader{
		logger: log.New("wavefront reader"),
		data:   &geometry.MeshData{},
	}
}

// Load a wavefront mesh. Relative paths are resolved against relTo when it
// is not nil.
func ReadMesh(path string, relTo *asset.Resource) (*geometry.Mesh, error) {
	res, err := asset.NewResource(path, relTo)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return newWavefrontReader().Read(res)
}

// Parse a wavefront obj stream into a mesh.
func (r *wavefrontReader) Read(res *asset.Resource) (*geometry.Mesh, error) {
	r.logger.Infof(`parsing mesh from "%s"`, res.Path())
	start := time.Now()

	if err := r.parse(res); err != nil {
		return nil, err
	}

	mesh, err := geometry.NewMesh(r.data)
	if err != nil {
		return nil, fmt.Errorf("reader: mesh %q: %w", res.Path(), err)
	}

	r.logger.Debugf(
		`parsed "%s" in %d ms: %d vertices, %d normals, %d uvs, %d triangles`,
		res.Path(), time.Since(start).Nanoseconds()/1e6,
		len(r.data.Positions), len(r.data.Normals), len(r.data.UVs), len(mesh.Triangles),
	)
	return mesh, nil
}

// Generate an error message that also includes any data in the error stack.
func (r *wavefrontReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)
	return errors.New(strings.Trim(
		fmt.Sprintf("[%s: %d] error: %s\n%s", file, line, msg, strings.Join(r.errStack, "\n")),
		"\n",
	))
}

// Push a frame to the error stack.
func (r *wavefrontReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

// Pop a frame from the error stack.
func (r *wavefrontReader) popFrame() {
	r.errStack = r.errStack[1:]
}

// Parse a wavefront object file. Directives other than the ones handled
// below (materials, smoothing groups and the like) are skipped.
func (r *wavefrontReader) parse(res *asset.Resource) error {
	var lineNum int

	// Included files use 1-based indices relative to their own coordinates
	// so we track where their coordinates start.
	offsets := faceOffsets{
		position: len(r.data.Positions),
		uv:       len(r.data.UVs),
		normal:   len(r.data.Normals),
	}

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "call":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "call"; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			r.pushFrame(fmt.Sprintf("referenced from %s:%d [call]", res.Path(), lineNum))
			incRes, err := asset.NewResource(lineTokens[1], res)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			err = r.parse(incRes)
			incRes.Close()
			if err != nil {
				return err
			}
			r.popFrame()
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.data.Positions = append(r.data.Positions, v)
		case "vn":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.data.Normals = append(r.data.Normals, v)
		case "vt":
			v, err := parseVec2(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.data.UVs = append(r.data.UVs, v)
		case "f":
			faces, err := r.parseFace(lineTokens, offsets)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.data.Faces = append(r.data.Faces, faces...)
		case "o", "g":
			// Objects are placed by the scene description so grouping is
			// irrelevant here.
		}
	}

	if err := scanner.Err(); err != nil {
		return r.emitError(res.Path(), lineNum, "%s", err.Error())
	}
	return nil
}

// Start of the coordinates defined by the file being parsed.
type faceOffsets struct {
	position int
	uv       int
	normal   int
}

// Parse a triangular or quad face definition. Quads are split into two
// triangles. Each face argument uses the "v", "v/vt", "v//vn" or "v/vt/vn"
// syntax and all arguments of a face must use the same one.
func (r *wavefrontReader) parseFace(lineTokens []string, offsets faceOffsets) ([]geometry.Face, error) {
	if len(lineTokens) < 4 || len(lineTokens) > 5 {
		return nil, fmt.Errorf(`unsupported syntax for "f"; expected 3 arguments for triangular face or 4 arguments for a quad face; got %d. Select the triangulation option in your exporter`, len(lineTokens)-1)
	}

	// Validate the syntax of all arguments before resolving any index
	argTokens := make([][]string, len(lineTokens)-1)
	expIndices := 0
	for arg := range argTokens {
		vTokens := strings.Split(lineTokens[arg+1], "/")

		// The first arg defines the format for the following args
		if arg == 0 {
			expIndices = len(vTokens)
			if expIndices > 3 {
				return nil, fmt.Errorf("face argument %d contains %d indices; expected at most 3", arg, expIndices)
			}
		} else if len(vTokens) != expIndices {
			return nil, fmt.Errorf("expected each face argument to contain %d indices; arg %d contains %d indices", expIndices, arg, len(vTokens))
		}

		if vTokens[0] == "" {
			return nil, fmt.Errorf("face argument %d does not include a vertex index", arg)
		}
		argTokens[arg] = vTokens
	}

	var indices [4]geometry.Index
	for arg, vTokens := range argTokens {
		offset, err := selectFaceCoordIndex(vTokens[0], len(r.data.Positions), offsets.position)
		if err != nil {
			return nil, fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err.Error())
		}
		indices[arg].Position = offset + 1

		if expIndices > 1 && vTokens[1] != "" {
			offset, err = selectFaceCoordIndex(vTokens[1], len(r.data.UVs), offsets.uv)
			if err != nil {
				return nil, fmt.Errorf("could not parse tex coord for face argument %d: %s", arg, err.Error())
			}
			indices[arg].UV = offset + 1
		}

		if expIndices > 2 && vTokens[2] != "" {
			offset, err = selectFaceCoordIndex(vTokens[2], len(r.data.Normals), offsets.normal)
			if err != nil {
				return nil, fmt.Errorf("could not parse normal coord for face argument %d: %s", arg, err.Error())
			}
			indices[arg].Normal = offset + 1
		}
	}

	faces := []geometry.Face{{indices[0], indices[1], indices[2]}}
	if len(lineTokens) == 5 {
		faces = append(faces, geometry.Face{indices[0], indices[2], indices[3]})
	}
	return faces, nil
}

// Given an index for a face coord type (vertex, normal, tex) calculate the
// 0-based offset into the coord list. Negative indices reference elements
// from the end of the coord list; positive ones are relative to relOffset.
func selectFaceCoordIndex(indexToken string, coordListLen int, relOffset int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var offset int
	switch {
	case index < 0:
		offset = coordListLen + int(index)
	case index == 0:
		return -1, fmt.Errorf("index 0 is not valid")
	default:
		offset = relOffset + int(index-1)
	}
	if offset < 0 || offset >= coordListLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return offset, nil
}

// Parse a Vec3 row. Trailing components (such as the w coordinate of a
// vertex) are ignored.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf(`unsupported syntax for "%s"; expected 3 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec3{}
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = float32(coord)
	}
	return v, nil
}

// Parse a Vec2 row.
func parseVec2(lineTokens []string) (types.Vec2, error) {
	if len(lineTokens) < 3 {
		return types.Vec2{}, fmt.Errorf(`unsupported syntax for "%s"; expected 2 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec2{}
	for tokIdx := 1; tokIdx <= 2; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = float32(coord)
	}
	return v, nil
}
