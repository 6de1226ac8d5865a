package reader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/errgroup"

	"github.com/achilleasa/lumen/asset"
	"github.com/achilleasa/lumen/geometry"
	"github.com/achilleasa/lumen/log"
	"github.com/achilleasa/lumen/scene"
)

var (
	ErrUnsupportedVersion = errors.New("reader: unsupported scene format version")
	ErrInvalidObject      = errors.New("reader: object must define exactly one of mesh or plane")
)

// The scene format versions this reader understands.
const SupportedVersions = "^1.0"

type jsonSceneReader struct {
	logger log.Logger
}

// Create a new JSON scene reader.
func newJSONSceneReader() *jsonSceneReader {
	return &jsonSceneReader{
		logger: log.New("json reader"),
	}
}

// Read a scene description. Meshes and materials referenced by the scene are
// loaded concurrently and resolved relative to the scene resource.
func (r *jsonSceneReader) Read(sceneRes *asset.Resource) (*scene.Scene, error) {
	r.logger.Noticef(`parsing scene from "%s"`, sceneRes.Path())
	start := time.Now()

	var doc SceneDocument
	if err := json.NewDecoder(sceneRes).Decode(&doc); err != nil {
		return nil, fmt.Errorf("reader: could not parse scene %q: %w", sceneRes.Path(), err)
	}
	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}

	sc := scene.New()
	sc.Version = doc.Version
	world := sc.World
	if doc.World.Basis != nil {
		world.Basis = *doc.World.Basis
	}

	for _, cd := range doc.World.Cameras {
		up := world.Up()
		if cd.Up != nil {
			up = *cd.Up
		}
		cam := scene.NewCamera(cd.Position, cd.Target, up)
		if cd.FOV != 0 {
			cam.FOV = cd.FOV
		}
		if cd.Clip != 0 {
			cam.Clip = cd.Clip
		}
		world.Cameras = append(world.Cameras, cam)
	}

	for _, ld := range doc.World.Lights {
		light := scene.PointLight{Position: ld.Position, Intensity: 1}
		if ld.Intensity != nil {
			light.Intensity = *ld.Intensity
		}
		world.Lights = append(world.Lights, light)
	}

	objects, err := r.loadObjects(doc.World.Objects, sceneRes)
	if err != nil {
		return nil, err
	}
	world.Objects = objects
	if err = world.Initialize(); err != nil {
		return nil, err
	}

	doc.Renderer.apply(&sc.Settings)

	r.logger.Noticef(
		"parsed scene in %d ms: %d objects, %d triangles, %d cameras, %d lights",
		time.Since(start).Nanoseconds()/1e6, len(world.Objects), world.TriangleCount(), len(world.Cameras), len(world.Lights),
	)
	return sc, nil
}

// Load object geometry and materials using a bounded number of goroutines.
// The first failure stops objects that have not started loading yet.
func (r *jsonSceneReader) loadObjects(docs []ObjectDocument, sceneRes *asset.Resource) ([]*scene.Object, error) {
	objects := make([]*scene.Object, len(docs))

	g, gctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.NumCPU())
	for i := range docs {
		od := &docs[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			obj, err := loadObject(od, sceneRes)
			if err != nil {
				return fmt.Errorf("reader: object %d (%q): %w", i, od.Name, err)
			}
			objects[i] = obj
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return objects, nil
}

func loadObject(od *ObjectDocument, sceneRes *asset.Resource) (*scene.Object, error) {
	material, err := decodeObjectMaterial(od.Material, sceneRes)
	if err != nil {
		return nil, err
	}

	obj := scene.NewObject(od.Name, geometry.Surface{}, material)
	switch {
	case od.Mesh != "" && od.Plane == nil:
		if obj.MeshPath, err = sceneRes.Resolve(od.Mesh); err != nil {
			return nil, err
		}
		mesh, err := ReadMesh(obj.MeshPath, nil)
		if err != nil {
			return nil, err
		}
		obj.Shape = geometry.MeshShape(mesh)
	case od.Plane != nil && od.Mesh == "":
		obj.Shape = geometry.Surface{Kind: geometry.PlaneSurface}
		obj.PlaneEdges = *od.Plane
	default:
		return nil, ErrInvalidObject
	}

	if od.Visible != nil {
		obj.Visible = *od.Visible
	}
	obj.Position = od.Position
	obj.Rotation = od.Rotation
	if od.Scale != nil {
		obj.Scale = *od.Scale
	}
	return obj, nil
}

// Override the settings that the document defines.
func (d *RendererDocument) apply(s *scene.Settings) {
	if d.Width != 0 {
		s.Width = d.Width
	}
	if d.Height != 0 {
		s.Height = d.Height
	}
	if d.Sampler != "" {
		s.Sampler = d.Sampler
	}
	if d.SampleRate != 0 {
		s.SampleRate = d.SampleRate
	}
	if d.Filter != "" {
		s.Filter = d.Filter
	}
	if d.Threads != 0 {
		s.Threads = d.Threads
	}
	if d.BlockSize != 0 {
		s.BlockSize = d.BlockSize
	}
	if d.Background != nil {
		s.Background = *d.Background
	}
	s.Seed = d.Seed
	s.Camera = d.Camera
}

// Ensure that version satisfies SupportedVersions.
func checkVersion(version string) error {
	if version == "" {
		return fmt.Errorf("%w: missing version field", ErrUnsupportedVersion)
	}

	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrUnsupportedVersion, version, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w %q; expected %s", ErrUnsupportedVersion, version, SupportedVersions)
	}
	return nil
}
