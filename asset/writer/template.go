package writer

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/achilleasa/lumen/asset/reader"
	"github.com/achilleasa/lumen/log"
	"github.com/achilleasa/lumen/scene"
	"github.com/achilleasa/lumen/types"
)

// Files written by WriteTemplate, relative to the template folder.
const (
	TemplateScene = "scene.json"

	templateSolidMaterial    = "materials/solid.json"
	templateTexturedMaterial = "materials/textured.json"
	templateMesh             = "models/cube.obj"
	templateTexture          = "textures/checker.png"
)

// A unit cube with texture coordinates. Faces are wound counter-clockwise
// when viewed from outside.
const cubeOBJ = `# template cube
o cube
v -1 -1 -1
v 1 -1 -1
v 1 1 -1
v -1 1 -1
v -1 -1 1
v 1 -1 1
v 1 1 1
v -1 1 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1 4/2 3/3 2/4
f 5/1 6/2 7/3 8/4
f 1/1 2/2 6/3 5/4
f 2/1 3/2 7/3 6/4
f 3/1 4/2 8/3 7/4
f 4/1 1/2 5/3 8/4
`

// Write a template scene into dir. The template references a solid and a
// textured material file, a cube mesh and a checker texture, and also
// defines an inline ambient occlusion material.
func WriteTemplate(dir string) error {
	logger := log.New("template writer")

	files := map[string][]byte{
		templateMesh: []byte(cubeOBJ),
	}

	var err error
	if files[TemplateScene], err = marshalDocument(templateSceneDocument()); err != nil {
		return err
	}

	solid := scene.DefaultMaterial()
	solid.Name = "solid"
	solid.Ambient = scene.Solid(types.RGB(0.05, 0.05, 0.05))
	if files[templateSolidMaterial], err = marshalDocument(reader.NewMaterialDocument(solid)); err != nil {
		return err
	}

	textured := scene.DefaultMaterial()
	textured.Name = "textured"
	textured.Diffuse = scene.Textured("../"+templateTexture, 2, 2)
	if files[templateTexturedMaterial], err = marshalDocument(reader.NewMaterialDocument(textured)); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, checkerImage(64, 8)); err != nil {
		return err
	}
	files[templateTexture] = buf.Bytes()

	for name, data := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err = os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		logger.Infof("wrote %s", path)
	}

	logger.Noticef("template scene written to %s", filepath.Join(dir, TemplateScene))
	return nil
}

func templateSceneDocument() reader.SceneDocument {
	occlusion := scene.Material{
		Name:     "occlusion",
		Kind:     scene.AmbientOcclusionMaterial,
		Diffuse:  scene.Solid(types.RGB(0.9, 0.6, 0.3)),
		Ambient:  scene.Solid(types.Black),
		MaxRange: 2,
		Samples:  16,
	}
	inline, _ := json.Marshal(reader.NewMaterialDocument(occlusion))

	settings := scene.DefaultSettings()
	background := types.RGB(0.2, 0.3, 0.4)
	unitScale := types.XYZ(1, 1, 1)

	return reader.SceneDocument{
		Version: scene.FormatVersion,
		World: reader.WorldDocument{
			Cameras: []reader.CameraDocument{
				{Position: types.XYZ(0, -8, 3), Target: types.XYZ(0, 0, 1), FOV: scene.DefaultFOV, Clip: scene.DefaultClip},
			},
			Objects: []reader.ObjectDocument{
				{
					Name:     "floor",
					Plane:    &[2]types.Vec3{types.XYZ(1, 0, 0), types.XYZ(0, 1, 0)},
					Material: quotedPath(templateSolidMaterial),
					Scale:    &unitScale,
				},
				{
					Name:     "textured cube",
					Mesh:     templateMesh,
					Material: quotedPath(templateTexturedMaterial),
					Position: types.XYZ(-1.5, 0, 1),
					Rotation: types.XYZ(0, 0, 30),
					Scale:    &unitScale,
				},
				{
					Name:     "occlusion cube",
					Mesh:     templateMesh,
					Material: inline,
					Position: types.XYZ(1.5, 0, 0.5),
					Scale:    &types.Vec3{0.5, 0.5, 0.5},
				},
			},
			Lights: []reader.LightDocument{
				{Position: types.XYZ(4, -6, 8)},
			},
		},
		Renderer: reader.RendererDocument{
			Width:      settings.Width,
			Height:     settings.Height,
			Sampler:    "halton",
			SampleRate: 4,
			Filter:     "mitchell",
			BlockSize:  settings.BlockSize,
			Background: &background,
		},
	}
}

func quotedPath(path string) json.RawMessage {
	data, _ := json.Marshal(path)
	return data
}

func marshalDocument(doc interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Generate a black and white checker board with size x size pixels.
func checkerImage(size, cell int) image.Image {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}
