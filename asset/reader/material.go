package reader

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/achilleasa/lumen/asset"
	"github.com/achilleasa/lumen/scene"
)

var (
	ErrInvalidChannel  = errors.New("reader: material channel must define either a color or a texture")
	ErrMissingTexPath  = errors.New("reader: texture channel does not define a path")
	ErrInvalidMaterial = errors.New("reader: material must be a path or an inline definition")
)

// Defaults for ambient occlusion materials that omit their parameters.
const (
	defaultOcclusionSamples         = 16
	defaultOcclusionRange   float32 = 1
)

// Load a JSON material file. Relative paths are resolved against relTo when
// it is not nil. Texture paths are resolved against the material file.
func ReadMaterial(path string, relTo *asset.Resource) (scene.Material, error) {
	res, err := asset.NewResource(path, relTo)
	if err != nil {
		return scene.Material{}, err
	}
	defer res.Close()

	var doc MaterialDocument
	if err = json.NewDecoder(res).Decode(&doc); err != nil {
		return scene.Material{}, fmt.Errorf("reader: could not parse material %q: %w", res.Path(), err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(res.Name(), ".json")
	}

	mat, err := doc.Material(res)
	if err != nil {
		return scene.Material{}, fmt.Errorf("reader: material %q: %w", res.Path(), err)
	}
	return mat, nil
}

// Convert the document into a material. Texture paths are resolved against
// res, the resource the document was read from.
func (d *MaterialDocument) Material(res *asset.Resource) (scene.Material, error) {
	mat := scene.DefaultMaterial()
	if d.Name != "" {
		mat.Name = d.Name
	}

	if d.Type != "" {
		kind, err := scene.ParseMaterialKind(d.Type)
		if err != nil {
			return mat, err
		}
		mat.Kind = kind
	}

	var err error
	if mat.Diffuse, err = d.Diffuse.channel(mat.Diffuse, res); err != nil {
		return mat, fmt.Errorf("diffuse: %w", err)
	}
	if mat.Ambient, err = d.Ambient.channel(mat.Ambient, res); err != nil {
		return mat, fmt.Errorf("ambient: %w", err)
	}

	if mat.Kind == scene.AmbientOcclusionMaterial {
		mat.Samples, mat.MaxRange = d.Samples, d.MaxRange
		if mat.Samples == 0 {
			mat.Samples = defaultOcclusionSamples
		}
		if mat.MaxRange == 0 {
			mat.MaxRange = defaultOcclusionRange
		}
	}
	return mat, nil
}

func (d *ChannelDocument) channel(def scene.Channel, res *asset.Resource) (scene.Channel, error) {
	if d == nil {
		return def, nil
	}

	switch {
	case d.Color != nil && d.Texture == nil:
		return scene.Solid(*d.Color), nil
	case d.Texture != nil && d.Color == nil:
		if d.Texture.Path == "" {
			return def, ErrMissingTexPath
		}
		path, err := res.Resolve(d.Texture.Path)
		if err != nil {
			return def, err
		}
		tx, ty := d.Texture.TilingX, d.Texture.TilingY
		if tx == 0 {
			tx = 1
		}
		if ty == 0 {
			ty = 1
		}
		return scene.Textured(path, tx, ty), nil
	}
	return def, ErrInvalidChannel
}

// Build a material document that describes mat.
func NewMaterialDocument(mat scene.Material) MaterialDocument {
	doc := MaterialDocument{
		Name:    mat.Name,
		Type:    mat.Kind.String(),
		Diffuse: channelDocument(mat.Diffuse),
		Ambient: channelDocument(mat.Ambient),
	}
	if mat.Kind == scene.AmbientOcclusionMaterial {
		doc.MaxRange, doc.Samples = mat.MaxRange, mat.Samples
	}
	return doc
}

func channelDocument(ch scene.Channel) *ChannelDocument {
	if ch.Kind == scene.TextureChannel {
		return &ChannelDocument{Texture: &TextureDocument{
			Path:    ch.Texture.Path,
			TilingX: ch.Texture.TilingX,
			TilingY: ch.Texture.TilingY,
		}}
	}
	c := ch.Color
	return &ChannelDocument{Color: &c}
}

// Decode the material field of an object: a string names a material file
// while an object holds an inline definition. Objects without a material
// use the default one.
func decodeObjectMaterial(raw json.RawMessage, sceneRes *asset.Resource) (scene.Material, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return scene.DefaultMaterial(), nil
	}

	var path string
	if err := json.Unmarshal(raw, &path); err == nil {
		return ReadMaterial(path, sceneRes)
	}

	var doc MaterialDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return scene.Material{}, fmt.Errorf("%w: %w", ErrInvalidMaterial, err)
	}
	return doc.Material(sceneRes)
}
