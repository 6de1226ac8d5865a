package scene

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/achilleasa/lumen/asset/texture"
	"github.com/achilleasa/lumen/geometry"
	"github.com/achilleasa/lumen/types"
	"github.com/chewxy/math32"
)

var (
	ErrMissingUV       = errors.New("scene: texture channel shaded on a surface without texture coordinates")
	ErrMissingRegistry = errors.New("scene: texture channel shaded without a texture registry")
	ErrUnknownMaterial = errors.New("scene: unknown material kind")
)

// The supported material types.
type MaterialKind uint8

const (
	FlatMaterial MaterialKind = iota
	NormalMaterial
	MatCapMaterial
	AmbientOcclusionMaterial
)

var materialNames = map[MaterialKind]string{
	FlatMaterial:             "flat",
	NormalMaterial:           "normal",
	MatCapMaterial:           "matcap",
	AmbientOcclusionMaterial: "ao",
}

func (k MaterialKind) String() string {
	if name, exists := materialNames[k]; exists {
		return name
	}
	return fmt.Sprintf("MaterialKind(%d)", uint8(k))
}

// Parse a material kind name.
func ParseMaterialKind(name string) (MaterialKind, error) {
	for kind, kindName := range materialNames {
		if kindName == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownMaterial, name)
}

// The supported channel types.
type ChannelKind uint8

const (
	SolidChannel ChannelKind = iota
	TextureChannel
)

// A texture reference with its tiling factors.
type TextureMap struct {
	Path    string
	TilingX float32
	TilingY float32
}

// A color source that is either a solid color or a texture lookup.
type Channel struct {
	Kind    ChannelKind
	Color   types.Color
	Texture TextureMap
}

// A solid color channel.
func Solid(c types.Color) Channel {
	return Channel{Kind: SolidChannel, Color: c}
}

// A texture channel.
func Textured(path string, tilingX, tilingY float32) Channel {
	return Channel{
		Kind:    TextureChannel,
		Texture: TextureMap{Path: path, TilingX: tilingX, TilingY: tilingY},
	}
}

// Resolve the channel color at fragment frag.
func (ch *Channel) Lookup(frag *geometry.Fragment, textures texture.Registry) (types.Color, error) {
	if ch.Kind == SolidChannel {
		return ch.Color, nil
	}

	if !frag.HasUV {
		return types.Black, fmt.Errorf("%w (%s)", ErrMissingUV, ch.Texture.Path)
	}
	if textures == nil {
		return types.Black, ErrMissingRegistry
	}
	tex, err := textures.Lookup(ch.Texture.Path)
	if err != nil {
		return types.Black, err
	}
	return tex.Sample(frag.UV, ch.Texture.TilingX, ch.Texture.TilingY), nil
}

// Everything a material may consult while shading. The world and the
// texture registry are shared read-only; Rand belongs to the calling worker.
type ShadingContext struct {
	World    *World
	Textures texture.Registry
	Rand     *rand.Rand
}

// Material parameters. Only the fields relevant to Kind are used.
type Material struct {
	Name string
	Kind MaterialKind

	Diffuse Channel
	Ambient Channel

	// Ambient occlusion settings.
	MaxRange float32
	Samples  int
}

// The material used for objects that do not specify one.
func DefaultMaterial() Material {
	return Material{
		Name:    "default",
		Kind:    FlatMaterial,
		Diffuse: Solid(types.RGB(200.0/255.0, 200.0/255.0, 200.0/255.0)),
		Ambient: Solid(types.Black),
	}
}

// Get the texture paths referenced by the material channels.
func (m *Material) TexturePaths() []string {
	var paths []string
	for _, ch := range []*Channel{&m.Diffuse, &m.Ambient} {
		if ch.Kind == TextureChannel && usesChannel(m.Kind, ch == &m.Ambient) {
			paths = append(paths, ch.Texture.Path)
		}
	}
	return paths
}

func usesChannel(kind MaterialKind, ambient bool) bool {
	switch kind {
	case FlatMaterial:
		return true
	case AmbientOcclusionMaterial:
		return !ambient
	}
	return false
}

// Calculate the color of fragment frag hit by ray.
func (m *Material) Color(frag *geometry.Fragment, ray geometry.Ray, ctx *ShadingContext) (types.Color, error) {
	switch m.Kind {
	case FlatMaterial:
		return m.flatColor(frag, ctx)
	case NormalMaterial:
		n := frag.Normal.Normalize()
		return types.RGB(n[0]*0.5+0.5, n[1]*0.5+0.5, n[2]*0.5+0.5).Clamp(), nil
	case MatCapMaterial:
		c := math32.Abs(frag.Normal.Normalize().Dot(ray.Dir.Normalize()))
		return types.RGB(c, 1-c, c).Clamp(), nil
	case AmbientOcclusionMaterial:
		return m.occlusionColor(frag, ctx)
	}
	return types.Black, fmt.Errorf("%w %d", ErrUnknownMaterial, m.Kind)
}

func (m *Material) flatColor(frag *geometry.Fragment, ctx *ShadingContext) (types.Color, error) {
	var intensity float32 = 1
	if lightCount := len(ctx.World.Lights); lightCount > 0 {
		intensity = 0
		n := frag.Normal.Normalize()
		for i := range ctx.World.Lights {
			light := &ctx.World.Lights[i]
			ray, near := light.ShadowRay(frag.Position)
			if ctx.World.IsOccluded(ray, near) {
				continue
			}
			factor := math32.Abs(ray.Dir.Neg().Normalize().Dot(n))
			intensity += factor * light.Intensity / float32(lightCount)
		}
	}

	diffuse, err := m.Diffuse.Lookup(frag, ctx.Textures)
	if err != nil {
		return types.Black, err
	}
	ambient, err := m.Ambient.Lookup(frag, ctx.Textures)
	if err != nil {
		return types.Black, err
	}
	return ambient.Add(diffuse.Mul(intensity)).Clamp(), nil
}

func (m *Material) occlusionColor(frag *geometry.Fragment, ctx *ShadingContext) (types.Color, error) {
	diffuse, err := m.Diffuse.Lookup(frag, ctx.Textures)
	if err != nil {
		return types.Black, err
	}
	if m.Samples <= 0 {
		return diffuse, nil
	}

	n := frag.Normal.Normalize()
	origin := frag.Position.Add(n.Mul(aoOffset))
	unoccluded := 0
	for i := 0; i < m.Samples; i++ {
		dir := uniformHemisphere(n, ctx.Rand)
		if !ctx.World.IsOccluded(geometry.NewRay(origin, dir), geometry.Within(m.MaxRange)) {
			unoccluded++
		}
	}
	return diffuse.Mul(float32(unoccluded) / float32(m.Samples)).Clamp(), nil
}

// Offset applied to occlusion ray origins to avoid self hits.
const aoOffset float32 = 1e-4

// Pick a uniformly distributed unit direction in the hemisphere around n.
func uniformHemisphere(n types.Vec3, rng *rand.Rand) types.Vec3 {
	z := rng.Float32()
	r := math32.Sqrt(math32.Max(0, 1-z*z))
	phi := 2 * math32.Pi * rng.Float32()
	local := types.XYZ(r*math32.Cos(phi), r*math32.Sin(phi), z)

	// Build an orthonormal basis around n
	helper := types.XYZ(1, 0, 0)
	if math32.Abs(n[0]) > 0.9 {
		helper = types.XYZ(0, 1, 0)
	}
	tangent := helper.Cross(n).Normalize()
	bitangent := n.Cross(tangent)

	return tangent.Mul(local[0]).Add(bitangent.Mul(local[1])).Add(n.Mul(local[2]))
}
