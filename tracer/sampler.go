package tracer

import (
	"errors"
	"fmt"
	"image"

	"github.com/achilleasa/lumen/types"
	"github.com/chewxy/math32"
)

var (
	ErrUnknownSampler  = errors.New("tracer: unknown sampler")
	ErrInvalidRate     = errors.New("tracer: sample rate must be at least 1")
	ErrUnknownFilter   = errors.New("tracer: unknown filter")
	ErrUnknownSchedule = errors.New("tracer: unknown block scheduler")
)

// The supported sample distributions.
type SamplerKind uint8

const (
	StratifiedSampler SamplerKind = iota
	HaltonSampler
)

var samplerNames = map[SamplerKind]string{
	StratifiedSampler: "stratified",
	HaltonSampler:     "halton",
}

func (k SamplerKind) String() string {
	if name, exists := samplerNames[k]; exists {
		return name
	}
	return fmt.Sprintf("SamplerKind(%d)", uint8(k))
}

// Parse a sampler name.
func ParseSamplerKind(name string) (SamplerKind, error) {
	for kind, kindName := range samplerNames {
		if kindName == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownSampler, name)
}

// A region that receives samples.
type SampleArea interface {
	Bounds() image.Rectangle
	AddSample(Sample) error
}

// A sampler places Rate samples inside every pixel of a sample area.
type Sampler struct {
	Kind SamplerKind
	Rate int
}

// Validate sampler settings.
func (s Sampler) Validate() error {
	if _, exists := samplerNames[s.Kind]; !exists {
		return fmt.Errorf("%w %d", ErrUnknownSampler, s.Kind)
	}
	if s.Rate < 1 {
		return fmt.Errorf("%w; got %d", ErrInvalidRate, s.Rate)
	}
	return nil
}

// Get the sample offsets inside the unit pixel square. The result only
// depends on the sampler kind and rate.
func (s Sampler) Distribution() []types.Vec2 {
	switch s.Kind {
	case HaltonSampler:
		points := make([]types.Vec2, s.Rate)
		for i := range points {
			points[i] = types.XY(halton(i, 2), halton(i, 3))
		}
		return points
	default:
		n := int(math32.Sqrt(float32(s.Rate)) + 0.5)
		if n < 1 {
			n = 1
		}
		points := make([]types.Vec2, 0, n*n)
		step := 1 / float32(n)
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				points = append(points, types.XY((float32(i)+0.5)*step, (float32(j)+0.5)*step))
			}
		}
		return points
	}
}

// Add one sample per distribution point to every pixel of area.
func (s Sampler) CreateSamples(area SampleArea) error {
	points := s.Distribution()
	bounds := area.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			origin := types.XY(float32(x), float32(y))
			for _, p := range points {
				if err := area.AddSample(Sample{Position: origin.Add(p)}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// The radical inverse of index in the given base.
func halton(index, base int) float32 {
	var (
		result float32
		f      = float32(1)
		invB   = 1 / float32(base)
	)
	for i := index; i > 0; i /= base {
		f *= invB
		result += f * float32(i%base)
	}
	return result
}
