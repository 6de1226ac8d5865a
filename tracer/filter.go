package tracer

import (
	"fmt"

	"github.com/achilleasa/lumen/types"
	"github.com/chewxy/math32"
)

// The supported reconstruction filters.
type FilterKind uint8

const (
	BoxFilter FilterKind = iota
	MitchellFilter
)

var filterNames = map[FilterKind]string{
	BoxFilter:      "box",
	MitchellFilter: "mitchell",
}

func (k FilterKind) String() string {
	if name, exists := filterNames[k]; exists {
		return name
	}
	return fmt.Sprintf("FilterKind(%d)", uint8(k))
}

// Parse a filter name.
func ParseFilterKind(name string) (FilterKind, error) {
	for kind, kindName := range filterNames {
		if kindName == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownFilter, name)
}

// Mitchell-Netravali parameters.
const (
	mitchellB float32 = 1.0 / 3.0
	mitchellC float32 = 1.0 / 3.0
)

// A filter combines the samples of a pixel into its final color.
type Filter struct {
	Kind FilterKind
}

// Validate filter settings.
func (f Filter) Validate() error {
	if _, exists := filterNames[f.Kind]; !exists {
		return fmt.Errorf("%w %d", ErrUnknownFilter, f.Kind)
	}
	return nil
}

// Reconstruct the pixel color from its samples. Pixels without samples are
// black. Mitchell offsets are doubled before evaluating the kernel so its
// support covers one pixel around the center, not two.
func (f Filter) Reconstruct(px *Pixel) types.Color {
	if len(px.Samples) == 0 {
		return types.Black
	}

	if f.Kind == MitchellFilter {
		center := px.Center()
		var (
			sum       types.Color
			weightSum float32
		)
		for _, s := range px.Samples {
			offset := s.Position.Sub(center)
			w := mitchell1D(2*offset[0]) * mitchell1D(2*offset[1])
			sum = sum.Add(s.Color.Mul(w))
			weightSum += w
		}
		if weightSum != 0 {
			return sum.Mul(1 / weightSum)
		}
	}

	return boxMean(px.Samples)
}

func boxMean(samples []Sample) types.Color {
	var sum types.Color
	for _, s := range samples {
		sum = sum.Add(s.Color)
	}
	return sum.Mul(1 / float32(len(samples)))
}

// The one dimensional Mitchell-Netravali kernel; zero outside (-2, 2) in
// kernel units.
func mitchell1D(x float32) float32 {
	const (
		b = mitchellB
		c = mitchellC
	)
	x = math32.Abs(x)
	switch {
	case x < 1:
		return ((12-9*b-6*c)*x*x*x + (-18+12*b+6*c)*x*x + (6 - 2*b)) / 6
	case x < 2:
		return ((-b-6*c)*x*x*x + (6*b+30*c)*x*x + (-12*b-48*c)*x + (8*b + 24*c)) / 6
	}
	return 0
}
