package tracer

import (
	"errors"
	"testing"

	"github.com/achilleasa/lumen/types"
	"github.com/chewxy/math32"
)

func colorApproxEqual(a, b types.Color, tolerance float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > tolerance {
			return false
		}
	}
	return true
}

func TestBoxFilter(t *testing.T) {
	px := &Pixel{X: 3, Y: 4, Samples: []Sample{
		{Position: types.XY(3.1, 4.1), Color: types.RGB(1, 0, 0)},
		{Position: types.XY(3.9, 4.9), Color: types.RGB(0, 1, 0)},
		{Position: types.XY(3.5, 4.5), Color: types.RGB(0, 0, 1)},
		{Position: types.XY(3.2, 4.7), Color: types.RGB(1, 1, 1)},
	}}

	got := Filter{Kind: BoxFilter}.Reconstruct(px)
	if !colorApproxEqual(got, types.RGB(0.5, 0.5, 0.5), 1e-6) {
		t.Fatalf("expected mean color (0.5,0.5,0.5); got %v", got)
	}

	if got = (Filter{Kind: BoxFilter}).Reconstruct(&Pixel{}); got != types.Black {
		t.Fatalf("expected empty pixel to be black; got %v", got)
	}
}

func TestMitchellFilterNormalization(t *testing.T) {
	// A constant signal must be reproduced exactly regardless of sample placement
	for _, sampler := range []Sampler{
		{Kind: StratifiedSampler, Rate: 16},
		{Kind: HaltonSampler, Rate: 13},
	} {
		px := &Pixel{X: 7, Y: 2}
		for _, p := range sampler.Distribution() {
			px.Samples = append(px.Samples, Sample{
				Position: types.XY(7, 2).Add(p),
				Color:    types.RGB(0.3, 0.6, 0.9),
			})
		}

		got := Filter{Kind: MitchellFilter}.Reconstruct(px)
		if !colorApproxEqual(got, types.RGB(0.3, 0.6, 0.9), 1e-5) {
			t.Fatalf("expected %s samples of a constant color to reconstruct it; got %v", sampler.Kind, got)
		}
	}
}

func TestMitchellFilterWeighting(t *testing.T) {
	// The sample closest to the pixel center dominates
	px := &Pixel{X: 0, Y: 0, Samples: []Sample{
		{Position: types.XY(0.5, 0.5), Color: types.RGB(1, 1, 1)},
		{Position: types.XY(0.01, 0.01), Color: types.RGB(0, 0, 0)},
	}}

	got := Filter{Kind: MitchellFilter}.Reconstruct(px)
	box := Filter{Kind: BoxFilter}.Reconstruct(px)
	if got[0] <= box[0] {
		t.Fatalf("expected mitchell filter to favor the center sample (%v) over the box mean (%v)", got, box)
	}
}

func TestMitchellFilterSupport(t *testing.T) {
	// A sample one pixel away from the center lies on the edge of the
	// support and gets no weight.
	px := &Pixel{X: 0, Y: 0, Samples: []Sample{
		{Position: types.XY(0.5, 0.5), Color: types.RGB(0.2, 0.4, 0.6)},
		{Position: types.XY(1.5, 0.5), Color: types.RGB(1, 1, 1)},
		{Position: types.XY(0.5, -0.5), Color: types.RGB(1, 1, 1)},
	}}

	exp := types.RGB(0.2, 0.4, 0.6)
	if got := (Filter{Kind: MitchellFilter}).Reconstruct(px); !colorApproxEqual(got, exp, 1e-5) {
		t.Fatalf("expected %v; got %v", exp, got)
	}
}

func TestMitchellKernel(t *testing.T) {
	type spec struct {
		x   float32
		exp float32
	}
	specs := []spec{
		{0, 8.0 / 9.0},
		{1, 1.0 / 18.0},
		{-1, 1.0 / 18.0},
		{2, 0},
		{2.5, 0},
	}

	for index, s := range specs {
		if got := mitchell1D(s.x); math32.Abs(got-s.exp) > 1e-5 {
			t.Fatalf("[spec %d] expected k(%f) = %f; got %f", index, s.x, s.exp, got)
		}
	}

	// The kernel is continuous at |x| = 1
	if d := math32.Abs(mitchell1D(0.9999) - mitchell1D(1.0001)); d > 1e-3 {
		t.Fatalf("expected kernel to be continuous at 1; got jump %f", d)
	}
}

func TestParseFilterKind(t *testing.T) {
	for _, name := range []string{"box", "mitchell"} {
		kind, err := ParseFilterKind(name)
		if err != nil || kind.String() != name {
			t.Fatalf("expected %q to round-trip; got %s (%v)", name, kind, err)
		}
	}
	if _, err := ParseFilterKind("gaussian"); !errors.Is(err, ErrUnknownFilter) {
		t.Fatalf("expected ErrUnknownFilter; got %v", err)
	}
	if err := (Filter{Kind: FilterKind(7)}).Validate(); !errors.Is(err, ErrUnknownFilter) {
		t.Fatalf("expected ErrUnknownFilter; got %v", err)
	}
}
