package tracer

import (
	"errors"
	"image"
	"testing"
)

func checkCoverage(t *testing.T, spec int, blocks []image.Rectangle, frameW, frameH int) {
	t.Helper()

	covered := make([]int, frameW*frameH)
	for _, b := range blocks {
		if b.Empty() {
			t.Fatalf("[spec %d] expected non-empty block; got %v", spec, b)
		}
		if !b.In(image.Rect(0, 0, frameW, frameH)) {
			t.Fatalf("[spec %d] expected block %v to lie inside the frame", spec, b)
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				covered[y*frameW+x]++
			}
		}
	}

	for i, count := range covered {
		if count != 1 {
			t.Fatalf("[spec %d] expected pixel (%d, %d) to be covered once; got %d", spec, i%frameW, i/frameW, count)
		}
	}
}

func TestPartition(t *testing.T) {
	type spec struct {
		frameW    int
		frameH    int
		size      int
		expBlocks int
	}
	specs := []spec{
		{64, 64, 32, 4},
		{65, 64, 32, 6},
		{10, 7, 3, 12},
		{1, 1, 32, 1},
		{100, 1, 7, 15},
	}

	for index, s := range specs {
		blocks := Partition(s.frameW, s.frameH, s.size)
		if len(blocks) != s.expBlocks {
			t.Fatalf("[spec %d] expected %d blocks; got %d", index, s.expBlocks, len(blocks))
		}
		checkCoverage(t, index, blocks, s.frameW, s.frameH)
	}

	if blocks := Partition(10, 10, 0); blocks != nil {
		t.Fatalf("expected zero block size to produce no blocks; got %d", len(blocks))
	}
}

func TestRowScheduler(t *testing.T) {
	type spec struct {
		frameW    int
		frameH    int
		rows      int
		expBlocks int
	}
	specs := []spec{
		{20, 10, 4, 3},
		{20, 10, 10, 1},
		{20, 10, 16, 1},
	}

	for index, s := range specs {
		blocks := NewRowScheduler(s.rows).Schedule(s.frameW, s.frameH)
		if len(blocks) != s.expBlocks {
			t.Fatalf("[spec %d] expected %d strips; got %d", index, s.expBlocks, len(blocks))
		}
		for _, b := range blocks {
			if b.Dx() != s.frameW {
				t.Fatalf("[spec %d] expected full-width strip; got %v", index, b)
			}
		}
		checkCoverage(t, index, blocks, s.frameW, s.frameH)
	}
}

func TestNewScheduler(t *testing.T) {
	sch, err := NewScheduler("tiles", 8)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(sch.Schedule(16, 16)); got != 4 {
		t.Fatalf("expected 4 tiles; got %d", got)
	}

	sch, err = NewScheduler("rows", 8)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(sch.Schedule(16, 16)); got != 2 {
		t.Fatalf("expected 2 strips; got %d", got)
	}

	if _, err = NewScheduler("spiral", 8); !errors.Is(err, ErrUnknownSchedule) {
		t.Fatalf("expected ErrUnknownSchedule; got %v", err)
	}
}
