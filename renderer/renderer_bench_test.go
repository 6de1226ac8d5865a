package renderer

import (
	"io"
	"os"
	"testing"

	"github.com/achilleasa/lumen/log"
)

func BenchmarkRender128(b *testing.B) {
	benchmarkRender(128, b)
}

func BenchmarkRender256(b *testing.B) {
	benchmarkRender(256, b)
}

func BenchmarkRender512(b *testing.B) {
	benchmarkRender(512, b)
}

func benchmarkRender(frameSize int, b *testing.B) {
	log.SetSink(io.Discard)
	defer func() {
		log.SetSink(os.Stdout)
	}()

	world := testWorld(b)
	opts := testOptions()
	opts.FrameW, opts.FrameH = frameSize, frameSize
	opts.BlockSize = 32

	r, err := NewDefault(opts, nil)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = r.Render(world, &world.Cameras[0]); err != nil {
			b.Fatal(err)
		}
	}
}
