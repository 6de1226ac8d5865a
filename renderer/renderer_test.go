package renderer

import (
	"errors"
	"image"
	"reflect"
	"sync"
	"testing"

	"github.com/achilleasa/lumen/asset/texture"
	"github.com/achilleasa/lumen/geometry"
	"github.com/achilleasa/lumen/scene"
	"github.com/achilleasa/lumen/tracer"
	"github.com/achilleasa/lumen/types"
)

// A world with a lit floor and a box standing on it. The camera looks at the
// box horizontally so the upper half of the frame only sees the sky.
func testWorld(t testing.TB) *scene.World {
	world := scene.NewWorld()
	world.AddCamera(types.XYZ(0, -6, 1.5), types.XYZ(0, 0, 1.5))
	world.Lights = []scene.PointLight{{Position: types.XYZ(3, -3, 8), Intensity: 1}}

	floor := scene.NewObject("floor", geometry.Surface{Kind: geometry.PlaneSurface}, scene.DefaultMaterial())
	floor.PlaneEdges = [2]types.Vec3{types.XYZ(1, 0, 0), types.XYZ(0, 1, 0)}

	boxData := &geometry.MeshData{
		Positions: []types.Vec3{
			types.XYZ(-1, -1, 0), types.XYZ(1, -1, 0), types.XYZ(1, 1, 0), types.XYZ(-1, 1, 0),
			types.XYZ(-1, -1, 3), types.XYZ(1, -1, 3), types.XYZ(1, 1, 3), types.XYZ(-1, 1, 3),
		},
	}
	for _, q := range [][4]int{{1, 2, 3, 4}, {5, 8, 7, 6}, {1, 5, 6, 2}, {2, 6, 7, 3}, {3, 7, 8, 4}, {4, 8, 5, 1}} {
		boxData.Faces = append(boxData.Faces,
			geometry.Face{{Position: q[0]}, {Position: q[1]}, {Position: q[2]}},
			geometry.Face{{Position: q[0]}, {Position: q[2]}, {Position: q[3]}},
		)
	}
	mesh, err := geometry.NewMesh(boxData)
	if err != nil {
		t.Fatal(err)
	}
	box := scene.NewObject("box", geometry.MeshShape(mesh), scene.Material{
		Kind:     scene.AmbientOcclusionMaterial,
		Diffuse:  scene.Solid(types.RGB(0.9, 0.4, 0.1)),
		MaxRange: 2,
		Samples:  4,
	})
	box.Position = types.XYZ(0, 0, 1.5)

	world.Objects = append(world.Objects, floor, box)
	if err = world.Initialize(); err != nil {
		t.Fatal(err)
	}
	return world
}

func colorApproxEqual(a, b types.Color, tolerance float32) bool {
	for i := range a {
		if d := a[i] - b[i]; d < -tolerance || d > tolerance {
			return false
		}
	}
	return true
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.FrameW, opts.FrameH = 37, 23
	opts.BlockSize = 8
	opts.SamplesPerPixel = 4
	opts.Sampler = tracer.HaltonSampler
	opts.Filter = tracer.MitchellFilter
	opts.Background = types.RGB(0.1, 0.2, 0.3)
	opts.Seed = 7
	return opts
}

func TestRenderDeterminism(t *testing.T) {
	world := testWorld(t)

	var frames []*Frame
	for _, workers := range []int{1, 3, 8} {
		opts := testOptions()
		opts.NumWorkers = workers
		r, err := NewDefault(opts, nil)
		if err != nil {
			t.Fatal(err)
		}
		frame, err := r.Render(world, &world.Cameras[0])
		if err != nil {
			t.Fatal(err)
		}
		frames = append(frames, frame)
	}

	for i := 1; i < len(frames); i++ {
		if !reflect.DeepEqual(frames[0].Pix, frames[i].Pix) {
			t.Fatalf("expected frame %d to match frame 0 regardless of worker count", i)
		}
	}

	// The top row looks above the box; the center sees the box
	f := frames[0]
	if got := f.At(0, 0); !colorApproxEqual(got, types.RGB(0.1, 0.2, 0.3), 1e-5) {
		t.Fatalf("expected top-left pixel to show the background; got %v", got)
	}
	if got := f.At(f.Width/2, f.Height/2); colorApproxEqual(got, types.RGB(0.1, 0.2, 0.3), 1e-2) {
		t.Fatal("expected center pixel to see geometry")
	}
}

func TestRenderStatsAndProgress(t *testing.T) {
	world := testWorld(t)
	opts := testOptions()
	opts.NumWorkers = 2

	var (
		mu      sync.Mutex
		reports []int
		total   int
	)
	opts.Progress = func(done, blocks int) {
		mu.Lock()
		reports = append(reports, done)
		total = blocks
		mu.Unlock()
	}

	r, err := NewDefault(opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = r.Render(world, &world.Cameras[0]); err != nil {
		t.Fatal(err)
	}

	expBlocks := 5 * 3
	if total != expBlocks || len(reports) != expBlocks {
		t.Fatalf("expected %d progress reports out of %d blocks; got %d reports, total %d", expBlocks, expBlocks, len(reports), total)
	}
	seen := make(map[int]bool)
	for _, done := range reports {
		seen[done] = true
	}
	for i := 1; i <= expBlocks; i++ {
		if !seen[i] {
			t.Fatalf("expected a progress report for %d completed blocks; got %v", i, reports)
		}
	}

	stats := r.Stats()
	if stats.Blocks != expBlocks || len(stats.Workers) != 2 {
		t.Fatalf("expected %d blocks over 2 workers; got %+v", expBlocks, stats)
	}
	var pixels, blocks int
	var percent float32
	for _, ws := range stats.Workers {
		pixels += ws.Pixels
		blocks += ws.Blocks
		percent += ws.FramePercent
		if ws.Samples != ws.Pixels*opts.SamplesPerPixel {
			t.Fatalf("expected worker %d to trace %d samples per pixel; got %d samples for %d pixels", ws.Id, opts.SamplesPerPixel, ws.Samples, ws.Pixels)
		}
	}
	if pixels != opts.FrameW*opts.FrameH || blocks != expBlocks {
		t.Fatalf("expected workers to cover %d pixels in %d blocks; got %d pixels in %d blocks", opts.FrameW*opts.FrameH, expBlocks, pixels, blocks)
	}
	if percent < 99.9 || percent > 100.1 {
		t.Fatalf("expected frame percentages to add up to 100; got %f", percent)
	}
}

func TestRenderRowSchedule(t *testing.T) {
	world := testWorld(t)

	tiles := testOptions()
	rows := testOptions()
	rows.Schedule = "rows"

	var frames []*Frame
	for _, opts := range []Options{tiles, rows} {
		r, err := NewDefault(opts, nil)
		if err != nil {
			t.Fatal(err)
		}
		frame, err := r.Render(world, &world.Cameras[0])
		if err != nil {
			t.Fatal(err)
		}
		frames = append(frames, frame)
	}

	// Flat shading does not consume random numbers so the partitioning does
	// not affect the floor pixels; compare the bottom row which only sees the
	// floor.
	y := frames[0].Height - 1
	for x := 0; x < frames[0].Width; x++ {
		if frames[0].At(x, y) != frames[1].At(x, y) {
			t.Fatalf("expected pixel (%d, %d) to match across schedules", x, y)
		}
	}
}

func TestOptionValidation(t *testing.T) {
	type spec struct {
		mutate func(*Options)
		expErr error
	}
	specs := []spec{
		{func(o *Options) { o.FrameW = 0 }, ErrInvalidFrameDims},
		{func(o *Options) { o.FrameH = -1 }, ErrInvalidFrameDims},
		{func(o *Options) { o.BlockSize = 0 }, ErrInvalidBlockSize},
		{func(o *Options) { o.SamplesPerPixel = 0 }, ErrInvalidSampleRate},
		{func(o *Options) { o.NumWorkers = -2 }, ErrInvalidWorkers},
		{func(o *Options) { o.Sampler = tracer.SamplerKind(99) }, tracer.ErrUnknownSampler},
		{func(o *Options) { o.Filter = tracer.FilterKind(99) }, tracer.ErrUnknownFilter},
		{func(o *Options) { o.Schedule = "hilbert" }, tracer.ErrUnknownSchedule},
	}

	for index, s := range specs {
		opts := DefaultOptions()
		s.mutate(&opts)
		if _, err := NewDefault(opts, nil); !errors.Is(err, s.expErr) {
			t.Fatalf("[spec %d] expected error %v; got %v", index, s.expErr, err)
		}
	}
}

func TestRenderPreconditions(t *testing.T) {
	world := testWorld(t)
	r, err := NewDefault(testOptions(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err = r.Render(nil, &world.Cameras[0]); !errors.Is(err, ErrSceneNotDefined) {
		t.Fatalf("expected ErrSceneNotDefined; got %v", err)
	}
	if _, err = r.Render(world, nil); !errors.Is(err, ErrCameraNotDefined) {
		t.Fatalf("expected ErrCameraNotDefined; got %v", err)
	}

	badCam := scene.NewCamera(types.XYZ(1, 1, 1), types.XYZ(1, 1, 1), types.XYZ(0, 0, 1))
	if _, err = r.Render(world, &badCam); !errors.Is(err, scene.ErrCameraAtTarget) {
		t.Fatalf("expected ErrCameraAtTarget; got %v", err)
	}

	world.Objects[0].Material.Diffuse = scene.Textured("checker.png", 4, 4)
	if _, err = r.Render(world, &world.Cameras[0]); !errors.Is(err, ErrMissingTexture) || !errors.Is(err, texture.ErrNotFound) {
		t.Fatalf("expected ErrMissingTexture wrapping texture.ErrNotFound; got %v", err)
	}

	// The plane has no texture coordinates, so shading fails once the
	// texture is available
	textures := texture.Registry{"checker.png": &texture.Texture{Width: 1, Height: 1, Data: []types.Color{types.White}}}
	r, err = NewDefault(testOptions(), textures)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = r.Render(world, &world.Cameras[0]); !errors.Is(err, scene.ErrMissingUV) {
		t.Fatalf("expected ErrMissingUV; got %v", err)
	}
}

func TestFrameSuperpose(t *testing.T) {
	frame := NewFrame(4, 3)

	block := tracer.NewBlock(0, image.Rect(1, 1, 3, 3))
	for i := range block.Colors {
		block.Colors[i] = types.RGB(float32(i+1)/4, 0, 0)
	}
	done, err := frame.Superpose(block)
	if err != nil {
		t.Fatal(err)
	}
	if done != 1 {
		t.Fatalf("expected 1 completed block; got %d", done)
	}

	exp := map[image.Point]types.Color{
		{1, 1}: types.RGB(0.25, 0, 0),
		{2, 1}: types.RGB(0.5, 0, 0),
		{1, 2}: types.RGB(0.75, 0, 0),
		{2, 2}: types.RGB(1, 0, 0),
	}
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			want, inBlock := exp[image.Point{x, y}]
			if !inBlock {
				want = types.Black
			}
			if got := frame.At(x, y); got != want {
				t.Fatalf("expected pixel (%d, %d) to be %v; got %v", x, y, want, got)
			}
		}
	}

	img := frame.RGBA()
	if c := img.RGBAAt(2, 2); c.R != 255 || c.A != 255 {
		t.Fatalf("expected converted pixel (2,2) to be opaque red; got %v", c)
	}

	if _, err = frame.Superpose(tracer.NewBlock(1, image.Rect(3, 2, 5, 4))); !errors.Is(err, ErrBlockOutOfFrame) {
		t.Fatalf("expected ErrBlockOutOfFrame; got %v", err)
	}
}
