package cmd

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/achilleasa/lumen/asset/reader"
	"github.com/achilleasa/lumen/asset/writer"
	"github.com/urfave/cli"
)

func testApp() *cli.App {
	app := cli.NewApp()
	app.Name = "lumen"
	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "v"},
		cli.BoolFlag{Name: "vv"},
		cli.StringFlag{Name: "log-level", Value: "error"},
	}
	app.Commands = []cli.Command{
		{
			Name: "render",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "width", Value: 960},
				cli.IntFlag{Name: "height", Value: 540},
				cli.IntFlag{Name: "spp", Value: 1},
				cli.StringFlag{Name: "sampler", Value: "stratified"},
				cli.StringFlag{Name: "filter", Value: "box"},
				cli.IntFlag{Name: "threads"},
				cli.IntFlag{Name: "block-size", Value: 32},
				cli.StringFlag{Name: "schedule", Value: "tiles"},
				cli.Int64Flag{Name: "seed"},
				cli.IntFlag{Name: "camera"},
				cli.StringFlag{Name: "out", Value: "frame.png"},
				cli.BoolFlag{Name: "watch"},
			},
			Action: RenderFrame,
		},
		{Name: "compile", Action: CompileScene},
		{Name: "info", Action: ShowSceneInfo},
		{Name: "template", Action: WriteTemplate},
	}
	return app
}

func TestTemplateCompileAndRender(t *testing.T) {
	dir := t.TempDir()
	app := testApp()

	if err := app.Run([]string{"lumen", "template", dir}); err != nil {
		t.Fatal(err)
	}
	sceneFile := filepath.Join(dir, writer.TemplateScene)

	if err := app.Run([]string{"lumen", "compile", sceneFile}); err != nil {
		t.Fatal(err)
	}
	zipFile := strings.TrimSuffix(sceneFile, ".json") + ".zip"
	if err := app.Run([]string{"lumen", "info", zipFile}); err != nil {
		t.Fatal(err)
	}

	for _, src := range []string{sceneFile, zipFile} {
		out := filepath.Join(dir, filepath.Base(src)+".png")
		err := app.Run([]string{
			"lumen", "render",
			"--width", "48", "--height", "27",
			"--sampler", "halton", "--filter", "mitchell", "--spp", "2",
			"--block-size", "16", "--schedule", "rows", "--threads", "3",
			"--out", out,
			src,
		})
		if err != nil {
			t.Fatalf("render %s: %v", src, err)
		}

		f, err := os.Open(out)
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatal(err)
		}
		if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 27 {
			t.Fatalf("expected a 48x27 frame; got %v", b)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	app := testApp()
	if err := app.Run([]string{"lumen", "template", dir}); err != nil {
		t.Fatal(err)
	}
	sceneFile := filepath.Join(dir, writer.TemplateScene)

	type spec struct {
		args   []string
		expErr string
	}
	specs := []spec{
		{[]string{"lumen", "render"}, "missing scene file argument"},
		{[]string{"lumen", "render", "--camera", "3", sceneFile}, "camera index 3 out of range"},
		{[]string{"lumen", "render", "--sampler", "sobol", sceneFile}, "unknown sampler"},
		{[]string{"lumen", "render", "--filter", "gauss", sceneFile}, "unknown filter"},
		{[]string{"lumen", "render", "--width", "0", sceneFile}, "frame width and height must be positive"},
		{[]string{"lumen", "info"}, "missing scene file argument"},
		{[]string{"lumen", "compile"}, "missing scene file argument"},
	}

	for index, s := range specs {
		err := app.Run(s.args)
		if err == nil || !strings.Contains(err.Error(), s.expErr) {
			t.Fatalf("[spec %d] expected error containing %q; got %v", index, s.expErr, err)
		}
	}
}

func TestSceneStats(t *testing.T) {
	dir := t.TempDir()
	if err := writer.WriteTemplate(dir); err != nil {
		t.Fatal(err)
	}
	sc, err := reader.ReadScene(filepath.Join(dir, writer.TemplateScene))
	if err != nil {
		t.Fatal(err)
	}

	stats := sceneStats(sc)
	for _, exp := range []string{"floor", "textured cube", "occlusion cube", "plane", "mesh", "halton", "960x540"} {
		if !strings.Contains(stats, exp) {
			t.Fatalf("expected scene stats to mention %q; got\n%s", exp, stats)
		}
	}
}

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	calls := make(chan struct{}, 16)
	stop := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- watchFile(path, stop, func() error {
			calls <- struct{}{}
			return nil
		})
	}()

	waitForCall := func(reason string) {
		select {
		case <-calls:
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for %s", reason)
		}
	}

	waitForCall("the initial run")
	if err := os.WriteFile(path, []byte(`{"version": "1.0"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	waitForCall("a run after the file changed")

	close(stop)
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	if err := watchFile("http://example.com/scene.json", stop, nil); err == nil {
		t.Fatal("expected an error when watching a remote scene")
	}
}
