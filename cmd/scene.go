package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/achilleasa/lumen/asset/reader"
	"github.com/achilleasa/lumen/asset/writer"
	"github.com/achilleasa/lumen/geometry"
	"github.com/achilleasa/lumen/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Compile scene descriptions into baked zip archives.
func CompileScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() == 0 {
		return errors.New("missing scene file argument")
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		sceneFile := ctx.Args().Get(idx)
		if !strings.HasSuffix(sceneFile, ".json") {
			logger.Warningf("skipping unsupported file %s", sceneFile)
			continue
		}

		logger.Noticef("parsing and compiling scene: %s", sceneFile)
		sc, err := reader.ReadScene(sceneFile)
		if err != nil {
			return err
		}

		zipFile := strings.TrimSuffix(sceneFile, ".json") + ".zip"
		if err = writer.WriteScene(sc, zipFile); err != nil {
			return err
		}
	}

	return nil
}

// Display scene information.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	sc, err := reader.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}

	logger.Noticef("scene information:\n%s", sceneStats(sc))
	return nil
}

// Write a template scene.
func WriteTemplate(ctx *cli.Context) error {
	setupLogging(ctx)

	dir := "."
	if ctx.NArg() > 0 {
		dir = ctx.Args().First()
	}
	if err := writer.WriteTemplate(dir); err != nil {
		return err
	}

	logger.Noticef("render the template with: lumen render %s", filepath.Join(dir, writer.TemplateScene))
	return nil
}

// Format the scene contents as tables.
func sceneStats(sc *scene.Scene) string {
	var buf bytes.Buffer
	world := sc.World

	fmt.Fprintf(&buf, "version %s, %d triangles, up %v\n\n", sc.Version, world.TriangleCount(), world.Up())

	table := newTable(&buf, "Object", "Shape", "Triangles", "Material", "Visible", "Position")
	for _, obj := range world.Objects {
		triangles := 0
		switch obj.Shape.Kind {
		case geometry.MeshSurface:
			triangles = len(obj.Shape.Mesh.Triangles)
		case geometry.TriangleSurface:
			triangles = 1
		}
		table.Append([]string{
			obj.Name,
			obj.Shape.Kind.String(),
			fmt.Sprintf("%d", triangles),
			fmt.Sprintf("%s (%s)", obj.Material.Name, obj.Material.Kind),
			fmt.Sprintf("%t", obj.Visible),
			fmt.Sprintf("%v", obj.Position),
		})
	}
	table.Render()
	buf.WriteString("\n")

	table = newTable(&buf, "Camera", "Position", "Target", "FOV", "Clip")
	for i, cam := range world.Cameras {
		table.Append([]string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%v", cam.Position),
			fmt.Sprintf("%v", cam.Target),
			fmt.Sprintf("%.1f", cam.FOV),
			fmt.Sprintf("%.3f", cam.Clip),
		})
	}
	table.Render()
	buf.WriteString("\n")

	table = newTable(&buf, "Light", "Position", "Intensity")
	for i, light := range world.Lights {
		table.Append([]string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%v", light.Position),
			fmt.Sprintf("%.2f", light.Intensity),
		})
	}
	table.Render()
	buf.WriteString("\n")

	s := sc.Settings
	table = newTable(&buf, "Resolution", "Sampler", "Filter", "Block size", "Threads", "Seed", "Camera")
	table.Append([]string{
		fmt.Sprintf("%dx%d", s.Width, s.Height),
		fmt.Sprintf("%s x%d", s.Sampler, s.SampleRate),
		s.Filter,
		fmt.Sprintf("%d", s.BlockSize),
		fmt.Sprintf("%d", s.Threads),
		fmt.Sprintf("%d", s.Seed),
		fmt.Sprintf("%d", s.Camera),
	})
	table.Render()

	return buf.String()
}

func newTable(buf *bytes.Buffer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(header)
	return table
}
