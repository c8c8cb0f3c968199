package cmd

import (
	"bytes"
	"errors"
	"flag"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func flagContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("render", flag.ContinueOnError)
	for _, f := range RenderFlags {
		f.Apply(set)
	}
	if err := set.Parse(args); err != nil {
		t.Fatalf("parsing %v: %v", args, err)
	}
	return cli.NewContext(nil, set, nil)
}

func TestRenderConfig(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want func(c *renderer.Config)
	}{
		{
			name: "defaults",
			want: func(c *renderer.Config) {},
		},
		{
			name: "all flags",
			args: []string{"-width", "32", "-height", "16", "-spp", "3", "-depth", "5",
				"-seed", "9", "-workers", "2", "-preview-every", "1"},
			want: func(c *renderer.Config) {
				c.Width = 32
				c.Height = 16
				c.SamplesPerPixel = 3
				c.Tracer.MaxDepth = 5
				c.Seed = 9
				c.NumWorkers = 2
				c.PreviewEvery = 1
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := renderer.DefaultConfig()
			tt.want(&want)

			got, err := renderConfig(flagContext(t, tt.args...))
			if err != nil {
				t.Fatalf("renderConfig() error = %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("renderConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderConfig_Invalid(t *testing.T) {
	tests := [][]string{
		{"-spp", "0"},
		{"-width", "-4"},
		{"-depth", "0"},
		{"-workers", "-1"},
		{"-seed", "-1"},
		{"-seed", "4294967296"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := renderConfig(flagContext(t, args...))
			if !errors.Is(err, renderer.ErrInvalidConfig) {
				t.Errorf("renderConfig() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestRenderConfig_DefaultDepth(t *testing.T) {
	got, err := renderConfig(flagContext(t))
	if err != nil {
		t.Fatalf("renderConfig() error = %v", err)
	}
	if got.Tracer.MaxDepth != integrator.DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want %d", got.Tracer.MaxDepth, integrator.DefaultMaxDepth)
	}
}

func TestOutputPath(t *testing.T) {
	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldDir) })

	now := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
	got, err := outputPath("", "cornell", now)
	if err != nil {
		t.Fatalf("outputPath() error = %v", err)
	}
	want := filepath.Join("output", "cornell", "render_20240309_140506.png")
	if got != want {
		t.Errorf("outputPath() = %q, want %q", got, want)
	}
	if info, err := os.Stat(filepath.Dir(got)); err != nil || !info.IsDir() {
		t.Errorf("output directory was not created: %v", err)
	}

	explicit := filepath.Join("nested", "dir", "frame.png")
	got, err = outputPath(explicit, "cornell", now)
	if err != nil {
		t.Fatalf("outputPath() error = %v", err)
	}
	if got != explicit {
		t.Errorf("outputPath() = %q, want %q", got, explicit)
	}
	if _, err := os.Stat(filepath.Dir(explicit)); err != nil {
		t.Errorf("output directory was not created: %v", err)
	}
}

func testApp() *cli.App {
	app := cli.NewApp()
	app.Commands = []cli.Command{
		{Name: "render", Flags: RenderFlags, Action: RenderFrame},
		{Name: "list-scenes", Action: ListScenes},
	}
	return app
}

func TestRenderFrame(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	err := testApp().Run([]string{"pathtracer", "render",
		"-scene", "cornell", "-width", "8", "-height", "6", "-spp", "2", "-workers", "2", "-out", out})
	if err != nil {
		t.Fatalf("render error = %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Errorf("output bounds = %v, want 8x6", img.Bounds())
	}
}

func TestRenderFrame_UnknownScene(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	err := testApp().Run([]string{"pathtracer", "render", "-scene", "teapot", "-out", out})
	if !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("render error = %v, want ErrUnknownScene", err)
	}
	if _, statErr := os.Stat(out); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("no image should be written for an unknown scene")
	}
}

func TestWriteSceneTable(t *testing.T) {
	var buf bytes.Buffer
	writeSceneTable(&buf, scene.List())
	for _, info := range scene.List() {
		if !strings.Contains(buf.String(), info.Name) {
			t.Errorf("scene table is missing %s:\n%s", info.Name, buf.String())
		}
	}
}

func TestTerminationsTable(t *testing.T) {
	stats := renderer.RenderStats{
		TotalSamples: 4,
		Terminations: map[integrator.Termination]int{
			integrator.Escaped:  3,
			integrator.Absorbed: 1,
		},
	}
	table := terminationsTable(stats)
	for _, want := range []string{"escaped", "75.0 %", "absorbed", "25.0 %", "depth_limit", "TOTAL"} {
		if !strings.Contains(table, want) {
			t.Errorf("terminations table is missing %q:\n%s", want, table)
		}
	}
}
