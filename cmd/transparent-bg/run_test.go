package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePNG(t *testing.T, dir string, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, "drawing.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func noEnv(string) string { return "" }

func firstPixel(t *testing.T, path string) color.NRGBA {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	return color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA)
}

func TestRun_DefaultOutput(t *testing.T) {
	dir := t.TempDir()
	input := writePNG(t, dir, color.RGBA{200, 200, 200, 255})

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{input}, noEnv, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}

	want := filepath.Join(dir, "drawing_transparent.png")
	if got := strings.TrimSpace(stdout.String()); got != "Saved: "+want {
		t.Errorf("stdout = %q, want %q", got, "Saved: "+want)
	}
	if got := firstPixel(t, want); got != (color.NRGBA{0, 0, 0, 51}) {
		t.Errorf("output pixel = %v, want (0,0,0,51)", got)
	}
}

func TestRun_Flags(t *testing.T) {
	dir := t.TempDir()
	input := writePNG(t, dir, color.RGBA{10, 10, 10, 255})
	output := filepath.Join(dir, "custom.png")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{input, "-t", "200", "-o", output, "--color", "#00ff00"}, noEnv, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), output) {
		t.Errorf("stdout = %q, want output path", stdout.String())
	}
	if got := firstPixel(t, output); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("output pixel = %v, want opaque green ink", got)
	}
}

func TestRun_LongFlags(t *testing.T) {
	dir := t.TempDir()
	input := writePNG(t, dir, color.RGBA{150, 150, 150, 255})
	output := filepath.Join(dir, "long.png")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--threshold", "150", "--output", output, input}, noEnv, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if got := firstPixel(t, output); got != (color.NRGBA{}) {
		t.Errorf("output pixel = %v, want fully transparent at threshold 150", got)
	}
}

func TestRun_MissingFile(t *testing.T) {
	input := filepath.Join(t.TempDir(), "foo.png")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{input}, noEnv, &stdout, &stderr)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if got := stderr.String(); !strings.Contains(got, "File not found") || !strings.Contains(got, input) {
		t.Errorf("stderr = %q, want file-not-found message with path", got)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
}

func TestRun_InvalidThreshold(t *testing.T) {
	dir := t.TempDir()
	input := writePNG(t, dir, color.White)

	for _, th := range []string{"0", "256", "-5"} {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{input, "--threshold=" + th}, noEnv, &stdout, &stderr)
		if code != 1 {
			t.Errorf("threshold %s: exit code = %d, want 1", th, code)
		}
		if !strings.Contains(stderr.String(), "invalid threshold") {
			t.Errorf("threshold %s: stderr = %q", th, stderr.String())
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "drawing_transparent.png")); !os.IsNotExist(err) {
		t.Error("no output should be written for an invalid threshold")
	}
}

func TestRun_UsageErrors(t *testing.T) {
	tests := [][]string{
		{},
		{"a.png", "b.png"},
		{"a.png", "--threshold", "bright"},
	}

	for _, args := range tests {
		var stdout, stderr bytes.Buffer
		if code := run(context.Background(), args, noEnv, &stdout, &stderr); code != 1 {
			t.Errorf("args %v: exit code = %d, want 1", args, code)
		}
		if !strings.HasPrefix(stderr.String(), "Error: ") {
			t.Errorf("args %v: stderr = %q", args, stderr.String())
		}
	}
}

func TestRun_EnvironmentDefaults(t *testing.T) {
	dir := t.TempDir()
	input := writePNG(t, dir, color.RGBA{150, 150, 150, 255})
	env := map[string]string{"TRANSPARENT_BG_THRESHOLD": "150"}

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{input}, func(k string) string { return env[k] }, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if got := firstPixel(t, filepath.Join(dir, "drawing_transparent.png")); got != (color.NRGBA{}) {
		t.Errorf("output pixel = %v, want transparent with env threshold 150", got)
	}
}

func TestRun_BadEnvironment(t *testing.T) {
	env := map[string]string{"TRANSPARENT_BG_THRESHOLD": "high"}

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"x.png"}, func(k string) string { return env[k] }, &stdout, &stderr); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"--version"}, noEnv, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), Version) {
		t.Errorf("stdout = %q, want version", stdout.String())
	}
}
