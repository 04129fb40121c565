// Package convert runs one file through the transparency remapper: it checks
// the input, decodes it, remaps every pixel and writes the result as PNG.
package convert

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ironsheep/transparent-bg/internal/config"
	"github.com/ironsheep/transparent-bg/internal/imaging"
	"github.com/ironsheep/transparent-bg/internal/transparency"
)

// DefaultSuffix is appended to the input basename to form the default output name.
const DefaultSuffix = "_transparent"

// ErrInputNotFound is returned when the input path does not exist.
var ErrInputNotFound = errors.New("file not found")

// Options controls a single conversion.
type Options struct {
	// Input is the path of the image to convert. Required.
	Input string

	// Output is the PNG path to write. Empty means DefaultOutputPath(Input).
	Output string

	// Threshold is the background brightness cutoff, 1-255.
	Threshold int

	// Ink is a hex colour for line-art pixels. Empty means black.
	Ink string
}

// Result describes a finished conversion.
type Result struct {
	Input      string             `json:"input"`
	Output     string             `json:"output"`
	Format     string             `json:"format"`
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	Threshold  int                `json:"threshold"`
	Stats      transparency.Stats `json:"pixels"`
	DurationMS int64              `json:"duration_ms"`
}

// DefaultOutputPath returns "<dir>/<basename-without-ext>_transparent.png"
// for input.
func DefaultOutputPath(input string) string {
	return OutputPathWithSuffix(input, DefaultSuffix)
}

// OutputPathWithSuffix places "<basename-without-ext><suffix>.png" alongside input.
func OutputPathWithSuffix(input, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(filepath.Dir(input), base+suffix+".png")
}

// NewRemapper validates threshold and ink and builds the remapper for them.
func NewRemapper(threshold int, ink string) (*transparency.Remapper, error) {
	if err := transparency.ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	var opts []transparency.Option
	if ink != "" {
		c, err := config.ParseInk(ink)
		if err != nil {
			return nil, err
		}
		r, g, b := c.RGB255()
		opts = append(opts, transparency.WithInk(color.NRGBA{R: r, G: g, B: b}))
	}
	return transparency.New(threshold, opts...)
}

// Convert performs the conversion described by opts.
//
// Configuration errors (threshold, ink) are reported before the input is
// touched. A missing input yields an error wrapping ErrInputNotFound that
// names the path. Decode and encode failures are returned with the
// underlying library message; no output file is left behind when encoding
// fails.
func Convert(ctx context.Context, opts Options, logger *slog.Logger) (*Result, error) {
	start := time.Now()

	remapper, err := NewRemapper(opts.Threshold, opts.Ink)
	if err != nil {
		return nil, err
	}

	if opts.Input == "" {
		return nil, errors.New("no input image given")
	}
	if _, err := os.Stat(opts.Input); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, opts.Input)
		}
		return nil, fmt.Errorf("failed to stat input: %w", err)
	}

	output := opts.Output
	if output == "" {
		output = DefaultOutputPath(opts.Input)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, format, err := imaging.Open(opts.Input)
	if err != nil {
		if errors.Is(err, imaging.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, opts.Input)
		}
		return nil, err
	}
	bounds := img.Bounds()
	logger.Debug("decoded input",
		"path", opts.Input,
		"format", format,
		"width", bounds.Dx(),
		"height", bounds.Dy())

	out, stats := remapper.Apply(img)
	logger.Debug("remapped pixels",
		"threshold", remapper.Threshold(),
		"transparent", stats.Transparent,
		"opaque", stats.Opaque,
		"partial", stats.Partial)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := imaging.SavePNG(output, out); err != nil {
		return nil, err
	}

	return &Result{
		Input:      opts.Input,
		Output:     output,
		Format:     format,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Threshold:  int(remapper.Threshold()),
		Stats:      stats,
		DurationMS: time.Since(start).Milliseconds(),
	}, nil
}
