package transparency

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
)

const (
	// DefaultThreshold is the brightness at and above which a pixel is background.
	DefaultThreshold = 250

	// DarkCutoff is the brightness below which a pixel is solid ink.
	DarkCutoff = 50

	// MinThreshold and MaxThreshold bound the accepted threshold range.
	MinThreshold = 1
	MaxThreshold = 255
)

// ErrInvalidThreshold is returned for thresholds outside [MinThreshold, MaxThreshold].
var ErrInvalidThreshold = errors.New("invalid threshold")

// Band is the classification of a single pixel.
type Band int

const (
	// BandTransparent marks background pixels (brightness >= threshold).
	BandTransparent Band = iota
	// BandOpaque marks dark line-art pixels (brightness < DarkCutoff).
	BandOpaque
	// BandPartial marks anti-aliased pixels between the two.
	BandPartial
)

// String returns the band name used in logs and JSON results.
func (b Band) String() string {
	switch b {
	case BandTransparent:
		return "transparent"
	case BandOpaque:
		return "opaque"
	case BandPartial:
		return "partial"
	default:
		return fmt.Sprintf("Band(%d)", int(b))
	}
}

// Stats counts how many pixels of an image landed in each band.
type Stats struct {
	Transparent int `json:"transparent"`
	Opaque      int `json:"opaque"`
	Partial     int `json:"partial"`
}

// Total returns the number of pixels counted.
func (s Stats) Total() int {
	return s.Transparent + s.Opaque + s.Partial
}

func (s *Stats) add(b Band) {
	switch b {
	case BandTransparent:
		s.Transparent++
	case BandOpaque:
		s.Opaque++
	case BandPartial:
		s.Partial++
	}
}

func (s *Stats) merge(o Stats) {
	s.Transparent += o.Transparent
	s.Opaque += o.Opaque
	s.Partial += o.Partial
}

// ValidateThreshold reports whether t can be used as a threshold.
func ValidateThreshold(t int) error {
	if t < MinThreshold || t > MaxThreshold {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidThreshold, t, MinThreshold, MaxThreshold)
	}
	return nil
}

// Brightness returns the unrounded mean of the three colour channels.
func Brightness(r, g, b uint8) float64 {
	return (float64(r) + float64(g) + float64(b)) / 3
}

// Classify places a brightness value into its band for the given threshold.
// The threshold test runs first, so with a threshold at or below DarkCutoff
// the opaque band only covers brightness values under the threshold.
func Classify(brightness float64, threshold uint8) Band {
	switch {
	case brightness >= float64(threshold):
		return BandTransparent
	case brightness < DarkCutoff:
		return BandOpaque
	default:
		return BandPartial
	}
}

// Alpha computes the partial-band opacity: 255 * (1 - brightness/threshold),
// rounded to the nearest integer and clamped to [0,255]. threshold must be
// non-zero.
func Alpha(brightness float64, threshold uint8) uint8 {
	a := math.Round(255 * (1 - brightness/float64(threshold)))
	if a < 0 {
		return 0
	}
	if a > 255 {
		return 255
	}
	return uint8(a)
}

// Remapper applies the background-to-transparency transform.
type Remapper struct {
	threshold uint8
	ink       color.NRGBA
}

// Option customises a Remapper.
type Option func(*Remapper)

// WithInk sets the colour used for line-art pixels. The alpha of ink is ignored.
func WithInk(ink color.NRGBA) Option {
	return func(r *Remapper) {
		r.ink = color.NRGBA{R: ink.R, G: ink.G, B: ink.B}
	}
}

// New creates a Remapper for threshold. The ink colour defaults to black.
func New(threshold int, opts ...Option) (*Remapper, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	r := &Remapper{threshold: uint8(threshold)}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Threshold returns the configured threshold.
func (m *Remapper) Threshold() uint8 {
	return m.threshold
}

// Ink returns the configured ink colour with zero alpha.
func (m *Remapper) Ink() color.NRGBA {
	return m.ink
}

// Pixel remaps one non-premultiplied pixel.
func (m *Remapper) Pixel(r, g, b, a uint8) color.NRGBA {
	c, _ := m.remap(r, g, b, a)
	return c
}

func (m *Remapper) remap(r, g, b, a uint8) (color.NRGBA, Band) {
	if a == 0 {
		return color.NRGBA{}, BandTransparent
	}
	if a < 255 && r == m.ink.R && g == m.ink.G && b == m.ink.B {
		// Translucent ink from an earlier pass keeps its opacity.
		return color.NRGBA{R: r, G: g, B: b, A: a}, BandPartial
	}

	brightness := Brightness(r, g, b)
	band := Classify(brightness, m.threshold)
	switch band {
	case BandTransparent:
		return color.NRGBA{}, band
	case BandOpaque:
		return color.NRGBA{R: m.ink.R, G: m.ink.G, B: m.ink.B, A: 255}, band
	default:
		a := Alpha(brightness, m.threshold)
		if a == 0 {
			return color.NRGBA{}, band
		}
		return color.NRGBA{R: m.ink.R, G: m.ink.G, B: m.ink.B, A: a}, band
	}
}

// Apply remaps every pixel of img into a new image of the same size. The
// result's bounds start at (0,0); pixel order is preserved.
func (m *Remapper) Apply(img image.Image) (*image.NRGBA, Stats) {
	src := imaging.Clone(img)
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	width, height := bounds.Dx(), bounds.Dy()

	var (
		mu    sync.Mutex
		stats Stats
	)

	parallel.Line(height, func(start, end int) {
		var local Stats
		for y := start; y < end; y++ {
			row := y * src.Stride
			for x := 0; x < width; x++ {
				i := row + x*4
				c, band := m.remap(src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3])
				j := y*dst.Stride + x*4
				dst.Pix[j+0] = c.R
				dst.Pix[j+1] = c.G
				dst.Pix[j+2] = c.B
				dst.Pix[j+3] = c.A
				local.add(band)
			}
		}
		mu.Lock()
		stats.merge(local)
		mu.Unlock()
	})

	return dst, stats
}
