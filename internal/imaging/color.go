package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/ironsheep/transparent-bg/internal/transparency"
	"github.com/lucasb-eyer/go-colorful"
)

// RGBAColor represents an RGBA color with 8-bit, non-premultiplied components.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult describes the pixel at one coordinate.
type ColorResult struct {
	X          int       `json:"x"`
	Y          int       `json:"y"`
	Hex        string    `json:"hex"`        // "#RRGGBB", alpha excluded
	RGBA       RGBAColor `json:"rgba"`       // non-premultiplied components
	HSL        HSLColor  `json:"hsl"`        // derived from RGB only
	Brightness float64   `json:"brightness"` // mean of R, G and B
}

// SampleColor reads the pixel at (x, y).
//
// Coordinates are 0-based relative to the image's bounds origin. The color is
// converted to non-premultiplied 8-bit components so that a transparent
// pixel's stored RGB is reported as-is.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	px, py := bounds.Min.X+x, bounds.Min.Y+y
	if x < 0 || y < 0 || px >= bounds.Max.X || py >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, bounds.Dx(), bounds.Dy())
	}

	c := color.NRGBAModel.Convert(img.At(px, py)).(color.NRGBA)

	return &ColorResult{
		X:          x,
		Y:          y,
		Hex:        fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B),
		RGBA:       RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL:        rgbToHSL(c.R, c.G, c.B),
		Brightness: transparency.Brightness(c.R, c.G, c.B),
	}, nil
}

// rgbToHSL converts 8-bit RGB values to rounded HSL components.
func rgbToHSL(r, g, b uint8) HSLColor {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, l := c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSLColor{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}
