// Package transparency converts near-white image backgrounds to transparency.
//
// The conversion is a per-pixel remap driven by a single brightness threshold.
// Each pixel's brightness is the arithmetic mean of its red, green and blue
// channels, and the pixel falls into one of three bands:
//
//   - Transparent: brightness >= threshold. Output is (0,0,0,0).
//   - Opaque: brightness < 50. Output is the ink colour at full opacity.
//   - Partial: everything else. Output is the ink colour with an alpha that
//     falls linearly from 255 towards 0 as brightness approaches the threshold.
//
// The partial band is what keeps anti-aliased edges of line-art smooth: a gray
// edge pixel becomes ink with proportional transparency instead of being
// snapped to either extreme.
//
// # Input Alpha
//
// The input alpha channel does not take part in classification. Two kinds of
// pixel are left as they are so that remapping an already converted image is a
// no-op:
//
//   - Pixels with alpha 0 stay fully transparent.
//   - Translucent pixels whose RGB already equals the ink colour keep their
//     alpha.
//
// With the default black ink this makes Apply idempotent: every output pixel
// is either (0,0,0,0), opaque black (brightness 0, so opaque again) or
// translucent black.
//
// # Threshold
//
// The threshold must lie in [1,255]. Zero would divide by zero in the alpha
// formula and is rejected by ValidateThreshold and New.
//
// # Concurrency
//
// A Remapper is immutable after construction and safe for concurrent use.
// Apply fans rows out across goroutines; the result does not depend on the
// order in which rows are processed.
package transparency
