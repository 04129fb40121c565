// Package imaging provides image file I/O and pixel inspection for the
// converter and the MCP server.
//
// Decoding accepts PNG, JPEG and GIF from the standard library plus WebP, BMP
// and TIFF from golang.org/x/image. Output is always PNG, encoded through
// github.com/disintegration/imaging.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward, relative to the image's
// bounds origin.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The other functions are stateless.
//
// # Error Handling
//
// Open wraps missing files in ErrNotFound. Decode and encode failures carry
// the underlying library message.
package imaging
