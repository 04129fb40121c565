// Package server implements the MCP (Model Context Protocol) server that
// exposes the background-to-transparency converter as a tool.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_make_transparent: Convert a near-white background to transparency
//     and write the result as PNG
//   - image_load: Get dimensions, format and alpha information for a file
//   - image_sample_color: Get colour, alpha and brightness at a pixel
//
// Optional image_make_transparent arguments default to the server's
// config.Config, so TRANSPARENT_BG_THRESHOLD and TRANSPARENT_BG_INK apply to
// tool calls as well as to the command-line tool.
//
// # Image Caching
//
// Images read by image_load and image_sample_color are cached by path for
// the lifetime of the process. image_make_transparent evicts the path it
// writes so that later inspection sees the new file.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
package server
