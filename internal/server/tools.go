package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools. defaultThreshold is
// advertised as the threshold argument's default.
func GetToolDefinitions(defaultThreshold int) []Tool {
	return []Tool{
		{
			Name: "image_make_transparent",
			Description: "Convert an image's near-white background to transparency, keeping dark line-art. " +
				"Pixels at or above the brightness threshold become fully transparent, pixels darker than 50 become solid ink, " +
				"and anti-aliased pixels in between become ink with proportional alpha. Writes a PNG and returns its path.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the input image (png, jpeg, gif, webp, bmp, tiff)",
					},
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Brightness (mean of R, G, B) at and above which a pixel is background",
						"minimum":     1,
						"maximum":     255,
						"default":     defaultThreshold,
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Output PNG path. Defaults to <input_basename>_transparent.png next to the input",
					},
					"ink_color": map[string]interface{}{
						"type":        "string",
						"description": "Hex colour for line-art pixels, e.g. #000000",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, colour depth and whether it has an alpha channel.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact colour, alpha and brightness at a pixel coordinate. Useful for checking a threshold before converting.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(s.cfg.Threshold),
		},
	}
}
