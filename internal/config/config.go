package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ironsheep/transparent-bg/internal/transparency"
	"github.com/lucasb-eyer/go-colorful"
)

// Environment variables read by FromEnv.
const (
	EnvThreshold = "TRANSPARENT_BG_THRESHOLD"
	EnvInk       = "TRANSPARENT_BG_INK"
	EnvLogLevel  = "TRANSPARENT_BG_LOG_LEVEL"
)

// ErrInvalidColor is returned when an ink colour cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Config represents the converter configuration
type Config struct {
	// Threshold is the brightness cutoff for background pixels (1-255)
	Threshold int `json:"threshold"`

	// OutputSuffix is appended to the input basename when no output path is given
	OutputSuffix string `json:"outputSuffix"`

	// InkColor is the hex colour painted for line-art pixels
	InkColor string `json:"inkColor"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `json:"logLevel"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Threshold:    transparency.DefaultThreshold,
		OutputSuffix: "_transparent",
		InkColor:     "#000000",
		LogLevel:     "info",
	}
}

// FromEnv overlays values from the environment onto c. Variables that are
// unset or empty leave the current value alone.
func (c *Config) FromEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvThreshold)); v != "" {
		t, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvThreshold, err)
		}
		c.Threshold = t
	}
	if v := strings.TrimSpace(getenv(EnvInk)); v != "" {
		c.InkColor = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate checks the threshold and ink colour.
func (c *Config) Validate() error {
	if err := transparency.ValidateThreshold(c.Threshold); err != nil {
		return err
	}
	if _, err := ParseInk(c.InkColor); err != nil {
		return err
	}
	return nil
}

// ParseInk parses a "#rrggbb" or "#rgb" colour. The leading '#' is optional.
func ParseInk(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, s, err)
	}
	return c, nil
}
