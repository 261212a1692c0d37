package config

import (
	"fmt"

	"github.com/ItsNotGoodName/x-shapes/internal/core"
)

const (
	DefaultTitle     = "Demo - Perspective projection with 2D objects"
	DefaultWidth     = 800
	DefaultHeight    = 600
	DefaultFrameRate = 60
)

var defaultConfig = Config{
	Title:      DefaultTitle,
	Width:      DefaultWidth,
	Height:     DefaultHeight,
	FrameRate:  nil,
	ClearColor: []float32{0, 0, 0, 0},
}

// Default returns a copy of the built-in configuration.
func Default() Config {
	cfg := defaultConfig
	cfg.ClearColor = append([]float32(nil), defaultConfig.ClearColor...)
	return cfg
}

type Config struct {
	Title  string `json:"title" yaml:"title"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	// FrameRate caps rendering in frames per second. 0 renders as fast as possible.
	FrameRate  *int      `json:"frame_rate,omitempty" yaml:"frame_rate,omitempty"`
	ClearColor []float32 `json:"clear_color" yaml:"clear_color"`
}

// FPS returns the frame rate cap, DefaultFrameRate when unset.
func (c Config) FPS() int {
	return core.AtLeast(core.Optional(c.FrameRate, DefaultFrameRate), 0)
}

// Clear returns the clear color as RGBA.
func (c Config) Clear() [4]float32 {
	var rgba [4]float32
	copy(rgba[:], c.ClearColor)
	return rgba
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if c.Width > 0xffff || c.Height > 0xffff {
		return fmt.Errorf("window size %dx%d exceeds 65535", c.Width, c.Height)
	}
	if len(c.ClearColor) != 4 {
		return fmt.Errorf("clear_color needs 4 components, got %d", len(c.ClearColor))
	}
	for i, v := range c.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("clear_color[%d]=%v: out of range [0,1]", i, v)
		}
	}
	return nil
}
