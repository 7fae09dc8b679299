package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
)

// ErrInvalidConfig marks settings outside their valid range
var ErrInvalidConfig = errors.New("invalid render configuration")

// Config holds the render settings read from a JSON file. Zero values mean
// "use the scene preset or built-in default"; pointer fields distinguish an
// explicit false or zero from an unset field.
type Config struct {
	// Scene and output
	Scene  string `json:"scene"`
	Output string `json:"output"` // Extension picks png, webp or tga

	// Image
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	SampleGrid int     `json:"sample_grid"` // Anti-aliasing rays per pixel axis
	Downsample int     `json:"downsample"`  // Render at N times the size, then shrink
	Gamma      float64 `json:"gamma"`

	// Tracing
	MaxDepth    int   `json:"max_depth"`
	SoftShadows *bool `json:"soft_shadows"`
	ShadowGrid  int   `json:"shadow_grid"`
	BVH         *bool `json:"bvh"`

	// Execution
	Threads       *int    `json:"threads"` // 0 renders synchronously
	Seed          uint64  `json:"seed"`
	DebugInterval float64 `json:"debug_interval"` // Seconds between progress lines
	GridInterval  int     `json:"grid_interval"`  // Overlay a debug grid every N pixels
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings. String
// and numeric flags override when non-zero; Threads overrides when set.
type Flags struct {
	Scene         string
	Output        string
	Width         int
	Height        int
	SampleGrid    int
	Downsample    int
	Gamma         float64
	MaxDepth      int
	SoftShadows   bool
	HardShadows   bool
	ShadowGrid    int
	NoBVH         bool
	Threads       *int
	Seed          uint64
	DebugInterval float64
	GridInterval  int
}

// Resolve applies flag overrides and fills in the settings that do not
// depend on the scene
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.SampleGrid > 0 {
		c.SampleGrid = flags.SampleGrid
	}
	if flags.Downsample > 0 {
		c.Downsample = flags.Downsample
	}
	if flags.Gamma > 0 {
		c.Gamma = flags.Gamma
	}
	if flags.MaxDepth > 0 {
		c.MaxDepth = flags.MaxDepth
	}
	if flags.SoftShadows {
		c.SoftShadows = boolPtr(true)
	}
	if flags.HardShadows {
		c.SoftShadows = boolPtr(false)
	}
	if flags.ShadowGrid > 0 {
		c.ShadowGrid = flags.ShadowGrid
	}
	if flags.NoBVH {
		c.BVH = boolPtr(false)
	}
	if flags.Threads != nil {
		threads := *flags.Threads
		c.Threads = &threads
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.DebugInterval > 0 {
		c.DebugInterval = flags.DebugInterval
	}
	if flags.GridInterval > 0 {
		c.GridInterval = flags.GridInterval
	}

	// Defaults
	if c.Scene == "" {
		c.Scene = "default"
	}
	if c.SampleGrid <= 0 {
		c.SampleGrid = 1
	}
	if c.Downsample <= 0 {
		c.Downsample = 1
	}
	if c.Gamma <= 0 {
		c.Gamma = 1
	}
	if c.BVH == nil {
		c.BVH = boolPtr(true)
	}
	if c.Threads == nil {
		threads := runtime.NumCPU()
		c.Threads = &threads
	}
}

// ApplyPreset fills the scene-dependent settings left unset with the
// preset's values
func (c *Config) ApplyPreset(width, height int, softShadows bool, shadowGrid int) {
	if c.Width == 0 {
		c.Width = width
	}
	if c.Height == 0 {
		c.Height = height
	}
	if c.SoftShadows == nil {
		c.SoftShadows = boolPtr(softShadows)
	}
	if c.ShadowGrid == 0 {
		c.ShadowGrid = shadowGrid
	}
}

// Validate rejects negative or out-of-range settings
func (c Config) Validate() error {
	switch {
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("image size %dx%d: %w", c.Width, c.Height, ErrInvalidConfig)
	case c.SampleGrid < 0:
		return fmt.Errorf("sample grid %d: %w", c.SampleGrid, ErrInvalidConfig)
	case c.Downsample < 0:
		return fmt.Errorf("downsample factor %d: %w", c.Downsample, ErrInvalidConfig)
	case c.Gamma < 0:
		return fmt.Errorf("gamma %g: %w", c.Gamma, ErrInvalidConfig)
	case c.MaxDepth < 0:
		return fmt.Errorf("max depth %d: %w", c.MaxDepth, ErrInvalidConfig)
	case c.ShadowGrid < 0:
		return fmt.Errorf("shadow grid %d: %w", c.ShadowGrid, ErrInvalidConfig)
	case c.Threads != nil && *c.Threads < 0:
		return fmt.Errorf("threads %d: %w", *c.Threads, ErrInvalidConfig)
	case c.DebugInterval < 0:
		return fmt.Errorf("debug interval %g: %w", c.DebugInterval, ErrInvalidConfig)
	case c.GridInterval < 0:
		return fmt.Errorf("grid interval %d: %w", c.GridInterval, ErrInvalidConfig)
	}
	return nil
}

// SoftShadowsEnabled reports the resolved soft shadow setting
func (c Config) SoftShadowsEnabled() bool {
	return c.SoftShadows != nil && *c.SoftShadows
}

// BVHEnabled reports whether the scene should be arranged as a hierarchy
func (c Config) BVHEnabled() bool {
	return c.BVH == nil || *c.BVH
}

// ThreadCount returns the resolved number of render goroutines
func (c Config) ThreadCount() int {
	if c.Threads == nil {
		return runtime.NumCPU()
	}
	return *c.Threads
}

func boolPtr(b bool) *bool {
	return &b
}
