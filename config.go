package cursorfx

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/folio/cursorfx/fxrt/core"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds every tunable of the overlay. DefaultConfig reproduces the
// stock effect; a YAML file only needs the keys it changes.
type Config struct {
	Window    WindowConfig      `yaml:"window"`
	Camera    core.CameraParams `yaml:"camera"`
	Particles core.Params       `yaml:"particles"`

	// MaxFrameDelta is the simulation step ceiling in seconds.
	MaxFrameDelta float64 `yaml:"maxFrameDelta"`
	// PointScale converts particle size to pixels at unit view depth.
	PointScale float32 `yaml:"pointScale"`

	Debug     bool   `yaml:"debug"`
	LogPrefix string `yaml:"logPrefix"`
}

type WindowConfig struct {
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Title       string `yaml:"title"`
	Transparent bool   `yaml:"transparent"`
	Floating    bool   `yaml:"floating"`
	Decorated   bool   `yaml:"decorated"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:       1280,
			Height:      720,
			Title:       "cursorfx",
			Transparent: true,
			Floating:    true,
			Decorated:   false,
		},
		Camera:        core.DefaultCameraParams(),
		Particles:     core.DefaultParams(),
		MaxFrameDelta: 1.0 / 30,
		PointScale:    500,
		LogPrefix:     "cursorfx",
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig and validates it.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	p := c.Particles
	switch {
	case p.Capacity <= 0:
		return fmt.Errorf("%w: particles.capacity must be positive, got %d", ErrInvalidConfig, p.Capacity)
	case p.EmitPerFrame < 0:
		return fmt.Errorf("%w: particles.emitPerFrame must not be negative, got %d", ErrInvalidConfig, p.EmitPerFrame)
	case p.Lifetime[0] <= 0 || p.Lifetime[1] < p.Lifetime[0]:
		return fmt.Errorf("%w: particles.lifetime must be a positive [min, max], got %v", ErrInvalidConfig, p.Lifetime)
	case p.Size[0] < 0 || p.Size[1] < p.Size[0]:
		return fmt.Errorf("%w: particles.size must be [min, max], got %v", ErrInvalidConfig, p.Size)
	case p.Speed[0] < 0 || p.Speed[1] < p.Speed[0]:
		return fmt.Errorf("%w: particles.speed must be [min, max], got %v", ErrInvalidConfig, p.Speed)
	case !unitRange(p.Saturation) || !unitRange(p.Lightness):
		return fmt.Errorf("%w: particles saturation and lightness must lie in [0, 1]", ErrInvalidConfig)
	case p.Friction < 0 || p.Friction > 1:
		return fmt.Errorf("%w: particles.friction must lie in [0, 1], got %v", ErrInvalidConfig, p.Friction)
	}

	cam := c.Camera
	switch {
	case cam.Fov <= 0 || cam.Fov >= 180:
		return fmt.Errorf("%w: camera.fov must lie in (0, 180), got %v", ErrInvalidConfig, cam.Fov)
	case cam.Near <= 0 || cam.Far <= cam.Near:
		return fmt.Errorf("%w: camera needs 0 < near < far, got %v and %v", ErrInvalidConfig, cam.Near, cam.Far)
	case cam.Distance <= cam.Near:
		return fmt.Errorf("%w: camera.distance must exceed near, got %v", ErrInvalidConfig, cam.Distance)
	}

	if c.MaxFrameDelta <= 0 {
		return fmt.Errorf("%w: maxFrameDelta must be positive, got %v", ErrInvalidConfig, c.MaxFrameDelta)
	}
	if c.PointScale <= 0 {
		return fmt.Errorf("%w: pointScale must be positive, got %v", ErrInvalidConfig, c.PointScale)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	return nil
}

// FrameDeltaCeiling returns MaxFrameDelta as a duration.
func (c Config) FrameDeltaCeiling() time.Duration {
	return time.Duration(c.MaxFrameDelta * float64(time.Second))
}

func unitRange(r [2]float32) bool {
	return r[0] >= 0 && r[1] <= 1 && r[0] <= r[1]
}
