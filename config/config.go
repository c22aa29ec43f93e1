package config

import (
	"fmt"
	"os"

	"github.com/milk9111/physdemo/common"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth         = 1280
	DefaultHeight        = 720
	DefaultUnitsPerMeter = 100.0
	DefaultIterations    = 20
)

type Config struct {
	Scene      string        `yaml:"scene"`
	Descriptor string        `yaml:"descriptor"`
	LogLevel   string        `yaml:"log_level"`
	Debug      bool          `yaml:"debug"`
	Watch      bool          `yaml:"watch"`
	Window     WindowConfig  `yaml:"window"`
	Physics    PhysicsConfig `yaml:"physics"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type PhysicsConfig struct {
	Gravity         [3]float32 `yaml:"gravity"`
	SubSteps        int        `yaml:"sub_steps"`
	FixedStep       float64    `yaml:"fixed_step"`
	Iterations      int        `yaml:"iterations"`
	UnitsPerMeter   float64    `yaml:"units_per_meter"`
	ApplyWorldScale bool       `yaml:"apply_world_scale"`
	// Ground adds a static ground slab under the scene origin.
	Ground bool `yaml:"ground"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Title:  "physdemo",
		},
		Physics: PhysicsConfig{
			Gravity:       [3]float32{0, common.Gravity, 0},
			SubSteps:      common.DefaultSubSteps,
			FixedStep:     common.DefaultFixedStep,
			Iterations:    DefaultIterations,
			UnitsPerMeter: DefaultUnitsPerMeter,
			Ground:        true,
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Physics.SubSteps <= 0 {
		return fmt.Errorf("config: physics.sub_steps must be positive, got %d", c.Physics.SubSteps)
	}
	if c.Physics.FixedStep <= 0 {
		return fmt.Errorf("config: physics.fixed_step must be positive, got %v", c.Physics.FixedStep)
	}
	if c.Physics.UnitsPerMeter <= 0 {
		return fmt.Errorf("config: physics.units_per_meter must be positive, got %v", c.Physics.UnitsPerMeter)
	}
	if c.Physics.Iterations <= 0 {
		return fmt.Errorf("config: physics.iterations must be positive, got %d", c.Physics.Iterations)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}
