package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/scribblepad/internal/preset"
	"github.com/san-kum/scribblepad/internal/render"
)

const (
	DefaultWidth       = 1260
	DefaultHeight      = 968
	DefaultStepDelay   = time.Millisecond
	DefaultColorStride = 2
	DefaultBurst       = 256
	DefaultSampleEvery = 10
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Viewport ViewportConfig `mapstructure:"viewport" yaml:"viewport"`
	Playback PlaybackConfig `mapstructure:"playback" yaml:"playback"`
	Render   RenderConfig   `mapstructure:"render" yaml:"render"`
	Storage  StorageConfig  `mapstructure:"storage" yaml:"storage"`
	Site     SiteConfig     `mapstructure:"site" yaml:"site"`
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
}

// ViewportConfig is the drawing area in pixels for headless surfaces.
type ViewportConfig struct {
	Width  float64 `mapstructure:"width" yaml:"width"`
	Height float64 `mapstructure:"height" yaml:"height"`
}

type PlaybackConfig struct {
	Preset    string        `mapstructure:"preset" yaml:"preset"`
	StepDelay time.Duration `mapstructure:"step_delay" yaml:"step_delay"`
	Burst     int           `mapstructure:"burst" yaml:"burst"`
	// MaxSteps caps every run below its preset budget; 0 keeps the budget.
	MaxSteps int `mapstructure:"max_steps" yaml:"max_steps"`
}

type RenderConfig struct {
	ColorStride int     `mapstructure:"color_stride" yaml:"color_stride"`
	Gain        float64 `mapstructure:"gain" yaml:"gain"`
	Pivot       float64 `mapstructure:"pivot" yaml:"pivot"`
	Theme       string  `mapstructure:"theme" yaml:"theme"`
}

type StorageConfig struct {
	DataDir     string `mapstructure:"data_dir" yaml:"data_dir"`
	SampleEvery int    `mapstructure:"sample_every" yaml:"sample_every"`
}

type SiteConfig struct {
	Source      string `mapstructure:"source" yaml:"source"`
	Destination string `mapstructure:"destination" yaml:"destination"`
}

type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

func DefaultConfig() *Config {
	pal := render.DefaultPalette()
	return &Config{
		Viewport: ViewportConfig{Width: DefaultWidth, Height: DefaultHeight},
		Playback: PlaybackConfig{
			Preset:    preset.Lorenz.String(),
			StepDelay: DefaultStepDelay,
			Burst:     DefaultBurst,
		},
		Render: RenderConfig{
			ColorStride: DefaultColorStride,
			Gain:        pal.Gain,
			Pivot:       pal.Pivot,
			Theme:       "default",
		},
		Storage: StorageConfig{DataDir: ".scribblepad", SampleEvery: DefaultSampleEvery},
		Site:    SiteConfig{Source: ".", Destination: "_site"},
		Logger: LoggerConfig{
			Level:       "info",
			Format:      "console",
			ServiceName: "scribblepad",
			MaxSize:     10,
			MaxBackups:  3,
			MaxAge:      28,
		},
	}
}

// SetDefaults registers DefaultConfig values with v so that env and flag
// overrides resolve against them.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("viewport.width", d.Viewport.Width)
	v.SetDefault("viewport.height", d.Viewport.Height)

	v.SetDefault("playback.preset", d.Playback.Preset)
	v.SetDefault("playback.step_delay", d.Playback.StepDelay)
	v.SetDefault("playback.burst", d.Playback.Burst)
	v.SetDefault("playback.max_steps", d.Playback.MaxSteps)

	v.SetDefault("render.color_stride", d.Render.ColorStride)
	v.SetDefault("render.gain", d.Render.Gain)
	v.SetDefault("render.pivot", d.Render.Pivot)
	v.SetDefault("render.theme", d.Render.Theme)

	v.SetDefault("storage.data_dir", d.Storage.DataDir)
	v.SetDefault("storage.sample_every", d.Storage.SampleEvery)

	v.SetDefault("site.source", d.Site.Source)
	v.SetDefault("site.destination", d.Site.Destination)

	v.SetDefault("logger.level", d.Logger.Level)
	v.SetDefault("logger.format", d.Logger.Format)
	v.SetDefault("logger.service_name", d.Logger.ServiceName)
	v.SetDefault("logger.log_file", d.Logger.LogFile)
	v.SetDefault("logger.max_size", d.Logger.MaxSize)
	v.SetDefault("logger.max_backups", d.Logger.MaxBackups)
	v.SetDefault("logger.max_age", d.Logger.MaxAge)
	v.SetDefault("logger.compress", d.Logger.Compress)
}

// FromViper decodes and validates the merged view held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport %gx%g must be positive", ErrInvalid, c.Viewport.Width, c.Viewport.Height)
	}
	if c.Playback.StepDelay < 0 {
		return fmt.Errorf("%w: playback.step_delay must not be negative", ErrInvalid)
	}
	if c.Playback.MaxSteps < 0 {
		return fmt.Errorf("%w: playback.max_steps must not be negative", ErrInvalid)
	}
	if c.Render.ColorStride < 1 {
		return fmt.Errorf("%w: render.color_stride must be at least 1", ErrInvalid)
	}
	if c.Playback.Preset != "" {
		if _, err := preset.ParseKind(c.Playback.Preset); err != nil {
			return fmt.Errorf("%w: playback.preset: %v", ErrInvalid, err)
		}
	}
	return nil
}

func (c *Config) View() preset.Viewport {
	return preset.Viewport{Width: c.Viewport.Width, Height: c.Viewport.Height}
}

// Palette returns the velocity palette, falling back to the default for
// unset fields.
func (c *Config) Palette() render.Palette {
	p := render.DefaultPalette()
	if c.Render.Gain > 0 {
		p.Gain = c.Render.Gain
	}
	if c.Render.Pivot > 0 {
		p.Pivot = c.Render.Pivot
	}
	return p
}
