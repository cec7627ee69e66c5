package config

import (
	"fmt"
	"sort"
	"time"
)

// Profile bundles viewport and pacing settings for common targets.
type Profile struct {
	Width       float64
	Height      float64
	ColorStride int
	StepDelay   time.Duration
}

var Profiles = map[string]Profile{
	"default": {Width: DefaultWidth, Height: DefaultHeight, ColorStride: DefaultColorStride, StepDelay: DefaultStepDelay},
	"small":   {Width: 630, Height: 484, ColorStride: DefaultColorStride, StepDelay: DefaultStepDelay},
	"hd":      {Width: 1920, Height: 1080, ColorStride: DefaultColorStride, StepDelay: DefaultStepDelay},
	"print":   {Width: 3780, Height: 2904, ColorStride: 1},
	"preview": {Width: 320, Height: 240, ColorStride: DefaultColorStride},
}

func GetProfile(name string) (Profile, bool) {
	p, ok := Profiles[name]
	return p, ok
}

func ListProfiles() []string {
	names := make([]string, 0, len(Profiles))
	for name := range Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyProfile overwrites the viewport and pacing fields with the named profile.
func (c *Config) ApplyProfile(name string) error {
	p, ok := GetProfile(name)
	if !ok {
		return fmt.Errorf("%w: unknown profile %q", ErrInvalid, name)
	}
	c.Viewport = ViewportConfig{Width: p.Width, Height: p.Height}
	c.Render.ColorStride = p.ColorStride
	c.Playback.StepDelay = p.StepDelay
	return nil
}
