// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/taigrr/lowpoly/pkg/math3d"
	"github.com/taigrr/lowpoly/pkg/palette"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Lighting LightingConfig `yaml:"lighting"`
	Fog      FogConfig      `yaml:"fog"`
	Scene    SceneConfig    `yaml:"scene"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds frame pacing and output settings.
type GraphicsConfig struct {
	FPS        int     `yaml:"fps"`
	Background string  `yaml:"background"`
	MaxDelta   float64 `yaml:"max_delta"` // Seconds; longer frames run with dt = 0
	// Snapshot size in pixels, used when rendering to a PNG.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CameraConfig holds the orbit camera settings.
type CameraConfig struct {
	FOV        float64 `yaml:"fov"` // Vertical, degrees
	Far        float64 `yaml:"far"`
	Distance   float64 `yaml:"distance"`
	Height     float64 `yaml:"height"`
	OrbitSpeed float64 `yaml:"orbit_speed"` // Radians per second
}

// LightingConfig holds the directional light and the point lights.
type LightingConfig struct {
	Direction []float64          `yaml:"direction"`
	Color     string             `yaml:"color"`
	Ambient   string             `yaml:"ambient"`
	Exponent  float64            `yaml:"exponent"`
	Points    []PointLightConfig `yaml:"points"`
}

// PointLightConfig describes a point light circling the origin.
type PointLightConfig struct {
	Color  string  `yaml:"color"`
	Radius float64 `yaml:"radius"`
	Orbit  float64 `yaml:"orbit"`  // Distance from the Y axis
	Height float64 `yaml:"height"` // Height above the terrain
	Speed  float64 `yaml:"speed"`  // Radians per second
}

// FogConfig holds fog settings.
type FogConfig struct {
	Enabled bool    `yaml:"enabled"`
	Color   string  `yaml:"color"`
	Density float64 `yaml:"density"`
}

// SceneConfig holds the content of the demo scene.
type SceneConfig struct {
	Models  []string `yaml:"models"`
	Terrain int      `yaml:"terrain"` // Plane cells per side, 0 disables
	Color   string   `yaml:"color"`   // Terrain color
}

// DebugConfig holds debug overlay toggles.
type DebugConfig struct {
	ShowNormals            bool `yaml:"show_normals"`
	ShowAABB               bool `yaml:"show_aabb"`
	DisableBackfaceCulling bool `yaml:"disable_backface_culling"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			FPS:        30,
			Background: "#101018",
			MaxDelta:   0.1,
			Width:      320,
			Height:     200,
		},
		Camera: CameraConfig{
			FOV:        60,
			Far:        40,
			Distance:   8,
			Height:     3,
			OrbitSpeed: 0.2,
		},
		Lighting: LightingConfig{
			Direction: []float64{-1, -2, -1},
			Color:     "#fff4e0",
			Ambient:   "#404050",
			Exponent:  5,
			Points: []PointLightConfig{
				{Color: "#ff8040", Radius: 4, Orbit: 3, Height: 1, Speed: 1},
				{Color: "#40a0ff", Radius: 4, Orbit: 3, Height: 1, Speed: -0.7},
			},
		},
		Fog: FogConfig{
			Enabled: true,
			Color:   "#101018",
			Density: 2,
		},
		Scene: SceneConfig{
			Terrain: 16,
			Color:   "#3a7a3a",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings the renderer cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.FPS <= 0 {
		errs = append(errs, fmt.Errorf("graphics.fps must be positive, got %d", c.Graphics.FPS))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera.fov must be in (0, 180), got %v", c.Camera.FOV))
	}
	if c.Camera.Far <= 0 {
		errs = append(errs, fmt.Errorf("camera.far must be positive, got %v", c.Camera.Far))
	}
	if len(c.Lighting.Direction) != 3 {
		errs = append(errs, fmt.Errorf("lighting.direction needs 3 components, got %d", len(c.Lighting.Direction)))
	}
	for _, s := range c.colors() {
		if _, err := palette.Parse(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LightDirection returns lighting.direction as a vector.
func (c *Config) LightDirection() math3d.Vec3 {
	d := c.Lighting.Direction
	if len(d) != 3 {
		return math3d.Down()
	}
	return math3d.V3(d[0], d[1], d[2])
}

// colors lists every color string in the config that must parse.
func (c *Config) colors() []string {
	out := []string{
		c.Graphics.Background,
		c.Lighting.Color,
		c.Lighting.Ambient,
		c.Scene.Color,
	}
	if c.Fog.Enabled {
		out = append(out, c.Fog.Color)
	}
	for _, p := range c.Lighting.Points {
		out = append(out, p.Color)
	}
	return out
}
