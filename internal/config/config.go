package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"Craftmine/internal/chunk"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

type Terrain struct {
	BaseHeight float64 `yaml:"base_height"`
	Amplitude  float64 `yaml:"amplitude"`
	Scale      float64 `yaml:"scale"`
	Octaves    int     `yaml:"octaves"`
	SeaLevel   int     `yaml:"sea_level"`
	TreeChance float64 `yaml:"tree_chance"`
}

// Settings converts the section to the generator's settings.
func (t Terrain) Settings() chunk.TerrainSettings {
	return chunk.TerrainSettings{
		BaseHeight: t.BaseHeight,
		Amplitude:  t.Amplitude,
		Scale:      t.Scale,
		Octaves:    t.Octaves,
		SeaLevel:   t.SeaLevel,
		TreeChance: t.TreeChance,
	}
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type Window struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config is the full runtime configuration of the streaming world and its window.
type Config struct {
	ChunkSize      int     `yaml:"chunk_size"`
	Seed           int64   `yaml:"seed"`
	Workers        int     `yaml:"workers"`
	RenderDistance int     `yaml:"render_distance"`
	SearchRadius   int     `yaml:"search_radius"`
	MaxChunks      int     `yaml:"max_chunks"`
	Terrain        Terrain `yaml:"terrain"`
	Log            Log     `yaml:"log"`
	Window         Window  `yaml:"window"`
}

func Default() Config {
	t := chunk.DefaultTerrainSettings()
	return Config{
		ChunkSize:      32,
		Seed:           0,
		Workers:        10,
		RenderDistance: 4,
		SearchRadius:   5,
		MaxChunks:      400,
		Terrain: Terrain{
			BaseHeight: t.BaseHeight,
			Amplitude:  t.Amplitude,
			Scale:      t.Scale,
			Octaves:    t.Octaves,
			SeaLevel:   t.SeaLevel,
			TreeChance: t.TreeChance,
		},
		Log:    Log{Level: "info"},
		Window: Window{Width: 1280, Height: 720},
	}
}

// Load reads a YAML file on top of Default. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates a YAML document against the schema, overlays it on Default and checks
// the resulting values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	if err := validateDocument(data); err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// validateDocument runs the raw document through the embedded schema. The YAML tree is
// re-encoded as JSON so the validator sees plain JSON numbers and string keys.
func validateDocument(data []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	if doc == nil {
		return nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config must be a mapping with string keys: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validate checks cross-field constraints the schema cannot express.
func (c Config) Validate() error {
	var err error
	if c.ChunkSize < 1 {
		err = multierr.Append(err, fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize))
	}
	if c.Workers < 1 {
		err = multierr.Append(err, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.RenderDistance < 0 {
		err = multierr.Append(err, fmt.Errorf("render_distance must not be negative, got %d", c.RenderDistance))
	}
	if c.SearchRadius < 0 {
		err = multierr.Append(err, fmt.Errorf("search_radius must not be negative, got %d", c.SearchRadius))
	}
	if c.MaxChunks < 1 {
		err = multierr.Append(err, fmt.Errorf("max_chunks must be positive, got %d", c.MaxChunks))
	}
	if c.Terrain.Scale <= 0 {
		err = multierr.Append(err, fmt.Errorf("terrain.scale must be positive, got %v", c.Terrain.Scale))
	}
	if c.Window.Width < 1 || c.Window.Height < 1 {
		err = multierr.Append(err, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	return err
}
