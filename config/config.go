// Package config loads the run parameters from an HCL file over compiled defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/lixenwraith/gridlines/engine"
	"github.com/lixenwraith/gridlines/parameter"
	"github.com/lixenwraith/gridlines/render"
	"github.com/lixenwraith/gridlines/vmath"
)

// Config is immutable once loaded
type Config struct {
	BackgroundColor render.RGBA
	GridColor       render.RGBA
	LinesColor      []render.RGBA
	Speed           float64 // device pixels per frame
	LineLength      float64 // device pixels
	CellSize        float64 // CSS pixels
	PixelRatio      float64
	LineWidth       float64
	GridWidth       float64
	SpawnInterval   time.Duration
	FPS             int
	Seed            uint64 // 0 seeds from the clock

	MaxLines       int
	EvictOffCanvas bool

	Stats bool
	Audio bool

	LogFile  string // empty disables file logging
	LogLevel string
}

// hclConfig mirrors the file layout; pointers distinguish unset from zero
type hclConfig struct {
	BackgroundColor *string   `hcl:"background_color,optional"`
	GridColor       *string   `hcl:"grid_color,optional"`
	LinesColor      []string  `hcl:"lines_color,optional"`
	Speed           *float64  `hcl:"speed,optional"`
	LineLength      *float64  `hcl:"line_length,optional"`
	CellSize        *float64  `hcl:"cell_size,optional"`
	PixelRatio      *float64  `hcl:"pixel_ratio,optional"`
	LineWidth       *float64  `hcl:"line_width,optional"`
	GridWidth       *float64  `hcl:"grid_width,optional"`
	SpawnInterval   *string   `hcl:"spawn_interval,optional"`
	FPS             *int      `hcl:"fps,optional"`
	Seed            *int64    `hcl:"seed,optional"`
	Lines           *hclLines `hcl:"lines,block"`
	Overlay         *hclFlag  `hcl:"overlay,block"`
	Audio           *hclAudio `hcl:"audio,block"`
	Log             *hclLog   `hcl:"log,block"`
}

type hclLines struct {
	Max            *int  `hcl:"max,optional"`
	EvictOffCanvas *bool `hcl:"evict_off_canvas,optional"`
}

type hclFlag struct {
	Stats *bool `hcl:"stats,optional"`
}

type hclAudio struct {
	Enabled *bool `hcl:"enabled,optional"`
}

type hclLog struct {
	File  *string `hcl:"file,optional"`
	Level *string `hcl:"level,optional"`
}

// Validation errors
var (
	ErrPalette  = errors.New("config: lines_color must name at least one color")
	ErrGeometry = errors.New("config: cell_size, pixel_ratio, line_length and widths must be positive")
	ErrFPS      = errors.New("config: fps out of range")
	ErrMaxLines = errors.New("config: lines.max must not be negative")
	ErrInterval = errors.New("config: spawn_interval must not be negative")
)

// Default returns the built-in configuration
func Default() Config {
	pal := parameter.Palettes[parameter.DefaultPalette]
	colors := make([]render.RGBA, len(pal))
	for i, s := range pal {
		colors[i] = render.MustHex(s)
	}
	return Config{
		BackgroundColor: render.MustHex(parameter.DefaultBackgroundColor),
		GridColor:       render.MustHex(parameter.DefaultGridColor),
		LinesColor:      colors,
		Speed:           parameter.DefaultSpeed,
		LineLength:      parameter.DefaultLineLength,
		CellSize:        parameter.DefaultCellSize,
		PixelRatio:      parameter.DefaultPixelRatio,
		LineWidth:       parameter.DefaultLineWidth,
		GridWidth:       parameter.DefaultGridWidth,
		SpawnInterval:   parameter.DefaultSpawnInterval,
		FPS:             parameter.DefaultFPS,
		MaxLines:        parameter.DefaultMaxLines,
		EvictOffCanvas:  parameter.DefaultEvictOffCanvas,
		LogLevel:        "info",
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(src, path)
}

// Parse decodes HCL source over the defaults and validates the result
func Parse(src []byte, filename string) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", filename, diags)
	}

	var raw hclConfig
	diags = gohcl.DecodeBody(file.Body, evalContext(), &raw)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to decode config %s: %w", filename, diags)
	}

	cfg := Default()
	if err := raw.apply(&cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", filename, err)
	}
	return cfg, nil
}

// evalContext exposes palettes.<name> as lists of color strings
func evalContext() *hcl.EvalContext {
	names := make([]string, 0, len(parameter.Palettes))
	for name := range parameter.Palettes {
		names = append(names, name)
	}
	sort.Strings(names)

	palettes := make(map[string]cty.Value, len(names))
	for _, name := range names {
		vals := make([]cty.Value, len(parameter.Palettes[name]))
		for i, c := range parameter.Palettes[name] {
			vals[i] = cty.StringVal(c)
		}
		palettes[name] = cty.ListVal(vals)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"palettes": cty.ObjectVal(palettes),
		},
	}
}

func (h *hclConfig) apply(cfg *Config) error {
	var err error
	if h.BackgroundColor != nil {
		if cfg.BackgroundColor, err = render.ParseHex(*h.BackgroundColor); err != nil {
			return fmt.Errorf("background_color: %w", err)
		}
	}
	if h.GridColor != nil {
		if cfg.GridColor, err = render.ParseHex(*h.GridColor); err != nil {
			return fmt.Errorf("grid_color: %w", err)
		}
	}
	if h.LinesColor != nil {
		cfg.LinesColor = make([]render.RGBA, 0, len(h.LinesColor))
		for i, s := range h.LinesColor {
			c, err := render.ParseHex(s)
			if err != nil {
				return fmt.Errorf("lines_color[%d]: %w", i, err)
			}
			cfg.LinesColor = append(cfg.LinesColor, c)
		}
	}
	setFloat(&cfg.Speed, h.Speed)
	setFloat(&cfg.LineLength, h.LineLength)
	setFloat(&cfg.CellSize, h.CellSize)
	setFloat(&cfg.PixelRatio, h.PixelRatio)
	setFloat(&cfg.LineWidth, h.LineWidth)
	setFloat(&cfg.GridWidth, h.GridWidth)
	if h.SpawnInterval != nil {
		if cfg.SpawnInterval, err = time.ParseDuration(*h.SpawnInterval); err != nil {
			return fmt.Errorf("spawn_interval: %w", err)
		}
	}
	if h.FPS != nil {
		cfg.FPS = *h.FPS
	}
	if h.Seed != nil {
		cfg.Seed = uint64(*h.Seed)
	}
	if h.Lines != nil {
		if h.Lines.Max != nil {
			cfg.MaxLines = *h.Lines.Max
		}
		if h.Lines.EvictOffCanvas != nil {
			cfg.EvictOffCanvas = *h.Lines.EvictOffCanvas
		}
	}
	if h.Overlay != nil && h.Overlay.Stats != nil {
		cfg.Stats = *h.Overlay.Stats
	}
	if h.Audio != nil && h.Audio.Enabled != nil {
		cfg.Audio = *h.Audio.Enabled
	}
	if h.Log != nil {
		if h.Log.File != nil {
			cfg.LogFile = *h.Log.File
		}
		if h.Log.Level != nil {
			cfg.LogLevel = *h.Log.Level
		}
	}
	return nil
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// Validate checks that the configuration can drive the engine
func (c Config) Validate() error {
	if len(c.LinesColor) == 0 {
		return ErrPalette
	}
	if c.CellSize <= 0 || c.PixelRatio <= 0 || c.LineLength <= 0 || c.LineWidth <= 0 || c.GridWidth <= 0 {
		return ErrGeometry
	}
	if err := engine.CheckSpeed(vmath.FromFloat(c.Speed), vmath.FromFloat(c.CellSize*c.PixelRatio)); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.FPS <= 0 || c.FPS > parameter.MaxFPS {
		return fmt.Errorf("%w: %d, want 1..%d", ErrFPS, c.FPS, parameter.MaxFPS)
	}
	if c.MaxLines < 0 {
		return ErrMaxLines
	}
	if c.SpawnInterval < 0 {
		return ErrInterval
	}
	return nil
}

// FrameInterval returns the ticker period for FPS
func (c Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return parameter.FrameUpdateInterval
	}
	return time.Second / time.Duration(c.FPS)
}

// Engine returns the line engine parameters
func (c Config) Engine() engine.Config {
	return engine.Config{
		Speed:          c.Speed,
		LineLength:     c.LineLength,
		Palette:        append([]render.RGBA(nil), c.LinesColor...),
		MaxLines:       c.MaxLines,
		EvictOffCanvas: c.EvictOffCanvas,
	}
}

// Style returns the render colors and stroke widths in device pixels
func (c Config) Style() render.Style {
	return render.Style{
		Background: c.BackgroundColor,
		Grid:       c.GridColor,
		GridWidth:  c.GridWidth,
		LineWidth:  c.LineWidth,
	}
}
