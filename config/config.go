// Package config loads the rule chains of a retype form from YAML or TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/retype/buffer"
	"github.com/iw2rmb/retype/intercept"
	"github.com/iw2rmb/retype/preset"
)

var (
	// ErrUnknownRule is returned when a rule names no registered preset.
	ErrUnknownRule = errors.New("unknown rule")
	// ErrInvalid is returned for values that fail validation.
	ErrInvalid = errors.New("invalid config")
)

// Config is the whole file.
type Config struct {
	Correction Correction  `yaml:"correction" toml:"correction"`
	Log        Log         `yaml:"log" toml:"log"`
	Fields     []FieldSpec `yaml:"fields" toml:"fields"`
}

// Correction tunes the caret correction loop.
type Correction struct {
	Attempts int           `yaml:"attempts" toml:"attempts"`
	Interval time.Duration `yaml:"interval" toml:"interval"`
}

// Log selects where the demo logs go.
type Log struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
	File   string `yaml:"file" toml:"file"`
}

// FieldSpec describes one control of the form.
type FieldSpec struct {
	Name        string `yaml:"name" toml:"name"`
	Kind        string `yaml:"kind" toml:"kind"`
	Unit        string `yaml:"unit" toml:"unit"`
	Placeholder string `yaml:"placeholder" toml:"placeholder"`
	Value       string `yaml:"value" toml:"value"`
	Rules       []Rule `yaml:"rules" toml:"rules"`
}

// Rule names a preset and its arguments. Rules run in the order listed.
type Rule struct {
	Name  string `yaml:"name" toml:"name"`
	N     int    `yaml:"n" toml:"n"`
	Chars string `yaml:"chars" toml:"chars"`
	Lang  string `yaml:"lang" toml:"lang"`
}

const (
	KindField = "field"
	KindArea  = "area"
)

func defaults() *Config {
	return &Config{
		Correction: Correction{
			Attempts: intercept.DefaultAttempts,
			Interval: intercept.DefaultInterval,
		},
		Log: Log{Level: "info", Format: "text"},
	}
}

// Default returns the built-in demo form.
func Default() *Config {
	cfg := defaults()
	cfg.Fields = defaultFields()
	cfg.fill()
	return cfg
}

func defaultFields() []FieldSpec {
	return []FieldSpec{
		{
			Name:        "callsign",
			Placeholder: "upper case, 6 max",
			Rules:       []Rule{{Name: "limit", N: 6}, {Name: "upper"}},
		},
		{
			Name:        "pin",
			Placeholder: "digits only",
			Rules:       []Rule{{Name: "digits"}, {Name: "limit", N: 4}},
		},
		{
			Name:        "notes",
			Kind:        KindArea,
			Unit:        "utf16",
			Placeholder: "diacritics are stripped",
			Rules:       []Rule{{Name: "sanitize"}, {Name: "strip-diacritics"}},
		},
	}
}

// Load reads path, fills unset values with defaults and validates the result
// against reg. A missing file yields the built-in form.
func Load(path string, reg *preset.Registry) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, filepath.Ext(path), reg)
}

// Parse decodes data in the format named by ext (".toml", ".yaml", ".yml";
// anything else is tried as TOML, then YAML).
func Parse(data []byte, ext string, reg *preset.Registry) (*Config, error) {
	cfg := defaults()
	switch ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			cfg = defaults()
			if yerr := yaml.Unmarshal(data, cfg); yerr != nil {
				return nil, fmt.Errorf("parse config: not TOML (%v) nor YAML: %w", err, yerr)
			}
		}
	}

	cfg.fill()
	if err := cfg.Validate(reg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) fill() {
	if c.Correction.Attempts == 0 {
		c.Correction.Attempts = intercept.DefaultAttempts
	}
	if c.Correction.Interval == 0 {
		c.Correction.Interval = intercept.DefaultInterval
	}
	if len(c.Fields) == 0 {
		c.Fields = defaultFields()
	}
	for i := range c.Fields {
		if c.Fields[i].Kind == "" {
			c.Fields[i].Kind = KindField
		}
		if c.Fields[i].Unit == "" {
			c.Fields[i].Unit = "rune"
		}
	}
}

// Validate checks every value and that each rule builds with reg.
func (c *Config) Validate(reg *preset.Registry) error {
	if c.Correction.Attempts < 0 {
		return fmt.Errorf("%w: correction.attempts must be positive, got %d", ErrInvalid, c.Correction.Attempts)
	}
	if c.Correction.Interval < 0 {
		return fmt.Errorf("%w: correction.interval must be positive, got %s", ErrInvalid, c.Correction.Interval)
	}

	seen := make(map[string]bool, len(c.Fields))
	for i, f := range c.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: fields[%d] has no name", ErrInvalid, i)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalid, f.Name)
		}
		seen[f.Name] = true

		switch f.Kind {
		case KindField, KindArea, "":
		default:
			return fmt.Errorf("%w: field %q: kind %q (want field or area)", ErrInvalid, f.Name, f.Kind)
		}
		if _, err := f.BufferUnit(); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
		if _, err := f.Transformers(reg); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}
	return nil
}

// Options returns the intercept options for the correction settings.
func (c *Config) Options() intercept.Options {
	return intercept.Options{
		Attempts: c.Correction.Attempts,
		Interval: c.Correction.Interval,
	}
}

// BufferUnit parses the unit name.
func (f FieldSpec) BufferUnit() (buffer.Unit, error) {
	switch f.Unit {
	case "byte":
		return buffer.UnitByte, nil
	case "rune", "":
		return buffer.UnitRune, nil
	case "utf16":
		return buffer.UnitUTF16, nil
	default:
		return buffer.UnitRune, fmt.Errorf("%w: unit %q (want byte, rune or utf16)", ErrInvalid, f.Unit)
	}
}

// Transformers builds the rules of f in order.
func (f FieldSpec) Transformers(reg *preset.Registry) ([]intercept.Transformer, error) {
	out := make([]intercept.Transformer, 0, len(f.Rules))
	for _, r := range f.Rules {
		t, err := reg.Build(r.Name, preset.Args{N: r.N, Chars: r.Chars, Lang: r.Lang})
		switch {
		case errors.Is(err, preset.ErrUnknown):
			return nil, fmt.Errorf("%w: %q", ErrUnknownRule, r.Name)
		case err != nil:
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		out = append(out, t)
	}
	return out, nil
}
