// Package config loads bigcalc.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"bigcalc/bignum"
	"bigcalc/internal/expr"
	"bigcalc/internal/trace"
)

// FileName is the config file looked up from the working directory upwards.
const FileName = "bigcalc.toml"

// Config is the decoded bigcalc.toml. Zero-valued sections take defaults.
type Config struct {
	Path   string                   `toml:"-"` // file it came from, empty for defaults
	Eval   EvalConfig               `toml:"eval"`
	Output OutputConfig             `toml:"output"`
	Trace  TraceConfig              `toml:"trace"`
	Cache  CacheConfig              `toml:"cache"`
	Vars   map[string]bignum.BigInt `toml:"vars"`
}

type EvalConfig struct {
	Jobs int `toml:"jobs"`
	// MaxDigits follows expr.Env.MaxDigits: 0 means the default and a
	// negative value disables the limit.
	MaxDigits int `toml:"max_digits"`
}

type OutputConfig struct {
	Color  string `toml:"color"`
	UI     string `toml:"ui"`
	Format string `toml:"format"`
}

type TraceConfig struct {
	Level     trace.Level `toml:"level"`
	Output    string      `toml:"output"`
	Mode      string      `toml:"mode"`
	RingSize  int         `toml:"ring_size"`
	Heartbeat Duration    `toml:"heartbeat"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Duration decodes TOML strings such as "500ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Eval:   EvalConfig{MaxDigits: expr.DefaultMaxDigits},
		Output: OutputConfig{Color: "auto", UI: "auto", Format: "text"},
		Trace:  TraceConfig{Level: trace.LevelOff, Mode: "stream", RingSize: trace.DefaultRingSize},
		Cache:  CacheConfig{Enabled: true},
		Vars:   map[string]bignum.BigInt{},
	}
}

// Find walks from startDir to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads explicit if set, otherwise the nearest FileName above
// startDir, otherwise Default.
func Resolve(explicit, startDir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks enumerated values and ranges.
func (c *Config) Validate() error {
	if c.Eval.Jobs < 0 {
		return fmt.Errorf("[eval].jobs must not be negative, got %d", c.Eval.Jobs)
	}
	if err := oneOf("[output].color", c.Output.Color, "auto", "on", "off"); err != nil {
		return err
	}
	if err := oneOf("[output].ui", c.Output.UI, "auto", "on", "off"); err != nil {
		return err
	}
	if err := oneOf("[output].format", c.Output.Format, "text", "json"); err != nil {
		return err
	}
	if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
		return fmt.Errorf("[trace].mode: %w", err)
	}
	if c.Trace.RingSize < 0 {
		return fmt.Errorf("[trace].ring_size must not be negative, got %d", c.Trace.RingSize)
	}
	for name := range c.Vars {
		if !validName(name) {
			return fmt.Errorf("[vars]: %q is not a valid variable name", name)
		}
	}
	return nil
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s, got %q", key, strings.Join(allowed, "|"), value)
}

// validName reports whether name lexes as a single identifier.
func validName(name string) bool {
	toks := expr.NewLexer(name).All()
	return len(toks) == 2 && toks[0].Kind == expr.Name && toks[0].Text == name
}
