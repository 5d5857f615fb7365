package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
)

// Base directory selectors
const (
	BaseDirBuffer = "buffer"
	BaseDirCwd    = "cwd"
)

// Marker reinsertion scopes
const (
	ScopeFirstSegment = "first-segment"
	ScopeNone         = "none"
)

// Marker describes a leading character stripped from a fragment before
// resolution and, depending on Scope, reinserted into the candidates
type Marker struct {
	Trigger string `toml:"trigger" json:"trigger"`
	Scope   string `toml:"scope" json:"scope"`
}

// Config holds the completion options. It is passed by value, every request
// works on its own merged copy.
type Config struct {
	TrailingSlashOnInsert bool     `toml:"trailing_slash" json:"trailing_slash"`
	LabelTrailingSlash    bool     `toml:"label_trailing_slash" json:"label_trailing_slash"`
	BaseDirectory         string   `toml:"base_directory" json:"base_directory"`
	PreviewMaxLines       int      `toml:"preview_max_lines" json:"preview_max_lines"`
	Markers               []Marker `toml:"markers" json:"markers"`
}

// Default returns a Config with default values
func Default() Config {
	return Config{
		TrailingSlashOnInsert: false,
		LabelTrailingSlash:    true,
		BaseDirectory:         BaseDirBuffer,
		PreviewMaxLines:       DefaultPreviewMaxLines,
		Markers: []Marker{
			{Trigger: DefaultMarker, Scope: ScopeFirstSegment},
		},
	}
}

// Clone returns a copy not sharing the Markers backing array
func (c Config) Clone() Config {
	c.Markers = append([]Marker(nil), c.Markers...)
	return c
}

// Validate checks the merged values
func (c Config) Validate() error {
	switch c.BaseDirectory {
	case BaseDirBuffer, BaseDirCwd:
	default:
		if !filepath.IsAbs(c.BaseDirectory) {
			return fmt.Errorf("base_directory must be %q, %q or an absolute path, got %q",
				BaseDirBuffer, BaseDirCwd, c.BaseDirectory)
		}
	}
	if c.PreviewMaxLines <= 0 {
		return fmt.Errorf("preview_max_lines must be positive, got %d", c.PreviewMaxLines)
	}
	for _, m := range c.Markers {
		if utf8.RuneCountInString(m.Trigger) != 1 {
			return fmt.Errorf("marker trigger must be a single character, got %q", m.Trigger)
		}
		if strings.ContainsAny(m.Trigger, reservedTriggers) {
			return fmt.Errorf("marker trigger %q clashes with path syntax", m.Trigger)
		}
		switch m.Scope {
		case ScopeFirstSegment, ScopeNone:
		default:
			return fmt.Errorf("unknown marker scope %q", m.Scope)
		}
	}
	return nil
}

// Load builds a Config by layering: defaults < config file < env.
// Flags and per-request values are applied on top by the caller.
func Load(home string) (Config, error) {
	cfg := Default()
	if err := cfg.loadFile(filepath.Join(home, ConfigFileName)); err != nil {
		return cfg, fmt.Errorf("loading config file: %w", err)
	}
	if err := cfg.loadEnv(); err != nil {
		return cfg, fmt.Errorf("loading environment: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	// Decoding on top of c keeps the defaults of absent keys, except markers
	// which are replaced as a whole when the file declares any
	markers := c.Markers
	c.Markers = nil
	if err := toml.Unmarshal(data, c); err != nil {
		c.Markers = markers
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if c.Markers == nil {
		c.Markers = markers
	}
	return nil
}

func (c *Config) loadEnv() error {
	if v, ok := os.LookupEnv(TrailingSlashEnvVar); ok {
		b, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", TrailingSlashEnvVar, err)
		}
		c.TrailingSlashOnInsert = b
	}
	if v, ok := os.LookupEnv(LabelTrailingSlashEnvVar); ok {
		b, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", LabelTrailingSlashEnvVar, err)
		}
		c.LabelTrailingSlash = b
	}
	if v := os.Getenv(BaseDirectoryEnvVar); v != "" {
		c.BaseDirectory = v
	}
	return nil
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off", "":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean value %q", v)
}

func ensurePath(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = os.MkdirAll(path, 0700); err != nil {
			return err
		}
	}
	return nil
}

// GetHome returns the directory holding the config file and the debug log
func GetHome() string {
	home := os.Getenv(HomeEnvVar)
	if home != "" {
		return home
	}
	userHome, err := os.UserHomeDir()
	if err == nil {
		dir := ".pathctx"
		if runtime.GOOS == "windows" {
			dir = "pathctx"
		}
		home = filepath.Join(userHome, dir)
		if err = ensurePath(home); err == nil {
			return home
		}
	}
	home, err = os.Getwd()
	if err != nil {
		home = "."
	}
	return home
}
