// Package config loads the linter's external configuration (spec.md §6).
// Configuration is layered, highest priority first:
//
//  1. CLI flags (applied by the caller to the rules.Options that
//     ToOptions returns)
//  2. Environment variables (BLINTER_* prefix)
//  3. The closest blinter.ini / .blinter.ini found by walking up from the
//     target file's directory
//  4. Built-in defaults
//
// Discovery follows the same cascading, closest-wins pattern as the
// teacher's TOML config loader: no merging across levels of the directory
// tree, the nearest file wins outright.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/tboy1337/blinter/internal/rules"
)

// FileNames are the config file names searched for, in priority order.
var FileNames = []string{"blinter.ini", ".blinter.ini"}

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "BLINTER_"

// Config is the on-disk shape of a blinter.ini file, mirroring spec.md §6's
// [general]/[rules] sections.
type Config struct {
	General GeneralSection
	Rules   RulesSection

	// ConfigFile is metadata: the path actually loaded, empty if none was
	// found and defaults apply.
	ConfigFile string
}

// GeneralSection is the [general] section.
type GeneralSection struct {
	Recursive     bool
	ShowSummary   bool
	MaxLineLength int
	FollowCalls   bool
	MinSeverity   string
}

// RulesSection is the [rules] section.
type RulesSection struct {
	EnabledRules  []string
	DisabledRules []string
}

// Default returns the built-in configuration defaults.
func Default() *Config {
	return &Config{
		General: GeneralSection{
			Recursive:     true,
			ShowSummary:   true,
			MaxLineLength: 150,
			FollowCalls:   false,
			MinSeverity:   "style",
		},
	}
}

// Load discovers and loads configuration for a target file path, then
// applies BLINTER_* environment overrides.
func Load(targetPath string) (*Config, error) {
	return LoadFromFile(Discover(targetPath))
}

// LoadFromFile loads configuration from a specific path (or the defaults,
// if path is empty), then applies environment overrides.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := ini.Load(path)
		if err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
		applyINI(cfg, f)
		cfg.ConfigFile = path
	}
	applyEnv(cfg)
	return cfg, nil
}

func applyINI(cfg *Config, f *ini.File) {
	if sec, err := f.GetSection("general"); err == nil {
		if k := sec.Key("recursive"); k.String() != "" {
			cfg.General.Recursive, _ = k.Bool()
		}
		if k := sec.Key("show_summary"); k.String() != "" {
			cfg.General.ShowSummary, _ = k.Bool()
		}
		if k := sec.Key("max_line_length"); k.String() != "" {
			if v, err := k.Int(); err == nil {
				cfg.General.MaxLineLength = v
			}
		}
		if k := sec.Key("follow_calls"); k.String() != "" {
			cfg.General.FollowCalls, _ = k.Bool()
		}
		if k := sec.Key("min_severity"); k.String() != "" {
			cfg.General.MinSeverity = k.String()
		}
	}
	if sec, err := f.GetSection("rules"); err == nil {
		if k := sec.Key("enabled_rules"); k.String() != "" {
			cfg.Rules.EnabledRules = splitCSV(k.String())
		}
		if k := sec.Key("disabled_rules"); k.String() != "" {
			cfg.Rules.DisabledRules = splitCSV(k.String())
		}
	}
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvPrefix + "MAX_LINE_LENGTH"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.General.MaxLineLength = n
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "FOLLOW_CALLS"); ok {
		cfg.General.FollowCalls = v == "1" || strings.EqualFold(v, "true")
	}
	if v, ok := os.LookupEnv(EnvPrefix + "MIN_SEVERITY"); ok {
		cfg.General.MinSeverity = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "RECURSIVE"); ok {
		cfg.General.Recursive = v == "1" || strings.EqualFold(v, "true")
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Discover walks up from targetPath's directory looking for the closest
// config file, matching FileNames in priority order at each level. Returns
// "" if none is found by the time it reaches the filesystem root.
func Discover(targetPath string) string {
	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return ""
	}
	dir := filepath.Dir(absPath)
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if fileExists(candidate) {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ToOptions converts the loaded Config into the rules.Options value that
// crosses into the core per spec.md §4.8. CLI-flag overrides are not part of
// Config; the caller applies them to the returned Options.
func (c *Config) ToOptions() rules.Options {
	opts := rules.Options{
		MaxLineLength: c.General.MaxLineLength,
		FollowCalls:   c.General.FollowCalls,
	}
	if sev, ok := rules.ParseSeverity(c.General.MinSeverity); ok {
		opts.MinSeverity = sev
	}
	if len(c.Rules.EnabledRules) > 0 {
		opts.EnabledRules = map[string]bool{}
		for _, code := range c.Rules.EnabledRules {
			opts.EnabledRules[code] = true
		}
	}
	if len(c.Rules.DisabledRules) > 0 {
		opts.DisabledRules = map[string]bool{}
		for _, code := range c.Rules.DisabledRules {
			opts.DisabledRules[code] = true
		}
	}
	return opts
}

// WriteDefault writes a commented default config file to path, for
// --create-config.
func WriteDefault(path string) error {
	f := ini.Empty()
	gen, err := f.NewSection("general")
	if err != nil {
		return err
	}
	_, _ = gen.NewKey("recursive", "true")
	_, _ = gen.NewKey("show_summary", "true")
	_, _ = gen.NewKey("max_line_length", "150")
	_, _ = gen.NewKey("follow_calls", "false")
	_, _ = gen.NewKey("min_severity", "style")

	rulesSec, err := f.NewSection("rules")
	if err != nil {
		return err
	}
	_, _ = rulesSec.NewKey("enabled_rules", "")
	_, _ = rulesSec.NewKey("disabled_rules", "")

	return f.SaveTo(path)
}
