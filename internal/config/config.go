package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/strrl/jb-recent/internal/ide"
	"github.com/strrl/jb-recent/internal/launch"
	"github.com/strrl/jb-recent/internal/logging"
	"github.com/strrl/jb-recent/internal/rank"
	"github.com/strrl/jb-recent/pkg/models"
)

// Config represents the jb-recent configuration
type Config struct {
	Trigger      string         `yaml:"trigger"`
	MatchMode    string         `yaml:"match_mode"`    // substring or fuzzy
	VersionOrder string         `yaml:"version_order"` // lexical or semantic
	ConfigRoot   string         `yaml:"config_root,omitempty"`
	Launcher     string         `yaml:"launcher"`
	IDEs         []IDEConfig    `yaml:"ides,omitempty"` // Replaces the built-in table when set
	Logging      logging.Config `yaml:"logging"`
}

// IDEConfig is one entry of a user supplied IDE table
type IDEConfig struct {
	Name        string `yaml:"name"`
	Prefix      string `yaml:"prefix,omitempty"` // Defaults to Name
	ConfigRoot  string `yaml:"config_root,omitempty"`
	Icon        string `yaml:"icon,omitempty"`
	DesktopFile string `yaml:"desktop_file"`
}

const (
	EnvMatchMode    = "JB_RECENT_MATCH_MODE"
	EnvVersionOrder = "JB_RECENT_VERSION_ORDER"
	EnvConfigRoot   = "JB_RECENT_CONFIG_ROOT"
	EnvLauncher     = "JB_RECENT_LAUNCHER"
	EnvLogLevel     = "JB_RECENT_LOG_LEVEL"
	EnvLogFormat    = "JB_RECENT_LOG_FORMAT"
	EnvLogSink      = "JB_RECENT_LOG_SINK"
	EnvLogFile      = "JB_RECENT_LOG_FILE"
)

// DefaultConfig returns the built-in settings
func DefaultConfig() *Config {
	return &Config{
		Trigger:      "jb ",
		MatchMode:    string(rank.MatchSubstring),
		VersionOrder: string(ide.OrderLexical),
		Launcher:     launch.DefaultCommand,
		Logging:      logging.DefaultConfig(),
	}
}

// Load reads the config file from the default location
func Load() (*Config, error) {
	return LoadFromFile(DefaultPaths().ConfigFile())
}

// LoadFromFile reads path on top of the defaults. A missing file is not an error.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the config atomically, creating its directory
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Marshal renders the config as YAML
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// ApplyEnvOverrides lets JB_RECENT_* variables win over the file
func (c *Config) ApplyEnvOverrides() {
	apply := func(dst *string, env string) {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = v
		}
	}
	apply(&c.MatchMode, EnvMatchMode)
	apply(&c.VersionOrder, EnvVersionOrder)
	apply(&c.ConfigRoot, EnvConfigRoot)
	apply(&c.Launcher, EnvLauncher)
	apply(&c.Logging.Level, EnvLogLevel)
	apply(&c.Logging.Format, EnvLogFormat)
	apply(&c.Logging.Sink, EnvLogSink)
	apply(&c.Logging.File, EnvLogFile)
}

// Validate checks enumerated settings and the IDE table
func (c *Config) Validate() error {
	if _, err := rank.ParseMatchMode(c.MatchMode); err != nil {
		return fmt.Errorf("match_mode: %w", err)
	}
	if _, err := ide.ParseVersionOrder(c.VersionOrder); err != nil {
		return fmt.Errorf("version_order: %w", err)
	}
	if _, err := launch.New(c.Launcher); err != nil {
		return fmt.Errorf("launcher: %w", err)
	}
	seen := make(map[string]bool, len(c.IDEs))
	for i, entry := range c.IDEs {
		if strings.TrimSpace(entry.Name) == "" {
			return fmt.Errorf("ides[%d]: name is required", i)
		}
		if seen[entry.Name] {
			return fmt.Errorf("ides[%d]: duplicate name %q", i, entry.Name)
		}
		seen[entry.Name] = true
	}
	logCfg := c.Logging
	if logCfg.File == "" {
		// ResolvedLogging supplies the default file
		logCfg.File = appName + ".log"
	}
	return logCfg.Validate()
}

// ResolvedLogging fills in the default log file for the file sink
func (c *Config) ResolvedLogging(paths *Paths) logging.Config {
	out := c.Logging
	if out.File == "" {
		out.File = paths.LogFile()
	}
	out.File = paths.ExpandHome(out.File)
	return out
}

// Descriptors returns the effective IDE table
func (c *Config) Descriptors(paths *Paths) []models.IdeDescriptor {
	jetbrainsRoot := filepath.Join(paths.ConfigHome, "JetBrains")
	if c.ConfigRoot != "" {
		jetbrainsRoot = paths.ExpandHome(c.ConfigRoot)
	}

	if len(c.IDEs) == 0 {
		return ide.WithConfigRoot(ide.DefaultDescriptors(paths.ConfigHome), jetbrainsRoot)
	}

	out := make([]models.IdeDescriptor, 0, len(c.IDEs))
	for _, entry := range c.IDEs {
		d := models.IdeDescriptor{
			Name:        entry.Name,
			Prefix:      entry.Prefix,
			ConfigRoot:  paths.ExpandHome(entry.ConfigRoot),
			Icon:        entry.Icon,
			DesktopFile: entry.DesktopFile,
		}
		if d.Prefix == "" {
			d.Prefix = d.Name
		}
		if d.ConfigRoot == "" {
			d.ConfigRoot = jetbrainsRoot
		}
		out = append(out, d)
	}
	return out
}

// MatchModeValue returns the validated match mode
func (c *Config) MatchModeValue() rank.MatchMode {
	mode, _ := rank.ParseMatchMode(c.MatchMode)
	return mode
}

// VersionOrderValue returns the validated version order
func (c *Config) VersionOrderValue() ide.VersionOrder {
	order, _ := ide.ParseVersionOrder(c.VersionOrder)
	return order
}
