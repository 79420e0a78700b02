package config

import (
	"os"
	"path/filepath"
)

const appName = "jb-recent"

// Paths holds the XDG base directories used by the app
type Paths struct {
	Home       string
	ConfigHome string
	DataHome   string
	CacheHome  string
}

// DefaultPaths reads the XDG variables, falling back to the usual locations
// under the home directory
func DefaultPaths() *Paths {
	home := homeDir()
	return &Paths{
		Home:       home,
		ConfigHome: xdgDir("XDG_CONFIG_HOME", filepath.Join(home, ".config")),
		DataHome:   xdgDir("XDG_DATA_HOME", filepath.Join(home, ".local", "share")),
		CacheHome:  xdgDir("XDG_CACHE_HOME", filepath.Join(home, ".cache")),
	}
}

// ConfigFile returns the path to config.yaml
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigHome, appName, "config.yaml")
}

// IconCacheDir is where the bundled fallback icon is written
func (p *Paths) IconCacheDir() string {
	return filepath.Join(p.CacheHome, appName, "icons")
}

// LogFile is the default file for the file log sink
func (p *Paths) LogFile() string {
	return filepath.Join(p.CacheHome, appName, appName+".log")
}

// ExpandHome replaces a leading ~ with the home directory
func (p *Paths) ExpandHome(path string) string {
	if path == "~" {
		return p.Home
	}
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(p.Home, path[2:])
	}
	return path
}

func xdgDir(env, fallback string) string {
	if v := os.Getenv(env); v != "" && filepath.IsAbs(v) {
		return v
	}
	return fallback
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.TempDir()
}
