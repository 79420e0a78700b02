// Package icons resolves symbolic icon names to files on disk.
package icons

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

//go:embed jetbrains.svg
var fallbackIcon []byte

// FallbackName is the file name of the bundled icon
const FallbackName = "jetbrains.svg"

var patterns = []string{
	"hicolor/scalable/apps/%s.svg",
	"hicolor/256x256/apps/%s.png",
	"hicolor/128x128/apps/%s.png",
	"hicolor/48x48/apps/%s.png",
	"%s.svg",
	"%s.png",
}

// Lookup searches icon theme and pixmap directories
type Lookup struct {
	Dirs        []string
	FallbackDir string // The bundled icon is written here on first use
}

// DefaultLookup searches the user's data dir before the system ones
func DefaultLookup(dataHome, cacheDir string) Lookup {
	return Lookup{
		Dirs: []string{
			filepath.Join(dataHome, "icons"),
			"/usr/local/share/icons",
			"/usr/share/icons",
			"/usr/share/pixmaps",
		},
		FallbackDir: cacheDir,
	}
}

// Find returns the first existing icon file for name
func (l Lookup) Find(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for _, dir := range l.Dirs {
		for _, pattern := range patterns {
			candidate := filepath.Join(dir, fmt.Sprintf(pattern, name))
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
	}
	return "", false
}

// Resolve returns the icon for name or the bundled fallback icon
func (l Lookup) Resolve(name string) string {
	if path, ok := l.Find(name); ok {
		return path
	}
	path, err := l.Fallback()
	if err != nil {
		return ""
	}
	return path
}

// Fallback materializes the bundled icon and returns its path
func (l Lookup) Fallback() (string, error) {
	if l.FallbackDir == "" {
		return "", fmt.Errorf("no fallback icon directory")
	}
	path := filepath.Join(l.FallbackDir, FallbackName)
	if current, err := os.ReadFile(path); err == nil && bytes.Equal(current, fallbackIcon) {
		return path, nil
	}
	if err := os.MkdirAll(l.FallbackDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create icon directory: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(fallbackIcon)); err != nil {
		return "", fmt.Errorf("failed to write fallback icon: %w", err)
	}
	return path, nil
}
