package projects

import (
	"os"
	"path/filepath"
	"strings"
)

// NameFile holds a project's display name relative to the project directory
const NameFile = ".idea/.name"

// ResolveName returns the name stored in the project's .idea/.name, or the
// directory's base name when that file cannot be read or is blank
func ResolveName(projectPath string) string {
	data, err := os.ReadFile(filepath.Join(projectPath, filepath.FromSlash(NameFile)))
	if err == nil {
		if name := strings.TrimSpace(firstLine(string(data))); name != "" {
			return name
		}
	}
	return filepath.Base(projectPath)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
