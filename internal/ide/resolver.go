package ide

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// VersionOrder decides which versioned config directory counts as newest
type VersionOrder string

const (
	// OrderLexical picks the lexicographically greatest directory name.
	// "PyCharm2022.9" beats "PyCharm2022.10" under this order.
	OrderLexical VersionOrder = "lexical"
	// OrderSemantic compares the suffix after the prefix as a version and
	// falls back to lexical order when either side does not parse
	OrderSemantic VersionOrder = "semantic"
)

// ParseVersionOrder validates a configured order name
func ParseVersionOrder(s string) (VersionOrder, error) {
	switch VersionOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderLexical:
		return OrderLexical, nil
	case OrderSemantic:
		return OrderSemantic, nil
	default:
		return "", fmt.Errorf("invalid version order %q", s)
	}
}

// Resolver locates the recent projects file of the newest config directory
type Resolver struct {
	Order VersionOrder
}

// Resolve lists the subdirectories of configRoot starting with prefix, picks
// the newest one and returns the path of its record file. The bool is false
// when configRoot is missing or nothing matches.
func (r Resolver) Resolve(configRoot, prefix string) (string, bool) {
	dir, ok := r.NewestDir(configRoot, prefix)
	if !ok {
		return "", false
	}
	return filepath.Join(configRoot, dir, filepath.FromSlash(RecordFile)), true
}

// NewestDir returns the name of the newest matching subdirectory
func (r Resolver) NewestDir(configRoot, prefix string) (string, bool) {
	info, err := os.Stat(configRoot)
	if err != nil || !info.IsDir() {
		return "", false
	}

	entries, err := os.ReadDir(configRoot)
	if err != nil {
		return "", false
	}

	var best string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || !isDir(configRoot, entry) {
			continue
		}
		if best == "" || r.newer(name, best, prefix) {
			best = name
		}
	}
	return best, best != ""
}

func (r Resolver) newer(a, b, prefix string) bool {
	if r.Order == OrderSemantic {
		va, errA := semver.NewVersion(strings.TrimPrefix(a, prefix))
		vb, errB := semver.NewVersion(strings.TrimPrefix(b, prefix))
		if errA == nil && errB == nil && !va.Equal(vb) {
			return va.GreaterThan(vb)
		}
	}
	return a > b
}

func isDir(root string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(root, entry.Name()))
	return err == nil && info.IsDir()
}
