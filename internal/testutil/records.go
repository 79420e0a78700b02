// Package testutil builds IDE config trees and project directories on disk
// for tests.
package testutil

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/strrl/jb-recent/pkg/models"
)

// RecordXML renders records in the recentProjects.xml layout. Records with a
// zero timestamp only appear under recentPaths; the others also get an
// additionalInfo entry.
func RecordXML(records []models.RecentProjectRecord) string {
	var b strings.Builder
	b.WriteString("<application>\n  <component name=\"RecentProjectsManager\">\n")
	b.WriteString("    <option name=\"recentPaths\">\n      <list>\n")
	for _, r := range records {
		b.WriteString("        <option value=\"" + escape(r.Path) + "\" />\n")
	}
	b.WriteString("      </list>\n    </option>\n")
	b.WriteString("    <option name=\"additionalInfo\">\n      <map>\n")
	for _, r := range records {
		if r.Timestamp == 0 {
			continue
		}
		b.WriteString("        <entry key=\"" + escape(r.Path) + "\"><value><RecentProjectMetaInfo>")
		b.WriteString("<option name=\"projectOpenTimestamp\" value=\"" + strconv.FormatInt(r.Timestamp, 10) + "\" />")
		b.WriteString("</RecentProjectMetaInfo></value></entry>\n")
	}
	b.WriteString("      </map>\n    </option>\n  </component>\n</application>\n")
	return b.String()
}

// WriteRecord writes records to configRoot/versionDir/options/recentProjects.xml
// and returns the file path
func WriteRecord(t testing.TB, configRoot, versionDir string, records []models.RecentProjectRecord) string {
	t.Helper()
	return WriteRecordRaw(t, configRoot, versionDir, RecordXML(records))
}

// WriteRecordRaw is WriteRecord with caller supplied file contents
func WriteRecordRaw(t testing.TB, configRoot, versionDir, contents string) string {
	t.Helper()
	dir := filepath.Join(configRoot, versionDir, "options")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, "recentProjects.xml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// MakeProject creates a project directory under root. A non-empty
// displayName is written to .idea/.name.
func MakeProject(t testing.TB, root, dir, displayName string) string {
	t.Helper()
	path := filepath.Join(root, dir)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if displayName != "" {
		ideaDir := filepath.Join(path, ".idea")
		if err := os.MkdirAll(ideaDir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", ideaDir, err)
		}
		if err := os.WriteFile(filepath.Join(ideaDir, ".name"), []byte(displayName+"\n"), 0o644); err != nil {
			t.Fatalf("write name file: %v", err)
		}
	}
	return path
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
