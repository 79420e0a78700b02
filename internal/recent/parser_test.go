package recent

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strrl/jb-recent/pkg/models"
)

const home = "/home/u"

const fullRecord = `<application>
  <component name="RecentProjectsManager">
    <option name="recentPaths">
      <list>
        <option value="$USER_HOME$/proj1" />
        <option value="/srv/proj2" />
        <option value="$USER_HOME$/no-info" />
      </list>
    </option>
    <option name="additionalInfo">
      <map>
        <entry key="$USER_HOME$/proj1">
          <value>
            <RecentProjectMetaInfo frameTitle="proj1">
              <option name="build" value="PY-221.5080.212" />
              <option name="projectOpenTimestamp" value="1650000000000" />
            </RecentProjectMetaInfo>
          </value>
        </entry>
        <entry key="/srv/only-info">
          <value>
            <RecentProjectMetaInfo>
              <option name="projectOpenTimestamp" value="1660000000000" />
            </RecentProjectMetaInfo>
          </value>
        </entry>
      </map>
    </option>
  </component>
</application>`

func TestParseMergesRecentPathsAndAdditionalInfo(t *testing.T) {
	records, err := Parse(strings.NewReader(fullRecord), home)
	require.NoError(t, err)

	assert.Equal(t, []models.RecentProjectRecord{
		{Path: "/home/u/proj1", Timestamp: 1650000000000},
		{Path: "/srv/proj2", Timestamp: 0},
		{Path: "/home/u/no-info", Timestamp: 0},
		{Path: "/srv/only-info", Timestamp: 1660000000000},
	}, records)
}

func TestParseAdditionalInfoOnly(t *testing.T) {
	doc := `<application><component name="RecentProjectsManager">
  <option name="additionalInfo"><map>
    <entry key="$USER_HOME$/foo"><value><RecentProjectMetaInfo>
      <option name="projectOpenTimestamp" value="42" />
    </RecentProjectMetaInfo></value></entry>
  </map></option>
</component></application>`

	records, err := Parse(strings.NewReader(doc), home)
	require.NoError(t, err)
	assert.Equal(t, []models.RecentProjectRecord{{Path: "/home/u/foo", Timestamp: 42}}, records)
}

func TestParseSkipsEntriesWithoutTimestamp(t *testing.T) {
	doc := `<application><component>
  <option name="recentPaths"><list><option value="/a" /></list></option>
  <option name="additionalInfo"><map>
    <entry key="/a"><value><RecentProjectMetaInfo>
      <option name="projectOpenTimestamp" value="not-a-number" />
    </RecentProjectMetaInfo></value></entry>
    <entry key="/b"><value><RecentProjectMetaInfo>
      <option name="opened" value="true" />
    </RecentProjectMetaInfo></value></entry>
    <entry key="/c" />
  </map></option>
</component></application>`

	records, err := Parse(strings.NewReader(doc), home)
	require.NoError(t, err)
	assert.Equal(t, []models.RecentProjectRecord{{Path: "/a", Timestamp: 0}}, records)
}

func TestParseDeduplicatesPaths(t *testing.T) {
	doc := `<application><component>
  <option name="recentPaths"><list>
    <option value="/a" /><option value="/b" /><option value="/a" />
  </list></option>
</component></application>`

	records, err := Parse(strings.NewReader(doc), home)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestParseMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"not xml":       "recentPaths=/a",
		"unclosed":      "<application><component>",
		"no component":  "<application></application>",
		"second root":   fullRecord + "<application>",
		"trailing text": fullRecord + "garbage",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(doc), home)
			var malformed *MalformedRecordError
			require.True(t, errors.As(err, &malformed), "got %v", err)
		})
	}
}

func TestParseAllowsTrailingMisc(t *testing.T) {
	doc := `<?xml version="1.0"?>` + fullRecord + "\n<!-- saved -->\n<?ide done?>\n"
	records, err := Parse(strings.NewReader(doc), home)
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestReaderLogsToItsLogger(t *testing.T) {
	doc := `<application><component name="RecentProjectsManager">
  <option name="additionalInfo"><map>
    <entry key="/srv/p"><value><RecentProjectMetaInfo>
      <option name="projectOpenTimestamp" value="soon" />
    </RecentProjectMetaInfo></value></entry>
  </map></option>
</component></application>`

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})).With("query_id", "q1")
	records, err := Reader{Home: home, Logger: logger}.Read(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Contains(t, buf.String(), "ignoring unparsable project timestamp")
	assert.Contains(t, buf.String(), "query_id=q1")
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recentProjects.xml")
	require.NoError(t, os.WriteFile(path, []byte(fullRecord), 0o644))

	records, err := ParseFile(path, home)
	require.NoError(t, err)
	assert.Len(t, records, 4)

	bad := filepath.Join(dir, "bad.xml")
	require.NoError(t, os.WriteFile(bad, []byte("<oops"), 0o644))
	_, err = ParseFile(bad, home)
	var malformed *MalformedRecordError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, bad, malformed.Path)
	assert.Contains(t, err.Error(), bad)

	_, err = ParseFile(filepath.Join(dir, "missing.xml"), home)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
