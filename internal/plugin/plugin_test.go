package plugin

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strrl/jb-recent/internal/config"
	"github.com/strrl/jb-recent/internal/present"
	"github.com/strrl/jb-recent/internal/projects"
	"github.com/strrl/jb-recent/internal/rank"
	"github.com/strrl/jb-recent/internal/testutil"
	"github.com/strrl/jb-recent/pkg/models"
)

type fixture struct {
	configRoot  string
	projectRoot string
	handler     Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	base := t.TempDir()
	f := &fixture{
		configRoot:  filepath.Join(base, "config"),
		projectRoot: filepath.Join(base, "src"),
	}
	descriptors := []models.IdeDescriptor{
		{Name: "CLion", Prefix: "CLion", ConfigRoot: f.configRoot, Icon: "clion", DesktopFile: "jetbrains-clion.desktop"},
		{Name: "PyCharm", Prefix: "PyCharm", ConfigRoot: f.configRoot, Icon: "pycharm", DesktopFile: "pycharm-professional.desktop"},
	}
	f.handler = Handler{
		Meta: DefaultMetadata("jb "),
		Collector: projects.Collector{
			Descriptors: descriptors,
			Home:        f.projectRoot,
		},
		Engine:    rank.Engine{Mode: rank.MatchSubstring},
		Presenter: present.Presenter{Descriptors: descriptors, Trigger: "jb "},
		Now:       func() time.Time { return time.UnixMilli(10_000) },
	}
	return f
}

func (f *fixture) project(t *testing.T, dir, name string) string {
	return testutil.MakeProject(t, f.projectRoot, dir, name)
}

func subtexts(items []models.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Subtext
	}
	return out
}

func TestEmptyQueryOrdersAcrossIDEsByRecency(t *testing.T) {
	f := newFixture(t)
	proj1 := f.project(t, "proj1", "")
	proj2 := f.project(t, "proj2", "")
	testutil.WriteRecord(t, f.configRoot, "CLion2023.1", []models.RecentProjectRecord{{Path: proj1, Timestamp: 100}})
	testutil.WriteRecord(t, f.configRoot, "PyCharm2022.1", []models.RecentProjectRecord{{Path: proj2, Timestamp: 200}})

	items := f.handler.Items("")
	assert.Equal(t, []string{proj2, proj1}, subtexts(items))
	assert.Equal(t, "pycharm-professional.desktop", items[0].Actions[0].DesktopFile)
	assert.Equal(t, "jetbrains-clion.desktop", items[1].Actions[0].DesktopFile)
}

func TestExactNameQueryOutranksMoreRecentMatch(t *testing.T) {
	f := newFixture(t)
	lib := f.project(t, "lib/widget", "")
	app := f.project(t, "widget-app/main", "")
	testutil.WriteRecord(t, f.configRoot, "PyCharm2022.1", []models.RecentProjectRecord{
		{Path: app, Timestamp: 500},
		{Path: lib, Timestamp: 100},
	})

	items := f.handler.Items("widget")
	assert.Equal(t, []string{lib, app}, subtexts(items))
}

func TestHomePlaceholderAndNameFile(t *testing.T) {
	f := newFixture(t)
	f.project(t, "foo", "Foo Service")
	testutil.WriteRecord(t, f.configRoot, "CLion2023.1", []models.RecentProjectRecord{{Path: "$USER_HOME$/foo", Timestamp: 1}})

	items := f.handler.Items("")
	require.Len(t, items, 1)
	assert.Equal(t, filepath.Join(f.projectRoot, "foo"), items[0].Subtext)
	assert.Equal(t, "Foo Service", items[0].Text)
	assert.Equal(t, "jb Foo Service", items[0].Completion)
}

func TestStaleProjectsAreNotPresented(t *testing.T) {
	f := newFixture(t)
	kept := f.project(t, "kept", "")
	stale := filepath.Join(f.projectRoot, "deleted")
	testutil.WriteRecord(t, f.configRoot, "CLion2023.1", []models.RecentProjectRecord{
		{Path: stale, Timestamp: 900},
		{Path: kept, Timestamp: 100},
	})

	ranked := f.handler.Engine.Rank(f.handler.Collector.FetchProjects(), "")
	require.Len(t, ranked, 2, "stale project survives ranking")

	assert.Equal(t, []string{kept}, subtexts(f.handler.Items("")))
}

func TestBrokenIDEDoesNotAffectOthers(t *testing.T) {
	f := newFixture(t)
	proj := f.project(t, "proj", "")
	testutil.WriteRecordRaw(t, f.configRoot, "CLion2023.1", "<application><component>")
	testutil.WriteRecord(t, f.configRoot, "PyCharm2022.1", []models.RecentProjectRecord{{Path: proj, Timestamp: 1}})

	assert.Equal(t, []string{proj}, subtexts(f.handler.Items("")))
}

func TestNoConfigDirectoryMeansNoItems(t *testing.T) {
	f := newFixture(t)
	assert.Empty(t, f.handler.Items(""))
}

func TestHandleQuery(t *testing.T) {
	f := newFixture(t)
	proj := f.project(t, "proj", "")
	testutil.WriteRecord(t, f.configRoot, "PyCharm2022.1", []models.RecentProjectRecord{{Path: proj, Timestamp: 1}})

	idle := &Request{Text: "proj"}
	f.handler.HandleQuery(idle)
	assert.Empty(t, idle.Items)
	assert.False(t, idle.SortDisabled)

	req := &Request{Text: "proj", Triggered: true}
	f.handler.HandleQuery(req)
	assert.True(t, req.SortDisabled)
	require.Len(t, req.Items, 1)
	assert.Equal(t, "Open in PyCharm", req.Items[0].Actions[0].Text)
	assert.Equal(t, "000000000009999-"+proj+"-PyCharm", req.Items[0].ID)
}

func TestNewFromConfig(t *testing.T) {
	root := t.TempDir()
	paths := &config.Paths{
		Home:       filepath.Join(root, "home"),
		ConfigHome: filepath.Join(root, "config"),
		DataHome:   filepath.Join(root, "data"),
		CacheHome:  filepath.Join(root, "cache"),
	}
	proj := testutil.MakeProject(t, paths.Home, "proj", "")
	testutil.WriteRecord(t, filepath.Join(paths.ConfigHome, "JetBrains"), "GoLand2024.1",
		[]models.RecentProjectRecord{{Path: "$USER_HOME$/proj", Timestamp: 1}})

	cfg := config.DefaultConfig()
	cfg.MatchMode = "fuzzy"
	h := New(cfg, paths)

	assert.Equal(t, "jetbrains-projects", h.Meta.ID)
	assert.Equal(t, rank.MatchFuzzy, h.Engine.Mode)

	items := h.Items("prj")
	require.Len(t, items, 1)
	assert.Equal(t, proj, items[0].Subtext)
	require.NotEmpty(t, items[0].Icon)

	_, err := os.Stat(items[0].Icon)
	assert.NoError(t, err)
}
