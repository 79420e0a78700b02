package present

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strrl/jb-recent/internal/testutil"
	"github.com/strrl/jb-recent/pkg/models"
)

var descriptors = []models.IdeDescriptor{
	{Name: "PyCharm", Icon: "pycharm", DesktopFile: "pycharm-professional.desktop"},
	{Name: "Bare", Icon: "bare"},
}

func TestPresentBuildsItems(t *testing.T) {
	root := t.TempDir()
	path := testutil.MakeProject(t, root, "proj1", "")
	now := time.UnixMilli(1_000)

	var iconCalls int
	p := Presenter{
		Descriptors: descriptors,
		Trigger:     "jb ",
		Icon: func(d models.IdeDescriptor) string {
			iconCalls++
			return "/icons/" + d.Icon + ".svg"
		},
	}

	items := p.Present([]models.IdeProject{
		{Name: "proj1", Path: path, IDE: "PyCharm", Timestamp: 900},
		{Name: "proj1", Path: path, IDE: "PyCharm", Timestamp: 0},
	}, now)
	require.Len(t, items, 2)

	assert.Equal(t, models.Item{
		ID:         "000000000000100-" + path + "-PyCharm",
		Text:       "proj1",
		Subtext:    path,
		Icon:       "/icons/pycharm.svg",
		Completion: "jb proj1",
		Actions: []models.LaunchAction{{
			Text:        "Open in PyCharm",
			DesktopFile: "pycharm-professional.desktop",
			ProjectPath: path,
		}},
	}, items[0])
	assert.Equal(t, "000000000001000-"+path+"-PyCharm", items[1].ID)
	assert.Equal(t, 1, iconCalls)
}

func TestPresentSkipsStaleProjects(t *testing.T) {
	root := t.TempDir()
	kept := testutil.MakeProject(t, root, "kept", "")

	items := Presenter{Descriptors: descriptors}.Present([]models.IdeProject{
		{Name: "gone", Path: root + "/gone", IDE: "PyCharm", Timestamp: 10},
		{Name: "kept", Path: kept, IDE: "PyCharm", Timestamp: 5},
	}, time.Now())

	require.Len(t, items, 1)
	assert.Equal(t, kept, items[0].Subtext)
}

func TestPresentLogsToItsLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})).With("query_id", "q1")

	items := Presenter{
		Descriptors: descriptors,
		Exists:      func(string) bool { return false },
		Logger:      logger,
	}.Present([]models.IdeProject{{Name: "gone", Path: "/gone", IDE: "PyCharm"}}, time.Now())

	assert.Empty(t, items)
	assert.Contains(t, buf.String(), "skipping stale project")
	assert.Contains(t, buf.String(), "query_id=q1")
}

func TestPresentSkipsIDEsWithoutLauncher(t *testing.T) {
	p := Presenter{
		Descriptors: descriptors,
		Exists:      func(string) bool { return true },
	}
	items := p.Present([]models.IdeProject{
		{Name: "a", Path: "/a", IDE: "Bare"},
		{Name: "b", Path: "/b", IDE: "Unknown"},
		{Name: "c", Path: "/c", IDE: "PyCharm"},
	}, time.Now())

	require.Len(t, items, 1)
	assert.Equal(t, "/c", items[0].Subtext)
	assert.Empty(t, items[0].Icon)
}
