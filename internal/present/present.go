// Package present turns ranked projects into host items.
package present

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/strrl/jb-recent/pkg/models"
)

// Presenter builds items for ranked projects
type Presenter struct {
	Descriptors []models.IdeDescriptor
	Trigger     string
	// Icon resolves an IDE's icon; nil leaves items without one
	Icon func(d models.IdeDescriptor) string
	// Exists reports whether a project path is still on disk; nil uses os.Stat
	Exists func(path string) bool
	Logger *slog.Logger
}

// Present maps projects to items in order, dropping projects whose path is
// gone and projects of IDEs without a desktop file
func (p Presenter) Present(projects []models.IdeProject, now time.Time) []models.Item {
	exists := p.Exists
	if exists == nil {
		exists = pathExists
	}

	descriptors := make(map[string]models.IdeDescriptor, len(p.Descriptors))
	for _, d := range p.Descriptors {
		descriptors[d.Name] = d
	}
	icons := make(map[string]string)
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	nowMillis := now.UnixMilli()
	items := make([]models.Item, 0, len(projects))
	for _, project := range projects {
		if !exists(project.Path) {
			logger.Debug("skipping stale project", "path", project.Path, "ide", project.IDE)
			continue
		}
		d, ok := descriptors[project.IDE]
		if !ok || d.DesktopFile == "" {
			logger.Debug("no launcher for ide", "ide", project.IDE)
			continue
		}

		icon, ok := icons[d.Name]
		if !ok && p.Icon != nil {
			icon = p.Icon(d)
			icons[d.Name] = icon
		}

		items = append(items, models.Item{
			ID:         ItemID(nowMillis, project),
			Text:       project.Name,
			Subtext:    project.Path,
			Icon:       icon,
			Completion: p.Trigger + project.Name,
			Actions: []models.LaunchAction{{
				Text:        "Open in " + d.Name,
				DesktopFile: d.DesktopFile,
				ProjectPath: project.Path,
			}},
		})
	}
	return items
}

// ItemID is unique per (path, IDE) and sorts recent projects first
func ItemID(nowMillis int64, project models.IdeProject) string {
	return fmt.Sprintf("%015d-%s-%s", nowMillis-project.Timestamp, project.Path, project.IDE)
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
