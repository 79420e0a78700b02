package projects

import (
	"errors"
	"log/slog"

	"github.com/strrl/jb-recent/internal/ide"
	"github.com/strrl/jb-recent/internal/recent"
	"github.com/strrl/jb-recent/pkg/models"
)

// Collector gathers recent projects from every configured IDE
type Collector struct {
	Descriptors []models.IdeDescriptor
	Resolver    ide.Resolver
	Home        string                   // Substituted for $USER_HOME$
	NameOf      func(path string) string // Defaults to ResolveName
	Logger      *slog.Logger
}

// Source describes where one IDE's projects were read from
type Source struct {
	IDE        models.IdeDescriptor
	RecordFile string // Empty when no config directory matched
	Projects   []models.IdeProject
	Err        error // Read or parse failure, the IDE contributes nothing
}

// FetchProjects returns the projects of all IDEs in descriptor order. IDEs
// without a config directory or with an unusable record file are skipped.
func (c Collector) FetchProjects() []models.IdeProject {
	var projects []models.IdeProject
	for _, src := range c.FetchSources() {
		projects = append(projects, src.Projects...)
	}
	return projects
}

// FetchSources returns one Source per descriptor, including skipped ones
func (c Collector) FetchSources() []Source {
	sources := make([]Source, 0, len(c.Descriptors))
	for _, d := range c.Descriptors {
		sources = append(sources, c.fetchIDE(d))
	}
	return sources
}

func (c Collector) fetchIDE(d models.IdeDescriptor) Source {
	logger := c.logger().With("ide", d.Name)
	src := Source{IDE: d}

	recordFile, ok := c.Resolver.Resolve(d.ConfigRoot, d.Prefix)
	if !ok {
		logger.Debug("no config directory", "config_root", d.ConfigRoot, "prefix", d.Prefix)
		return src
	}
	src.RecordFile = recordFile

	records, err := recent.Reader{Home: c.Home, Logger: logger}.ReadFile(recordFile)
	if err != nil {
		var malformed *recent.MalformedRecordError
		if errors.As(err, &malformed) {
			logger.Debug("malformed record file", "file", recordFile, "error", err)
		} else {
			logger.Debug("unreadable record file", "file", recordFile, "error", err)
		}
		src.Err = err
		return src
	}

	nameOf := c.NameOf
	if nameOf == nil {
		nameOf = ResolveName
	}
	src.Projects = make([]models.IdeProject, 0, len(records))
	for _, r := range records {
		src.Projects = append(src.Projects, models.IdeProject{
			Name:      nameOf(r.Path),
			Path:      r.Path,
			IDE:       d.Name,
			Timestamp: r.Timestamp,
		})
	}
	logger.Debug("loaded recent projects", "file", recordFile, "count", len(src.Projects))
	return src
}

func (c Collector) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
