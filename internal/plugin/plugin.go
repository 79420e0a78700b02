// Package plugin implements the launcher query handler: collect recent
// projects, rank them for the query and present the survivors as items.
package plugin

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/strrl/jb-recent/internal/config"
	"github.com/strrl/jb-recent/internal/icons"
	"github.com/strrl/jb-recent/internal/ide"
	"github.com/strrl/jb-recent/internal/present"
	"github.com/strrl/jb-recent/internal/projects"
	"github.com/strrl/jb-recent/internal/rank"
	"github.com/strrl/jb-recent/pkg/models"
)

// Version of the plugin
const Version = "0.5.0"

// Metadata is what a host shows when registering the plugin
type Metadata struct {
	ID          string
	Name        string
	Description string
	Trigger     string
	Version     string
	Authors     []string
}

// DefaultMetadata returns the registration metadata for trigger
func DefaultMetadata(trigger string) Metadata {
	return Metadata{
		ID:          "jetbrains-projects",
		Name:        "JetBrains Projects",
		Description: "List and open JetBrains IDE projects.",
		Trigger:     trigger,
		Version:     Version,
		Authors:     []string{"Steven Xu", "Markus Richter", "Thomas Queste"},
	}
}

// Query is one host query event
type Query interface {
	String() string
	IsTriggered() bool
	// DisableSort asks the host to keep the order items were added in
	DisableSort()
	Add(items ...models.Item)
}

// Handler answers queries. It keeps no state between calls.
type Handler struct {
	Meta      Metadata
	Collector projects.Collector
	Engine    rank.Engine
	Presenter present.Presenter
	Now       func() time.Time
}

// New wires a handler from the configuration
func New(cfg *config.Config, paths *config.Paths) Handler {
	descriptors := cfg.Descriptors(paths)
	lookup := icons.DefaultLookup(paths.DataHome, paths.IconCacheDir())

	return Handler{
		Meta: DefaultMetadata(cfg.Trigger),
		Collector: projects.Collector{
			Descriptors: descriptors,
			Resolver:    ide.Resolver{Order: cfg.VersionOrderValue()},
			Home:        paths.Home,
		},
		Engine: rank.Engine{Mode: cfg.MatchModeValue()},
		Presenter: present.Presenter{
			Descriptors: descriptors,
			Trigger:     cfg.Trigger,
			Icon: func(d models.IdeDescriptor) string {
				return lookup.Resolve(d.Icon)
			},
		},
		Now: time.Now,
	}
}

// HandleQuery adds the items for a triggered query to q
func (h Handler) HandleQuery(q Query) {
	if !q.IsTriggered() {
		return
	}
	q.DisableSort()
	q.Add(h.Items(q.String())...)
}

// Items runs the whole pipeline for one query string
func (h Handler) Items(query string) []models.Item {
	logger := slog.Default().With("query_id", uuid.NewString())

	collector := h.Collector
	collector.Logger = logger
	all := collector.FetchProjects()

	ranked := h.Engine.Rank(all, query)

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	presenter := h.Presenter
	presenter.Logger = logger
	items := presenter.Present(ranked, now())

	logger.Debug("handled query",
		"query", query,
		"projects", len(all),
		"matched", len(ranked),
		"items", len(items))
	return items
}

// Request is a plain Query used by the CLI and the interactive picker
type Request struct {
	Text         string
	Triggered    bool
	SortDisabled bool
	Items        []models.Item
}

func (r *Request) String() string    { return r.Text }
func (r *Request) IsTriggered() bool { return r.Triggered }
func (r *Request) DisableSort()      { r.SortDisabled = true }

func (r *Request) Add(items ...models.Item) {
	r.Items = append(r.Items, items...)
}
