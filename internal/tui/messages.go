package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/strrl/jb-recent/pkg/models"
)

// Message types for queries
type (
	// ItemsLoadedMsg carries the items produced for Query
	ItemsLoadedMsg struct {
		Query string
		Items []models.Item
	}
)

// queryCmd runs the handler for one query string
func queryCmd(searcher Searcher, query string) tea.Cmd {
	return func() tea.Msg {
		return ItemsLoadedMsg{
			Query: query,
			Items: searcher.Items(query),
		}
	}
}
