package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/strrl/jb-recent/pkg/models"
)

// Searcher produces the items for a query string
type Searcher interface {
	Items(query string) []models.Item
}

type model struct {
	searcher     Searcher
	input        textinput.Model
	viewport     viewport.Model
	items        []models.Item
	cursor       int
	loading      bool
	pendingQuery string
	selected     *models.Item
	ready        bool
	width        int
	height       int
}

func initialModel(searcher Searcher, query string) model {
	input := textinput.New()
	input.Placeholder = "search recent projects"
	input.Prompt = "jb › "
	input.SetValue(query)
	input.CursorEnd()
	input.Focus()

	return model{
		searcher:     searcher,
		input:        input,
		loading:      true,
		pendingQuery: query,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, queryCmd(m.searcher, m.pendingQuery))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - len(m.input.Prompt) - 1

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-4)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 4
		}
		m.updateViewport()
		return m, nil

	case ItemsLoadedMsg:
		// Results for an older keystroke are dropped
		if msg.Query != m.pendingQuery {
			return m, nil
		}
		m.items = msg.Items
		m.loading = false
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}
		m.updateViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
				m.updateViewport()
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.items)-1 {
				m.cursor++
				m.updateViewport()
			}
			return m, nil

		case "enter":
			if m.cursor < len(m.items) {
				item := m.items[m.cursor]
				m.selected = &item
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	if query := m.input.Value(); query != m.pendingQuery {
		m.pendingQuery = query
		m.loading = true
		m.cursor = 0
		cmds = append(cmds, queryCmd(m.searcher, query))
	}

	return m, tea.Batch(cmds...)
}

func (m *model) updateViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderItems())

	// Keep the cursor line (two lines per item) visible
	line := m.cursor * 2
	if line < m.viewport.YOffset {
		m.viewport.SetYOffset(line)
	} else if line+1 >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(line + 2 - m.viewport.Height)
	}
}

func (m model) renderItems() string {
	if len(m.items) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
		if m.loading {
			return emptyStyle.Render("  Searching...")
		}
		return emptyStyle.Render("  No matching projects")
	}

	var s strings.Builder
	for i, item := range m.items {
		cursor := "  "
		nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
		pathStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
		if i == m.cursor {
			cursor = "> "
			nameStyle = nameStyle.Foreground(lipgloss.Color("212")).Bold(true)
			pathStyle = pathStyle.Foreground(lipgloss.Color("245"))
		}

		action := ""
		if len(item.Actions) > 0 {
			action = " · " + item.Actions[0].Text
		}

		s.WriteString(nameStyle.Render(cursor+item.Text+action) + "\n")
		s.WriteString(pathStyle.Render("    "+truncate(item.Subtext, m.width-6)) + "\n")
	}
	return s.String()
}

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	return fmt.Sprintf("%s\n%s\n%s\n%s", header, m.input.View(), m.viewport.View(), footer)
}

func (m model) renderHeader() string {
	title := "JetBrains Projects"
	if !m.loading {
		title = fmt.Sprintf("JetBrains Projects (%d)", len(m.items))
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("63"))

	return style.Render(title)
}

func (m model) renderFooter() string {
	info := "↑/↓: navigate • enter: open • esc: quit"
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	return style.Render(info)
}

// truncate keeps the last maxLen runes of s, marking the cut with "..."
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen <= 3 || len(runes) <= maxLen {
		return s
	}
	return "..." + string(runes[len(runes)-maxLen+3:])
}

// ShowTUI runs the picker and returns the item chosen with enter, or nil
func ShowTUI(searcher Searcher, query string) (*models.Item, error) {
	p := tea.NewProgram(
		initialModel(searcher, query),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := finalModel.(model)
	return m.selected, nil
}
