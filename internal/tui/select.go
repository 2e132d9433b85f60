// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/omdb/model"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the selection UI.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionSelected indicates the user picked a result.
	ActionSelected
	// ActionCancelled indicates the user left without picking anything.
	ActionCancelled
)

// SelectionResult holds the result of a TUI selection.
type SelectionResult struct {
	Action    SelectionAction
	Selection *model.SearchResult
}

type resultItem struct {
	model.SearchResult
}

func (i resultItem) Title() string {
	return fmt.Sprintf("%s (%s)", i.SearchResult.Title, i.Year)
}

func (i resultItem) FilterValue() string { return i.SearchResult.Title }

func (i resultItem) Description() string { return i.IMDbID }

type itemStyles struct {
	normal     lipgloss.Style
	selected   lipgloss.Style
	typeStyle  lipgloss.Style
	titleStyle lipgloss.Style
	idStyle    lipgloss.Style
}

func newItemStyles() itemStyles {
	container := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		typeStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110")),
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		idStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
	}
}

type resultDelegate struct {
	styles itemStyles
}

func (d resultDelegate) Height() int                         { return 5 }
func (d resultDelegate) Spacing() int                        { return 1 }
func (d resultDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d resultDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	result, ok := item.(resultItem)
	if !ok {
		return
	}

	typeLine := d.styles.typeStyle.Render(fmt.Sprintf("[%s]", strings.ToUpper(typeLabel(result.Type))))
	titleLine := d.styles.titleStyle.Render(truncate(result.Title(), m.Width()-4))
	idLine := d.styles.idStyle.Render(result.IMDbID)
	content := lipgloss.JoinVertical(lipgloss.Left, typeLine, titleLine, idLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

type picker struct {
	list   list.Model
	query  string
	result SelectionResult
}

func newPicker(query string, results []model.SearchResult) *picker {
	items := make([]list.Item, len(results))
	for i, r := range results {
		items[i] = resultItem{SearchResult: r}
	}

	l := list.New(items, resultDelegate{styles: newItemStyles()}, defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &picker{
		list:   l,
		query:  query,
		result: SelectionResult{Action: ActionNone},
	}
}

func (p *picker) Init() tea.Cmd { return nil }

func (p *picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := p.list.SelectedItem().(resultItem); ok {
				result := selected.SearchResult
				p.result = SelectionResult{Action: ActionSelected, Selection: &result}
				return p, tea.Quit
			}
		case "ctrl+c", "q", "esc":
			p.result = SelectionResult{Action: ActionCancelled}
			return p, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		p.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

func (p *picker) View() string {
	header := headerStyle.Render(fmt.Sprintf("Results for: %s", p.query))
	help := helpStyle.Render("Up/Down navigate | Enter select | q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, p.list.View(), help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// Select lets the user pick one of the search results. An empty result list
// is reported as cancelled without starting the UI.
func Select(query string, results []model.SearchResult) (SelectionResult, error) {
	if len(results) == 0 {
		return SelectionResult{Action: ActionCancelled}, nil
	}

	finalModel, err := runProgram(newPicker(query, results))
	if err != nil {
		return SelectionResult{}, err
	}

	if typed, ok := finalModel.(*picker); ok {
		return typed.result, nil
	}

	return SelectionResult{}, fmt.Errorf("unexpected program result")
}

func typeLabel(t model.MediaType) string {
	if t == "" {
		return "unknown"
	}
	return t.String()
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
