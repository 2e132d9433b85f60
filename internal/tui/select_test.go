package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/omdb/model"
)

var searchResults = []model.SearchResult{
	{Title: "Blade Runner", Year: "1982", IMDbID: "tt0083658", Type: model.MediaTypeMovie},
	{Title: "Blade Runner 2049", Year: "2017", IMDbID: "tt1856101", Type: model.MediaTypeMovie},
}

func stubProgram(t *testing.T, fn func(tea.Model) (tea.Model, error)) {
	t.Helper()
	original := runProgram
	runProgram = fn
	t.Cleanup(func() { runProgram = original })
}

func TestSelect_EmptyResultsSkipProgram(t *testing.T) {
	stubProgram(t, func(tea.Model) (tea.Model, error) {
		t.Fatal("program must not start without results")
		return nil, nil
	})

	result, err := Select("nothing", nil)
	require.NoError(t, err)
	assert.Equal(t, ActionCancelled, result.Action)
	assert.Nil(t, result.Selection)
}

func TestSelect_PicksHighlightedResult(t *testing.T) {
	stubProgram(t, func(m tea.Model) (tea.Model, error) {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		return m, nil
	})

	result, err := Select("blade runner", searchResults)
	require.NoError(t, err)
	require.Equal(t, ActionSelected, result.Action)
	require.NotNil(t, result.Selection)
	assert.Equal(t, "tt1856101", result.Selection.IMDbID)
}

func TestSelect_Cancel(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		stubProgram(t, func(m tea.Model) (tea.Model, error) {
			m, _ = m.Update(key)
			return m, nil
		})

		result, err := Select("blade runner", searchResults)
		require.NoError(t, err)
		assert.Equal(t, ActionCancelled, result.Action, key.String())
	}
}

func TestSelect_ProgramError(t *testing.T) {
	stubProgram(t, func(tea.Model) (tea.Model, error) {
		return nil, errors.New("no tty")
	})

	_, err := Select("blade runner", searchResults)
	assert.EqualError(t, err, "no tty")
}

func TestPickerView(t *testing.T) {
	p := newPicker("blade runner", searchResults)
	view := p.View()

	assert.Contains(t, view, "Results for: blade runner")
	assert.Contains(t, view, "Blade Runner (1982)")
	assert.Contains(t, view, "[MOVIE]")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a b c", truncate("a   b\nc", 0))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "ab", truncate("abcdefghij", 2))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 72, clamp(72, 0, 40))
	assert.Equal(t, 50, clamp(72, 50, 40))
	assert.Equal(t, 40, clamp(72, 10, 40))
}
