package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thlorenz/files-provider/internal/errors"
	"github.com/thlorenz/files-provider/internal/selection"
	"github.com/thlorenz/files-provider/pkg/testutils"
	"github.com/thlorenz/files-provider/pkg/types"
)

func newTestModel(t *testing.T, includeAll bool) *Model {
	t.Helper()
	menu := selection.Build([]types.File{
		{FullPath: "/w/a.js", Entry: "a.js", Timestamp: "2024-05-01T10:00:00"},
		{FullPath: "/w/b.js", Entry: "b.js"},
		{FullPath: "/w/c.js", Entry: "c.js"},
	}, includeAll)
	return NewModel(types.PromptRequest{
		Header:   "Please select a file below:",
		Footer:   "Your choice: ",
		Entries:  menu.Entries(),
		Validate: menu.Validate,
	}, DefaultStyles())
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m *Model, msgs ...tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(*Model)
	}
	return m, cmd
}

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModelChooseUnderCursor(t *testing.T) {
	m := newTestModel(t, true)
	assert.Equal(t, 0, m.Cursor())

	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, isQuit(t, cmd))

	key, err := m.Result()
	require.NoError(t, err)
	assert.Equal(t, "2", key)
}

func TestModelTypedKey(t *testing.T) {
	m := newTestModel(t, true)

	m, cmd := send(m, runes("3"))
	assert.Nil(t, cmd)
	assert.Equal(t, "3", m.Buffer())
	assert.Equal(t, 2, m.Cursor(), "cursor follows the typed key")

	m, cmd = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, isQuit(t, cmd))
	key, err := m.Result()
	require.NoError(t, err)
	assert.Equal(t, "3", key)
}

func TestModelTypedAllKey(t *testing.T) {
	m := newTestModel(t, true)

	m, _ = send(m, runes("0"), tea.KeyMsg{Type: tea.KeyEnter})
	key, err := m.Result()
	require.NoError(t, err)
	assert.Equal(t, selection.AllKey, key)
}

func TestModelInvalidKeyStaysOpen(t *testing.T) {
	m := newTestModel(t, false)

	m, cmd := send(m, runes("0"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	require.Error(t, m.Err())
	assert.True(t, errors.IsInvalidChoice(m.Err()))
	assert.Empty(t, m.Buffer())
	assert.Contains(t, testutils.StripANSI(m.View()), "Invalid choice: '0', please select one of the given numbers")

	// typing again clears the error
	m, _ = send(m, runes("1"))
	assert.NoError(t, m.Err())

	m, cmd = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, isQuit(t, cmd))
	key, err := m.Result()
	require.NoError(t, err)
	assert.Equal(t, "1", key)
}

func TestModelErase(t *testing.T) {
	m := newTestModel(t, true)

	m, _ = send(m, runes("1"), runes("2"))
	assert.Equal(t, "12", m.Buffer())

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "1", m.Buffer())

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Empty(t, m.Buffer())
}

func TestModelNonDigitRunesIgnored(t *testing.T) {
	m := newTestModel(t, true)

	m, _ = send(m, runes("x"))
	assert.Empty(t, m.Buffer())
}

func TestModelAbort(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		runes("q"),
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		t.Run(msg.String(), func(t *testing.T) {
			m, cmd := send(newTestModel(t, true), msg)
			assert.True(t, isQuit(t, cmd))

			_, err := m.Result()
			assert.True(t, errors.Is(err, errors.ErrPromptAborted))
			assert.Empty(t, m.View())
		})
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, true)
	m, _ = send(m, tea.WindowSizeMsg{Width: 80, Height: 24}, runes("2"))

	view := testutils.StripANSI(m.View())
	assert.Contains(t, view, "Please select a file below:")
	assert.Contains(t, view, "1:  a.js  2024-05-01T10:00:00")
	assert.Contains(t, view, "> 2:  b.js")
	assert.Contains(t, view, "0:  All")
	assert.Contains(t, view, "Your choice: 2")
	assert.Contains(t, view, "enter choose")
}

func TestStylesFallBackToDefaults(t *testing.T) {
	theme := Theme{Accent: "#123456"}.withDefaults()
	assert.Equal(t, "#123456", theme.Accent)
	assert.Equal(t, DefaultTheme.Selected, theme.Selected)
	assert.Equal(t, DefaultTheme.Muted, theme.Muted)
	assert.Equal(t, DefaultTheme.Error, theme.Error)
}
