// Package tui implements a full screen picker for a prompt request on top of
// bubbletea. Entries can be chosen by moving the cursor or by typing their
// key; either way the token goes through the request's validator.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thlorenz/files-provider/internal/errors"
	"github.com/thlorenz/files-provider/pkg/types"
)

// Lines used by the header, footer, error and help rows around the list.
const chromeHeight = 8

type item struct {
	entry types.MenuEntry
}

func (i item) FilterValue() string { return i.entry.Choice.Label() }

func (i item) timestamp() string {
	if fc, ok := i.entry.Choice.(types.FileChoice); ok {
		return fc.File.Timestamp
	}
	return ""
}

type delegate struct {
	styles    Styles
	keyWidth  int
	nameWidth int
}

func (d delegate) Height() int                             { return 1 }
func (d delegate) Spacing() int                            { return 0 }
func (d delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d delegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	it, ok := li.(item)
	if !ok {
		return
	}

	cursor, style := "  ", d.styles.Unselected
	if index == m.Index() {
		cursor, style = "> ", d.styles.Selected
	}

	keyCol := fmt.Sprintf("%*s:", d.keyWidth, it.entry.Key)
	row := fmt.Sprintf("%-*s", d.nameWidth, it.entry.Choice.Label())
	if ts := it.timestamp(); ts != "" {
		row += "  " + ts
	}
	fmt.Fprint(w, cursor+d.styles.Key.Render(keyCol)+"  "+style.Render(row))
}

// Model is the bubbletea model of one prompt round-trip.
type Model struct {
	req    types.PromptRequest
	list   list.Model
	keys   keyMap
	styles Styles

	buffer  string
	err     error
	chosen  string
	aborted bool
}

// NewModel creates the picker for req
func NewModel(req types.PromptRequest, styles Styles) *Model {
	d := delegate{styles: styles}
	items := make([]list.Item, len(req.Entries))
	for i, e := range req.Entries {
		items[i] = item{entry: e}
		d.keyWidth = max(d.keyWidth, lipgloss.Width(e.Key))
		d.nameWidth = max(d.nameWidth, lipgloss.Width(e.Choice.Label()))
	}

	l := list.New(items, d, 0, len(items)+1)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return &Model{
		req:    req,
		list:   l,
		keys:   defaultKeyMap(),
		styles: styles,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, max(1, msg.Height-chromeHeight))
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Choose):
			return m.choose()
		case key.Matches(msg, m.keys.Erase):
			if m.buffer != "" {
				m.buffer = m.buffer[:len(m.buffer)-1]
				m.follow()
			}
			return m, nil
		case msg.Type == tea.KeyRunes && isDigits(msg.Runes):
			m.buffer += string(msg.Runes)
			m.err = nil
			m.follow()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// choose validates the typed key or, when nothing was typed, the key under
// the cursor.
func (m *Model) choose() (tea.Model, tea.Cmd) {
	token := m.buffer
	if token == "" {
		if it, ok := m.list.SelectedItem().(item); ok {
			token = it.entry.Key
		}
	}

	k, err := m.req.Validate(token)
	if err != nil {
		m.err = err
		m.buffer = ""
		return m, nil
	}
	m.chosen = k
	return m, tea.Quit
}

// follow moves the cursor onto the entry whose key was typed so far
func (m *Model) follow() {
	for i, li := range m.list.Items() {
		if it, ok := li.(item); ok && it.entry.Key == m.buffer {
			m.list.Select(i)
			return
		}
	}
}

// View implements tea.Model
func (m *Model) View() string {
	if m.chosen != "" || m.aborted {
		return ""
	}

	var sb strings.Builder
	if m.req.Header != "" {
		sb.WriteString(m.styles.Title.Render(m.req.Header))
		sb.WriteString("\n")
	}
	sb.WriteString(m.list.View())
	sb.WriteString("\n\n")
	sb.WriteString(m.req.Footer)
	sb.WriteString(m.buffer)
	sb.WriteString("\n")
	if m.err != nil {
		sb.WriteString(m.styles.Error.Render(m.err.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Help.Render(m.helpLine()))
	return m.styles.App.Render(sb.String())
}

func (m *Model) helpLine() string {
	parts := []string{"↑/↓ move", "0-9 type key"}
	for _, b := range []key.Binding{m.keys.Choose, m.keys.Quit} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// Buffer returns the digits typed so far
func (m *Model) Buffer() string {
	return m.buffer
}

// Cursor returns the index of the highlighted entry
func (m *Model) Cursor() int {
	return m.list.Index()
}

// Err returns the last validation error shown to the user
func (m *Model) Err() error {
	return m.err
}

// Result returns the chosen key, or a PromptError when the picker was left
// without a choice.
func (m *Model) Result() (string, error) {
	if m.chosen == "" {
		return "", errors.NewPromptError("selection aborted", errors.PromptAborted, nil)
	}
	return m.chosen, nil
}

func isDigits(rs []rune) bool {
	if len(rs) == 0 {
		return false
	}
	for _, r := range rs {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
