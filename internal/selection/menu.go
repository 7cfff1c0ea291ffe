// Package selection builds the numbered menu a user picks candidates from,
// renders it as text and classifies raw input tokens against it.
package selection

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thlorenz/files-provider/internal/errors"
	"github.com/thlorenz/files-provider/pkg/types"
)

// AllKey is the reserved key of the aggregate All entry.
const AllKey = "0"

// Menu is an ordered mapping from selection key to choice. Files get the
// keys "1".."N" in input order; the All entry, when present, comes last.
type Menu struct {
	entries []types.MenuEntry
	index   map[string]int
}

// Build creates the menu for files. The All entry is appended only when
// includeAll is set.
func Build(files []types.File, includeAll bool) *Menu {
	m := &Menu{
		entries: make([]types.MenuEntry, 0, len(files)+1),
		index:   make(map[string]int, len(files)+1),
	}
	for i, f := range files {
		m.add(strconv.Itoa(i+1), types.FileChoice{File: f})
	}
	if includeAll {
		m.add(AllKey, types.AllChoice{})
	}
	return m
}

func (m *Menu) add(key string, choice types.Choice) {
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, types.MenuEntry{Key: key, Choice: choice})
}

// Len returns the number of entries including All.
func (m *Menu) Len() int {
	return len(m.entries)
}

// Entries returns a copy of the entries in display order.
func (m *Menu) Entries() []types.MenuEntry {
	out := make([]types.MenuEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Keys returns the keys in display order.
func (m *Menu) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// HasAll reports whether the All entry is part of the menu.
func (m *Menu) HasAll() bool {
	_, ok := m.index[AllKey]
	return ok
}

// Validate returns token unchanged when it is a key of the menu, otherwise an
// InvalidChoice error carrying the token. It has no side effects and may be
// called any number of times.
func (m *Menu) Validate(token string) (string, error) {
	if _, ok := m.index[token]; ok {
		return token, nil
	}
	return "", errors.NewChoiceError(token)
}

// Resolve returns the choice stored under key.
func (m *Menu) Resolve(key string) (types.Choice, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Choice, true
}

// Render formats the menu as prompt text:
//
//	<header>
//
//		<key>:  <name>  <timestamp>
//		...
//
//
//	<footer>
//
// Two blank lines separate the rows from the footer. Keys are right aligned and names padded so timestamps line up.
func (m *Menu) Render(header, footer string) string {
	keyWidth, nameWidth := 0, 0
	for _, e := range m.entries {
		keyWidth = max(keyWidth, lipgloss.Width(e.Key))
		nameWidth = max(nameWidth, lipgloss.Width(e.Choice.Label()))
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n\n")
	for _, e := range m.entries {
		sb.WriteString("\t")
		sb.WriteString(strings.Repeat(" ", keyWidth-lipgloss.Width(e.Key)))
		sb.WriteString(e.Key)
		sb.WriteString(":  ")
		label := e.Choice.Label()
		sb.WriteString(label)
		if ts := timestampOf(e.Choice); ts != "" {
			sb.WriteString(strings.Repeat(" ", nameWidth-lipgloss.Width(label)))
			sb.WriteString("  ")
			sb.WriteString(ts)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n\n")
	sb.WriteString(footer)
	return sb.String()
}

func timestampOf(c types.Choice) string {
	if fc, ok := c.(types.FileChoice); ok {
		return fc.File.Timestamp
	}
	return ""
}
