package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thlorenz/files-provider/internal/errors"
	"github.com/thlorenz/files-provider/internal/log"
	"github.com/thlorenz/files-provider/pkg/types"
)

// Prompter runs a bubbletea picker for every prompt request.
type Prompter struct {
	styles  Styles
	program []tea.ProgramOption
}

// Option configures a Prompter
type Option func(*Prompter)

// WithStyles sets the picker styles
func WithStyles(s Styles) Option {
	return func(p *Prompter) {
		p.styles = s
	}
}

// WithInput reads key presses from r instead of the terminal
func WithInput(r io.Reader) Option {
	return func(p *Prompter) {
		p.program = append(p.program, tea.WithInput(r))
	}
}

// WithOutput renders to w instead of stdout
func WithOutput(w io.Writer) Option {
	return func(p *Prompter) {
		p.program = append(p.program, tea.WithOutput(w))
	}
}

// NewPrompter creates a picker based prompter
func NewPrompter(opts ...Option) *Prompter {
	p := &Prompter{styles: DefaultStyles()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Prompt implements types.Prompter
func (p *Prompter) Prompt(req types.PromptRequest) (string, error) {
	if req.Validate == nil {
		return "", errors.NewInternal("prompt request without validator")
	}

	final, err := tea.NewProgram(NewModel(req, p.styles), p.program...).Run()
	if err != nil {
		return "", errors.NewPromptError("picker failed", errors.PromptFailed, err)
	}
	m, ok := final.(*Model)
	if !ok {
		return "", errors.NewInternal("unexpected picker model %T", final)
	}

	key, err := m.Result()
	if err != nil {
		log.Debug("picker closed without a choice")
		return "", err
	}
	return key, nil
}
