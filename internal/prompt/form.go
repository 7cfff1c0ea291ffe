package prompt

import (
	"fmt"
	"io"

	"github.com/charmbracelet/huh"

	"github.com/thlorenz/files-provider/internal/errors"
	"github.com/thlorenz/files-provider/pkg/types"
)

// Selector height bounds in rows
const (
	minFormHeight = 3
	maxFormHeight = 20
	formPadding   = 2
)

// Form asks for a choice with a huh select field. The menu keys stay the
// option values so the usual validator decides what is accepted.
type Form struct {
	in         io.Reader
	out        io.Writer
	accessible bool
	theme      *huh.Theme
}

// FormOption configures a Form prompter
type FormOption func(*Form)

// WithFormInput reads key presses from r
func WithFormInput(r io.Reader) FormOption {
	return func(f *Form) {
		f.in = r
	}
}

// WithFormOutput renders to w
func WithFormOutput(w io.Writer) FormOption {
	return func(f *Form) {
		f.out = w
	}
}

// WithAccessible switches huh to its plain numbered prompt
func WithAccessible(accessible bool) FormOption {
	return func(f *Form) {
		f.accessible = accessible
	}
}

// WithTheme sets the huh theme
func WithTheme(theme *huh.Theme) FormOption {
	return func(f *Form) {
		f.theme = theme
	}
}

// NewForm creates a select form prompter
func NewForm(opts ...FormOption) *Form {
	f := &Form{theme: huh.ThemeCharm()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Prompt implements types.Prompter
func (f *Form) Prompt(req types.PromptRequest) (string, error) {
	if req.Validate == nil {
		return "", errors.NewInternal("prompt request without validator")
	}

	var key string
	sel := huh.NewSelect[string]().
		Title(req.Header).
		Description(req.Footer).
		Options(formOptions(req.Entries)...).
		Height(formHeight(len(req.Entries))).
		Validate(func(k string) error {
			_, err := req.Validate(k)
			return err
		}).
		Value(&key)

	form := huh.NewForm(huh.NewGroup(sel)).
		WithShowHelp(true).
		WithAccessible(f.accessible).
		WithTheme(f.theme)
	if f.in != nil {
		form = form.WithInput(f.in)
	}
	if f.out != nil {
		form = form.WithOutput(f.out)
	}

	if err := form.Run(); err != nil {
		return "", formError(err)
	}
	return req.Validate(key)
}

func formOptions(entries []types.MenuEntry) []huh.Option[string] {
	opts := make([]huh.Option[string], len(entries))
	for i, e := range entries {
		label := fmt.Sprintf("%s: %s", e.Key, e.Choice.Label())
		if fc, ok := e.Choice.(types.FileChoice); ok && fc.File.HasTimestamp() {
			label += "  " + fc.File.Timestamp
		}
		opts[i] = huh.NewOption(label, e.Key)
	}
	return opts
}

func formHeight(n int) int {
	return min(max(n+formPadding, minFormHeight), maxFormHeight)
}

func formError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return errors.NewPromptError("selection aborted", errors.PromptAborted, err)
	}
	return errors.NewPromptError("selection form failed", errors.PromptFailed, err)
}
