// Package prompt implements the line based interactive prompter: it prints
// the rendered menu, reads one line at a time and re-asks until the menu's
// validator accepts the input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/thlorenz/files-provider/internal/errors"
	"github.com/thlorenz/files-provider/internal/log"
	"github.com/thlorenz/files-provider/pkg/types"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
)

// Line reads choices from a line oriented reader. It is not safe for
// concurrent use: two prompts sharing one input would interleave.
type Line struct {
	in     *bufio.Reader
	out    io.Writer
	styled bool
}

// LineOption configures a Line prompter
type LineOption func(*Line)

// WithStyle forces styling on or off. By default output is styled only
// when it is a terminal.
func WithStyle(styled bool) LineOption {
	return func(l *Line) {
		l.styled = styled
	}
}

// NewLine creates a prompter reading from in and writing to out
func NewLine(in io.Reader, out io.Writer, opts ...LineOption) *Line {
	l := &Line{
		in:     bufio.NewReader(in),
		out:    out,
		styled: IsTerminal(out),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Stdio creates a prompter on the process' standard input and output
func Stdio() *Line {
	return NewLine(os.Stdin, os.Stdout)
}

// IsTerminal reports whether w is a terminal file
func IsTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Prompt prints the menu and keeps reading lines until one passes
// req.Validate. Input is trimmed of surrounding whitespace before it is
// validated. End of input yields a PromptAborted error.
func (l *Line) Prompt(req types.PromptRequest) (string, error) {
	if req.Validate == nil {
		return "", errors.NewInternal("prompt request without validator")
	}
	if err := l.write(l.menu(req)); err != nil {
		return "", err
	}

	for {
		line, readErr := l.in.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return "", errors.NewPromptError("failed to read choice", errors.PromptFailed, readErr)
		}
		if readErr == io.EOF && line == "" {
			return "", errors.NewPromptError("no choice entered", errors.PromptAborted, io.EOF)
		}

		token := strings.TrimSpace(line)
		key, err := req.Validate(token)
		if err == nil {
			return key, nil
		}
		log.LogWithError(err).Debug("rejected choice")

		msg := err.Error()
		if l.styled {
			msg = errorStyle.Render(msg)
		}
		if err := l.write(msg + "\n" + req.Footer); err != nil {
			return "", err
		}
		if readErr == io.EOF {
			return "", errors.NewPromptError("no choice entered", errors.PromptAborted, io.EOF)
		}
	}
}

func (l *Line) menu(req types.PromptRequest) string {
	if !l.styled || req.Header == "" || !strings.HasPrefix(req.Message, req.Header) {
		return req.Message
	}
	return headerStyle.Render(req.Header) + strings.TrimPrefix(req.Message, req.Header)
}

func (l *Line) write(s string) error {
	if _, err := fmt.Fprint(l.out, s); err != nil {
		return errors.NewPromptError("failed to write prompt", errors.PromptFailed, err)
	}
	return nil
}
