package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thlorenz/files-provider/internal/errors"
	"github.com/thlorenz/files-provider/internal/selection"
	"github.com/thlorenz/files-provider/pkg/types"
)

func request(t *testing.T) types.PromptRequest {
	t.Helper()
	menu := selection.Build([]types.File{
		{FullPath: "/w/a.js", Entry: "a.js"},
		{FullPath: "/w/b.js", Entry: "b.js"},
	}, true)
	return types.PromptRequest{
		Header:   "Pick:",
		Footer:   "Your choice: ",
		Message:  menu.Render("Pick:", "Your choice: "),
		Entries:  menu.Entries(),
		Validate: menu.Validate,
	}
}

func TestLinePromptAcceptsValidKey(t *testing.T) {
	var out bytes.Buffer
	p := NewLine(strings.NewReader("2\n"), &out)

	key, err := p.Prompt(request(t))
	require.NoError(t, err)
	assert.Equal(t, "2", key)
	assert.Equal(t, "Pick:\n\n\t1:  a.js\n\t2:  b.js\n\t0:  All\n\n\nYour choice: ", out.String())
}

func TestLinePromptTrimsInput(t *testing.T) {
	p := NewLine(strings.NewReader("  0 \r\n"), io.Discard)

	key, err := p.Prompt(request(t))
	require.NoError(t, err)
	assert.Equal(t, "0", key)
}

func TestLinePromptRetries(t *testing.T) {
	var out bytes.Buffer
	p := NewLine(strings.NewReader("7\nfoo\n1\n"), &out)

	key, err := p.Prompt(request(t))
	require.NoError(t, err)
	assert.Equal(t, "1", key)

	got := out.String()
	assert.Contains(t, got, "Invalid choice: '7', please select one of the given numbers\nYour choice: ")
	assert.Contains(t, got, "Invalid choice: 'foo', please select one of the given numbers\nYour choice: ")
	assert.Equal(t, 1, strings.Count(got, "a.js"), "menu is printed once")
}

func TestLinePromptLastLineWithoutNewline(t *testing.T) {
	p := NewLine(strings.NewReader("x\n1"), io.Discard)

	key, err := p.Prompt(request(t))
	require.NoError(t, err)
	assert.Equal(t, "1", key)
}

func TestLinePromptEOF(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "only invalid", input: "9\n"},
		{name: "invalid without newline", input: "9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewLine(strings.NewReader(tt.input), io.Discard)
			_, err := p.Prompt(request(t))
			require.Error(t, err)
			assert.True(t, errors.IsPromptError(err))
			assert.True(t, errors.Is(err, errors.ErrPromptAborted))
			assert.True(t, errors.Is(err, io.EOF))
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestLinePromptReadFailure(t *testing.T) {
	p := NewLine(failingReader{}, io.Discard)
	_, err := p.Prompt(request(t))
	assert.True(t, errors.Is(err, errors.ErrPromptFailed))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestLinePromptStyled(t *testing.T) {
	var out bytes.Buffer
	p := NewLine(strings.NewReader("5\n1\n"), &out, WithStyle(true))

	_, err := p.Prompt(request(t))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Pick:")
	assert.Contains(t, out.String(), "Invalid choice: '5'")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
