// Package testutils holds fixtures shared by the package tests: directory
// builders, a recording handler and a scripted prompter.
package testutils

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/thlorenz/files-provider/pkg/types"
)

// CreateTestFilesWithContent creates test files with specific content
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// CreateTestFilesWithDefault creates a directory with two .js files and
// one .md file, returning its path.
func CreateTestFilesWithDefault(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	CreateTestFilesWithContent(t, dir, map[string]string{
		"a.js":      "console.log('a')",
		"b.js":      "console.log('b')",
		"README.md": "# readme",
	})
	return dir
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	return ansi.Strip(str)
}

// RecordingHandler is a types.Handler that remembers every file it was
// invoked with. When Fail is set for an entry name that call returns the
// error.
type RecordingHandler struct {
	mu    sync.Mutex
	calls []types.File
	Fail  map[string]error
}

// Handle records f
func (h *RecordingHandler) Handle(f types.File) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, f)
	if err, ok := h.Fail[f.Entry]; ok {
		return err
	}
	return nil
}

// Calls returns the recorded files in invocation order
func (h *RecordingHandler) Calls() []types.File {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]types.File, len(h.calls))
	copy(out, h.calls)
	return out
}

// Entries returns the entry names of the recorded files
func (h *RecordingHandler) Entries() []string {
	calls := h.Calls()
	names := make([]string, len(calls))
	for i, f := range calls {
		names[i] = f.Entry
	}
	return names
}

// ScriptedPrompter answers prompts from a fixed list of tokens. Each token
// is run through the request's validator; rejected tokens are skipped the
// way an interactive prompter re-asks. When the script runs out Err is
// returned, or an error if Err is nil.
type ScriptedPrompter struct {
	Tokens []string
	Err    error

	requests []types.PromptRequest
	rejected []error
}

// Prompt implements types.Prompter
func (p *ScriptedPrompter) Prompt(req types.PromptRequest) (string, error) {
	p.requests = append(p.requests, req)
	for len(p.Tokens) > 0 {
		token := p.Tokens[0]
		p.Tokens = p.Tokens[1:]
		key, err := req.Validate(token)
		if err != nil {
			p.rejected = append(p.rejected, err)
			continue
		}
		return key, nil
	}
	if p.Err != nil {
		return "", p.Err
	}
	return "", os.ErrClosed
}

// Requests returns the prompt requests seen so far
func (p *ScriptedPrompter) Requests() []types.PromptRequest {
	return p.requests
}

// Rejected returns the validation errors for skipped tokens
func (p *ScriptedPrompter) Rejected() []error {
	return p.rejected
}
