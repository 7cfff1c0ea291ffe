package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thlorenz/files-provider/internal/errors"
	"github.com/thlorenz/files-provider/internal/log"
	"github.com/thlorenz/files-provider/pkg/testutils"
)

// execute runs the root command against a config file that does not exist,
// so every test starts from the defaults.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.yaml")}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestListTable(t *testing.T) {
	dir := testutils.CreateTestFilesWithDefault(t)

	out, _, err := execute(t, "", "list", "-g", "*.js", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "a.js")
	assert.Contains(t, out, "b.js")
	assert.Contains(t, out, "16 B")
	assert.NotContains(t, out, "README.md")
}

func TestListJSON(t *testing.T) {
	dir := testutils.CreateTestFilesWithDefault(t)

	out, _, err := execute(t, "", "list", "--json", "-p", `\.js$`, dir)
	require.NoError(t, err)

	var got []row
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		var r row
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r))
		got = append(got, r)
	}
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].Key)
	assert.Equal(t, "a.js", got[0].Entry)
	assert.Equal(t, filepath.Join(dir, "a.js"), got[0].FullPath)
	assert.Equal(t, int64(16), got[0].Size)
	assert.NotEmpty(t, got[0].Mime)
	assert.NotEmpty(t, got[0].Timestamp)
	assert.Equal(t, "2", got[1].Key)
	assert.Equal(t, "b.js", got[1].Entry)
}

func TestListNoMatches(t *testing.T) {
	dir := testutils.CreateTestFilesWithDefault(t)

	out, _, err := execute(t, "", "list", "-g", "*.go", dir)
	require.NoError(t, err)
	assert.Equal(t, "No matching files\n", out)
}

func TestPatternRequired(t *testing.T) {
	dir := testutils.CreateTestFilesWithDefault(t)

	_, _, err := execute(t, "", "list", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidPattern))

	_, _, err = execute(t, "", "list", "-p", "a", "-g", "b", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidPattern))

	_, _, err = execute(t, "", "list", "-p", "(", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidPattern))
}

func TestListMissingDirectory(t *testing.T) {
	_, _, err := execute(t, "", "list", "-g", "*", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, errors.IsDirectoryNotFound(err))
}

func TestPickSingleReturn(t *testing.T) {
	dir := testutils.CreateTestFilesWithDefault(t)

	out, _, err := execute(t, "", "pick", "-g", "README.md", "--single", "return", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "README.md")+"\n", out)
}

func TestPickSinglePrint(t *testing.T) {
	dir := testutils.CreateTestFilesWithDefault(t)

	out, _, err := execute(t, "", "pick", "-g", "*.md", "--print", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "README.md")+"\n", out)
}

func TestPickPromptAll(t *testing.T) {
	dir := testutils.CreateTestFilesWithDefault(t)

	out, menu, err := execute(t, "0\n", "pick", "-g", "*.js", "--print", "--tui", "never", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.js")+"\n"+filepath.Join(dir, "b.js")+"\n", out)
	assert.Contains(t, menu, "Please select a file below:")
	assert.Contains(t, menu, "0:  All")
}

func TestPickPromptReturnsChoice(t *testing.T) {
	dir := testutils.CreateTestFilesWithDefault(t)

	out, menu, err := execute(t, "9\n2\n", "pick", "-g", "*.js", "--multi", "prompt", "--no-all", "--tui", "never", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "b.js")+"\n", out)
	assert.NotContains(t, menu, "All")
	assert.Contains(t, menu, "Invalid choice: '9'")
}

func TestPickPromptAborted(t *testing.T) {
	dir := testutils.CreateTestFilesWithDefault(t)

	_, _, err := execute(t, "", "pick", "-g", "*.js", "--print", "--tui", "never", dir)
	require.Error(t, err)
	assert.True(t, errors.IsPromptError(err))
}

func TestPickRejectsFlags(t *testing.T) {
	dir := testutils.CreateTestFilesWithDefault(t)

	_, _, err := execute(t, "", "pick", "-g", "*.js", "--tui", "sometimes", dir)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))

	_, _, err = execute(t, "", "pick", "-g", "*.js", "--single", "prompt", "--print", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidStrategy))

	_, _, err = execute(t, "", "pick", "-g", "*.js", "--multi", "bogus", dir)
	require.Error(t, err)
}

func TestPickRejectsBlankExec(t *testing.T) {
	dir := testutils.CreateTestFilesWithDefault(t)

	var err error
	require.NotPanics(t, func() {
		_, _, err = execute(t, "", "pick", "-g", "README.md", "--exec", "   ", dir)
	})
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, errors.MissingHandler, cfgErr.Kind())
	assert.Equal(t, "exec", cfgErr.Param())
}

func TestLogFile(t *testing.T) {
	dir := testutils.CreateTestFilesWithDefault(t)
	logFile := filepath.Join(t.TempDir(), "logs", "files-provider.log")

	_, _, err := execute(t, "", "--debug", "--log-file", logFile, "list", "-g", "*.md", dir)
	require.NoError(t, err)
	t.Cleanup(func() { log.SetDebug(false) })

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "level=debug")
}
