package prompt

import (
	"fmt"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thlorenz/files-provider/internal/errors"
	"github.com/thlorenz/files-provider/internal/selection"
	"github.com/thlorenz/files-provider/pkg/types"
)

func TestFormOptions(t *testing.T) {
	menu := selection.Build([]types.File{
		{FullPath: "/w/a.js", Entry: "a.js", Timestamp: "2024-05-01T10:00:00"},
		{FullPath: "/w/b.js", Entry: "b.js"},
	}, true)

	opts := formOptions(menu.Entries())
	require.Len(t, opts, 3)
	assert.Equal(t, "1: a.js  2024-05-01T10:00:00", opts[0].Key)
	assert.Equal(t, "1", opts[0].Value)
	assert.Equal(t, "2: b.js", opts[1].Key)
	assert.Equal(t, "0: All", opts[2].Key)
	assert.Equal(t, selection.AllKey, opts[2].Value)
}

func TestFormHeight(t *testing.T) {
	assert.Equal(t, minFormHeight, formHeight(0))
	assert.Equal(t, 7, formHeight(5))
	assert.Equal(t, maxFormHeight, formHeight(100))
}

func TestFormError(t *testing.T) {
	aborted := formError(huh.ErrUserAborted)
	assert.True(t, errors.Is(aborted, errors.ErrPromptAborted))
	assert.True(t, errors.Is(aborted, huh.ErrUserAborted))

	failed := formError(fmt.Errorf("tty gone"))
	assert.True(t, errors.Is(failed, errors.ErrPromptFailed))
}

func TestFormRequiresValidator(t *testing.T) {
	_, err := NewForm().Prompt(types.PromptRequest{})
	assert.Equal(t, errors.Internal, errors.KindOf(err))
}
