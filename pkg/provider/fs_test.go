package provider_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thlorenz/files-provider/pkg/provider"
)

func TestWithFSFromOutsideModule(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/docs/guide.md", []byte("g"), 0o644))
	require.NoError(t, afero.WriteFile(mem, "/docs/logo.png", []byte("p"), 0o644))

	var fsys provider.FS = provider.NewAferoFS(mem)
	p, err := provider.New(
		provider.WithGlob("*.md"),
		provider.WithSingle(provider.Return),
		provider.WithMulti(provider.Return),
		provider.WithFS(fsys),
		provider.WithTimestamps(true),
	)
	require.NoError(t, err)

	got, err := p.FromDirectory("/docs")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "guide.md", got[0].Entry)
	assert.Len(t, got[0].Timestamp, provider.TimestampWidth)
}

func TestNewOSFS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, afero.WriteFile(afero.NewOsFs(), dir+"/a.js", []byte("a"), 0o644))

	p, err := provider.New(
		provider.WithRegex(`\.js$`),
		provider.WithSingle(provider.Return),
		provider.WithMulti(provider.Return),
		provider.WithFS(provider.NewOSFS()),
	)
	require.NoError(t, err)

	got, err := p.FromDirectory(dir)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a.js", got[0].Entry)
}
