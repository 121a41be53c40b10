package docloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDir_ReadsRecognizedExtensions(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "faq.txt", "The warranty lasts two years.")
	write(t, dir, "notes.md", "Shipping is free above fifty euros.")
	write(t, dir, "image.png", "binary junk")

	docs, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	bySource := map[string]string{}
	for _, d := range docs {
		bySource[d.Source] = d.Text
	}
	assert.Equal(t, "The warranty lasts two years.", bySource["faq.txt"])
	assert.Equal(t, "Shipping is free above fifty euros.", bySource["notes.md"])
}

func TestLoadDir_SkipsBlankFiles(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "empty.txt", "   \n\t")

	docs, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLoadDir_SkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	write(t, dir, "faq.txt", "content")

	docs, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "faq.txt", docs[0].Source)
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
