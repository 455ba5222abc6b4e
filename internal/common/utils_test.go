package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentHash(t *testing.T) {
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		ContentHash(nil))
	assert.Len(t, ContentHash([]byte("hello")), 64)
}

func TestParseFileList(t *testing.T) {
	assert.Equal(t, []string{"a.pdf", "b.txt"}, ParseFileList(" a.pdf, ,b.txt ,"))
	assert.Empty(t, ParseFileList(""))
}

func TestSanitizePath(t *testing.T) {
	assert.Equal(t, "/tmp/a b.pdf", SanitizePath(` "/tmp/a b.pdf" `))
	assert.Equal(t, "x.txt", SanitizePath("`x.txt`"))
	assert.Equal(t, "y.txt", SanitizePath("'y.txt'"))
}

func TestSanitizeAndValidatePaths(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(good, []byte("text"), 0644))
	folder := filepath.Join(dir, "folder.txt")
	require.NoError(t, os.Mkdir(folder, 0755))
	missing := filepath.Join(dir, "missing.pdf")

	valid, invalid := SanitizeAndValidatePaths([]string{
		good,
		`"` + good + `"`,
		"  ",
		filepath.Join(dir, "slides.pptx"),
		missing,
		folder,
	})

	assert.Equal(t, []string{good}, valid)
	assert.Equal(t, map[string]string{
		"  ":                               "empty path",
		filepath.Join(dir, "slides.pptx"): "unsupported format",
		missing:                            "not found",
		folder:                             "not a regular file",
	}, invalid)
}
