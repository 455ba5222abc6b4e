package caching

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/llm-doc-digest/models"
)

func TestCache_SetGet(t *testing.T) {
	c, err := NewCache(filepath.Join(t.TempDir(), "nested", "cache"), time.Hour)
	require.NoError(t, err)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	require.NoError(t, c.Set("key", []byte("value")))
	data, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, []byte("value"), data)
}

func TestCache_Expiry(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Minute)
	require.NoError(t, err)
	require.NoError(t, c.Set("key", []byte("value")))

	old := time.Now().Add(-2 * time.Minute)
	require.NoError(t, os.Chtimes(filepath.Join(c.path, c.key("key")), old, old))

	_, ok := c.Get("key")
	assert.False(t, ok)
}

func TestCache_NoTTLNeverExpires(t *testing.T) {
	c, err := NewCache(t.TempDir(), 0)
	require.NoError(t, err)
	require.NoError(t, c.Set("key", []byte("value")))

	old := time.Now().Add(-24 * 365 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(c.path, c.key("key")), old, old))

	_, ok := c.Get("key")
	assert.True(t, ok)
}

func TestCache_Document(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)

	doc := models.Document{
		Path:       "a.pdf",
		Format:     "pdf",
		TotalPages: 3,
		Pages: []models.PageText{
			{PageNumber: 1, Text: "First.", TotalPages: 3},
			{PageNumber: 3, Text: "Third.", TotalPages: 3},
		},
	}
	require.NoError(t, c.SetDocument("abc123", doc))

	got, ok := c.GetDocument("abc123")
	require.True(t, ok)
	assert.Equal(t, doc, got)

	require.NoError(t, c.Set("corrupt", []byte("{not json")))
	_, ok = c.GetDocument("corrupt")
	assert.False(t, ok)
}
