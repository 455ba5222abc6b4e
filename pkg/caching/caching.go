package caching

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dtnitsch/llm-doc-digest/models"
)

// Cache provides a simple file-based cache with a TTL.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates a new Cache instance.
// The cache path will be created if it doesn't exist. A ttl of zero or
// less keeps entries forever.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

// key generates a SHA256 hash of the cache key to use as a filename.
func (c *Cache) key(k string) string {
	hash := sha256.Sum256([]byte(k))
	return fmt.Sprintf("%x", hash)
}

// Get retrieves an item from the cache.
// It returns the data and true if the item is found and not expired.
func (c *Cache) Get(k string) ([]byte, bool) {
	filePath := filepath.Join(c.path, c.key(k))

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, false
	}

	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return nil, false // expired
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false
	}

	return data, true
}

// Set adds an item to the cache.
func (c *Cache) Set(k string, data []byte) error {
	filePath := filepath.Join(c.path, c.key(k))
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// GetDocument returns the extracted document stored under contentHash.
// An undecodable entry counts as a miss.
func (c *Cache) GetDocument(contentHash string) (models.Document, bool) {
	data, ok := c.Get(contentHash)
	if !ok {
		return models.Document{}, false
	}
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Document{}, false
	}
	return doc, true
}

// SetDocument stores an extracted document under contentHash.
func (c *Cache) SetDocument(contentHash string, doc models.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return c.Set(contentHash, data)
}
