package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Storage writes report files under a base directory.
type Storage struct {
	BaseDir string
}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

// SaveFile writes content to filePath, creating parent directories.
// Relative paths are resolved against BaseDir.
func (s *Storage) SaveFile(filePath string, content []byte) error {
	filePath = s.resolve(filePath)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}

// ReadFile reads filePath, resolved like SaveFile.
func (s *Storage) ReadFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(s.resolve(filePath))
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return data, nil
}

// GetFileStats returns metadata about a file using os.Stat.
func (s *Storage) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %w", err)
	}

	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}

// ReportPath names the report of a source document: its base name with the
// extension replaced, prefixed by a short content hash so that documents
// with the same name in different folders do not collide.
func ReportPath(sourcePath, contentHash, ext string) string {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	if len(contentHash) > 8 {
		contentHash = contentHash[:8]
	}
	if contentHash != "" {
		base = contentHash + "-" + base
	}
	return base + "." + ext
}

func (s *Storage) resolve(filePath string) string {
	if s.BaseDir == "" || filepath.IsAbs(filePath) {
		return filePath
	}
	return filepath.Join(s.BaseDir, filePath)
}
