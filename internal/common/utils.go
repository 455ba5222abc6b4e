package common

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strings"

	"github.com/dtnitsch/llm-doc-digest/pkg/extractor"
)

// ContentHash computes SHA256 hash of content and returns hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// ParseFileList splits a comma separated --files value.
func ParseFileList(filesStr string) []string {
	var files []string
	for _, f := range strings.Split(filesStr, ",") {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	return files
}

// SanitizePath removes quotes and whitespace left over from copy-paste.
func SanitizePath(rawPath string) string {
	cleaned := strings.TrimSpace(rawPath)
	for _, quote := range []string{"\"", "'", "`"} {
		cleaned = strings.TrimPrefix(cleaned, quote)
		cleaned = strings.TrimSuffix(cleaned, quote)
	}
	return strings.TrimSpace(cleaned)
}

// SanitizeAndValidatePaths returns (usable paths, rejected paths with reason).
// A path is usable when it names a regular file with a supported extension.
func SanitizeAndValidatePaths(paths []string) ([]string, map[string]string) {
	valid := make([]string, 0, len(paths))
	invalid := make(map[string]string)

	seen := make(map[string]bool)
	for _, raw := range paths {
		cleaned := SanitizePath(raw)
		if cleaned == "" {
			invalid[raw] = "empty path"
			continue
		}
		if seen[cleaned] {
			continue
		}
		seen[cleaned] = true

		if _, err := extractor.FormatOf(cleaned); err != nil {
			invalid[raw] = "unsupported format"
			continue
		}
		info, err := os.Stat(cleaned)
		if err != nil {
			invalid[raw] = "not found"
			continue
		}
		if !info.Mode().IsRegular() {
			invalid[raw] = "not a regular file"
			continue
		}
		valid = append(valid, cleaned)
	}
	return valid, invalid
}
