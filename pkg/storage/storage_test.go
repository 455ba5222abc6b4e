package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportPath(t *testing.T) {
	assert.Equal(t, "abcdef01-manual.yaml", ReportPath("docs/manual.pdf", "abcdef0123456789", "yaml"))
	assert.Equal(t, "abc-manual.json", ReportPath("manual.pdf", "abc", "json"))
	assert.Equal(t, "manual.yaml", ReportPath("/x/manual.pdf", "", "yaml"))
}

func TestStorage_SaveAndRead(t *testing.T) {
	s := &Storage{BaseDir: t.TempDir()}

	require.NoError(t, s.SaveFile(filepath.Join("reports", "2026", "a.yaml"), []byte("method: lsa\n")))

	data, err := s.ReadFile(filepath.Join("reports", "2026", "a.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "method: lsa\n", string(data))

	stats, err := s.GetFileStats(filepath.Join(s.BaseDir, "reports", "2026", "a.yaml"))
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.SizeBytes)
}

func TestStorage_ReadMissing(t *testing.T) {
	s := &Storage{BaseDir: t.TempDir()}
	_, err := s.ReadFile("nope.yaml")
	assert.Error(t, err)
}
