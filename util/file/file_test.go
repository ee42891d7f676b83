package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	assert.True(t, FileExists(path))
	assert.False(t, FileExists(filepath.Join(dir, "missing.json")))
	assert.False(t, FileExists(dir))

	// stat errors other than NotExist, here a file used as a directory
	assert.False(t, FileExists(filepath.Join(path, "child")))
}

func TestLoadConfigReadsYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := "algorithm: pow\nrounds: 5\nseed: 123\nnodeCount: 3\nstakes: [10, 20, 30]\noutPath: out\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config := LoadConfig(path)
	assert.Equal(t, "pow", config.Algorithm())
	assert.Equal(t, 5, config.Rounds())
	assert.Equal(t, uint64(123), config.Seed())
	assert.Equal(t, []float64{10, 20, 30}, config.Stakes())
	assert.Equal(t, "out", config.OutPath())
}
