package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(fn, []byte(content), 0o644))
	return fn
}

func TestLoad(t *testing.T) {
	fn := writeCorpus(t, "0 0:2 2:1\n1 1:3 2:1\n")

	m, err := Load(fn)
	require.NoError(t, err)

	rows, cols := m.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, 2.0, m.At(0, 0))
	assert.Equal(t, 1.0, m.At(0, 2))
	assert.Equal(t, 3.0, m.At(1, 1))
	assert.Equal(t, 1.0, m.At(1, 2))
	assert.Equal(t, 0.0, m.At(0, 1))
}

func TestLoadAccumulatesRepeatedWords(t *testing.T) {
	fn := writeCorpus(t, "0 1:2 1:3\n")

	m, err := Load(fn)
	require.NoError(t, err)
	assert.Equal(t, 5.0, m.At(0, 1))
}

func TestLoadSkipsBadLines(t *testing.T) {
	fn := writeCorpus(t, "garbage\n0 0:1 broken 2:4\nx 1:1\n")

	m, err := Load(fn)
	require.NoError(t, err)

	rows, cols := m.Dims()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, 1.0, m.At(0, 0))
	assert.Equal(t, 4.0, m.At(0, 2))
}

func TestLoadEmptyCorpus(t *testing.T) {
	fn := writeCorpus(t, "\n")

	_, err := Load(fn)
	assert.Error(t, err)
}

func TestRowTokenCounts(t *testing.T) {
	fn := writeCorpus(t, "0 0:2 2:1\n1 1:3\n")

	m, err := Load(fn)
	require.NoError(t, err)

	assert.Equal(t, []float64{3, 3}, RowTokenCounts(m))
}
