package sweep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "configs.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTable_SkipsHeaderAndBlanks(t *testing.T) {
	path := writeTable(t, "chunk compr shuffle scale level\n"+
		"1,512,512 gzip 0 0 4\n"+
		"\n"+
		"none lzf 0 0 0\n")

	rows, err := LoadTable(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, []string{"1,512,512", "gzip", "0", "0", "4"}, rows[0].Fields)
	assert.Equal(t, 2, rows[1].Index)
	assert.Equal(t, "lzf", rows[1].Field(2))
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigLoad)
}

func TestLoadTable_HeaderOnly(t *testing.T) {
	path := writeTable(t, "chunk compr shuffle scale level\n")
	_, err := LoadTable(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigLoad)
}

func TestConfigRow_FieldOutOfRange(t *testing.T) {
	row := ConfigRow{Index: 1, Fields: []string{"none", "gzip"}}

	assert.Equal(t, "none", row.Field(1))
	assert.Equal(t, "gzip", row.Field(2))
	// A malformed short row renders blank cells, never a crash.
	assert.Equal(t, "", row.Field(5))
	assert.Equal(t, "", row.Field(0))
	assert.Equal(t, "", row.Field(-1))
}
