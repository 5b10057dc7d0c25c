package validation

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/config"
)

func TestDatasetValidator_ValidateDatasets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chicago.csv"), []byte("Start Time\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nyc.csv"), 0755))

	v := NewDatasetValidator(slog.New(slog.NewTextHandler(io.Discard, nil)))
	statuses := v.ValidateDatasets(config.DatasetsConfig{
		DataDir: dir,
		Files: map[string]string{
			"chicago":       "chicago.csv",
			"new york city": "nyc.csv",
			"washington":    "washington.csv",
			"notes":         "notes.txt",
		},
	})

	require.Len(t, statuses, 4)

	byRegion := map[string]DatasetStatus{}
	for _, s := range statuses {
		byRegion[s.Region] = s
	}

	assert.True(t, byRegion["chicago"].Ready)
	assert.Equal(t, filepath.Join(dir, "chicago.csv"), byRegion["chicago"].Path)

	assert.False(t, byRegion["new york city"].Ready)
	assert.Contains(t, byRegion["new york city"].Error, "is a directory")

	assert.False(t, byRegion["washington"].Ready)
	assert.Contains(t, byRegion["washington"].Error, "does not exist")

	assert.False(t, byRegion["notes"].Ready)
	assert.Contains(t, byRegion["notes"].Error, "unsupported extension")

	assert.Equal(t, "chicago", statuses[0].Region)
}
