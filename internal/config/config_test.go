package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTextColumn, c.TextColumn)
	assert.Equal(t, 20, c.HashtagTopN)
	assert.Equal(t, 200, c.WordcloudMaxWords)
	assert.Equal(t, "markdown", c.OutputFormat)
	assert.Empty(t, c.Views)
	assert.False(t, c.ReplaceStopwords)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `appointments_path: /data/regional.csv
hashtag_top_n: 5
stopwords: [nhs, gp]
columns:
  count: total
lookup_columns:
  - code: ICB Code
    name: ICB Name
views:
  - name: by-mode
    group_by: [mode]
    top: 3
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("APPTLOOM_OUTPUT_FORMAT", "json")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/regional.csv", c.AppointmentsPath)
	assert.Equal(t, 5, c.HashtagTopN)
	assert.Equal(t, []string{"nhs", "gp"}, c.Stopwords)
	assert.Equal(t, "total", c.Columns.Count)
	assert.Equal(t, []LookupColumnConfig{{Code: "ICB Code", Name: "ICB Name"}}, c.LookupColumns)
	require.Len(t, c.Views, 1)
	assert.Equal(t, ViewConfig{Name: "by-mode", GroupBy: []string{"mode"}, Top: 3}, c.Views[0])
	assert.Equal(t, "json", c.OutputFormat)
}

func TestValidate(t *testing.T) {
	ok := &Global{OutputFormat: "yaml"}
	assert.NoError(t, ok.Validate())

	bad := &Global{
		OutputFormat: "html",
		HashtagTopN:  -1,
		Views:        []ViewConfig{{GroupBy: []string{"region"}, Bucket: "week"}},
	}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output_format must be one of")
	assert.Contains(t, err.Error(), "hashtag_top_n must be >= 0")
	assert.Contains(t, err.Error(), "views[0].name is required")
	assert.Contains(t, err.Error(), "views[0].bucket")
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_format: pdf\n"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "invalid config")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := &Global{TweetsPath: "tweets.csv", TextColumn: "text", HashtagTopN: 7, OutputFormat: "markdown"}
	require.NoError(t, Save(c, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tweets.csv", got.TweetsPath)
	assert.Equal(t, "text", got.TextColumn)
	assert.Equal(t, 7, got.HashtagTopN)

	assert.Error(t, Save(&Global{OutputFormat: "csv"}, path))
}
