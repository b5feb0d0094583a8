package parser_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/apptloom-cli/internal/parser"
)

func TestReadFileCSVPadsShortRows(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "appointments.csv")
	content := "\ufefficb_ons_code,appointment_month,count_of_appointments\n" +
		"E54000050,2021-08,120\n" +
		"E54000051,2021-09\n"
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	tbl, err := parser.ReadFile(p, parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, "appointments.csv", tbl.Name)
	assert.Equal(t, []string{"icb_ons_code", "appointment_month", "count_of_appointments"}, tbl.Header)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"E54000051", "2021-09", ""}, tbl.Rows[1])

	idx, ok := tbl.Index("  COUNT_of_appointments ")
	assert.True(t, ok)
	assert.Equal(t, 2, idx)
	_, ok = tbl.Index("missing")
	assert.False(t, ok)
}

func TestReadFileTSVAndLazyQuotes(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "tweets.tsv")
	content := "tweet_id\ttweet_full_text\n" +
		"1\tNurses say \"thank you\" #NHS\n"
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	tbl, err := parser.ReadFile(p, parser.Options{})
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, `Nurses say "thank you" #NHS`, tbl.Rows[0][1])
}

func TestReadFileEmptyCSV(t *testing.T) {
	p := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(p, nil, 0o644))

	tbl, err := parser.ReadFile(p, parser.Options{})
	require.NoError(t, err)
	assert.Empty(t, tbl.Header)
	assert.Empty(t, tbl.Rows)
}

func TestReadFileUnsupported(t *testing.T) {
	p := filepath.Join(t.TempDir(), "notes.docx")
	require.NoError(t, os.WriteFile(p, []byte("hello"), 0o644))

	_, err := parser.ReadFile(p, parser.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrUnsupported))
}

func TestReadTextLines(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tweets.txt")
	require.NoError(t, os.WriteFile(p, []byte("first #NHS post\r\n\n  second post  \n"), 0o644))

	tbl, err := parser.ReadFile(p, parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{parser.LineColumn}, tbl.Header)
	assert.Equal(t, [][]string{{"first #NHS post"}, {"second post"}}, tbl.Rows)
}

func TestReadFileMissing(t *testing.T) {
	_, err := parser.ReadFile(filepath.Join(t.TempDir(), "nope.csv"), parser.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), "Notes"))
	require.NoError(t, f.SetCellValue("Notes", "A1", "ignored"))
	_, err := f.NewSheet("Data")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Data", "A1", &[]interface{}{"ICB Code", "ICB Name"}))
	require.NoError(t, f.SetSheetRow("Data", "A2", &[]interface{}{"E54000050", "NHS North East and North Cumbria"}))
	require.NoError(t, f.SetSheetRow("Data", "A4", &[]interface{}{"E54000051"}))
	path := filepath.Join(t.TempDir(), "lookup.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadFileXLSXSheetSelection(t *testing.T) {
	path := writeWorkbook(t)

	byName, err := parser.ReadFile(path, parser.Options{SheetName: "data"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ICB Code", "ICB Name"}, byName.Header)
	// blank row 3 is skipped and row 4 padded
	require.Len(t, byName.Rows, 2)
	assert.Equal(t, []string{"E54000051", ""}, byName.Rows[1])

	byIndex, err := parser.ReadFile(path, parser.Options{SheetIndex: 2})
	require.NoError(t, err)
	assert.Equal(t, byName.Rows, byIndex.Rows)

	first, err := parser.ReadFile(path, parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"ignored"}, first.Header)

	_, err = parser.ReadFile(path, parser.Options{SheetName: "Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available sheets: Notes, Data")

	_, err = parser.ReadFile(path, parser.Options{SheetIndex: 5})
	require.Error(t, err)
}
