package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/apptloom-cli/internal/parser"
)

const header = "icb_ons_code,appointment_month,appointment_status,appointment_mode,hcp_type,time_between_book_and_appointment,count_of_appointments"

func writeFile(t *testing.T, name string, lines ...string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(strings.Join(lines, "\n")), 0o644))
	return p
}

func TestLoadAppointments(t *testing.T) {
	p := writeFile(t, "appointments_regional.csv",
		header,
		"E54000050,2021-08,Attended,Face-to-Face,GP,Same Day,1200",
		" E54000050 ,2021-08-17,DNA,Telephone,Other Practice staff,2 to 7 Days,35",
	)
	recs, err := LoadAppointments(p, LoadOptions{})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, Record{
		RegionCode:       "E54000050",
		Month:            time.Date(2021, 8, 1, 0, 0, 0, 0, time.UTC),
		Status:           "Attended",
		Mode:             "Face-to-Face",
		ProfessionalType: "GP",
		LeadTimeBucket:   "Same Day",
		Count:            1200,
	}, recs[0])
	assert.Equal(t, "E54000050", recs[1].RegionCode)
	// day is kept; monthly bucketing happens in aggregation
	assert.Equal(t, 17, recs[1].Month.Day())
}

func TestLoadAppointmentsQuotedThousands(t *testing.T) {
	p := writeFile(t, "a.csv",
		header,
		`E54000050,2021-08,Attended,Face-to-Face,GP,Same Day,"1,200"`,
	)
	recs, err := LoadAppointments(p, LoadOptions{})
	require.NoError(t, err)
	assert.EqualValues(t, 1200, recs[0].Count)
}

func TestLoadAppointmentsMissingColumn(t *testing.T) {
	p := writeFile(t, "a.csv",
		"icb_ons_code,appointment_month,count_of_appointments",
		"E54000050,2021-08,10",
	)
	_, err := LoadAppointments(p, LoadOptions{})
	var se *SchemaError
	require.True(t, errors.As(err, &se), "want SchemaError, got %v", err)
	assert.Equal(t, "appointment_status", se.Column)
	assert.Equal(t, "a.csv", se.Source)
	assert.Contains(t, se.Error(), "available: icb_ons_code, appointment_month, count_of_appointments")
}

func TestLoadAppointmentsColumnOverrides(t *testing.T) {
	p := writeFile(t, "a.csv",
		"region,month,status,mode,hcp,lead,n",
		"R1,2022-01,DNA,Video,GP,1 Day,4",
	)
	cols := Columns{Region: "region", Month: "month", Status: "status", Mode: "mode", Professional: "hcp", LeadTime: "lead", Count: "n"}
	recs, err := LoadAppointments(p, LoadOptions{Columns: cols})
	require.NoError(t, err)
	assert.EqualValues(t, 4, recs[0].Count)
	assert.Equal(t, "Video", recs[0].Mode)
}

func TestLoadAppointmentsRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		row    string
		column string
	}{
		{"unparseable date", "E1,not-a-date,DNA,Video,GP,1 Day,4", "appointment_month"},
		{"empty date", "E1,,DNA,Video,GP,1 Day,4", "appointment_month"},
		{"negative count", "E1,2022-01,DNA,Video,GP,1 Day,-4", "count_of_appointments"},
		{"fractional count", "E1,2022-01,DNA,Video,GP,1 Day,4.5", "count_of_appointments"},
		{"empty count", "E1,2022-01,DNA,Video,GP,1 Day,", "count_of_appointments"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := writeFile(t, "a.csv", header, "E1,2022-01,DNA,Video,GP,1 Day,1", tc.row)
			recs, err := LoadAppointments(p, LoadOptions{})
			assert.Nil(t, recs)
			var de *DataFormatError
			require.True(t, errors.As(err, &de), "want DataFormatError, got %v", err)
			assert.Equal(t, 2, de.Row)
			assert.Equal(t, tc.column, de.Column)
		})
	}
}

func TestParseDateLayouts(t *testing.T) {
	want := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2021-03", "2021-03-01", "2021/03/01", "01/03/2021", "Mar-21", "Mar 2021", "March 2021", "2021-03-01T00:00:00Z"} {
		got, ok := ParseDate(in)
		if assert.True(t, ok, in) {
			assert.True(t, want.Equal(got), "%s -> %v", in, got)
		}
	}
	_, ok := ParseDate("2021-13")
	assert.False(t, ok)
}

func TestLoadLookupResolves(t *testing.T) {
	p := writeFile(t, "NHS_England_Regions.csv",
		"FID,ICB Code,ICB Name",
		"1,E54000050,NHS North East and North Cumbria ICB",
		"2,E54000050,Duplicate Name",
		"3,E54000051,",
	)
	l, err := LoadLookup(p, parser.Options{})
	require.NoError(t, err)
	assert.Empty(t, l.Degraded)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 1, l.Duplicates)
	assert.Equal(t, "NHS North East and North Cumbria ICB", l.Resolve("E54000050"))
	// blank name and unknown code fall back to the raw code
	assert.Equal(t, "E54000051", l.Resolve("E54000051"))
	assert.Equal(t, "E99999999", l.Resolve("E99999999"))
}

func TestLoadLookupDegradedModes(t *testing.T) {
	malformed := writeFile(t, "lookup.csv", "code,name_only", "E54000050,North East")
	onlyOne := writeFile(t, "lookup2.csv", "ICB Code,Region", "E54000050,North East")

	cases := map[string]string{
		"empty path":      "",
		"missing file":    filepath.Join(t.TempDir(), "absent.csv"),
		"wrong columns":   malformed,
		"one column only": onlyOne,
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			l, err := LoadLookup(path, parser.Options{})
			require.NoError(t, err)
			assert.NotEmpty(t, l.Degraded)
			for _, code := range []string{"E54000050", "", "x"} {
				assert.Equal(t, code, l.Resolve(code))
			}
		})
	}
}

func TestLookupCustomColumns(t *testing.T) {
	p := writeFile(t, "l.csv", "id,label", "A,Alpha")
	l, err := LoadLookup(p, parser.Options{}, ColumnPair{Code: "id", Name: "label"})
	require.NoError(t, err)
	assert.Equal(t, "Alpha", l.Resolve("A"))

	var nilLookup *Lookup
	assert.Equal(t, "A", nilLookup.Resolve("A"))
}

func TestLoadTexts(t *testing.T) {
	p := writeFile(t, "tweets.csv",
		"tweet_id,tweet_full_text",
		"1,Great care today #NHS",
		"2,",
	)
	src, err := LoadTexts(p, "", parser.Options{})
	require.NoError(t, err)
	assert.Empty(t, src.Notice)
	assert.Equal(t, []string{"Great care today #NHS", ""}, src.Texts)

	degraded, err := LoadTexts(p, "body", parser.Options{})
	require.NoError(t, err)
	assert.Empty(t, degraded.Texts)
	assert.Contains(t, degraded.Notice, `no text column "body"`)
}
