package analysis

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/apptloom-cli/internal/dataset"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func fixture() []dataset.Record {
	return []dataset.Record{
		{RegionCode: "E54000050", Month: day(2021, 8, 1), Status: "Attended", Mode: "Face-to-Face", ProfessionalType: "GP", LeadTimeBucket: "Same Day", Count: 100},
		{RegionCode: "E54000050", Month: day(2021, 8, 15), Status: "DNA", Mode: "Telephone", ProfessionalType: "GP", LeadTimeBucket: "1 Day", Count: 10},
		{RegionCode: "E54000051", Month: day(2021, 9, 1), Status: "Attended", Mode: "Telephone", ProfessionalType: "Other Practice staff", LeadTimeBucket: "Same Day", Count: 60},
		{RegionCode: "E54000051", Month: day(2021, 12, 1), Status: "DNA", Mode: "Face-to-Face", ProfessionalType: "GP", LeadTimeBucket: "2 to 7 Days", Count: 40},
		{RegionCode: "E54000052", Month: day(2022, 1, 1), Status: "Unknown", Mode: "Video", ProfessionalType: "GP", LeadTimeBucket: "Same Day", Count: 110},
		{RegionCode: "E54000053", Month: day(2022, 3, 1), Status: "Attended", Mode: "Video", ProfessionalType: "GP", LeadTimeBucket: "Same Day", Count: 0},
	}
}

func TestAggregateByRegion(t *testing.T) {
	got := Aggregate(fixture(), Query{GroupBy: []Dimension{Region}})
	want := []SummaryRow{
		{Keys: []string{"E54000050"}, Count: 110},
		{Keys: []string{"E54000051"}, Count: 100},
		{Keys: []string{"E54000052"}, Count: 110},
		{Keys: []string{"E54000053"}, Count: 0},
	}
	if diff := cmp.Diff(want, got.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []Dimension{Region}, got.GroupBy)
}

func TestAggregateConservesCounts(t *testing.T) {
	recs := fixture()
	for _, q := range []Query{
		{GroupBy: []Dimension{Region}},
		{GroupBy: []Dimension{Month, Mode}, Bucket: BucketMonth},
		{GroupBy: []Dimension{Status, Professional, LeadTime}},
		{GroupBy: []Dimension{Season}},
		{GroupBy: []Dimension{Region}, Where: []Condition{{Dimension: Status, Value: "DNA"}}},
	} {
		tbl := Aggregate(recs, q)
		for _, row := range tbl.Rows {
			var want int64
			for _, r := range recs {
				if !q.Match(r) {
					continue
				}
				match := true
				for i, d := range q.GroupBy {
					if d.Value(r, q.Bucket) != row.Keys[i] {
						match = false
					}
				}
				if match {
					want += r.Count
				}
			}
			assert.Equal(t, want, row.Count, "group %v", row.Keys)
		}
		var total int64
		for _, r := range recs {
			if q.Match(r) {
				total += r.Count
			}
		}
		assert.Equal(t, total, tbl.Total())
	}
}

func TestAggregateMonthBucketing(t *testing.T) {
	exact := Aggregate(fixture(), Query{GroupBy: []Dimension{Month}})
	monthly := Aggregate(fixture(), Query{GroupBy: []Dimension{Month}, Bucket: BucketMonth})
	assert.Len(t, exact.Rows, 6)
	require.Len(t, monthly.Rows, 5)
	assert.Equal(t, SummaryRow{Keys: []string{"2021-08-01"}, Count: 110}, monthly.Rows[0])
	assert.Equal(t, BucketMonth, monthly.Bucket)
}

func TestAggregateWhereDNA(t *testing.T) {
	got := Aggregate(fixture(), Query{
		GroupBy: []Dimension{Month},
		Bucket:  BucketMonth,
		Where:   []Condition{{Dimension: Status, Value: "DNA"}},
	})
	want := []SummaryRow{
		{Keys: []string{"2021-08-01"}, Count: 10},
		{Keys: []string{"2021-12-01"}, Count: 40},
	}
	if diff := cmp.Diff(want, got.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateSeason(t *testing.T) {
	got := Aggregate(fixture(), Query{GroupBy: []Dimension{Season}})
	counts := map[string]int64{}
	for _, r := range got.Rows {
		counts[r.Keys[0]] = r.Count
	}
	assert.Equal(t, map[string]int64{"Summer": 110, "Autumn": 60, "Winter": 150, "Spring": 0}, counts)
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil, Query{GroupBy: []Dimension{Region}})
	assert.NotNil(t, got.Rows)
	assert.Empty(t, got.Rows)
	assert.Empty(t, Rank(got, 5).Rows)
	assert.Empty(t, Enrich(got, Region, nil).Rows)
}

func TestRankTopN(t *testing.T) {
	all := Aggregate(fixture(), Query{GroupBy: []Dimension{Region}})
	top := Rank(all, 2)
	want := []SummaryRow{
		{Keys: []string{"E54000050"}, Count: 110},
		{Keys: []string{"E54000052"}, Count: 110},
	}
	if diff := cmp.Diff(want, top.Rows); diff != "" {
		t.Fatalf("rank mismatch (-want +got):\n%s", diff)
	}
	// input untouched
	assert.Equal(t, "E54000051", all.Rows[1].Keys[0])

	full := Rank(all, 0)
	require.Len(t, full.Rows, len(all.Rows))
	for i := 1; i < len(full.Rows); i++ {
		assert.GreaterOrEqual(t, full.Rows[i-1].Count, full.Rows[i].Count)
	}
	for _, r := range Rank(all, 3).Rows {
		assert.Contains(t, all.Rows, r)
	}
	assert.Len(t, Rank(all, 10).Rows, 4)
}

func TestRankTieBreakUsesEveryKey(t *testing.T) {
	tbl := Table{GroupBy: []Dimension{Month, Mode}, Rows: []SummaryRow{
		{Keys: []string{"2021-09-01", "Video"}, Count: 5},
		{Keys: []string{"2021-08-01", "Video"}, Count: 5},
		{Keys: []string{"2021-08-01", "Telephone"}, Count: 5},
		{Keys: []string{"2021-07-01", "Video"}, Count: 9},
	}}
	got := Rank(tbl, 0)
	var keys []string
	for _, r := range got.Rows {
		keys = append(keys, strings.Join(r.Keys, "/"))
	}
	assert.Equal(t, []string{"2021-07-01/Video", "2021-08-01/Telephone", "2021-08-01/Video", "2021-09-01/Video"}, keys)
}

func TestEnrichPreservesRows(t *testing.T) {
	tbl := Aggregate(fixture(), Query{GroupBy: []Dimension{Region}})
	names := map[string]string{"E54000050": "NHS North East and North Cumbria ICB", "E54000052": ""}
	resolve := func(code string) string {
		if n, ok := names[code]; ok {
			return n
		}
		return code
	}
	got := Enrich(tbl, Region, resolve)
	require.Len(t, got.Rows, len(tbl.Rows))
	assert.Equal(t, "NHS North East and North Cumbria ICB", got.Rows[0].DisplayName)
	assert.Equal(t, "E54000051", got.Rows[1].DisplayName)
	// empty resolver result never leaks through
	assert.Equal(t, "E54000052", got.Rows[2].DisplayName)
	for i := range tbl.Rows {
		assert.Equal(t, tbl.Rows[i].Keys, got.Rows[i].Keys)
		assert.Equal(t, tbl.Rows[i].Count, got.Rows[i].Count)
		assert.Empty(t, tbl.Rows[i].DisplayName)
	}
}

func TestEnrichIdentityMatchesNoLookup(t *testing.T) {
	tbl := Aggregate(fixture(), Query{GroupBy: []Dimension{Month, Region}, Bucket: BucketMonth})
	lookup := dataset.Identity("missing")
	a := Enrich(tbl, Region, lookup.Resolve)
	b := Enrich(tbl, Region, Identity)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("identity mismatch (-lookup +identity):\n%s", diff)
	}
	for _, r := range a.Rows {
		assert.Equal(t, r.Keys[1], r.DisplayName)
	}

	byMissing := Enrich(tbl, Status, Identity)
	assert.Equal(t, "2021-08-01 | E54000050", byMissing.Rows[0].DisplayName)
}

func TestParseHelpers(t *testing.T) {
	d, err := ParseDimension(" HCP_TYPE ")
	require.NoError(t, err)
	assert.Equal(t, Professional, d)
	_, err = ParseDimension("weather")
	assert.Error(t, err)

	_, err = ParseDimensions([]string{"region", "icb"})
	assert.Error(t, err)

	c, err := ParseCondition("appointment_status= DNA")
	require.NoError(t, err)
	assert.Equal(t, Condition{Dimension: Status, Value: "DNA"}, c)
	_, err = ParseCondition("status")
	assert.Error(t, err)

	b, err := ParseBucket("Month")
	require.NoError(t, err)
	assert.Equal(t, BucketMonth, b)
	_, err = ParseBucket("week")
	assert.Error(t, err)
}

func TestTableMarkdown(t *testing.T) {
	tbl := Rank(Aggregate(fixture(), Query{GroupBy: []Dimension{Region}, Where: []Condition{{Dimension: Status, Value: "DNA"}}}), 10)
	tbl.Name = "missed-by-region"
	tbl.Title = "Top 10 Regions by Missed Appointments"
	md := Enrich(tbl, Region, func(code string) string {
		if code == "E54000051" {
			return "NHS Cumbria | Lancs"
		}
		return code
	}).Markdown()

	assert.Contains(t, md, "[TOP 10 REGIONS BY MISSED APPOINTMENTS]")
	assert.Contains(t, md, "where status=DNA; groups 2; total 50")
	assert.Contains(t, md, "| Region | Name | Count |")
	assert.Contains(t, md, "| E54000051 | NHS Cumbria / Lancs | 40 |")

	empty := Table{Name: "empty", GroupBy: []Dimension{Region}}.Markdown()
	assert.Contains(t, empty, "(no rows)")
}
