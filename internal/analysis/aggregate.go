package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/apptloom-cli/internal/dataset"
)

// Condition keeps only records whose value along Dimension equals Value.
type Condition struct {
	Dimension Dimension `json:"dimension" yaml:"dimension"`
	Value     string    `json:"value" yaml:"value"`
}

// ParseCondition parses "dimension=value".
func ParseCondition(s string) (Condition, error) {
	k, v, ok := strings.Cut(s, "=")
	if !ok {
		return Condition{}, fmt.Errorf("invalid condition %q (want dimension=value)", s)
	}
	d, err := ParseDimension(k)
	if err != nil {
		return Condition{}, err
	}
	return Condition{Dimension: d, Value: strings.TrimSpace(v)}, nil
}

func (c Condition) String() string { return fmt.Sprintf("%s=%s", c.Dimension, c.Value) }

// Query describes one aggregation: filters, grouping dimensions and the
// bucketing policy for Month. The measure is always the appointment count.
type Query struct {
	GroupBy []Dimension
	Bucket  Bucket
	Where   []Condition
}

// SummaryRow is one group: its key values, aligned with the table's GroupBy,
// and the summed count.
type SummaryRow struct {
	Keys        []string `json:"keys" yaml:"keys"`
	Count       int64    `json:"count" yaml:"count"`
	DisplayName string   `json:"display_name,omitempty" yaml:"display_name,omitempty"`
}

// Label is the display name if one was resolved, otherwise the joined keys.
func (r SummaryRow) Label() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return strings.Join(r.Keys, " | ")
}

// Table is an immutable summary table. Operations return new tables.
type Table struct {
	Name    string       `json:"name" yaml:"name"`
	Title   string       `json:"title,omitempty" yaml:"title,omitempty"`
	GroupBy []Dimension  `json:"group_by" yaml:"group_by"`
	Bucket  Bucket       `json:"bucket" yaml:"bucket"`
	Where   []Condition  `json:"where,omitempty" yaml:"where,omitempty"`
	Rows    []SummaryRow `json:"rows" yaml:"rows"`
}

// Total sums the counts of all rows.
func (t Table) Total() int64 {
	var n int64
	for _, r := range t.Rows {
		n += r.Count
	}
	return n
}

// KeyIndex returns the position of d among the grouping dimensions.
func (t Table) KeyIndex(d Dimension) int {
	for i, g := range t.GroupBy {
		if g == d {
			return i
		}
	}
	return -1
}

func (t Table) withRows(rows []SummaryRow) Table {
	t.Rows = rows
	return t
}

// Match reports whether r passes every condition of q.
func (q Query) Match(r dataset.Record) bool {
	for _, c := range q.Where {
		if c.Dimension.Value(r, q.Bucket) != c.Value {
			return false
		}
	}
	return true
}

// Aggregate groups records by exact equality on every dimension of q.GroupBy
// and sums their counts. Rows come back in ascending key order. Empty input
// yields an empty table.
func Aggregate(records []dataset.Record, q Query) Table {
	t := Table{GroupBy: append([]Dimension(nil), q.GroupBy...), Bucket: q.Bucket, Where: append([]Condition(nil), q.Where...)}
	idx := map[string]int{}
	rows := []SummaryRow{}
	for _, r := range records {
		if !q.Match(r) {
			continue
		}
		keys := make([]string, len(q.GroupBy))
		for i, d := range q.GroupBy {
			keys[i] = d.Value(r, q.Bucket)
		}
		gkey := strings.Join(keys, "\x1f")
		i, ok := idx[gkey]
		if !ok {
			i = len(rows)
			idx[gkey] = i
			rows = append(rows, SummaryRow{Keys: keys})
		}
		rows[i].Count += r.Count
	}
	sort.Slice(rows, func(i, j int) bool { return compareKeys(rows[i].Keys, rows[j].Keys) < 0 })
	return t.withRows(rows)
}

// Rank orders rows by count descending, breaking ties by ascending key, and
// keeps at most limit rows when limit > 0.
func Rank(t Table, limit int) Table {
	rows := make([]SummaryRow, len(t.Rows))
	copy(rows, t.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Count == rows[j].Count {
			return compareKeys(rows[i].Keys, rows[j].Keys) < 0
		}
		return rows[i].Count > rows[j].Count
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return t.withRows(rows)
}

func compareKeys(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := strings.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}
