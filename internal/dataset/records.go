// Package dataset loads appointment records, lookup tables and free-text
// records from tabular sources and validates them eagerly.
package dataset

import (
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/apptloom-cli/internal/parser"
)

// Record is one raw appointment row.
type Record struct {
	RegionCode       string    `json:"region_code"`
	Month            time.Time `json:"month"`
	Status           string    `json:"status"`
	Mode             string    `json:"mode"`
	ProfessionalType string    `json:"professional_type"`
	LeadTimeBucket   string    `json:"lead_time_bucket"`
	Count            int64     `json:"count"`
}

// Columns maps Record fields to source column names.
type Columns struct {
	Region       string
	Month        string
	Status       string
	Mode         string
	Professional string
	LeadTime     string
	Count        string
}

// DefaultColumns returns the column names used by the NHS regional
// appointments extract.
func DefaultColumns() Columns {
	return Columns{
		Region:       "icb_ons_code",
		Month:        "appointment_month",
		Status:       "appointment_status",
		Mode:         "appointment_mode",
		Professional: "hcp_type",
		LeadTime:     "time_between_book_and_appointment",
		Count:        "count_of_appointments",
	}
}

// WithDefaults fills empty names from DefaultColumns.
func (c Columns) WithDefaults() Columns {
	d := DefaultColumns()
	if c.Region == "" {
		c.Region = d.Region
	}
	if c.Month == "" {
		c.Month = d.Month
	}
	if c.Status == "" {
		c.Status = d.Status
	}
	if c.Mode == "" {
		c.Mode = d.Mode
	}
	if c.Professional == "" {
		c.Professional = d.Professional
	}
	if c.LeadTime == "" {
		c.LeadTime = d.LeadTime
	}
	if c.Count == "" {
		c.Count = d.Count
	}
	return c
}

// LoadOptions controls appointment loading.
type LoadOptions struct {
	Columns Columns
	Source  parser.Options
}

// LoadAppointments reads every row of the source at path. It fails with a
// *SchemaError when a required column is missing and a *DataFormatError when a
// date or count cell cannot be coerced.
func LoadAppointments(path string, opt LoadOptions) ([]Record, error) {
	t, err := parser.ReadFile(path, opt.Source)
	if err != nil {
		return nil, err
	}
	return RecordsFromTable(t, opt.Columns)
}

// RecordsFromTable converts an in-memory table to records. All columns are
// resolved before any row is read.
func RecordsFromTable(t *parser.Table, cols Columns) ([]Record, error) {
	cols = cols.WithDefaults()
	names := []string{cols.Region, cols.Month, cols.Status, cols.Mode, cols.Professional, cols.LeadTime, cols.Count}
	idx := make([]int, len(names))
	for i, name := range names {
		j, ok := t.Index(name)
		if !ok {
			return nil, &SchemaError{Source: t.Name, Column: name, Available: t.Columns()}
		}
		idx[i] = j
	}
	region, month, status, mode, hcp, lead, count := idx[0], idx[1], idx[2], idx[3], idx[4], idx[5], idx[6]

	out := make([]Record, 0, len(t.Rows))
	for n, row := range t.Rows {
		rawMonth := strings.TrimSpace(row[month])
		m, ok := ParseDate(rawMonth)
		if !ok {
			return nil, &DataFormatError{Source: t.Name, Row: n + 1, Column: cols.Month, Value: rawMonth, Reason: "unparseable date"}
		}
		rawCount := strings.TrimSpace(row[count])
		c, err := parseCount(rawCount)
		if err != nil {
			return nil, &DataFormatError{Source: t.Name, Row: n + 1, Column: cols.Count, Value: rawCount, Reason: "invalid appointment count", Err: err}
		}
		out = append(out, Record{
			RegionCode:       strings.TrimSpace(row[region]),
			Month:            m,
			Status:           strings.TrimSpace(row[status]),
			Mode:             strings.TrimSpace(row[mode]),
			ProfessionalType: strings.TrimSpace(row[hcp]),
			LeadTimeBucket:   strings.TrimSpace(row[lead]),
			Count:            c,
		})
	}
	return out, nil
}

var dateLayouts = []string{
	"2006-01", "2006-01-02", time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04",
	"2006/01/02", "2006/01", "02/01/2006", "Jan-06", "Jan 2006", "January 2006",
}

// ParseDate parses the date layouts seen in appointment extracts. Empty input
// is never a valid date.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseCount(s string) (int64, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, errNegativeCount
	}
	return v, nil
}
