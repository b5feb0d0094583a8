// Package analysis groups appointment records into summary tables, ranks
// them and attaches display names from a lookup.
package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/KaramelBytes/apptloom-cli/internal/dataset"
)

// Dimension names a grouping key of a Record.
type Dimension string

const (
	Region       Dimension = "region_code"
	Month        Dimension = "month"
	Status       Dimension = "status"
	Mode         Dimension = "mode"
	Professional Dimension = "professional_type"
	LeadTime     Dimension = "lead_time_bucket"
	// Season is derived from Month: Dec-Feb Winter, Mar-May Spring,
	// Jun-Aug Summer, Sep-Nov Autumn.
	Season Dimension = "season"
)

var dimensionAliases = map[string]Dimension{
	"region_code":                       Region,
	"region":                            Region,
	"icb":                               Region,
	"icb_ons_code":                      Region,
	"month":                             Month,
	"appointment_month":                 Month,
	"status":                            Status,
	"appointment_status":                Status,
	"mode":                              Mode,
	"appointment_mode":                  Mode,
	"professional_type":                 Professional,
	"hcp_type":                          Professional,
	"lead_time_bucket":                  LeadTime,
	"lead_time":                         LeadTime,
	"time_between_book_and_appointment": LeadTime,
	"season":                            Season,
}

// ParseDimension accepts canonical dimension names and the source column
// names they come from.
func ParseDimension(s string) (Dimension, error) {
	if d, ok := dimensionAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d, nil
	}
	return "", fmt.Errorf("unknown dimension: %q", s)
}

// ParseDimensions parses a list, rejecting duplicates.
func ParseDimensions(in []string) ([]Dimension, error) {
	out := make([]Dimension, 0, len(in))
	seen := map[Dimension]bool{}
	for _, s := range in {
		d, err := ParseDimension(s)
		if err != nil {
			return nil, err
		}
		if seen[d] {
			return nil, fmt.Errorf("duplicate dimension: %q", d)
		}
		seen[d] = true
		out = append(out, d)
	}
	return out, nil
}

// Bucket is the time-bucketing policy applied to the Month dimension.
type Bucket int

const (
	// BucketNone keys months by the exact parsed date.
	BucketNone Bucket = iota
	// BucketMonth truncates dates to the first day of their calendar month.
	BucketMonth
)

// ParseBucket accepts "", "none", "day" and "month".
func ParseBucket(s string) (Bucket, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "day":
		return BucketNone, nil
	case "month", "monthly":
		return BucketMonth, nil
	}
	return BucketNone, fmt.Errorf("unknown bucket: %q (use none|month)", s)
}

func (b Bucket) String() string {
	if b == BucketMonth {
		return "month"
	}
	return "none"
}

func (b Bucket) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *Bucket) UnmarshalText(text []byte) error {
	v, err := ParseBucket(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Truncate applies the policy to t.
func (b Bucket) Truncate(t time.Time) time.Time {
	if b == BucketMonth {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return t
}

const dateKey = "2006-01-02"

// SeasonOf maps a date to its meteorological season.
func SeasonOf(t time.Time) string {
	switch int(t.Month())%12/3 + 1 {
	case 1:
		return "Winter"
	case 2:
		return "Spring"
	case 3:
		return "Summer"
	default:
		return "Autumn"
	}
}

// Value returns the key of r along d under bucketing policy b. Month keys are
// ISO dates so that string order is chronological.
func (d Dimension) Value(r dataset.Record, b Bucket) string {
	switch d {
	case Region:
		return r.RegionCode
	case Month:
		return b.Truncate(r.Month).Format(dateKey)
	case Status:
		return r.Status
	case Mode:
		return r.Mode
	case Professional:
		return r.ProfessionalType
	case LeadTime:
		return r.LeadTimeBucket
	case Season:
		return SeasonOf(r.Month)
	}
	return ""
}

// Title is a human-readable column heading.
func (d Dimension) Title() string {
	switch d {
	case Region:
		return "Region"
	case Month:
		return "Month"
	case Status:
		return "Status"
	case Mode:
		return "Mode"
	case Professional:
		return "Professional type"
	case LeadTime:
		return "Lead time"
	case Season:
		return "Season"
	}
	return string(d)
}
