package pipeline

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/apptloom-cli/internal/analysis"
	"github.com/KaramelBytes/apptloom-cli/internal/config"
	"github.com/KaramelBytes/apptloom-cli/internal/dataset"
)

// View is a named summary table definition.
type View struct {
	Name  string
	Title string
	Query analysis.Query
	// Top keeps the N largest groups; 0 keeps all.
	Top int
	// Ranked orders rows by count even when Top is 0.
	Ranked bool
	// EnrichOn names the dimension joined against the lookup table; empty
	// skips enrichment.
	EnrichOn analysis.Dimension
}

// DefaultViews returns the dashboard views.
func DefaultViews() []View {
	dna := []analysis.Condition{{Dimension: analysis.Status, Value: "DNA"}}
	overTime := func(name, title string, d analysis.Dimension) View {
		return View{Name: name, Title: title, Query: analysis.Query{
			GroupBy: []analysis.Dimension{analysis.Month, d},
			Bucket:  analysis.BucketMonth,
		}}
	}
	return []View{
		{
			Name:     "icb-performance",
			Title:    "Top 20 Regions by Appointments",
			Query:    analysis.Query{GroupBy: []analysis.Dimension{analysis.Region}},
			Top:      20,
			EnrichOn: analysis.Region,
		},
		{
			Name:  "missed-monthly",
			Title: "Missed Appointments by Month",
			Query: analysis.Query{GroupBy: []analysis.Dimension{analysis.Month}, Bucket: analysis.BucketMonth, Where: dna},
		},
		{
			Name:     "missed-by-region",
			Title:    "Top 10 Regions by Missed Appointments",
			Query:    analysis.Query{GroupBy: []analysis.Dimension{analysis.Region}, Where: dna},
			Top:      10,
			EnrichOn: analysis.Region,
		},
		{
			Name:  "monthly-trend",
			Title: "Monthly Appointment Trend",
			Query: analysis.Query{GroupBy: []analysis.Dimension{analysis.Month}, Bucket: analysis.BucketMonth},
		},
		overTime("mode-over-time", "Appointment Mode over Time", analysis.Mode),
		overTime("status-over-time", "Appointment Status over Time", analysis.Status),
		overTime("hcp-over-time", "Healthcare Professional Type over Time", analysis.Professional),
		overTime("lead-time-over-time", "Booking Lead Time over Time", analysis.LeadTime),
		{
			Name:   "seasonal",
			Title:  "Appointments by Season",
			Query:  analysis.Query{GroupBy: []analysis.Dimension{analysis.Season}},
			Ranked: true,
		},
	}
}

// Validate checks that the view can be built.
func (v View) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("view name is required")
	}
	if len(v.Query.GroupBy) == 0 {
		return fmt.Errorf("view %s: group_by is empty", v.Name)
	}
	if v.Top < 0 {
		return fmt.Errorf("view %s: top must be >= 0", v.Name)
	}
	if v.EnrichOn != "" {
		found := false
		for _, d := range v.Query.GroupBy {
			if d == v.EnrichOn {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("view %s: enrich_on %q is not a grouping dimension", v.Name, v.EnrichOn)
		}
	}
	return nil
}

// Build computes the view's table over records.
func (v View) Build(records []dataset.Record, resolve analysis.Resolver) analysis.Table {
	t := analysis.Aggregate(records, v.Query)
	if v.Top > 0 || v.Ranked {
		t = analysis.Rank(t, v.Top)
	}
	if v.EnrichOn != "" {
		t = analysis.Enrich(t, v.EnrichOn, resolve)
	}
	t.Name = v.Name
	t.Title = v.Title
	return t
}

// ViewFromConfig parses a configured view.
func ViewFromConfig(c config.ViewConfig) (View, error) {
	groupBy, err := analysis.ParseDimensions(c.GroupBy)
	if err != nil {
		return View{}, fmt.Errorf("view %s: %w", c.Name, err)
	}
	bucket, err := analysis.ParseBucket(c.Bucket)
	if err != nil {
		return View{}, fmt.Errorf("view %s: %w", c.Name, err)
	}
	v := View{
		Name:   c.Name,
		Title:  c.Title,
		Query:  analysis.Query{GroupBy: groupBy, Bucket: bucket},
		Top:    c.Top,
		Ranked: c.Ranked,
	}
	for _, w := range c.Where {
		cond, err := analysis.ParseCondition(w)
		if err != nil {
			return View{}, fmt.Errorf("view %s: %w", c.Name, err)
		}
		v.Query.Where = append(v.Query.Where, cond)
	}
	if c.EnrichOn != "" {
		d, err := analysis.ParseDimension(c.EnrichOn)
		if err != nil {
			return View{}, fmt.Errorf("view %s: %w", c.Name, err)
		}
		v.EnrichOn = d
	}
	return v, v.Validate()
}
