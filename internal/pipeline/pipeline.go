// Package pipeline runs the appointment views and the text report over the
// configured inputs and collects them into a single Result.
package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KaramelBytes/apptloom-cli/internal/analysis"
	"github.com/KaramelBytes/apptloom-cli/internal/dataset"
	"github.com/KaramelBytes/apptloom-cli/internal/parser"
	"github.com/KaramelBytes/apptloom-cli/internal/textstats"
)

// ErrNoInputs is returned when neither an appointments nor a text source is set.
var ErrNoInputs = errors.New("no inputs configured (set appointments_path or tweets_path)")

// Options configures a Pipeline.
type Options struct {
	AppointmentsPath string
	LookupPath       string
	TweetsPath       string
	TextColumn       string

	Columns       dataset.Columns
	LookupColumns []dataset.ColumnPair
	// Source applies to the appointments table.
	Source parser.Options

	Views []View
	Text  textstats.Options
}

// Pipeline turns inputs into summary tables. It holds no state between runs.
type Pipeline struct {
	opt Options
	log *zap.Logger
	now func() time.Time
}

// New validates opt and returns a Pipeline. A nil logger discards logs.
func New(opt Options, log *zap.Logger) (*Pipeline, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opt.Views == nil {
		opt.Views = DefaultViews()
	}
	seen := map[string]bool{}
	for _, v := range opt.Views {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		if seen[v.Name] {
			return nil, fmt.Errorf("duplicate view name: %s", v.Name)
		}
		seen[v.Name] = true
	}
	opt.Columns = opt.Columns.WithDefaults()
	if opt.TextColumn == "" {
		opt.TextColumn = dataset.DefaultTextColumn
	}
	if opt.Text.Tokenizer.Stopwords == nil {
		opt.Text.Tokenizer.Stopwords = textstats.DefaultStopwords()
	}
	return &Pipeline{opt: opt, log: log, now: time.Now}, nil
}

// LookupStatus describes the lookup table used for enrichment.
type LookupStatus struct {
	Source     string `json:"source,omitempty" yaml:"source,omitempty"`
	Entries    int    `json:"entries" yaml:"entries"`
	Duplicates int    `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
	Degraded   string `json:"degraded,omitempty" yaml:"degraded,omitempty"`
}

// Result is the output of one run.
type Result struct {
	RunID       uuid.UUID         `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time         `json:"generated_at" yaml:"generated_at"`
	Records     int               `json:"records" yaml:"records"`
	Lookup      LookupStatus      `json:"lookup" yaml:"lookup"`
	Tables      []analysis.Table  `json:"tables" yaml:"tables"`
	Text        *textstats.Report `json:"text,omitempty" yaml:"text,omitempty"`
	Notices     []string          `json:"notices,omitempty" yaml:"notices,omitempty"`
}

// Table returns the table named name.
func (r *Result) Table(name string) (analysis.Table, bool) {
	for _, t := range r.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return analysis.Table{}, false
}

func (r *Result) notice(log *zap.Logger, msg string) {
	r.Notices = append(r.Notices, msg)
	log.Warn("degraded", zap.String("notice", msg))
}

// Run loads every input and builds all tables. Either the full result is
// returned or the first load error.
func (p *Pipeline) Run() (*Result, error) {
	if strings.TrimSpace(p.opt.AppointmentsPath) == "" && strings.TrimSpace(p.opt.TweetsPath) == "" {
		return nil, ErrNoInputs
	}
	res := &Result{RunID: uuid.New(), GeneratedAt: p.now().UTC(), Tables: []analysis.Table{}}
	log := p.log.With(zap.String("run_id", res.RunID.String()))

	if err := p.runAppointments(res, log); err != nil {
		return nil, err
	}
	if err := p.runText(res, log); err != nil {
		return nil, err
	}
	log.Info("run complete", zap.Int("tables", len(res.Tables)), zap.Int("notices", len(res.Notices)))
	return res, nil
}

func (p *Pipeline) runAppointments(res *Result, log *zap.Logger) error {
	if strings.TrimSpace(p.opt.AppointmentsPath) == "" {
		res.notice(log, "no appointments table configured; summary tables skipped")
		return nil
	}
	records, err := dataset.LoadAppointments(p.opt.AppointmentsPath, dataset.LoadOptions{Columns: p.opt.Columns, Source: p.opt.Source})
	if err != nil {
		return err
	}
	res.Records = len(records)
	log.Info("loaded appointments", zap.String("path", p.opt.AppointmentsPath), zap.Int("records", len(records)))

	lookup, err := dataset.LoadLookup(p.opt.LookupPath, parser.Options{}, p.opt.LookupColumns...)
	if err != nil {
		return err
	}
	res.Lookup = LookupStatus{Source: lookup.Source, Entries: lookup.Len(), Duplicates: lookup.Duplicates, Degraded: lookup.Degraded}
	if lookup.Degraded != "" && p.needsLookup() {
		res.notice(log, lookup.Degraded+"; showing raw codes")
	}
	if lookup.Duplicates > 0 {
		res.notice(log, fmt.Sprintf("lookup table %s: %d duplicate codes ignored (first occurrence kept)", lookup.Source, lookup.Duplicates))
	}

	for _, v := range p.opt.Views {
		t := v.Build(records, lookup.Resolve)
		log.Debug("built view", zap.String("view", v.Name), zap.Int("rows", len(t.Rows)), zap.Int64("total", t.Total()))
		if len(t.Rows) == 0 {
			res.notice(log, fmt.Sprintf("view %s: no rows", v.Name))
		}
		res.Tables = append(res.Tables, t)
	}
	return nil
}

func (p *Pipeline) needsLookup() bool {
	for _, v := range p.opt.Views {
		if v.EnrichOn != "" {
			return true
		}
	}
	return false
}

func (p *Pipeline) runText(res *Result, log *zap.Logger) error {
	if strings.TrimSpace(p.opt.TweetsPath) == "" {
		res.notice(log, "no text table configured; text report skipped")
		return nil
	}
	src, err := dataset.LoadTexts(p.opt.TweetsPath, p.opt.TextColumn, parser.Options{})
	if err != nil {
		return fmt.Errorf("load texts: %w", err)
	}
	if src.Notice != "" {
		res.notice(log, src.Notice)
	}
	res.Text = textstats.Analyze(src.Texts, p.opt.Text)
	log.Info("analysed texts",
		zap.String("path", p.opt.TweetsPath),
		zap.Int("texts", res.Text.Texts),
		zap.Int("hashtags", len(res.Text.Hashtags)))
	return nil
}

// Markdown renders the whole result.
func (r *Result) Markdown() string {
	var b strings.Builder
	b.WriteString("[RUN]\n")
	b.WriteString(fmt.Sprintf("id %s\ngenerated %s\nrecords %d\n", r.RunID, r.GeneratedAt.Format(time.RFC3339), r.Records))
	if r.Lookup.Source != "" {
		b.WriteString(fmt.Sprintf("lookup %s (%d codes)\n", r.Lookup.Source, r.Lookup.Entries))
	}
	if len(r.Notices) > 0 {
		b.WriteString("\n[NOTICES]\n")
		for _, n := range r.Notices {
			b.WriteString("- ")
			b.WriteString(n)
			b.WriteString("\n")
		}
	}
	for _, t := range r.Tables {
		b.WriteString("\n")
		b.WriteString(t.Markdown())
	}
	if r.Text != nil {
		b.WriteString("\n")
		b.WriteString(r.Text.Markdown())
	}
	return b.String()
}
