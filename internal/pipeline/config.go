package pipeline

import (
	"github.com/KaramelBytes/apptloom-cli/internal/config"
	"github.com/KaramelBytes/apptloom-cli/internal/dataset"
	"github.com/KaramelBytes/apptloom-cli/internal/parser"
	"github.com/KaramelBytes/apptloom-cli/internal/textstats"
)

// FromConfig builds pipeline options from the loaded configuration. With no
// configured views the dashboard defaults are used.
func FromConfig(c *config.Global) (Options, error) {
	opt := Options{
		AppointmentsPath: c.AppointmentsPath,
		LookupPath:       c.LookupPath,
		TweetsPath:       c.TweetsPath,
		TextColumn:       c.TextColumn,
		Columns:          Columns(c),
		LookupColumns:    LookupColumns(c),
		Source:           parser.Options{SheetName: c.Sheet},
	}

	if len(c.Views) == 0 {
		opt.Views = DefaultViews()
	} else {
		for _, vc := range c.Views {
			v, err := ViewFromConfig(vc)
			if err != nil {
				return Options{}, err
			}
			opt.Views = append(opt.Views, v)
		}
	}

	text, err := TextOptions(c)
	if err != nil {
		return Options{}, err
	}
	opt.Text = text
	return opt, nil
}

// Columns returns the appointment column mapping with overrides applied.
func Columns(c *config.Global) dataset.Columns {
	return dataset.Columns{
		Region:       c.Columns.Region,
		Month:        c.Columns.Month,
		Status:       c.Columns.Status,
		Mode:         c.Columns.Mode,
		Professional: c.Columns.Professional,
		LeadTime:     c.Columns.LeadTime,
		Count:        c.Columns.Count,
	}.WithDefaults()
}

// LookupColumns returns the configured lookup column pairs, or nil for the
// built-in candidates.
func LookupColumns(c *config.Global) []dataset.ColumnPair {
	var out []dataset.ColumnPair
	for _, lc := range c.LookupColumns {
		out = append(out, dataset.ColumnPair{Code: lc.Code, Name: lc.Name})
	}
	return out
}

// TextOptions builds the text report options: stopwords, lexicon and limits.
func TextOptions(c *config.Global) (textstats.Options, error) {
	scorer := textstats.DefaultLexicon()
	if c.SentimentLexicon != "" {
		l, err := textstats.LoadLexicon(c.SentimentLexicon)
		if err != nil {
			return textstats.Options{}, err
		}
		scorer = l
	}
	return textstats.Options{
		Tokenizer:  textstats.NewTokenizer(c.Stopwords, c.ReplaceStopwords),
		Classifier: textstats.Classifier{Scorer: scorer},
		HashtagTop: c.HashtagTopN,
		MaxWords:   c.WordcloudMaxWords,
	}, nil
}
