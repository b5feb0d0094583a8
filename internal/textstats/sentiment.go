package textstats

import "math"

// Category is the sentiment label of a text.
type Category string

const (
	Positive Category = "Positive"
	Neutral  Category = "Neutral"
	Negative Category = "Negative"
)

// Categories lists every category in report order.
func Categories() []Category { return []Category{Positive, Neutral, Negative} }

const neutralBand = 0.1

// CategoryFor maps a polarity score to a category. Scores exactly on the
// band edges are Neutral.
func CategoryFor(polarity float64) Category {
	switch {
	case polarity > neutralBand:
		return Positive
	case polarity < -neutralBand:
		return Negative
	default:
		return Neutral
	}
}

// Scorer produces a polarity score in [-1, 1] for a text.
type Scorer interface {
	Polarity(text string) float64
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc func(text string) float64

func (f ScorerFunc) Polarity(text string) float64 { return f(text) }

// Classifier labels texts using a Scorer. A nil Scorer uses the default
// lexicon.
type Classifier struct {
	Scorer Scorer
}

// Score returns the clamped polarity of text.
func (c Classifier) Score(text string) float64 {
	s := c.Scorer
	if s == nil {
		s = DefaultLexicon()
	}
	return clamp(s.Polarity(text))
}

// Classify returns the category of text.
func (c Classifier) Classify(text string) Category {
	return CategoryFor(c.Score(text))
}

func clamp(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return 0
	case p > 1:
		return 1
	case p < -1:
		return -1
	}
	return p
}

// Distribution counts texts per category.
type Distribution struct {
	Positive int `json:"positive" yaml:"positive"`
	Neutral  int `json:"neutral" yaml:"neutral"`
	Negative int `json:"negative" yaml:"negative"`
}

// Add counts one text of category c.
func (d *Distribution) Add(c Category) {
	switch c {
	case Positive:
		d.Positive++
	case Negative:
		d.Negative++
	default:
		d.Neutral++
	}
}

// Total is the number of counted texts.
func (d Distribution) Total() int { return d.Positive + d.Neutral + d.Negative }

// Entries returns the counts in Positive, Neutral, Negative order, including
// zero counts.
func (d Distribution) Entries() []Entry[Category] {
	return []Entry[Category]{
		{Token: Positive, Count: d.Positive},
		{Token: Neutral, Count: d.Neutral},
		{Token: Negative, Count: d.Negative},
	}
}
