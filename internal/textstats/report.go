package textstats

import (
	"fmt"
	"strings"
)

// TextRecord is one analysed text.
type TextRecord struct {
	Text      string   `json:"text" yaml:"text"`
	Hashtags  []string `json:"hashtags" yaml:"hashtags"`
	Sentiment Category `json:"sentiment" yaml:"sentiment"`
}

// Options configures Analyze.
type Options struct {
	Tokenizer  Tokenizer
	Classifier Classifier
	// HashtagTop limits the hashtag table; <= 0 keeps every hashtag.
	HashtagTop int
	// MaxWords limits the word weight table; <= 0 keeps every word.
	MaxWords int
}

const (
	DefaultHashtagTop = 20
	DefaultMaxWords   = 200
)

// DefaultOptions uses the built-in stopwords and lexicon.
func DefaultOptions() Options {
	return Options{
		Tokenizer:  Tokenizer{Stopwords: DefaultStopwords()},
		Classifier: Classifier{Scorer: DefaultLexicon()},
		HashtagTop: DefaultHashtagTop,
		MaxWords:   DefaultMaxWords,
	}
}

// Report is the text half of a run: hashtag frequencies, word weights and the
// sentiment distribution.
type Report struct {
	Records   []TextRecord    `json:"-" yaml:"-"`
	Texts     int             `json:"texts" yaml:"texts"`
	Hashtags  []Entry[string] `json:"hashtags" yaml:"hashtags"`
	Words     []Weight        `json:"words" yaml:"words"`
	Sentiment Distribution    `json:"sentiment" yaml:"sentiment"`
}

// Analyze tokenises and classifies every text once.
func Analyze(texts []string, opt Options) *Report {
	rep := &Report{Records: make([]TextRecord, 0, len(texts)), Texts: len(texts)}
	var tags, words []string
	for _, text := range texts {
		rec := TextRecord{
			Text:      text,
			Hashtags:  ExtractHashtags(text),
			Sentiment: opt.Classifier.Classify(text),
		}
		tags = append(tags, rec.Hashtags...)
		words = append(words, opt.Tokenizer.Words(text)...)
		rep.Sentiment.Add(rec.Sentiment)
		rep.Records = append(rep.Records, rec)
	}
	rep.Hashtags = Top(Count(tags), opt.HashtagTop)
	rep.Words = Weights(Count(words), opt.MaxWords)
	return rep
}

// Markdown renders the three text tables.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[TOP HASHTAGS]\n")
	if len(r.Hashtags) == 0 {
		b.WriteString("(no hashtags)\n")
	} else {
		b.WriteString("| Hashtag | Count |\n| --- | --- |\n")
		for _, e := range r.Hashtags {
			b.WriteString(fmt.Sprintf("| %s | %d |\n", e.Token, e.Count))
		}
	}

	b.WriteString("\n[WORD WEIGHTS]\n")
	if len(r.Words) == 0 {
		b.WriteString("(no words)\n")
	} else {
		b.WriteString("| Word | Count | Weight |\n| --- | --- | --- |\n")
		for _, w := range r.Words {
			b.WriteString(fmt.Sprintf("| %s | %d | %.3f |\n", strings.ReplaceAll(w.Token, "|", "/"), w.Count, w.Weight))
		}
	}

	b.WriteString("\n[SENTIMENT]\n")
	b.WriteString(fmt.Sprintf("texts %d\n", r.Texts))
	b.WriteString("| Sentiment | Count |\n| --- | --- |\n")
	for _, e := range r.Sentiment.Entries() {
		b.WriteString(fmt.Sprintf("| %s | %d |\n", e.Token, e.Count))
	}
	return b.String()
}
