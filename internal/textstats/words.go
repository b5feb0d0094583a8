package textstats

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	urlRe     = regexp.MustCompile(`(?i)(https?://|www\.)\S+`)
	mentionRe = regexp.MustCompile(`@[\p{L}\p{N}_]+`)
)

// Tokenizer splits free text into words for the word-frequency table.
type Tokenizer struct {
	// Stopwords are dropped from the output. Keys must be lower case.
	Stopwords map[string]struct{}
}

// NewTokenizer builds a Tokenizer over the default stop-word set plus extra.
// With replace set, extra is used on its own.
func NewTokenizer(extra []string, replace bool) Tokenizer {
	var set map[string]struct{}
	if replace {
		set = make(map[string]struct{}, len(extra))
	} else {
		set = DefaultStopwords()
	}
	for _, w := range extra {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return Tokenizer{Stopwords: set}
}

// Words lower-cases text, removes URLs, hashtags and mentions, and returns the
// remaining words that are at least two runes long, not purely numeric and
// not stopwords.
func (tk Tokenizer) Words(text string) []string {
	out := []string{}
	for _, w := range splitWords(stripMarkup(text)) {
		if _, stop := tk.Stopwords[w]; stop {
			continue
		}
		if len([]rune(w)) < 2 || numeric(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func stripMarkup(text string) string {
	text = strings.ToLower(strings.ReplaceAll(text, "’", "'"))
	text = urlRe.ReplaceAllString(text, " ")
	text = hashtagRe.ReplaceAllString(text, " ")
	return mentionRe.ReplaceAllString(text, " ")
}

// splitWords splits on anything that is not a letter, digit or apostrophe,
// trims apostrophes and a possessive "'s".
func splitWords(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'")
		f = strings.TrimSuffix(f, "'s")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func numeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// DefaultStopwords returns a fresh copy of the built-in English stop-word set.
func DefaultStopwords() map[string]struct{} {
	set := make(map[string]struct{}, len(defaultStopwords))
	for _, w := range defaultStopwords {
		set[w] = struct{}{}
	}
	return set
}

var defaultStopwords = []string{
	"a", "about", "above", "after", "again", "against", "all", "also", "am", "an",
	"and", "any", "are", "aren't", "as", "at", "be", "because", "been", "before",
	"being", "below", "between", "both", "but", "by", "can", "can't", "cannot",
	"com", "could", "couldn't", "did", "didn't", "do", "does", "doesn't", "doing",
	"don't", "down", "during", "each", "else", "ever", "few", "for", "from",
	"further", "get", "had", "hadn't", "has", "hasn't", "have", "haven't",
	"having", "he", "he'd", "he'll", "hence", "her", "here", "hers", "herself",
	"him", "himself", "his", "how", "however", "http", "https", "i", "i'd",
	"i'll", "i'm", "i've", "if", "in", "into", "is", "isn't", "it", "its",
	"itself", "just", "k", "let", "like", "me", "more", "most", "mustn't", "my",
	"myself", "no", "nor", "not", "of", "off", "on", "once", "only", "or",
	"other", "otherwise", "ought", "our", "ours", "ourselves", "out", "over",
	"own", "r", "rt", "same", "shall", "shan't", "she", "she'd", "she'll",
	"should", "shouldn't", "since", "so", "some", "such", "than", "that", "the",
	"their", "theirs", "them", "themselves", "then", "there", "therefore",
	"these", "they", "they'd", "they'll", "they're", "they've", "this", "those",
	"through", "to", "too", "under", "until", "up", "very", "was", "wasn't",
	"we", "we'd", "we'll", "we're", "we've", "were", "weren't", "what", "when",
	"where", "which", "while", "who", "whom", "why", "with", "won't", "would",
	"wouldn't", "www", "you", "you'd", "you'll", "you're", "you've", "your",
	"yours", "yourself", "yourselves",
}
