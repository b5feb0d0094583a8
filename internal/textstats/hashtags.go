// Package textstats extracts hashtags and words from free text, tallies
// token frequencies and classifies sentiment.
package textstats

import (
	"regexp"
	"strings"
)

var hashtagRe = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

// ExtractHashtags returns every hashtag in text, lower-cased, in order of
// appearance. Duplicates are kept. The result is never nil.
func ExtractHashtags(text string) []string {
	out := []string{}
	if text == "" {
		return out
	}
	for _, m := range hashtagRe.FindAllString(text, -1) {
		out = append(out, strings.ToLower(m))
	}
	return out
}
