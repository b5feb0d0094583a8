package textstats

import "sort"

// Entry is one token and its number of occurrences.
type Entry[T comparable] struct {
	Token T   `json:"token" yaml:"token"`
	Count int `json:"count" yaml:"count"`
}

// Count tallies tokens. Entries are ordered by count descending; equal counts
// keep the order in which tokens were first seen.
func Count[T comparable](tokens []T) []Entry[T] {
	idx := make(map[T]int, len(tokens))
	out := []Entry[T]{}
	for _, tok := range tokens {
		i, ok := idx[tok]
		if !ok {
			i = len(out)
			idx[tok] = i
			out = append(out, Entry[T]{Token: tok})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Top returns at most n leading entries. n <= 0 keeps them all.
func Top[T comparable](entries []Entry[T], n int) []Entry[T] {
	if n <= 0 || len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// Weight is a token scaled against the most frequent one.
type Weight struct {
	Token  string  `json:"token" yaml:"token"`
	Count  int     `json:"count" yaml:"count"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Weights keeps the limit most frequent entries and normalises their counts so
// the top entry weighs 1.0. Entries must be ordered as Count returns them.
func Weights(entries []Entry[string], limit int) []Weight {
	entries = Top(entries, limit)
	out := make([]Weight, 0, len(entries))
	if len(entries) == 0 || entries[0].Count == 0 {
		return out
	}
	top := float64(entries[0].Count)
	for _, e := range entries {
		out = append(out, Weight{Token: e.Token, Count: e.Count, Weight: float64(e.Count) / top})
	}
	return out
}
