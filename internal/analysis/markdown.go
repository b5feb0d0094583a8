package analysis

import (
	"fmt"
	"strings"
)

// Markdown renders the table as a compact section: a heading line, the
// filters and bucketing, then a pipe table of keys, display name and count.
func (t Table) Markdown() string {
	var b strings.Builder
	title := t.Title
	if title == "" {
		title = t.Name
	}
	b.WriteString(fmt.Sprintf("[%s]\n", strings.ToUpper(safeName(title))))
	var meta []string
	if len(t.Where) > 0 {
		parts := make([]string, len(t.Where))
		for i, c := range t.Where {
			parts[i] = c.String()
		}
		meta = append(meta, "where "+strings.Join(parts, ", "))
	}
	if t.KeyIndex(Month) >= 0 && t.Bucket != BucketNone {
		meta = append(meta, "bucket "+t.Bucket.String())
	}
	meta = append(meta, fmt.Sprintf("groups %d", len(t.Rows)), fmt.Sprintf("total %d", t.Total()))
	b.WriteString(strings.Join(meta, "; "))
	b.WriteString("\n")
	if len(t.Rows) == 0 {
		b.WriteString("(no rows)\n")
		return b.String()
	}

	named := false
	for _, r := range t.Rows {
		if r.DisplayName != "" {
			named = true
			break
		}
	}
	b.WriteString("| ")
	for _, d := range t.GroupBy {
		b.WriteString(d.Title())
		b.WriteString(" | ")
	}
	if named {
		b.WriteString("Name | ")
	}
	b.WriteString("Count |\n|")
	cols := len(t.GroupBy) + 1
	if named {
		cols++
	}
	b.WriteString(strings.Repeat(" --- |", cols))
	b.WriteString("\n")
	for _, r := range t.Rows {
		b.WriteString("| ")
		for _, k := range r.Keys {
			b.WriteString(safeVal(k))
			b.WriteString(" | ")
		}
		if named {
			b.WriteString(safeVal(r.DisplayName))
			b.WriteString(" | ")
		}
		b.WriteString(fmt.Sprintf("%d |\n", r.Count))
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}
func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
