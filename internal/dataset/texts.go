package dataset

import (
	"fmt"

	"github.com/KaramelBytes/apptloom-cli/internal/parser"
)

// DefaultTextColumn is the free-text column of the tweet extract.
const DefaultTextColumn = "tweet_full_text"

// TextSource holds the free-text cells of one column. Empty cells are kept as
// empty strings so every source row yields one text record.
type TextSource struct {
	Name   string
	Column string
	Texts  []string
	// Notice is set when the source lacks the text column.
	Notice string
}

// LoadTexts reads the named text column. A missing column is a degraded mode:
// the result is empty and carries a Notice.
func LoadTexts(path, column string, opt parser.Options) (*TextSource, error) {
	t, err := parser.ReadFile(path, opt)
	if err != nil {
		return nil, err
	}
	return TextsFromTable(t, column), nil
}

// TextsFromTable extracts column from t, defaulting to DefaultTextColumn.
func TextsFromTable(t *parser.Table, column string) *TextSource {
	if column == "" {
		column = DefaultTextColumn
	}
	src := &TextSource{Name: t.Name, Column: column}
	idx, ok := t.Index(column)
	if !ok {
		src.Notice = fmt.Sprintf("no text column %q found in %s", column, t.Name)
		return src
	}
	src.Texts = make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		src.Texts = append(src.Texts, row[idx])
	}
	return src
}
