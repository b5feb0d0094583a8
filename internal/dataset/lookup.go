package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/KaramelBytes/apptloom-cli/internal/parser"
)

// ColumnPair names the code and display-name columns of a lookup table.
type ColumnPair struct {
	Code string
	Name string
}

// DefaultLookupColumns returns the column pairs tried in order: the generic
// code/display_name layout, then the ONS ICB boundary file layout.
func DefaultLookupColumns() []ColumnPair {
	return []ColumnPair{
		{Code: "code", Name: "display_name"},
		{Code: "ICB Code", Name: "ICB Name"},
	}
}

// Lookup resolves codes to display names. The zero value and any Lookup built
// by Identity resolve every code to itself.
type Lookup struct {
	names map[string]string

	// Source is the table name the mapping was read from, if any.
	Source string
	// Degraded explains why the lookup fell back to identity; empty when a
	// table was loaded.
	Degraded string
	// Duplicates counts codes that appeared more than once; the first
	// occurrence wins.
	Duplicates int
}

// Identity returns a Lookup that maps every code to itself.
func Identity(reason string) *Lookup {
	return &Lookup{Degraded: reason}
}

// Resolve returns the display name for code, falling back to the code itself
// when the table has no usable entry.
func (l *Lookup) Resolve(code string) string {
	if l == nil || l.names == nil {
		return code
	}
	if name, ok := l.names[strings.TrimSpace(code)]; ok {
		return name
	}
	return code
}

// Len reports the number of mapped codes.
func (l *Lookup) Len() int {
	if l == nil {
		return 0
	}
	return len(l.names)
}

// LoadLookup reads an optional code-to-name table. An empty path, a missing
// file, or a table without any of the column pairs yields an identity Lookup
// and no error. Read failures on an existing file are returned.
func LoadLookup(path string, opt parser.Options, pairs ...ColumnPair) (*Lookup, error) {
	if strings.TrimSpace(path) == "" {
		return Identity("no lookup table configured"), nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Identity(fmt.Sprintf("lookup table %s not found", path)), nil
		}
		return nil, fmt.Errorf("stat lookup: %w", err)
	}
	t, err := parser.ReadFile(path, opt)
	if err != nil {
		return nil, fmt.Errorf("read lookup: %w", err)
	}
	return LookupFromTable(t, pairs...), nil
}

// LookupFromTable builds a Lookup from the first column pair fully present in
// t. When pairs is empty DefaultLookupColumns is used.
func LookupFromTable(t *parser.Table, pairs ...ColumnPair) *Lookup {
	if len(pairs) == 0 {
		pairs = DefaultLookupColumns()
	}
	codeIdx, nameIdx := -1, -1
	for _, p := range pairs {
		ci, okc := t.Index(p.Code)
		ni, okn := t.Index(p.Name)
		if okc && okn {
			codeIdx, nameIdx = ci, ni
			break
		}
	}
	if codeIdx < 0 {
		want := make([]string, len(pairs))
		for i, p := range pairs {
			want[i] = fmt.Sprintf("%q/%q", p.Code, p.Name)
		}
		return &Lookup{
			Source:   t.Name,
			Degraded: fmt.Sprintf("lookup table %s lacks expected columns (%s)", t.Name, strings.Join(want, " or ")),
		}
	}

	l := &Lookup{Source: t.Name, names: make(map[string]string, len(t.Rows))}
	for _, row := range t.Rows {
		code := strings.TrimSpace(row[codeIdx])
		name := strings.TrimSpace(row[nameIdx])
		if code == "" || name == "" {
			continue
		}
		if _, seen := l.names[code]; seen {
			l.Duplicates++
			continue
		}
		l.names[code] = name
	}
	return l
}
