package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Table is a tabular source read wholesale into memory: one header row plus
// string cells. Rows are padded to the header width.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Index returns the position of the named column. Matching ignores case and
// surrounding whitespace.
func (t *Table) Index(column string) (int, bool) {
	want := strings.ToLower(strings.TrimSpace(column))
	for i, h := range t.Header {
		if strings.ToLower(strings.TrimSpace(h)) == want {
			return i, true
		}
	}
	return -1, false
}

// Columns returns the trimmed header names.
func (t *Table) Columns() []string {
	out := make([]string, len(t.Header))
	for i, h := range t.Header {
		out[i] = strings.TrimSpace(h)
	}
	return out
}

// Options controls how a source is read.
type Options struct {
	// Delimiter for CSV. If 0, picked from the file extension.
	Delimiter rune
	// SheetName selects an XLSX sheet by name (case-insensitive).
	SheetName string
	// SheetIndex is the 1-based XLSX sheet used when SheetName is empty.
	SheetIndex int
}

// Reader defines a tabular source implementation.
type Reader interface {
	CanParse(filename string) bool
	Read(path string, opt Options) (*Table, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// ReadFile selects a reader based on filename and loads the whole table.
func ReadFile(path string, opt Options) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	for _, r := range registry {
		if r.CanParse(path) {
			t, err := r.Read(path, opt)
			if err != nil {
				return nil, err
			}
			if t.Name == "" {
				t.Name = filepath.Base(path)
			}
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
	Register(lineReader{})
}

// ErrUnsupported indicates a format is not supported yet.
var ErrUnsupported = errors.New("unsupported tabular format")

func pad(rec []string, n int) []string {
	if len(rec) >= n {
		return rec
	}
	tmp := make([]string, n)
	copy(tmp, rec)
	return tmp
}
