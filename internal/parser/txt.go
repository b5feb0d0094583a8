package parser

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LineColumn is the single column of a plain-text source.
const LineColumn = "text"

// lineReader reads .txt files as one text per non-blank line.
type lineReader struct{}

func (lineReader) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".txt")
}

func (lineReader) Read(path string, _ Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open txt: %w", err)
	}
	defer f.Close()

	t := &Table{Name: filepath.Base(path), Header: []string{LineColumn}}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if line == "" {
			continue
		}
		t.Rows = append(t.Rows, []string{line})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read txt: %w", err)
	}
	return t, nil
}
