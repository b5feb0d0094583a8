package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/apptloom-cli/internal/parser"
	"github.com/KaramelBytes/apptloom-cli/internal/utils"
)

// markdowner is implemented by every report type.
type markdowner interface {
	Markdown() string
}

func resolveFormat(flag string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(flag))
	if f == "" {
		f = effectiveConfig().OutputFormat
	}
	switch f {
	case "", "markdown", "md":
		return "markdown", nil
	case "json":
		return "json", nil
	case "yaml", "yml":
		return "yaml", nil
	}
	return "", fmt.Errorf("unsupported --format: %s (use markdown|json|yaml)", flag)
}

func render(v markdowner, format string) ([]byte, error) {
	switch format {
	case "json":
		return utils.PrettyJSON(v)
	case "yaml":
		b, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return b, nil
	default:
		return []byte(v.Markdown()), nil
	}
}

// emit writes the report to outPath, or to stdout when outPath is empty.
func emit(cmd *cobra.Command, v markdowner, format, outPath string) error {
	b, err := render(v, format)
	if err != nil {
		return err
	}
	if outPath != "" {
		if err := utils.SafeWriteFile(outPath, b); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s report to %s\n", format, outPath)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(b), "\n"))
	return nil
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	case "|", "pipe":
		return '|', nil
	}
	return 0, fmt.Errorf("unsupported --delimiter: %s", s)
}

// sourceFlags are the table-reading flags shared by the file commands.
type sourceFlags struct {
	delimiter  string
	sheetName  string
	sheetIndex int
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | 'pipe' (auto-detect if omitted)")
	cmd.Flags().StringVar(&f.sheetName, "sheet-name", "", "XLSX: sheet name to read")
	cmd.Flags().IntVar(&f.sheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}

func (f *sourceFlags) options(defaultSheet string) (parser.Options, error) {
	d, err := parseDelimiter(f.delimiter)
	if err != nil {
		return parser.Options{}, err
	}
	opt := parser.Options{Delimiter: d, SheetName: f.sheetName, SheetIndex: f.sheetIndex}
	if opt.SheetName == "" && opt.SheetIndex == 0 {
		opt.SheetName = defaultSheet
	}
	return opt, nil
}
