package analysis

// Resolver maps a code to its display name.
type Resolver func(code string) string

// Identity resolves every code to itself.
func Identity(code string) string { return code }

// Enrich left-joins t against resolve on dimension on. Every row is kept
// exactly once; a resolver miss or empty result falls back to the raw code.
// If on is not a grouping dimension of t, rows are labelled with their keys.
func Enrich(t Table, on Dimension, resolve Resolver) Table {
	if resolve == nil {
		resolve = Identity
	}
	k := t.KeyIndex(on)
	rows := make([]SummaryRow, len(t.Rows))
	for i, r := range t.Rows {
		r.Keys = append([]string(nil), r.Keys...)
		if k < 0 {
			r.DisplayName = SummaryRow{Keys: r.Keys}.Label()
		} else {
			code := r.Keys[k]
			name := resolve(code)
			if name == "" {
				name = code
			}
			r.DisplayName = name
		}
		rows[i] = r
	}
	return t.withRows(rows)
}
