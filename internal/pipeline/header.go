package pipeline

// HeaderIndex maps column names to their zero-based position in a split
// line. It is built once per document from the header line and reused for
// every data row.
type HeaderIndex map[string]int

// NewHeaderIndex builds the name-to-position lookup from cleaned header
// fields. When a name repeats, the first occurrence wins.
func NewHeaderIndex(fields []string) HeaderIndex {
	idx := make(HeaderIndex, len(fields))
	for i, name := range fields {
		if _, exists := idx[name]; exists {
			continue
		}
		idx[name] = i
	}
	return idx
}

// Has reports whether the source document carries the named column.
func (h HeaderIndex) Has(name string) bool {
	_, ok := h[name]
	return ok
}

// HasAll reports whether every named column is present.
func (h HeaderIndex) HasAll(names []string) bool {
	for _, name := range names {
		if !h.Has(name) {
			return false
		}
	}
	return true
}

// Field returns the value of the named column in a split row. Columns absent
// from the document, and rows shorter than the column's position, yield an
// empty string rather than an error: field access is always best-effort.
func (h HeaderIndex) Field(row []string, name string) string {
	pos, ok := h[name]
	if !ok || pos >= len(row) {
		return ""
	}
	return row[pos]
}
