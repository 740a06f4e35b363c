package domain

// RawRow is one untrusted input record keyed by column name.
// Keys may carry surrounding whitespace or use column aliases. Values are
// nil, string, []string, []any or a number, depending on the source format.
type RawRow map[string]any

// RowBatch is the output of a row source: the rows it could read plus the
// number of records it had to skip because they were malformed at the row
// level (wrong field count, broken quoting).
type RowBatch struct {
	Rows    []RawRow
	Skipped int
}

// LoadStats summarizes one load cycle for diagnostics.
type LoadStats struct {
	// Rows is the number of rows handed to the normalizer.
	Rows int `json:"rows"`
	// Venues is the number of venues that survived normalization.
	Venues int `json:"venues"`
	// SkippedMalformed counts records the source could not parse as rows.
	SkippedMalformed int `json:"skipped_malformed"`
	// DroppedNameless counts rows dropped because their name was empty.
	DroppedNameless int `json:"dropped_nameless"`
}

// Skipped is the total number of input records that did not become venues.
func (s LoadStats) Skipped() int {
	return s.SkippedMalformed + s.DroppedNameless
}
