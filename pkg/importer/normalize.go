package importer

import "strings"

// Normalize converts one raw row into a canonical record: every value is
// trimmed, every label is canonicalized through the schema's synonym table.
// Pure transform; emptiness is a validation concern, not a normalization
// concern, so empty cells stay present as empty strings.
func (s *Schema) Normalize(row RawRow) Record {
	rec := make(Record, len(row))
	for label, value := range row {
		rec[s.Canonicalize(label)] = strings.TrimSpace(value)
	}
	return rec
}
