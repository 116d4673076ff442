package importer

import (
	"strings"
	"unicode"
)

// RawRow maps a file-supplied column label to its raw cell value.
type RawRow map[string]string

// Record maps a canonical field name to a trimmed value. An absent key is
// the null state; an empty string is a present-but-empty cell.
type Record map[string]string

// Rule checks one present field value and returns a human-readable error
// message, or "" when the value passes. The whole record is available for
// message context.
type Rule func(value string, rec Record) string

// Field declares one canonical field of an entity: how source labels map to
// it, whether it is required, the default the persistence layer applies, and
// the validation rules for present values.
type Field struct {
	Name     string
	Required bool
	Synonyms []string
	Default  string
	// Missing builds the error message for a required field that is absent.
	// When nil, a generic message is used.
	Missing func(rec Record) string
	Rules   []Rule
}

// Schema is the single declarative description of an importable entity,
// consumed by both the normalizer and the validator.
type Schema struct {
	Entity string
	Fields []Field

	synonyms map[string]string
}

func NewSchema(entity string, fields ...Field) *Schema {
	s := &Schema{
		Entity:   entity,
		Fields:   fields,
		synonyms: make(map[string]string),
	}
	for _, f := range fields {
		for _, syn := range f.Synonyms {
			s.synonyms[SnakeCase(syn)] = f.Name
		}
	}
	return s
}

// Canonicalize resolves one source column label to its canonical field name.
// Unrecognized labels pass through under their snake-cased form, never
// dropped.
func (s *Schema) Canonicalize(label string) string {
	key := SnakeCase(label)
	if canonical, ok := s.synonyms[key]; ok {
		return canonical
	}
	return key
}

// DefaultFor returns the declared default value for a canonical field.
func (s *Schema) DefaultFor(name string) string {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Default
		}
	}
	return ""
}

// SnakeCase lower-cases a column label and converts spaces, dashes and
// camelCase humps to underscores: "Contractor Name" and "contractorName"
// both become "contractor_name". Idempotent.
func SnakeCase(label string) string {
	label = strings.TrimSpace(label)
	var b strings.Builder
	b.Grow(len(label) + 4)
	prevUnderscore := true // suppress a leading underscore
	prevLowerOrDigit := false
	for _, r := range label {
		switch {
		case r == ' ' || r == '\t' || r == '-' || r == '.' || r == '/':
			if !prevUnderscore {
				b.WriteByte('_')
				prevUnderscore = true
			}
			prevLowerOrDigit = false
		case unicode.IsUpper(r):
			if prevLowerOrDigit && !prevUnderscore {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevUnderscore = false
			prevLowerOrDigit = false
		case r == '_':
			if !prevUnderscore {
				b.WriteByte('_')
				prevUnderscore = true
			}
			prevLowerOrDigit = false
		default:
			b.WriteRune(r)
			prevUnderscore = false
			prevLowerOrDigit = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	return strings.TrimRight(b.String(), "_")
}
