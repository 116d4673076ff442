package importer

import (
	"fmt"
	"regexp"
)

// Outcome is the validation verdict for one record.
type Outcome struct {
	Errors []string
}

func (o Outcome) Valid() bool {
	return len(o.Errors) == 0
}

// Validate applies the schema's rules to one normalized record, walking
// fields in declaration order and collecting every failure instead of
// stopping at the first one.
func (s *Schema) Validate(rec Record) Outcome {
	var errs []string
	for _, f := range s.Fields {
		value, present := rec[f.Name]
		if !present || value == "" {
			if f.Required {
				errs = append(errs, f.missingMessage(rec))
			}
			continue
		}
		for _, rule := range f.Rules {
			if msg := rule(value, rec); msg != "" {
				errs = append(errs, msg)
			}
		}
	}
	return Outcome{Errors: errs}
}

func (f Field) missingMessage(rec Record) string {
	if f.Missing != nil {
		return f.Missing(rec)
	}
	return fmt.Sprintf("Missing %s", f.Name)
}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// EmailShaped reports whether v looks like local@domain.tld. Deliberately
// loose; deliverability is not this layer's concern.
func EmailShaped(v string) bool {
	return emailPattern.MatchString(v)
}

// DateShaped reports whether v matches the strict YYYY-MM-DD shape. It does
// not check calendar validity; month 13 passes here and fails at the
// persistence layer instead.
func DateShaped(v string) bool {
	return datePattern.MatchString(v)
}
