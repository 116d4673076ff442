package importer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func validationSchema() *Schema {
	return NewSchema("widget",
		Field{
			Name:     "name",
			Required: true,
			Missing:  func(rec Record) string { return "Missing name" },
		},
		Field{
			Name:     "kind",
			Required: true,
			Missing:  func(rec Record) string { return "Missing kind" },
		},
		Field{
			Name: "color",
			Rules: []Rule{func(v string, rec Record) string {
				if v != "red" && v != "blue" {
					return fmt.Sprintf("Invalid color '%s'", v)
				}
				return ""
			}},
		},
	)
}

func TestValidate_AllMissingRequiredReported(t *testing.T) {
	s := validationSchema()

	outcome := s.Validate(Record{})
	require.False(t, outcome.Valid())
	require.Equal(t, []string{"Missing name", "Missing kind"}, outcome.Errors,
		"one error per missing field, in schema declaration order")
}

func TestValidate_EmptyValueCountsAsMissing(t *testing.T) {
	s := validationSchema()

	outcome := s.Validate(Record{"name": "", "kind": "gadget"})
	require.Equal(t, []string{"Missing name"}, outcome.Errors)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	s := validationSchema()

	outcome := s.Validate(Record{"color": "green"})
	require.Len(t, outcome.Errors, 3, "validation must not short-circuit")
}

func TestValidate_ValidIffNoErrors(t *testing.T) {
	s := validationSchema()

	ok := s.Validate(Record{"name": "a", "kind": "b", "color": "red"})
	require.True(t, ok.Valid())
	require.Empty(t, ok.Errors)

	bad := s.Validate(Record{"name": "a", "kind": "b", "color": "green"})
	require.False(t, bad.Valid())
}

func TestValidate_OptionalAbsentFieldSkipsRules(t *testing.T) {
	s := validationSchema()

	outcome := s.Validate(Record{"name": "a", "kind": "b"})
	require.True(t, outcome.Valid())
}

func TestEmailShaped(t *testing.T) {
	require.True(t, EmailShaped("ops@abc.example"))
	require.True(t, EmailShaped("a.b+c@d.co"))
	require.False(t, EmailShaped("not-an-email"))
	require.False(t, EmailShaped("a@b"))
	require.False(t, EmailShaped("a b@c.d"))
}

func TestDateShaped(t *testing.T) {
	require.True(t, DateShaped("2025-01-31"))
	// Shape only: calendar validity is deferred to the persistence layer.
	require.True(t, DateShaped("2025-13-40"))
	require.False(t, DateShaped("2025/01/31"))
	require.False(t, DateShaped("31-01-2025"))
	require.False(t, DateShaped("2025-1-3"))
}
