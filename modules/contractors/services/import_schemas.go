package services

import (
	"fmt"
	"strconv"

	"github.com/facilops/facilops/modules/contractors/domain/aggregates/contractor"
	"github.com/facilops/facilops/modules/contractors/domain/aggregates/policy"
	"github.com/facilops/facilops/pkg/importer"
)

// Import schemas for the two entity types. Each schema is the single
// source of truth for canonical field names, header synonyms, required
// fields and per-field rules, consumed by both the normalizer and the
// validator.

func recordName(rec importer.Record, field string) string {
	if v := rec[field]; v != "" {
		return v
	}
	return "unknown"
}

func ContractorImportSchema() *importer.Schema {
	return importer.NewSchema("contractors",
		importer.Field{
			Name:     "name",
			Required: true,
			Synonyms: []string{"contractor_name"},
			Missing: func(rec importer.Record) string {
				return fmt.Sprintf("Missing name for contractor %s", recordName(rec, "name"))
			},
		},
		importer.Field{
			Name:     "service_type",
			Required: true,
			Synonyms: []string{"service", "type"},
			Missing: func(rec importer.Record) string {
				return fmt.Sprintf("Missing service_type for contractor %s", recordName(rec, "name"))
			},
		},
		importer.Field{
			Name:    "status",
			Default: string(contractor.StatusActive),
			Rules: []importer.Rule{func(v string, rec importer.Record) string {
				if _, ok := contractor.ParseStatus(v); !ok {
					return fmt.Sprintf("Invalid status '%s' for contractor %s", v, recordName(rec, "name"))
				}
				return ""
			}},
		},
		importer.Field{
			Name:     "contact_email",
			Synonyms: []string{"email"},
			Rules: []importer.Rule{func(v string, rec importer.Record) string {
				if !importer.EmailShaped(v) {
					return fmt.Sprintf("Invalid contact_email '%s' for contractor %s", v, recordName(rec, "name"))
				}
				return ""
			}},
		},
		importer.Field{
			Name:     "contact_phone",
			Synonyms: []string{"phone"},
		},
		importer.Field{
			Name:     "location",
			Synonyms: []string{"address"},
		},
		importer.Field{
			Name:     "notes",
			Synonyms: []string{"note", "comment", "comments"},
		},
		importer.Field{
			Name:     "credentials",
			Synonyms: []string{"credential"},
		},
		importer.Field{
			Name: "rating",
			Rules: []importer.Rule{func(v string, rec importer.Record) string {
				n, err := strconv.Atoi(v)
				if err != nil || n < 1 || n > 5 {
					return fmt.Sprintf("Invalid rating '%s' for contractor %s", v, recordName(rec, "name"))
				}
				return ""
			}},
		},
	)
}

func InsuranceImportSchema() *importer.Schema {
	policyContext := func(rec importer.Record) string {
		if v := rec["policy_number"]; v != "" {
			return fmt.Sprintf("policy %s", v)
		}
		return fmt.Sprintf("contractor %s", recordName(rec, "contractor_name"))
	}

	return importer.NewSchema("insurance",
		importer.Field{
			Name:     "contractor_name",
			Required: true,
			Synonyms: []string{"contractor"},
			Missing: func(rec importer.Record) string {
				return fmt.Sprintf("Missing contractor_name for %s", policyContext(rec))
			},
		},
		importer.Field{
			Name:     "insurance_type",
			Required: true,
			Synonyms: []string{"type"},
			Missing: func(rec importer.Record) string {
				return fmt.Sprintf("Missing insurance_type for %s", policyContext(rec))
			},
		},
		importer.Field{
			Name:     "provider",
			Required: true,
			Synonyms: []string{"insurer"},
			Missing: func(rec importer.Record) string {
				return fmt.Sprintf("Missing provider for %s", policyContext(rec))
			},
		},
		importer.Field{
			Name:     "policy_number",
			Required: true,
			Synonyms: []string{"policy", "policy_no"},
			Missing: func(rec importer.Record) string {
				return fmt.Sprintf("Missing policy_number for contractor %s", recordName(rec, "contractor_name"))
			},
		},
		importer.Field{
			Name:     "coverage",
			Required: true,
			Synonyms: []string{"coverage_amount"},
			Missing: func(rec importer.Record) string {
				return fmt.Sprintf("Missing coverage for %s", policyContext(rec))
			},
		},
		importer.Field{
			Name:     "issue_date",
			Required: true,
			Synonyms: []string{"issued"},
			Missing: func(rec importer.Record) string {
				return fmt.Sprintf("Missing issue_date for %s", policyContext(rec))
			},
			Rules: []importer.Rule{dateRule("issue_date", policyContext)},
		},
		importer.Field{
			Name:     "expiry_date",
			Required: true,
			Synonyms: []string{"expiry", "expires"},
			Missing: func(rec importer.Record) string {
				return fmt.Sprintf("Missing expiry_date for %s", policyContext(rec))
			},
			Rules: []importer.Rule{dateRule("expiry_date", policyContext)},
		},
		importer.Field{
			Name:    "status",
			Default: string(policy.StatusValid),
			Rules: []importer.Rule{func(v string, rec importer.Record) string {
				if _, ok := policy.ParseStatus(v); !ok {
					return fmt.Sprintf("Invalid status '%s' for %s", v, policyContext(rec))
				}
				return ""
			}},
		},
	)
}

// dateRule enforces the YYYY-MM-DD shape only. Calendar validity is left
// to the persistence writer.
func dateRule(field string, policyContext func(importer.Record) string) importer.Rule {
	return func(v string, rec importer.Record) string {
		if !importer.DateShaped(v) {
			return fmt.Sprintf("Invalid %s '%s' for %s (expected YYYY-MM-DD)", field, v, policyContext(rec))
		}
		return ""
	}
}
