package services

import (
	"bytes"
	"encoding/csv"
)

// Template CSVs downloadable by callers preparing an import file. The
// headers use the canonical field names so a round-trip needs no synonym
// resolution.

func ContractorTemplateCSV() []byte {
	return writeCSV([][]string{
		{"name", "service_type", "status", "contact_email", "contact_phone", "location", "notes", "credentials", "rating"},
		{"ABC Electric", "Electrical", "Active", "ops@abcelectric.example", "+1-555-0100", "12 Industrial Way", "Preferred vendor", "Licensed electrician #E-1042", "4"},
		{"XYZ Plumbing", "Plumbing", "Warning", "dispatch@xyzplumbing.example", "+1-555-0101", "4 Canal St", "", "", "3"},
	})
}

func InsuranceTemplateCSV() []byte {
	return writeCSV([][]string{
		{"contractor_name", "insurance_type", "provider", "policy_number", "coverage", "issue_date", "expiry_date", "status"},
		{"ABC Electric", "General Liability", "Acme Mutual", "GL-2025-0042", "1000000", "2025-01-01", "2026-01-01", "Valid"},
		{"XYZ Plumbing", "Workers Compensation", "Acme Mutual", "WC-2025-0117", "500000", "2025-03-15", "2026-03-15", "Expiring"},
	})
}

func writeCSV(rows [][]string) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			panic(err)
		}
	}
	w.Flush()
	return buf.Bytes()
}
