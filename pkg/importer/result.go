package importer

// Result aggregates the outcome of one import run. It is mutated additively
// while rows are processed and returned once at the end; best-effort
// semantics mean partial failure still counts as success when at least one
// row made it through.
type Result struct {
	Imported          int      `json:"imported"`
	DuplicatesSkipped int      `json:"duplicates_skipped"`
	Errors            []string `json:"errors"`
}

func (r *Result) Success() bool {
	return r.Imported > 0
}

func (r *Result) Failed() int {
	return len(r.Errors)
}
