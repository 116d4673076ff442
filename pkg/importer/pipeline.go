package importer

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Pipeline drives the full flow over the rows of one file:
// normalize -> validate -> precheck -> duplicate check -> insert.
// Rows run strictly sequentially in file order; a row-level failure never
// aborts the run, it is recorded and the driver moves on.
type Pipeline struct {
	Schema *Schema

	// Precheck verifies cross-entity references for a valid record before
	// the duplicate check. A non-empty message excludes the row; a non-nil
	// error is a storage failure and also excludes the row. Optional.
	Precheck func(ctx context.Context, rec Record) (string, error)

	// Exists queries the store for a record matching the natural key.
	Exists func(ctx context.Context, rec Record) (bool, error)

	// Insert persists one validated, non-duplicate record.
	Insert func(ctx context.Context, rec Record) error

	// Progress, when set, receives round((i+1)/total*100) after each row's
	// persistence attempt.
	Progress func(percent int)

	Log *logrus.Entry
}

func (p *Pipeline) Run(ctx context.Context, rows []RawRow) *Result {
	res := &Result{}
	total := len(rows)
	for i, row := range rows {
		p.runRow(ctx, row, res)
		if p.Progress != nil && total > 0 {
			p.Progress(int(math.Round(float64(i+1) / float64(total) * 100)))
		}
	}
	return res
}

func (p *Pipeline) runRow(ctx context.Context, row RawRow, res *Result) {
	// A panic in any stage is converted to a row error so the run continues.
	defer func() {
		if r := recover(); r != nil {
			if p.Log != nil {
				p.Log.WithField("panic", r).Error("unexpected error while importing row")
			}
			res.Errors = append(res.Errors, fmt.Sprintf("Unexpected error while importing row: %v", r))
		}
	}()

	rec := p.Schema.Normalize(row)

	outcome := p.Schema.Validate(rec)
	if !outcome.Valid() {
		res.Errors = append(res.Errors, outcome.Errors...)
		return
	}

	if p.Precheck != nil {
		msg, err := p.Precheck(ctx, rec)
		if err != nil {
			res.Errors = append(res.Errors, err.Error())
			return
		}
		if msg != "" {
			res.Errors = append(res.Errors, msg)
			return
		}
	}

	// Conservative on a failed duplicate query: skip the row rather than
	// risk inserting an unverified duplicate.
	exists, err := p.Exists(ctx, rec)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		return
	}
	if exists {
		res.DuplicatesSkipped++
		return
	}

	if err := p.Insert(ctx, rec); err != nil {
		res.Errors = append(res.Errors, err.Error())
		return
	}
	res.Imported++
}
