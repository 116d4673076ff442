package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/facilops/facilops/modules/contractors/domain/aggregates/contractor"
	"github.com/facilops/facilops/modules/contractors/domain/aggregates/policy"
	"github.com/facilops/facilops/pkg/eventbus"
	"github.com/facilops/facilops/pkg/importer"
)

const dateLayout = "2006-01-02"

// InsuranceImportService runs bulk insurance policy imports. Every row
// must reference an already imported contractor; rows referencing an
// unknown contractor are excluded with an error, distinct from true
// duplicates.
type InsuranceImportService struct {
	policies      policy.Repository
	contractors   contractor.Repository
	publisher     eventbus.EventBus
	log           *logrus.Logger
	maxUploadSize int64
}

// NewInsuranceImportService builds the service. maxUploadSize is the
// file size cap shared with the HTTP body gate; values <= 0 fall back
// to the built-in default.
func NewInsuranceImportService(
	policies policy.Repository,
	contractors contractor.Repository,
	publisher eventbus.EventBus,
	log *logrus.Logger,
	maxUploadSize int64,
) *InsuranceImportService {
	return &InsuranceImportService{
		policies:      policies,
		contractors:   contractors,
		publisher:     publisher,
		log:           log,
		maxUploadSize: maxUploadSize,
	}
}

// ImportCSV ingests one uploaded file. The progress callback, when
// non-nil, receives a 0-100 percentage after each row.
func (s *InsuranceImportService) ImportCSV(
	ctx context.Context,
	r io.Reader,
	size int64,
	filename string,
	actingUser uuid.UUID,
	progress func(percent int),
) (*importer.Result, error) {
	if err := importer.AcceptCSVFilename(filename); err != nil {
		return nil, err
	}
	rows, err := importer.ReadRows(r, size, s.maxUploadSize)
	if err != nil {
		return nil, err
	}

	p := &importer.Pipeline{
		Schema:   InsuranceImportSchema(),
		Precheck: s.contractorExists,
		Exists: func(ctx context.Context, rec importer.Record) (bool, error) {
			return s.policies.ExistsByContractorAndPolicy(ctx, rec["contractor_name"], rec["policy_number"])
		},
		Insert: func(ctx context.Context, rec importer.Record) error {
			return s.insert(ctx, rec, actingUser)
		},
		Progress: func(percent int) {
			if progress != nil {
				progress(percent)
			}
			if s.publisher != nil {
				s.publisher.Publish(&ImportProgressEvent{Entity: "insurance", Percent: percent})
			}
		},
		Log: s.entry(),
	}

	res := p.Run(ctx, rows)
	finishRun("insurance", res, s.publisher, actingUser)
	return res, nil
}

func (s *InsuranceImportService) contractorExists(ctx context.Context, rec importer.Record) (string, error) {
	name := rec["contractor_name"]
	exists, err := s.contractors.ExistsByName(ctx, name)
	if err != nil {
		return "", err
	}
	if !exists {
		return fmt.Sprintf("Contractor '%s' does not exist in the system; import contractors first", name), nil
	}
	return "", nil
}

func (s *InsuranceImportService) insert(ctx context.Context, rec importer.Record, actingUser uuid.UUID) error {
	entity := policy.New(
		rec["contractor_name"],
		rec["insurance_type"],
		rec["provider"],
		rec["policy_number"],
		actingUser,
	)

	if status, ok := policy.ParseStatus(rec["status"]); ok {
		entity = entity.WithStatus(status)
	}

	coverage, err := parseCoverage(rec["coverage"])
	if err != nil {
		return fmt.Errorf("Failed to import policy '%s': %v", rec["policy_number"], err)
	}
	entity = entity.WithCoverage(coverage)

	// Dates passed the shape check only; a non-calendar date like
	// 2025-13-01 fails here as a row-level error.
	issue, err := time.Parse(dateLayout, rec["issue_date"])
	if err != nil {
		return fmt.Errorf("Failed to import policy '%s': invalid issue_date %q", rec["policy_number"], rec["issue_date"])
	}
	expiry, err := time.Parse(dateLayout, rec["expiry_date"])
	if err != nil {
		return fmt.Errorf("Failed to import policy '%s': invalid expiry_date %q", rec["policy_number"], rec["expiry_date"])
	}
	entity = entity.WithDates(issue, expiry)

	if _, err := s.policies.Create(ctx, entity); err != nil {
		return fmt.Errorf("Failed to import policy '%s': %v", rec["policy_number"], err)
	}
	return nil
}

// parseCoverage accepts plain decimals plus common money formatting
// ("$1,000,000").
func parseCoverage(v string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(v)
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid coverage %q", v)
	}
	return amount, nil
}

func (s *InsuranceImportService) entry() *logrus.Entry {
	if s.log == nil {
		return nil
	}
	return s.log.WithField("component", "insurance_import")
}
