package services

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/facilops/facilops/modules/contractors/domain/aggregates/contractor"
	"github.com/facilops/facilops/pkg/eventbus"
	"github.com/facilops/facilops/pkg/importer"
)

// ContractorImportService runs bulk contractor imports. Unlike the
// insurance path it reports no incremental progress; callers only see
// the final result.
type ContractorImportService struct {
	repo          contractor.Repository
	publisher     eventbus.EventBus
	log           *logrus.Logger
	maxUploadSize int64
}

// NewContractorImportService builds the service. maxUploadSize is the
// file size cap shared with the HTTP body gate; values <= 0 fall back
// to the built-in default.
func NewContractorImportService(repo contractor.Repository, publisher eventbus.EventBus, log *logrus.Logger, maxUploadSize int64) *ContractorImportService {
	return &ContractorImportService{repo: repo, publisher: publisher, log: log, maxUploadSize: maxUploadSize}
}

// ImportCSV ingests one uploaded file. Size and parse failures are fatal
// and returned as errors; row-level failures accumulate in the result.
func (s *ContractorImportService) ImportCSV(ctx context.Context, r io.Reader, size int64, filename string, actingUser uuid.UUID) (*importer.Result, error) {
	if err := importer.AcceptCSVFilename(filename); err != nil {
		return nil, err
	}
	rows, err := importer.ReadRows(r, size, s.maxUploadSize)
	if err != nil {
		return nil, err
	}

	p := &importer.Pipeline{
		Schema: ContractorImportSchema(),
		Exists: func(ctx context.Context, rec importer.Record) (bool, error) {
			return s.repo.ExistsByNameAndService(ctx, rec["name"], rec["service_type"])
		},
		Insert: func(ctx context.Context, rec importer.Record) error {
			return s.insert(ctx, rec, actingUser)
		},
		Log: s.entry(),
	}

	res := p.Run(ctx, rows)
	finishRun("contractors", res, s.publisher, actingUser)
	return res, nil
}

func (s *ContractorImportService) insert(ctx context.Context, rec importer.Record, actingUser uuid.UUID) error {
	entity := contractor.New(rec["name"], rec["service_type"], actingUser).
		WithContact(rec["contact_email"], rec["contact_phone"]).
		WithLocation(rec["location"]).
		WithNotes(rec["notes"]).
		WithCredentials(rec["credentials"])

	if status, ok := contractor.ParseStatus(rec["status"]); ok {
		entity = entity.WithStatus(status)
	}
	if v := rec["rating"]; v != "" {
		// Validation already guaranteed a numeric string in range.
		rating, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("Failed to import '%s': invalid rating %q", rec["name"], v)
		}
		entity = entity.WithRating(rating)
	}

	if _, err := s.repo.Create(ctx, entity); err != nil {
		return fmt.Errorf("Failed to import '%s': %v", rec["name"], err)
	}
	return nil
}

func (s *ContractorImportService) entry() *logrus.Entry {
	if s.log == nil {
		return nil
	}
	return s.log.WithField("component", "contractor_import")
}

// finishRun publishes the completion event shared by both import paths.
// Metric counters and run logging hang off the subscribed listeners.
func finishRun(entity string, res *importer.Result, publisher eventbus.EventBus, actingUser uuid.UUID) {
	if publisher == nil {
		return
	}
	publisher.Publish(&ImportCompletedEvent{
		Entity:     entity,
		Result:     res,
		ActingUser: actingUser,
	})
}
