package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/facilops/facilops/modules/contractors/domain/aggregates/contractor"
	"github.com/facilops/facilops/pkg/importer"
)

type memContractorRepo struct {
	items []contractor.Contractor

	existsErr error
	createErr error
}

func (r *memContractorRepo) GetPaginated(_ context.Context, params *contractor.FindParams) ([]contractor.Contractor, int64, error) {
	return r.items, int64(len(r.items)), nil
}

func (r *memContractorRepo) GetByID(_ context.Context, id uuid.UUID) (contractor.Contractor, error) {
	for _, c := range r.items {
		if c.ID() == id {
			return c, nil
		}
	}
	return contractor.Contractor{}, contractor.ErrNotFound
}

func (r *memContractorRepo) ExistsByNameAndService(_ context.Context, name, serviceType string) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	for _, c := range r.items {
		if c.Name() == name && c.ServiceType() == serviceType {
			return true, nil
		}
	}
	return false, nil
}

func (r *memContractorRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	for _, c := range r.items {
		if c.Name() == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *memContractorRepo) Create(_ context.Context, c contractor.Contractor) (contractor.Contractor, error) {
	if r.createErr != nil {
		return contractor.Contractor{}, r.createErr
	}
	created := contractor.Hydrate(
		uuid.New(), c.Name(), c.ServiceType(), c.Status(),
		c.ContactEmail(), c.ContactPhone(), c.Location(), c.Notes(),
		c.Credentials(), c.Rating(), c.CreatedBy(), c.CreatedAt(), c.UpdatedAt(),
	)
	r.items = append(r.items, created)
	return created, nil
}

func importContractors(t *testing.T, repo *memContractorRepo, csvText string) (*importer.Result, error) {
	t.Helper()
	svc := NewContractorImportService(repo, nil, nil, 0)
	return svc.ImportCSV(context.Background(), strings.NewReader(csvText), int64(len(csvText)), "contractors.csv", uuid.New())
}

func TestContractorImport_EndToEnd(t *testing.T) {
	csvText := "name,service_type,status,rating\n" +
		"ABC Electric,Electrical,Active,4\n" +
		"ABC Electric,Electrical,Active,4\n" +
		"XYZ Plumbing,Plumbing,Bogus,9\n"

	repo := &memContractorRepo{}
	res, err := importContractors(t, repo, csvText)
	require.NoError(t, err)

	require.Equal(t, 1, res.Imported)
	require.Equal(t, 1, res.DuplicatesSkipped)
	require.Len(t, res.Errors, 2, "one error for the bogus status, one for the out-of-range rating")
	for _, e := range res.Errors {
		require.Contains(t, e, "XYZ Plumbing")
	}
	require.True(t, res.Success())

	require.Len(t, repo.items, 1)
	imported := repo.items[0]
	require.Equal(t, "ABC Electric", imported.Name())
	require.Equal(t, contractor.StatusActive, imported.Status())
	require.Equal(t, 4, imported.Rating())
}

func TestContractorImport_RatingBounds(t *testing.T) {
	schema := ContractorImportSchema()
	for _, bad := range []string{"0", "6", "abc"} {
		outcome := schema.Validate(importer.Record{"name": "A", "service_type": "B", "rating": bad})
		require.False(t, outcome.Valid(), "rating %q should fail", bad)
	}
	for _, ok := range []string{"1", "3", "5"} {
		outcome := schema.Validate(importer.Record{"name": "A", "service_type": "B", "rating": ok})
		require.True(t, outcome.Valid(), "rating %q should pass", ok)
	}
}

func TestContractorImport_DuplicateAcrossRuns(t *testing.T) {
	csvText := "name,service_type\nABC Electric,Electrical\n"

	repo := &memContractorRepo{}
	first, err := importContractors(t, repo, csvText)
	require.NoError(t, err)
	require.Equal(t, 1, first.Imported)

	second, err := importContractors(t, repo, csvText)
	require.NoError(t, err)
	require.Equal(t, 0, second.Imported)
	require.Equal(t, 1, second.DuplicatesSkipped)
	require.Len(t, repo.items, 1)
}

func TestContractorImport_SizeLimitRejectedBeforeParse(t *testing.T) {
	repo := &memContractorRepo{}
	svc := NewContractorImportService(repo, nil, nil, 0)

	_, err := svc.ImportCSV(context.Background(), strings.NewReader("unused"), 6<<20, "big.csv", uuid.New())
	var sizeErr *importer.SizeLimitError
	require.ErrorAs(t, err, &sizeErr)
	require.Empty(t, repo.items)
}

func TestContractorImport_ConfiguredCapRaisesDefault(t *testing.T) {
	// A cap above the built-in default must let through files the
	// default would reject; the declared size is what the gate checks.
	csvText := "name,service_type\nABC Electric,Electrical\n"

	repo := &memContractorRepo{}
	svc := NewContractorImportService(repo, nil, nil, 10<<20)

	res, err := svc.ImportCSV(context.Background(), strings.NewReader(csvText), 6<<20, "contractors.csv", uuid.New())
	require.NoError(t, err)
	require.Equal(t, 1, res.Imported)
}

func TestContractorImport_RejectsNonCSV(t *testing.T) {
	repo := &memContractorRepo{}
	svc := NewContractorImportService(repo, nil, nil, 0)

	_, err := svc.ImportCSV(context.Background(), strings.NewReader("x"), 1, "contractors.xlsx", uuid.New())
	require.ErrorIs(t, err, importer.ErrUnsupportedFileType)
}

func TestContractorImport_SynonymHeaders(t *testing.T) {
	csvText := "Contractor Name,Service,Email,Phone,Address,Comments,Credential\n" +
		"ABC Electric,Electrical,ops@abc.example,555-0100,12 Industrial Way,preferred,lic-1\n"

	repo := &memContractorRepo{}
	res, err := importContractors(t, repo, csvText)
	require.NoError(t, err)
	require.Equal(t, 1, res.Imported)

	c := repo.items[0]
	require.Equal(t, "Electrical", c.ServiceType())
	require.Equal(t, "ops@abc.example", c.ContactEmail())
	require.Equal(t, "555-0100", c.ContactPhone())
	require.Equal(t, "12 Industrial Way", c.Location())
	require.Equal(t, "preferred", c.Notes())
	require.Equal(t, "lic-1", c.Credentials())
}

func TestContractorImport_MissingNameMessage(t *testing.T) {
	csvText := "name,service_type\n,Electrical\n"

	res, err := importContractors(t, &memContractorRepo{}, csvText)
	require.NoError(t, err)
	require.Equal(t, []string{"Missing name for contractor unknown"}, res.Errors)
}

func TestContractorImport_StorageErrorSurfacedPerRow(t *testing.T) {
	csvText := "name,service_type\nABC Electric,Electrical\nXYZ Plumbing,Plumbing\n"

	repo := &memContractorRepo{createErr: contractor.ErrDuplicate}
	res, err := importContractors(t, repo, csvText)
	require.NoError(t, err)
	require.Equal(t, 0, res.Imported)
	require.Len(t, res.Errors, 2)
	require.Contains(t, res.Errors[0], "Failed to import 'ABC Electric'")
	require.False(t, res.Success())
}
