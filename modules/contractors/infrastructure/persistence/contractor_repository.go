package persistence

import (
	"context"
	"errors"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/facilops/facilops/modules/contractors/domain/aggregates/contractor"
	"github.com/facilops/facilops/pkg/composables"
)

const contractorColumns = `id, name, service_type, status, contact_email, contact_phone,
	location, notes, credentials, rating, created_by, created_at, updated_at`

type ContractorRepository struct{}

func NewContractorRepository() contractor.Repository {
	return &ContractorRepository{}
}

func (r *ContractorRepository) GetPaginated(ctx context.Context, params *contractor.FindParams) ([]contractor.Contractor, int64, error) {
	if params == nil {
		params = &contractor.FindParams{}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	q := strings.TrimSpace(params.Q)

	rows, err := tx.Query(ctx, `
		SELECT `+contractorColumns+`
		FROM contractors
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR service_type ILIKE '%' || $1 || '%')
		ORDER BY name, service_type
		OFFSET $2 LIMIT $3`,
		q, offset, limit,
	)
	if err != nil {
		return nil, 0, gerrors.Wrap(err, "list contractors")
	}
	defer rows.Close()

	var out []contractor.Contractor
	for rows.Next() {
		c, err := scanContractor(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, gerrors.Wrap(err, "list contractors")
	}

	var total int64
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM contractors
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR service_type ILIKE '%' || $1 || '%')`,
		q,
	).Scan(&total)
	if err != nil {
		return nil, 0, gerrors.Wrap(err, "count contractors")
	}
	return out, total, nil
}

func (r *ContractorRepository) GetByID(ctx context.Context, id uuid.UUID) (contractor.Contractor, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return contractor.Contractor{}, err
	}

	rows, err := tx.Query(ctx, `SELECT `+contractorColumns+` FROM contractors WHERE id = $1`, id)
	if err != nil {
		return contractor.Contractor{}, gerrors.Wrap(err, "get contractor")
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return contractor.Contractor{}, gerrors.Wrap(err, "get contractor")
		}
		return contractor.Contractor{}, contractor.ErrNotFound
	}
	return scanContractor(rows)
}

// ExistsByNameAndService is the duplicate check over the natural key.
// Note there is no matching unique constraint: two concurrent imports can
// both see false here and both insert.
func (r *ContractorRepository) ExistsByNameAndService(ctx context.Context, name, serviceType string) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM contractors WHERE name = $1 AND service_type = $2)`,
		name, serviceType,
	).Scan(&exists)
	if err != nil {
		return false, gerrors.Wrap(err, "contractor exists")
	}
	return exists, nil
}

func (r *ContractorRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM contractors WHERE name = $1)`,
		name,
	).Scan(&exists)
	if err != nil {
		return false, gerrors.Wrap(err, "contractor exists by name")
	}
	return exists, nil
}

func (r *ContractorRepository) Create(ctx context.Context, c contractor.Contractor) (contractor.Contractor, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return contractor.Contractor{}, err
	}

	rows, err := tx.Query(ctx, `
		INSERT INTO contractors (
			name, service_type, status, contact_email, contact_phone,
			location, notes, credentials, rating, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+contractorColumns,
		c.Name(), c.ServiceType(), string(c.Status()), c.ContactEmail(), c.ContactPhone(),
		c.Location(), c.Notes(), c.Credentials(), c.Rating(), nullableUUID(c.CreatedBy()),
	)
	if err != nil {
		return contractor.Contractor{}, mapContractorError(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return contractor.Contractor{}, mapContractorError(err)
		}
		return contractor.Contractor{}, gerrors.New("create contractor: no row returned")
	}
	return scanContractor(rows)
}

func mapContractorError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return contractor.ErrDuplicate
	}
	return gerrors.Wrap(err, "create contractor")
}

func scanContractor(rows pgx.Rows) (contractor.Contractor, error) {
	var (
		id           pgtype.UUID
		name         string
		serviceType  string
		status       string
		contactEmail string
		contactPhone string
		location     string
		notes        string
		credentials  string
		rating       int
		createdBy    pgtype.UUID
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
	)
	err := rows.Scan(
		&id, &name, &serviceType, &status, &contactEmail, &contactPhone,
		&location, &notes, &credentials, &rating, &createdBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return contractor.Contractor{}, gerrors.Wrap(err, "scan contractor")
	}
	return contractor.Hydrate(
		uuidFromPg(id),
		name,
		serviceType,
		contractor.Status(status),
		contactEmail,
		contactPhone,
		location,
		notes,
		credentials,
		rating,
		uuidFromPg(createdBy),
		createdAt.Time,
		updatedAt.Time,
	), nil
}

func uuidFromPg(v pgtype.UUID) uuid.UUID {
	if !v.Valid {
		return uuid.Nil
	}
	return v.Bytes
}

func nullableUUID(v uuid.UUID) pgtype.UUID {
	if v == uuid.Nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: v, Valid: true}
}
