package persistence

import (
	"context"
	"errors"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/facilops/facilops/modules/contractors/domain/aggregates/policy"
	"github.com/facilops/facilops/pkg/composables"
)

// coverage is selected as text so the decimal round-trips without a
// numeric adapter.
const policyColumns = `id, contractor_name, insurance_type, provider, policy_number,
	coverage::text, issue_date, expiry_date, status, created_by, created_at`

type PolicyRepository struct{}

func NewPolicyRepository() policy.Repository {
	return &PolicyRepository{}
}

func (r *PolicyRepository) GetPaginated(ctx context.Context, params *policy.FindParams) ([]policy.Policy, int64, error) {
	if params == nil {
		params = &policy.FindParams{}
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
	name := strings.TrimSpace(params.ContractorName)

	rows, err := tx.Query(ctx, `
		SELECT `+policyColumns+`
		FROM contractor_insurance
		WHERE ($1 = '' OR contractor_name = $1)
		ORDER BY contractor_name, policy_number
		OFFSET $2 LIMIT $3`,
		name, offset, limit,
	)
	if err != nil {
		return nil, 0, gerrors.Wrap(err, "list policies")
	}
	defer rows.Close()

	var out []policy.Policy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, gerrors.Wrap(err, "list policies")
	}

	var total int64
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM contractor_insurance
		WHERE ($1 = '' OR contractor_name = $1)`,
		name,
	).Scan(&total)
	if err != nil {
		return nil, 0, gerrors.Wrap(err, "count policies")
	}
	return out, total, nil
}

func (r *PolicyRepository) ExistsByContractorAndPolicy(ctx context.Context, contractorName, policyNumber string) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM contractor_insurance WHERE contractor_name = $1 AND policy_number = $2)`,
		contractorName, policyNumber,
	).Scan(&exists)
	if err != nil {
		return false, gerrors.Wrap(err, "policy exists")
	}
	return exists, nil
}

func (r *PolicyRepository) Create(ctx context.Context, p policy.Policy) (policy.Policy, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return policy.Policy{}, err
	}

	rows, err := tx.Query(ctx, `
		INSERT INTO contractor_insurance (
			contractor_name, insurance_type, provider, policy_number,
			coverage, issue_date, expiry_date, status, created_by
		) VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9)
		RETURNING `+policyColumns,
		p.ContractorName(), p.InsuranceType(), p.Provider(), p.PolicyNumber(),
		p.Coverage().String(), p.IssueDate(), p.ExpiryDate(), string(p.Status()),
		nullableUUID(p.CreatedBy()),
	)
	if err != nil {
		return policy.Policy{}, mapPolicyError(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return policy.Policy{}, mapPolicyError(err)
		}
		return policy.Policy{}, gerrors.New("create policy: no row returned")
	}
	return scanPolicy(rows)
}

func mapPolicyError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return policy.ErrDuplicate
	}
	return gerrors.Wrap(err, "create policy")
}

func scanPolicy(rows pgx.Rows) (policy.Policy, error) {
	var (
		id             pgtype.UUID
		contractorName string
		insuranceType  string
		provider       string
		policyNumber   string
		coverageText   string
		issueDate      pgtype.Date
		expiryDate     pgtype.Date
		status         string
		createdBy      pgtype.UUID
		createdAt      pgtype.Timestamptz
	)
	err := rows.Scan(
		&id, &contractorName, &insuranceType, &provider, &policyNumber,
		&coverageText, &issueDate, &expiryDate, &status, &createdBy, &createdAt,
	)
	if err != nil {
		return policy.Policy{}, gerrors.Wrap(err, "scan policy")
	}

	coverage, err := decimal.NewFromString(coverageText)
	if err != nil {
		return policy.Policy{}, gerrors.Wrap(err, "scan policy coverage")
	}

	return policy.Hydrate(
		uuidFromPg(id),
		contractorName,
		insuranceType,
		provider,
		policyNumber,
		coverage,
		issueDate.Time,
		expiryDate.Time,
		policy.Status(status),
		uuidFromPg(createdBy),
		createdAt.Time,
	), nil
}
