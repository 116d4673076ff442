package policy

import "context"

type FindParams struct {
	ContractorName string
	Limit          int
	Offset         int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Policy, int64, error)
	ExistsByContractorAndPolicy(ctx context.Context, contractorName, policyNumber string) (bool, error)
	Create(ctx context.Context, p Policy) (Policy, error)
}
