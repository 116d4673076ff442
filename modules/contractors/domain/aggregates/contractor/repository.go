package contractor

import (
	"context"

	"github.com/google/uuid"
)

type FindParams struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Contractor, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Contractor, error)
	ExistsByNameAndService(ctx context.Context, name, serviceType string) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, c Contractor) (Contractor, error)
}
