package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/facilops/facilops/modules/contractors/domain/aggregates/contractor"
)

type ContractorService struct {
	repo contractor.Repository
}

func NewContractorService(repo contractor.Repository) *ContractorService {
	return &ContractorService{repo: repo}
}

func (s *ContractorService) GetPaginated(ctx context.Context, params *contractor.FindParams) ([]contractor.Contractor, int64, error) {
	if params != nil {
		params.Q = strings.TrimSpace(params.Q)
	}
	return s.repo.GetPaginated(ctx, params)
}

func (s *ContractorService) GetByID(ctx context.Context, id uuid.UUID) (contractor.Contractor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ContractorService) Create(ctx context.Context, dto *contractor.CreateDTO, createdBy uuid.UUID) (contractor.Contractor, error) {
	exists, err := s.repo.ExistsByNameAndService(ctx, dto.Name, dto.ServiceType)
	if err != nil {
		return contractor.Contractor{}, err
	}
	if exists {
		return contractor.Contractor{}, contractor.ErrDuplicate
	}
	return s.repo.Create(ctx, dto.ToEntity(createdBy))
}
