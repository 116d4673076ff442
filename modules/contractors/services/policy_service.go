package services

import (
	"context"
	"strings"

	"github.com/facilops/facilops/modules/contractors/domain/aggregates/policy"
)

type PolicyService struct {
	repo policy.Repository
}

func NewPolicyService(repo policy.Repository) *PolicyService {
	return &PolicyService{repo: repo}
}

func (s *PolicyService) GetPaginated(ctx context.Context, params *policy.FindParams) ([]policy.Policy, int64, error) {
	if params != nil {
		params.ContractorName = strings.TrimSpace(params.ContractorName)
	}
	return s.repo.GetPaginated(ctx, params)
}
