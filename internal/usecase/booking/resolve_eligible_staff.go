package booking

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ResolveEligibleStaff struct {
	repo domain.Repository
}

func NewResolveEligibleStaff(repo domain.Repository) *ResolveEligibleStaff {
	return &ResolveEligibleStaff{repo: repo}
}

func (uc *ResolveEligibleStaff) Execute(
	ctx context.Context,
	businessID uint,
	serviceIDs []uint,
	preferred *uint,
) ([]models.Staff, error) {

	staff, err := uc.repo.ListActiveStaff(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	if len(staff) == 0 {
		return []models.Staff{}, nil
	}

	assignments, err := uc.repo.ListAssignments(ctx, businessID, serviceIDs)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	total, err := uc.repo.CountAssignments(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("count assignments: %w", err)
	}

	return domain.ResolveEligible(staff, assignments, serviceIDs, total > 0, preferred), nil
}
