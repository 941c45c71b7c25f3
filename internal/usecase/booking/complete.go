package booking

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	businessID uint,
	staffID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	business, ap, err := loadOwned(ctx, uc.repo, businessID, staffID, appointmentID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(business.Timezone)
	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	dispatchLifecycle(uc.audit, "appointment_completed", ap, staffID)

	return ap, nil
}
