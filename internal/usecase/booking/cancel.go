package booking

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo     domain.Repository
	cache    domain.AvailabilityCache
	waitlist domain.WaitlistTrigger
	events   domain.EventPublisher
	audit    *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	cache domain.AvailabilityCache,
	waitlist domain.WaitlistTrigger,
	events domain.EventPublisher,
	audit *audit.Dispatcher,
) *CancelAppointment {
	if cache == nil {
		cache = noCache{}
	}
	if events == nil {
		events = noEvents{}
	}
	return &CancelAppointment{
		repo:     repo,
		cache:    cache,
		waitlist: waitlist,
		events:   events,
		audit:    audit,
	}
}

// Execute cancels the appointment and schedules the waitlist check. The
// check runs in the background and cannot fail the cancellation.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	businessID uint,
	staffID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	business, ap, err := loadOwned(ctx, uc.repo, businessID, staffID, appointmentID)
	if err != nil {
		return nil, err
	}

	wasBlocking := domain.Status(ap.Status).BlocksAvailability()

	now := timezone.NowIn(business.Timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	if wasBlocking {
		uc.cache.Invalidate(ctx, businessID, ap.Date)
	}

	if uc.waitlist != nil {
		uc.waitlist.Enqueue(ap.ID)
	}

	if err := uc.events.Publish(ctx, domain.EventAppointmentCancelled, ap.Reference, domain.NewAppointmentEvent(ap)); err != nil {
		logger.Warn("publish appointment cancelled failed", "reference", ap.Reference, "err", err)
	}

	dispatchLifecycle(uc.audit, "appointment_cancelled", ap, staffID)

	return ap, nil
}
