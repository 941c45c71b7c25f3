package booking

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ConfirmAppointment struct {
	repo   domain.Repository
	cache  domain.AvailabilityCache
	events domain.EventPublisher
	audit  *audit.Dispatcher
}

func NewConfirmAppointment(
	repo domain.Repository,
	cache domain.AvailabilityCache,
	events domain.EventPublisher,
	audit *audit.Dispatcher,
) *ConfirmAppointment {
	if cache == nil {
		cache = noCache{}
	}
	if events == nil {
		events = noEvents{}
	}
	return &ConfirmAppointment{
		repo:   repo,
		cache:  cache,
		events: events,
		audit:  audit,
	}
}

// Execute turns a pending hold into a confirmed appointment. A hold that now
// overlaps another confirmed appointment of the same staff member is refused
// with a booking conflict.
func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	businessID uint,
	staffID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	business, ap, err := loadOwned(ctx, uc.repo, businessID, staffID, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanConfirm(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	day, err := loadDay(ctx, uc.repo, business, ap.Date, 0, "")
	if err != nil {
		return nil, err
	}
	plan, err := day.planFor(ctx, uc.repo, staffID)
	if err != nil {
		return nil, err
	}
	own, err := domain.AppointmentInterval(day.day, *ap, day.catalog, day.fallbackMinutes())
	if err != nil {
		return nil, err
	}
	for _, booked := range plan.Booked {
		if own.Overlaps(booked) {
			return nil, httperr.ErrBookingConflict
		}
	}

	now := timezone.NowIn(business.Timezone)
	if err := domain.Confirm(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	uc.cache.Invalidate(ctx, businessID, ap.Date)

	if err := uc.events.Publish(ctx, domain.EventAppointmentConfirmed, ap.Reference, domain.NewAppointmentEvent(ap)); err != nil {
		logger.Warn("publish appointment confirmed failed", "reference", ap.Reference, "err", err)
	}

	dispatchLifecycle(uc.audit, "appointment_confirmed", ap, staffID)

	return ap, nil
}
