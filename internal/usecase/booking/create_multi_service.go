package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/otelx"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type CreateMultiServiceAppointment struct {
	repo        domain.Repository
	eligibility *ResolveEligibleStaff
	events      domain.EventPublisher
	audit       *audit.Dispatcher
	tracer      trace.Tracer
}

func NewCreateMultiServiceAppointment(
	repo domain.Repository,
	events domain.EventPublisher,
	audit *audit.Dispatcher,
) *CreateMultiServiceAppointment {
	if events == nil {
		events = noEvents{}
	}
	return &CreateMultiServiceAppointment{
		repo:        repo,
		eligibility: NewResolveEligibleStaff(repo),
		events:      events,
		audit:       audit,
		tracer:      otelx.Tracer("booking"),
	}
}

// Execute writes the appointment row and then one link row per service.
// When the link rows cannot be written the appointment row is deleted again,
// so a reader sees either the whole booking or nothing.
func (uc *CreateMultiServiceAppointment) Execute(
	ctx context.Context,
	session domain.BookingSession,
	totalPrice float64,
) (domain.CommitResult, error) {

	ctx, span := uc.tracer.Start(ctx, "CreateMultiServiceAppointment")
	defer span.End()

	if len(session.Services) == 0 {
		return domain.CommitResult{}, httperr.ErrValidation("services", "no_services")
	}
	if session.StaffID == nil {
		return domain.CommitResult{}, httperr.ErrValidation("staff_id", "missing_staff")
	}
	if totalPrice < 0 {
		return domain.CommitResult{}, httperr.ErrValidation("total_price", "invalid_price")
	}
	if !durationInRange(domain.TotalDuration(session.Services)) {
		return domain.CommitResult{}, httperr.ErrValidation("services", "invalid_duration")
	}

	business, err := uc.repo.GetBusinessByID(ctx, session.BusinessID)
	if err != nil {
		if isNotFound(err) {
			return domain.CommitResult{}, httperr.ErrBusiness("business_not_found")
		}
		return domain.CommitResult{}, fmt.Errorf("get business: %w", err)
	}

	day, err := domain.ParseDate(session.Date, timezone.ForBusiness(business))
	if err != nil {
		return domain.CommitResult{}, err
	}
	if session.StartTime == "" {
		return domain.CommitResult{}, httperr.ErrValidation("time", "missing_time")
	}
	start, err := domain.ParseClock(day, session.StartTime)
	if err != nil {
		return domain.CommitResult{}, err
	}
	hm := start.Format(domain.ClockLayout)

	span.SetAttributes(
		attribute.Int("business.id", int(session.BusinessID)),
		attribute.Int("staff.id", int(*session.StaffID)),
		attribute.String("date", session.Date),
		attribute.String("start", hm),
	)

	if res, err := uc.checkSlot(ctx, business, session, start); err != nil {
		if res.Outcome != "" {
			span.SetAttributes(attribute.String("outcome", string(res.Outcome)))
		}
		return res, err
	}

	ap := &models.Appointment{
		Reference:       uuid.NewString(),
		BusinessID:      session.BusinessID,
		ClientID:        session.ClientID,
		StaffID:         session.StaffID,
		ServiceID:       session.Services[0].ServiceID,
		ServiceName:     session.DisplayName(),
		Date:            session.Date,
		StartTime:       hm,
		DurationMinutes: domain.TotalDuration(session.Services),
		DisplayTime:     domain.DisplayTime(day, hm),
		Status:          string(domain.InitialStatus()),
		TotalPrice:      totalPrice,
		Notes:           session.Notes,
	}

	// phase 1
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsUniqueViolation(err) {
			span.SetAttributes(attribute.String("outcome", string(domain.OutcomeConflict)))
			uc.audit.Dispatch(audit.Event{
				BusinessID: session.BusinessID,
				StaffID:    session.StaffID,
				Action:     "appointment_conflict",
				Entity:     "appointment",
				Metadata: map[string]any{
					"date":  session.Date,
					"start": hm,
				},
			})
			return domain.CommitResult{Outcome: domain.OutcomeConflict}, httperr.ErrBookingConflict
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "create appointment")
		return domain.CommitResult{}, fmt.Errorf("create appointment: %w", err)
	}

	// phase 2
	links := make([]models.AppointmentService, 0, len(session.Services))
	for i, svc := range session.Services {
		links = append(links, models.AppointmentService{
			AppointmentID:   ap.ID,
			ServiceID:       svc.ServiceID,
			ServiceName:     svc.Name,
			Position:        i,
			DurationMinutes: svc.DurationMinutes,
			PaddingMinutes:  svc.PaddingMinutes,
			Price:           svc.LinePrice(),
			Options:         svc.Options,
		})
	}

	if err := uc.repo.CreateAppointmentServices(ctx, links); err != nil {
		uc.compensate(ctx, ap)
		span.RecordError(err)
		span.SetStatus(codes.Error, "create appointment services")
		return domain.CommitResult{Outcome: domain.OutcomePartialFailureRolledBack},
			fmt.Errorf("%w: %w", domain.ErrPartialFailureRolledBack, err)
	}

	span.SetAttributes(attribute.String("outcome", string(domain.OutcomeCommitted)))

	if err := uc.events.Publish(ctx, domain.EventAppointmentRequested, ap.Reference, domain.NewAppointmentEvent(ap)); err != nil {
		logger.Warn("publish appointment requested failed", "reference", ap.Reference, "err", err)
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: session.BusinessID,
		StaffID:    session.StaffID,
		Action:     "appointment_requested",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata: map[string]any{
			"reference": ap.Reference,
			"services":  session.ServiceIDs(),
		},
	})

	return domain.CommitResult{
		Outcome:       domain.OutcomeCommitted,
		AppointmentID: ap.ID,
		Reference:     ap.Reference,
	}, nil
}

// compensate runs even when the request context is already cancelled.
func (uc *CreateMultiServiceAppointment) compensate(ctx context.Context, ap *models.Appointment) {
	if err := uc.repo.DeleteAppointment(context.WithoutCancel(ctx), ap.ID); err != nil {
		logger.Error("compensating delete failed",
			"appointment_id", ap.ID, "reference", ap.Reference, "err", err)
		return
	}
	logger.Warn("booking rolled back", "appointment_id", ap.ID, "reference", ap.Reference)
}

type noEvents struct{}

func (noEvents) Publish(context.Context, string, string, any) error { return nil }

// checkSlot re-runs the availability rules for the chosen staff member and
// start. Pending holds are left to the unique index.
func (uc *CreateMultiServiceAppointment) checkSlot(
	ctx context.Context,
	business *models.Business,
	session domain.BookingSession,
	start time.Time,
) (domain.CommitResult, error) {

	staff, err := uc.repo.GetStaff(ctx, business.ID, *session.StaffID)
	if err != nil {
		if isNotFound(err) {
			return domain.CommitResult{}, httperr.ErrBusiness("staff_not_found")
		}
		return domain.CommitResult{}, fmt.Errorf("get staff: %w", err)
	}
	if !staff.Active {
		return domain.CommitResult{}, httperr.ErrBusiness("staff_not_found")
	}

	eligible, err := uc.eligibility.Execute(ctx, business.ID, session.ServiceIDs(), nil)
	if err != nil {
		return domain.CommitResult{}, err
	}
	found := false
	for _, s := range eligible {
		if s.ID == staff.ID {
			found = true
			break
		}
	}
	if !found {
		return domain.CommitResult{}, httperr.ErrValidation("staff_id", "staff_not_eligible")
	}

	day, err := loadDay(ctx, uc.repo, business, session.Date, 0, "")
	if err != nil {
		return domain.CommitResult{}, err
	}
	if tag := bundleResource(day.catalog, session.Services); tag != "" {
		if day.resource, err = day.resourceUsage(ctx, uc.repo, tag); err != nil {
			return domain.CommitResult{}, err
		}
	}
	plan, err := day.planFor(ctx, uc.repo, staff.ID)
	if err != nil {
		return domain.CommitResult{}, err
	}

	d := time.Duration(domain.TotalDuration(session.Services)) * time.Minute
	slot := plan.Evaluate(start, d)
	switch {
	case slot.Available:
		return domain.CommitResult{}, nil
	case slot.Reason == domain.ReasonBooked || slot.Reason == domain.ReasonResourceUnavailable:
		return domain.CommitResult{Outcome: domain.OutcomeConflict}, httperr.ErrBookingConflict
	default:
		return domain.CommitResult{}, httperr.ErrValidation("time", string(slot.Reason))
	}
}
