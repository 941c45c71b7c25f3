package booking

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/otelx"
)

type CalculateAvailability struct {
	repo   domain.Repository
	cache  domain.AvailabilityCache
	tracer trace.Tracer
}

func NewCalculateAvailability(
	repo domain.Repository,
	cache domain.AvailabilityCache,
) *CalculateAvailability {
	if cache == nil {
		cache = noCache{}
	}
	return &CalculateAvailability{
		repo:   repo,
		cache:  cache,
		tracer: otelx.Tracer("booking"),
	}
}

// Execute tags every grid start of the business day for one staff member,
// or for any active staff member when no staff is given. Missing business,
// staff or service yields an empty list.
func (uc *CalculateAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	ctx, span := uc.tracer.Start(ctx, "CalculateAvailability")
	defer span.End()

	if in.Date == "" {
		return nil, httperr.ErrValidation("date", "missing_date")
	}

	business, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		if isNotFound(err) {
			return []domain.TimeSlot{}, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}

	duration := in.DurationMinutes
	resource := in.Resource

	if in.ServiceID != nil {
		svc, err := uc.repo.GetService(ctx, in.BusinessID, *in.ServiceID)
		if err != nil {
			if isNotFound(err) {
				return []domain.TimeSlot{}, nil
			}
			return nil, fmt.Errorf("get service: %w", err)
		}
		if duration <= 0 {
			duration = svc.OccupiedMinutes()
		}
		if resource == "" {
			resource = svc.RequiredResource
		}
	}

	if !durationInRange(duration) {
		return nil, httperr.ErrValidation("duration", "invalid_duration")
	}

	var staff []models.Staff
	if in.StaffID != nil {
		s, err := uc.repo.GetStaff(ctx, in.BusinessID, *in.StaffID)
		if err != nil {
			if isNotFound(err) {
				return []domain.TimeSlot{}, nil
			}
			return nil, fmt.Errorf("get staff: %w", err)
		}
		if !s.Active {
			return []domain.TimeSlot{}, nil
		}
		staff = []models.Staff{*s}
	} else {
		staff, err = uc.repo.ListActiveStaff(ctx, in.BusinessID)
		if err != nil {
			return nil, fmt.Errorf("list staff: %w", err)
		}
	}

	key := domain.AvailabilityKey{
		BusinessID:      in.BusinessID,
		Date:            in.Date,
		DurationMinutes: duration,
		IntervalMinutes: int(slotInterval(business, in.IntervalMinutes) / time.Minute),
		Resource:        resource,
	}
	if in.StaffID != nil {
		key.StaffID = *in.StaffID
	}

	span.SetAttributes(
		attribute.Int("business.id", int(in.BusinessID)),
		attribute.String("date", in.Date),
		attribute.Int("duration.minutes", duration),
	)

	if cached, ok := uc.cache.Get(ctx, key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}

	day, err := loadDay(ctx, uc.repo, business, in.Date, in.IntervalMinutes, resource)
	if err != nil {
		return nil, err
	}

	d := time.Duration(duration) * time.Minute
	perStaff := make([][]domain.TimeSlot, 0, len(staff))
	for _, s := range staff {
		plan, err := day.planFor(ctx, uc.repo, s.ID)
		if err != nil {
			return nil, err
		}
		perStaff = append(perStaff, plan.Slots(day.grid, d))
	}

	var slots []domain.TimeSlot
	if len(perStaff) == 0 {
		// nobody works here: every start is outside a shift
		slots = domain.DayPlan{}.Slots(day.grid, d)
	} else {
		slots = domain.MergeAnyStaff(perStaff)
	}

	uc.cache.Set(ctx, key, slots)
	return slots, nil
}

type noCache struct{}

func (noCache) Get(context.Context, domain.AvailabilityKey) ([]domain.TimeSlot, bool) {
	return nil, false
}
func (noCache) Set(context.Context, domain.AvailabilityKey, []domain.TimeSlot) {}
func (noCache) Invalidate(context.Context, uint, string)                       {}
