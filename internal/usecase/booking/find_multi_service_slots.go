package booking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/otelx"
)

type FindMultiServiceSlots struct {
	repo        domain.Repository
	eligibility *ResolveEligibleStaff
	concurrency int
	tracer      trace.Tracer
}

func NewFindMultiServiceSlots(
	repo domain.Repository,
	eligibility *ResolveEligibleStaff,
	concurrency int,
) *FindMultiServiceSlots {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &FindMultiServiceSlots{
		repo:        repo,
		eligibility: eligibility,
		concurrency: concurrency,
		tracer:      otelx.Tracer("booking"),
	}
}

// Execute returns every (staff, start) pair able to host the whole bundle,
// ordered by start. Staff computed earlier in eligibility order win ties.
func (uc *FindMultiServiceSlots) Execute(
	ctx context.Context,
	session domain.BookingSession,
) ([]domain.BookingSlot, error) {

	ctx, span := uc.tracer.Start(ctx, "FindMultiServiceSlots")
	defer span.End()

	if len(session.Services) == 0 {
		return nil, httperr.ErrValidation("services", "no_services")
	}
	if session.Date == "" {
		return nil, httperr.ErrValidation("date", "missing_date")
	}

	total := domain.TotalDuration(session.Services)
	if !durationInRange(total) {
		return nil, httperr.ErrValidation("services", "invalid_duration")
	}

	business, err := uc.repo.GetBusinessByID(ctx, session.BusinessID)
	if err != nil {
		if isNotFound(err) {
			return []domain.BookingSlot{}, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}

	staff, err := uc.candidates(ctx, session)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("business.id", int(session.BusinessID)),
		attribute.Int("staff.count", len(staff)),
		attribute.Int("duration.minutes", total),
	)

	if len(staff) == 0 {
		return []domain.BookingSlot{}, nil
	}

	day, err := loadDay(ctx, uc.repo, business, session.Date, 0, "")
	if err != nil {
		return nil, err
	}
	if tag := bundleResource(day.catalog, session.Services); tag != "" {
		if day.resource, err = day.resourceUsage(ctx, uc.repo, tag); err != nil {
			return nil, err
		}
	}

	d := time.Duration(total) * time.Minute
	ids := session.ServiceIDs()
	perStaff := make([][]domain.BookingSlot, len(staff))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for i, s := range staff {
		g.Go(func() error {
			plan, err := day.planFor(gctx, uc.repo, s.ID)
			if err != nil {
				return err
			}

			var out []domain.BookingSlot
			for _, slot := range plan.Slots(day.grid, d) {
				if !slot.Available {
					continue
				}
				end := slot.Start.Add(d)
				out = append(out, domain.BookingSlot{
					StaffID:    s.ID,
					StaffName:  s.Name,
					Start:      slot.Start,
					End:        end,
					StartTime:  slot.Time,
					EndTime:    end.Format(domain.ClockLayout),
					ServiceIDs: ids,
				})
			}
			perStaff[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]domain.BookingSlot, 0)
	for _, slots := range perStaff {
		merged = append(merged, slots...)
	}
	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].Start.Before(merged[b].Start)
	})

	return merged, nil
}

func (uc *FindMultiServiceSlots) candidates(
	ctx context.Context,
	session domain.BookingSession,
) ([]models.Staff, error) {

	if session.StaffID == nil {
		return uc.eligibility.Execute(ctx, session.BusinessID, session.ServiceIDs(), session.PreferredStaffID)
	}

	s, err := uc.repo.GetStaff(ctx, session.BusinessID, *session.StaffID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staff: %w", err)
	}
	if !s.Active {
		return nil, nil
	}
	return []models.Staff{*s}, nil
}

// bundleResource is the first resource tag required by a service of the bundle.
func bundleResource(catalog map[uint]models.Service, services []domain.SelectedService) string {
	for _, s := range services {
		if svc, ok := catalog[s.ServiceID]; ok && svc.RequiredResource != "" {
			return svc.RequiredResource
		}
	}
	return ""
}
