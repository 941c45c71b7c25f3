package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const (
	defaultOpenTime  = "09:00"
	defaultCloseTime = "21:00"

	// intervals are anchored to one date, so nothing may last past a day
	maxDurationMinutes = 24 * 60
)

// dayContext holds the business-wide data shared by every staff member's
// plan for one date. It is read-only once loaded.
type dayContext struct {
	business *models.Business
	day      time.Time
	interval time.Duration
	grid     []time.Time

	catalog   map[uint]models.Service
	confirmed []models.Appointment
	resource  *domain.ResourceUsage
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

func durationInRange(minutes int) bool {
	return minutes > 0 && minutes <= maxDurationMinutes
}

func slotInterval(business *models.Business, requested int) time.Duration {
	if requested > 0 {
		return time.Duration(requested) * time.Minute
	}
	if business.SlotIntervalMinutes > 0 {
		return time.Duration(business.SlotIntervalMinutes) * time.Minute
	}
	return domain.DefaultSlotInterval
}

// businessHours anchors the opening hours on day, falling back to the
// defaults when they are missing or malformed.
func businessHours(business *models.Business, day time.Time) (time.Time, time.Time) {
	open, err := domain.ParseClock(day, business.OpenTime)
	if err != nil {
		open, _ = domain.ParseClock(day, defaultOpenTime)
	}
	closing, err := domain.ParseClock(day, business.CloseTime)
	if err != nil || !closing.After(open) {
		closing, _ = domain.ParseClock(day, defaultCloseTime)
	}
	return open, closing
}

func loadDay(
	ctx context.Context,
	repo domain.Repository,
	business *models.Business,
	date string,
	intervalMinutes int,
	resourceTag string,
) (*dayContext, error) {

	day, err := domain.ParseDate(date, timezone.ForBusiness(business))
	if err != nil {
		return nil, err
	}

	services, err := repo.ListServices(ctx, business.ID)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	catalog := make(map[uint]models.Service, len(services))
	for _, s := range services {
		catalog[s.ID] = s
	}

	confirmed, err := repo.ListConfirmedAppointments(ctx, business.ID, nil, date)
	if err != nil {
		return nil, fmt.Errorf("list confirmed appointments: %w", err)
	}

	d := &dayContext{
		business:  business,
		day:       day,
		interval:  slotInterval(business, intervalMinutes),
		catalog:   catalog,
		confirmed: confirmed,
	}

	open, closing := businessHours(business, day)
	d.grid = domain.GenerateSlots(open, closing, d.interval)

	if resourceTag != "" {
		usage, err := d.resourceUsage(ctx, repo, resourceTag)
		if err != nil {
			return nil, err
		}
		d.resource = usage
	}

	return d, nil
}

func (d *dayContext) fallbackMinutes() int {
	return int(d.interval / time.Minute)
}

func (d *dayContext) occupied(ap models.Appointment) (domain.Interval, bool) {
	iv, err := domain.AppointmentInterval(d.day, ap, d.catalog, d.fallbackMinutes())
	if err != nil {
		logger.Warn("skipping appointment with unreadable start",
			"appointment_id", ap.ID, "display_time", ap.DisplayTime, "err", err)
		return domain.Interval{}, false
	}
	return iv, true
}

// requiresResource reports whether any service of the appointment needs tag.
func (d *dayContext) requiresResource(ap models.Appointment, tag string) bool {
	ids := []uint{ap.ServiceID}
	if len(ap.Services) > 0 {
		ids = ids[:0]
		for _, link := range ap.Services {
			ids = append(ids, link.ServiceID)
		}
	}
	for _, id := range ids {
		if svc, ok := d.catalog[id]; ok && svc.RequiredResource == tag {
			return true
		}
	}
	return false
}

func (d *dayContext) resourceUsage(
	ctx context.Context,
	repo domain.Repository,
	tag string,
) (*domain.ResourceUsage, error) {

	capacity := 1
	res, err := repo.GetResource(ctx, d.business.ID, tag)
	switch {
	case err == nil:
		capacity = res.Quantity
	case !isNotFound(err):
		return nil, fmt.Errorf("get resource: %w", err)
	}

	usage := &domain.ResourceUsage{Capacity: capacity}
	for _, ap := range d.confirmed {
		if !d.requiresResource(ap, tag) {
			continue
		}
		if iv, ok := d.occupied(ap); ok {
			usage.Busy = append(usage.Busy, iv)
		}
	}
	return usage, nil
}

// planFor loads the staff member's shifts and breaks and combines them with
// the confirmed appointments already held in the day context.
func (d *dayContext) planFor(
	ctx context.Context,
	repo domain.Repository,
	staffID uint,
) (domain.DayPlan, error) {

	date := d.day.Format(domain.DateLayout)

	shifts, err := repo.ListShifts(ctx, staffID, date)
	if err != nil {
		return domain.DayPlan{}, fmt.Errorf("list shifts: %w", err)
	}
	breaks, err := repo.ListBreaks(ctx, staffID, date)
	if err != nil {
		return domain.DayPlan{}, fmt.Errorf("list breaks: %w", err)
	}

	plan := domain.DayPlan{
		Shifts:   domain.ShiftIntervals(d.day, shifts),
		Breaks:   domain.BreakIntervals(d.day, breaks),
		Resource: d.resource,
	}

	for _, ap := range d.confirmed {
		if ap.StaffID == nil || *ap.StaffID != staffID {
			continue
		}
		if !domain.Status(ap.Status).BlocksAvailability() {
			continue
		}
		if iv, ok := d.occupied(ap); ok {
			plan.Booked = append(plan.Booked, iv)
		}
	}

	return plan, nil
}
