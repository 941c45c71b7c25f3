package booking

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute lists the staff member's agenda for one date, every status included.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	staffID uint,
	businessID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	business, err := uc.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		if isNotFound(err) {
			return []dto.AppointmentListDTO{}, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}

	day, err := domain.ParseDate(date, timezone.ForBusiness(business))
	if err != nil {
		return nil, err
	}

	services, err := uc.repo.ListServices(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	catalog := make(map[uint]models.Service, len(services))
	for _, s := range services {
		catalog[s.ID] = s
	}

	appointments, err := uc.repo.ListAppointmentsForDay(ctx, staffID, date)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	fallback := int(slotInterval(business, 0).Minutes())

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		item := dto.AppointmentListDTO{
			ID:          ap.ID,
			Reference:   ap.Reference,
			Date:        ap.Date,
			StartTime:   ap.StartTime,
			Status:      ap.Status,
			ClientID:    ap.ClientID,
			ServiceName: ap.ServiceName,
			TotalPrice:  ap.TotalPrice,
		}
		if iv, err := domain.AppointmentInterval(day, ap, catalog, fallback); err == nil {
			item.StartTime = iv.Start.Format(domain.ClockLayout)
			item.EndTime = iv.End.Format(domain.ClockLayout)
		}
		for _, link := range ap.Services {
			item.Services = append(item.Services, link.ServiceName)
		}
		out = append(out, item)
	}

	return out, nil
}
