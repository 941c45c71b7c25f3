package booking

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// loadOwned fetches the business and one of the staff member's appointments.
func loadOwned(
	ctx context.Context,
	repo domain.Repository,
	businessID uint,
	staffID uint,
	appointmentID uint,
) (*models.Business, *models.Appointment, error) {

	business, err := repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, httperr.ErrBusiness("business_not_found")
		}
		return nil, nil, fmt.Errorf("get business: %w", err)
	}

	ap, err := repo.GetAppointmentForStaff(ctx, appointmentID, staffID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, nil, fmt.Errorf("get appointment: %w", err)
	}
	if ap.BusinessID != businessID {
		return nil, nil, httperr.ErrBusiness("appointment_not_found")
	}

	return business, ap, nil
}

func dispatchLifecycle(d *audit.Dispatcher, action string, ap *models.Appointment, staffID uint) {
	d.Dispatch(audit.Event{
		BusinessID: ap.BusinessID,
		StaffID:    &staffID,
		Action:     action,
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata: map[string]any{
			"reference": ap.Reference,
			"date":      ap.Date,
			"start":     ap.StartTime,
		},
	})
}
