package booking

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var ErrNotFound = errors.New("not found")

type Repository interface {
	// -------- Business / Staff --------
	GetBusinessByID(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	GetStaff(
		ctx context.Context,
		businessID uint,
		staffID uint,
	) (*models.Staff, error)

	ListActiveStaff(
		ctx context.Context,
		businessID uint,
	) ([]models.Staff, error)

	// -------- Assignments --------
	ListAssignments(
		ctx context.Context,
		businessID uint,
		serviceIDs []uint,
	) ([]models.StaffService, error)

	CountAssignments(
		ctx context.Context,
		businessID uint,
	) (int64, error)

	// -------- Catalog --------
	GetService(
		ctx context.Context,
		businessID uint,
		serviceID uint,
	) (*models.Service, error)

	ListServices(
		ctx context.Context,
		businessID uint,
	) ([]models.Service, error)

	GetResource(
		ctx context.Context,
		businessID uint,
		tag string,
	) (*models.Resource, error)

	// -------- Schedule --------
	ListShifts(
		ctx context.Context,
		staffID uint,
		date string,
	) ([]models.Shift, error)

	ListBreaks(
		ctx context.Context,
		staffID uint,
		date string,
	) ([]models.Break, error)

	// ListConfirmedAppointments returns confirmed appointments of the business
	// on date, restricted to one staff member when staffID is set.
	ListConfirmedAppointments(
		ctx context.Context,
		businessID uint,
		staffID *uint,
		date string,
	) ([]models.Appointment, error)

	// -------- Appointment (commit) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	CreateAppointmentServices(
		ctx context.Context,
		links []models.AppointmentService,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentForStaff(
		ctx context.Context,
		appointmentID uint,
		staffID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForDay(
		ctx context.Context,
		staffID uint,
		date string,
	) ([]models.Appointment, error)

	// -------- Waitlist --------
	ListWaitlistCandidates(
		ctx context.Context,
		businessID uint,
		serviceNames []string,
		date string,
		limit int,
	) ([]models.WaitlistEntry, error)

	// NotifyWaitlistEntry flips notified false→true and stores n in one step.
	// It returns false when the entry was already notified.
	NotifyWaitlistEntry(
		ctx context.Context,
		entryID uint,
		n *models.Notification,
	) (bool, error)
}

// AvailabilityKey identifies one cached availability computation.
type AvailabilityKey struct {
	BusinessID      uint
	StaffID         uint
	Date            string
	DurationMinutes int
	IntervalMinutes int
	Resource        string
}

type AvailabilityCache interface {
	Get(ctx context.Context, key AvailabilityKey) ([]TimeSlot, bool)
	Set(ctx context.Context, key AvailabilityKey, slots []TimeSlot)
	Invalidate(ctx context.Context, businessID uint, date string)
}

type EventPublisher interface {
	Publish(ctx context.Context, eventType string, key string, payload any) error
}

// WaitlistTrigger schedules a waitlist check after a cancellation without
// blocking the caller.
type WaitlistTrigger interface {
	Enqueue(appointmentID uint)
}
