package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const DefaultSlotInterval = 30 * time.Minute

// WaitlistBatchSize is how many waitlist candidates are fetched per cancellation.
const WaitlistBatchSize = 10

type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps uses half-open intervals: [a,b) and [c,d) intersect iff a < d && c < b.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

func (i Interval) Contains(o Interval) bool {
	return !o.Start.Before(i.Start) && !o.End.After(i.End)
}

type Reason string

const (
	ReasonBooked              Reason = "booked"
	ReasonBreak               Reason = "break"
	ReasonShiftUnavailable    Reason = "shift_unavailable"
	ReasonResourceUnavailable Reason = "resource_unavailable"
)

type TimeSlot struct {
	Time      string    `json:"time"`
	Start     time.Time `json:"start"`
	Available bool      `json:"available"`
	Reason    Reason    `json:"reason,omitempty"`
}

type BookingSlot struct {
	StaffID    uint      `json:"staff_id"`
	StaffName  string    `json:"staff_name"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	ServiceIDs []uint    `json:"service_ids"`
}

// SelectedService is a service as chosen for a booking, with its duration,
// padding and pricing captured at selection time.
type SelectedService struct {
	ServiceID        uint
	Name             string
	DurationMinutes  int
	PaddingMinutes   int
	Price            float64
	PricingModifiers map[string]float64
	Options          []string
}

func SelectedFromService(s models.Service, options ...string) SelectedService {
	return SelectedService{
		ServiceID:        s.ID,
		Name:             s.Name,
		DurationMinutes:  s.DurationMinutes,
		PaddingMinutes:   s.PaddingMinutes,
		Price:            s.Price,
		PricingModifiers: s.PricingModifiers,
		Options:          options,
	}
}

func (s SelectedService) OccupiedMinutes() int {
	return s.DurationMinutes + s.PaddingMinutes
}

// TotalDuration is Σ (duration + padding) in minutes.
func TotalDuration(services []SelectedService) int {
	total := 0
	for _, s := range services {
		total += s.OccupiedMinutes()
	}
	return total
}

// BookingSession is the caller's current selection. It is passed explicitly
// through slot finding and commit. PreferredStaffID orders ties when StaffID
// is not fixed.
type BookingSession struct {
	BusinessID       uint
	ClientID         uint
	StaffID          *uint
	PreferredStaffID *uint
	Date             string // YYYY-MM-DD
	StartTime        string // HH:mm
	Services         []SelectedService
	Notes            string
}

func (s BookingSession) ServiceIDs() []uint {
	ids := make([]uint, 0, len(s.Services))
	for _, svc := range s.Services {
		ids = append(ids, svc.ServiceID)
	}
	return ids
}

// DisplayName joins the service names of the bundle.
func (s BookingSession) DisplayName() string {
	names := make([]string, 0, len(s.Services))
	for _, svc := range s.Services {
		names = append(names, svc.Name)
	}
	return strings.Join(names, " + ")
}

type AvailabilityInput struct {
	BusinessID      uint
	StaffID         *uint
	ServiceID       *uint
	Date            string
	DurationMinutes int
	Resource        string
	IntervalMinutes int
}

// ===============================
// Commit result
// ===============================

type CommitOutcome string

const (
	OutcomeCommitted                CommitOutcome = "committed"
	OutcomeConflict                 CommitOutcome = "conflict"
	OutcomePartialFailureRolledBack CommitOutcome = "partial_failure_rolled_back"
)

type CommitResult struct {
	Outcome       CommitOutcome `json:"outcome"`
	AppointmentID uint          `json:"appointment_id,omitempty"`
	Reference     string        `json:"reference,omitempty"`
}

// ErrPartialFailureRolledBack wraps the cause of a commit whose second write
// failed after the appointment row had been removed again.
var ErrPartialFailureRolledBack = errors.New("booking rolled back after partial failure")

// ===============================
// Events
// ===============================

const (
	EventAppointmentRequested = "booking.appointment.requested.v1"
	EventAppointmentConfirmed = "booking.appointment.confirmed.v1"
	EventAppointmentCancelled = "booking.appointment.cancelled.v1"
	EventWaitlistNotified     = "waitlist.notified.v1"
)

type AppointmentEvent struct {
	Reference  string  `json:"reference"`
	BusinessID uint    `json:"business_id"`
	StaffID    *uint   `json:"staff_id,omitempty"`
	ClientID   uint    `json:"client_id"`
	Date       string  `json:"date"`
	StartTime  string  `json:"start_time"`
	Service    string  `json:"service"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"`
}

func NewAppointmentEvent(ap *models.Appointment) AppointmentEvent {
	return AppointmentEvent{
		Reference:  ap.Reference,
		BusinessID: ap.BusinessID,
		StaffID:    ap.StaffID,
		ClientID:   ap.ClientID,
		Date:       ap.Date,
		StartTime:  ap.StartTime,
		Service:    ap.ServiceName,
		Status:     ap.Status,
		TotalPrice: ap.TotalPrice,
	}
}

type WaitlistNotifiedEvent struct {
	EntryID       uint   `json:"entry_id"`
	UserID        uint   `json:"user_id"`
	BusinessID    uint   `json:"business_id"`
	AppointmentID uint   `json:"appointment_id"`
	StaffID       *uint  `json:"staff_id,omitempty"`
	ServiceName   string `json:"service_name"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
}
