package booking

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ===============================
// Validations
// ===============================

// CanConfirm only pending holds can be confirmed
func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel pending and confirmed appointments can be cancelled
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete only confirmed appointments can be completed
func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}

// BlocksAvailability reports whether an appointment in this status reserves
// staff time. Pending holds do not.
func (s Status) BlocksAvailability() bool {
	return s == StatusConfirmed
}
