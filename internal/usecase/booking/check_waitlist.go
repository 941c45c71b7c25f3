package booking

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const NotificationWaitlistSlot = "waitlist_slot_available"

type CheckWaitlistOnCancellation struct {
	repo   domain.Repository
	events domain.EventPublisher
}

func NewCheckWaitlistOnCancellation(
	repo domain.Repository,
	events domain.EventPublisher,
) *CheckWaitlistOnCancellation {
	if events == nil {
		events = noEvents{}
	}
	return &CheckWaitlistOnCancellation{
		repo:   repo,
		events: events,
	}
}

// Execute notifies the earliest unnotified waitlist entry matching the freed
// appointment. Failures are logged and never returned.
func (uc *CheckWaitlistOnCancellation) Execute(ctx context.Context, appointmentID uint) {
	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		logger.Error("waitlist: load appointment failed", "appointment_id", appointmentID, "err", err)
		return
	}

	names := waitlistServiceNames(ap)
	candidates, err := uc.repo.ListWaitlistCandidates(
		ctx,
		ap.BusinessID,
		names,
		ap.Date,
		domain.WaitlistBatchSize,
	)
	if err != nil {
		logger.Error("waitlist: list candidates failed", "appointment_id", appointmentID, "err", err)
		return
	}
	if len(candidates) == 0 {
		logger.Debug("waitlist: no candidates", "appointment_id", appointmentID, "date", ap.Date)
		return
	}

	entry := candidates[0]

	payload := domain.WaitlistNotifiedEvent{
		EntryID:       entry.ID,
		UserID:        entry.UserID,
		BusinessID:    ap.BusinessID,
		AppointmentID: ap.ID,
		StaffID:       ap.StaffID,
		ServiceName:   entry.ServiceName,
		Date:          ap.Date,
		StartTime:     ap.StartTime,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("waitlist: encode notification failed", "entry_id", entry.ID, "err", err)
		return
	}

	n := &models.Notification{
		Reference:  uuid.NewString(),
		UserID:     entry.UserID,
		BusinessID: ap.BusinessID,
		Type:       NotificationWaitlistSlot,
		Title:      "A slot just opened up",
		Body:       fmt.Sprintf("%s is available on %s.", entry.ServiceName, ap.Date),
		Data:       string(data),
	}

	notified, err := uc.repo.NotifyWaitlistEntry(ctx, entry.ID, n)
	if err != nil {
		logger.Error("waitlist: notify failed", "entry_id", entry.ID, "err", err)
		return
	}
	if !notified {
		logger.Info("waitlist: entry already notified", "entry_id", entry.ID)
		return
	}

	logger.Info("waitlist: entry notified",
		"entry_id", entry.ID, "user_id", entry.UserID, "appointment_id", ap.ID)

	if err := uc.events.Publish(ctx, domain.EventWaitlistNotified, n.Reference, payload); err != nil {
		logger.Warn("waitlist: publish failed", "entry_id", entry.ID, "err", err)
	}
}

// waitlistServiceNames uses the bundle's own service names when link rows
// exist, otherwise the appointment's display name.
func waitlistServiceNames(ap *models.Appointment) []string {
	if len(ap.Services) == 0 {
		return []string{ap.ServiceName}
	}
	seen := make(map[string]struct{}, len(ap.Services))
	names := make([]string, 0, len(ap.Services))
	for _, link := range ap.Services {
		if _, ok := seen[link.ServiceName]; ok || link.ServiceName == "" {
			continue
		}
		seen[link.ServiceName] = struct{}{}
		names = append(names, link.ServiceName)
	}
	if len(names) == 0 {
		return []string{ap.ServiceName}
	}
	return names
}
