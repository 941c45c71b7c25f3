package booking

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestLifecycle(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(InitialStatus())}
	if err := Complete(ap, now); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("pending cannot be completed, got %v", err)
	}
	if err := Confirm(ap, now); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if ap.ConfirmedAt == nil || ap.Status != string(StatusConfirmed) {
		t.Fatalf("unexpected state %+v", ap)
	}
	if err := Confirm(ap, now); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("double confirm must fail, got %v", err)
	}
	if err := Cancel(ap, now); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := Cancel(ap, now); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("double cancel must fail, got %v", err)
	}
}

func TestOnlyConfirmedBlocksAvailability(t *testing.T) {
	if StatusPending.BlocksAvailability() || StatusCancelled.BlocksAvailability() {
		t.Fatal("pending and cancelled must not block")
	}
	if !StatusConfirmed.BlocksAvailability() {
		t.Fatal("confirmed must block")
	}
}
