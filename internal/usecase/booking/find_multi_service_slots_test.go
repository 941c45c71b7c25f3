package booking

import (
	"context"
	"testing"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

func newFinder(repo *fakeRepo) *FindMultiServiceSlots {
	return NewFindMultiServiceSlots(repo, NewResolveEligibleStaff(repo), 2)
}

func bundle(t *testing.T, repo *fakeRepo, ids ...uint) []domain.SelectedService {
	t.Helper()
	choices := make([]ServiceChoice, 0, len(ids))
	for _, id := range ids {
		choices = append(choices, ServiceChoice{ServiceID: id})
	}
	services, err := NewSelectServices(repo).Execute(context.Background(), 1, choices)
	if err != nil {
		t.Fatalf("select services: %v", err)
	}
	return services
}

func starts(slots []domain.BookingSlot, staffID uint) map[string]bool {
	out := map[string]bool{}
	for _, s := range slots {
		if s.StaffID == staffID {
			out[s.StartTime] = true
		}
	}
	return out
}

func TestFindMultiServiceSlotsBundleAroundBooking(t *testing.T) {
	repo := bookedDayRepo()

	slots, err := newFinder(repo).Execute(context.Background(), domain.BookingSession{
		BusinessID: 1,
		StaffID:    uintPtr(1),
		Date:       testDate,
		Services:   bundle(t, repo, 10, 11),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := starts(slots, 1)
	if got["09:30"] || got["10:00"] {
		t.Fatalf("09:30 and 10:00 overlap the booking: %v", got)
	}
	if !got["09:00"] || !got["10:30"] || !got["16:00"] {
		t.Fatalf("expected 09:00, 10:30 and 16:00 to be bookable: %v", got)
	}
	if got["16:30"] {
		t.Fatal("16:30 + 60 runs past the shift")
	}

	for _, s := range slots {
		if s.End.Sub(s.Start).Minutes() != 60 {
			t.Fatalf("slot %s should last 60 minutes", s.StartTime)
		}
		if len(s.ServiceIDs) != 2 {
			t.Fatalf("slot should carry the bundle, got %v", s.ServiceIDs)
		}
	}
}

func TestFindMultiServiceSlotsOnlyFullyAssignedStaff(t *testing.T) {
	repo := newFakeRepo()
	repo.addStaff(1, "Ana")
	repo.addStaff(2, "Bia")
	repo.addShift(1, "09:00", "12:00")
	repo.addShift(2, "09:00", "12:00")
	repo.addService(10, "Cut", 30, 0, 40)
	repo.addService(11, "Color", 60, 15, 90)
	repo.assign(1, 10, 11)
	repo.assign(2, 10)

	slots, err := newFinder(repo).Execute(context.Background(), domain.BookingSession{
		BusinessID: 1,
		Date:       testDate,
		Services:   bundle(t, repo, 10, 11),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected slots for Ana")
	}
	for _, s := range slots {
		if s.StaffID != 1 {
			t.Fatalf("only Ana can do both services, got staff %d", s.StaffID)
		}
	}
}

func TestFindMultiServiceSlotsLegacyFallback(t *testing.T) {
	repo := newFakeRepo()
	repo.addStaff(1, "Ana")
	repo.addStaff(2, "Bia")
	repo.addShift(1, "09:00", "10:00")
	repo.addShift(2, "09:00", "10:00")
	repo.addService(10, "Cut", 30, 0, 40)

	slots, err := newFinder(repo).Execute(context.Background(), domain.BookingSession{
		BusinessID: 1,
		Date:       testDate,
		Services:   bundle(t, repo, 10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(starts(slots, 1)) != 2 || len(starts(slots, 2)) != 2 {
		t.Fatalf("without assignments everyone qualifies, got %+v", slots)
	}
}

func TestFindMultiServiceSlotsSortedPreferredFirst(t *testing.T) {
	repo := newFakeRepo()
	repo.addStaff(1, "Ana")
	repo.addStaff(2, "Bia")
	repo.addShift(1, "09:00", "11:00")
	repo.addShift(2, "09:00", "11:00")
	repo.addService(10, "Cut", 30, 0, 40)

	slots, err := newFinder(repo).Execute(context.Background(), domain.BookingSession{
		BusinessID:       1,
		PreferredStaffID: uintPtr(2),
		Date:             testDate,
		Services:         bundle(t, repo, 10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 8 {
		t.Fatalf("expected 4 starts for each of 2 staff, got %d", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].Start.Before(slots[i-1].Start) {
			t.Fatalf("slots not sorted at %d", i)
		}
	}
	for i := 0; i < len(slots); i += 2 {
		if slots[i].StaffID != 2 || slots[i+1].StaffID != 1 {
			t.Fatalf("preferred staff should come first at %s", slots[i].StartTime)
		}
	}
}

func TestFindMultiServiceSlotsEdgeCases(t *testing.T) {
	repo := bookedDayRepo()
	uc := newFinder(repo)

	_, err := uc.Execute(context.Background(), domain.BookingSession{BusinessID: 1, Date: testDate})
	if !httperr.IsValidation(err) {
		t.Fatalf("no services should be a validation error, got %v", err)
	}

	slots, err := uc.Execute(context.Background(), domain.BookingSession{
		BusinessID: 1,
		StaffID:    uintPtr(42),
		Date:       testDate,
		Services:   bundle(t, repo, 10),
	})
	if err != nil || len(slots) != 0 {
		t.Fatalf("unknown staff should give no slots, got %v %v", slots, err)
	}

	slots, err = uc.Execute(context.Background(), domain.BookingSession{
		BusinessID: 7,
		Date:       testDate,
		Services:   bundle(t, repo, 10),
	})
	if err != nil || len(slots) != 0 {
		t.Fatalf("unknown business should give no slots, got %v %v", slots, err)
	}

	long := bundle(t, repo, 10, 11)
	long[1].DurationMinutes = 160000000
	_, err = uc.Execute(context.Background(), domain.BookingSession{
		BusinessID: 1,
		StaffID:    uintPtr(1),
		Date:       testDate,
		Services:   long,
	})
	if !httperr.IsValidationCode(err, "invalid_duration") {
		t.Fatalf("a bundle longer than a day should be rejected, got %v", err)
	}
}

func TestSelectServicesRejectsUnknown(t *testing.T) {
	repo := bookedDayRepo()
	_, err := NewSelectServices(repo).Execute(context.Background(), 1, []ServiceChoice{{ServiceID: 10}, {ServiceID: 77}})
	if !IsUnknownService(err) {
		t.Fatalf("expected unknown_service, got %v", err)
	}

	repo.services[1].Active = false
	_, err = NewSelectServices(repo).Execute(context.Background(), 1, []ServiceChoice{{ServiceID: 11}})
	if !IsUnknownService(err) {
		t.Fatalf("inactive service should be unknown, got %v", err)
	}

	_, err = NewSelectServices(repo).Execute(context.Background(), 1, nil)
	if !httperr.IsValidation(err) || IsUnknownService(err) {
		t.Fatalf("empty choice list is a plain validation error, got %v", err)
	}
}
