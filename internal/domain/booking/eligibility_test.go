package booking

import (
	"testing"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func staffIDs(staff []models.Staff) []uint {
	ids := make([]uint, 0, len(staff))
	for _, s := range staff {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestResolveEligible_Superset(t *testing.T) {
	staff := []models.Staff{
		{ID: 1, Name: "A", Active: true},
		{ID: 2, Name: "B", Active: true},
	}
	assignments := []models.StaffService{
		{StaffID: 1, ServiceID: 10},
		{StaffID: 1, ServiceID: 20},
		{StaffID: 2, ServiceID: 10},
	}

	got := staffIDs(ResolveEligible(staff, assignments, []uint{10, 20}, true, nil))
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected only staff 1, got %v", got)
	}

	got = staffIDs(ResolveEligible(staff, assignments, []uint{10}, true, nil))
	if len(got) != 2 {
		t.Fatalf("expected both staff for service 10, got %v", got)
	}
}

func TestResolveEligible_DuplicateRequestedIDs(t *testing.T) {
	staff := []models.Staff{{ID: 1, Active: true}}
	assignments := []models.StaffService{{StaffID: 1, ServiceID: 10}}

	got := ResolveEligible(staff, assignments, []uint{10, 10}, true, nil)
	if len(got) != 1 {
		t.Fatalf("duplicate ids must not raise the bar, got %v", staffIDs(got))
	}
}

func TestResolveEligible_LegacyFallback(t *testing.T) {
	staff := []models.Staff{
		{ID: 1, Active: true},
		{ID: 2, Active: false},
		{ID: 3, Active: true},
	}

	got := staffIDs(ResolveEligible(staff, nil, []uint{10, 20}, false, nil))
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("expected active staff 1 and 3, got %v", got)
	}
}

func TestResolveEligible_BusinessWithAssignmentsButNoneForRequested(t *testing.T) {
	staff := []models.Staff{{ID: 1, Active: true}}

	got := ResolveEligible(staff, nil, []uint{99}, true, nil)
	if len(got) != 0 {
		t.Fatalf("expected nobody eligible, got %v", staffIDs(got))
	}
}

func TestResolveEligible_PreferredStaff(t *testing.T) {
	staff := []models.Staff{
		{ID: 1, Active: true},
		{ID: 2, Active: true},
		{ID: 3, Active: true},
	}
	assignments := []models.StaffService{
		{StaffID: 1, ServiceID: 10},
		{StaffID: 3, ServiceID: 10},
	}

	preferred := uint(3)
	got := staffIDs(ResolveEligible(staff, assignments, []uint{10}, true, &preferred))
	if len(got) != 2 || got[0] != 3 || got[1] != 1 {
		t.Fatalf("expected [3 1], got %v", got)
	}

	notEligible := uint(2)
	got = staffIDs(ResolveEligible(staff, assignments, []uint{10}, true, &notEligible))
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("ineligible preference must be ignored, got %v", got)
	}
}
