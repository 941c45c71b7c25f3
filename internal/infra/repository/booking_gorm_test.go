package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

func TestCreateAppointment_RejectsDoubleBookedSlot(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	staffID := uint(1)
	first := &models.Appointment{
		Reference:  "a",
		BusinessID: 1,
		StaffID:    &staffID,
		Date:       "2026-10-19",
		StartTime:  "10:00",
		Status:     "pending",
	}
	if err := repo.CreateAppointment(ctx, first); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	second := &models.Appointment{
		Reference:  "b",
		BusinessID: 1,
		StaffID:    &staffID,
		Date:       "2026-10-19",
		StartTime:  "10:00",
		Status:     "pending",
	}
	err := repo.CreateAppointment(ctx, second)
	if err == nil {
		t.Fatal("expected uniqueness violation")
	}
	if !httperr.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}

	// A cancelled appointment frees the slot.
	first.Status = "cancelled"
	if err := repo.UpdateAppointment(ctx, first); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	third := &models.Appointment{
		Reference:  "c",
		BusinessID: 1,
		StaffID:    &staffID,
		Date:       "2026-10-19",
		StartTime:  "10:00",
		Status:     "pending",
	}
	if err := repo.CreateAppointment(ctx, third); err != nil {
		t.Fatalf("slot should be free after cancellation: %v", err)
	}
}

func TestDeleteAppointment_RemovesLinks(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	ap := &models.Appointment{Reference: "x", BusinessID: 1, Date: "2026-10-19", StartTime: "11:00", Status: "pending"}
	if err := repo.CreateAppointment(ctx, ap); err != nil {
		t.Fatal(err)
	}
	links := []models.AppointmentService{
		{AppointmentID: ap.ID, ServiceID: 1, ServiceName: "Cut", DurationMinutes: 30, Options: []string{"wash"}},
		{AppointmentID: ap.ID, ServiceID: 2, ServiceName: "Color", DurationMinutes: 60},
	}
	if err := repo.CreateAppointmentServices(ctx, links); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetAppointmentByID(ctx, ap.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Services) != 2 || got.Services[0].Options[0] != "wash" {
		t.Fatalf("expected 2 links with options, got %+v", got.Services)
	}

	if err := repo.DeleteAppointment(ctx, ap.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.GetAppointmentByID(ctx, ap.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	var count int64
	db.Model(&models.AppointmentService{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected links removed, %d left", count)
	}
}

func TestListConfirmedAppointments_OnlyConfirmed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	staffA, staffB := uint(1), uint(2)
	for i, st := range []struct {
		staff  *uint
		status string
		start  string
	}{
		{&staffA, "confirmed", "10:00"},
		{&staffA, "pending", "11:00"},
		{&staffA, "cancelled", "12:00"},
		{&staffB, "confirmed", "10:00"},
	} {
		mustCreate(t, db, &models.Appointment{
			Reference:  string(rune('a' + i)),
			BusinessID: 1,
			StaffID:    st.staff,
			Date:       "2026-10-19",
			StartTime:  st.start,
			Status:     st.status,
		})
	}

	apps, err := repo.ListConfirmedAppointments(ctx, 1, &staffA, "2026-10-19")
	if err != nil {
		t.Fatal(err)
	}
	if len(apps) != 1 || apps[0].StartTime != "10:00" {
		t.Fatalf("expected one confirmed appointment for staff A, got %+v", apps)
	}

	all, err := repo.ListConfirmedAppointments(ctx, 1, nil, "2026-10-19")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 confirmed appointments business-wide, got %d", len(all))
	}
}

func TestWaitlist_FIFOAndNotifiedOnce(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	t1 := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	later := &models.WaitlistEntry{UserID: 2, BusinessID: 1, ServiceName: "Cut", DesiredDate: "2026-10-19", CreatedAt: t1.Add(time.Hour)}
	earlier := &models.WaitlistEntry{UserID: 1, BusinessID: 1, ServiceName: "Cut", DesiredDate: "2026-10-19", CreatedAt: t1}
	otherDay := &models.WaitlistEntry{UserID: 3, BusinessID: 1, ServiceName: "Cut", DesiredDate: "2026-10-20", CreatedAt: t1.Add(-time.Hour)}
	mustCreate(t, db, later)
	mustCreate(t, db, earlier)
	mustCreate(t, db, otherDay)

	entries, err := repo.ListWaitlistCandidates(ctx, 1, []string{"Cut"}, "2026-10-19", domain.WaitlistBatchSize)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].ID != earlier.ID {
		t.Fatalf("expected earliest entry first, got %+v", entries)
	}

	ok, err := repo.NotifyWaitlistEntry(ctx, earlier.ID, &models.Notification{Reference: "n1", UserID: 1, Type: "waitlist_slot_available"})
	if err != nil || !ok {
		t.Fatalf("first notify: ok=%v err=%v", ok, err)
	}
	ok, err = repo.NotifyWaitlistEntry(ctx, earlier.ID, &models.Notification{Reference: "n2", UserID: 1, Type: "waitlist_slot_available"})
	if err != nil || ok {
		t.Fatalf("second notify must be a no-op: ok=%v err=%v", ok, err)
	}

	var notifications int64
	db.Model(&models.Notification{}).Count(&notifications)
	if notifications != 1 {
		t.Fatalf("expected 1 notification, got %d", notifications)
	}

	entries, err = repo.ListWaitlistCandidates(ctx, 1, []string{"Cut"}, "2026-10-19", domain.WaitlistBatchSize)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].ID != later.ID {
		t.Fatalf("expected only the later entry left, got %+v", entries)
	}
}

func TestAssignmentsAndStaff(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	biz := &models.Business{Name: "Studio", Slug: "studio"}
	mustCreate(t, db, biz)
	a := &models.Staff{BusinessID: biz.ID, Name: "A", Active: true}
	b := &models.Staff{BusinessID: biz.ID, Name: "B", Active: true}
	mustCreate(t, db, a)
	mustCreate(t, db, b)
	// gorm skips zero-value bools on create when a default exists.
	db.Model(b).Update("active", false)

	mustCreate(t, db, &models.StaffService{BusinessID: biz.ID, StaffID: a.ID, ServiceID: 10})

	staff, err := repo.ListActiveStaff(ctx, biz.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(staff) != 1 || staff[0].ID != a.ID {
		t.Fatalf("expected only active staff A, got %+v", staff)
	}

	n, err := repo.CountAssignments(ctx, biz.ID)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 assignment, got %d (%v)", n, err)
	}

	rows, err := repo.ListAssignments(ctx, biz.ID, nil)
	if err != nil || rows != nil {
		t.Fatalf("empty request should return nothing, got %+v (%v)", rows, err)
	}

	if _, err := repo.GetStaff(ctx, biz.ID+1, a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for foreign business, got %v", err)
	}
}
