package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const testDate = "2026-10-19"

type fakeRepo struct {
	mu sync.Mutex

	businesses  map[uint]*models.Business
	staff       []models.Staff
	assignments []models.StaffService
	services    []models.Service
	resources   []models.Resource
	shifts      []models.Shift
	breaks      []models.Break

	appointments  map[uint]*models.Appointment
	links         []models.AppointmentService
	nextID        uint
	waitlist      []models.WaitlistEntry
	notifications []models.Notification

	failLinks error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		businesses: map[uint]*models.Business{
			1: {
				ID:                  1,
				Name:                "Studio",
				Timezone:            "UTC",
				OpenTime:            "09:00",
				CloseTime:           "21:00",
				SlotIntervalMinutes: 30,
			},
		},
		appointments: map[uint]*models.Appointment{},
		nextID:       100,
	}
}

func (f *fakeRepo) addStaff(id uint, name string) {
	f.staff = append(f.staff, models.Staff{ID: id, BusinessID: 1, Name: name, Active: true})
}

func (f *fakeRepo) addShift(staffID uint, start, end string) {
	f.shifts = append(f.shifts, models.Shift{
		StaffID: staffID, Date: testDate, StartTime: start, EndTime: end, Available: true,
	})
}

func (f *fakeRepo) addService(id uint, name string, duration, padding int, price float64) {
	f.services = append(f.services, models.Service{
		ID:              id,
		BusinessID:      1,
		Name:            name,
		DurationMinutes: duration,
		PaddingMinutes:  padding,
		Price:           price,
		Active:          true,
	})
}

func (f *fakeRepo) assign(staffID uint, serviceIDs ...uint) {
	for _, id := range serviceIDs {
		f.assignments = append(f.assignments, models.StaffService{BusinessID: 1, StaffID: staffID, ServiceID: id})
	}
}

func (f *fakeRepo) addAppointment(ap models.Appointment) *models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	ap.ID = f.nextID
	if ap.BusinessID == 0 {
		ap.BusinessID = 1
	}
	if ap.Date == "" {
		ap.Date = testDate
	}
	f.appointments[ap.ID] = &ap
	return &ap
}

func (f *fakeRepo) withLinks(ap models.Appointment) models.Appointment {
	ap.Services = nil
	for _, l := range f.links {
		if l.AppointmentID == ap.ID {
			ap.Services = append(ap.Services, l)
		}
	}
	return ap
}

func (f *fakeRepo) GetBusinessByID(_ context.Context, id uint) (*models.Business, error) {
	b, ok := f.businesses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) GetStaff(_ context.Context, businessID, staffID uint) (*models.Staff, error) {
	for _, s := range f.staff {
		if s.ID == staffID && s.BusinessID == businessID {
			cp := s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRepo) ListActiveStaff(_ context.Context, businessID uint) ([]models.Staff, error) {
	var out []models.Staff
	for _, s := range f.staff {
		if s.BusinessID == businessID && s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAssignments(_ context.Context, businessID uint, serviceIDs []uint) ([]models.StaffService, error) {
	var out []models.StaffService
	for _, a := range f.assignments {
		if a.BusinessID != businessID {
			continue
		}
		for _, id := range serviceIDs {
			if a.ServiceID == id {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) CountAssignments(_ context.Context, businessID uint) (int64, error) {
	var n int64
	for _, a := range f.assignments {
		if a.BusinessID == businessID {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) GetService(_ context.Context, businessID, serviceID uint) (*models.Service, error) {
	for _, s := range f.services {
		if s.ID == serviceID && s.BusinessID == businessID {
			cp := s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRepo) ListServices(_ context.Context, businessID uint) ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		if s.BusinessID == businessID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetResource(_ context.Context, businessID uint, tag string) (*models.Resource, error) {
	for _, r := range f.resources {
		if r.BusinessID == businessID && r.Tag == tag {
			cp := r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRepo) ListShifts(_ context.Context, staffID uint, date string) ([]models.Shift, error) {
	var out []models.Shift
	for _, s := range f.shifts {
		if s.StaffID == staffID && s.Date == date {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListBreaks(_ context.Context, staffID uint, date string) ([]models.Break, error) {
	var out []models.Break
	for _, b := range f.breaks {
		if b.StaffID == staffID && b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListConfirmedAppointments(_ context.Context, businessID uint, staffID *uint, date string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BusinessID != businessID || ap.Date != date || ap.Status != string(domain.StatusConfirmed) {
			continue
		}
		if staffID != nil && (ap.StaffID == nil || *ap.StaffID != *staffID) {
			continue
		}
		out = append(out, f.withLinks(*ap))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, other := range f.appointments {
		if other.StaffID == nil || ap.StaffID == nil || *other.StaffID != *ap.StaffID {
			continue
		}
		if other.Date != ap.Date || other.StartTime != ap.StartTime {
			continue
		}
		if other.Status == string(domain.StatusPending) || other.Status == string(domain.StatusConfirmed) {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	ap.ID = f.nextID
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) CreateAppointmentServices(_ context.Context, links []models.AppointmentService) error {
	if f.failLinks != nil {
		return f.failLinks
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.links = append(f.links, links...)
	return nil
}

func (f *fakeRepo) DeleteAppointment(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.appointments, id)
	kept := f.links[:0]
	for _, l := range f.links {
		if l.AppointmentID != id {
			kept = append(kept, l)
		}
	}
	f.links = kept
	return nil
}

func (f *fakeRepo) GetAppointmentByID(_ context.Context, id uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ap, ok := f.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := f.withLinks(*ap)
	return &cp, nil
}

func (f *fakeRepo) GetAppointmentForStaff(ctx context.Context, appointmentID, staffID uint) (*models.Appointment, error) {
	ap, err := f.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap.StaffID == nil || *ap.StaffID != staffID {
		return nil, domain.ErrNotFound
	}
	return ap, nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.appointments[ap.ID]; !ok {
		return errors.New("missing appointment")
	}
	cp := *ap
	cp.Services = nil
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) ListAppointmentsForDay(_ context.Context, staffID uint, date string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.StaffID != nil && *ap.StaffID == staffID && ap.Date == date {
			out = append(out, f.withLinks(*ap))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (f *fakeRepo) ListWaitlistCandidates(_ context.Context, businessID uint, names []string, date string, limit int) ([]models.WaitlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.WaitlistEntry
	for _, e := range f.waitlist {
		if e.BusinessID != businessID || e.DesiredDate != date || e.Notified {
			continue
		}
		for _, n := range names {
			if e.ServiceName == n {
				out = append(out, e)
				break
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) NotifyWaitlistEntry(_ context.Context, entryID uint, n *models.Notification) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.waitlist {
		if f.waitlist[i].ID != entryID {
			continue
		}
		if f.waitlist[i].Notified {
			return false, nil
		}
		f.waitlist[i].Notified = true
		f.notifications = append(f.notifications, *n)
		return true, nil
	}
	return false, nil
}

func (f *fakeRepo) appointmentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.appointments)
}

var _ domain.Repository = (*fakeRepo)(nil)

// ---------- collaborators ----------

type recordingCache struct {
	mu          sync.Mutex
	stored      map[domain.AvailabilityKey][]domain.TimeSlot
	invalidated []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{stored: map[domain.AvailabilityKey][]domain.TimeSlot{}}
}

func (c *recordingCache) Get(_ context.Context, k domain.AvailabilityKey) ([]domain.TimeSlot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.stored[k]
	return s, ok
}

func (c *recordingCache) Set(_ context.Context, k domain.AvailabilityKey, s []domain.TimeSlot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stored[k] = s
}

func (c *recordingCache) Invalidate(_ context.Context, _ uint, date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, date)
}

type recordingEvents struct {
	mu    sync.Mutex
	types []string
}

func (e *recordingEvents) Publish(_ context.Context, eventType, _ string, _ any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.types = append(e.types, eventType)
	return nil
}

type recordingTrigger struct {
	ids []uint
}

func (t *recordingTrigger) Enqueue(id uint) {
	t.ids = append(t.ids, id)
}

func uintPtr(v uint) *uint { return &v }

func at(minutes int) time.Time {
	return time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(minutes) * time.Minute)
}
