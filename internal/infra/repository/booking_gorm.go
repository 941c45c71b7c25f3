package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Business / Staff
// --------------------------------------------------

func (r *BookingGormRepository) GetBusinessByID(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var b models.Business
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) GetStaff(
	ctx context.Context,
	businessID uint,
	staffID uint,
) (*models.Staff, error) {

	var s models.Staff
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", staffID, businessID).
		First(&s).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *BookingGormRepository) ListActiveStaff(
	ctx context.Context,
	businessID uint,
) ([]models.Staff, error) {

	var staff []models.Staff
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND active = ?", businessID, true).
		Order("id ASC").
		Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

// --------------------------------------------------
// Assignments
// --------------------------------------------------

func (r *BookingGormRepository) ListAssignments(
	ctx context.Context,
	businessID uint,
	serviceIDs []uint,
) ([]models.StaffService, error) {

	if len(serviceIDs) == 0 {
		return nil, nil
	}

	var rows []models.StaffService
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND service_id IN ?", businessID, serviceIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingGormRepository) CountAssignments(
	ctx context.Context,
	businessID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.StaffService{}).
		Where("business_id = ?", businessID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	businessID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", serviceID, businessID).
		First(&svc).Error; err != nil {
		return nil, notFound(err)
	}
	return &svc, nil
}

func (r *BookingGormRepository) ListServices(
	ctx context.Context,
	businessID uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *BookingGormRepository) GetResource(
	ctx context.Context,
	businessID uint,
	tag string,
) (*models.Resource, error) {

	var res models.Resource
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND tag = ?", businessID, tag).
		First(&res).Error; err != nil {
		return nil, notFound(err)
	}
	return &res, nil
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *BookingGormRepository) ListShifts(
	ctx context.Context,
	staffID uint,
	date string,
) ([]models.Shift, error) {

	var shifts []models.Shift
	if err := r.db.WithContext(ctx).
		Where("staff_id = ? AND date = ?", staffID, date).
		Order("start_time ASC").
		Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *BookingGormRepository) ListBreaks(
	ctx context.Context,
	staffID uint,
	date string,
) ([]models.Break, error) {

	var breaks []models.Break
	if err := r.db.WithContext(ctx).
		Where("staff_id = ? AND date = ?", staffID, date).
		Order("start_time ASC").
		Find(&breaks).Error; err != nil {
		return nil, err
	}
	return breaks, nil
}

func (r *BookingGormRepository) ListConfirmedAppointments(
	ctx context.Context,
	businessID uint,
	staffID *uint,
	date string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Services").
		Where(
			"business_id = ? AND date = ? AND status = ?",
			businessID, date, string(domain.StatusConfirmed),
		)
	if staffID != nil {
		q = q.Where("staff_id = ?", *staffID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment (commit)
// --------------------------------------------------

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
}

func (r *BookingGormRepository) CreateAppointmentServices(
	ctx context.Context,
	links []models.AppointmentService,
) error {
	if len(links) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&links).Error
}

func (r *BookingGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("appointment_id = ?", id).
			Delete(&models.AppointmentService{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Appointment{}, id).Error
	})
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		First(&ap, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

func (r *BookingGormRepository) GetAppointmentForStaff(
	ctx context.Context,
	appointmentID uint,
	staffID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("id = ? AND staff_id = ?", appointmentID, staffID).
		First(&ap).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

func (r *BookingGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	staffID uint,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("staff_id = ? AND date = ?", staffID, date).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Waitlist
// --------------------------------------------------

func (r *BookingGormRepository) ListWaitlistCandidates(
	ctx context.Context,
	businessID uint,
	serviceNames []string,
	date string,
	limit int,
) ([]models.WaitlistEntry, error) {

	if len(serviceNames) == 0 {
		return nil, nil
	}

	var entries []models.WaitlistEntry
	if err := r.db.WithContext(ctx).
		Where(
			"business_id = ? AND service_name IN ? AND desired_date = ? AND notified = ?",
			businessID, serviceNames, date, false,
		).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *BookingGormRepository) NotifyWaitlistEntry(
	ctx context.Context,
	entryID uint,
	n *models.Notification,
) (bool, error) {

	claimed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.WaitlistEntry{}).
			Where("id = ? AND notified = ?", entryID, false).
			Update("notified", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := tx.Create(n).Error; err != nil {
			return err
		}
		claimed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return claimed, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
