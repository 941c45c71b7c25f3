package models

import "time"

type Appointment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	BusinessID uint `gorm:"index" json:"business_id"`
	ClientID   uint `gorm:"index" json:"client_id"`

	StaffID *uint `gorm:"uniqueIndex:idx_appointment_staff_slot,where:status = 'pending' OR status = 'confirmed'" json:"staff_id"`

	// ServiceID is the first service of the bundle; ServiceName is the combined display name.
	ServiceID   uint   `json:"service_id"`
	ServiceName string `gorm:"size:255" json:"service_name"`

	Date            string `gorm:"size:10;index;uniqueIndex:idx_appointment_staff_slot,where:status = 'pending' OR status = 'confirmed'" json:"date"`
	StartTime       string `gorm:"size:5;uniqueIndex:idx_appointment_staff_slot,where:status = 'pending' OR status = 'confirmed'" json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`

	// Legacy free-form schedule text, kept for older readers.
	DisplayTime string `gorm:"size:100" json:"display_time"`

	Status     string  `gorm:"size:20;default:'pending'" json:"status"`
	TotalPrice float64 `json:"total_price"`
	Notes      string  `gorm:"size:255" json:"notes"`

	Services []AppointmentService `gorm:"constraint:OnDelete:CASCADE;" json:"services,omitempty"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentService is the per-service row of a bundled appointment.
type AppointmentService struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`
	ServiceID     uint `json:"service_id"`

	ServiceName     string   `gorm:"size:100" json:"service_name"`
	Position        int      `json:"position"`
	DurationMinutes int      `json:"duration_minutes"`
	PaddingMinutes  int      `json:"padding_minutes"`
	Price           float64  `json:"price"`
	Options         []string `gorm:"serializer:json;type:text" json:"options"`

	CreatedAt time.Time `json:"created_at"`
}
