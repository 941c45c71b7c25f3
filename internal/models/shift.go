package models

import "time"

type Shift struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StaffID uint `gorm:"index:idx_shift_staff_date" json:"staff_id"`

	Date      string `gorm:"size:10;index:idx_shift_staff_date" json:"date"` // YYYY-MM-DD
	StartTime string `gorm:"size:5" json:"start_time"`                       // HH:mm
	EndTime   string `gorm:"size:5" json:"end_time"`
	Available bool   `gorm:"default:true" json:"available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Break is an ad hoc pause inside a shift.
type Break struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StaffID uint `gorm:"index:idx_break_staff_date" json:"staff_id"`

	Date            string `gorm:"size:10;index:idx_break_staff_date" json:"date"`
	StartTime       string `gorm:"size:5" json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Reason          string `gorm:"size:100" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
