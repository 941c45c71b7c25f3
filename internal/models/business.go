package models

import "time"

type Business struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Timezone string `gorm:"size:64" json:"timezone"`

	// Booking grid bounds, HH:mm.
	OpenTime            string `gorm:"size:5;default:'09:00'" json:"open_time"`
	CloseTime           string `gorm:"size:5;default:'21:00'" json:"close_time"`
	SlotIntervalMinutes int    `gorm:"default:30" json:"slot_interval_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
