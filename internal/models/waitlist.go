package models

import "time"

type WaitlistEntry struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	UserID     uint `gorm:"index" json:"user_id"`
	BusinessID uint `gorm:"index:idx_waitlist_match" json:"business_id"`

	ServiceName string `gorm:"size:100;index:idx_waitlist_match" json:"service_name"`
	DesiredDate string `gorm:"size:10;index:idx_waitlist_match" json:"desired_date"`
	Note        string `gorm:"size:255" json:"note"`
	Notified    bool   `gorm:"default:false" json:"notified"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

type Notification struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	UserID     uint   `gorm:"index" json:"user_id"`
	BusinessID uint   `json:"business_id"`
	Type       string `gorm:"size:50" json:"type"`
	Title      string `gorm:"size:150" json:"title"`
	Body       string `gorm:"size:500" json:"body"`
	Data       string `gorm:"type:text" json:"data"`
	Read       bool   `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}
