package models

import "time"

type Staff struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	BusinessID uint     `gorm:"index" json:"business_id"`
	Business   Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StaffService assigns a service to a staff member.
type StaffService struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index" json:"business_id"`
	StaffID    uint `gorm:"uniqueIndex:idx_staff_service" json:"staff_id"`
	ServiceID  uint `gorm:"uniqueIndex:idx_staff_service" json:"service_id"`

	CreatedAt time.Time `json:"created_at"`
}
