package models

import "time"

type Service struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index" json:"business_id"`

	Name            string  `gorm:"size:100;not null" json:"name"`
	Description     string  `gorm:"size:255" json:"description"`
	DurationMinutes int     `json:"duration_minutes"`
	PaddingMinutes  int     `json:"padding_minutes"`
	Price           float64 `json:"price"`
	Active          bool    `gorm:"default:true" json:"active"`

	RequiredResource string `gorm:"size:50" json:"required_resource"`
	RequiredSkill    string `gorm:"size:50" json:"required_skill"`

	// Price modifiers keyed by option name, e.g. {"long_hair": 15}.
	PricingModifiers map[string]float64 `gorm:"serializer:json;type:text" json:"pricing_modifiers"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OccupiedMinutes is duration plus cleanup padding.
func (s Service) OccupiedMinutes() int {
	return s.DurationMinutes + s.PaddingMinutes
}

// Resource is a shared asset (chair, room, basin) with a fixed capacity.
type Resource struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	BusinessID uint   `gorm:"uniqueIndex:idx_resource_tag" json:"business_id"`
	Tag        string `gorm:"size:50;uniqueIndex:idx_resource_tag" json:"tag"`
	Quantity   int    `gorm:"default:1" json:"quantity"`

	CreatedAt time.Time `json:"created_at"`
}
