package models

import (
	"time"
)

// Ad represents an advertisement placement
type Ad struct {
	ID        string     `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	ImageURL  string     `json:"image_url" db:"image_url"`
	TargetURL string     `json:"target_url" db:"target_url"`
	Placement string     `json:"placement" db:"placement"`
	Active    bool       `json:"active" db:"active"`
	StartsAt  *time.Time `json:"starts_at,omitempty" db:"starts_at"`
	EndsAt    *time.Time `json:"ends_at,omitempty" db:"ends_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// ValidPlacements defines allowed ad placements
var ValidPlacements = map[string]bool{
	"banner":  true,
	"sidebar": true,
	"inline":  true,
}

// CreateAdRequest is the payload for ad creation
type CreateAdRequest struct {
	Title     string     `json:"title" binding:"required"`
	ImageURL  string     `json:"image_url" binding:"required"`
	TargetURL string     `json:"target_url" binding:"required"`
	Placement string     `json:"placement" binding:"required"`
	Active    bool       `json:"active"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}
