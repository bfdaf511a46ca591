package models

import "time"

// RestrictedArea is a controlled zone. Only active areas accept entries;
// RequiredAccessLevel is the minimum role that may enter.
type RestrictedArea struct {
	ID                  int       `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description,omitempty"`
	RequiredAccessLevel Role      `json:"required_access_level"`
	IsActive            bool      `json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
