//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxFoodNameLen        = 120
	maxFoodDescriptionLen = 2000
)

// Food represents a dish users can browse and review.
type Food struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Price       float64   `json:"price,omitempty"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateFoodRequest represents parameters to create a Food (admin only).
type CreateFoodRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// Validate returns field-level messages for an invalid create request.
func (r CreateFoodRequest) Validate() map[string]string {
	fields := make(map[string]string)
	name := strings.TrimSpace(r.Name)
	if name == "" {
		fields["name"] = "Name is required."
	} else if utf8.RuneCountInString(name) > maxFoodNameLen {
		fields["name"] = "Name is too long."
	}
	if utf8.RuneCountInString(r.Description) > maxFoodDescriptionLen {
		fields["description"] = "Description is too long."
	}
	if r.Price < 0 {
		fields["price"] = "Price cannot be negative."
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// UpdateFoodRequest represents parameters to update a Food (admin only).
// Nil fields are left unchanged.
type UpdateFoodRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
}
