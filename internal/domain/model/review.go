//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MinReviewRating and MaxReviewRating bound the 1-5 star scale.
	MinReviewRating = 1
	MaxReviewRating = 5

	maxReviewCommentLen = 1000
)

// Review represents one user's rating of a food.
type Review struct {
	ID        string    `json:"id"`
	FoodID    string    `json:"food_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateReviewRequest represents parameters to create a Review.
type CreateReviewRequest struct {
	FoodID  string `json:"food_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// Validate returns field-level messages for an invalid create request.
func (r CreateReviewRequest) Validate() map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(r.FoodID) == "" {
		fields["food_id"] = "Food is required."
	}
	if r.Rating < MinReviewRating || r.Rating > MaxReviewRating {
		fields["rating"] = "Rating must be between 1 and 5."
	}
	if utf8.RuneCountInString(r.Comment) > maxReviewCommentLen {
		fields["comment"] = "Comment is too long."
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
