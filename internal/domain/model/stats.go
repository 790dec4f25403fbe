//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// Stats summarizes platform activity for the admin dashboard.
type Stats struct {
	TotalUsers    int     `json:"total_users"`
	TotalFoods    int     `json:"total_foods"`
	TotalReviews  int     `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
}

// Activity is one entry in the admin dashboard's recent-activity feed.
type Activity struct {
	Kind       string    `json:"kind"` // "review", "registration", "food"
	Summary    string    `json:"summary"`
	OccurredAt time.Time `json:"occurred_at"`
}
