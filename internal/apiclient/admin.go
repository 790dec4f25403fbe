package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/forkful/forkful-cli/internal/domain/model"
	apperrors "github.com/forkful/forkful-cli/internal/errors"
)

// Admin endpoints. The backend enforces the role; a non-admin credential
// gets a Forbidden error back, the client does not pre-check.

// Stats returns the admin dashboard counters.
func (c *Client) Stats(ctx context.Context) (model.Stats, error) {
	var stats model.Stats
	err := c.call(ctx, callParams{
		method: http.MethodGet,
		path:   "/admin/stats",
		out:    &stats,
		authed: true,
	})
	return stats, err
}

// RecentActivity returns the admin dashboard activity feed.
func (c *Client) RecentActivity(ctx context.Context) ([]model.Activity, error) {
	var feed []model.Activity
	err := c.call(ctx, callParams{
		method: http.MethodGet,
		path:   "/admin/activity",
		out:    &feed,
		authed: true,
	})
	return feed, err
}

// CreateFood adds a food to the catalog. Input is validated locally
// before any request is made.
func (c *Client) CreateFood(ctx context.Context, req model.CreateFoodRequest) (model.Food, error) {
	if fields := req.Validate(); len(fields) > 0 {
		return model.Food{}, apperrors.ValidationFields("invalid food", fields)
	}
	var food model.Food
	err := c.call(ctx, callParams{
		method:  http.MethodPost,
		path:    "/admin/foods",
		payload: req,
		out:     &food,
		authed:  true,
	})
	return food, err
}

// UpdateFood applies a partial update to a food.
func (c *Client) UpdateFood(ctx context.Context, id string, req model.UpdateFoodRequest) (model.Food, error) {
	var food model.Food
	err := c.call(ctx, callParams{
		method:  http.MethodPut,
		path:    "/admin/foods/" + url.PathEscape(id),
		payload: req,
		out:     &food,
		authed:  true,
	})
	return food, err
}

// DeleteFood removes a food and its reviews.
func (c *Client) DeleteFood(ctx context.Context, id string) error {
	return c.call(ctx, callParams{
		method: http.MethodDelete,
		path:   "/admin/foods/" + url.PathEscape(id),
		authed: true,
	})
}

// ListReviews returns every review across all foods.
func (c *Client) ListReviews(ctx context.Context) ([]model.Review, error) {
	var reviews []model.Review
	err := c.call(ctx, callParams{
		method: http.MethodGet,
		path:   "/admin/reviews",
		out:    &reviews,
		authed: true,
	})
	return reviews, err
}

// DeleteReview removes one review.
func (c *Client) DeleteReview(ctx context.Context, id string) error {
	return c.call(ctx, callParams{
		method: http.MethodDelete,
		path:   "/admin/reviews/" + url.PathEscape(id),
		authed: true,
	})
}

// ListUsers returns every registered account.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := c.call(ctx, callParams{
		method: http.MethodGet,
		path:   "/admin/users",
		out:    &users,
		authed: true,
	})
	return users, err
}
