package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/forkful/forkful-cli/internal/domain/model"
	apperrors "github.com/forkful/forkful-cli/internal/errors"
)

// ListFoodReviews returns the reviews posted for one food.
func (c *Client) ListFoodReviews(ctx context.Context, foodID string) ([]model.Review, error) {
	var reviews []model.Review
	err := c.call(ctx, callParams{
		method: http.MethodGet,
		path:   "/foods/" + url.PathEscape(foodID) + "/reviews",
		out:    &reviews,
	})
	return reviews, err
}

// CreateReview posts a review as the signed-in user. Input is validated
// locally before any request is made.
func (c *Client) CreateReview(ctx context.Context, req model.CreateReviewRequest) (model.Review, error) {
	if fields := req.Validate(); len(fields) > 0 {
		return model.Review{}, apperrors.ValidationFields("invalid review", fields)
	}
	var review model.Review
	err := c.call(ctx, callParams{
		method:  http.MethodPost,
		path:    "/reviews",
		payload: req,
		out:     &review,
		authed:  true,
	})
	return review, err
}
