package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/forkful/forkful-cli/internal/domain/model"
)

// ListFoods returns the public food catalog.
func (c *Client) ListFoods(ctx context.Context) ([]model.Food, error) {
	var foods []model.Food
	err := c.call(ctx, callParams{
		method: http.MethodGet,
		path:   "/foods",
		out:    &foods,
	})
	return foods, err
}

// GetFood returns a single food by id.
func (c *Client) GetFood(ctx context.Context, id string) (model.Food, error) {
	var food model.Food
	err := c.call(ctx, callParams{
		method: http.MethodGet,
		path:   "/foods/" + url.PathEscape(id),
		out:    &food,
	})
	return food, err
}
