package apiclient

import (
	"context"
	"net/http"

	"github.com/forkful/forkful-cli/internal/domain/model"
)

// Profile returns the signed-in user's profile with their reviews.
func (c *Client) Profile(ctx context.Context) (model.Profile, error) {
	var profile model.Profile
	err := c.call(ctx, callParams{
		method: http.MethodGet,
		path:   "/profile",
		out:    &profile,
		authed: true,
	})
	return profile, err
}
