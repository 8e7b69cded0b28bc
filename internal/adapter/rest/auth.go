package rest

import (
	"context"

	"taskflow/internal/domain"
)

// Authenticate performs the login call. It goes through the plain
// client: there is no bearer credential yet, and a stale one must not
// leak into the request.
func (c *Client) Authenticate(ctx context.Context, creds domain.Credentials) (*domain.StoredSession, error) {
	var resp struct {
		Access string             `json:"access"`
		User   domain.UserProfile `json:"user"`
	}
	if err := c.post(ctx, c.plain, "/token/", creds, &resp); err != nil {
		return nil, err
	}
	return &domain.StoredSession{Token: resp.Access, User: resp.User}, nil
}
