package rest

import (
	"context"
	"net/url"

	"taskflow/internal/domain"
)

// ListUsers fetches users, optionally filtered by role through the
// ?role= query parameter.
func (c *Client) ListUsers(ctx context.Context, role domain.Role) ([]domain.UserProfile, error) {
	var query url.Values
	if role != "" {
		query = url.Values{"role": {string(role)}}
	}

	var users []domain.UserProfile
	if err := c.get(ctx, "/users/", query, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser submits a user draft and returns the created profile. The
// password travels only in the request.
func (c *Client) CreateUser(ctx context.Context, draft domain.UserDraft) (*domain.UserProfile, error) {
	var created domain.UserProfile
	if err := c.post(ctx, c.authed, "/users/create/", draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
