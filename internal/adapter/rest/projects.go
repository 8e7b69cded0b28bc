package rest

import (
	"context"
	"fmt"

	"taskflow/internal/domain"
)

// ListProjects fetches every project visible to the current user, tasks
// nested.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := c.get(ctx, "/projects/", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches a single project with its nested tasks.
func (c *Client) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	var project domain.Project
	if err := c.get(ctx, fmt.Sprintf("/projects/%d", id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject submits a project draft and returns the created project
// with its server-assigned id.
func (c *Client) CreateProject(ctx context.Context, draft domain.ProjectDraft) (*domain.Project, error) {
	var created domain.Project
	if err := c.post(ctx, c.authed, "/projects/create/", draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
