package rest

import (
	"context"
	"fmt"

	"taskflow/internal/domain"
)

// CreateTask submits a task draft against the given project and returns
// the created task with its server-assigned id.
func (c *Client) CreateTask(ctx context.Context, projectID int64, draft domain.TaskDraft) (*domain.Task, error) {
	var created domain.Task
	path := fmt.Sprintf("/projects/%d/task/create/", projectID)
	if err := c.post(ctx, c.authed, path, draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
