package app

import (
	"context"

	"taskflow/internal/domain"
	"taskflow/internal/state"
)

// TaskService encapsulates task creation. Tasks only exist inside a
// project, so every operation is project-scoped.
type TaskService struct {
	gw    domain.TaskGateway
	store *state.Store[domain.Task]
	reqs  inflight
}

// NewTaskService creates a TaskService backed by the given gateway.
func NewTaskService(gw domain.TaskGateway) *TaskService {
	return &TaskService{gw: gw, store: state.NewStore[domain.Task]()}
}

// Store exposes the task collection store for reads and subscriptions.
func (s *TaskService) Store() *state.Store[domain.Task] {
	return s.store
}

// CreateTask validates the draft and, if it passes, submits it against
// the given project. A validation failure short-circuits before any
// store or network activity.
func (s *TaskService) CreateTask(ctx context.Context, projectID int64, draft domain.TaskDraft) (*domain.Task, error) {
	if err := validateTaskDraft(draft); err != nil {
		return nil, err
	}

	id := s.reqs.begin()
	s.store.Dispatch(state.Event[domain.Task]{Kind: state.CreateStart})

	created, err := s.gw.CreateTask(ctx, projectID, draft)
	if !s.reqs.current(id) {
		return nil, nil
	}
	if err != nil {
		s.store.Dispatch(state.Event[domain.Task]{Kind: state.CreateFailure, Err: err.Error()})
		return nil, err
	}
	s.store.Dispatch(state.Event[domain.Task]{Kind: state.CreateSuccess, Item: created})
	return created, nil
}

// Invalidate abandons any in-flight create so a late response cannot
// update the store.
func (s *TaskService) Invalidate() {
	s.reqs.invalidate()
}
