package app

import (
	"context"

	"taskflow/internal/domain"
	"taskflow/internal/state"
)

// ProjectService encapsulates the project list and detail use cases.
type ProjectService struct {
	gw    domain.ProjectGateway
	store *state.Store[domain.Project]
	reqs  inflight
}

// NewProjectService creates a ProjectService backed by the given
// gateway, with an empty store.
func NewProjectService(gw domain.ProjectGateway) *ProjectService {
	return &ProjectService{gw: gw, store: state.NewStore[domain.Project]()}
}

// Store exposes the project collection store for reads and
// subscriptions.
func (s *ProjectService) Store() *state.Store[domain.Project] {
	return s.store
}

// FetchProjects replaces the project list with the server's. A failure
// leaves the previous list visible.
func (s *ProjectService) FetchProjects(ctx context.Context) error {
	id := s.reqs.begin()
	s.store.Dispatch(state.Event[domain.Project]{Kind: state.FetchStart})

	items, err := s.gw.ListProjects(ctx)
	if !s.reqs.current(id) {
		return nil
	}
	if err != nil {
		s.store.Dispatch(state.Event[domain.Project]{Kind: state.FetchFailure, Err: err.Error()})
		return err
	}
	s.store.Dispatch(state.Event[domain.Project]{Kind: state.FetchSuccess, Items: items})
	return nil
}

// FetchProject loads one project (with its nested tasks) into the
// store's detail slot.
func (s *ProjectService) FetchProject(ctx context.Context, projectID int64) error {
	id := s.reqs.begin()
	s.store.Dispatch(state.Event[domain.Project]{Kind: state.FetchStart})

	project, err := s.gw.GetProject(ctx, projectID)
	if !s.reqs.current(id) {
		return nil
	}
	if err != nil {
		s.store.Dispatch(state.Event[domain.Project]{Kind: state.FetchFailure, Err: err.Error()})
		return err
	}
	s.store.Dispatch(state.Event[domain.Project]{Kind: state.DetailSuccess, Item: project})
	return nil
}

// CreateProject validates the draft and, if it passes, submits it. A
// validation failure short-circuits before any store or network
// activity. On success the created project is appended to the list.
func (s *ProjectService) CreateProject(ctx context.Context, draft domain.ProjectDraft) (*domain.Project, error) {
	if err := validateProjectDraft(draft); err != nil {
		return nil, err
	}

	id := s.reqs.begin()
	s.store.Dispatch(state.Event[domain.Project]{Kind: state.CreateStart})

	created, err := s.gw.CreateProject(ctx, draft)
	if !s.reqs.current(id) {
		return nil, nil
	}
	if err != nil {
		s.store.Dispatch(state.Event[domain.Project]{Kind: state.CreateFailure, Err: err.Error()})
		return nil, err
	}
	s.store.Dispatch(state.Event[domain.Project]{Kind: state.CreateSuccess, Item: created})
	return created, nil
}

// ClearCurrent drops the detail slot, typically on leaving a project
// detail view.
func (s *ProjectService) ClearCurrent() {
	s.store.Dispatch(state.Event[domain.Project]{Kind: state.ClearCurrent})
}

// Invalidate abandons any in-flight fetch or create so a late response
// cannot update the store.
func (s *ProjectService) Invalidate() {
	s.reqs.invalidate()
}
