package app

import (
	"context"
	"sync"

	"taskflow/internal/domain"
	"taskflow/internal/state"
)

// UserService encapsulates the user list and creation use cases. The
// role-filtered fetches (managers, regular users) are distinct queries
// over the same entity; their results are cached as side-lists without
// the loading/error dance of the main store.
type UserService struct {
	gw    domain.UserGateway
	store *state.Store[domain.UserProfile]
	reqs  inflight

	mu       sync.Mutex
	managers []domain.UserProfile
	regulars []domain.UserProfile
}

// NewUserService creates a UserService backed by the given gateway.
func NewUserService(gw domain.UserGateway) *UserService {
	return &UserService{gw: gw, store: state.NewStore[domain.UserProfile]()}
}

// Store exposes the user collection store for reads and subscriptions.
func (s *UserService) Store() *state.Store[domain.UserProfile] {
	return s.store
}

// FetchUsers replaces the user list with the server's. A failure leaves
// the previous list visible.
func (s *UserService) FetchUsers(ctx context.Context) error {
	id := s.reqs.begin()
	s.store.Dispatch(state.Event[domain.UserProfile]{Kind: state.FetchStart})

	items, err := s.gw.ListUsers(ctx, "")
	if !s.reqs.current(id) {
		return nil
	}
	if err != nil {
		s.store.Dispatch(state.Event[domain.UserProfile]{Kind: state.FetchFailure, Err: err.Error()})
		return err
	}
	s.store.Dispatch(state.Event[domain.UserProfile]{Kind: state.FetchSuccess, Items: items})
	return nil
}

// FetchManagers refreshes and returns the manager side-list.
func (s *UserService) FetchManagers(ctx context.Context) ([]domain.UserProfile, error) {
	items, err := s.gw.ListUsers(ctx, domain.RoleManager)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.managers = items
	s.mu.Unlock()
	return items, nil
}

// FetchRegularUsers refreshes and returns the regular-user side-list.
func (s *UserService) FetchRegularUsers(ctx context.Context) ([]domain.UserProfile, error) {
	items, err := s.gw.ListUsers(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.regulars = items
	s.mu.Unlock()
	return items, nil
}

// Managers returns the last fetched manager side-list.
func (s *UserService) Managers() []domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.managers
}

// RegularUsers returns the last fetched regular-user side-list.
func (s *UserService) RegularUsers() []domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regulars
}

// FetchAssignableUsers returns the users the given role may assign a
// task to, per the authorization table: managers see regular users,
// admins see managers and regular users.
func (s *UserService) FetchAssignableUsers(ctx context.Context, assigner domain.Role) ([]domain.UserProfile, error) {
	roles := domain.AssignableRoles(assigner)
	if len(roles) == 0 {
		return nil, nil
	}

	all, err := s.gw.ListUsers(ctx, "")
	if err != nil {
		return nil, err
	}

	out := make([]domain.UserProfile, 0, len(all))
	for _, u := range all {
		if domain.CanAssignTo(assigner, u.Role) {
			out = append(out, u)
		}
	}
	return out, nil
}

// CreateUser validates the draft and, if it passes, submits it. A
// validation failure short-circuits before any store or network
// activity. On success the created user is appended to the list.
func (s *UserService) CreateUser(ctx context.Context, draft domain.UserDraft) (*domain.UserProfile, error) {
	if err := validateUserDraft(draft); err != nil {
		return nil, err
	}

	id := s.reqs.begin()
	s.store.Dispatch(state.Event[domain.UserProfile]{Kind: state.CreateStart})

	created, err := s.gw.CreateUser(ctx, draft)
	if !s.reqs.current(id) {
		return nil, nil
	}
	if err != nil {
		s.store.Dispatch(state.Event[domain.UserProfile]{Kind: state.CreateFailure, Err: err.Error()})
		return nil, err
	}
	s.store.Dispatch(state.Event[domain.UserProfile]{Kind: state.CreateSuccess, Item: created})
	return created, nil
}

// Invalidate abandons any in-flight fetch or create so a late response
// cannot update the store.
func (s *UserService) Invalidate() {
	s.reqs.invalidate()
}
