// Package memory implements in-memory fakes of the remote service and
// the credential store for tests and offline development.
package memory

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"sync"

	"taskflow/internal/domain"
)

// Backend is an in-memory stand-in for the whole remote service.
type Backend struct {
	mu        sync.Mutex
	users     []domain.UserProfile
	passwords map[string]string
	projects  []domain.Project

	userIDCounter    int64
	projectIDCounter int64
	taskIDCounter    int64
}

// Ensure the gateway ports are met.
var _ domain.AuthGateway = (*Backend)(nil)
var _ domain.ProjectGateway = (*Backend)(nil)
var _ domain.TaskGateway = (*Backend)(nil)
var _ domain.UserGateway = (*Backend)(nil)

// New creates an empty backend.
func New() *Backend {
	return &Backend{passwords: make(map[string]string)}
}

// SeedUser registers an account that can authenticate with the given
// password and returns its profile with an id assigned.
func (b *Backend) SeedUser(profile domain.UserProfile, password string) domain.UserProfile {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.userIDCounter++
	profile.ID = b.userIDCounter
	b.users = append(b.users, profile)
	b.passwords[profile.Username] = password
	return profile
}

// SeedProject registers a project and returns it with an id assigned.
func (b *Backend) SeedProject(project domain.Project) domain.Project {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.projectIDCounter++
	project.ID = b.projectIDCounter
	b.projects = append(b.projects, project)
	return project
}

// --- AuthGateway ---

// Authenticate checks the username/password pair and issues a random
// opaque token.
func (b *Backend) Authenticate(ctx context.Context, creds domain.Credentials) (*domain.StoredSession, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored, ok := b.passwords[creds.Username]
	if !ok || stored != creds.Password {
		return nil, &domain.AuthError{Message: "No active account found with the given credentials"}
	}

	for _, u := range b.users {
		if u.Username == creds.Username {
			return &domain.StoredSession{Token: generateToken(), User: u}, nil
		}
	}
	return nil, &domain.AuthError{Message: "No active account found with the given credentials"}
}

// --- ProjectGateway ---

// ListProjects returns a copy of all projects.
func (b *Backend) ListProjects(ctx context.Context) ([]domain.Project, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]domain.Project, len(b.projects))
	copy(out, b.projects)
	return out, nil
}

// GetProject returns the project with the given id.
func (b *Backend) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.projects {
		if b.projects[i].ID == id {
			p := b.projects[i]
			return &p, nil
		}
	}
	return nil, &domain.RemoteError{Status: http.StatusNotFound, Message: "Not found."}
}

// CreateProject assigns an id and stores the new project.
func (b *Backend) CreateProject(ctx context.Context, draft domain.ProjectDraft) (*domain.Project, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.projectIDCounter++
	p := domain.Project{
		ID:                 b.projectIDCounter,
		ProjectName:        draft.ProjectName,
		ProjectDescription: draft.ProjectDescription,
		Status:             domain.StatusCreated,
		StartDate:          draft.StartDate,
		EndDate:            draft.EndDate,
		UserAssigned:       draft.UserAssigned,
	}
	b.projects = append(b.projects, p)
	return &p, nil
}

// --- TaskGateway ---

// CreateTask appends a task to the given project. The assignee id is
// resolved to a display name the way the real serializer does.
func (b *Backend) CreateTask(ctx context.Context, projectID int64, draft domain.TaskDraft) (*domain.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.projects {
		if b.projects[i].ID != projectID {
			continue
		}

		b.taskIDCounter++
		t := domain.Task{
			ID:              b.taskIDCounter,
			TaskName:        draft.TaskName,
			TaskDescription: draft.TaskDescription,
			Status:          domain.StatusCreated,
			StartDate:       draft.StartDate,
			EndDate:         draft.EndDate,
			UserAssigned:    b.displayName(draft.UserAssigned),
		}
		b.projects[i].Tasks = append(b.projects[i].Tasks, t)
		return &t, nil
	}
	return nil, &domain.RemoteError{Status: http.StatusNotFound, Message: "Not found."}
}

// --- UserGateway ---

// ListUsers returns users, filtered by role when one is given.
func (b *Backend) ListUsers(ctx context.Context, role domain.Role) ([]domain.UserProfile, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]domain.UserProfile, 0, len(b.users))
	for _, u := range b.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

// CreateUser stores a new account. Duplicate usernames are rejected the
// way the server rejects them.
func (b *Backend) CreateUser(ctx context.Context, draft domain.UserDraft) (*domain.UserProfile, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, u := range b.users {
		if u.Username == draft.Username {
			return nil, &domain.RemoteError{
				Status:  http.StatusBadRequest,
				Message: "A user with that username already exists.",
			}
		}
	}

	b.userIDCounter++
	u := domain.UserProfile{
		ID:        b.userIDCounter,
		Username:  draft.Username,
		FirstName: draft.FirstName,
		LastName:  draft.LastName,
		Email:     draft.Email,
		Role:      draft.Role,
	}
	b.users = append(b.users, u)
	b.passwords[draft.Username] = draft.Password
	return &u, nil
}

func (b *Backend) displayName(userID int64) string {
	if userID == 0 {
		return ""
	}
	for _, u := range b.users {
		if u.ID == userID {
			return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
		}
	}
	return ""
}

func generateToken() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return base64.URLEncoding.EncodeToString(buf)
}

// Keyring is an in-memory credential store.
type Keyring struct {
	mu      sync.Mutex
	session *domain.StoredSession
}

var _ domain.CredentialStore = (*Keyring)(nil)

// NewKeyring creates an empty keyring.
func NewKeyring() *Keyring {
	return &Keyring{}
}

// Load returns the stored session, or nil when none is stored.
func (k *Keyring) Load(ctx context.Context) (*domain.StoredSession, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.session == nil {
		return nil, nil
	}
	s := *k.session
	return &s, nil
}

// Save replaces the stored session.
func (k *Keyring) Save(ctx context.Context, session domain.StoredSession) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.session = &session
	return nil
}

// Clear drops the stored session.
func (k *Keyring) Clear(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.session = nil
	return nil
}
