// Package app holds the application services and client-side state.
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"taskflow/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

var (
	// ErrLoginInProgress indicates a login call while another one is
	// still outstanding.
	ErrLoginInProgress = errors.New("login already in progress")
)

// loginFallbackMessage is shown when the server rejects a login without
// a detail payload.
const loginFallbackMessage = "Login failed. Please check your credentials."

// timeNow is stubbed in tests that exercise token expiry.
var timeNow = time.Now

// SessionStatus is the lifecycle state of the client session.
type SessionStatus int

const (
	StatusAnonymous SessionStatus = iota
	StatusAuthenticating
	StatusAuthenticated
	StatusFailed
)

// String returns the lowercase name of the status.
func (s SessionStatus) String() string {
	switch s {
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// SessionState is a snapshot of the current identity. Token and User are
// both set exactly when Status is StatusAuthenticated, and both empty
// when it is StatusAnonymous. LastError carries the failure message
// while Status is StatusFailed.
type SessionState struct {
	Status    SessionStatus
	Token     string
	User      *domain.UserProfile
	LastError string
}

// SessionService owns the authentication state machine and the durable
// credential storage behind it. It also acts as the bearer token source
// for authenticated remote calls.
type SessionService struct {
	auth  domain.AuthGateway
	creds domain.CredentialStore

	mu    sync.Mutex
	state SessionState
	subs  map[int]func(SessionState)
	next  int
}

// NewSessionService creates a session service in the anonymous state.
func NewSessionService(auth domain.AuthGateway, creds domain.CredentialStore) *SessionService {
	return &SessionService{
		auth:  auth,
		creds: creds,
		subs:  make(map[int]func(SessionState)),
	}
}

// State returns the current session snapshot.
func (s *SessionService) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to run after every transition and returns an
// unsubscribe function.
func (s *SessionService) Subscribe(fn func(SessionState)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *SessionService) transition(next SessionState) {
	s.mu.Lock()
	s.state = next
	fns := make([]func(SessionState), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
}

// Restore reads the durable credential store at startup. A stored
// token/profile pair moves the session straight to authenticated without
// a network round-trip; the cached profile is trusted until a protected
// request fails. A stored JWT whose expiry has already passed is
// discarded instead.
func (s *SessionService) Restore(ctx context.Context) error {
	stored, err := s.creds.Load(ctx)
	if err != nil {
		return err
	}
	if stored == nil || stored.Token == "" {
		return nil
	}

	if tokenExpired(stored.Token) {
		_ = s.creds.Clear(ctx)
		return nil
	}

	user := stored.User
	s.transition(SessionState{
		Status: StatusAuthenticated,
		Token:  stored.Token,
		User:   &user,
	})
	return nil
}

// Login authenticates against the remote service. Empty credentials are
// rejected client-side without any transition or network call. On
// success the token/profile pair is persisted and the session becomes
// authenticated; on failure the session holds the failure message and a
// retry is allowed.
func (s *SessionService) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return domain.NewValidationError("Username and password are required")
	}

	s.mu.Lock()
	if s.state.Status == StatusAuthenticating {
		s.mu.Unlock()
		return ErrLoginInProgress
	}
	s.mu.Unlock()

	s.transition(SessionState{Status: StatusAuthenticating})

	stored, err := s.auth.Authenticate(ctx, domain.Credentials{
		Username: username,
		Password: password,
	})
	if err != nil {
		s.transition(SessionState{
			Status:    StatusFailed,
			LastError: loginErrorMessage(err),
		})
		return err
	}

	// Best effort: a failed write costs the reload round-trip, not the
	// live session.
	_ = s.creds.Save(ctx, *stored)

	user := stored.User
	s.transition(SessionState{
		Status: StatusAuthenticated,
		Token:  stored.Token,
		User:   &user,
	})
	return nil
}

// Logout clears the session and durable storage. The local state always
// resets; the returned error only reports storage trouble. No remote
// revocation call is made.
func (s *SessionService) Logout(ctx context.Context) error {
	s.transition(SessionState{Status: StatusAnonymous})
	return s.creds.Clear(ctx)
}

// Can reports whether the current identity may perform the action.
// Anonymous sessions deny everything.
func (s *SessionService) Can(action domain.Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Status != StatusAuthenticated || s.state.User == nil {
		return false
	}
	return domain.Can(s.state.User.Role, action)
}

// Token implements oauth2.TokenSource so the REST adapter can attach the
// current bearer credential to each request.
func (s *SessionService) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Status != StatusAuthenticated || s.state.Token == "" {
		return nil, &domain.AuthError{Message: "not authenticated"}
	}
	return &oauth2.Token{AccessToken: s.state.Token, TokenType: "Bearer"}, nil
}

var _ oauth2.TokenSource = (*SessionService)(nil)

// loginErrorMessage maps an authentication failure to the message shown
// to the user: the server detail when present, the generic fallback
// otherwise.
func loginErrorMessage(err error) string {
	var remote *domain.RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}
	var auth *domain.AuthError
	if errors.As(err, &auth) && auth.Message != "" {
		return auth.Message
	}
	return loginFallbackMessage
}

// tokenExpired reports whether token is a JWT with an exp claim in the
// past. Opaque tokens and tokens without exp are trusted until the
// server rejects them.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Before(timeNow())
}
