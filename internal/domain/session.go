package domain

import "context"

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StoredSession is the token/profile pair held in durable client
// storage between runs.
type StoredSession struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// AuthGateway defines the port for the remote authentication call.
type AuthGateway interface {
	Authenticate(ctx context.Context, creds Credentials) (*StoredSession, error)
}

// CredentialStore defines the port for durable client storage of the
// current session. Load returns nil when no session is stored.
type CredentialStore interface {
	Load(ctx context.Context) (*StoredSession, error)
	Save(ctx context.Context, session StoredSession) error
	Clear(ctx context.Context) error
}
