// Package domain contains the core business entities and interfaces.
package domain

import "context"

// Role is the access level of a user account.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// UserProfile is the server-side user record as returned by the API.
// Immutable once fetched; a re-login replaces it wholesale.
type UserProfile struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// UserDraft is the request body for creating a user. The server assigns
// the id and never echoes the password back.
type UserDraft struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Password  string `json:"password"`
}

// UserGateway defines the port for remote user operations.
// ListUsers with an empty role returns every user; a non-empty role is
// passed through as the ?role= query filter.
type UserGateway interface {
	ListUsers(ctx context.Context, role Role) ([]UserProfile, error)
	CreateUser(ctx context.Context, draft UserDraft) (*UserProfile, error)
}
