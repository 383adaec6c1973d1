// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"github.com/google/uuid"
)

// DefaultNamespace is the UUID namespace user ids are derived in when the
// configuration does not name one.
var DefaultNamespace = uuid.MustParse("6f1c3d2e-8a4b-5c7d-9e0f-1a2b3c4d5e6f")

// User is a registered account. The ID is fixed at creation; only the
// Username can be replaced afterwards.
type User struct {
	ID       uuid.UUID `json:"id"`       // Name-based (version 5) UUID derived from the username at creation.
	Username string    `json:"username"` // Display and lookup label, unique at creation time.
}

// NewUserID derives the deterministic id for username inside namespace.
// The same pair always yields the same id.
func NewUserID(namespace uuid.UUID, username string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(username))
}

// NewUser builds a user whose id is derived from namespace and username.
func NewUser(namespace uuid.UUID, username string) *User {
	return &User{
		ID:       NewUserID(namespace, username),
		Username: username,
	}
}

// Clone returns a copy that shares no memory with u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u

	return &clone
}
