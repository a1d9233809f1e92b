// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// UserRepository persists accounts.
type UserRepository interface {

	// Create inserts a new account. A taken email yields [dberr.ErrDuplicate].
	Create(context context.Context, user *User) error

	// FindByID returns [dberr.ErrNotFound] when no account matches.
	FindByID(context context.Context, id string) (*User, error)

	// FindByEmail looks up an account by its normalised email.
	FindByEmail(context context.Context, email string) (*User, error)

	// TouchLastLogin records a successful login.
	TouchLastLogin(context context.Context, id string, at time.Time) error
}

// SessionRepository persists refresh-token sessions keyed by token hash.
type SessionRepository interface {
	Create(context context.Context, session *Session) error

	// FindByTokenHash returns [dberr.ErrNotFound] for unknown or expired hashes.
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	// Revoke removes the session. Unknown hashes are not an error.
	Revoke(context context.Context, tokenHash string) error
}
