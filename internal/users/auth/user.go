// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements accounts and sessions.

A sign-up creates the account row (name, email, bcrypt hash, optional photo
hosted on the image host) and immediately opens a session. Sessions are
opaque refresh tokens whose SHA-256 hash is kept in Redis; access tokens are
short-lived RS256 JWTs carrying the user id, display name and role.
*/
package auth

import (
	"time"

	"github.com/taibuivan/shortwave/internal/platform/sec"
)

// # Domain Entities

// User is a registered account.
type User struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	PhotoURL     string       `json:"photo_url,omitempty"`
	Role         sec.UserRole `json:"role"`
	LastLoginAt  *time.Time   `json:"last_login_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Session is an open refresh-token session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"token_hash"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldAvatar      = "avatar"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
	FieldUser        = "user"
)
