// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/shortwave/internal/core/film"
	"github.com/taibuivan/shortwave/internal/platform/apperr"
	"github.com/taibuivan/shortwave/internal/platform/constants"
	"github.com/taibuivan/shortwave/internal/platform/dberr"
	"github.com/taibuivan/shortwave/internal/platform/imagehost"
	"github.com/taibuivan/shortwave/internal/platform/sec"
	"github.com/taibuivan/shortwave/pkg/uuid"
)

// # Contracts & Types

// TokenProvider issues signed access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, name, role string, timeToLive time.Duration) (string, error)
}

// Service implements account and session use cases.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenProvider
	images   imagehost.Uploader
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs an auth service. images may be nil, in which case
// avatars are dropped.
func NewService(
	users UserRepository,
	sessions SessionRepository,
	tokens TokenProvider,
	images imagehost.Uploader,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		images:   images,
		logger:   logger,
		now:      time.Now,
	}
}

// LoginSession is a freshly opened session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

// ClientInfo identifies the device opening a session.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// NormalizeEmail is applied to every email before storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Registration Flow

// SignUpInput holds the data required to create an account.
type SignUpInput struct {
	Name       string
	Email      string
	Password   string
	Avatar     io.Reader
	AvatarName string
	Client     ClientInfo
}

/*
SignUp creates an account and opens its first session.

Description: The avatar, when given, is uploaded to the image host first. An
upload failure is logged and the account is created without a photo.

Returns:
  - *LoginSession: Tokens for the new account
  - error: Conflict when the email is taken, or storage failures
*/
func (service *Service) SignUp(context context.Context, input SignUpInput) (*LoginSession, error) {
	email := NormalizeEmail(input.Email)

	_, err := service.users.FindByEmail(context, email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, fmt.Errorf("auth_service_signup_lookup_failed: %w", err)
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hashedPassword,
		PhotoURL:     service.uploadAvatar(context, input.Avatar, input.AvatarName),
		Role:         sec.RoleMember,
		CreatedAt:    service.now().UTC(),
	}

	if err := service.users.Create(context, user); err != nil {
		if errors.Is(err, dberr.ErrDuplicate) {
			return nil, apperr.Conflict("Email is already registered")
		}
		return nil, fmt.Errorf("auth_service_signup_failed: %w", err)
	}

	service.logger.Info("account_created", slog.String("user_id", user.ID))

	return service.openSession(context, user, input.Client)
}

func (service *Service) uploadAvatar(context context.Context, avatar io.Reader, name string) string {
	if avatar == nil || service.images == nil {
		return ""
	}

	url, err := service.images.Upload(context, name, avatar)
	if err != nil {
		service.logger.Warn("account_avatar_upload_failed", slog.Any("error", err))
		return ""
	}
	return url
}

// # Authentication Flow

// LoginInput holds credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
	Client   ClientInfo
}

/*
Login verifies credentials and opens a session.

Returns:
  - *LoginSession: Tokens and profile
  - error: Unauthorized with the same message for unknown emails and wrong passwords
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.users.FindByEmail(context, NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	now := service.now().UTC()
	if err := service.users.TouchLastLogin(context, user.ID, now); err != nil {
		service.logger.Warn("account_touch_login_failed", slog.String("user_id", user.ID), slog.Any("error", err))
	} else {
		user.LastLoginAt = &now
	}

	return service.openSession(context, user, input.Client)
}

/*
Logout revokes the session behind refreshToken.

Description: Unknown or already revoked tokens are treated as logged out.
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	if err := service.sessions.Revoke(context, sec.HashToken(refreshToken)); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// # Session Management

/*
Refresh rotates a refresh token.

Description: The presented session is revoked before a new one is opened, so
each refresh token is usable once.

Returns:
  - *LoginSession: New tokens
  - error: Unauthorized for unknown tokens or vanished accounts
*/
func (service *Service) Refresh(context context.Context, refreshToken string, client ClientInfo) (*LoginSession, error) {
	tokenHash := sec.HashToken(refreshToken)

	session, err := service.sessions.FindByTokenHash(context, tokenHash)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.Unauthorized("Invalid or expired refresh token")
		}
		return nil, fmt.Errorf("auth_service_refresh_lookup_failed: %w", err)
	}

	if err := service.sessions.Revoke(context, tokenHash); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	user, err := service.users.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("Account no longer exists")
	}

	return service.openSession(context, user, client)
}

func (service *Service) openSession(context context.Context, user *User, client ClientInfo) (*LoginSession, error) {
	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Name, string(user.Role), constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	now := service.now().UTC()
	expiresAt := now.Add(constants.RefreshTokenTTL)
	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}

	if err := service.sessions.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// # Profiles

// Profile returns the account for userID.
func (service *Service) Profile(context context.Context, userID string) (*User, error) {
	user, err := service.users.FindByID(context, userID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("auth_service_profile_failed: %w", err)
	}
	return user, nil
}

// LookupAuthor implements [film.AuthorSource].
func (service *Service) LookupAuthor(context context.Context, id string) (*film.Author, error) {
	user, err := service.Profile(context, id)
	if err != nil {
		return nil, err
	}
	return &film.Author{ID: user.ID, Name: user.Name, PhotoURL: user.PhotoURL}, nil
}
