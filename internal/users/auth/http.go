// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/shortwave/internal/platform/apperr"
	"github.com/taibuivan/shortwave/internal/platform/constants"
	"github.com/taibuivan/shortwave/internal/platform/middleware"
	requestutil "github.com/taibuivan/shortwave/internal/platform/request"
	"github.com/taibuivan/shortwave/internal/platform/respond"
	"github.com/taibuivan/shortwave/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the account and session endpoints.
type Handler struct {
	authService   *Service
	secureCookies bool
}

// NewHandler constructs a handler. secureCookies marks the refresh cookie
// Secure and should be off only for local plain-HTTP development.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{authService: service, secureCookies: secureCookies}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /signup  : Creates an account (JSON or multipart with avatar).
//   - POST /login   : Opens a session.
//   - POST /refresh : Rotates the refresh cookie.
//   - POST /logout  : Revokes the session.
//   - GET  /me      : Returns the caller's profile.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signUp)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func validateSignUp(input signUpRequest) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength)
	return validator.Err()
}

/*
SignUp creates an account and logs it in.

POST /api/v1/auth/signup

Request:
  - Body: signUpRequest as JSON, or multipart form fields with an optional
    "avatar" file

Response:
  - 201: access token and profile; refresh cookie set
  - 400: validation failure
  - 409: email already registered
*/
func (handler *Handler) signUp(writer http.ResponseWriter, request *http.Request) {
	var (
		input      signUpRequest
		avatar     io.Reader
		avatarName string
	)

	mediaType, _, _ := mime.ParseMediaType(request.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxAvatarBytes+(1<<20))
		if err := request.ParseMultipartForm(constants.MaxAvatarBytes); err != nil {
			respond.Error(writer, request, validate.FieldErr(FieldAvatar, "Form is too large or malformed"))
			return
		}
		input = signUpRequest{
			Name:     request.FormValue(FieldName),
			Email:    request.FormValue(FieldEmail),
			Password: request.FormValue(FieldPassword),
		}

		file, header, err := request.FormFile(FieldAvatar)
		switch {
		case err == nil:
			defer file.Close()
			avatar, avatarName = file, header.Filename
		case !errors.Is(err, http.ErrMissingFile):
			respond.Error(writer, request, validate.FieldErr(FieldAvatar, "Avatar could not be read"))
			return
		}
	} else if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input.Email = strings.TrimSpace(input.Email)
	if err := validateSignUp(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.SignUp(request.Context(), SignUpInput{
		Name:       input.Name,
		Email:      input.Email,
		Password:   input.Password,
		Avatar:     avatar,
		AvatarName: avatarName,
		Client:     clientInfo(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, session)
	respond.Created(writer, sessionPayload(session))
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Response:
  - 200: access token and profile; refresh cookie set
  - 401: invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, strings.TrimSpace(input.Email))
	validator.Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
		Client:   clientInfo(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, session)
	respond.OK(writer, sessionPayload(session))
}

/*
Logout terminates the current session and clears the refresh cookie.

POST /api/v1/auth/logout

Response:
  - 204: No Content
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err == nil && cookie.Value != "" {
		if err := handler.authService.Logout(request.Context(), cookie.Value); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.NoContent(writer)
}

/*
Refresh issues a new access token from the refresh cookie.

POST /api/v1/auth/refresh

Response:
  - 200: new access token; cookie rotated
  - 401: missing or invalid refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.Unauthorized("Missing refresh token in cookies"))
		return
	}

	session, err := handler.authService.Refresh(request.Context(), cookie.Value, clientInfo(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, session)
	respond.OK(writer, sessionPayload(session))
}

// me returns the caller's profile. GET /api/v1/auth/me
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Profile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) setRefreshCookie(writer http.ResponseWriter, session *LoginSession) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  session.RefreshTokenExpiresAt,
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func sessionPayload(session *LoginSession) map[string]any {
	return map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldTokenType:   "Bearer",
		FieldExpiresIn:   int(constants.AccessTokenTTL / time.Second),
		FieldUser:        session.User,
	}
}

func clientInfo(request *http.Request) ClientInfo {
	return ClientInfo{UserAgent: request.UserAgent(), IPAddress: middleware.RealIP(request)}
}
