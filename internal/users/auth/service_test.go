// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shortwave/internal/platform/apperr"
	"github.com/taibuivan/shortwave/internal/platform/constants"
	"github.com/taibuivan/shortwave/internal/platform/ctxutil"
	"github.com/taibuivan/shortwave/internal/platform/dberr"
	"github.com/taibuivan/shortwave/internal/platform/sec"
)

// # Fakes

type fakeUsers struct {
	byID      map[string]*User
	createErr error
	touched   []string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*User{}}
}

func (r *fakeUsers) Create(_ context.Context, user *User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUsers) FindByID(_ context.Context, id string) (*User, error) {
	if user, ok := r.byID[id]; ok {
		return user, nil
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeUsers) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range r.byID {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeUsers) TouchLastLogin(_ context.Context, id string, _ time.Time) error {
	r.touched = append(r.touched, id)
	return nil
}

type fakeSessions struct {
	byHash map[string]*Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{byHash: map[string]*Session{}}
}

func (r *fakeSessions) Create(_ context.Context, session *Session) error {
	r.byHash[session.TokenHash] = session
	return nil
}

func (r *fakeSessions) FindByTokenHash(_ context.Context, tokenHash string) (*Session, error) {
	if session, ok := r.byHash[tokenHash]; ok {
		return session, nil
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeSessions) Revoke(_ context.Context, tokenHash string) error {
	delete(r.byHash, tokenHash)
	return nil
}

type fakeTokens struct{}

func (fakeTokens) GenerateAccessToken(userID, name, role string, _ time.Duration) (string, error) {
	return "access:" + userID + ":" + name + ":" + role, nil
}

type fakeImages struct {
	url      string
	err      error
	uploaded string
}

func (f *fakeImages) Upload(_ context.Context, filename string, image io.Reader) (string, error) {
	data, _ := io.ReadAll(image)
	f.uploaded = filename + ":" + string(data)
	return f.url, f.err
}

type fixture struct {
	users    *fakeUsers
	sessions *fakeSessions
	images   *fakeImages
	service  *Service
}

func newFixture() *fixture {
	f := &fixture{
		users:    newFakeUsers(),
		sessions: newFakeSessions(),
		images:   &fakeImages{url: "https://i.ibb.co/avatar.png"},
	}
	f.service = NewService(f.users, f.sessions, fakeTokens{}, f.images, slog.New(slog.NewTextHandler(io.Discard, nil)))
	f.service.now = func() time.Time { return testTime }
	return f
}

var testTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func signUp(t *testing.T, f *fixture, email, password string) *LoginSession {
	t.Helper()
	session, err := f.service.SignUp(context.Background(), SignUpInput{Name: "Ada", Email: email, Password: password})
	require.NoError(t, err)
	return session
}

// # Service Tests

/*
TestSignUp creates the account with a normalised email and opens a session.
*/
func TestSignUp(t *testing.T) {
	f := newFixture()

	session, err := f.service.SignUp(context.Background(), SignUpInput{
		Name:       "  Ada  ",
		Email:      " Ada@Example.COM ",
		Password:   "hunter22",
		Avatar:     strings.NewReader("PNG"),
		AvatarName: "me.png",
		Client:     ClientInfo{UserAgent: "tui", IPAddress: "10.0.0.1"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", session.User.Name)
	assert.Equal(t, "ada@example.com", session.User.Email)
	assert.Equal(t, sec.RoleMember, session.User.Role)
	assert.Equal(t, "https://i.ibb.co/avatar.png", session.User.PhotoURL)
	assert.Equal(t, "me.png:PNG", f.images.uploaded)
	assert.True(t, sec.CheckPasswordHash("hunter22", session.User.PasswordHash))
	assert.Equal(t, "access:"+session.User.ID+":Ada:member", session.AccessToken)
	assert.Equal(t, testTime.Add(constants.RefreshTokenTTL), session.RefreshTokenExpiresAt)

	stored, ok := f.sessions.byHash[sec.HashToken(session.RefreshToken)]
	require.True(t, ok)
	assert.Equal(t, session.User.ID, stored.UserID)
	assert.Equal(t, "tui", stored.UserAgent)
}

func TestSignUp_AvatarFailureIsNonFatal(t *testing.T) {
	f := newFixture()
	f.images.err = errors.New("imgbb down")

	session, err := f.service.SignUp(context.Background(), SignUpInput{
		Name: "Ada", Email: "ada@example.com", Password: "hunter22",
		Avatar: strings.NewReader("PNG"), AvatarName: "me.png",
	})
	require.NoError(t, err)
	assert.Empty(t, session.User.PhotoURL)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	f := newFixture()
	signUp(t, f, "ada@example.com", "hunter22")

	_, err := f.service.SignUp(context.Background(), SignUpInput{Name: "Ada", Email: "ADA@example.com", Password: "hunter22"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

func TestSignUp_DuplicateRace(t *testing.T) {
	f := newFixture()
	f.users.createErr = dberr.ErrDuplicate

	_, err := f.service.SignUp(context.Background(), SignUpInput{Name: "Ada", Email: "ada@example.com", Password: "hunter22"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

func TestLogin(t *testing.T) {
	f := newFixture()
	created := signUp(t, f, "ada@example.com", "hunter22")

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"valid", "ada@example.com", "hunter22", false},
		{"email_case_insensitive", " ADA@example.com", "hunter22", false},
		{"wrong_password", "ada@example.com", "wrong", true},
		{"unknown_email", "bob@example.com", "hunter22", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := f.service.Login(context.Background(), LoginInput{Email: tt.email, Password: tt.password})
			if tt.wantErr {
				assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, created.User.ID, session.User.ID)
			require.NotNil(t, session.User.LastLoginAt)
			assert.Equal(t, testTime, *session.User.LastLoginAt)
		})
	}
}

/*
TestRefresh_RotatesToken makes each refresh token single-use.
*/
func TestRefresh_RotatesToken(t *testing.T) {
	f := newFixture()
	first := signUp(t, f, "ada@example.com", "hunter22")

	second, err := f.service.Refresh(context.Background(), first.RefreshToken, ClientInfo{})
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, first.User.ID, second.User.ID)

	_, err = f.service.Refresh(context.Background(), first.RefreshToken, ClientInfo{})
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

func TestLogout(t *testing.T) {
	f := newFixture()
	session := signUp(t, f, "ada@example.com", "hunter22")

	require.NoError(t, f.service.Logout(context.Background(), session.RefreshToken))
	require.NoError(t, f.service.Logout(context.Background(), session.RefreshToken))

	_, err := f.service.Refresh(context.Background(), session.RefreshToken, ClientInfo{})
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

func TestLookupAuthor(t *testing.T) {
	f := newFixture()
	f.images.url = "https://i.ibb.co/ada.png"
	session, err := f.service.SignUp(context.Background(), SignUpInput{
		Name: "Ada", Email: "ada@example.com", Password: "hunter22",
		Avatar: strings.NewReader("PNG"), AvatarName: "a.png",
	})
	require.NoError(t, err)

	author, err := f.service.LookupAuthor(context.Background(), session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", author.Name)
	assert.Equal(t, "https://i.ibb.co/ada.png", author.PhotoURL)

	_, err = f.service.LookupAuthor(context.Background(), "missing")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

// # Handler Tests

func newHandler(f *fixture) http.Handler {
	return NewHandler(f.service, false).Routes()
}

func TestHandler_SignUpJSON(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"created", `{"name":"Ada","email":"ada@example.com","password":"hunter22"}`, http.StatusCreated},
		{"missing_name", `{"email":"bob@example.com","password":"hunter22"}`, http.StatusBadRequest},
		{"bad_email", `{"name":"Bob","email":"nope","password":"hunter22"}`, http.StatusBadRequest},
		{"short_password", `{"name":"Bob","email":"bob@example.com","password":"123"}`, http.StatusBadRequest},
		{"duplicate", `{"name":"Ada","email":"ada@example.com","password":"hunter22"}`, http.StatusConflict},
		{"malformed", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(tt.body))
			request.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()

			newHandler(f).ServeHTTP(recorder, request)
			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestHandler_SignUpMultipart(t *testing.T) {
	f := newFixture()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField(FieldName, "Ada"))
	require.NoError(t, form.WriteField(FieldEmail, "ada@example.com"))
	require.NoError(t, form.WriteField(FieldPassword, "hunter22"))
	part, err := form.CreateFormFile(FieldAvatar, "me.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("PNG"))
	require.NoError(t, form.Close())

	request := httptest.NewRequest(http.MethodPost, "/signup", &body)
	request.Header.Set("Content-Type", form.FormDataContentType())
	recorder := httptest.NewRecorder()

	newHandler(f).ServeHTTP(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "me.png:PNG", f.images.uploaded)

	var cookie *http.Cookie
	for _, c := range recorder.Result().Cookies() {
		if c.Name == constants.RefreshTokenCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, constants.RefreshTokenCookiePath, cookie.Path)
}

func TestHandler_LoginAndRefresh(t *testing.T) {
	f := newFixture()
	signUp(t, f, "ada@example.com", "hunter22")
	handler := newHandler(f)

	request := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"ada@example.com","password":"hunter22"}`))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data[FieldAccessToken])

	cookies := recorder.Result().Cookies()
	require.NotEmpty(t, cookies)

	refresh := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	refresh.AddCookie(cookies[0])
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, refresh)
	assert.Equal(t, http.StatusOK, recorder.Code)

	missing := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, missing)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestHandler_LoginRejected(t *testing.T) {
	f := newFixture()
	signUp(t, f, "ada@example.com", "hunter22")

	request := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"ada@example.com","password":"nope"}`))
	recorder := httptest.NewRecorder()
	newHandler(f).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestHandler_MeAndLogout(t *testing.T) {
	f := newFixture()
	session := signUp(t, f, "ada@example.com", "hunter22")
	handler := newHandler(f)
	claims := &sec.AuthClaims{UserID: session.User.ID, Name: "Ada", Role: string(sec.RoleMember)}

	anonymous := httptest.NewRequest(http.MethodGet, "/me", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, anonymous)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	me := httptest.NewRequest(http.MethodGet, "/me", nil)
	me = me.WithContext(ctxutil.WithAuthUser(me.Context(), claims))
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, me)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"ada@example.com"`)
	assert.NotContains(t, recorder.Body.String(), session.User.PasswordHash)

	logout := httptest.NewRequest(http.MethodPost, "/logout", nil)
	logout.AddCookie(&http.Cookie{Name: constants.RefreshTokenCookieName, Value: session.RefreshToken})
	logout = logout.WithContext(ctxutil.WithAuthUser(logout.Context(), claims))
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, logout)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, f.sessions.byHash)
}
