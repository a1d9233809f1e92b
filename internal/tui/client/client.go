// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package client is the terminal client's view of the catalogue API.

It keeps the access token of the logged-in user in memory and the refresh
cookie in a cookie jar. A request rejected with 401 while logged in is
retried once after a token refresh.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/shortwave/internal/core/film"
	"github.com/taibuivan/shortwave/internal/core/upload"
)

const (
	defaultHTTPTimeout = 20 * time.Second
	defaultUserAgent   = "shortwave-tui/dev"
	apiPrefix          = "api/v1"
)

var (
	// ErrUnauthorized is matched by errors for 401 responses.
	ErrUnauthorized = errors.New("client: not logged in")

	// ErrNotFound is matched by errors for 404 responses.
	ErrNotFound = errors.New("client: not found")
)

// APIError is a non-2xx reply decoded from the error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details []FieldError
}

// FieldError is a per-field validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		parts := make([]string, 0, len(e.Details))
		for _, d := range e.Details {
			parts = append(parts, d.Field+": "+d.Message)
		}
		return e.Message + " (" + strings.Join(parts, "; ") + ")"
	}
	return e.Message
}

// Is lets callers test status classes with errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// User is the logged-in account as returned by the API.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photo_url,omitempty"`
	Role     string `json:"role"`
}

// SignUpInput describes a new account. AvatarPath is optional.
type SignUpInput struct {
	Name       string
	Email      string
	Password   string
	AvatarPath string
}

// Config describes the API client.
type Config struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

// Client wraps the catalogue REST API. It is safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	userAgent string
	http      *http.Client

	mu    sync.RWMutex
	token string
	user  *User
}

// New creates a Client. A cookie jar is attached when the supplied HTTP
// client has none, so refresh cookies survive between requests.
func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	baseURL, err := url.Parse(base)
	if err != nil || baseURL.Host == "" {
		return nil, fmt.Errorf("client: invalid base url %q", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("client: cookie jar: %w", err)
		}
		httpClient.Jar = jar
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{baseURL: baseURL, userAgent: userAgent, http: httpClient}, nil
}

// CurrentUser returns the logged-in user, or nil.
func (c *Client) CurrentUser() *User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// # Catalogue

// ListFilms returns the whole collection, newest first.
func (c *Client) ListFilms(ctx context.Context) ([]*film.Film, error) {
	var listing film.Listing
	if err := c.call(ctx, http.MethodGet, "films", nil, &listing); err != nil {
		return nil, err
	}
	if listing.Films == nil {
		listing.Films = []*film.Film{}
	}
	return listing.Films, nil
}

// GetFilm returns the film page payload. Unknown ids match [ErrNotFound].
func (c *Client) GetFilm(ctx context.Context, id string) (*film.Detail, error) {
	detail := &film.Detail{}
	if err := c.call(ctx, http.MethodGet, "films/"+url.PathEscape(id), nil, detail); err != nil {
		return nil, err
	}
	return detail, nil
}

// CreateFilm publishes a draft as the logged-in user.
func (c *Client) CreateFilm(ctx context.Context, draft film.Draft) (*film.Film, error) {
	body, err := jsonBody(upload.Request{
		YoutubeURL: draft.YoutubeURL,
		Title:      draft.Title,
		Logline:    draft.Logline,
		Tags:       draft.Tags,
	})
	if err != nil {
		return nil, err
	}

	created := &film.Film{}
	if err := c.call(ctx, http.MethodPost, "uploads", body, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Vocabulary returns the curated tag names.
func (c *Client) Vocabulary(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.call(ctx, http.MethodGet, "tags", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// # Accounts

type sessionResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

// Login opens a session and remembers it.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body, err := jsonBody(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	var session sessionResponse
	if err := c.call(ctx, http.MethodPost, "auth/login", body, &session); err != nil {
		return nil, err
	}
	c.remember(session)
	return session.User, nil
}

// SignUp creates an account, uploading the avatar file if one is named, and
// remembers the new session.
func (c *Client) SignUp(ctx context.Context, input SignUpInput) (*User, error) {
	body, err := signUpBody(input)
	if err != nil {
		return nil, err
	}

	var session sessionResponse
	if err := c.call(ctx, http.MethodPost, "auth/signup", body, &session); err != nil {
		return nil, err
	}
	c.remember(session)
	return session.User, nil
}

// Logout revokes the session. Local state is cleared even if the server
// call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.call(ctx, http.MethodPost, "auth/logout", nil, nil)

	c.mu.Lock()
	c.token, c.user = "", nil
	c.mu.Unlock()

	if err != nil && !errors.Is(err, ErrUnauthorized) {
		return err
	}
	return nil
}

func (c *Client) remember(session sessionResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = session.AccessToken
	if session.User != nil {
		c.user = session.User
	}
}

// refresh rotates the refresh cookie and stores the new access token.
func (c *Client) refresh(ctx context.Context) error {
	var session sessionResponse
	if err := c.send(ctx, http.MethodPost, "auth/refresh", nil, &session, ""); err != nil {
		return err
	}
	c.remember(session)
	return nil
}

// # Transport

type requestBody struct {
	contentType string
	payload     []byte
}

func jsonBody(v any) (*requestBody, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("client: encode request: %w", err)
	}
	return &requestBody{contentType: "application/json", payload: payload}, nil
}

func signUpBody(input SignUpInput) (*requestBody, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	fields := [][2]string{{"name", input.Name}, {"email", input.Email}, {"password", input.Password}}
	for _, field := range fields {
		if err := form.WriteField(field[0], field[1]); err != nil {
			return nil, fmt.Errorf("client: build form: %w", err)
		}
	}

	if path := strings.TrimSpace(input.AvatarPath); path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("client: open avatar: %w", err)
		}
		defer file.Close()

		part, err := form.CreateFormFile("avatar", filepath.Base(path))
		if err != nil {
			return nil, fmt.Errorf("client: build form: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return nil, fmt.Errorf("client: read avatar: %w", err)
		}
	}

	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("client: build form: %w", err)
	}
	return &requestBody{contentType: form.FormDataContentType(), payload: buf.Bytes()}, nil
}

// call sends an authenticated request, refreshing the access token once if
// the server rejects it.
func (c *Client) call(ctx context.Context, method, path string, body *requestBody, out any) error {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()

	err := c.send(ctx, method, path, body, out, token)
	if token == "" || !errors.Is(err, ErrUnauthorized) {
		return err
	}

	if refreshErr := c.refresh(ctx); refreshErr != nil {
		return err
	}

	c.mu.RLock()
	token = c.token
	c.mu.RUnlock()
	return c.send(ctx, method, path, body, out, token)
}

func (c *Client) send(ctx context.Context, method, path string, body *requestBody, out any, token string) error {
	endpoint := c.baseURL.JoinPath(apiPrefix, path)
	// JoinPath escapes the query separator, so keep any query apart.
	if before, query, found := strings.Cut(path, "?"); found {
		endpoint = c.baseURL.JoinPath(apiPrefix, before)
		endpoint.RawQuery = query
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body.payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		request.Header.Set("Content-Type", body.contentType)
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.http.Do(request)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		return decodeError(response)
	}
	if out == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}

	envelope := struct {
		Data any `json:"data"`
	}{Data: out}
	if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("client: decode %s: %w", path, err)
	}
	return nil
}

func decodeError(response *http.Response) error {
	var envelope struct {
		Error   string       `json:"error"`
		Code    string       `json:"code"`
		Details []FieldError `json:"details"`
	}
	raw, _ := io.ReadAll(io.LimitReader(response.Body, 64<<10))
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Error == "" {
		envelope.Error = strings.TrimSpace(string(raw))
		if envelope.Error == "" {
			envelope.Error = response.Status
		}
	}
	return &APIError{
		Status:  response.StatusCode,
		Code:    envelope.Code,
		Message: envelope.Error,
		Details: envelope.Details,
	}
}
