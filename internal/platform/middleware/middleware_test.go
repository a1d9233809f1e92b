// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shortwave/internal/platform/ctxutil"
	"github.com/taibuivan/shortwave/internal/platform/middleware"
	"github.com/taibuivan/shortwave/internal/platform/sec"
)

type stubVerifier struct {
	claims *sec.AuthClaims
}

func (v stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return v.claims, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("X-User", ctxutil.UserID(request.Context()))
		writer.WriteHeader(http.StatusOK)
	})
}

type devConfig bool

func (c devConfig) IsDevelopment() bool { return bool(c) }

/*
TestAuthenticate covers anonymous, valid and rejected credentials.
*/
func TestAuthenticate(t *testing.T) {
	handler := middleware.Authenticate(stubVerifier{claims: &sec.AuthClaims{UserID: "u1"}})(okHandler())

	tests := []struct {
		name   string
		header string
		status int
		user   string
	}{
		{"anonymous", "", http.StatusOK, ""},
		{"valid", "Bearer good", http.StatusOK, "u1"},
		{"lowercase_scheme", "bearer good", http.StatusOK, "u1"},
		{"invalid_token", "Bearer bad", http.StatusUnauthorized, ""},
		{"wrong_scheme", "Basic good", http.StatusUnauthorized, ""},
		{"missing_token", "Bearer", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.user, recorder.Header().Get("X-User"))
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name   string
		claims *sec.AuthClaims
		status int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"member", &sec.AuthClaims{UserID: "u1", Role: "member"}, http.StatusForbidden},
		{"admin", &sec.AuthClaims{UserID: "u1", Role: "admin"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.claims != nil {
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), tt.claims))
			}
			recorder := httptest.NewRecorder()

			middleware.RequireRole(sec.RoleAdmin)(okHandler()).ServeHTTP(recorder, request)
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.NotEmpty(t, ctxutil.GetRequestID(request.Context()))
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, recorder.Header().Get(middleware.HeaderXRequestID), 36)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(middleware.HeaderXRequestID, "client-id")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "client-id", recorder.Header().Get(middleware.HeaderXRequestID))
}

func TestRateLimiter(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.001, 2)
	handler := limiter.Middleware(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, recorder.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.Header.Set(middleware.HeaderXRealIP, "203.0.113.9")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, other)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		dev     bool
		origin  string
		allowed bool
	}{
		{"development_any", true, "http://localhost:5173", true},
		{"production_listed", false, "https://shortwave.example", true},
		{"production_unlisted", false, "https://evil.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.CORS(devConfig(tt.dev), []string{"https://shortwave.example"})(okHandler())
			request := httptest.NewRequest(http.MethodOptions, "/", nil)
			request.Header.Set(middleware.HeaderOrigin, tt.origin)
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestPanicRecovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := middleware.PanicRecovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
