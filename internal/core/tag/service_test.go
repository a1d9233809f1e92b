// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shortwave/internal/platform/ctxutil"
	"github.com/taibuivan/shortwave/internal/platform/sec"
)

// fakeRepository is an in-memory [Repository].
type fakeRepository struct {
	curated  []*Tag
	freeform []*Tag
	demoted  []string
	listErr  error
}

func (r *fakeRepository) ListCurated(context.Context) ([]*Tag, error) {
	return r.curated, r.listErr
}

func (r *fakeRepository) SaveCurated(_ context.Context, tags []*Tag) error {
	kept := make(map[string]bool, len(tags))
	for _, t := range tags {
		kept[t.Slug] = true
	}
	for _, t := range r.curated {
		if !kept[t.Slug] {
			r.demoted = append(r.demoted, t.Slug)
		}
	}
	r.curated = tags
	return nil
}

func (r *fakeRepository) RecordFreeform(_ context.Context, tags []*Tag) error {
	r.freeform = append(r.freeform, tags...)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService_SeedKeepsConfiguredOrder(t *testing.T) {
	repo := &fakeRepository{}
	service := NewService(repo, []string{"Zeta", "Alpha", "zeta", "!!!"}, discardLogger())

	require.NoError(t, service.Seed(context.Background()))
	require.Len(t, repo.curated, 2)

	assert.Equal(t, "Zeta", repo.curated[0].Name)
	assert.Equal(t, "zeta", repo.curated[0].Slug)
	assert.Equal(t, 0, repo.curated[0].SortOrder)
	assert.Equal(t, "Alpha", repo.curated[1].Name)
	assert.Equal(t, 1, repo.curated[1].SortOrder)
}

/*
TestService_ReseedShrinksVocabulary checks that names dropped from the
configured set stop being served after the next seed.
*/
func TestService_ReseedShrinksVocabulary(t *testing.T) {
	repo := &fakeRepository{}
	ctx := context.Background()

	require.NoError(t, NewService(repo, []string{"BFP", "Night Shoot"}, discardLogger()).Seed(ctx))

	service := NewService(repo, []string{"BFP"}, discardLogger())
	require.NoError(t, service.Seed(ctx))

	assert.Equal(t, []string{"BFP"}, service.Vocabulary(ctx))
	assert.Equal(t, []string{"night-shoot"}, repo.demoted)
}

func TestService_SeedDedupesBySlug(t *testing.T) {
	repo := &fakeRepository{}
	service := NewService(repo, []string{"Night Shoot", "Night-Shoot", "BFP"}, discardLogger())

	require.NoError(t, service.Seed(context.Background()))
	require.Len(t, repo.curated, 2)

	assert.Equal(t, "Night Shoot", repo.curated[0].Name)
	assert.Equal(t, "BFP", repo.curated[1].Name)
	assert.Equal(t, 1, repo.curated[1].SortOrder)
	assert.Equal(t, []string{"Night Shoot", "BFP"}, service.Vocabulary(context.Background()))
}

/*
TestService_Vocabulary checks the fallback to the configured vocabulary.
*/
func TestService_Vocabulary(t *testing.T) {
	tests := []struct {
		name string
		repo *fakeRepository
		want []string
	}{
		{"stored", &fakeRepository{curated: []*Tag{{Name: "BFP"}}}, []string{"BFP"}},
		{"unseeded", &fakeRepository{}, DefaultVocabulary},
		{"storage_error", &fakeRepository{listErr: errors.New("down")}, DefaultVocabulary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(tt.repo, nil, discardLogger())
			assert.Equal(t, tt.want, service.Vocabulary(context.Background()))
		})
	}
}

func TestService_RecordFreeformSkipsVocabulary(t *testing.T) {
	repo := &fakeRepository{}
	service := NewService(repo, nil, discardLogger())

	err := service.RecordFreeform(context.Background(), []string{"bfp", "Senior Thesis", "senior thesis", "Café Noir"})
	require.NoError(t, err)

	require.Len(t, repo.freeform, 2)
	assert.Equal(t, "senior-thesis", repo.freeform[0].Slug)
	assert.Equal(t, "cafe-noir", repo.freeform[1].Slug)
}

func TestService_RecordFreeformNothingNew(t *testing.T) {
	repo := &fakeRepository{}
	service := NewService(repo, nil, discardLogger())

	require.NoError(t, service.RecordFreeform(context.Background(), []string{"RTF 304"}))
	assert.Empty(t, repo.freeform)
}

/*
TestHandler_Suggest exercises GET /tags/suggest end to end.
*/
func TestHandler_Suggest(t *testing.T) {
	service := NewService(&fakeRepository{}, nil, discardLogger())
	router := NewHandler(service).Routes()

	tests := []struct {
		name string
		url  string
		body string
	}{
		{
			"comma_separated_selection",
			"/suggest?q=the&selected=The%20Collective,BFP",
			`{"data":{"suggestions":["The New Project"],"show_create":true}}`,
		},
		{
			"repeated_selection",
			"/suggest?q=BFP&selected=RTF%20304&selected=BFP",
			`{"data":{"suggestions":[],"show_create":false}}`,
		},
		{
			"exact_match_hides_create",
			"/suggest?q=bfp",
			`{"data":{"suggestions":["BFP"],"show_create":false}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.JSONEq(t, tt.body, recorder.Body.String())
		})
	}
}

func TestHandler_ListVocabulary(t *testing.T) {
	service := NewService(&fakeRepository{curated: []*Tag{{Name: "RTF 304"}, {Name: "BFP"}}}, nil, discardLogger())

	recorder := httptest.NewRecorder()
	NewHandler(service).Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":["RTF 304","BFP"]}`, recorder.Body.String())
}

func TestHandler_SeedRequiresAdmin(t *testing.T) {
	tests := []struct {
		name       string
		claims     *sec.AuthClaims
		wantStatus int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"member", &sec.AuthClaims{UserID: "u1", Role: string(sec.RoleMember)}, http.StatusForbidden},
		{"admin", &sec.AuthClaims{UserID: "u2", Role: string(sec.RoleAdmin)}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{}
			service := NewService(repo, []string{"BFP", "RTF 304"}, discardLogger())

			request := httptest.NewRequest(http.MethodPost, "/seed", nil)
			if tt.claims != nil {
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), tt.claims))
			}
			recorder := httptest.NewRecorder()
			NewHandler(service).Routes().ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"data":["BFP","RTF 304"]}`, recorder.Body.String())
			}
		})
	}
}
