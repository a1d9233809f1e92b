// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shortwave/internal/core/film"
	"github.com/taibuivan/shortwave/internal/core/tag"
	"github.com/taibuivan/shortwave/internal/platform/apperr"
	"github.com/taibuivan/shortwave/internal/platform/ctxutil"
	"github.com/taibuivan/shortwave/internal/platform/sec"
)

type fakePublisher struct {
	drafts []film.Draft
	err    error
}

func (p *fakePublisher) CreateFilm(_ context.Context, ownerID string, draft film.Draft) (*film.Film, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.drafts = append(p.drafts, draft)
	return draft.Film("film-1", ownerID, testTime), nil
}

type fakeVocabulary struct {
	recorded  []string
	recordErr error
}

func (v *fakeVocabulary) Vocabulary(context.Context) []string { return tag.DefaultVocabulary }

func (v *fakeVocabulary) RecordFreeform(_ context.Context, tags []string) error {
	v.recorded = append(v.recorded, tags...)
	return v.recordErr
}

func newTestService(publisher *fakePublisher, vocabulary *fakeVocabulary) *Service {
	return NewService(publisher, vocabulary, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func validRequest() Request {
	return Request{
		YoutubeURL: " https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=5 ",
		Title:      " Night Swim ",
		Logline:    "A lake at 3am.",
		Tags:       []string{"bfp", "Thesis", "BFP", "thesis", "  "},
	}
}

/*
TestPrepare replays a complete submission through the wizard.
*/
func TestPrepare(t *testing.T) {
	service := newTestService(&fakePublisher{}, &fakeVocabulary{})

	draft, err := service.Prepare(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=5", draft.YoutubeURL)
	assert.Equal(t, "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", draft.ThumbnailURL)
	assert.Equal(t, "Night Swim", draft.Title)
	assert.Equal(t, []string{"BFP", "Thesis"}, draft.Tags)
}

func TestPrepare_FirstBlockingStep(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		field  string
	}{
		{"video", func(r *Request) { r.YoutubeURL = "" }, "youtube_url"},
		{"title", func(r *Request) { r.Title = "   " }, "title"},
		{"logline", func(r *Request) { r.Logline = "" }, "logline"},
		{"video_wins_over_title", func(r *Request) { r.YoutubeURL, r.Title = "", "" }, "youtube_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(&fakePublisher{}, &fakeVocabulary{})
			request := validRequest()
			tt.mutate(&request)

			_, err := service.Prepare(context.Background(), request)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			require.Len(t, ae.Details, 1)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}
}

func TestPublish(t *testing.T) {
	publisher := &fakePublisher{}
	vocabulary := &fakeVocabulary{}
	service := newTestService(publisher, vocabulary)

	created, err := service.Publish(context.Background(), "owner-1", validRequest())
	require.NoError(t, err)

	assert.Equal(t, "owner-1", created.OwnerID)
	require.Len(t, publisher.drafts, 1)
	assert.Equal(t, []string{"BFP", "Thesis"}, vocabulary.recorded)
}

func TestPublish_TagRecordingIsBestEffort(t *testing.T) {
	service := newTestService(&fakePublisher{}, &fakeVocabulary{recordErr: errors.New("db down")})

	created, err := service.Publish(context.Background(), "owner-1", validRequest())
	require.NoError(t, err)
	assert.NotNil(t, created)
}

func TestPublish_PersistFailureSurfaces(t *testing.T) {
	vocabulary := &fakeVocabulary{}
	service := newTestService(&fakePublisher{err: apperr.Internal(errors.New("db down"))}, vocabulary)

	_, err := service.Publish(context.Background(), "owner-1", validRequest())
	assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
	assert.Empty(t, vocabulary.recorded)
}

/*
TestHandler covers the auth gate and the preview endpoint.
*/
func TestHandler(t *testing.T) {
	body := `{"youtube_url":"https://youtu.be/abc123","title":"Echo","logline":"Sound.","tags":["RTF 304"]}`

	tests := []struct {
		name   string
		path   string
		claims *sec.AuthClaims
		body   string
		status int
	}{
		{"publish_anonymous", "/", nil, body, http.StatusUnauthorized},
		{"publish_authenticated", "/", &sec.AuthClaims{UserID: "owner-1"}, body, http.StatusCreated},
		{"publish_bad_json", "/", &sec.AuthClaims{UserID: "owner-1"}, `{`, http.StatusBadRequest},
		{"preview_anonymous", "/preview", nil, body, http.StatusOK},
		{"preview_invalid", "/preview", nil, `{"youtube_url":"https://youtu.be/abc123"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewHandler(newTestService(&fakePublisher{}, &fakeVocabulary{})).Routes()

			request := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			if tt.claims != nil {
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), tt.claims))
			}
			recorder := httptest.NewRecorder()

			router.ServeHTTP(recorder, request)
			assert.Equal(t, tt.status, recorder.Code, recorder.Body.String())
		})
	}
}

var testTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
