// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tui is the Bubble Tea terminal client for the catalogue.

The root [App] owns every screen. It never talks to the API directly; it
returns commands that call the [Backend] and receives their results as
messages, so the event loop stays single-threaded.
*/
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taibuivan/shortwave/internal/core/film"
	"github.com/taibuivan/shortwave/internal/tui/client"
)

// requestTimeout bounds every backend call issued from the event loop.
const requestTimeout = 15 * time.Second

// Backend is the catalogue API as seen by the client. Implemented by
// [client.Client].
type Backend interface {
	ListFilms(ctx context.Context) ([]*film.Film, error)
	GetFilm(ctx context.Context, id string) (*film.Detail, error)
	CreateFilm(ctx context.Context, draft film.Draft) (*film.Film, error)
	Vocabulary(ctx context.Context) ([]string, error)
	Login(ctx context.Context, email, password string) (*client.User, error)
	SignUp(ctx context.Context, input client.SignUpInput) (*client.User, error)
	Logout(ctx context.Context) error
	CurrentUser() *client.User
}

// # Messages

// FilmsLoaded is sent when the collection fetch finishes.
type FilmsLoaded struct {
	Films []*film.Film
	Err   error
}

// FilmLoaded is sent when a film page fetch finishes.
type FilmLoaded struct {
	ID     string
	Detail *film.Detail
	Err    error
}

// VocabularyLoaded is sent when the curated tags arrive.
type VocabularyLoaded struct {
	Names []string
	Err   error
}

// SubmitDone is sent when a film submission finishes.
type SubmitDone struct {
	Film *film.Film
	Err  error
}

// AuthDone is sent when a login or sign-up finishes.
type AuthDone struct {
	User *client.User
	Err  error
}

// LoggedOut is sent when the session has been revoked.
type LoggedOut struct {
	Err error
}

// fadePhase names the half of a step transition a tick closes.
type fadePhase int

const (
	fadeOut fadePhase = iota
	fadeIn
)

// TransitionTick ends one fade phase of the wizard transition numbered Seq.
type TransitionTick struct {
	Seq   uint64
	Phase fadePhase
}

// # Commands

func loadFilms(backend Backend) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		films, err := backend.ListFilms(ctx)
		return FilmsLoaded{Films: films, Err: err}
	}
}

func loadFilm(backend Backend, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		detail, err := backend.GetFilm(ctx, id)
		return FilmLoaded{ID: id, Detail: detail, Err: err}
	}
}

func loadVocabulary(backend Backend) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		names, err := backend.Vocabulary(ctx)
		return VocabularyLoaded{Names: names, Err: err}
	}
}

func submitFilm(backend Backend, draft film.Draft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		created, err := backend.CreateFilm(ctx, draft)
		return SubmitDone{Film: created, Err: err}
	}
}

func login(backend Backend, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		user, err := backend.Login(ctx, email, password)
		return AuthDone{User: user, Err: err}
	}
}

func signUp(backend Backend, input client.SignUpInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		user, err := backend.SignUp(ctx, input)
		return AuthDone{User: user, Err: err}
	}
}

func logout(backend Backend) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return LoggedOut{Err: backend.Logout(ctx)}
	}
}

func transitionAfter(d time.Duration, seq uint64, phase fadePhase) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TransitionTick{Seq: seq, Phase: phase}
	})
}
