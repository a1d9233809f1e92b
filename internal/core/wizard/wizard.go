// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package wizard implements the four-step upload form as a state machine.

Steps collect, in order, the video link, the title, the logline and the
tags. Moving between steps is animated by the presentation layer; while a
transition is in flight the wizard holds a soft lock and ignores further
moves, so rapid input can never skip a step.

The lock is released by the caller's timer through [Wizard.EndTransition],
passing the sequence number returned when the move started. A stale timer
cannot release a newer transition.
*/
package wizard

import (
	"errors"
	"strings"

	"github.com/taibuivan/shortwave/internal/core/film"
	"github.com/taibuivan/shortwave/internal/core/tag"
	"github.com/taibuivan/shortwave/internal/core/video"
	"github.com/taibuivan/shortwave/internal/platform/validate"
)

var (
	// ErrExit is returned by Retreat on the first step: the caller should
	// leave the wizard.
	ErrExit = errors.New("wizard: exit requested")

	// ErrNotReady is returned by Submit before the last step or while a
	// required field is blank.
	ErrNotReady = errors.New("wizard: not ready to submit")
)

// Outcome reports what a move did.
type Outcome int

const (
	// Moved means the step changed.
	Moved Outcome = iota

	// Ignored means a transition was in flight; nothing changed.
	Ignored

	// Blocked means the move is not allowed from the current state.
	Blocked
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Ignored:
		return "ignored"
	default:
		return "blocked"
	}
}

// Option configures a [Wizard].
type Option func(*Wizard)

// Instant disables the transition lock. Moves complete immediately, as used
// when a submission is replayed server-side.
func Instant() Option {
	return func(w *Wizard) { w.instant = true }
}

// Wizard is the upload form state.
//
// # Invariant
//
// Step is always between [FirstStep] and [LastStep].
//
// # Concurrency
//
// Wizard is not safe for concurrent use; it belongs to one event loop.
type Wizard struct {
	step          Step
	videoURL      string
	title         string
	logline       string
	tags          *tag.Selector
	transitioning bool
	sequence      uint64
	instant       bool
}

// New creates a wizard on the first step with all fields empty.
func New(vocabulary []string, opts ...Option) *Wizard {
	w := &Wizard{
		step: FirstStep,
		tags: tag.NewSelector(vocabulary),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// # State

// Step returns the current step.
func (w *Wizard) Step() Step { return w.step }

// Transitioning reports whether a move is still animating.
func (w *Wizard) Transitioning() bool { return w.transitioning }

// Sequence identifies the most recent transition.
func (w *Wizard) Sequence() uint64 { return w.sequence }

// Tags exposes the tag selector used on the last step.
func (w *Wizard) Tags() *tag.Selector { return w.tags }

// Value returns the raw text of step's field. For [StepTags] it is the
// in-progress tag query.
func (w *Wizard) Value(step Step) string {
	switch step {
	case StepVideoURL:
		return w.videoURL
	case StepTitle:
		return w.title
	case StepLogline:
		return w.logline
	case StepTags:
		return w.tags.Query()
	}
	return ""
}

// ThumbnailURL previews the thumbnail for the current video link.
func (w *Wizard) ThumbnailURL() string {
	return video.ThumbnailURL(strings.TrimSpace(w.videoURL))
}

// IsStepValid reports whether step's required field is non-blank. The tags
// step is always valid.
func (w *Wizard) IsStepValid(step Step) bool {
	if !step.Required() {
		return step.valid()
	}
	return strings.TrimSpace(w.Value(step)) != ""
}

// CanSubmit reports whether Submit would succeed now.
func (w *Wizard) CanSubmit() bool {
	if w.step != LastStep {
		return false
	}
	for _, step := range Steps {
		if !w.IsStepValid(step) {
			return false
		}
	}
	return true
}

// # Transitions

// EditField sets the current step's field. It is always allowed, even
// mid-transition.
func (w *Wizard) EditField(value string) {
	switch w.step {
	case StepVideoURL:
		w.videoURL = value
	case StepTitle:
		w.title = value
	case StepLogline:
		w.logline = value
	case StepTags:
		w.tags.SetQuery(value)
	}
}

// Advance moves to the next step when the current one is valid.
func (w *Wizard) Advance() Outcome {
	if w.transitioning {
		return Ignored
	}
	if w.step >= LastStep || !w.IsStepValid(w.step) {
		return Blocked
	}

	w.move(w.step + 1)
	return Moved
}

// Retreat moves to the previous step without any validity check. On the
// first step it returns [ErrExit] instead.
func (w *Wizard) Retreat() (Outcome, error) {
	if w.transitioning {
		return Ignored, nil
	}
	if w.step <= FirstStep {
		return Blocked, ErrExit
	}

	w.move(w.step - 1)
	return Moved, nil
}

// EndTransition releases the lock taken by the move numbered sequence.
// It reports whether the lock was released.
func (w *Wizard) EndTransition(sequence uint64) bool {
	if !w.transitioning || sequence != w.sequence {
		return false
	}
	w.transitioning = false
	return true
}

func (w *Wizard) move(to Step) {
	w.step = to
	w.sequence++
	w.transitioning = !w.instant
	w.tags.Blur()
}

// # Submission

// Submit builds the finished draft. Text fields are trimmed and the
// thumbnail is derived from the video link (empty when the link has no
// video id). The wizard is left unchanged so a failed save can be retried.
func (w *Wizard) Submit() (film.Draft, error) {
	if !w.CanSubmit() {
		return film.Draft{}, ErrNotReady
	}

	tags := w.tags.Selected()
	if tags == nil {
		tags = []string{}
	}

	videoURL := strings.TrimSpace(w.videoURL)
	return film.Draft{
		YoutubeURL:   videoURL,
		ThumbnailURL: video.ThumbnailURL(videoURL),
		Title:        strings.TrimSpace(w.title),
		Logline:      strings.TrimSpace(w.logline),
		Tags:         tags,
	}, nil
}

// Validate reports every blank required field up to the current step as a
// validation error. Steps not reached yet are not checked.
func (w *Wizard) Validate() error {
	v := &validate.Validator{}
	for _, step := range Steps {
		if step > w.step {
			break
		}
		if step.Required() {
			v.Required(step.Field(), w.Value(step))
		}
	}
	return v.Err()
}
