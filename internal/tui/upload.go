// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taibuivan/shortwave/internal/core/film"
	"github.com/taibuivan/shortwave/internal/core/tag"
	"github.com/taibuivan/shortwave/internal/core/wizard"
	"github.com/taibuivan/shortwave/internal/tui/client"
)

type stepCopy struct {
	prompt      string
	help        string
	placeholder string
	limit       int
}

var stepCopies = map[wizard.Step]stepCopy{
	wizard.StepVideoURL: {
		prompt:      "Paste your YouTube link below",
		help:        "Upload a video to YouTube (public or unlisted), and paste the share link here.",
		placeholder: "https://youtu.be/...",
		limit:       2048,
	},
	wizard.StepTitle: {
		prompt:      "What is the title of your short?",
		help:        "This is the public, searchable name for your film.",
		placeholder: "Title",
		limit:       film.MaxTitleLength,
	},
	wizard.StepLogline: {
		prompt:      "What is a quick log line that describes your short?",
		help:        "One sentence that describes the basic story of your film.",
		placeholder: "Log line",
		limit:       film.MaxLoglineLength,
	},
	wizard.StepTags: {
		prompt:      "Add some tags to your short",
		help:        "Tags represent the class or club the film was made for, the genre, and more.",
		placeholder: "Search for tags...",
		limit:       film.MaxTagLength,
	},
}

// openUpload shows the wizard. A wizard left by an earlier visit, such as
// one interrupted by the login screen, is resumed as is.
func (a App) openUpload() (App, tea.Cmd) {
	a.screen = ScreenUpload
	a.accountMenu = false
	a.banner = ""
	if a.wizard != nil {
		return a.syncField(), nil
	}
	a.vocabularyLoading = true
	return a, tea.Batch(loadVocabulary(a.backend), a.spinner.Tick)
}

// vocabularyLoaded builds the wizard. Without a served vocabulary the
// built-in one is used.
func (a App) vocabularyLoaded(msg VocabularyLoaded) (App, tea.Cmd) {
	if !a.vocabularyLoading {
		return a, nil
	}
	a.vocabularyLoading = false

	names := msg.Names
	if msg.Err != nil || len(names) == 0 {
		if msg.Err != nil {
			a.logger.Warn("vocabulary_load_failed", slog.Any("error", msg.Err))
		}
		names = tag.DefaultVocabulary
	}

	if a.wizard == nil {
		a.wizard = wizard.New(names)
		a.submitErr = ""
		a.fade = fadeState{}
	}
	return a.syncField(), nil
}

// syncField rebuilds the text input for the current step from the wizard.
func (a App) syncField() App {
	step := a.wizard.Step()
	text := stepCopies[step]

	field := textinput.New()
	field.Prompt = "> "
	field.Placeholder = text.placeholder
	field.CharLimit = text.limit
	field.Width = max(20, a.width-8)
	field.SetValue(a.wizard.Value(step))
	field.CursorEnd()
	field.Focus()
	a.field = field

	a.tagCursor = -1
	if step == wizard.StepTags {
		a.wizard.Tags().Focus()
	}
	return a
}

func (a App) uploadKey(msg tea.KeyMsg) (App, tea.Cmd) {
	if a.wizard == nil {
		if key.Matches(msg, keys.Back) {
			a.vocabularyLoading = false
			return a.backToBrowse()
		}
		return a, nil
	}

	onTags := a.wizard.Step() == wizard.StepTags

	switch {
	case key.Matches(msg, keys.Back):
		return a.retreat()

	case key.Matches(msg, keys.Submit):
		return a.submit()

	case key.Matches(msg, keys.Enter):
		if onTags {
			if a.commitTag() {
				return a.syncField(), nil
			}
			return a.submit()
		}
		return a.advance()

	case onTags && key.Matches(msg, keys.Up):
		if a.tagCursor >= 0 {
			a.tagCursor--
		}
		return a, nil

	case onTags && key.Matches(msg, keys.Down):
		if a.tagCursor < len(a.tagOptions())-1 {
			a.tagCursor++
		}
		return a, nil

	case onTags && key.Matches(msg, keys.Remove):
		if selected := a.wizard.Tags().Selected(); len(selected) > 0 {
			a.wizard.Tags().Remove(selected[len(selected)-1])
			a.tagCursor = -1
		}
		return a, nil
	}

	before := a.field.Value()
	var cmd tea.Cmd
	a.field, cmd = a.field.Update(msg)
	if value := a.field.Value(); value != before {
		a.wizard.EditField(value)
		a.submitErr = ""
		a.tagCursor = -1
	}
	return a, cmd
}

// tagOption is one row of the suggestion menu.
type tagOption struct {
	name   string
	create bool
}

func (a App) tagOptions() []tagOption {
	selector := a.wizard.Tags()
	if !selector.MenuOpen() {
		return nil
	}
	var options []tagOption
	for _, name := range selector.Suggestions() {
		options = append(options, tagOption{name: name})
	}
	if selector.ShowCreate() {
		options = append(options, tagOption{name: strings.TrimSpace(selector.Query()), create: true})
	}
	return options
}

// commitTag applies the highlighted menu row, or the typed query when no
// row is highlighted. It reports whether the key was consumed.
func (a App) commitTag() bool {
	selector := a.wizard.Tags()
	options := a.tagOptions()
	if a.tagCursor >= 0 && a.tagCursor < len(options) {
		option := options[a.tagCursor]
		if option.create {
			selector.Create()
		} else {
			selector.Select(option.name)
		}
		return true
	}
	if strings.TrimSpace(selector.Query()) == "" {
		return false
	}
	selector.Commit()
	return true
}

func (a App) advance() (App, tea.Cmd) {
	from := a.wizard.Step()
	switch a.wizard.Advance() {
	case wizard.Moved:
		return a.beginTransition(from)
	case wizard.Blocked:
		a.submitErr = from.String() + " is required."
	}
	return a, nil
}

func (a App) retreat() (App, tea.Cmd) {
	from := a.wizard.Step()
	outcome, err := a.wizard.Retreat()
	if errors.Is(err, wizard.ErrExit) {
		a.wizard = nil
		a.submitErr = ""
		return a.backToBrowse()
	}
	if outcome == wizard.Moved {
		return a.beginTransition(from)
	}
	return a, nil
}

// beginTransition starts the fade after a step change. Input stays locked
// until the fade-in tick releases the wizard.
func (a App) beginTransition(from wizard.Step) (App, tea.Cmd) {
	a.submitErr = ""
	a = a.syncField()

	if a.fadeOut <= 0 && a.fadeIn <= 0 {
		a.wizard.EndTransition(a.wizard.Sequence())
		a.fade = fadeState{}
		return a, nil
	}

	a.fade = fadeState{active: true, phase: fadeOut, from: from}
	return a, transitionAfter(a.fadeOut, a.wizard.Sequence(), fadeOut)
}

func (a App) transitionTick(msg TransitionTick) (App, tea.Cmd) {
	if a.wizard == nil || msg.Seq != a.wizard.Sequence() {
		return a, nil
	}

	if msg.Phase == fadeOut {
		a.fade.phase = fadeIn
		return a, transitionAfter(a.fadeIn, msg.Seq, fadeIn)
	}

	if a.wizard.EndTransition(msg.Seq) {
		a.fade = fadeState{}
	}
	return a, nil
}

// submit publishes the draft. Submits are ignored while one is in flight or
// while a step change is still fading in; without a session the user is sent
// to log in first.
func (a App) submit() (App, tea.Cmd) {
	if a.submitting || a.wizard.Transitioning() {
		return a, nil
	}

	draft, err := a.wizard.Submit()
	if err != nil {
		a.submitErr = "Add a video link, title and log line before uploading."
		return a, nil
	}

	if a.backend.CurrentUser() == nil {
		return a.requireLogin()
	}

	a.submitting = true
	a.submitErr = ""
	return a, tea.Batch(submitFilm(a.backend, draft), a.spinner.Tick)
}

func (a App) requireLogin() (App, tea.Cmd) {
	a.afterAuth = ScreenUpload
	a.screen = ScreenLogin
	a.form = newAuthForm(false)
	a.form.err = "Log in to upload your film."
	return a, nil
}

// submitDone returns to the grid on success. A failure keeps the wizard
// as it was so the user can retry.
func (a App) submitDone(msg SubmitDone) (App, tea.Cmd) {
	a.submitting = false

	switch {
	case errors.Is(msg.Err, client.ErrUnauthorized):
		return a.requireLogin()
	case msg.Err != nil:
		a.logger.Error("film_submit_failed", slog.Any("error", msg.Err))
		a.submitErr = "Upload failed: " + msg.Err.Error()
		return a, nil
	}

	a.logger.Info("film_submitted", slog.String("film_id", msg.Film.ID))
	a.wizard = nil
	a.query.SetValue("")
	a.cursor = 0
	a, cmd := a.openBrowse(true)
	a.notice = fmt.Sprintf("Uploaded %q.", msg.Film.Title)
	return a, cmd
}

// # Rendering

func (a App) uploadView() string {
	if a.wizard == nil {
		return a.spinner.View() + " Preparing upload..."
	}

	step := a.wizard.Step()
	shown := step
	if a.fade.active && a.fade.phase == fadeOut {
		shown = a.fade.from
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Upload a short"))
	b.WriteString("  ")
	b.WriteString(a.progressView())
	b.WriteString("\n\n")

	body := a.stepView(shown)
	if a.fade.active {
		body = fadingStyle.Render(body)
	}
	b.WriteString(body)
	b.WriteString("\n")

	if a.submitErr != "" {
		b.WriteString(bannerStyle.Render(a.submitErr))
		b.WriteString("\n")
	}
	if a.submitting {
		b.WriteString(a.spinner.View() + " Uploading...\n")
	}

	help := "enter continue · esc back"
	if step == wizard.FirstStep {
		help = "enter continue · esc cancel"
	}
	if step == wizard.LastStep {
		help = "enter add tag or upload · up/down pick · ctrl+x remove last · ctrl+s upload · esc back"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func (a App) progressView() string {
	current := a.wizard.Step()
	dots := make([]string, 0, len(wizard.Steps))
	for _, s := range wizard.Steps {
		switch {
		case s < current:
			dots = append(dots, "●")
		case s == current:
			dots = append(dots, selectedItemStyle.Render("●"))
		default:
			dots = append(dots, mutedStyle.Render("○"))
		}
	}
	return mutedStyle.Render(fmt.Sprintf("Step %d of %d ", current.Number(), len(wizard.Steps))) + strings.Join(dots, " ")
}

// stepView draws step. Only the current step owns the live input; a step
// being faded out is drawn from the wizard's stored value.
func (a App) stepView(step wizard.Step) string {
	text := stepCopies[step]

	var b strings.Builder
	b.WriteString(text.prompt)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(text.help))
	b.WriteString("\n\n")

	if step == a.wizard.Step() {
		b.WriteString(a.field.View())
	} else {
		b.WriteString("> " + a.wizard.Value(step))
	}
	b.WriteString("\n")

	switch step {
	case wizard.StepVideoURL:
		if thumbnail := a.wizard.ThumbnailURL(); thumbnail != "" {
			b.WriteString(mutedStyle.Render("Thumbnail  " + thumbnail))
			b.WriteString("\n")
		}
	case wizard.StepTags:
		b.WriteString(a.tagsView(step == a.wizard.Step()))
	}
	return b.String()
}

func (a App) tagsView(live bool) string {
	var b strings.Builder

	if selected := a.wizard.Tags().Selected(); len(selected) > 0 {
		for _, t := range selected {
			b.WriteString(chipStyle.Render(t))
		}
		b.WriteString("\n")
	}

	options := a.tagOptions()
	if !live || len(options) == 0 {
		return b.String()
	}

	rows := make([]string, 0, len(options))
	for i, option := range options {
		label := option.name
		if option.create {
			label = fmt.Sprintf("Create %q", option.name)
		}
		if i == a.tagCursor {
			rows = append(rows, selectedItemStyle.Render("› "+label))
		} else {
			rows = append(rows, "  "+label)
		}
	}
	b.WriteString(menuStyle.Render(strings.Join(rows, "\n")))
	b.WriteString("\n")
	return b.String()
}
