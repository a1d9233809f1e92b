// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tui

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taibuivan/shortwave/internal/core/film"
	"github.com/taibuivan/shortwave/internal/core/wizard"
)

// Screen identifies the page the client is showing.
type Screen int

const (
	ScreenBrowse Screen = iota
	ScreenDetail
	ScreenUpload
	ScreenLogin
	ScreenSignup
)

// Options configures a new [App].
type Options struct {
	// Start is the first screen. [ScreenDetail] also needs FilmID.
	Start  Screen
	FilmID string

	// FadeOut and FadeIn time the wizard step transition. Both zero
	// releases the transition lock immediately.
	FadeOut time.Duration
	FadeIn  time.Duration

	Logger *slog.Logger
	Now    func() time.Time
}

// App is the root Bubble Tea model.
type App struct {
	backend Backend
	logger  *slog.Logger
	now     func() time.Time
	fadeOut time.Duration
	fadeIn  time.Duration

	screen  Screen
	width   int
	height  int
	spinner spinner.Model
	banner  string
	notice  string

	// Browse
	films   []*film.Film
	loading bool
	query   textinput.Model
	cursor  int

	// Account menu, owned by the layout rather than any one screen.
	accountMenu bool
	menuCursor  int

	// Detail
	filmID        string
	detail        *film.Detail
	detailLoading bool
	playing       bool

	// Upload
	wizard            *wizard.Wizard
	vocabularyLoading bool
	field             textinput.Model
	tagCursor         int
	fade              fadeState
	submitting        bool
	submitErr         string

	// Login and sign-up
	form      authForm
	afterAuth Screen
}

// fadeState tracks the running step transition. During the fade-out the
// step being left is still drawn.
type fadeState struct {
	active bool
	phase  fadePhase
	from   wizard.Step
}

// New creates the root model.
func New(backend Backend, opts Options) App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle

	query := textinput.New()
	query.Prompt = "/ "
	query.Placeholder = "Search for a short..."
	query.CharLimit = 120
	query.Focus()

	app := App{
		backend:   backend,
		logger:    logger,
		now:       now,
		fadeOut:   opts.FadeOut,
		fadeIn:    opts.FadeIn,
		screen:    opts.Start,
		spinner:   s,
		query:     query,
		filmID:    opts.FilmID,
		tagCursor: -1,
		afterAuth: ScreenBrowse,
	}
	app, _ = app.start()
	return app
}

// Init issues the loads of the first screen. New has already set the
// matching loading state.
func (a App) Init() tea.Cmd {
	_, cmd := a.start()
	return tea.Batch(cmd, a.spinner.Tick)
}

// start opens the first screen.
func (a App) start() (App, tea.Cmd) {
	switch a.screen {
	case ScreenDetail:
		return a.openDetail(a.filmID)
	case ScreenUpload:
		return a.openUpload()
	case ScreenLogin, ScreenSignup:
		a.form = newAuthForm(a.screen == ScreenSignup)
		return a, nil
	default:
		return a.openBrowse(true)
	}
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return a.update(msg)
}

func (a App) update(msg tea.Msg) (App, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.query.Width = max(20, msg.Width-8)
		a.field.Width = max(20, msg.Width-8)
		return a, nil

	case spinner.TickMsg:
		if !a.busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case FilmsLoaded:
		return a.filmsLoaded(msg)

	case FilmLoaded:
		return a.filmLoaded(msg)

	case VocabularyLoaded:
		return a.vocabularyLoaded(msg)

	case SubmitDone:
		return a.submitDone(msg)

	case AuthDone:
		return a.authDone(msg)

	case LoggedOut:
		return a.loggedOut(msg)

	case TransitionTick:
		return a.transitionTick(msg)

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return a, tea.Quit
		}
		a.banner, a.notice = "", ""
		switch a.screen {
		case ScreenDetail:
			return a.detailKey(msg)
		case ScreenUpload:
			return a.uploadKey(msg)
		case ScreenLogin, ScreenSignup:
			return a.formKey(msg)
		default:
			return a.browseKey(msg)
		}
	}

	return a, nil
}

// busy reports whether something on screen is waiting on the backend.
func (a App) busy() bool {
	return a.loading || a.detailLoading || a.vocabularyLoading || a.submitting || a.form.busy
}

// # Rendering

// View renders the UI.
func (a App) View() string {
	var body string
	switch a.screen {
	case ScreenDetail:
		body = a.detailView()
	case ScreenUpload:
		body = a.uploadView()
	case ScreenLogin, ScreenSignup:
		body = a.formView()
	default:
		body = a.browseView()
	}

	sections := []string{a.headerView()}
	if a.accountMenu {
		sections = append(sections, a.menuView())
	}
	if a.banner != "" {
		sections = append(sections, bannerStyle.Render(a.banner))
	}
	if a.notice != "" {
		sections = append(sections, selectedItemStyle.Render(a.notice))
	}
	sections = append(sections, body)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a App) headerView() string {
	brand := titleStyle.Render("SHORTWAVE")
	account := mutedStyle.Render("not logged in · ctrl+a")
	if user := a.backend.CurrentUser(); user != nil {
		account = mutedStyle.Render(user.Name + " · ctrl+a")
	}

	gap := a.width - lipgloss.Width(brand) - lipgloss.Width(account)
	if gap < 2 {
		gap = 2
	}
	return brand + strings.Repeat(" ", gap) + account
}

// truncate cuts s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}
