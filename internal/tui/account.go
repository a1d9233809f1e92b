// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taibuivan/shortwave/internal/tui/client"
)

// Form field positions.
const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldAvatar
)

// authForm is the login or sign-up form. Login uses only the email and
// password inputs.
type authForm struct {
	signup bool
	inputs []textinput.Model
	focus  int
	busy   bool
	err    string
}

func newAuthForm(signup bool) authForm {
	newInput := func(placeholder string, limit int) textinput.Model {
		input := textinput.New()
		input.Prompt = "  "
		input.Placeholder = placeholder
		input.CharLimit = limit
		return input
	}

	inputs := make([]textinput.Model, fieldAvatar+1)
	inputs[fieldName] = newInput("Name", 80)
	inputs[fieldEmail] = newInput("Email", 254)
	inputs[fieldPassword] = newInput("Password", 128)
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '•'
	inputs[fieldAvatar] = newInput("Avatar image path (optional)", 1024)

	form := authForm{signup: signup, inputs: inputs}
	form.focus = form.fields()[0]
	form.inputs[form.focus].Focus()
	return form
}

// fields lists the inputs the form shows, in tab order.
func (f authForm) fields() []int {
	if f.signup {
		return []int{fieldName, fieldEmail, fieldPassword, fieldAvatar}
	}
	return []int{fieldEmail, fieldPassword}
}

func (f authForm) value(field int) string {
	return f.inputs[field].Value()
}

// moveFocus shifts focus by delta within the shown fields, wrapping.
func (f authForm) moveFocus(delta int) authForm {
	fields := f.fields()
	position := 0
	for i, field := range fields {
		if field == f.focus {
			position = i
		}
	}
	position = (position + delta + len(fields)) % len(fields)

	f.inputs = append([]textinput.Model(nil), f.inputs...)
	f.inputs[f.focus].Blur()
	f.focus = fields[position]
	f.inputs[f.focus].Focus()
	return f
}

func (f authForm) lastFocused() bool {
	fields := f.fields()
	return f.focus == fields[len(fields)-1]
}

// # Screens

func (a App) openForm(signup bool) (App, tea.Cmd) {
	a.accountMenu = false
	a.form = newAuthForm(signup)
	a.screen = ScreenLogin
	if signup {
		a.screen = ScreenSignup
	}
	return a, nil
}

func (a App) formKey(msg tea.KeyMsg) (App, tea.Cmd) {
	if a.form.busy {
		return a, nil
	}

	switch {
	case key.Matches(msg, keys.Back):
		return a.leaveForm()

	case key.Matches(msg, keys.Account):
		// Switches between login and sign-up, keeping the typed email.
		email := a.form.value(fieldEmail)
		afterAuth := a.afterAuth
		a, _ = a.openForm(!a.form.signup)
		a.form.inputs[fieldEmail].SetValue(email)
		a.afterAuth = afterAuth
		return a, nil

	case key.Matches(msg, keys.Tab):
		if msg.String() == "shift+tab" {
			a.form = a.form.moveFocus(-1)
		} else {
			a.form = a.form.moveFocus(1)
		}
		return a, nil

	case key.Matches(msg, keys.Up):
		a.form = a.form.moveFocus(-1)
		return a, nil

	case key.Matches(msg, keys.Down):
		a.form = a.form.moveFocus(1)
		return a, nil

	case key.Matches(msg, keys.Submit):
		return a.submitForm()

	case key.Matches(msg, keys.Enter):
		if a.form.lastFocused() {
			return a.submitForm()
		}
		a.form = a.form.moveFocus(1)
		return a, nil
	}

	inputs := append([]textinput.Model(nil), a.form.inputs...)
	var cmd tea.Cmd
	inputs[a.form.focus], cmd = inputs[a.form.focus].Update(msg)
	a.form.inputs = inputs
	a.form.err = ""
	return a, cmd
}

// leaveForm returns to the screen that asked for a login, or the grid.
func (a App) leaveForm() (App, tea.Cmd) {
	target := a.afterAuth
	a.afterAuth = ScreenBrowse
	a.form = authForm{}
	if target == ScreenUpload {
		return a.openUpload()
	}
	return a.backToBrowse()
}

func (a App) submitForm() (App, tea.Cmd) {
	email := strings.TrimSpace(a.form.value(fieldEmail))
	password := a.form.value(fieldPassword)

	if a.form.signup {
		name := strings.TrimSpace(a.form.value(fieldName))
		if name == "" || email == "" || password == "" {
			a.form.err = "Name, email and password are required."
			return a, nil
		}
		a.form.busy = true
		return a, tea.Batch(signUp(a.backend, client.SignUpInput{
			Name:       name,
			Email:      email,
			Password:   password,
			AvatarPath: strings.TrimSpace(a.form.value(fieldAvatar)),
		}), a.spinner.Tick)
	}

	if email == "" || password == "" {
		a.form.err = "Email and password are required."
		return a, nil
	}
	a.form.busy = true
	return a, tea.Batch(login(a.backend, email, password), a.spinner.Tick)
}

func (a App) authDone(msg AuthDone) (App, tea.Cmd) {
	if a.screen != ScreenLogin && a.screen != ScreenSignup {
		return a, nil
	}
	a.form.busy = false

	if msg.Err != nil {
		a.logger.Warn("auth_failed", slog.Any("error", msg.Err))
		a.form.err = msg.Err.Error()
		return a, nil
	}

	a.logger.Info("auth_succeeded", slog.String("user_id", msg.User.ID))
	a, cmd := a.leaveForm()
	a.notice = "Welcome, " + msg.User.Name + "."
	return a, cmd
}

func (a App) formView() string {
	var b strings.Builder

	heading := "Log in"
	if a.form.signup {
		heading = "Create an account"
	}
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n")
	if a.form.signup {
		b.WriteString(mutedStyle.Render("Create an account to upload your short films"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, field := range a.form.fields() {
		marker := "  "
		if field == a.form.focus {
			marker = selectedItemStyle.Render("› ")
		}
		b.WriteString(marker + a.form.inputs[field].View())
		b.WriteString("\n")
	}

	if a.form.err != "" {
		b.WriteString("\n")
		b.WriteString(bannerStyle.Render(a.form.err))
		b.WriteString("\n")
	}
	if a.form.busy {
		b.WriteString("\n" + a.spinner.View() + " Working...\n")
	}

	other := "ctrl+a sign up instead"
	if a.form.signup {
		other = "ctrl+a log in instead"
	}
	b.WriteString(helpStyle.Render("tab next · enter submit · " + other + " · esc back"))
	return b.String()
}

// # Account menu

type menuItem struct {
	label  string
	action func(App) (App, tea.Cmd)
}

func (a App) menuItems() []menuItem {
	if a.backend.CurrentUser() != nil {
		return []menuItem{
			{"Upload a short", App.openUpload},
			{"Log out", func(a App) (App, tea.Cmd) {
				a.accountMenu = false
				return a, logout(a.backend)
			}},
		}
	}
	return []menuItem{
		{"Log in", func(a App) (App, tea.Cmd) { return a.openForm(false) }},
		{"Sign up", func(a App) (App, tea.Cmd) { return a.openForm(true) }},
	}
}

func (a App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	items := a.menuItems()

	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Account):
		a.accountMenu = false
	case key.Matches(msg, keys.Up):
		if a.menuCursor > 0 {
			a.menuCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.menuCursor < len(items)-1 {
			a.menuCursor++
		}
	case key.Matches(msg, keys.Enter):
		if a.menuCursor < len(items) {
			a.afterAuth = ScreenBrowse
			return items[a.menuCursor].action(a)
		}
	}
	return a, nil
}

func (a App) loggedOut(msg LoggedOut) (App, tea.Cmd) {
	if msg.Err != nil {
		a.logger.Warn("logout_failed", slog.Any("error", msg.Err))
		a.banner = "Logout failed: " + msg.Err.Error()
		return a, nil
	}
	a.notice = "Logged out."
	return a, nil
}

func (a App) menuView() string {
	items := a.menuItems()
	rows := make([]string, 0, len(items))
	for i, item := range items {
		if i == a.menuCursor {
			rows = append(rows, selectedItemStyle.Render("› "+item.label))
		} else {
			rows = append(rows, "  "+item.label)
		}
	}
	return menuStyle.Render(strings.Join(rows, "\n"))
}
