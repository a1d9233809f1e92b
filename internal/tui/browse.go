// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taibuivan/shortwave/internal/core/film"
	"github.com/taibuivan/shortwave/internal/core/search"
)

// gridColumns is the number of cards per grid row.
const gridColumns = 3

// openBrowse shows the grid, fetching the collection when reload is set.
func (a App) openBrowse(reload bool) (App, tea.Cmd) {
	a.screen = ScreenBrowse
	a.accountMenu = false
	if !reload {
		return a, nil
	}
	a.loading = true
	return a, tea.Batch(loadFilms(a.backend), a.spinner.Tick)
}

// backToBrowse returns to the grid, fetching only when no collection is loaded
// and no fetch is outstanding.
func (a App) backToBrowse() (App, tea.Cmd) {
	return a.openBrowse(a.films == nil && !a.loading)
}

// filmsLoaded installs the collection. A failed fetch leaves the catalogue
// empty behind a banner and is not retried.
func (a App) filmsLoaded(msg FilmsLoaded) (App, tea.Cmd) {
	a.loading = false
	if msg.Err != nil {
		a.logger.Error("films_load_failed", slog.Any("error", msg.Err))
		a.films = []*film.Film{}
		a.banner = "Could not load films: " + msg.Err.Error()
		a.cursor = 0
		return a, nil
	}

	a.films = msg.Films
	a.cursor = min(a.cursor, max(0, a.results().Len()-1))
	return a, nil
}

func (a App) results() search.Result[*film.Film] {
	return search.Search(a.films, a.query.Value())
}

func (a App) browseKey(msg tea.KeyMsg) (App, tea.Cmd) {
	if a.accountMenu {
		return a.menuKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Account):
		a.accountMenu = true
		a.menuCursor = 0
		return a, nil

	case key.Matches(msg, keys.Upload):
		return a.openUpload()

	case key.Matches(msg, keys.Refresh):
		if a.loading {
			return a, nil
		}
		return a.openBrowse(true)

	case key.Matches(msg, keys.Back):
		a.query.SetValue("")
		a.cursor = 0
		return a, nil

	case key.Matches(msg, keys.Enter):
		records := a.results().Records
		if a.loading || a.cursor >= len(records) {
			return a, nil
		}
		return a.openDetail(records[a.cursor].ID)

	case key.Matches(msg, keys.Left):
		return a.moveCursor(-1), nil
	case key.Matches(msg, keys.Right):
		return a.moveCursor(1), nil
	case key.Matches(msg, keys.Up):
		return a.moveCursor(-gridColumns), nil
	case key.Matches(msg, keys.Down):
		return a.moveCursor(gridColumns), nil
	}

	before := a.query.Value()
	var cmd tea.Cmd
	a.query, cmd = a.query.Update(msg)
	if a.query.Value() != before {
		a.cursor = 0
	}
	return a, cmd
}

// moveCursor steps over filled cards only.
func (a App) moveCursor(delta int) App {
	filled := a.filledCount()
	if filled == 0 {
		a.cursor = 0
		return a
	}
	next := a.cursor + delta
	if next >= 0 && next < filled {
		a.cursor = next
	}
	return a
}

func (a App) filledCount() int {
	count := 0
	for _, slot := range search.Present(a.loading, a.query.Value(), a.results()) {
		if slot.Kind == search.SlotFilled {
			count++
		}
	}
	return count
}

// # Rendering

func (a App) browseView() string {
	var b strings.Builder

	b.WriteString(mutedStyle.Render("All of the best short films in one convenient place"))
	b.WriteString("\n\n")
	b.WriteString(a.query.View())
	b.WriteString("\n")

	query := strings.TrimSpace(a.query.Value())
	result := a.results()
	if !a.loading && result.ShowCreate(query) && result.Len() > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("No exact title match. Showing shorts that mention %q.", query)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(a.gridView(search.Present(a.loading, a.query.Value(), result)))
	b.WriteString(helpStyle.Render("type to search · arrows move · enter open · ctrl+u upload · ctrl+r reload · ctrl+c quit"))
	return b.String()
}

func (a App) gridView(slots []search.Slot[*film.Film]) string {
	if len(slots) == 1 && slots[0].Kind == search.SlotNoMatches {
		text := fmt.Sprintf("No shorts match %q. Press ctrl+u to upload one.", strings.TrimSpace(a.query.Value()))
		return placeholderCardStyle.Width(gridColumns*(cardWidth+2) - 2).Render(text) + "\n"
	}

	var rows []string
	for start := 0; start < len(slots); start += gridColumns {
		end := min(start+gridColumns, len(slots))
		cards := make([]string, 0, gridColumns)
		for i := start; i < end; i++ {
			cards = append(cards, a.cardView(i, slots[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

func (a App) cardView(index int, slot search.Slot[*film.Film]) string {
	if slot.Kind != search.SlotFilled {
		content := ""
		if a.loading {
			content = a.spinner.View()
		}
		return placeholderCardStyle.Render(content)
	}

	f := slot.Record
	lines := []string{titleStyle.Render(truncate(f.Title, cardWidth-2))}
	if f.Logline != "" {
		lines = append(lines, truncate(f.Logline, cardWidth-2))
	}
	if len(f.Tags) > 0 {
		lines = append(lines, mutedStyle.Render(truncate(strings.Join(f.Tags, ", "), cardWidth-2)))
	}

	style := cardStyle
	if index == a.cursor {
		style = selectedCardStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}
