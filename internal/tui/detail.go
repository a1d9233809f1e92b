// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tui

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/taibuivan/shortwave/internal/tui/client"
)

func (a App) openDetail(id string) (App, tea.Cmd) {
	a.screen = ScreenDetail
	a.accountMenu = false
	a.filmID = id
	a.detail = nil
	a.playing = false
	a.detailLoading = true
	return a, tea.Batch(loadFilm(a.backend, id), a.spinner.Tick)
}

// filmLoaded shows the film page. A missing film sends the user back to
// the grid.
func (a App) filmLoaded(msg FilmLoaded) (App, tea.Cmd) {
	if msg.ID != a.filmID || a.screen != ScreenDetail {
		return a, nil
	}
	a.detailLoading = false

	switch {
	case errors.Is(msg.Err, client.ErrNotFound):
		a.banner = "That film no longer exists."
		return a.backToBrowse()
	case msg.Err != nil:
		a.logger.Error("film_load_failed", slog.String("film_id", msg.ID), slog.Any("error", msg.Err))
		a.banner = "Could not load film: " + msg.Err.Error()
		return a, nil
	}

	a.banner = ""
	a.detail = msg.Detail
	return a, nil
}

func (a App) detailKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		a.banner = ""
		return a.backToBrowse()
	case key.Matches(msg, keys.Play):
		if a.detail != nil {
			a.playing = !a.playing
		}
		return a, nil
	case key.Matches(msg, keys.Refresh):
		if a.detailLoading {
			return a, nil
		}
		return a.openDetail(a.filmID)
	}
	return a, nil
}

func (a App) detailView() string {
	if a.detailLoading {
		return a.spinner.View() + " Loading film..."
	}
	if a.detail == nil || a.detail.Film == nil {
		return helpStyle.Render("esc back · ctrl+r retry")
	}

	f := a.detail.Film
	var b strings.Builder

	b.WriteString(titleStyle.Render(f.Title))
	b.WriteString("\n")

	byline := "uploaded " + humanize.RelTime(f.CreatedAt, a.now(), "ago", "from now")
	if author := a.detail.Author; author != nil && author.Name != "" {
		byline = "by " + author.Name + " · " + byline
	}
	b.WriteString(mutedStyle.Render(byline))
	b.WriteString("\n\n")

	if f.Logline != "" {
		b.WriteString(f.Logline)
		b.WriteString("\n\n")
	}

	if len(f.Tags) > 0 {
		for _, t := range f.Tags {
			b.WriteString(chipStyle.Render(t))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(a.playerView())
	b.WriteString(helpStyle.Render("p play · esc back · ctrl+c quit"))
	return b.String()
}

// playerView shows the thumbnail until play is pressed, then the player
// link. Links without a video id fall back to a neutral message.
func (a App) playerView() string {
	if !a.playing {
		thumbnail := a.detail.ThumbnailURL
		if thumbnail == "" {
			thumbnail = "no thumbnail"
		}
		return menuStyle.Render("▶  " + thumbnail)
	}
	if a.detail.EmbedURL == "" {
		return menuStyle.Render(mutedStyle.Render("Video unavailable"))
	}
	return menuStyle.Render("Now playing  " + a.detail.EmbedURL)
}
