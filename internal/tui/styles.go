// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("212")
	colorMuted  = lipgloss.Color("241")
	colorError  = lipgloss.Color("196")
	colorPanel  = lipgloss.Color("236")
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorAccent)

var mutedStyle = lipgloss.NewStyle().
	Foreground(colorMuted)

var bannerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(colorError).
	Padding(0, 1)

// cardWidth fits three cards and their borders on an 80 column terminal.
const cardWidth = 24

var cardStyle = lipgloss.NewStyle().
	Width(cardWidth).
	Height(3).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1)

var selectedCardStyle = cardStyle.
	BorderForeground(colorAccent)

var placeholderCardStyle = cardStyle.
	BorderForeground(colorPanel)

var chipStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(colorPanel).
	Padding(0, 1).
	MarginRight(1)

var menuStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(colorAccent).
	Padding(0, 1)

var selectedItemStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorAccent)

var fadingStyle = lipgloss.NewStyle().
	Faint(true)

var helpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	MarginTop(1)
