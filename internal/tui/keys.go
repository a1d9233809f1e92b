// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tui

import "github.com/charmbracelet/bubbles/key"

// Text inputs take every printable key, so screen actions use control keys.
var keys = struct {
	Quit    key.Binding
	Back    key.Binding
	Enter   key.Binding
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Tab     key.Binding
	Upload  key.Binding
	Account key.Binding
	Refresh key.Binding
	Play    key.Binding
	Submit  key.Binding
	Remove  key.Binding
}{
	Quit:    key.NewBinding(key.WithKeys("ctrl+c")),
	Back:    key.NewBinding(key.WithKeys("esc")),
	Enter:   key.NewBinding(key.WithKeys("enter")),
	Up:      key.NewBinding(key.WithKeys("up")),
	Down:    key.NewBinding(key.WithKeys("down")),
	Left:    key.NewBinding(key.WithKeys("left")),
	Right:   key.NewBinding(key.WithKeys("right")),
	Tab:     key.NewBinding(key.WithKeys("tab", "shift+tab")),
	Upload:  key.NewBinding(key.WithKeys("ctrl+u")),
	Account: key.NewBinding(key.WithKeys("ctrl+a")),
	Refresh: key.NewBinding(key.WithKeys("ctrl+r")),
	Play:    key.NewBinding(key.WithKeys("p", " ", "space")),
	Submit:  key.NewBinding(key.WithKeys("ctrl+s")),
	Remove:  key.NewBinding(key.WithKeys("ctrl+x")),
}
