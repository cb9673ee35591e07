package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dinojump/internal/core"
)

// KeyMapper translates Bubble Tea key and mouse messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action (may be ActionNone).
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit
	case " ", "up", "w":
		return core.ActionJump
	case "enter":
		return core.ActionConfirm
	case "r":
		return core.ActionRestart
	case "tab":
		return core.ActionScoreboard
	case "ctrl+s":
		return core.ActionScreenshot
	}
	return core.ActionNone
}

// MapMouse turns a left-button press into a jump.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) core.Action {
	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
		return core.ActionJump
	}
	return core.ActionNone
}
