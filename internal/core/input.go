package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the front end to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionJump              // Space, W, Up, left click
	ActionConfirm           // Enter - start from the title screen or restart after game over
	ActionRestart           // R - restart after game over
	ActionScoreboard        // Tab - open the scoreboard
	ActionScreenshot        // Ctrl+S - dump the current frame to a file
	ActionQuit              // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionScoreboard:
		return "Scoreboard"
	case ActionScreenshot:
		return "Screenshot"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
