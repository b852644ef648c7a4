package core

// Action is a semantic player intent, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // move cursor up
	ActionDown           // move cursor down
	ActionLeft           // move cursor left
	ActionRight          // move cursor right
	ActionSelect         // pick the tile under the cursor
	ActionShuffle        // power-up: shuffle positions
	ActionUndo           // power-up: undo last move
	ActionDiscard        // power-up: clear three tray slots
	ActionHint           // power-up: highlight a group
	ActionRestart        // replay the current level
	ActionNext           // continue to the next level
	ActionHelp           // toggle full help
	ActionBack           // return to the menu
	ActionQuit           // leave the program
)

var actionNames = map[Action]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionSelect:  "Select",
	ActionShuffle: "Shuffle",
	ActionUndo:    "Undo",
	ActionDiscard: "Discard",
	ActionHint:    "Hint",
	ActionRestart: "Restart",
	ActionNext:    "Next",
	ActionHelp:    "Help",
	ActionBack:    "Back",
	ActionQuit:    "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// Direction returns the cursor step for movement actions.
// ok is false for every other action.
func (a Action) Direction() (dx, dy int, ok bool) {
	switch a {
	case ActionUp:
		return 0, -1, true
	case ActionDown:
		return 0, 1, true
	case ActionLeft:
		return -1, 0, true
	case ActionRight:
		return 1, 0, true
	}
	return 0, 0, false
}
