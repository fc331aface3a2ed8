package tui

// Key names as reported by tea.KeyMsg.String().
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keySlash    = "/"
	keyS        = "s"
	keyT        = "t"
	keyE        = "e"
	keyY        = "y"
	keyN        = "n"
	keyLeft     = "left"
	keyRight    = "right"
	keyH        = "h"
	keyL        = "l"
	keyG        = "g"
	keyShiftG   = "G"
	keyPlus     = "+"
	keyMinus    = "-"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
)

// helpText lists the list-mode bindings.
const helpText = "[/] Filter  [1-9] Sort column  [tab] Select column  [s] Sort selected  " +
	"[←/→] Page  [g/G] First/Last  [+/-] Page size  [t] Theme  [e] Export  [esc] Clear  [q] Quit"
