package autotheme

import "errors"

var (
	// ErrNoTheme is returned when the profile selects no theme for the requested mode.
	ErrNoTheme = errors.New("no theme selected for mode")
	// ErrBusy is returned while a profile import or export holds the apply guard.
	ErrBusy = errors.New("profile transfer in progress")
	// ErrUnknownTheme is returned for an unrecognised theme selector.
	ErrUnknownTheme = errors.New("unknown theme")
	// ErrPaletteSize is returned when a palette cannot fill every role.
	ErrPaletteSize = errors.New("invalid palette size")
)
