package keyboard

// Keys holds the application-level key bindings. Screen shortcuts live on
// the screens themselves and in the command registry; these are the keys
// the app routes on its own. ctrl+c always quits regardless.
type Keys struct {
	Quit string // Quit the application
	Back string // Walk back through visited screens, clear filters
	Help string // Open the operations overlay

	// Navigation keys are always handed to the focused screen. Everything
	// else printable falls through to the command bar, where ':' and '/'
	// open palettes and plain text starts a filter.
	Navigation []string
}

// Default returns the default key bindings.
func Default() *Keys {
	return &Keys{
		Quit: "q",
		Back: "esc",
		Help: "?",
		Navigation: []string{
			"up", "down", "left", "right",
			"pgup", "pgdown", "home", "end",
			"enter",
		},
	}
}

// IsNavigation reports whether key should be routed to the focused screen.
func (k *Keys) IsNavigation(key string) bool {
	for _, nav := range k.Navigation {
		if nav == key {
			return true
		}
	}
	return false
}

// GetKeys returns the current keyboard configuration
// Future: This will load from config file
func GetKeys() *Keys {
	return Default()
}
