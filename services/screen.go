package services

import "context"

type ScreenKind string

const (
	ScreenRoster ScreenKind = "roster"
	ScreenPlayer ScreenKind = "player"
)

// Screen is one open screen of the app. Each screen owns its snapshot;
// nothing is shared between screens.
type Screen interface {
	Kind() ScreenKind
	// Focus refetches the screen's data, superseding whatever was shown.
	Focus(ctx context.Context)
	View() interface{}
}
