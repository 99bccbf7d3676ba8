// Package theme keeps the display theme the presentation layer renders with.
package theme

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Theme is a display theme.
type Theme int32

const (
	Light Theme = iota
	Dark
)

func (t Theme) String() string {
	if t == Dark {
		return "dark"
	}
	return "light"
}

// FromDarkMode maps the persisted preference to a theme.
func FromDarkMode(dark bool) Theme {
	if dark {
		return Dark
	}
	return Light
}

// Switcher holds the active theme. It is safe for concurrent use.
type Switcher struct {
	current atomic.Int32
	logger  *zap.Logger
}

func NewSwitcher(logger *zap.Logger) *Switcher {
	return &Switcher{logger: logger}
}

// Apply switches to the dark theme when dark is true and to the light one otherwise.
func (s *Switcher) Apply(dark bool) {
	next := FromDarkMode(dark)
	prev := Theme(s.current.Swap(int32(next)))
	if prev != next {
		s.logger.Info("display theme switched",
			zap.Stringer("from", prev),
			zap.Stringer("to", next),
		)
	}
}

// Current returns the active theme.
func (s *Switcher) Current() Theme {
	return Theme(s.current.Load())
}
