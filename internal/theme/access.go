package theme

import (
	"errors"

	"go.uber.org/zap"
)

// ErrMissingProvider is returned by Strict when no State exists.
var ErrMissingProvider = errors.New("useTheme must be used within a ThemeProvider")

// Handle is a consumer's view of the theme for one render pass.
type Handle struct {
	IsDark              bool
	IsProviderAvailable bool

	toggle  func()
	setDark func(bool)
}

// ToggleTheme flips the underlying flag, or does nothing for fallback and
// overridden handles.
func (h Handle) ToggleTheme() {
	if h.toggle != nil {
		h.toggle()
	}
}

// SetDarkMode sets the underlying flag, or does nothing for fallback and
// overridden handles.
func (h Handle) SetDarkMode(v bool) {
	if h.setDark != nil {
		h.setDark(v)
	}
}

// Lookup is the capability check every access mode builds on.
func Lookup(s *State) (*State, bool) {
	return s, s != nil
}

// Strict returns a live handle or ErrMissingProvider.
func Strict(s *State) (Handle, error) {
	state, ok := Lookup(s)
	if !ok {
		return Handle{}, ErrMissingProvider
	}
	return live(state), nil
}

// Safe never fails. Without a provider it reports light mode and its
// mutators only log a warning.
func Safe(s *State) Handle {
	state, ok := Lookup(s)
	if !ok {
		return fallback()
	}
	return live(state)
}

// WithOverride pins IsDark to *override when override is non-nil and turns
// the mutators into no-ops. IsProviderAvailable is preserved.
func WithOverride(h Handle, override *bool) Handle {
	if override == nil {
		return h
	}
	return Handle{
		IsDark:              *override,
		IsProviderAvailable: h.IsProviderAvailable,
		toggle:              func() {},
		setDark:             func(bool) {},
	}
}

// Resolve combines Safe access with an optional override.
func Resolve(s *State, override *bool) Handle {
	return WithOverride(Safe(s), override)
}

func live(s *State) Handle {
	return Handle{
		IsDark:              s.IsDark(),
		IsProviderAvailable: true,
		toggle:              s.Toggle,
		setDark:             s.SetDarkMode,
	}
}

func fallback() Handle {
	return Handle{
		IsDark:              false,
		IsProviderAvailable: false,
		toggle: func() {
			zap.L().Warn("toggleTheme called without a theme provider; ignoring")
		},
		setDark: func(v bool) {
			zap.L().Warn("setDarkMode called without a theme provider; ignoring", zap.Bool("value", v))
		},
	}
}
