// Package theme owns the dashboard's dark/light mode flag.
//
// A State is created once per dashboard (or per SSH session) and handed to
// every consumer explicitly. Consumers read it through one of three access
// modes:
//
//	h, err := theme.Strict(state)         // ErrMissingProvider when state is nil
//	h := theme.Safe(state)                // light-mode fallback when state is nil
//	h := theme.Resolve(state, override)   // Safe plus a caller override
//
// Every mutation is written back to the backing Store under StorageKey.
package theme

import (
	"sync"

	"go.uber.org/zap"
)

// StorageKey is the single persisted preference key.
const StorageKey = "leadflow-theme"

const (
	valueDark  = "dark"
	valueLight = "light"
)

// Store is the durable key/value contract the theme needs.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// State is the authoritative dark-mode flag for one provider.
type State struct {
	mu     sync.RWMutex
	isDark bool
	store  Store
	log    *zap.Logger
}

// Option configures a State.
type Option func(*State)

// WithLogger sets the logger used for storage diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.log = l
		}
	}
}

// NewState creates a provider. A persisted preference wins over defaultDark.
// A nil store keeps the flag in memory only.
func NewState(store Store, defaultDark bool, opts ...Option) *State {
	s := &State{
		isDark: defaultDark,
		store:  store,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if isDark, ok := s.load(); ok {
		s.isDark = isDark
	}
	return s
}

// IsDark reports the current flag.
func (s *State) IsDark() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isDark
}

// Toggle flips the flag and persists the new value.
func (s *State) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isDark = !s.isDark
	s.persist(s.isDark)
}

// SetDarkMode sets the flag. The value is persisted even when unchanged.
func (s *State) SetDarkMode(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isDark = v
	s.persist(v)
}

func (s *State) load() (bool, bool) {
	if s.store == nil {
		return false, false
	}
	v, ok, err := s.store.Get(StorageKey)
	if err != nil {
		s.log.Debug("theme preference unreadable, using default", zap.Error(err))
		return false, false
	}
	if !ok {
		return false, false
	}
	return decode(v)
}

func (s *State) persist(isDark bool) {
	if s.store == nil {
		return
	}
	if err := SavePreference(s.store, isDark); err != nil {
		s.log.Debug("theme preference not persisted", zap.Error(err))
	}
}

// LoadPreference reads the stored flag. ok is false when nothing valid is
// stored or the store fails.
func LoadPreference(store Store) (isDark, ok bool) {
	if store == nil {
		return false, false
	}
	v, found, err := store.Get(StorageKey)
	if err != nil || !found {
		return false, false
	}
	return decode(v)
}

// SavePreference writes the flag as "dark" or "light".
func SavePreference(store Store, isDark bool) error {
	return store.Set(StorageKey, encode(isDark))
}

func encode(isDark bool) string {
	if isDark {
		return valueDark
	}
	return valueLight
}

func decode(v string) (bool, bool) {
	switch v {
	case valueDark:
		return true, true
	case valueLight:
		return false, true
	default:
		return false, false
	}
}
