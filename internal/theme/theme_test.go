package theme

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type mapStore struct {
	mu     sync.Mutex
	values map[string]string
	writes int
}

func newMapStore() *mapStore {
	return &mapStore{values: make(map[string]string)}
}

func (m *mapStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mapStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.writes++
	return nil
}

type brokenStore struct{}

var errStorageDisabled = errors.New("storage disabled")

func (brokenStore) Get(string) (string, bool, error) { return "", false, errStorageDisabled }
func (brokenStore) Set(string, string) error         { return errStorageDisabled }

func TestNewStateInitialValue(t *testing.T) {
	tests := []struct {
		name        string
		stored      string
		hasStored   bool
		defaultDark bool
		want        bool
	}{
		{name: "no stored value uses default false", defaultDark: false, want: false},
		{name: "no stored value uses default true", defaultDark: true, want: true},
		{name: "stored dark wins over default", stored: "dark", hasStored: true, defaultDark: false, want: true},
		{name: "stored light wins over default", stored: "light", hasStored: true, defaultDark: true, want: false},
		{name: "unknown value ignored", stored: "DARK", hasStored: true, defaultDark: false, want: false},
		{name: "empty value ignored", stored: "", hasStored: true, defaultDark: true, want: true},
		{name: "boolean-ish value ignored", stored: "true", hasStored: true, defaultDark: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMapStore()
			if tt.hasStored {
				store.values[StorageKey] = tt.stored
			}
			s := NewState(store, tt.defaultDark)
			assert.Equal(t, tt.want, s.IsDark())
			assert.Zero(t, store.writes, "creation must not write")
		})
	}
}

func TestToggleParity(t *testing.T) {
	for _, start := range []bool{false, true} {
		for n := 0; n <= 7; n++ {
			store := newMapStore()
			s := NewState(store, start)
			for i := 0; i < n; i++ {
				s.Toggle()
			}
			want := start != (n%2 == 1)
			assert.Equal(t, want, s.IsDark(), "start=%v n=%d", start, n)
			assert.Equal(t, n, store.writes, "every toggle persists")
		}
	}
}

func TestSetDarkModeAlwaysPersists(t *testing.T) {
	store := newMapStore()
	s := NewState(store, false)

	s.SetDarkMode(true)
	assert.True(t, s.IsDark())
	assert.Equal(t, "leadflow-theme", StorageKey)
	assert.Equal(t, "dark", store.values["leadflow-theme"])

	s.SetDarkMode(true)
	assert.True(t, s.IsDark())
	assert.Equal(t, 2, store.writes, "writes are not diffed")

	s.SetDarkMode(false)
	assert.False(t, s.IsDark())
	assert.Equal(t, "light", store.values[StorageKey])
}

func TestPersistenceRoundTrip(t *testing.T) {
	for _, v := range []bool{true, false} {
		store := newMapStore()
		NewState(store, !v).SetDarkMode(v)

		got, ok := LoadPreference(store)
		require.True(t, ok)
		assert.Equal(t, v, got)

		// A new provider reads back the same flag regardless of its default.
		assert.Equal(t, v, NewState(store, false).IsDark())
		assert.Equal(t, v, NewState(store, true).IsDark())
	}
}

func TestRemountScenario(t *testing.T) {
	store := newMapStore()

	first := NewState(store, false)
	assert.False(t, first.IsDark())

	h, err := Strict(first)
	require.NoError(t, err)
	h.ToggleTheme()
	assert.True(t, first.IsDark())
	assert.Equal(t, "dark", store.values[StorageKey])

	remounted := NewState(store, false)
	assert.True(t, remounted.IsDark())
}

func TestStorageUnavailable(t *testing.T) {
	s := NewState(brokenStore{}, true)
	assert.True(t, s.IsDark())

	assert.NotPanics(t, func() {
		s.Toggle()
		s.SetDarkMode(true)
		s.Toggle()
	})
	assert.False(t, s.IsDark(), "in-memory state still tracks mutations")

	_, ok := LoadPreference(brokenStore{})
	assert.False(t, ok)
	assert.ErrorIs(t, SavePreference(brokenStore{}, true), errStorageDisabled)
}

func TestNilStoreIsMemoryOnly(t *testing.T) {
	s := NewState(nil, false)
	s.Toggle()
	assert.True(t, s.IsDark())

	_, ok := LoadPreference(nil)
	assert.False(t, ok)
}

func TestSharedInstanceObservedByAllConsumers(t *testing.T) {
	s := NewState(newMapStore(), false)

	a := Safe(s)
	a.ToggleTheme()

	b, err := Strict(s)
	require.NoError(t, err)
	c := Resolve(s, nil)

	assert.True(t, b.IsDark)
	assert.True(t, c.IsDark)
	assert.True(t, s.IsDark())
}

func TestConcurrentToggles(t *testing.T) {
	store := newMapStore()
	s := NewState(store, false)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Toggle()
		}()
	}
	wg.Wait()

	assert.False(t, s.IsDark(), "even number of flips")
	assert.Equal(t, "light", store.values[StorageKey], "persisted copy matches memory")
}

func TestStrictWithoutProvider(t *testing.T) {
	_, err := Strict(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingProvider)
	assert.Equal(t, "useTheme must be used within a ThemeProvider", err.Error())
}

func TestSafeFallback(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	undo := zap.ReplaceGlobals(zap.New(core))
	defer undo()

	for i := 0; i < 5; i++ {
		h := Safe(nil)
		assert.False(t, h.IsDark)
		assert.False(t, h.IsProviderAvailable)
		assert.NotPanics(t, func() {
			h.ToggleTheme()
			h.SetDarkMode(true)
		})
	}

	h := Safe(nil)
	assert.False(t, h.IsDark, "mutators never change the fallback")
	assert.Equal(t, 10, logs.Len(), "one warning per mutator call")
}

func TestSafeWithProvider(t *testing.T) {
	s := NewState(newMapStore(), true)
	h := Safe(s)
	assert.True(t, h.IsDark)
	assert.True(t, h.IsProviderAvailable)

	h.SetDarkMode(false)
	assert.False(t, s.IsDark())
}

func TestOverridePrecedence(t *testing.T) {
	on, off := true, false

	tests := []struct {
		name          string
		state         *State
		override      *bool
		wantDark      bool
		wantAvailable bool
	}{
		{name: "no provider, override true", override: &on, wantDark: true},
		{name: "no provider, override false", override: &off, wantDark: false},
		{name: "no provider, no override", wantDark: false},
		{name: "light provider, override true", state: NewState(nil, false), override: &on, wantDark: true, wantAvailable: true},
		{name: "dark provider, override false", state: NewState(nil, true), override: &off, wantDark: false, wantAvailable: true},
		{name: "dark provider, no override", state: NewState(nil, true), wantDark: true, wantAvailable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Resolve(tt.state, tt.override)
			assert.Equal(t, tt.wantDark, h.IsDark)
			assert.Equal(t, tt.wantAvailable, h.IsProviderAvailable)
		})
	}
}

func TestOverrideIgnoresUnderlyingMutations(t *testing.T) {
	store := newMapStore()
	s := NewState(store, false)
	off := false

	h := Resolve(s, &off)
	h.ToggleTheme()
	h.SetDarkMode(true)
	assert.False(t, s.IsDark(), "override mutators are no-ops")
	assert.Zero(t, store.writes)

	// Mutations made directly against the provider still do not leak through.
	s.Toggle()
	s.SetDarkMode(true)
	assert.True(t, s.IsDark())
	assert.False(t, Resolve(s, &off).IsDark)
	assert.True(t, Resolve(s, &off).IsProviderAvailable)
}

func TestLookup(t *testing.T) {
	_, ok := Lookup(nil)
	assert.False(t, ok)

	s := NewState(nil, false)
	got, ok := Lookup(s)
	assert.True(t, ok)
	assert.Same(t, s, got)
}
