// Package storage provides small durable key/value stores used for UI
// preferences such as the dashboard theme flag.
package storage

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Store is a synchronous string key/value store.
//
// Get reports ok=false when the key has never been written.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Backend names a Store implementation selectable from configuration.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendRedis  Backend = "redis"
)

// ErrUnknownBackend is returned by Open for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Options selects and parameterises a backend.
type Options struct {
	Backend      Backend
	Path         string        // file backend
	RedisAddr    string        // redis backend
	RedisTimeout time.Duration // per-call bound for redis
}

// Open builds the Store described by opts. The returned close function is
// never nil.
func Open(opts Options) (Store, func() error, error) {
	noop := func() error { return nil }

	switch Backend(strings.ToLower(string(opts.Backend))) {
	case BackendMemory, "":
		return NewMemoryStore(), noop, nil
	case BackendFile:
		if opts.Path == "" {
			return nil, noop, fmt.Errorf("file backend requires a path")
		}
		return NewFileStore(opts.Path), noop, nil
	case BackendRedis:
		rs, err := NewRedisStore(opts.RedisAddr, opts.RedisTimeout)
		if err != nil {
			return nil, noop, err
		}
		return rs, rs.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %s", ErrUnknownBackend, opts.Backend)
	}
}

// MemoryStore keeps values in process memory only.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// prefixed scopes every key of an underlying store under a namespace.
type prefixed struct {
	inner     Store
	namespace string
}

// Prefixed returns a Store that reads and writes "<namespace>:<key>" in inner.
// An empty namespace returns inner unchanged.
func Prefixed(inner Store, namespace string) Store {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return inner
	}
	return prefixed{inner: inner, namespace: namespace}
}

func (p prefixed) Get(key string) (string, bool, error) {
	return p.inner.Get(p.namespace + ":" + key)
}

func (p prefixed) Set(key, value string) error {
	return p.inner.Set(p.namespace+":"+key, value)
}
