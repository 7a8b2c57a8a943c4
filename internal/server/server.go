// Package server serves the dashboard over SSH, one program per session.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	"go.uber.org/zap"

	"github.com/leadflow/leadtop/internal/config"
	"github.com/leadflow/leadtop/internal/leads"
	"github.com/leadflow/leadtop/internal/storage"
	"github.com/leadflow/leadtop/internal/theme"
	"github.com/leadflow/leadtop/internal/ui"
)

// Deps are the shared collaborators every session draws on.
type Deps struct {
	Profile     *config.ProfileConfiguration
	Store       storage.Store
	NewProvider func() leads.Provider
	Logger      *zap.Logger
	// Version is reported in the startup log.
	Version string
}

// Runtime wires config, middleware and the Wish server as a testable unit.
type Runtime struct {
	cfg           config.ServerConfig
	deps          Deps
	log           *zap.Logger
	middlewareIDs []string
	server        *ssh.Server
}

func New(cfg config.ServerConfig, deps Deps) (*Runtime, error) {
	if deps.NewProvider == nil {
		return nil, errors.New("server: NewProvider is required")
	}
	if deps.Profile == nil {
		deps.Profile = config.DefaultConfig()
	}
	if deps.Store == nil {
		deps.Store = storage.NewMemoryStore()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Version == "" {
		deps.Version = "dev"
	}

	r := &Runtime{
		cfg:  cfg,
		deps: deps,
		log:  deps.Logger.Named("ssh"),
	}

	// Wish runs the last middleware first.
	chain := []struct {
		name string
		mw   wish.Middleware
	}{
		{"bubbletea", bm.Middleware(r.teaHandler)},
		{"session-dashboard", r.dashboardMiddleware},
		{"active-term", activeterm.Middleware()},
		{"max-sessions", MaxSessionsMiddleware(cfg.MaxSessions, r.log)},
		{"access-log", AccessLogMiddleware(r.log)},
	}

	mws := make([]wish.Middleware, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		r.middlewareIDs = append(r.middlewareIDs, chain[i].name)
	}
	for _, c := range chain {
		mws = append(mws, c.mw)
	}

	srv, err := wish.NewServer(
		wish.WithAddress(cfg.Address()),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(mws...),
	)
	if err != nil {
		return nil, fmt.Errorf("build ssh server: %w", err)
	}
	r.server = srv
	return r, nil
}

// MiddlewareIDs lists the middleware in execution order.
func (r *Runtime) MiddlewareIDs() []string {
	out := make([]string, len(r.middlewareIDs))
	copy(out, r.middlewareIDs)
	return out
}

func (r *Runtime) Address() string {
	return r.server.Addr
}

func (r *Runtime) Run(ctx context.Context) error {
	ctx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-ctx.Done()
		_ = r.server.Shutdown(context.Background())
	}()

	r.log.Info("startup",
		zap.String("version", r.deps.Version),
		zap.String("address", r.cfg.Address()),
		zap.Strings("middleware", r.middlewareIDs),
		zap.String("host_key_path", r.cfg.HostKeyPath),
		zap.Duration("idle_timeout", r.cfg.IdleTimeout),
		zap.Int("max_sessions", r.cfg.MaxSessions),
	)
	err := r.server.ListenAndServe()
	if errors.Is(err, ssh.ErrServerClosed) || err == nil {
		return nil
	}
	return err
}

type sessionKey struct{}

// dashboard is the per-session state handed from the middleware to the
// program handler.
type dashboard struct {
	provider leads.Provider
	state    *theme.State
}

// dashboardMiddleware builds a provider and a theme state for the session.
// The preference is namespaced by SSH user so users do not share a theme.
func (r *Runtime) dashboardMiddleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		provider := r.deps.NewProvider()
		if err := provider.Init(); err != nil {
			r.log.Error("provider init failed", zap.String("user", s.User()), zap.Error(err))
			_, _ = fmt.Fprintf(s, "failed to load dashboard data: %v\n", err)
			_ = s.Exit(1)
			return
		}
		defer provider.Shutdown()

		store := storage.Prefixed(r.deps.Store, s.User())
		state := theme.NewState(store, r.deps.Profile.DefaultDark,
			theme.WithLogger(r.log.With(zap.String("user", s.User()))))

		s.Context().SetValue(sessionKey{}, &dashboard{provider: provider, state: state})
		next(s)
	}
}

func (r *Runtime) teaHandler(s ssh.Session) (tea.Model, []tea.ProgramOption) {
	d, ok := s.Context().Value(sessionKey{}).(*dashboard)
	if !ok {
		r.log.Error("session without dashboard state", zap.String("user", s.User()))
		return nil, nil
	}

	m, err := ui.NewRootModel(d.provider, r.deps.Profile, d.state)
	if err != nil {
		r.log.Error("build dashboard", zap.String("user", s.User()), zap.Error(err))
		_, _ = fmt.Fprintf(s, "failed to start dashboard: %v\n", err)
		return nil, nil
	}
	return m, []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
}
