package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leadflow/leadtop/internal/config"
	"github.com/leadflow/leadtop/internal/leads"
	"github.com/leadflow/leadtop/internal/logging"
	"github.com/leadflow/leadtop/internal/storage"
	"github.com/leadflow/leadtop/internal/theme"
	"github.com/leadflow/leadtop/internal/ui"
)

// app carries the flags and the resources built from them.
type app struct {
	cfgFile  string
	dataPath string
	mock     bool
	verbose  bool
	logFile  string

	cfg *config.ProfileConfiguration
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "leadtop",
		Short: "Terminal dashboard for the LeadFlow CRM",
		Long: `leadtop shows lead counters, weekly activity and recent leads in the terminal.

Example usage:
  leadtop --mock               # Run with built-in sample data
  leadtop --data leads.json    # Watch a dataset file
  leadtop theme dark           # Persist the dark theme preference
  leadtop serve                # Serve the dashboard over SSH`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDashboard()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "profile file (default is ./profiles.json)")
	flags.StringVar(&a.dataPath, "data", "", "dataset JSON file to watch")
	flags.BoolVar(&a.mock, "mock", false, "Run in mock mode with simulated data")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	flags.StringVar(&a.logFile, "log-file", "", "write logs to this file (stderr and stdout accepted)")

	cmd.AddCommand(newServeCmd(a), newThemeCmd(a))
	return cmd
}

// init loads configuration and installs the global logger.
func (a *app) init() error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.LoadConfig(a.cfgFile)
	} else {
		a.cfg, err = config.LoadDefaultConfig()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := a.cfg.ApplyEnv(); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.dataPath != "" {
		a.cfg.DataPath = a.dataPath
	}

	a.log, err = logging.New(logging.Options{Verbose: a.verbose, Path: a.logFile})
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(a.log)

	a.log.Debug("configuration loaded",
		zap.String("storage", a.cfg.Storage.Backend),
		zap.String("data_path", a.cfg.DataPath),
		zap.Int("refresh_ms", a.cfg.RefreshInterval),
	)
	return nil
}

// openStore opens the configured preference store. An unreachable backend
// degrades to memory so the dashboard still starts.
func (a *app) openStore() (storage.Store, func() error) {
	store, closeFn, err := storage.Open(a.cfg.StoreOptions())
	if err != nil {
		a.log.Warn("preference store unavailable, using memory", zap.Error(err))
		return storage.NewMemoryStore(), func() error { return nil }
	}
	return store, closeFn
}

func (a *app) newProvider() leads.Provider {
	if a.mock || a.cfg.DataPath == "" {
		return &leads.MockProvider{}
	}
	return leads.NewFileProvider(a.cfg.DataPath)
}

func (a *app) runDashboard() error {
	provider := a.newProvider()
	if err := provider.Init(); err != nil {
		return fmt.Errorf("failed to initialize data provider: %w", err)
	}
	defer provider.Shutdown()

	store, closeStore := a.openStore()
	defer func() { _ = closeStore() }()

	state := theme.NewState(store, a.cfg.DefaultDark, theme.WithLogger(a.log))

	root, err := ui.NewRootModel(provider, a.cfg, state)
	if err != nil {
		return err
	}

	p := tea.NewProgram(root, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running leadtop: %w", err)
	}
	return nil
}
