package main

import (
	"github.com/spf13/cobra"

	"github.com/leadflow/leadtop/internal/config"
	"github.com/leadflow/leadtop/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over SSH",
		Long: `Serve the dashboard over SSH. Each session gets its own dashboard and
its own theme preference, keyed by the SSH user name.

Settings come from LEADTOP_SSH_HOST, LEADTOP_SSH_PORT,
LEADTOP_SSH_HOST_KEY_PATH, LEADTOP_SSH_IDLE_TIMEOUT and
LEADTOP_SSH_MAX_SESSIONS.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srvCfg, err := config.LoadServerFromEnv()
			if err != nil {
				return err
			}

			store, closeStore := a.openStore()
			defer func() { _ = closeStore() }()

			runtime, err := server.New(srvCfg, server.Deps{
				Profile:     a.cfg,
				Store:       store,
				NewProvider: a.newProvider,
				Logger:      a.log,
				Version:     version,
			})
			if err != nil {
				return err
			}
			return runtime.Run(cmd.Context())
		},
	}
}
