package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leadflow/leadtop/internal/storage"
	"github.com/leadflow/leadtop/internal/theme"
)

func newThemeCmd(a *app) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:       "theme [dark|light|toggle|show]",
		Short:     "Show or change the stored theme preference",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"dark", "light", "toggle", "show"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "show"
			if len(args) == 1 {
				action = args[0]
			}

			store, closeStore := a.openStore()
			defer func() { _ = closeStore() }()

			state := theme.NewState(storage.Prefixed(store, user), a.cfg.DefaultDark, theme.WithLogger(a.log))
			h, err := theme.Strict(state)
			if err != nil {
				return err
			}

			switch action {
			case "dark":
				h.SetDarkMode(true)
			case "light":
				h.SetDarkMode(false)
			case "toggle":
				h.ToggleTheme()
			}

			out := cmd.OutOrStdout()
			effective := theme.Resolve(state, a.cfg.DarkModeOverride)
			fmt.Fprintln(out, modeName(effective.IsDark))
			if a.cfg.DarkModeOverride != nil && *a.cfg.DarkModeOverride != state.IsDark() {
				fmt.Fprintf(out, "stored preference is %s, pinned by override\n", modeName(state.IsDark()))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "SSH user whose preference to read or change")
	return cmd
}

func modeName(isDark bool) string {
	if isDark {
		return "dark"
	}
	return "light"
}
