package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-note-sync/internal/client"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Read and change user preferences",
	Long: `Read and change user preferences.

Known keys:
  theme                 light, dark or system
  menu-width            note list width in pixels (100-2000)
  update-seen-version   last release whose notes were shown`,
}

var prefsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every preference that is set",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *client.App, _ []string) error {
		prefs, err := a.Services().Preferences.List(ctx)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(prefs))
		for _, p := range prefs {
			rows = append(rows, []string{p.Key, p.Value})
		}
		return printTable(cmd.OutOrStdout(), []string{"KEY", "VALUE"}, rows, nil)
	}),
}

var prefsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a preference",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *client.App, args []string) error {
		value, ok, err := a.Services().Preferences.Get(ctx, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("preference %q is not set", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	}),
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a preference",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, a *client.App, args []string) error {
		return a.Services().Preferences.Set(ctx, args[0], args[1])
	}),
}

var prefsUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Reset a preference to its default",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, a *client.App, args []string) error {
		return a.Services().Preferences.Delete(ctx, args[0])
	}),
}

func init() {
	prefsCmd.AddCommand(prefsListCmd, prefsGetCmd, prefsSetCmd, prefsUnsetCmd)
	rootCmd.AddCommand(prefsCmd)
}
