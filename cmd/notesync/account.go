package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-note-sync/internal/client"
)

var accountCmd = &cobra.Command{
	Use:     "account",
	GroupID: "sync",
	Short:   "Manage the server account",
}

var changePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Re-encrypt every note with a new password",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *client.App, _ []string) error {
		current := a.Services().Session.Password()
		if current == "" {
			var err error
			if current, err = passwordFrom(cmd, "current", "Current password: "); err != nil {
				return err
			}
		}
		newPassword, err := passwordFrom(cmd, "new", "New password: ")
		if err != nil {
			return err
		}

		if err = a.Services().Sync.ChangePassword(ctx, current, newPassword); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Password changed")
		return nil
	}),
}

var deleteAccountCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the account and every note stored on the server",
	Long: `Delete the account on the server. Local notes are kept; the key and the
access token are removed from this machine.`,
	Args: cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *client.App, _ []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("refusing to delete the account without --yes")
		}
		username := a.Services().Session.Username()
		if err := a.Services().Sync.DeleteAccount(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Account %s deleted\n", username)
		return nil
	}),
}

func init() {
	changePasswordCmd.Flags().String("current", "", "Current password (default: prompt)")
	changePasswordCmd.Flags().String("new", "", "New password (default: prompt)")
	deleteAccountCmd.Flags().Bool("yes", false, "Confirm the deletion")

	accountCmd.AddCommand(changePasswordCmd, deleteAccountCmd)
	rootCmd.AddCommand(accountCmd)
}
