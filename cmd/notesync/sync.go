package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MKhiriev/go-note-sync/internal/client"
)

const passwordEnv = "NOTESYNC_PASSWORD"

var errEmptyPassword = errors.New("password must not be empty")

var signupCmd = &cobra.Command{
	Use:     "signup <username>",
	GroupID: "sync",
	Short:   "Create an account and upload the local notes",
	Args:    cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *client.App, args []string) error {
		password, err := passwordFrom(cmd, "password", "Password: ")
		if err != nil {
			return err
		}
		if err = a.Services().Sync.Signup(ctx, args[0], password); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed up as %s\n", args[0])
		return nil
	}),
}

var loginCmd = &cobra.Command{
	Use:     "login <username>",
	GroupID: "sync",
	Short:   "Log in and merge the server's notes into the local list",
	Long: `Log in as username. The local non-empty notes are submitted along with
any pending deletions, and the server's changes are merged back. Notes you
edited locally and have not pushed yet keep their local content.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *client.App, args []string) error {
		password, err := passwordFrom(cmd, "password", "Password: ")
		if err != nil {
			return err
		}
		if err = a.Services().Sync.Login(ctx, args[0], password); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s, %d notes\n", args[0], len(a.Services().Notes.List()))
		return nil
	}),
}

var logoutCmd = &cobra.Command{
	Use:     "logout",
	GroupID: "sync",
	Short:   "Log out and forget the key and access token",
	Args:    cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *client.App, _ []string) error {
		if !a.Services().Session.IsLoggedIn() {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
			return nil
		}
		// push whatever is still pending before the key goes away
		if err := a.Services().Sync.Push(ctx); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "push before logout failed: %v\n", err)
		}
		if err := a.Services().Sync.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	}),
}

var pullCmd = &cobra.Command{
	Use:     "pull",
	GroupID: "sync",
	Short:   "Fetch the server's notes and merge them",
	Args:    cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *client.App, _ []string) error {
		if err := a.Services().Sync.Pull(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d notes\n", len(a.Services().Notes.List()))
		return nil
	}),
}

var pushCmd = &cobra.Command{
	Use:     "push",
	GroupID: "sync",
	Short:   "Upload local changes now",
	Args:    cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *client.App, _ []string) error {
		if !a.Services().Session.IsLoggedIn() {
			return errors.New("not logged in")
		}
		if err := a.Services().Sync.Push(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Pushed")
		return nil
	}),
}

func init() {
	for _, c := range []*cobra.Command{signupCmd, loginCmd} {
		c.Flags().String("password", "", "Password (default: $"+passwordEnv+" or prompt)")
	}

	rootCmd.AddCommand(signupCmd, loginCmd, logoutCmd, pullCmd, pushCmd)
}

// passwordFrom reads a password from flag, then from $NOTESYNC_PASSWORD,
// then from the command's input.
func passwordFrom(cmd *cobra.Command, flag, prompt string) (string, error) {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v, nil
	}
	if flag == "password" {
		if v := os.Getenv(passwordEnv); v != "" {
			return v, nil
		}
	}

	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	return readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
}

// readPassword reads without echo when in is a terminal and falls back to
// one plain line for pipes and redirects.
func readPassword(in io.Reader, out io.Writer) (string, error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return readLine(in)
	}

	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if len(b) == 0 {
		return "", errEmptyPassword
	}
	return string(b), nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errEmptyPassword
	}
	return line, nil
}
