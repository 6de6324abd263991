// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-note-sync/internal/client"
	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/events"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

var rootCmd = &cobra.Command{
	Use:   "notesync",
	Short: "Offline-first encrypted notes with server sync",
	Long: `notesync keeps a local list of notes and synchronises it with a notes
server. Note content is encrypted on this machine with a key derived from
your password; the server only ever stores ciphertext.

Local edits work offline and are pushed automatically once you are logged in.`,
	SilenceUsage: true,
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddGroup(
		&cobra.Group{ID: "sync", Title: "Sync Commands:"},
		&cobra.Group{ID: "notes", Title: "Note Commands:"},
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// appRunFunc is the body of a command that needs a running client app.
type appRunFunc func(ctx context.Context, cmd *cobra.Command, a *client.App, args []string) error

// withApp builds a client app from the command's flags, starts it, runs fn
// and closes the app, flushing any push left pending by fn.
func withApp(fn appRunFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		cfg, err := config.GetClientConfig(cmd.Flags())
		if err != nil {
			return fmt.Errorf("error getting configs: %w", err)
		}

		log := logger.NewClientLogger("cli", cfg.Log.File, cfg.Log.Level)
		log.Debug().
			Str("command", cmd.CommandPath()).
			Stringer("build", buildInfo()).
			Msg("running command")

		a, err := client.NewApp(ctx, cfg, buildInfo(), log)
		if err != nil {
			log.Err(err).Msg("init client app error")
			return err
		}

		stopDialogs := printDialogs(a.Bus(), cmd.ErrOrStderr())
		defer stopDialogs()

		if err = a.Start(ctx); err != nil {
			log.Err(err).Msg("client start error")
			return errors.Join(err, a.Close(ctx))
		}
		defer func() {
			if closeErr := a.Close(context.WithoutCancel(ctx)); closeErr != nil {
				log.Err(closeErr).Msg("client close error")
				err = errors.Join(err, closeErr)
			}
		}()

		return fn(ctx, cmd, a, args)
	}
}

// printDialogs writes dialog events to w until the returned func is called.
// Dialogs published before that call are still written.
func printDialogs(bus *events.Bus, w io.Writer) func() {
	sub := bus.Dialogs.Subscribe()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for d := range sub {
			fmt.Fprintf(w, "%s: %s\n", d.Title, d.Message)
		}
	}()

	return func() {
		bus.Dialogs.Unsubscribe(sub)
		<-done
	}
}

func buildInfo() models.AppBuildInfo {
	na := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}
	return models.NewAppBuildInfo(na(buildVersion), na(buildDate), na(buildCommit))
}
