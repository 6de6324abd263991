package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-note-sync/internal/client"
	"github.com/MKhiriev/go-note-sync/models"
)

var (
	errNoteNotFound  = errors.New("no note matches")
	errAmbiguousNote = errors.New("note id prefix is ambiguous")
)

var notesCmd = &cobra.Command{
	Use:     "notes",
	GroupID: "notes",
	Short:   "List and edit local notes",
	Long: `List and edit the local note list. Notes may be referred to by any
unique prefix of their id. Changes are pushed automatically when logged in.`,
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, most recently modified first",
	Args:  cobra.NoArgs,
	RunE: withApp(func(_ context.Context, cmd *cobra.Command, a *client.App, _ []string) error {
		notes := a.Services().Notes.List()
		selected := a.Services().Notes.Selected()

		rows := make([][]string, 0, len(notes))
		for _, n := range notes {
			mark := " "
			if n.ID == selected {
				mark = "*"
			}
			rows = append(rows, []string{mark + n.ID, formatMillis(n.Timestamp), displayTitle(n)})
		}
		return printTable(cmd.OutOrStdout(), []string{"ID", "MODIFIED", "TITLE"}, rows, func(row int) bool {
			return row < len(notes) && notes[row].ID == selected
		})
	}),
}

var notesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a note and select it",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(_ context.Context, cmd *cobra.Command, a *client.App, args []string) error {
		n, err := resolveNote(a.Services().Notes.List(), args[0])
		if err != nil {
			return err
		}
		if err = a.Services().Notes.Select(n.ID); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), n.Content.Title)
		if n.Content.Body != "" {
			fmt.Fprintln(cmd.OutOrStdout(), n.Content.Body)
		}
		return nil
	}),
}

var notesNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a note",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *client.App, _ []string) error {
		n, err := a.Services().Notes.Create(ctx)
		if err != nil {
			return err
		}

		content, changed, err := contentFromFlags(cmd, n.Content)
		if err != nil {
			return err
		}
		if changed {
			if n, err = a.Services().Notes.Edit(ctx, n.ID, content); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), n.ID)
		return nil
	}),
}

var notesEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Replace the title and/or body of a note",
	Long: `Replace the title and/or body of a note. Flags that are not given keep
their current value. Pass --body - to read the body from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *client.App, args []string) error {
		n, err := resolveNote(a.Services().Notes.List(), args[0])
		if err != nil {
			return err
		}

		content, changed, err := contentFromFlags(cmd, n.Content)
		if err != nil {
			return err
		}
		if !changed {
			return errors.New("nothing to change: pass --title or --body")
		}
		if _, err = a.Services().Notes.Edit(ctx, n.ID, content); err != nil {
			return err
		}
		return nil
	}),
}

var notesDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, a *client.App, args []string) error {
		n, err := resolveNote(a.Services().Notes.List(), args[0])
		if err != nil {
			return err
		}
		return a.Services().Notes.Delete(ctx, n.ID)
	}),
}

var notesExportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Write every note to a text file in dir",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *client.App, args []string) error {
		paths, err := a.Services().Notes.Export(ctx, args[0])
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	}),
}

var notesCopyCmd = &cobra.Command{
	Use:   "copy <id>",
	Short: "Copy the text of a note to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(_ context.Context, cmd *cobra.Command, a *client.App, args []string) error {
		n, err := resolveNote(a.Services().Notes.List(), args[0])
		if err != nil {
			return err
		}
		if err = clipboard.WriteAll(noteText(n)); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Copied %q\n", displayTitle(n))
		return nil
	}),
}

func init() {
	for _, c := range []*cobra.Command{notesNewCmd, notesEditCmd} {
		c.Flags().String("title", "", "Note title")
		c.Flags().String("body", "", "Note body, - reads standard input")
	}

	notesCmd.AddCommand(notesListCmd, notesShowCmd, notesNewCmd, notesEditCmd, notesDeleteCmd, notesExportCmd, notesCopyCmd)
	rootCmd.AddCommand(notesCmd)
}

// resolveNote finds the note whose id equals or uniquely starts with prefix.
func resolveNote(notes []models.Note, prefix string) (models.Note, error) {
	var found []models.Note
	for _, n := range notes {
		if n.ID == prefix {
			return n, nil
		}
		if strings.HasPrefix(n.ID, prefix) {
			found = append(found, n)
		}
	}

	switch len(found) {
	case 0:
		return models.Note{}, fmt.Errorf("%w %q", errNoteNotFound, prefix)
	case 1:
		return found[0], nil
	default:
		return models.Note{}, fmt.Errorf("%w: %q matches %d notes", errAmbiguousNote, prefix, len(found))
	}
}

// contentFromFlags applies --title and --body on top of current. The delta
// is rebuilt as a single plain insert whenever the text changes.
func contentFromFlags(cmd *cobra.Command, current models.NoteContent) (models.NoteContent, bool, error) {
	content := current
	changed := false

	if cmd.Flags().Changed("title") {
		content.Title, _ = cmd.Flags().GetString("title")
		changed = true
	}
	if cmd.Flags().Changed("body") {
		body, _ := cmd.Flags().GetString("body")
		if body == "-" {
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return current, false, fmt.Errorf("read body: %w", err)
			}
			body = strings.TrimRight(string(raw), "\n")
		}
		content.Body = body
		changed = true
	}

	if changed {
		delta, err := plainDelta(content.Title, content.Body)
		if err != nil {
			return current, false, err
		}
		content.Delta = delta
	}
	return content, changed, nil
}

func plainDelta(title, body string) (json.RawMessage, error) {
	type op struct {
		Insert string `json:"insert"`
	}
	delta := struct {
		Ops []op `json:"ops"`
	}{Ops: []op{{Insert: noteText(models.Note{Content: models.NoteContent{Title: title, Body: body}}) + "\n"}}}

	raw, err := json.Marshal(delta)
	if err != nil {
		return nil, fmt.Errorf("encode delta: %w", err)
	}
	return raw, nil
}

func noteText(n models.Note) string {
	if n.Content.Body == "" {
		return n.Content.Title
	}
	return n.Content.Title + "\n" + n.Content.Body
}

func displayTitle(n models.Note) string {
	if n.IsEmpty() {
		return "(empty)"
	}
	if n.Content.Title == "" {
		return "(untitled)"
	}
	return n.Content.Title
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04")
}
