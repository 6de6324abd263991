package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/models"
)

const (
	exportFileExt      = ".txt"
	exportMaxNameRunes = 64
)

// noteFileExporter is the default implementation of [NoteExporter]. It
// writes one plain-text file per note, named after the note title.
type noteFileExporter struct {
}

// NewNoteFileExporter constructs a new [NoteExporter] instance.
func NewNoteFileExporter() NoteExporter {
	return &noteFileExporter{}
}

// ExportNotes writes every non-empty note in notes to dir, creating dir if
// needed, and returns the written paths. Files are named after the note
// title; clashing names get a numeric suffix. Existing files with the same
// name are overwritten.
func (e *noteFileExporter) ExportNotes(ctx context.Context, dir string, notes []models.Note) ([]string, error) {
	log := logger.FromContext(ctx)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	used := make(map[string]int, len(notes))
	paths := make([]string, 0, len(notes))

	for _, n := range notes {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		if n.IsEmpty() {
			continue
		}

		name := exportFileName(n)
		if count := used[name]; count > 0 {
			used[name] = count + 1
			name = fmt.Sprintf("%s-%d", name, count+1)
		} else {
			used[name] = 1
		}

		path := filepath.Join(dir, name+exportFileExt)
		if err := os.WriteFile(path, []byte(exportFileBody(n)), 0o644); err != nil {
			log.Err(err).
				Str("func", "noteFileExporter.ExportNotes").
				Str("note_id", n.ID).
				Msg("failed to write note file")
			return paths, fmt.Errorf("write note %s: %w", n.ID, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// exportFileName derives a filesystem-safe name from the note title,
// falling back to the note id.
func exportFileName(n models.Note) string {
	var b strings.Builder
	count := 0
	for _, r := range strings.TrimSpace(n.Content.Title) {
		if count == exportMaxNameRunes {
			break
		}
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_', r == '.':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			b.WriteRune('_')
		}
		count++
	}

	name := strings.Trim(strings.TrimSpace(b.String()), ".")
	if name == "" {
		return n.ID
	}
	return name
}

func exportFileBody(n models.Note) string {
	switch {
	case n.Content.Title == "":
		return n.Content.Body
	case n.Content.Body == "":
		return n.Content.Title + "\n"
	default:
		return n.Content.Title + "\n\n" + n.Content.Body
	}
}
