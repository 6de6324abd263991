package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-note-sync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldUsername     = "username"
	FieldPassword     = "password"
	FieldNewPassword  = "new_password"
	FieldNotes        = "notes"
	FieldDeletedNotes = "deleted_notes"
	FieldDeletedIDs   = "deleted_note_ids"
)

// RequestValidator checks the request bodies sent to the notes server.
type RequestValidator struct {
}

func NewRequestValidator() Validator {
	return &RequestValidator{}
}

func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var err error
	switch value := obj.(type) {
	case models.SignupRequest:
		err = v.validateSignupRequest(ctx, value, fields...)
	case *models.SignupRequest:
		err = v.validateSignupRequest(ctx, *value, fields...)

	case models.LoginRequest:
		err = v.validateLoginRequest(ctx, value, fields...)
	case *models.LoginRequest:
		err = v.validateLoginRequest(ctx, *value, fields...)

	case models.SyncRequest:
		err = v.validateSyncRequest(ctx, value, fields...)
	case *models.SyncRequest:
		err = v.validateSyncRequest(ctx, *value, fields...)

	case models.ChangePasswordRequest:
		err = v.validateChangePasswordRequest(ctx, value, fields...)
	case *models.ChangePasswordRequest:
		err = v.validateChangePasswordRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

func (v *RequestValidator) validateSignupRequest(ctx context.Context, req models.SignupRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword, FieldNotes}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if err := validateUsername(req.Username); err != nil {
				return err
			}
		case FieldPassword:
			if req.Password == "" {
				return ErrEmptyPassword
			}
		case FieldNotes:
			if err := validateEncryptedNotes(req.Notes); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *RequestValidator) validateLoginRequest(ctx context.Context, req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword, FieldNotes, FieldDeletedNotes}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if err := validateUsername(req.Username); err != nil {
				return err
			}
		case FieldPassword:
			if req.Password == "" {
				return ErrEmptyPassword
			}
		case FieldNotes:
			if err := validateEncryptedNotes(req.Notes); err != nil {
				return err
			}
		case FieldDeletedNotes:
			for _, d := range req.DeletedNotes {
				if d.ID == "" || d.DeletedAt <= 0 {
					return fmt.Errorf("%w: %q", ErrInvalidDeletedEntry, d.ID)
				}
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *RequestValidator) validateSyncRequest(ctx context.Context, req models.SyncRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldNotes, FieldDeletedIDs}
	}

	for _, f := range fields {
		switch f {
		case FieldNotes:
			if err := validateEncryptedNotes(req.Notes); err != nil {
				return err
			}
		case FieldDeletedIDs:
			sent := make(map[string]struct{}, len(req.Notes))
			for _, n := range req.Notes {
				sent[n.ID] = struct{}{}
			}
			for _, id := range req.DeletedNoteIDs {
				if id == "" {
					return ErrInvalidNoteID
				}
				if _, ok := sent[id]; ok {
					return fmt.Errorf("%w: %s", ErrNoteAlsoDeleted, id)
				}
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *RequestValidator) validateChangePasswordRequest(ctx context.Context, req models.ChangePasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPassword, FieldNewPassword, FieldNotes}
	}

	for _, f := range fields {
		switch f {
		case FieldPassword:
			if req.CurrentPassword == "" {
				return ErrEmptyPassword
			}
		case FieldNewPassword:
			if req.NewPassword == "" {
				return ErrEmptyNewPassword
			}
			if req.NewPassword == req.CurrentPassword {
				return ErrSamePassword
			}
		case FieldNotes:
			if err := validateEncryptedNotes(req.Notes); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return ErrEmptyUsername
	}
	if strings.IndexFunc(username, unicode.IsSpace) >= 0 {
		return ErrInvalidUsername
	}
	return nil
}

func validateEncryptedNotes(notes []models.EncryptedNote) error {
	seen := make(map[string]struct{}, len(notes))
	for _, n := range notes {
		if n.ID == "" || strings.IndexFunc(n.ID, unicode.IsSpace) >= 0 {
			return fmt.Errorf("%w: %q", ErrInvalidNoteID, n.ID)
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateNoteID, n.ID)
		}
		seen[n.ID] = struct{}{}
		if n.Timestamp <= 0 {
			return fmt.Errorf("%w: note %s", ErrInvalidTimestamp, n.ID)
		}
		if len(n.Content) == 0 {
			return fmt.Errorf("%w: note %s", ErrEmptyNoteContent, n.ID)
		}
	}
	return nil
}
