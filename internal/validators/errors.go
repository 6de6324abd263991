package validators

import "errors"

var (
	// ErrInvalidInput wraps every validation failure below.
	ErrInvalidInput = errors.New("invalid input")

	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyUsername       = errors.New("username is required")
	ErrInvalidUsername     = errors.New("username must not contain whitespace")
	ErrEmptyPassword       = errors.New("password is required")
	ErrEmptyNewPassword    = errors.New("new password is required")
	ErrSamePassword        = errors.New("new password must differ from the current one")
	ErrInvalidNoteID       = errors.New("invalid note id")
	ErrInvalidTimestamp    = errors.New("invalid timestamp")
	ErrEmptyNoteContent    = errors.New("note content is required")
	ErrDuplicateNoteID     = errors.New("duplicate note id")
	ErrNoteAlsoDeleted     = errors.New("note is both sent and deleted")
	ErrUnknownPreference   = errors.New("unknown preference")
	ErrInvalidPreference   = errors.New("invalid preference value")
	ErrEmptyPreferenceKey  = errors.New("preference key is required")
	ErrInvalidDeletedEntry = errors.New("invalid deleted note entry")
)
