package validators

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

const (
	FieldPreferenceKey   = "key"
	FieldPreferenceValue = "value"

	minMenuWidth = 100
	maxMenuWidth = 2000
)

var (
	allowedThemes = []string{"light", "dark", "system"}

	versionPattern = regexp.MustCompile(`^v?\d+(\.\d+){0,2}([-+][0-9A-Za-z.-]+)?$`)
)

// PreferenceValidator checks user-editable preferences.
type PreferenceValidator struct {
}

func NewPreferenceValidator() Validator {
	return &PreferenceValidator{}
}

func (v *PreferenceValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var err error
	switch value := obj.(type) {
	case models.Preference:
		err = v.validatePreference(ctx, value, fields...)
	case *models.Preference:
		err = v.validatePreference(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

func (v *PreferenceValidator) validatePreference(ctx context.Context, pref models.Preference, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPreferenceKey, FieldPreferenceValue}
	}

	for _, f := range fields {
		switch f {
		case FieldPreferenceKey:
			if pref.Key == "" {
				return ErrEmptyPreferenceKey
			}
			if !store.IsUserPreferenceKey(pref.Key) {
				return fmt.Errorf("%w: %s", ErrUnknownPreference, pref.Key)
			}
		case FieldPreferenceValue:
			if err := validatePreferenceValue(pref); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func validatePreferenceValue(pref models.Preference) error {
	switch pref.Key {
	case store.PrefTheme:
		for _, t := range allowedThemes {
			if pref.Value == t {
				return nil
			}
		}
		return fmt.Errorf("%w: theme must be one of %v", ErrInvalidPreference, allowedThemes)

	case store.PrefMenuWidth:
		width, err := strconv.Atoi(pref.Value)
		if err != nil || width < minMenuWidth || width > maxMenuWidth {
			return fmt.Errorf("%w: menu width must be an integer in [%d, %d]", ErrInvalidPreference, minMenuWidth, maxMenuWidth)
		}
		return nil

	case store.PrefUpdateSeenVersion:
		if !versionPattern.MatchString(pref.Value) {
			return fmt.Errorf("%w: %q is not a version", ErrInvalidPreference, pref.Value)
		}
		return nil
	}

	return fmt.Errorf("%w: %s", ErrUnknownPreference, pref.Key)
}
