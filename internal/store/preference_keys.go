package store

// Persisted preference keys.
const (
	PrefUsername          = "username"
	PrefTheme             = "theme"
	PrefMenuWidth         = "menu-width"
	PrefUpdateSeenVersion = "update-seen-version"
	PrefUnsyncedNoteIDs   = "unsynced-note-ids"
)

// UserPreferenceKeys lists the keys a user may read and write directly.
var UserPreferenceKeys = []string{PrefTheme, PrefMenuWidth, PrefUpdateSeenVersion}

// IsUserPreferenceKey reports whether key is in [UserPreferenceKeys].
func IsUserPreferenceKey(key string) bool {
	for _, k := range UserPreferenceKeys {
		if k == key {
			return true
		}
	}
	return false
}
