package events

// MutationKind identifies the local change behind a [NoteMutation].
type MutationKind string

const (
	MutationNew    MutationKind = "new"
	MutationEdit   MutationKind = "edit"
	MutationDelete MutationKind = "delete"
)

// NoteMutation is published after a local note change has been written to
// the note store and recorded by the tracker.
type NoteMutation struct {
	Kind   MutationKind
	NoteID string
}

// LoggedIn is published once a login or signup succeeds.
type LoggedIn struct {
	Username string
}

// SelectionChanged is published when the selected note had to be replaced,
// e.g. because a merge removed it.
type SelectionChanged struct {
	NoteID string
}

// Dialog asks the presentation layer to show a blocking message.
type Dialog struct {
	Title   string
	Message string
}

// Bus groups the topics shared by the engine and its host.
type Bus struct {
	NoteMutations    *Topic[NoteMutation]
	LoggedIn         *Topic[LoggedIn]
	SelectionChanges *Topic[SelectionChanged]
	Dialogs          *Topic[Dialog]
}

// NewBus creates a bus with empty topics.
func NewBus() *Bus {
	return &Bus{
		NoteMutations:    NewTopic[NoteMutation]("note_mutation"),
		LoggedIn:         NewTopic[LoggedIn]("logged_in"),
		SelectionChanges: NewTopic[SelectionChanged]("selection_changed"),
		Dialogs:          NewTopic[Dialog]("dialog"),
	}
}
