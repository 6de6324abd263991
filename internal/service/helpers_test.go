// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-note-sync/internal/crypto"
	"github.com/MKhiriev/go-note-sync/internal/events"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/mock"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

// ── in-memory stores ─────────────────────────────────────────────────────────

type memNoteStore struct {
	mu      sync.Mutex
	notes   map[string]models.Note
	synced  int
	failErr error
}

func newMemNoteStore(notes ...models.Note) *memNoteStore {
	m := &memNoteStore{notes: make(map[string]models.Note)}
	for _, n := range notes {
		m.notes[n.ID] = n
	}
	return m
}

func (m *memNoteStore) GetAllNotes(context.Context) ([]models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	out := make([]models.Note, 0, len(m.notes))
	for _, n := range m.notes {
		out = append(out, n)
	}
	models.SortNotes(out)
	return out, nil
}

func (m *memNoteStore) NewNote(_ context.Context, note models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.notes[note.ID] = note
	return nil
}

func (m *memNoteStore) EditNote(_ context.Context, note models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	if _, ok := m.notes[note.ID]; !ok {
		return store.ErrNoteNotFound
	}
	m.notes[note.ID] = note
	return nil
}

func (m *memNoteStore) DeleteNote(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	delete(m.notes, id)
	return nil
}

func (m *memNoteStore) SyncLocalNotes(_ context.Context, notes []models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.synced++
	m.notes = make(map[string]models.Note, len(notes))
	for _, n := range notes {
		m.notes[n.ID] = n
	}
	return nil
}

func (m *memNoteStore) get(id string) (models.Note, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	return n, ok
}

func (m *memNoteStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.notes)
}

func (m *memNoteStore) fail(err error) {
	m.mu.Lock()
	m.failErr = err
	m.mu.Unlock()
}

type memKeyStore struct {
	mu  sync.Mutex
	key []byte
}

func (m *memKeyStore) PutKey(_ context.Context, key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.key = append([]byte(nil), key...)
	return nil
}

func (m *memKeyStore) GetKey(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.key == nil {
		return nil, store.ErrKeyNotFound
	}
	return append([]byte(nil), m.key...), nil
}

func (m *memKeyStore) ClearKey(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.key = nil
	return nil
}

type memTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: make(map[string]string)}
}

func (m *memTokenStore) GetAccessToken(_ context.Context, username string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[username]
	if !ok {
		return "", store.ErrTokenNotFound
	}
	return t, nil
}

func (m *memTokenStore) SetAccessToken(_ context.Context, username, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[username] = token
	return nil
}

func (m *memTokenStore) DeleteAccessToken(_ context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, username)
	return nil
}

type memPrefStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemPrefStore() *memPrefStore {
	return &memPrefStore{values: make(map[string]string)}
}

func (m *memPrefStore) GetPreference(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", store.ErrPreferenceNotFound
	}
	return v, nil
}

func (m *memPrefStore) SetPreference(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memPrefStore) DeletePreference(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memPrefStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.values[key]
	return ok
}

// ── ids / notes ──────────────────────────────────────────────────────────────

// seqIDs выдаёт предсказуемые id: fresh-1, fresh-2, ...
type seqIDs struct {
	n atomic.Int64
}

func (s *seqIDs) Generate() string {
	return fmt.Sprintf("fresh-%d", s.n.Add(1))
}

func note(id string, ts int64, title string) models.Note {
	return models.Note{
		ID:        id,
		Timestamp: ts,
		Content: models.NoteContent{
			Delta: []byte(`{"ops":[{"insert":"` + title + `\n"}]}`),
			Title: title,
			Body:  "body of " + title,
		},
	}
}

// ── engine fixture ───────────────────────────────────────────────────────────

type engineFixture struct {
	engine  *SyncEngine
	session *Session
	notes   *NoteService
	tracker *UnsyncedTracker
	keys    *KeyManager
	codec   crypto.Codec
	adapter *mock.MockServerAdapter
	noteDB  *memNoteStore
	keyDB   *memKeyStore
	tokens  *memTokenStore
	prefs   *memPrefStore
	bus     *events.Bus
}

func newEngineFixture(t *testing.T, local ...models.Note) *engineFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &engineFixture{
		codec:   crypto.NewCodec(crypto.WithIterations(1000), crypto.WithMasterKeyCost(1, 8*1024)),
		adapter: mock.NewMockServerAdapter(ctrl),
		noteDB:  newMemNoteStore(local...),
		keyDB:   &memKeyStore{},
		tokens:  newMemTokenStore(),
		prefs:   newMemPrefStore(),
		bus:     events.NewBus(),
	}

	f.rebuild(t)
	return f
}

// rebuild wires fresh services over the fixture's stores, as a restarted
// process would, and loads the note list.
func (f *engineFixture) rebuild(t *testing.T) {
	t.Helper()

	log := logger.Nop()
	f.session = NewSession()
	f.tracker = NewUnsyncedTracker(store.NewUnsyncedRepository(f.prefs))
	f.keys = NewKeyManager(f.keyDB)
	f.notes = NewNoteService(f.noteDB, store.NewNoteFileExporter(), f.tracker, f.bus, &seqIDs{}, log)
	f.engine = NewSyncEngine(
		f.session,
		NewRunner(f.session, log),
		f.notes,
		f.tracker,
		f.keys,
		f.codec,
		f.adapter,
		f.tokens,
		f.prefs,
		f.bus,
		log,
	)

	_, err := f.notes.Load(context.Background())
	require.NoError(t, err)
}

// loggedIn puts the fixture into a logged-in state for username/password
// without going through Login.
func (f *engineFixture) loggedIn(t *testing.T, username, password string) crypto.KeyMaterial {
	t.Helper()
	ctx := context.Background()

	key, err := f.codec.DeriveKey(ctx, username, password)
	require.NoError(t, err)
	require.NoError(t, f.keys.StoreKey(ctx, key))
	require.NoError(t, f.tokens.SetAccessToken(ctx, username, "token-"+username))
	require.NoError(t, f.prefs.SetPreference(ctx, store.PrefUsername, username))
	f.session.loginSucceeded(username, password)
	return key
}

func (f *engineFixture) encrypt(t *testing.T, key crypto.KeyMaterial, notes ...models.Note) []models.EncryptedNote {
	t.Helper()
	enc, err := f.codec.EncryptNotes(context.Background(), notes, key)
	require.NoError(t, err)
	return enc
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond)
}
