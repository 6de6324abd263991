package service

import (
	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/crypto"
	"github.com/MKhiriev/go-note-sync/internal/events"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/internal/utils"
	"github.com/MKhiriev/go-note-sync/internal/workers"
)

// ClientServices groups every client-side service over one set of storages.
type ClientServices struct {
	Session     *Session
	Sync        *SyncEngine
	Notes       *NoteService
	Preferences ClientPreferenceService
	Scheduler   *PushScheduler
	PullJob     workers.Worker
}

func NewClientServices(
	storages *store.ClientStorages,
	serverAdapter adapter.ServerAdapter,
	codec crypto.Codec,
	bus *events.Bus,
	cfg config.ClientWorkers,
	logger *logger.Logger,
) *ClientServices {
	session := NewSession()
	tracker := NewUnsyncedTracker(storages.Unsynced)
	keys := NewKeyManager(storages.Keys)
	notes := NewNoteService(storages.Notes, storages.Exporter, tracker, bus, utils.NewUUIDGenerator(), logger)

	syncEngine := NewSyncEngine(
		session,
		NewRunner(session, logger),
		notes,
		tracker,
		keys,
		codec,
		serverAdapter,
		storages.Tokens,
		storages.Preferences,
		bus,
		logger,
	)

	return &ClientServices{
		Session:     session,
		Sync:        syncEngine,
		Notes:       notes,
		Preferences: NewPreferenceService(storages.Preferences, logger),
		Scheduler:   NewPushScheduler(syncEngine, bus, cfg.PushDebounce, logger),
		PullJob:     NewPullJob(syncEngine, cfg.PullInterval, logger),
	}
}
