// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-sync/internal/events"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/metrics"
)

const defaultPushDebounce = 500 * time.Millisecond

// PushScheduler coalesces bursts of note mutations into one push.
//
// Every mutation arms a single shared timer and bumps a generation counter.
// A timer callback pushes only if its generation is still the latest, so at
// most one push follows a burst. Nothing is armed while logged out.
type PushScheduler struct {
	sync   ClientSyncService
	bus    *events.Bus
	delay  time.Duration
	logger *logger.Logger

	mu         sync.Mutex
	generation uint64
	timer      *time.Timer
	ctx        context.Context
	cancel     context.CancelFunc
	sub        chan events.NoteMutation
	stopped    bool

	flushReq chan chan struct{}

	wg sync.WaitGroup
}

// NewPushScheduler creates an idle scheduler. A non-positive delay falls
// back to 500ms.
func NewPushScheduler(syncService ClientSyncService, bus *events.Bus, delay time.Duration, logger *logger.Logger) *PushScheduler {
	if delay <= 0 {
		delay = defaultPushDebounce
	}
	return &PushScheduler{
		sync:     syncService,
		bus:      bus,
		delay:    delay,
		logger:   logger,
		flushReq: make(chan chan struct{}),
	}
}

// Start subscribes to note mutations. Calling Start on a running scheduler
// is a no-op.
func (s *PushScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sub != nil {
		return
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.sub = s.bus.NoteMutations.Subscribe()
	s.stopped = false

	s.wg.Add(1)
	go s.listen(s.ctx, s.sub)
}

func (s *PushScheduler) listen(ctx context.Context, sub chan events.NoteMutation) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-sub:
			if !ok {
				return
			}
			s.handle(m)
			s.rearmIfLagged(sub)
		case done := <-s.flushReq:
			s.drain(sub)
			close(done)
		}
	}
}

func (s *PushScheduler) handle(m events.NoteMutation) {
	s.logger.Trace().Str("kind", string(m.Kind)).Str("note_id", m.NoteID).Msg("note mutation")
	s.Schedule()
}

// drain handles every mutation already buffered on sub without blocking.
func (s *PushScheduler) drain(sub chan events.NoteMutation) {
	for {
		select {
		case m, ok := <-sub:
			if !ok {
				return
			}
			s.handle(m)
		default:
			s.rearmIfLagged(sub)
			return
		}
	}
}

// rearmIfLagged schedules once more when the topic dropped mutations for
// sub, so the timer starts after the last of them. Only checked once the
// buffer is empty.
func (s *PushScheduler) rearmIfLagged(sub chan events.NoteMutation) {
	if len(sub) > 0 || !s.bus.NoteMutations.Lagged(sub) {
		return
	}
	s.logger.Debug().Msg("note mutations were dropped, re-arming push")
	s.Schedule()
}

// Schedule arms the debounce timer, replacing any pending one.
func (s *PushScheduler) Schedule() {
	if !s.sync.Session().IsLoggedIn() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.ctx == nil {
		return
	}

	s.generation++
	gen := s.generation
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() { s.fire(gen) })
}

func (s *PushScheduler) fire(gen uint64) {
	s.mu.Lock()
	if s.stopped || gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	ctx := s.ctx
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	s.push(ctx)
}

func (s *PushScheduler) push(ctx context.Context) {
	if !s.sync.Session().IsLoggedIn() {
		return
	}
	metrics.RecordScheduledPush()
	// failures are recorded on the session by the engine
	_ = s.sync.Push(ctx)
}

// Flush runs a pending push immediately instead of waiting for the timer.
// Mutations published before the call count as pending even if the
// listener has not picked them up yet. It reports whether a push was
// pending.
func (s *PushScheduler) Flush(ctx context.Context) bool {
	s.awaitListener(ctx)

	s.mu.Lock()
	pending := s.timer != nil
	if pending {
		// a callback that already fired sees the bumped generation and bails
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
	s.mu.Unlock()

	if pending {
		s.push(ctx)
	}
	return pending
}

// awaitListener blocks until the listener has handled every buffered
// mutation. It returns at once when the scheduler is not running.
func (s *PushScheduler) awaitListener(ctx context.Context) {
	s.mu.Lock()
	running := s.sub != nil && !s.stopped
	listenCtx := s.ctx
	s.mu.Unlock()
	if !running {
		return
	}

	done := make(chan struct{})
	select {
	case s.flushReq <- done:
	case <-listenCtx.Done():
		return
	case <-ctx.Done():
		return
	}

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Stop cancels any pending timer, unsubscribes and waits for a running push
// to finish.
func (s *PushScheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	cancel := s.cancel
	sub := s.sub
	s.cancel = nil
	s.sub = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if sub != nil {
		s.bus.NoteMutations.Unsubscribe(sub)
	}
	s.wg.Wait()
}
