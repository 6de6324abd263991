package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/workers"
)

type pullJob struct {
	syncService ClientSyncService
	interval    time.Duration
	logger      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPullJob creates a job that calls syncService.Pull every interval while
// a session is logged in. The job is idle until Start is called; a zero or
// negative interval disables it entirely.
func NewPullJob(syncService ClientSyncService, interval time.Duration, logger *logger.Logger) workers.Worker {
	return &pullJob{syncService: syncService, interval: interval, logger: logger}
}

// Start stops any previously running job, then launches a background
// goroutine that pulls every interval. The goroutine exits when ctx is
// cancelled or Stop is called.
func (j *pullJob) Start(ctx context.Context) {
	if j.interval <= 0 {
		j.logger.Debug().Msg("periodic pull disabled")
		return
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if !j.syncService.Session().IsLoggedIn() {
					continue
				}
				_ = j.syncService.Pull(jobCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until the
// goroutine has fully exited. Safe to call when the job is not running.
func (j *pullJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
