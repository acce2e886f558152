// Package scheduler runs the magazine publication loop: it polls for
// scheduled articles whose publish time has passed and flips them to
// published, with an optional retention sweep archiving old articles.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.velora.shop/internal/common/metrics"
	"go.velora.shop/internal/magazine/operations"
)

// Leader gates publication to a single instance. The redis elector
// satisfies it; single-instance deployments run without one.
type Leader interface {
	IsPrimary() bool
}

// Config holds scheduler configuration
type Config struct {
	// PollInterval is how often to poll for due articles
	PollInterval time.Duration

	// ArchiveAfter is how long a published article stays before the
	// retention sweep archives it (0 disables archiving)
	ArchiveAfter time.Duration

	// ArchiveInterval is how often the retention sweep runs
	ArchiveInterval time.Duration
}

// Scheduler is the lifecycle service driving scheduled publication
type Scheduler struct {
	config    Config
	publisher *operations.PublishDueArticlesUseCase
	archiver  *operations.ArchiveOldArticlesUseCase
	leader    Leader

	mu       sync.RWMutex
	running  bool
	lastPoll time.Time

	stopCh chan struct{}
	doneCh chan struct{}

	// now is injectable for tests
	now func() time.Time
}

// New creates the scheduler service
func New(config Config, publisher *operations.PublishDueArticlesUseCase, archiver *operations.ArchiveOldArticlesUseCase, leader Leader) *Scheduler {
	if config.PollInterval <= 0 {
		config.PollInterval = 30 * time.Second
	}
	if config.ArchiveInterval <= 0 {
		config.ArchiveInterval = 12 * time.Hour
	}

	return &Scheduler{
		config:    config,
		publisher: publisher,
		archiver:  archiver,
		leader:    leader,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
		now:       time.Now,
	}
}

// Name implements lifecycle.Service
func (s *Scheduler) Name() string {
	return "magazine-scheduler"
}

// Start runs the poll loop until ctx is cancelled or Stop is called
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("scheduler already running")
	}
	s.running = true
	s.mu.Unlock()

	defer close(s.doneCh)

	slog.Info("Magazine scheduler started",
		"poll_interval", s.config.PollInterval,
		"archive_after", s.config.ArchiveAfter,
		"leader_gated", s.leader != nil)

	pollTicker := time.NewTicker(s.config.PollInterval)
	defer pollTicker.Stop()
	archiveTicker := time.NewTicker(s.config.ArchiveInterval)
	defer archiveTicker.Stop()

	// One poll up front so a short-lived process still publishes
	s.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			s.setRunning(false)
			return nil
		case <-s.stopCh:
			s.setRunning(false)
			return nil
		case <-pollTicker.C:
			s.poll(ctx)
		case <-archiveTicker.C:
			s.archive(ctx)
		}
	}
}

// Stop implements lifecycle.Service
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.RLock()
	running := s.running
	s.mu.RUnlock()
	if !running {
		return nil
	}

	close(s.stopCh)
	select {
	case <-s.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Health reports unhealthy when the loop has stopped polling
func (s *Scheduler) Health() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.running {
		return fmt.Errorf("scheduler not running")
	}
	if !s.lastPoll.IsZero() && time.Since(s.lastPoll) > 3*s.config.PollInterval {
		return fmt.Errorf("scheduler stalled, last poll %s", s.lastPoll.Format(time.RFC3339))
	}
	return nil
}

// LastPoll returns when the loop last completed a poll
func (s *Scheduler) LastPoll() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastPoll
}

// IsRunning returns true while the loop is active
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Scheduler) setRunning(v bool) {
	s.mu.Lock()
	s.running = v
	s.mu.Unlock()
}

// poll publishes everything due. Non-primary instances record the poll
// but do not touch the database.
func (s *Scheduler) poll(ctx context.Context) {
	s.mu.Lock()
	s.lastPoll = s.now()
	s.mu.Unlock()

	if s.leader != nil && !s.leader.IsPrimary() {
		return
	}

	res := s.publisher.Execute(ctx, s.now().UTC())
	if res.IsErr() {
		metrics.SchedulerPollFailures.Inc()
		slog.Error("Scheduler poll failed", "error", res.Err())
		return
	}

	if count := res.Value(); count > 0 {
		slog.Info("Published scheduled articles", "count", count)
	}
}

// archive runs the retention sweep when configured
func (s *Scheduler) archive(ctx context.Context) {
	if s.config.ArchiveAfter <= 0 {
		return
	}
	if s.leader != nil && !s.leader.IsPrimary() {
		return
	}

	cutoff := s.now().UTC().Add(-s.config.ArchiveAfter)
	res := s.archiver.Execute(ctx, cutoff)
	if res.IsErr() {
		slog.Error("Retention sweep failed", "error", res.Err())
		return
	}

	if count := res.Value(); count > 0 {
		slog.Info("Archived old articles", "count", count, "cutoff", cutoff)
	}
}
