// Package leader provides Redis-based leader election so that only one
// instance runs the magazine scheduler in multi-instance deployments.
package leader

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds configuration for leader election
type Config struct {
	// InstanceID uniquely identifies this instance (defaults to hostname)
	InstanceID string

	// LockName is the name of the lock to acquire (e.g., "magazine-scheduler-leader")
	LockName string

	// TTL is how long the lock is valid before expiring (default: 30s)
	TTL time.Duration

	// RefreshInterval is how often to refresh the lock while primary (default: 10s)
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible defaults for the given lock name
func DefaultConfig(lockName string) *Config {
	instanceID, _ := os.Hostname()
	if instanceID == "" {
		instanceID = "instance-" + time.Now().Format("20060102150405")
	}

	return &Config{
		InstanceID:      instanceID,
		LockName:        lockName,
		TTL:             30 * time.Second,
		RefreshInterval: 10 * time.Second,
	}
}

// Elector provides distributed leader election using Redis.
//
// The lock uses the SET NX EX pattern for atomic acquisition:
//
//	SET lockName instanceId NX EX ttlSeconds
//
// While primary, the elector refreshes the lock periodically. Refresh and
// release use Lua scripts so ownership is checked atomically.
type Elector struct {
	client    *redis.Client
	config    *Config
	isPrimary atomic.Bool
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	onBecomeLeader   func()
	onLoseLeadership func()
}

// NewElector creates a new Redis-based leader elector
func NewElector(client *redis.Client, config *Config) *Elector {
	if config == nil {
		config = DefaultConfig("velora-leader")
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Elector{
		client: client,
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}
}

// OnBecomeLeader sets a callback for when this instance becomes leader
func (e *Elector) OnBecomeLeader(fn func()) {
	e.onBecomeLeader = fn
}

// OnLoseLeadership sets a callback for when this instance loses leadership
func (e *Elector) OnLoseLeadership(fn func()) {
	e.onLoseLeadership = fn
}

// Start begins the leader election process
func (e *Elector) Start(ctx context.Context) error {
	e.wg.Add(1)
	go e.electionLoop()

	slog.Info("Leader election started",
		"instanceId", e.config.InstanceID,
		"lockName", e.config.LockName,
		"ttl", e.config.TTL,
		"refreshInterval", e.config.RefreshInterval)

	return nil
}

// Stop stops the leader election and releases the lock if held
func (e *Elector) Stop() {
	e.cancel()
	e.wg.Wait()

	if e.isPrimary.Load() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		e.Release(ctx)
	}

	slog.Info("Leader election stopped", "instanceId", e.config.InstanceID)
}

// IsPrimary returns true if this instance currently holds the lock
func (e *Elector) IsPrimary() bool {
	return e.isPrimary.Load()
}

// InstanceID returns the instance ID of this elector
func (e *Elector) InstanceID() string {
	return e.config.InstanceID
}

func (e *Elector) electionLoop() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.config.RefreshInterval)
	defer ticker.Stop()

	// Try to acquire immediately
	e.tryAcquireOrRefresh()

	for {
		select {
		case <-e.ctx.Done():
			return
		case <-ticker.C:
			e.tryAcquireOrRefresh()
		}
	}
}

func (e *Elector) tryAcquireOrRefresh() {
	ctx, cancel := context.WithTimeout(e.ctx, 5*time.Second)
	defer cancel()

	wasPrimary := e.isPrimary.Load()

	if wasPrimary {
		if e.refresh(ctx) {
			return
		}
		e.isPrimary.Store(false)
		slog.Warn("Lost leadership - refresh failed",
			"instanceId", e.config.InstanceID,
			"lockName", e.config.LockName)
		if e.onLoseLeadership != nil {
			e.onLoseLeadership()
		}
	}

	if e.tryAcquire(ctx) {
		if !wasPrimary {
			slog.Info("Acquired leadership",
				"instanceId", e.config.InstanceID,
				"lockName", e.config.LockName)
			if e.onBecomeLeader != nil {
				e.onBecomeLeader()
			}
		}
		e.isPrimary.Store(true)
	}
}

// tryAcquire attempts to acquire the lock using SET NX EX
func (e *Elector) tryAcquire(ctx context.Context) bool {
	success, err := e.client.SetNX(ctx, e.config.LockName, e.config.InstanceID, e.config.TTL).Result()
	if err != nil {
		slog.Error("Failed to acquire leader lock",
			"error", err,
			"lockName", e.config.LockName)
		return false
	}

	if success {
		return true
	}

	// Lock exists - it could still be ours after a restart
	owner, err := e.client.Get(ctx, e.config.LockName).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Error("Failed to check lock owner", "error", err)
		}
		return false
	}

	if owner == e.config.InstanceID {
		return e.refresh(ctx)
	}

	slog.Debug("Lock held by another instance",
		"instanceId", e.config.InstanceID,
		"owner", owner,
		"lockName", e.config.LockName)

	return false
}

// refreshScript atomically extends the TTL only when we still own the lock
var refreshScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("expire", KEYS[1], ARGV[2])
	else
		return 0
	end
`)

func (e *Elector) refresh(ctx context.Context) bool {
	ttlSeconds := int(e.config.TTL.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	result, err := refreshScript.Run(ctx, e.client, []string{e.config.LockName}, e.config.InstanceID, ttlSeconds).Int()
	if err != nil {
		slog.Error("Failed to refresh leader lock",
			"error", err,
			"lockName", e.config.LockName)
		return false
	}

	return result != 0
}

// releaseScript atomically deletes the lock only when we own it
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// Release explicitly releases the lock
func (e *Elector) Release(ctx context.Context) {
	result, err := releaseScript.Run(ctx, e.client, []string{e.config.LockName}, e.config.InstanceID).Int()
	if err != nil {
		slog.Error("Failed to release leader lock",
			"error", err,
			"lockName", e.config.LockName)
		return
	}

	if result > 0 {
		slog.Info("Released leader lock",
			"instanceId", e.config.InstanceID,
			"lockName", e.config.LockName)
	}

	e.isPrimary.Store(false)
}

// CurrentLeader returns the instance ID of the current leader, or an
// empty string when no instance holds the lock.
func (e *Elector) CurrentLeader(ctx context.Context) (string, error) {
	owner, err := e.client.Get(ctx, e.config.LockName).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return owner, nil
}
