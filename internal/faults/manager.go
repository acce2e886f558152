package faults

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"go.velora.shop/internal/common/metrics"
)

// Outcome is returned by a handler for a single attempt.
type Outcome struct {
	// Resolved reports whether the fault was dealt with.
	Resolved bool

	// Action names the follow-up surfaced to the caller, e.g. "toast",
	// "redirect", "reload", "refresh-session".
	Action string

	// Retry requests another attempt after backoff. Ignored once the
	// attempt budget is exhausted.
	Retry bool
}

// Handler handles faults for one domain. Handlers are dispatched in
// ascending Priority order; the first whose Matches accepts the entry
// runs.
type Handler struct {
	Name     string
	Domain   Domain
	Priority int

	// Matches optionally narrows the handler. Nil matches everything
	// in the domain.
	Matches func(Entry) bool

	// Handle processes the fault. attempt starts at 1.
	Handle func(ctx context.Context, entry Entry, attempt int) Outcome
}

// RecoveryFunc attempts automatic recovery for a domain before handler
// dispatch, e.g. refreshing an expired session. Returning true resolves
// the fault immediately.
type RecoveryFunc func(ctx context.Context, entry Entry) bool

// Subscriber observes every reported fault.
type Subscriber func(Entry)

// RetryPolicy bounds the backoff loop.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
}

// Config configures a Manager.
type Config struct {
	// LogCapacity caps the in-memory fault log; the oldest entry is
	// evicted first.
	LogCapacity int

	Retry RetryPolicy
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogCapacity: 100,
		Retry: RetryPolicy{
			MaxAttempts:  3,
			InitialDelay: 500 * time.Millisecond,
			Multiplier:   2,
			MaxDelay:     10 * time.Second,
		},
	}
}

// Manager classifies, logs and dispatches faults.
type Manager struct {
	cfg Config

	mu          sync.Mutex
	log         []Entry
	handlers    map[Domain][]Handler
	recoveries  map[Domain]RecoveryFunc
	subscribers map[int]Subscriber
	nextSubID   int
	online      bool

	// sleep is injectable so retry tests run without wall-clock delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewManager creates a manager with the given config.
func NewManager(cfg Config) *Manager {
	if cfg.LogCapacity <= 0 {
		cfg.LogCapacity = DefaultConfig().LogCapacity
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = DefaultConfig().Retry
	}
	if cfg.Retry.Multiplier < 1 {
		cfg.Retry.Multiplier = 2
	}
	return &Manager{
		cfg:         cfg,
		handlers:    make(map[Domain][]Handler),
		recoveries:  make(map[Domain]RecoveryFunc),
		subscribers: make(map[int]Subscriber),
		online:      true,
		sleep:       sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RegisterHandler adds a handler, kept sorted by ascending priority.
func (m *Manager) RegisterHandler(h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := append(m.handlers[h.Domain], h)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Priority < list[j].Priority })
	m.handlers[h.Domain] = list
}

// RegisterRecovery sets the automatic recovery strategy for a domain.
func (m *Manager) RegisterRecovery(domain Domain, fn RecoveryFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recoveries[domain] = fn
}

// Subscribe registers a fault observer and returns its unsubscribe func.
func (m *Manager) Subscribe(fn Subscriber) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers, id)
	}
}

// SetOnline records the transport availability flag.
func (m *Manager) SetOnline(online bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.online = online
}

// Online reports the transport availability flag.
func (m *Manager) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Log returns a copy of the fault log, oldest first.
func (m *Manager) Log() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.log))
	copy(out, m.log)
	return out
}

// Report runs the full pipeline for an error:
// classify -> log -> notify -> recover -> dispatch -> retry.
func (m *Manager) Report(ctx context.Context, err error) Resolution {
	return m.ReportContext(ctx, err, "")
}

// ReportContext is Report with an origin note recorded on the entry.
func (m *Manager) ReportContext(ctx context.Context, err error, origin string) Resolution {
	if err == nil {
		return Resolution{Resolved: true, Action: "none"}
	}

	domain := Classify(err)
	entry := Entry{
		ID:       uuid.NewString(),
		Time:     time.Now(),
		Domain:   domain,
		Severity: severityOf(err, domain),
		Message:  err.Error(),
		Context:  origin,
		err:      err,
	}

	metrics.FaultsReported.WithLabelValues(string(domain), entry.Severity.String()).Inc()

	m.mu.Lock()
	if len(m.log) >= m.cfg.LogCapacity {
		m.log = m.log[1:]
	}
	m.log = append(m.log, entry)

	subs := make([]Subscriber, 0, len(m.subscribers))
	for _, s := range m.subscribers {
		subs = append(subs, s)
	}
	recovery := m.recoveries[domain]
	handlers := m.handlers[domain]
	m.mu.Unlock()

	slog.Warn("Fault reported",
		"faultId", entry.ID,
		"domain", domain,
		"severity", entry.Severity.String(),
		"context", origin,
		"error", err)

	for _, s := range subs {
		s(entry)
	}

	if recovery != nil && recovery(ctx, entry) {
		metrics.FaultsRecovered.WithLabelValues(string(domain)).Inc()
		return Resolution{Resolved: true, Action: "recovered"}
	}

	for _, h := range handlers {
		if h.Matches != nil && !h.Matches(entry) {
			continue
		}
		return m.dispatch(ctx, h, entry)
	}

	return Resolution{Resolved: false, Action: m.defaultAction(entry.Severity)}
}

// dispatch runs a handler, honoring retry requests with exponential
// backoff up to the attempt budget.
func (m *Manager) dispatch(ctx context.Context, h Handler, entry Entry) Resolution {
	delay := m.cfg.Retry.InitialDelay

	for attempt := 1; ; attempt++ {
		outcome := h.Handle(ctx, entry, attempt)
		if outcome.Resolved || !outcome.Retry {
			return Resolution{Resolved: outcome.Resolved, Action: outcome.Action}
		}
		if attempt >= m.cfg.Retry.MaxAttempts {
			slog.Warn("Fault retry budget exhausted",
				"faultId", entry.ID,
				"handler", h.Name,
				"attempts", attempt)
			return Resolution{Resolved: false, Action: outcome.Action}
		}

		metrics.FaultRetries.WithLabelValues(string(entry.Domain)).Inc()
		if err := m.sleep(ctx, delay); err != nil {
			return Resolution{Resolved: false, Action: "cancelled"}
		}

		delay = time.Duration(float64(delay) * m.cfg.Retry.Multiplier)
		if delay > m.cfg.Retry.MaxDelay {
			delay = m.cfg.Retry.MaxDelay
		}
	}
}

// defaultAction maps severity to the UI follow-up when no handler
// claimed the fault: toast for routine faults, redirect for high
// severity, a full reload prompt for critical ones.
func (m *Manager) defaultAction(s Severity) string {
	switch s {
	case SeverityCritical:
		return "reload"
	case SeverityHigh:
		return "redirect"
	default:
		return "toast"
	}
}
