package faults

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.velora.shop/internal/common/apperr"
)

// === Classification tests ===

func TestClassifyTypedErrorWins(t *testing.T) {
	// A typed error mentioning other domains still classifies by its tag.
	err := Tag(DomainCart, SeverityLow, errors.New("network timeout while loading cart"))
	if got := Classify(err); got != DomainCart {
		t.Errorf("Expected CART, got %s", got)
	}
}

func TestClassifyAppErrByKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Domain
	}{
		{"payment kind", apperr.Payment(apperr.CodePaymentDeclined, "card declined"), DomainPayment},
		{"unauthorized kind", apperr.Unauthorized(apperr.CodeAccessDenied, "no access"), DomainAuth},
		{"validation kind", apperr.Validation(apperr.CodeRequired, "missing"), DomainValidation},
		{"not found kind", apperr.NotFound(apperr.CodeProductNotFound, "gone"), DomainAPI},
		{"internal kind", apperr.Internal(apperr.CodeDBError, "broken"), DomainDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestClassifyStripeRoutesToPayment(t *testing.T) {
	// Payment precedes NETWORK and AUTH in the fallback table, so a
	// provider error mentioning a transport never leaves the domain.
	tests := []string{
		"stripe: request failed",
		"stripe network error during authorization",
		"connection to stripe timed out",
	}
	for _, msg := range tests {
		if got := Classify(errors.New(msg)); got != DomainPayment {
			t.Errorf("Classify(%q): expected PAYMENT, got %s", msg, got)
		}
	}
}

func TestClassifyFallbackPrecedence(t *testing.T) {
	tests := []struct {
		msg  string
		want Domain
	}{
		{"auth token expired", DomainAuth},
		{"session invalid and network unreachable", DomainAuth},
		{"cart not persisted", DomainCart},
		{"order could not ship", DomainOrder},
		{"sql constraint violated", DomainDatabase},
		{"connection refused by upstream", DomainNetwork},
		{"something inexplicable", DomainUnknown},
	}
	for _, tt := range tests {
		if got := Classify(errors.New(tt.msg)); got != tt.want {
			t.Errorf("Classify(%q): expected %s, got %s", tt.msg, tt.want, got)
		}
	}
}

func TestClassifyNil(t *testing.T) {
	if got := Classify(nil); got != DomainUnknown {
		t.Errorf("Expected UNKNOWN for nil, got %s", got)
	}
}

// === Ring buffer tests ===

func TestLogEvictsOldestFirst(t *testing.T) {
	m := NewManager(Config{LogCapacity: 3, Retry: DefaultConfig().Retry})
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		m.Report(ctx, fmt.Errorf("fault %d", i))
	}

	log := m.Log()
	if len(log) != 3 {
		t.Fatalf("Expected log capped at 3, got %d", len(log))
	}
	if log[0].Message != "fault 3" {
		t.Errorf("Expected oldest surviving entry to be fault 3, got %q", log[0].Message)
	}
	if log[2].Message != "fault 5" {
		t.Errorf("Expected newest entry to be fault 5, got %q", log[2].Message)
	}
}

// === Subscriber tests ===

func TestSubscribersAreNotified(t *testing.T) {
	m := NewManager(DefaultConfig())
	var seen []Domain
	unsubscribe := m.Subscribe(func(e Entry) {
		seen = append(seen, e.Domain)
	})

	m.Report(context.Background(), errors.New("stripe charge failed"))
	if len(seen) != 1 || seen[0] != DomainPayment {
		t.Fatalf("Expected one PAYMENT notification, got %v", seen)
	}

	unsubscribe()
	m.Report(context.Background(), errors.New("stripe charge failed again"))
	if len(seen) != 1 {
		t.Error("Unsubscribed callback must not be invoked")
	}
}

// === Recovery tests ===

func TestRecoveryShortCircuitsDispatch(t *testing.T) {
	m := NewManager(DefaultConfig())
	handlerRan := false
	m.RegisterHandler(Handler{
		Name:   "auth-fallback",
		Domain: DomainAuth,
		Handle: func(context.Context, Entry, int) Outcome {
			handlerRan = true
			return Outcome{Resolved: true}
		},
	})
	m.RegisterRecovery(DomainAuth, func(context.Context, Entry) bool {
		return true // e.g. session refresh succeeded
	})

	res := m.Report(context.Background(), Tag(DomainAuth, SeverityHigh, errors.New("token expired")))
	if !res.Resolved || res.Action != "recovered" {
		t.Errorf("Expected recovered resolution, got %+v", res)
	}
	if handlerRan {
		t.Error("Handler must not run when recovery succeeds")
	}
}

// === Handler dispatch tests ===

func TestHandlersDispatchByAscendingPriority(t *testing.T) {
	m := NewManager(DefaultConfig())
	var ran []string

	m.RegisterHandler(Handler{
		Name: "second", Domain: DomainCart, Priority: 20,
		Handle: func(context.Context, Entry, int) Outcome {
			ran = append(ran, "second")
			return Outcome{Resolved: true}
		},
	})
	m.RegisterHandler(Handler{
		Name: "first", Domain: DomainCart, Priority: 10,
		Handle: func(context.Context, Entry, int) Outcome {
			ran = append(ran, "first")
			return Outcome{Resolved: true, Action: "toast"}
		},
	})

	res := m.Report(context.Background(), Tag(DomainCart, SeverityLow, errors.New("cart stale")))
	if len(ran) != 1 || ran[0] != "first" {
		t.Errorf("Expected only the lowest-priority-number handler to run, got %v", ran)
	}
	if !res.Resolved || res.Action != "toast" {
		t.Errorf("Unexpected resolution %+v", res)
	}
}

func TestHandlerMatchesFilter(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.RegisterHandler(Handler{
		Name: "critical-only", Domain: DomainOrder, Priority: 1,
		Matches: func(e Entry) bool { return e.Severity == SeverityCritical },
		Handle: func(context.Context, Entry, int) Outcome {
			return Outcome{Resolved: true, Action: "reload"}
		},
	})
	m.RegisterHandler(Handler{
		Name: "general", Domain: DomainOrder, Priority: 2,
		Handle: func(context.Context, Entry, int) Outcome {
			return Outcome{Resolved: true, Action: "toast"}
		},
	})

	res := m.Report(context.Background(), Tag(DomainOrder, SeverityLow, errors.New("order hiccup")))
	if res.Action != "toast" {
		t.Errorf("Expected the general handler, got action %q", res.Action)
	}
}

func TestUnhandledFaultDefaultsBySeverity(t *testing.T) {
	m := NewManager(DefaultConfig())

	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityLow, "toast"},
		{SeverityHigh, "redirect"},
		{SeverityCritical, "reload"},
	}
	for _, tt := range tests {
		res := m.Report(context.Background(), Tag(DomainAPI, tt.severity, errors.New("unhandled")))
		if res.Resolved {
			t.Error("Unhandled fault must not resolve")
		}
		if res.Action != tt.want {
			t.Errorf("Severity %s: expected action %q, got %q", tt.severity, tt.want, res.Action)
		}
	}
}

// === Retry loop tests ===

func TestRetryBackoffScheduleAndCap(t *testing.T) {
	m := NewManager(Config{
		LogCapacity: 10,
		Retry: RetryPolicy{
			MaxAttempts:  4,
			InitialDelay: 100 * time.Millisecond,
			Multiplier:   2,
			MaxDelay:     300 * time.Millisecond,
		},
	})

	var delays []time.Duration
	m.sleep = func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}

	attempts := 0
	m.RegisterHandler(Handler{
		Name: "always-retry", Domain: DomainNetwork, Priority: 1,
		Handle: func(_ context.Context, _ Entry, attempt int) Outcome {
			attempts = attempt
			return Outcome{Retry: true, Action: "waiting"}
		},
	})

	res := m.Report(context.Background(), Tag(DomainNetwork, SeverityMedium, errors.New("flaky")))
	if res.Resolved {
		t.Error("Exhausted retries must not resolve")
	}
	if attempts != 4 {
		t.Errorf("Expected exactly 4 attempts, got %d", attempts)
	}

	// 100ms, 200ms, then capped at 300ms.
	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond}
	if len(delays) != len(want) {
		t.Fatalf("Expected %d sleeps, got %d", len(want), len(delays))
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Errorf("Sleep %d: expected %v, got %v", i, want[i], delays[i])
		}
	}
}

func TestRetryStopsWhenResolved(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.sleep = func(context.Context, time.Duration) error { return nil }

	m.RegisterHandler(Handler{
		Name: "second-try", Domain: DomainNetwork, Priority: 1,
		Handle: func(_ context.Context, _ Entry, attempt int) Outcome {
			if attempt >= 2 {
				return Outcome{Resolved: true, Action: "recovered-after-retry"}
			}
			return Outcome{Retry: true}
		},
	})

	res := m.Report(context.Background(), Tag(DomainNetwork, SeverityMedium, errors.New("flaky")))
	if !res.Resolved || res.Action != "recovered-after-retry" {
		t.Errorf("Expected resolution on second attempt, got %+v", res)
	}
}

func TestRetryAbortsOnContextCancel(t *testing.T) {
	m := NewManager(DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m.RegisterHandler(Handler{
		Name: "never-resolves", Domain: DomainNetwork, Priority: 1,
		Handle: func(context.Context, Entry, int) Outcome {
			return Outcome{Retry: true}
		},
	})

	res := m.Report(ctx, Tag(DomainNetwork, SeverityMedium, errors.New("flaky")))
	if res.Resolved {
		t.Error("Cancelled retry must not resolve")
	}
	if res.Action != "cancelled" {
		t.Errorf("Expected cancelled action, got %q", res.Action)
	}
}

// === Online flag ===

func TestOnlineFlag(t *testing.T) {
	m := NewManager(DefaultConfig())
	if !m.Online() {
		t.Error("Manager should start online")
	}
	m.SetOnline(false)
	if m.Online() {
		t.Error("Expected offline after SetOnline(false)")
	}
}
