package scheduler

import (
	"context"
	"testing"
	"time"

	"go.velora.shop/internal/catalog"
	"go.velora.shop/internal/magazine"
	"go.velora.shop/internal/magazine/operations"
)

// fakeRepo implements the subset of magazine.Repository the scheduler
// exercises; the rest panics so unexpected calls surface in tests.
type fakeRepo struct {
	magazine.Repository

	due       []*magazine.Article
	published []string
	archived  int64
}

func (f *fakeRepo) FindDue(ctx context.Context, now time.Time, page magazine.Page) ([]*magazine.Article, error) {
	if page.Offset > 0 {
		return nil, nil
	}
	due := f.due
	f.due = nil
	return due, nil
}

func (f *fakeRepo) MarkPublished(ctx context.Context, id string, at time.Time) error {
	f.published = append(f.published, id)
	return nil
}

func (f *fakeRepo) ArchiveOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return f.archived, nil
}

type fixedLeader struct{ primary bool }

func (l fixedLeader) IsPrimary() bool { return l.primary }

func dueArticle(id string) *magazine.Article {
	at := time.Now().Add(-time.Hour)
	return &magazine.Article{
		ID:     id,
		Slug:   "article-" + id,
		Status: magazine.StatusScheduled,
		Translations: map[catalog.Locale]magazine.Translation{
			catalog.LocaleEN: {Title: "T", Body: "B"},
		},
		PublishAt: &at,
	}
}

func newScheduler(repo *fakeRepo, leader Leader) *Scheduler {
	return New(
		Config{PollInterval: time.Hour, ArchiveAfter: 24 * time.Hour},
		operations.NewPublishDueArticlesUseCase(repo, nil, 10),
		operations.NewArchiveOldArticlesUseCase(repo, nil),
		leader,
	)
}

func TestPollPublishesDueArticles(t *testing.T) {
	repo := &fakeRepo{due: []*magazine.Article{dueArticle("a1"), dueArticle("a2")}}
	s := newScheduler(repo, nil)

	s.poll(context.Background())

	if len(repo.published) != 2 {
		t.Errorf("Expected 2 published, got %v", repo.published)
	}
	if s.LastPoll().IsZero() {
		t.Error("Poll must record its timestamp")
	}
}

func TestPollSkipsWhenNotPrimary(t *testing.T) {
	repo := &fakeRepo{due: []*magazine.Article{dueArticle("a1")}}
	s := newScheduler(repo, fixedLeader{primary: false})

	s.poll(context.Background())

	if len(repo.published) != 0 {
		t.Errorf("Secondary must not publish, got %v", repo.published)
	}
	if s.LastPoll().IsZero() {
		t.Error("Secondary must still record the poll for health")
	}
}

func TestPollRunsWhenPrimary(t *testing.T) {
	repo := &fakeRepo{due: []*magazine.Article{dueArticle("a1")}}
	s := newScheduler(repo, fixedLeader{primary: true})

	s.poll(context.Background())

	if len(repo.published) != 1 {
		t.Errorf("Primary must publish, got %v", repo.published)
	}
}

func TestArchiveDisabledWithoutRetention(t *testing.T) {
	repo := &fakeRepo{archived: 5}
	s := New(
		Config{PollInterval: time.Hour},
		operations.NewPublishDueArticlesUseCase(repo, nil, 10),
		operations.NewArchiveOldArticlesUseCase(repo, nil),
		nil,
	)

	// ArchiveAfter is zero, so the sweep must be a no-op; a call into
	// the archiver would succeed and hide the misconfiguration
	s.archive(context.Background())
}

func TestStartStop(t *testing.T) {
	repo := &fakeRepo{}
	s := newScheduler(repo, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start(ctx) }()

	// Give the loop a moment to run its initial poll
	deadline := time.After(time.Second)
	for s.LastPoll().IsZero() {
		select {
		case <-deadline:
			t.Fatal("Scheduler never polled")
		case <-time.After(10 * time.Millisecond):
		}
	}

	if err := s.Health(); err != nil {
		t.Errorf("Running scheduler must be healthy: %v", err)
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	if err := s.Stop(stopCtx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Start returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Start did not return after Stop")
	}

	if err := s.Health(); err == nil {
		t.Error("Stopped scheduler must report unhealthy")
	}
}
