package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/trendforge/pkg/config"
	"github.com/ghuser/trendforge/pkg/logger"
	ideadomain "github.com/ghuser/trendforge/services/idea/domain"
	"github.com/ghuser/trendforge/services/idea/domain/models"
	"github.com/ghuser/trendforge/services/idea/domain/repositories"
)

func nopLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

// fakeGenerator returns a canned draft or error and counts invocations.
type fakeGenerator struct {
	mu    sync.Mutex
	draft models.IdeaDraft
	err   error
	calls int
}

func (g *fakeGenerator) Generate(_ context.Context, _ string) (*models.IdeaDraft, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	d := g.draft
	return &d, nil
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// fakeRepo is an in-memory GameIdeaRepository keyed by trend topic.
type fakeRepo struct {
	mu      sync.Mutex
	byTrend map[string]*models.GameIdea
	saveErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byTrend: map[string]*models.GameIdea{}}
}

func (r *fakeRepo) Save(_ context.Context, idea *models.GameIdea) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.byTrend[idea.TrendTopic]; ok {
		return ideadomain.ErrIdeaAlreadyExists
	}
	r.byTrend[idea.TrendTopic] = idea
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*models.GameIdea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, idea := range r.byTrend {
		if idea.ID == id {
			return idea, nil
		}
	}
	return nil, ideadomain.ErrIdeaNotFound
}

func (r *fakeRepo) GetByTrend(_ context.Context, trend string) (*models.GameIdea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idea, ok := r.byTrend[trend]; ok {
		return idea, nil
	}
	return nil, ideadomain.ErrIdeaNotFound
}

func (r *fakeRepo) List(_ context.Context, opts repositories.QueryOpts) ([]*models.GameIdea, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.GameIdea, 0, len(r.byTrend))
	for _, idea := range r.byTrend {
		out = append(out, idea)
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, len(r.byTrend), nil
}

func validDraft() models.IdeaDraft {
	return models.IdeaDraft{
		Title:       "Agent Quest",
		Description: "Herd your rogue AI agents back into the sandbox",
		Genre:       "Puzzle",
		Platform:    "Mobile",
	}
}

func newTestService(repo repositories.GameIdeaRepository, gen ideadomain.IdeaGenerator) *IdeaService {
	return NewIdeaService(repo, gen, nil, nopLogger())
}

func TestCreateForTrend_CreatesNewIdea(t *testing.T) {
	repo := newFakeRepo()
	gen := &fakeGenerator{draft: validDraft()}
	svc := newTestService(repo, gen)

	idea, created, err := svc.CreateForTrend(context.Background(), "AI Agents")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true for a new trend")
	}
	if idea.ID == uuid.Nil {
		t.Error("expected assigned id")
	}
	if idea.TrendTopic != "AI Agents" {
		t.Errorf("unexpected trend topic: %q", idea.TrendTopic)
	}
	if idea.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	stored, err := repo.GetByTrend(context.Background(), "AI Agents")
	if err != nil {
		t.Fatalf("idea not persisted: %v", err)
	}
	if stored.ID != idea.ID {
		t.Error("persisted idea differs from returned idea")
	}
}

func TestCreateForTrend_RedeliveryIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	gen := &fakeGenerator{draft: validDraft()}
	svc := newTestService(repo, gen)

	first, created, err := svc.CreateForTrend(context.Background(), "AI Agents")
	if err != nil || !created {
		t.Fatalf("first delivery: created=%v err=%v", created, err)
	}

	second, created, err := svc.CreateForTrend(context.Background(), "AI Agents")
	if err != nil {
		t.Fatalf("redelivery: %v", err)
	}
	if created {
		t.Error("redelivery must not report created=true")
	}
	if second.ID != first.ID {
		t.Errorf("redelivery returned a different artifact: %s vs %s", second.ID, first.ID)
	}
	if gen.callCount() != 1 {
		t.Errorf("redelivery must not regenerate, got %d generator calls", gen.callCount())
	}
}

func TestCreateForTrend_TrimsTrend(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeGenerator{draft: validDraft()})

	idea, _, err := svc.CreateForTrend(context.Background(), "  AI Agents  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idea.TrendTopic != "AI Agents" {
		t.Errorf("expected trimmed trend topic, got %q", idea.TrendTopic)
	}
}

func TestCreateForTrend_EmptyTrend(t *testing.T) {
	gen := &fakeGenerator{draft: validDraft()}
	svc := newTestService(newFakeRepo(), gen)

	for _, trend := range []string{"", "   ", "\t\n"} {
		if _, _, err := svc.CreateForTrend(context.Background(), trend); !errors.Is(err, ideadomain.ErrEmptyTrend) {
			t.Errorf("trend %q: expected ErrEmptyTrend, got %v", trend, err)
		}
	}
	if gen.callCount() != 0 {
		t.Error("generator must not be called for blank trends")
	}
}

func TestCreateForTrend_GenerationErrorPropagates(t *testing.T) {
	genErr := fmt.Errorf("%w: completion has no choices", ideadomain.ErrGenerationInvalid)
	svc := newTestService(newFakeRepo(), &fakeGenerator{err: genErr})

	_, _, err := svc.CreateForTrend(context.Background(), "AI Agents")
	if !errors.Is(err, ideadomain.ErrGenerationInvalid) {
		t.Fatalf("expected ErrGenerationInvalid to propagate, got %v", err)
	}
	if !ideadomain.IsPermanentGeneration(err) {
		t.Error("classification must survive service wrapping")
	}
}

func TestCreateForTrend_InvalidGeneratedContent(t *testing.T) {
	// The generator contract forbids this, but the service revalidates the
	// aggregate before persisting.
	draft := validDraft()
	draft.Title = "   "
	svc := newTestService(newFakeRepo(), &fakeGenerator{draft: draft})

	_, _, err := svc.CreateForTrend(context.Background(), "AI Agents")
	if !errors.Is(err, ideadomain.ErrInvalidIdea) {
		t.Fatalf("expected ErrInvalidIdea, got %v", err)
	}
}

// racingRepo loses every Save to a concurrent winner that appears between the
// idempotency check and the insert.
type racingRepo struct {
	*fakeRepo
	winner *models.GameIdea
	saves  int
}

func (r *racingRepo) Save(_ context.Context, _ *models.GameIdea) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	r.byTrend[r.winner.TrendTopic] = r.winner
	return ideadomain.ErrIdeaAlreadyExists
}

func TestCreateForTrend_SaveRaceAdoptsWinner(t *testing.T) {
	winner := models.NewGameIdea("AI Agents", validDraft())
	repo := &racingRepo{fakeRepo: newFakeRepo(), winner: winner}
	svc := newTestService(repo, &fakeGenerator{draft: validDraft()})

	idea, created, err := svc.CreateForTrend(context.Background(), "AI Agents")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("losing the save race must report created=false")
	}
	if idea.ID != winner.ID {
		t.Errorf("expected the winner's artifact %s, got %s", winner.ID, idea.ID)
	}
	if repo.saves != 1 {
		t.Errorf("expected exactly 1 save attempt, got %d", repo.saves)
	}
}

func TestCreateForTrend_SaveFailurePropagates(t *testing.T) {
	repo := newFakeRepo()
	repo.saveErr = errors.New("db unreachable")
	svc := newTestService(repo, &fakeGenerator{draft: validDraft()})

	_, _, err := svc.CreateForTrend(context.Background(), "AI Agents")
	if err == nil {
		t.Fatal("expected error when save fails")
	}
	if errors.Is(err, ideadomain.ErrIdeaAlreadyExists) {
		t.Error("transient save failure must not classify as already-exists")
	}
}

func TestGetByID(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeGenerator{draft: validDraft()})

	created, _, err := svc.CreateForTrend(context.Background(), "AI Agents")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	t.Run("found", func(t *testing.T) {
		idea, err := svc.GetByID(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if idea.ID != created.ID {
			t.Error("returned wrong idea")
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), uuid.New())
		if !errors.Is(err, ideadomain.ErrIdeaNotFound) {
			t.Fatalf("expected ErrIdeaNotFound, got %v", err)
		}
	})
}

func TestList(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeGenerator{draft: validDraft()})

	for _, trend := range []string{"AI Agents", "SpaceX Starship", "Quantum Computing"} {
		if _, _, err := svc.CreateForTrend(context.Background(), trend); err != nil {
			t.Fatalf("setup %q: %v", trend, err)
		}
	}

	ideas, total, err := svc.List(context.Background(), repositories.QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ideas) != 2 {
		t.Errorf("expected 2 ideas, got %d", len(ideas))
	}
	if total != 3 {
		t.Errorf("expected total 3, got %d", total)
	}
}
