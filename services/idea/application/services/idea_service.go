package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/trendforge/pkg/cache"
	"github.com/ghuser/trendforge/pkg/logger"
	ideadomain "github.com/ghuser/trendforge/services/idea/domain"
	"github.com/ghuser/trendforge/services/idea/domain/models"
	"github.com/ghuser/trendforge/services/idea/domain/repositories"
	domainsvcs "github.com/ghuser/trendforge/services/idea/domain/services"
)

// IdeaService orchestrates the idea stage's unit of work: idempotency check,
// generation, and atomic persist+publish. It is shared by the async consumer
// and the synchronous POST /generate surface, so both paths observe the same
// invariant — at most one persisted artifact and one downstream event per
// trend, however the work arrives.
type IdeaService struct {
	repo      repositories.GameIdeaRepository
	generator ideadomain.IdeaGenerator
	cache     *pkgcache.IdeaCache
	log       logger.Logger
}

// NewIdeaService returns an IdeaService wired with the given capabilities.
// cache may be nil (tests, degraded mode).
func NewIdeaService(
	repo repositories.GameIdeaRepository,
	generator ideadomain.IdeaGenerator,
	ideaCache *pkgcache.IdeaCache,
	log logger.Logger,
) *IdeaService {
	return &IdeaService{repo: repo, generator: generator, cache: ideaCache, log: log}
}

// CreateForTrend runs the full unit of work for one trend. The returned bool
// is true when a new artifact was created, false when an existing one was
// found (idempotent redelivery, or a racing worker won the insert).
//
// The generator owns retries for its transient failures; everything else
// propagates unwrapped classification so the bus decides retry vs dead-letter.
func (s *IdeaService) CreateForTrend(ctx context.Context, trend string) (*models.GameIdea, bool, error) {
	trend = strings.TrimSpace(trend)
	if trend == "" {
		return nil, false, ideadomain.ErrEmptyTrend
	}

	// Idempotency check: redelivered trends must not regenerate. The cache
	// pointer is a fast path only — the store remains authoritative.
	if existing, err := s.lookupExisting(ctx, trend); err == nil {
		s.log.InfoContext(ctx, "idea already exists for trend, skipping generation",
			"trend", trend, "game_id", existing.ID)
		return existing, false, nil
	} else if !errors.Is(err, ideadomain.ErrIdeaNotFound) {
		return nil, false, fmt.Errorf("idempotency check: %w", err)
	}

	draft, err := s.generator.Generate(ctx, trend)
	if err != nil {
		return nil, false, fmt.Errorf("generate idea for %q: %w", trend, err)
	}

	idea := models.NewGameIdea(trend, *draft)
	if err := domainsvcs.ValidateIdeaForCreation(idea); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ideadomain.ErrInvalidIdea, err)
	}

	if err := s.repo.Save(ctx, idea); err != nil {
		if errors.Is(err, ideadomain.ErrIdeaAlreadyExists) {
			// A racing worker's save landed first; adopt its artifact. The
			// discarded draft is fine — the store's unique index is the only
			// mutual exclusion the pipeline needs.
			existing, getErr := s.repo.GetByTrend(ctx, trend)
			if getErr != nil {
				return nil, false, fmt.Errorf("read existing idea after save race: %w", getErr)
			}
			s.log.InfoContext(ctx, "lost save race, adopting existing idea",
				"trend", trend, "game_id", existing.ID)
			s.warmCache(existing)
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("save idea: %w", err)
	}

	s.warmCache(idea)
	return idea, true, nil
}

// GetByID retrieves a GameIdea using a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *IdeaService) GetByID(ctx context.Context, id uuid.UUID) (*models.GameIdea, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil {
			return &models.GameIdea{
				ID:          cached.ID,
				Title:       cached.Title,
				Description: cached.Description,
				Genre:       cached.Genre,
				Platform:    cached.Platform,
				TrendTopic:  cached.TrendTopic,
				CreatedAt:   cached.CreatedAt,
			}, nil
		} else if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "idea cache read failed, falling back to store",
				"game_id", id, "error", err)
		}
	}

	idea, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get idea: %w", err)
	}

	s.warmCache(idea)
	return idea, nil
}

// List returns a paginated slice of ideas plus total count.
func (s *IdeaService) List(ctx context.Context, opts repositories.QueryOpts) ([]*models.GameIdea, int, error) {
	ideas, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list ideas: %w", err)
	}
	return ideas, total, nil
}

// warmCache writes the idea to the read cache in the background, best effort.
func (s *IdeaService) warmCache(idea *models.GameIdea) {
	if s.cache == nil {
		return
	}
	go func() {
		_ = s.cache.Set(context.Background(), &pkgcache.CachedIdea{
			ID:          idea.ID,
			Title:       idea.Title,
			Description: idea.Description,
			Genre:       idea.Genre,
			Platform:    idea.Platform,
			TrendTopic:  idea.TrendTopic,
			CreatedAt:   idea.CreatedAt,
		})
	}()
}

// lookupExisting checks cache pointer then store for an idea for this trend.
func (s *IdeaService) lookupExisting(ctx context.Context, trend string) (*models.GameIdea, error) {
	if s.cache != nil {
		if id, err := s.cache.IDForTrend(ctx, trend); err == nil {
			if cached, err := s.cache.Get(ctx, id); err == nil {
				return &models.GameIdea{
					ID:          cached.ID,
					Title:       cached.Title,
					Description: cached.Description,
					Genre:       cached.Genre,
					Platform:    cached.Platform,
					TrendTopic:  cached.TrendTopic,
					CreatedAt:   cached.CreatedAt,
				}, nil
			}
		}
	}
	return s.repo.GetByTrend(ctx, trend)
}
