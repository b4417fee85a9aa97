package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/trendforge/services/idea/domain/models"
)

// QueryOpts contains pagination parameters for list queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// GameIdeaRepository is the persistence interface for the GameIdea aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// Save is the pipeline's commit point: the artifact row and the downstream
// GameIdeaGenerated event are written in one transaction (outbox), so for a
// given id at most one artifact is persisted and at most one event is ever
// enqueued, however many times the triggering message is delivered.
type GameIdeaRepository interface {
	// Save persists a new idea and enqueues its GameIdeaGenerated event
	// atomically. Returns ErrIdeaAlreadyExists when an idea for the same
	// trend topic (or id) is already persisted — callers treat that as
	// idempotent success and re-read the existing record.
	Save(ctx context.Context, idea *models.GameIdea) error

	// GetByID retrieves an idea by its correlation id.
	// Returns ErrIdeaNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*models.GameIdea, error)

	// GetByTrend retrieves the idea generated for a trend topic, the
	// consumer's idempotency check. Returns ErrIdeaNotFound when absent.
	GetByTrend(ctx context.Context, trend string) (*models.GameIdea, error)

	// List retrieves a paginated list of ideas, newest first, plus the total
	// count (ignoring pagination).
	List(ctx context.Context, opts QueryOpts) ([]*models.GameIdea, int, error)
}
