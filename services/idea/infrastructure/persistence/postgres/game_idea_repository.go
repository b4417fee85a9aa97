package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/trendforge/pkg/database"
	"github.com/ghuser/trendforge/pkg/events"
	ideadomain "github.com/ghuser/trendforge/services/idea/domain"
	"github.com/ghuser/trendforge/services/idea/domain/models"
	"github.com/ghuser/trendforge/services/idea/domain/repositories"
	pipeline "github.com/ghuser/trendforge/services/shared/events"
)

const uniqueViolation = "23505"

// GameIdeaRepository implements repositories.GameIdeaRepository against PostgreSQL.
type GameIdeaRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewGameIdeaRepository returns a GameIdeaRepository backed by the given
// connection pool and event bus. The bus enqueues GameIdeaGenerated events in
// the same transaction as the insert (forwarder outbox), which is what makes
// "at most one event per correlation id" hold under redelivery.
func NewGameIdeaRepository(db *database.Database, bus *events.EventBus) *GameIdeaRepository {
	return &GameIdeaRepository{db: db, bus: bus}
}

// Save persists a new GameIdea and enqueues its GameIdeaGenerated event within
// the same transaction. Returns ErrIdeaAlreadyExists when the trend topic (or
// id) already has a persisted idea — the unique index is the pipeline's only
// mutual exclusion between racing workers.
func (r *GameIdeaRepository) Save(ctx context.Context, idea *models.GameIdea) error {
	var conflictConstraint string
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO game_ideas (id, title, description, genre, platform, trend_topic, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			idea.ID, idea.Title, idea.Description, idea.Genre, idea.Platform, idea.TrendTopic, idea.CreatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				conflictConstraint = pgErr.ConstraintName
				return ideadomain.ErrIdeaAlreadyExists
			}
			return fmt.Errorf("insert game idea: %w", err)
		}

		if r.bus != nil {
			if err := r.publishGenerated(tx, idea); err != nil {
				return fmt.Errorf("publish idea generated: %w", err)
			}
		}
		return nil
	})

	// An id collision with divergent content is a data-integrity anomaly, not
	// an idempotent duplicate: the pipeline never regenerates for an existing
	// id, so surface it instead of silently treating it as already-saved.
	if errors.Is(err, ideadomain.ErrIdeaAlreadyExists) && conflictConstraint == "game_ideas_pkey" {
		existing, getErr := r.GetByID(ctx, idea.ID)
		if getErr == nil && !existing.ContentEquals(idea) {
			return fmt.Errorf("%w: id %s", ideadomain.ErrIdeaConflict, idea.ID)
		}
	}
	return err
}

// GetByID retrieves an idea by its correlation id. Returns ErrIdeaNotFound if absent.
func (r *GameIdeaRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.GameIdea, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT id, title, description, genre, platform, trend_topic, created_at
		FROM game_ideas WHERE id = $1`, id)
	return scanIdea(row)
}

// GetByTrend retrieves the idea generated for a trend topic — the consumer's
// idempotency check. Returns ErrIdeaNotFound if absent.
func (r *GameIdeaRepository) GetByTrend(ctx context.Context, trend string) (*models.GameIdea, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT id, title, description, genre, platform, trend_topic, created_at
		FROM game_ideas WHERE trend_topic = $1`, trend)
	return scanIdea(row)
}

// List retrieves a paginated list of ideas, newest first, plus total count.
func (r *GameIdeaRepository) List(ctx context.Context, opts repositories.QueryOpts) ([]*models.GameIdea, int, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, title, description, genre, platform, trend_topic, created_at
		FROM game_ideas ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("query game ideas: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var ideas []*models.GameIdea
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, 0, err
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate game ideas: %w", err)
	}

	var total int
	if err := r.db.DB().QueryRowContext(ctx, `SELECT count(*) FROM game_ideas`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count game ideas: %w", err)
	}
	return ideas, total, nil
}

func (r *GameIdeaRepository) publishGenerated(tx *sql.Tx, idea *models.GameIdea) error {
	event := pipeline.GameIdeaGeneratedEvent{
		EventID:         uuid.New(),
		Version:         1,
		TrendName:       idea.TrendTopic,
		GameTitle:       idea.Title,
		GameDescription: idea.Description,
		Genre:           idea.Genre,
		GameID:          idea.ID,
		OccurredAt:      idea.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	msg.Metadata.Set("game_id", idea.ID.String())
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(pipeline.TopicIdeaGenerated, msg)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIdea(row rowScanner) (*models.GameIdea, error) {
	var idea models.GameIdea
	var createdAt time.Time
	err := row.Scan(&idea.ID, &idea.Title, &idea.Description, &idea.Genre,
		&idea.Platform, &idea.TrendTopic, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ideadomain.ErrIdeaNotFound
		}
		return nil, fmt.Errorf("scan game idea: %w", err)
	}
	idea.CreatedAt = createdAt.UTC()
	return &idea, nil
}
