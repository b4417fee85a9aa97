package models

import (
	"time"

	"github.com/google/uuid"
)

// GameIdea is the core aggregate for this bounded context: one creative
// artifact per trend. ID is the correlation id that threads the idea through
// every later pipeline stage. Immutable after creation.
type GameIdea struct {
	ID          uuid.UUID
	Title       string
	Description string
	Genre       string
	Platform    string
	TrendTopic  string
	CreatedAt   time.Time
}

// NewGameIdea constructs a GameIdea from a generated draft, assigning the
// correlation id and creation timestamp. The id is assigned exactly once —
// redeliveries of the triggering trend must find the persisted idea instead
// of constructing a new one.
func NewGameIdea(trend string, draft IdeaDraft) *GameIdea {
	return &GameIdea{
		ID:          uuid.New(),
		Title:       draft.Title,
		Description: draft.Description,
		Genre:       draft.Genre,
		Platform:    draft.Platform,
		TrendTopic:  trend,
		CreatedAt:   time.Now().UTC(),
	}
}

// ContentEquals reports whether other carries the same creative content.
// Used to distinguish an idempotent duplicate save from a conflicting one.
func (g *GameIdea) ContentEquals(other *GameIdea) bool {
	return g.Title == other.Title &&
		g.Description == other.Description &&
		g.Genre == other.Genre &&
		g.Platform == other.Platform &&
		g.TrendTopic == other.TrendTopic
}
