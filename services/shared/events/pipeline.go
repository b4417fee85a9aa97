// Package events defines the wire contracts for the creative pipeline.
// Every stage publishes to its own topic and consumes the previous stage's
// topic, so ordering across correlation ids is never required.
//
// GameID is the correlation id: it is assigned when the idea artifact is
// first created and carried by every later event in the chain.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Topic names, one per pipeline stage output.
const (
	TopicTrendDiscovered = "trend.discovered"
	TopicIdeaGenerated   = "idea.generated"
	TopicCodeGenerated   = "code.generated"
	TopicAssetsGenerated = "assets.generated"
	TopicGameBuilt       = "game.built"
)

// DeadLetterTopic returns the dead-letter topic for the given topic.
// Messages land there after retry exhaustion or a permanent handler error.
func DeadLetterTopic(topic string) string {
	return topic + ".deadletter"
}

// TrendDiscoveredEvent is published once per observed trend by the trends
// service. It carries no correlation id: the GameID only exists once the
// idea stage has created an artifact, and idempotency for redeliveries is
// keyed by TrendName.
type TrendDiscoveredEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	TrendName  string    `json:"trend_name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// GameIdeaGeneratedEvent is published after a GameIdea is durably persisted.
// GameID equals the persisted artifact's id.
type GameIdeaGeneratedEvent struct {
	EventID         uuid.UUID `json:"event_id"`
	Version         int       `json:"version"`
	TrendName       string    `json:"trend_name"`
	GameTitle       string    `json:"game_title"`
	GameDescription string    `json:"game_description"`
	Genre           string    `json:"genre"`
	GameID          uuid.UUID `json:"game_id"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// GameCodeGeneratedEvent is the contract for the (not yet implemented) code
// generation stage.
type GameCodeGeneratedEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	Version     int       `json:"version"`
	GameID      uuid.UUID `json:"game_id"`
	HtmlContent string    `json:"html_content"`
	CssContent  string    `json:"css_content"`
	JsContent   string    `json:"js_content"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// GameAssetsGeneratedEvent is the contract for the (not yet implemented)
// asset generation stage. Assets maps asset name to a URL or encoded blob.
type GameAssetsGeneratedEvent struct {
	EventID    uuid.UUID         `json:"event_id"`
	Version    int               `json:"version"`
	GameID     uuid.UUID         `json:"game_id"`
	Assets     map[string]string `json:"assets"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// GameBuiltEvent is the contract for the (not yet implemented) build stage.
type GameBuiltEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	GameID     uuid.UUID `json:"game_id"`
	BuildPath  string    `json:"build_path"`
	OccurredAt time.Time `json:"occurred_at"`
}
