// Package consumers holds the idea stage's event-bus handlers.
package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/trendforge/pkg/events"
	"github.com/ghuser/trendforge/pkg/logger"
	appsvcs "github.com/ghuser/trendforge/services/idea/application/services"
	ideadomain "github.com/ghuser/trendforge/services/idea/domain"
	pipeline "github.com/ghuser/trendforge/services/shared/events"
)

// TrendConsumer processes TrendDiscovered messages: one generation call, one
// persisted artifact, one GameIdeaGenerated event per trend, no matter how
// often the message is redelivered.
//
// Error contract with the bus: failures that retrying cannot fix — malformed
// payloads, unparseable generation responses, exhausted generation retries —
// are wrapped with events.Permanent so the message dead-letters immediately.
// Everything else (store or bus unreachable) returns plain, leaving the
// message to the bus's own retry/redelivery machinery.
type TrendConsumer struct {
	svc *appsvcs.IdeaService
	log logger.Logger
}

// NewTrendConsumer returns a TrendConsumer backed by the given service.
func NewTrendConsumer(svc *appsvcs.IdeaService, log logger.Logger) *TrendConsumer {
	return &TrendConsumer{svc: svc, log: log}
}

// Handle is the bus handler for the trend.discovered topic.
func (c *TrendConsumer) Handle(ctx context.Context, msg *message.Message) error {
	var evt pipeline.TrendDiscoveredEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return events.Permanent(fmt.Errorf("unmarshal trend discovered: %w", err))
	}
	if strings.TrimSpace(evt.TrendName) == "" {
		return events.Permanent(fmt.Errorf("%w: event %s", ideadomain.ErrEmptyTrend, evt.EventID))
	}

	c.log.InfoContext(ctx, "received trend", "trend", evt.TrendName, "event_id", evt.EventID)

	idea, created, err := c.svc.CreateForTrend(ctx, evt.TrendName)
	if err != nil {
		if isPermanent(err) {
			c.log.ErrorContext(ctx, "permanent failure creating game idea, dead-lettering",
				"trend", evt.TrendName, "error", err)
			return events.Permanent(err)
		}
		c.log.WarnContext(ctx, "transient failure creating game idea, leaving for redelivery",
			"trend", evt.TrendName, "error", err)
		return err
	}

	if created {
		c.log.InfoContext(ctx, "created game idea",
			"trend", evt.TrendName, "game_id", idea.ID, "title", idea.Title)
	} else {
		c.log.InfoContext(ctx, "trend already processed, redelivery acknowledged",
			"trend", evt.TrendName, "game_id", idea.ID)
	}
	return nil
}

// isPermanent classifies service failures retrying cannot fix.
func isPermanent(err error) bool {
	return ideadomain.IsPermanentGeneration(err) ||
		errors.Is(err, ideadomain.ErrEmptyTrend) ||
		errors.Is(err, ideadomain.ErrInvalidIdea) ||
		errors.Is(err, ideadomain.ErrIdeaConflict)
}
