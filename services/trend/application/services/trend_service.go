package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/trendforge/pkg/logger"
	pipeline "github.com/ghuser/trendforge/services/shared/events"
	"github.com/ghuser/trendforge/services/trend/domain"
)

// Publisher is the slice of the event bus the trend stage needs.
// *events.EventBus satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// TrendService fetches trending topics and publishes one TrendDiscovered
// event per topic. Publishing is per-item: a failed publish is recorded and
// skipped so it never blocks the rest of the batch.
type TrendService struct {
	source domain.TrendSource
	bus    Publisher
	log    logger.Logger
}

// NewTrendService returns a TrendService wired with the given source and bus.
func NewTrendService(source domain.TrendSource, bus Publisher, log logger.Logger) *TrendService {
	return &TrendService{source: source, bus: bus, log: log}
}

// FetchAndPublish fetches one batch from the source and publishes each trend
// individually. Returns the published trend names and the names whose publish
// failed. The error is non-nil only when the fetch itself failed — partial
// publish failure is reported through the failed slice, not the error.
func (s *TrendService) FetchAndPublish(ctx context.Context) (published, failed []string, err error) {
	trends, err := s.source.FetchTrending(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch trends: %w", err)
	}

	s.log.InfoContext(ctx, "fetched trends", "count", len(trends))

	for _, trend := range trends {
		if err := s.publishDiscovered(ctx, trend); err != nil {
			s.log.ErrorContext(ctx, "failed to publish trend, continuing with batch",
				"trend", trend, "error", err)
			failed = append(failed, trend)
			continue
		}
		published = append(published, trend)
	}
	return published, failed, nil
}

func (s *TrendService) publishDiscovered(ctx context.Context, trend string) error {
	event := pipeline.TrendDiscoveredEvent{
		EventID:    uuid.New(),
		Version:    1,
		TrendName:  trend,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	return s.bus.Publish(ctx, pipeline.TopicTrendDiscovered, msg)
}
