package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/trendforge/pkg/config"
	"github.com/ghuser/trendforge/pkg/logger"
	pipeline "github.com/ghuser/trendforge/services/shared/events"
	"github.com/ghuser/trendforge/services/trend/domain"
	"github.com/ghuser/trendforge/services/trend/infrastructure/trendsource"
)

func nopLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

// recordingBus captures published messages per topic; failOn trends fail.
type recordingBus struct {
	mu     sync.Mutex
	topics map[string][]*message.Message
	failOn map[string]bool
}

func newRecordingBus() *recordingBus {
	return &recordingBus{topics: map[string][]*message.Message{}, failOn: map[string]bool{}}
}

func (b *recordingBus) Publish(_ context.Context, topic string, msgs ...*message.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, msg := range msgs {
		var evt pipeline.TrendDiscoveredEvent
		if err := json.Unmarshal(msg.Payload, &evt); err == nil && b.failOn[evt.TrendName] {
			return errors.New("publish failed")
		}
	}
	b.topics[topic] = append(b.topics[topic], msgs...)
	return nil
}

type failingSource struct{ err error }

func (s *failingSource) FetchTrending(_ context.Context) ([]string, error) {
	return nil, s.err
}

func TestFetchAndPublish_PublishesOneEventPerTrend(t *testing.T) {
	bus := newRecordingBus()
	svc := NewTrendService(
		trendsource.NewStaticSource("Quantum Computing", "Sustainable Energy"),
		bus, nopLogger(),
	)

	published, failed, err := svc.FetchAndPublish(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(published) != 2 {
		t.Fatalf("expected 2 published trends, got %d", len(published))
	}
	if len(failed) != 0 {
		t.Errorf("expected no failures, got %v", failed)
	}

	msgs := bus.topics[pipeline.TopicTrendDiscovered]
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages on %s, got %d", pipeline.TopicTrendDiscovered, len(msgs))
	}

	wantTrends := map[string]bool{"Quantum Computing": true, "Sustainable Energy": true}
	for _, msg := range msgs {
		var evt pipeline.TrendDiscoveredEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			t.Fatalf("payload does not unmarshal: %v", err)
		}
		if evt.EventID == uuid.Nil {
			t.Error("expected a publish-time event id")
		}
		if evt.Version != 1 {
			t.Errorf("expected version 1, got %d", evt.Version)
		}
		if evt.OccurredAt.IsZero() {
			t.Error("expected occurred_at to be set")
		}
		if !wantTrends[evt.TrendName] {
			t.Errorf("unexpected trend in event: %q", evt.TrendName)
		}
		delete(wantTrends, evt.TrendName)
		if msg.Metadata.Get("event_id") != evt.EventID.String() {
			t.Error("event_id metadata does not match payload")
		}
	}
	if len(wantTrends) != 0 {
		t.Errorf("trends never published: %v", wantTrends)
	}
}

func TestFetchAndPublish_SourceFailure(t *testing.T) {
	srcErr := fmt.Errorf("%w: status 503", domain.ErrSourceUnavailable)
	svc := NewTrendService(&failingSource{err: srcErr}, newRecordingBus(), nopLogger())

	_, _, err := svc.FetchAndPublish(context.Background())
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestFetchAndPublish_PartialPublishFailure(t *testing.T) {
	bus := newRecordingBus()
	bus.failOn["SpaceX Starship"] = true
	svc := NewTrendService(
		trendsource.NewStaticSource("AI Agents", "SpaceX Starship", "Quantum Computing"),
		bus, nopLogger(),
	)

	published, failed, err := svc.FetchAndPublish(context.Background())
	if err != nil {
		t.Fatalf("partial failure must not error the batch: %v", err)
	}
	if len(published) != 2 {
		t.Errorf("expected 2 published, got %v", published)
	}
	if len(failed) != 1 || failed[0] != "SpaceX Starship" {
		t.Errorf("expected SpaceX Starship to be reported failed, got %v", failed)
	}
	if got := len(bus.topics[pipeline.TopicTrendDiscovered]); got != 2 {
		t.Errorf("expected 2 delivered messages, got %d", got)
	}
}
