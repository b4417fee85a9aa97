package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestDeadLetterTopic(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{TopicTrendDiscovered, "trend.discovered.deadletter"},
		{TopicIdeaGenerated, "idea.generated.deadletter"},
		{TopicGameBuilt, "game.built.deadletter"},
	}
	for _, tt := range tests {
		if got := DeadLetterTopic(tt.topic); got != tt.want {
			t.Errorf("DeadLetterTopic(%q) = %q, want %q", tt.topic, got, tt.want)
		}
	}
}

// The JSON field names below are the wire contract consumed by downstream
// stages; changing them is a breaking change requiring a version bump.
func TestTrendDiscoveredEvent_WireFormat(t *testing.T) {
	evt := TrendDiscoveredEvent{
		EventID:    uuid.MustParse("123e4567-e89b-12d3-a456-426614174000"),
		Version:    1,
		TrendName:  "AI Agents",
		OccurredAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"event_id", "version", "trend_name", "occurred_at"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("wire format missing %q", key)
		}
	}
	if raw["trend_name"] != "AI Agents" {
		t.Errorf("unexpected trend_name: %v", raw["trend_name"])
	}
}

func TestGameIdeaGeneratedEvent_WireFormat(t *testing.T) {
	evt := GameIdeaGeneratedEvent{
		EventID:         uuid.New(),
		Version:         1,
		TrendName:       "AI Agents",
		GameTitle:       "Agent Quest",
		GameDescription: "Herd your rogue AI agents back into the sandbox",
		Genre:           "Puzzle",
		GameID:          uuid.New(),
		OccurredAt:      time.Now().UTC(),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"event_id", "version", "trend_name", "game_title", "game_description", "genre", "game_id", "occurred_at"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("wire format missing %q", key)
		}
	}
}
