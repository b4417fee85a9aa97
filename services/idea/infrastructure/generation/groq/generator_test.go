package groq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ghuser/trendforge/pkg/config"
	"github.com/ghuser/trendforge/pkg/logger"
	"github.com/ghuser/trendforge/services/idea/domain"
)

func nopLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

func newTestGenerator(url string) *Generator {
	return New(&config.Config{
		GroqAPIURL:        url,
		GroqAPIKey:        "test-key",
		GroqModel:         "llama-3.3-70b-versatile",
		GenerationTimeout: 5 * time.Second,
	}, nopLogger())
}

// completionWith wraps content in a chat completions response body.
func completionWith(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	if err != nil {
		t.Fatalf("marshal completion: %v", err)
	}
	return body
}

const validIdeaJSON = `{"title":"Agent Quest","description":"Herd your rogue AI agents","genre":"Puzzle","platform":"Mobile"}`

func TestGenerate_CleanJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected Authorization header: %q", got)
		}
		w.Write(completionWith(t, validIdeaJSON)) //nolint:errcheck
	}))
	defer srv.Close()

	draft, err := newTestGenerator(srv.URL).Generate(context.Background(), "AI Agents")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Title != "Agent Quest" || draft.Genre != "Puzzle" || draft.Platform != "Mobile" {
		t.Errorf("unexpected draft: %+v", draft)
	}
}

func TestGenerate_StripsMarkdownFences(t *testing.T) {
	fenced := "```json\n" + validIdeaJSON + "\n```"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(completionWith(t, fenced)) //nolint:errcheck
	}))
	defer srv.Close()

	draft, err := newTestGenerator(srv.URL).Generate(context.Background(), "AI Agents")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Title != "Agent Quest" {
		t.Errorf("unexpected title: %q", draft.Title)
	}
}

func TestGenerate_InvalidContentIsPermanent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"non-JSON reply", "Sure! Here's a great game idea for you."},
		{"missing field", `{"title":"Agent Quest","description":"x","genre":"Puzzle"}`},
		{"empty field", `{"title":"","description":"x","genre":"Puzzle","platform":"Web"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.Write(completionWith(t, tt.content)) //nolint:errcheck
			}))
			defer srv.Close()

			_, err := newTestGenerator(srv.URL).Generate(context.Background(), "AI Agents")
			if !errors.Is(err, domain.ErrGenerationInvalid) {
				t.Fatalf("expected ErrGenerationInvalid, got %v", err)
			}
			if got := calls.Load(); got != 1 {
				t.Errorf("invalid content must not be retried, got %d calls", got)
			}
		})
	}
}

func TestGenerate_RetriesTransientThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write(completionWith(t, validIdeaJSON)) //nolint:errcheck
	}))
	defer srv.Close()

	draft, err := newTestGenerator(srv.URL).Generate(context.Background(), "AI Agents")
	if err != nil {
		t.Fatalf("expected success after transient failures, got %v", err)
	}
	if draft.Title != "Agent Quest" {
		t.Errorf("unexpected title: %q", draft.Title)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestGenerate_ExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestGenerator(srv.URL).Generate(context.Background(), "AI Agents")
	if !errors.Is(err, domain.ErrGenerationExhausted) {
		t.Fatalf("expected ErrGenerationExhausted, got %v", err)
	}
	if !domain.IsPermanentGeneration(err) {
		t.Error("exhaustion must classify as permanent")
	}
	if got := calls.Load(); got != maxAttempts {
		t.Errorf("expected %d attempts, got %d", maxAttempts, got)
	}
}

func TestGenerate_UnexpectedStatusIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestGenerator(srv.URL).Generate(context.Background(), "AI Agents")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if errors.Is(err, domain.ErrGenerationUnavailable) || errors.Is(err, domain.ErrGenerationExhausted) {
		t.Errorf("401 must not classify as transient/exhausted: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 attempt, got %d", got)
	}
}

func TestParseDraft(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"clean", validIdeaJSON, false},
		{"fenced", "```json\n" + validIdeaJSON + "\n```", false},
		{"bare fences", "```" + validIdeaJSON + "```", false},
		{"surrounding whitespace", "  \n" + validIdeaJSON + "\n  ", false},
		{"prose", "here you go", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft, err := parseDraft(tt.content)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrGenerationInvalid) {
					t.Fatalf("expected ErrGenerationInvalid, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if draft.Title != "Agent Quest" {
				t.Errorf("unexpected title: %q", draft.Title)
			}
		})
	}
}
