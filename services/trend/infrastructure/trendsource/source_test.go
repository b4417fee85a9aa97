package trendsource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/trendforge/services/trend/domain"
)

func TestStaticSource_DefaultBatch(t *testing.T) {
	trends, err := NewStaticSource().FetchTrending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trends) != len(defaultTrends) {
		t.Fatalf("expected %d trends, got %d", len(defaultTrends), len(trends))
	}
	// Mutating the returned slice must not touch the source.
	trends[0] = "mutated"
	again, _ := NewStaticSource().FetchTrending(context.Background())
	if again[0] == "mutated" {
		t.Error("FetchTrending must return a copy")
	}
}

func TestStaticSource_CustomBatch(t *testing.T) {
	trends, err := NewStaticSource("One", "Two").FetchTrending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trends) != 2 || trends[0] != "One" {
		t.Errorf("unexpected trends: %v", trends)
	}
}

func TestHTTPSource_FetchTrending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`["AI Agents", "  ", "SpaceX Starship", ""]`)) //nolint:errcheck
	}))
	defer srv.Close()

	trends, err := NewHTTPSource(srv.URL).FetchTrending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trends) != 2 {
		t.Fatalf("expected blank entries dropped, got %v", trends)
	}
	if trends[0] != "AI Agents" || trends[1] != "SpaceX Starship" {
		t.Errorf("unexpected trends: %v", trends)
	}
}

func TestHTTPSource_ErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"not json", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("<html>busy</html>")) //nolint:errcheck
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewHTTPSource(srv.URL).FetchTrending(context.Background())
			if !errors.Is(err, domain.ErrSourceUnavailable) {
				t.Fatalf("expected ErrSourceUnavailable, got %v", err)
			}
		})
	}
}

func TestHTTPSource_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing listening anymore

	_, err := NewHTTPSource(srv.URL).FetchTrending(context.Background())
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}
