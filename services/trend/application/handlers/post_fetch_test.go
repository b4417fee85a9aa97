package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/trendforge/pkg/config"
	"github.com/ghuser/trendforge/pkg/logger"
	appsvcs "github.com/ghuser/trendforge/services/trend/application/services"
	"github.com/ghuser/trendforge/services/trend/domain"
	"github.com/ghuser/trendforge/services/trend/infrastructure/trendsource"
)

func nopLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

type nopBus struct{ err error }

func (b *nopBus) Publish(_ context.Context, _ string, _ ...*message.Message) error {
	return b.err
}

type downSource struct{}

func (downSource) FetchTrending(_ context.Context) ([]string, error) {
	return nil, domain.ErrSourceUnavailable
}

func newHandler(source domain.TrendSource, bus appsvcs.Publisher) *FetchTrendsHandler {
	return NewFetchTrendsHandler(&appsvcs.Services{
		Trend: appsvcs.NewTrendService(source, bus, nopLogger()),
	})
}

func TestFetchTrends_Success(t *testing.T) {
	h := newHandler(trendsource.NewStaticSource("AI Agents", "SpaceX Starship"), &nopBus{})

	w := httptest.NewRecorder()
	h.Execute(w, httptest.NewRequest(http.MethodPost, "/trends/fetch", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	var resp FetchTrendsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 || len(resp.Trends) != 2 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(resp.Failed) != 0 {
		t.Errorf("expected no failures, got %v", resp.Failed)
	}
}

func TestFetchTrends_SourceDown(t *testing.T) {
	h := newHandler(downSource{}, &nopBus{})

	w := httptest.NewRecorder()
	h.Execute(w, httptest.NewRequest(http.MethodPost, "/trends/fetch", nil))

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 when the source is down, got %d", w.Code)
	}
}

func TestFetchTrends_PublishFailureReported(t *testing.T) {
	h := newHandler(trendsource.NewStaticSource("AI Agents"), &nopBus{err: context.DeadlineExceeded})

	w := httptest.NewRecorder()
	h.Execute(w, httptest.NewRequest(http.MethodPost, "/trends/fetch", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("publish failure must not fail the request, got %d", w.Code)
	}
	var resp FetchTrendsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("expected count 0, got %d", resp.Count)
	}
	if len(resp.Failed) != 1 || resp.Failed[0] != "AI Agents" {
		t.Errorf("expected AI Agents reported failed, got %v", resp.Failed)
	}
}
