// Package trendsource provides TrendSource implementations.
package trendsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ghuser/trendforge/services/trend/domain"
)

const fetchTimeout = 10 * time.Second

// HTTPSource fetches trending topics from an external endpoint returning a
// JSON string array (the shape the trends scraper exposes).
type HTTPSource struct {
	client *http.Client
	url    string
}

// NewHTTPSource returns an HTTPSource for the given endpoint.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{client: &http.Client{}, url: url}
}

// FetchTrending fetches one batch of trends. Blank entries are dropped.
func (s *HTTPSource) FetchTrending(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("trendsource: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrSourceUnavailable, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", domain.ErrSourceUnavailable, err)
	}

	var trends []string
	if err := json.Unmarshal(raw, &trends); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrSourceUnavailable, err)
	}

	out := make([]string, 0, len(trends))
	for _, t := range trends {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}
