package trendsource

import "context"

// defaultTrends is the development stand-in for a real trends scraper.
var defaultTrends = []string{
	"AI Agents",
	"SpaceX Starship",
	"Quantum Computing",
	"Sustainable Energy",
}

// StaticSource serves a fixed batch of trends. Used in development and tests
// when no TREND_SOURCE_URL is configured.
type StaticSource struct {
	trends []string
}

// NewStaticSource returns a StaticSource serving the given trends, or the
// built-in development batch when none are given.
func NewStaticSource(trends ...string) *StaticSource {
	if len(trends) == 0 {
		trends = defaultTrends
	}
	return &StaticSource{trends: trends}
}

// FetchTrending returns a copy of the configured batch.
func (s *StaticSource) FetchTrending(_ context.Context) ([]string, error) {
	out := make([]string, len(s.trends))
	copy(out, s.trends)
	return out, nil
}
