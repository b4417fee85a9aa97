package domain

import (
	"context"
	"errors"
)

// Sentinel errors for the trend domain. Use errors.Is() to check these.
var (
	// ErrSourceUnavailable indicates the external trend source could not be
	// reached or returned an unusable response.
	ErrSourceUnavailable = errors.New("trend source unavailable")
)

// TrendSource is the capability producing raw trend strings. Each call
// fetches a fresh, finite batch of trending topics; the sequence is not
// restartable — callers fetch again for new observations.
//
// The trend stage has no idempotency requirement: every fetched item is a
// genuinely new observation and publishes its own TrendDiscovered event.
type TrendSource interface {
	FetchTrending(ctx context.Context) ([]string, error)
}
