package domain

import (
	"context"

	"github.com/ghuser/trendforge/services/idea/domain/models"
)

// IdeaGenerator is the generation capability: it turns a trend string into a
// structured creative draft via an external call. The domain layer owns this
// interface; infrastructure implements it.
//
// Implementations classify their failures with the sentinel errors in this
// package: ErrGenerationUnavailable for timeouts/rate limits/transport
// failures (after exhausting their own bounded retry policy they convert to
// ErrGenerationExhausted), ErrGenerationInvalid for responses that do not
// parse into the required schema. The call must honor ctx cancellation so a
// stuck backend cannot hold a worker indefinitely.
type IdeaGenerator interface {
	Generate(ctx context.Context, trend string) (*models.IdeaDraft, error)
}
