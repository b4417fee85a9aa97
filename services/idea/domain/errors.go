package domain

import "errors"

// Sentinel errors for the idea domain. Use errors.Is() to check these.
var (
	// ErrIdeaNotFound indicates the requested game idea does not exist.
	ErrIdeaNotFound = errors.New("game idea not found")

	// ErrIdeaAlreadyExists indicates an idea was already persisted for the
	// same trend (or id). Consumers treat this as idempotent success.
	ErrIdeaAlreadyExists = errors.New("game idea already exists")

	// ErrIdeaConflict indicates an existing id holds divergent content.
	// A data-integrity anomaly: the pipeline never regenerates for an
	// existing id, so this should not occur in normal operation.
	ErrIdeaConflict = errors.New("game idea content conflict")

	// ErrInvalidIdea indicates the idea violates domain constraints.
	ErrInvalidIdea = errors.New("invalid game idea")

	// ErrEmptyTrend indicates the triggering trend name is empty or blank.
	ErrEmptyTrend = errors.New("trend name is empty")
)

// Generation failure classes. The consumer maps these onto the bus's
// retry/dead-letter machinery: transient failures are retried, permanent
// ones are dead-lettered without retry.
var (
	// ErrGenerationInvalid is permanent: the external response did not parse
	// into the required schema (missing fields, non-JSON content).
	ErrGenerationInvalid = errors.New("generation response invalid")

	// ErrGenerationUnavailable is transient: timeout, rate limit, or
	// transport failure reaching the generation backend.
	ErrGenerationUnavailable = errors.New("generation backend unavailable")

	// ErrGenerationExhausted is permanent: transient retries ran out.
	ErrGenerationExhausted = errors.New("generation retries exhausted")
)

// IsPermanentGeneration reports whether err is a generation failure that
// retrying cannot fix.
func IsPermanentGeneration(err error) bool {
	return errors.Is(err, ErrGenerationInvalid) || errors.Is(err, ErrGenerationExhausted)
}
