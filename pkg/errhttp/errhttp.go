// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/trendforge/pkg/httpx"
	ideadomain "github.com/ghuser/trendforge/services/idea/domain"
	trenddomain "github.com/ghuser/trendforge/services/trend/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ideadomain.ErrIdeaNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, ideadomain.ErrIdeaAlreadyExists),
		errors.Is(err, ideadomain.ErrIdeaConflict):
		return http.StatusConflict // 409
	case errors.Is(err, ideadomain.ErrInvalidIdea),
		errors.Is(err, ideadomain.ErrEmptyTrend):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, ideadomain.ErrGenerationInvalid),
		errors.Is(err, ideadomain.ErrGenerationExhausted),
		errors.Is(err, trenddomain.ErrSourceUnavailable):
		return http.StatusBadGateway // 502
	case errors.Is(err, ideadomain.ErrGenerationUnavailable):
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
