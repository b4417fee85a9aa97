package handlers

import (
	"net/http"

	"github.com/ghuser/trendforge/pkg/errhttp"
	"github.com/ghuser/trendforge/pkg/httpx"
	appsvcs "github.com/ghuser/trendforge/services/trend/application/services"
)

// FetchTrendsResponse is returned by POST /trends/fetch.
type FetchTrendsResponse struct {
	Count  int      `json:"count"  example:"2"`
	Trends []string `json:"trends" example:"Quantum Computing,Sustainable Energy"`
	Failed []string `json:"failed,omitempty"`
} // @name FetchTrendsResponse

// FetchTrendsHandler handles POST /trends/fetch requests.
type FetchTrendsHandler struct {
	svc *appsvcs.Services
}

// NewFetchTrendsHandler returns a FetchTrendsHandler backed by the given services.
func NewFetchTrendsHandler(svc *appsvcs.Services) *FetchTrendsHandler {
	return &FetchTrendsHandler{svc: svc}
}

// Execute fetches trending topics and publishes one TrendDiscovered event per
// topic. Items whose publish failed are reported in the response; they do not
// block the rest of the batch.
//
//	@Summary		Fetch and publish trends
//	@Description	Fetches one batch of trending topics and publishes a TrendDiscovered event per topic
//	@Tags			trends
//	@Produce		json
//	@Success		200	{object}	FetchTrendsResponse
//	@Failure		502	{object}	ErrorResponse
//	@Router			/trends/fetch [post]
func (h *FetchTrendsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	published, failed, err := h.svc.Trend.FetchAndPublish(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, FetchTrendsResponse{
		Count:  len(published),
		Trends: published,
		Failed: failed,
	})
}

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"trend source unavailable"`
} // @name TrendErrorResponse
