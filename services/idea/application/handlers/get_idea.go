package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/trendforge/pkg/errhttp"
	"github.com/ghuser/trendforge/pkg/httpx"
	appsvcs "github.com/ghuser/trendforge/services/idea/application/services"
	"github.com/ghuser/trendforge/services/idea/domain/repositories"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// GetIdeaHandler handles GET /ideas/{id} requests.
type GetIdeaHandler struct {
	svc *appsvcs.Services
}

// NewGetIdeaHandler returns a GetIdeaHandler backed by the given services.
func NewGetIdeaHandler(svc *appsvcs.Services) *GetIdeaHandler {
	return &GetIdeaHandler{svc: svc}
}

// Execute retrieves one game idea by its id.
//
//	@Summary	Get game idea
//	@Tags		ideas
//	@Produce	json
//	@Param		id	path		string	true	"Game idea id (uuid)"
//	@Success	200	{object}	GameIdeaResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/ideas/{id} [get]
func (h *GetIdeaHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid idea id")
		return
	}

	idea, err := h.svc.Idea.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(idea))
}

// ListIdeasResponse is the paginated response for GET /ideas.
type ListIdeasResponse struct {
	Ideas []GameIdeaResponse `json:"ideas"`
	Total int                `json:"total" example:"42"`
} // @name ListIdeasResponse

// ListIdeasHandler handles GET /ideas requests.
type ListIdeasHandler struct {
	svc *appsvcs.Services
}

// NewListIdeasHandler returns a ListIdeasHandler backed by the given services.
func NewListIdeasHandler(svc *appsvcs.Services) *ListIdeasHandler {
	return &ListIdeasHandler{svc: svc}
}

// Execute lists game ideas, newest first.
//
//	@Summary	List game ideas
//	@Tags		ideas
//	@Produce	json
//	@Param		limit	query		int	false	"Max results (default 20, cap 100)"
//	@Param		offset	query		int	false	"Results to skip"
//	@Success	200		{object}	ListIdeasResponse
//	@Router		/ideas [get]
func (h *ListIdeasHandler) Execute(w http.ResponseWriter, r *http.Request) {
	opts := repositories.QueryOpts{Limit: defaultListLimit}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		opts.Limit = min(v, maxListLimit)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		opts.Offset = v
	}

	ideas, total, err := h.svc.Idea.List(r.Context(), opts)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := ListIdeasResponse{Ideas: make([]GameIdeaResponse, len(ideas)), Total: total}
	for i, idea := range ideas {
		resp.Ideas[i] = toResponse(idea)
	}
	httpx.JSON(w, http.StatusOK, resp)
}
