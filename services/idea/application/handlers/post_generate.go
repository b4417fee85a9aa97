package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/trendforge/pkg/errhttp"
	"github.com/ghuser/trendforge/pkg/httpx"
	pkgvalidator "github.com/ghuser/trendforge/pkg/validator"
	appsvcs "github.com/ghuser/trendforge/services/idea/application/services"
	"github.com/ghuser/trendforge/services/idea/domain/models"
)

// GenerateIdeaRequest is the request body for POST /ideas/generate.
type GenerateIdeaRequest struct {
	Trend string `json:"trend" validate:"required,min=2,max=255" example:"AI Agents"`
} // @name GenerateIdeaRequest

// GameIdeaResponse is the artifact representation returned by the idea endpoints.
type GameIdeaResponse struct {
	ID          uuid.UUID `json:"id"          example:"123e4567-e89b-12d3-a456-426614174000"`
	Title       string    `json:"title"       example:"Agent Quest"`
	Description string    `json:"description" example:"Herd your rogue AI agents back into the sandbox"`
	Genre       string    `json:"genre"       example:"Puzzle"`
	Platform    string    `json:"platform"    example:"Mobile"`
	TrendTopic  string    `json:"trend_topic" example:"AI Agents"`
	CreatedAt   time.Time `json:"created_at"  example:"2024-01-15T10:30:00Z"`
} // @name GameIdeaResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"game idea not found"`
} // @name ErrorResponse

// GenerateIdeaHandler handles POST /ideas/generate requests.
type GenerateIdeaHandler struct {
	svc *appsvcs.Services
}

// NewGenerateIdeaHandler returns a GenerateIdeaHandler backed by the given services.
func NewGenerateIdeaHandler(svc *appsvcs.Services) *GenerateIdeaHandler {
	return &GenerateIdeaHandler{svc: svc}
}

// Execute generates (or returns the already-generated) game idea for a trend.
// No retry happens on this path — retry is an asynchronous-pipeline concern.
//
//	@Summary		Generate game idea
//	@Description	Generates a game idea for the given trend; returns the existing artifact if the trend was already processed
//	@Tags			ideas
//	@Accept			json
//	@Produce		json
//	@Param			request	body		GenerateIdeaRequest	true	"Trend to generate for"
//	@Success		200		{object}	GameIdeaResponse	"Idea already existed"
//	@Success		201		{object}	GameIdeaResponse	"Idea newly created"
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Router			/ideas/generate [post]
func (h *GenerateIdeaHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[GenerateIdeaRequest](w, r)
	if !ok {
		return
	}

	idea, created, err := h.svc.Idea.CreateForTrend(r.Context(), req.Trend)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	httpx.JSON(w, status, toResponse(idea))
}

func toResponse(idea *models.GameIdea) GameIdeaResponse {
	return GameIdeaResponse{
		ID:          idea.ID,
		Title:       idea.Title,
		Description: idea.Description,
		Genre:       idea.Genre,
		Platform:    idea.Platform,
		TrendTopic:  idea.TrendTopic,
		CreatedAt:   idea.CreatedAt,
	}
}
