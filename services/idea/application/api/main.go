package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/trendforge/pkg/app"
	"github.com/ghuser/trendforge/services/idea/application/handlers"
	appsvcs "github.com/ghuser/trendforge/services/idea/application/services"
)

// IdeaRoutes registers idea endpoints on the provided chi router.
func IdeaRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/ideas", func(r chi.Router) {
			r.Get("/", handlers.NewListIdeasHandler(svcs).Execute)
			r.Post("/generate", handlers.NewGenerateIdeaHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetIdeaHandler(svcs).Execute)
		})
	})
}
