package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/trendforge/pkg/app"
	"github.com/ghuser/trendforge/services/trend/application/handlers"
	appsvcs "github.com/ghuser/trendforge/services/trend/application/services"
)

// TrendRoutes registers trend endpoints on the provided chi router.
func TrendRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/trends", func(r chi.Router) {
			r.Post("/fetch", handlers.NewFetchTrendsHandler(svcs).Execute)
		})
	})
}
