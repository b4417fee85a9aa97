package services

import (
	"github.com/ghuser/trendforge/pkg/app"
	"github.com/ghuser/trendforge/pkg/cache"
	"github.com/ghuser/trendforge/services/idea/infrastructure/generation/groq"
	"github.com/ghuser/trendforge/services/idea/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Idea *IdeaService
}

// New wires all idea application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewGameIdeaRepository(a.Db, a.EventBus)
	generator := groq.New(a.Config, a.Logger)
	ideaCache := cache.NewIdeaCache(a.Redis)
	return &Services{
		Idea: NewIdeaService(repo, generator, ideaCache, a.Logger),
	}
}
