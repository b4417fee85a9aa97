package services

import (
	"github.com/ghuser/trendforge/pkg/app"
	"github.com/ghuser/trendforge/services/trend/domain"
	"github.com/ghuser/trendforge/services/trend/infrastructure/trendsource"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Trend *TrendService
}

// New wires the trend service with infrastructure from the Application
// container. With no TREND_SOURCE_URL configured the static development
// source is used.
func New(a *app.Application) *Services {
	var source domain.TrendSource
	if a.Config.TrendSourceURL != "" {
		source = trendsource.NewHTTPSource(a.Config.TrendSourceURL)
	} else {
		source = trendsource.NewStaticSource()
	}
	return &Services{
		Trend: NewTrendService(source, a.EventBus, a.Logger),
	}
}
