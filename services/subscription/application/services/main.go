package services

import (
	"github.com/ghuser/newsletter/pkg/app"
	"github.com/ghuser/newsletter/pkg/cache"
	"github.com/ghuser/newsletter/services/subscription/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Subscription *SubscriptionService
}

// New wires the subscription services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewSubscriberRepository(a.Db, a.EventBus)

	var sc SubscriberCache
	if c := cache.NewSubscriberCache(a.Redis); c != nil {
		sc = c
	}

	return &Services{
		Subscription: NewSubscriptionService(repo, sc, a.Metrics, a.Logger, a.Config.BaseURL),
	}
}
