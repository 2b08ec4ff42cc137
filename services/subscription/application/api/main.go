package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/newsletter/pkg/app"
	"github.com/ghuser/newsletter/pkg/errhttp"
	"github.com/ghuser/newsletter/pkg/logger"
	"github.com/ghuser/newsletter/services/subscription/application/handlers"
	appsvcs "github.com/ghuser/newsletter/services/subscription/application/services"
)

// SubscriptionRoutes registers the subscription endpoints at the router root.
func SubscriptionRoutes(r chi.Router, a *app.Application) {
	errs := errhttp.Responder{Log: a.Logger, Production: a.Config.IsProduction()}
	Mount(r, appsvcs.New(a), errs, a.Logger)
}

// Mount registers the handlers on r using already-built services.
func Mount(r chi.Router, svcs *appsvcs.Services, errs errhttp.Responder, log logger.Logger) {
	r.Route("/subscriptions", func(r chi.Router) {
		r.Post("/", handlers.NewPostSubscriptionHandler(svcs, errs).Execute)
		r.Get("/confirm", handlers.NewGetSubscriptionConfirmHandler(svcs, errs).Execute)
		r.Get("/{id}", handlers.NewGetSubscriberHandler(svcs, errs).Execute)
	})
	r.Post("/login", handlers.NewPostLoginHandler(log).Execute)
}
