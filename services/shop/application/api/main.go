package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/voiceshop/pkg/app"
	"github.com/ghuser/voiceshop/pkg/config"
	"github.com/ghuser/voiceshop/pkg/session"
	"github.com/ghuser/voiceshop/services/shop/application/handlers"
	appsvcs "github.com/ghuser/voiceshop/services/shop/application/services"
)

// ShopRoutes registers the shop endpoints on the provided chi router.
func ShopRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	env := &handlers.Env{
		Svcs:         svcs,
		Sessions:     session.NewManager(a.SessionStore, a.Config.SessionName, a.Logger),
		Log:          a.Logger,
		IsProduction: a.Config.Environment == config.EnvProduction,
	}
	Routes(r, env)
}

// Routes mounts the shop handlers backed by env.
func Routes(r chi.Router, env *handlers.Env) {
	r.Group(func(r chi.Router) {
		r.Get("/products", handlers.NewGetProductsHandler(env).Execute)
		r.Post("/resolve", handlers.NewPostResolveHandler(env).Execute)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", handlers.NewPostOrderHandler(env).Execute)
			r.Get("/last", handlers.NewGetLastOrderHandler(env).Execute)
			r.Get("/{id}", handlers.NewGetOrderHandler(env).Execute)
		})

		r.Route("/customer", func(r chi.Router) {
			r.Get("/", handlers.NewGetCustomerHandler(env).Execute)
			r.Put("/", handlers.NewPutCustomerHandler(env).Execute)
		})

		r.Delete("/session", handlers.NewDeleteSessionHandler(env).Execute)
	})
}
