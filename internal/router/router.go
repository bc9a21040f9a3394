package router

import (
	"net/http"

	"cakeshop/internal/handler"
	"cakeshop/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	categoryHandler *handler.CategoryHandler,
	customerHandler *handler.CustomerHandler,
	orderHandler *handler.OrderHandler,
	accountHandler *handler.AccountHandler,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", productHandler.List)
		r.Post("/", productHandler.Create)
		r.Get("/featured", productHandler.Featured)
		r.Get("/bestsellers", productHandler.Bestsellers)
		r.Get("/slug/{slug}", productHandler.GetBySlug)
		r.Get("/{id}", productHandler.GetByID)
		r.Put("/{id}", productHandler.Update)
		r.Delete("/{id}", productHandler.Delete)
	})

	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", categoryHandler.List)
		r.Post("/", categoryHandler.Create)
		r.Get("/featured", categoryHandler.Featured)
		r.Get("/parents", categoryHandler.Parents)
		r.Get("/slug/{slug}", categoryHandler.GetBySlug)
		r.Get("/{id}", categoryHandler.GetByID)
		r.Get("/{id}/children", categoryHandler.Children)
		r.Put("/{id}", categoryHandler.Update)
		r.Delete("/{id}", categoryHandler.Delete)
	})

	r.Route("/api/customers", func(r chi.Router) {
		r.Get("/", customerHandler.List)
		r.Post("/", customerHandler.Create)
		r.Post("/login", customerHandler.Login)
		r.Get("/statistics", customerHandler.Statistics)
		r.Get("/{id}", customerHandler.GetByID)
		r.Get("/{id}/orders", orderHandler.CustomerOrders)
		r.Put("/{id}", customerHandler.Update)
		r.Delete("/{id}", customerHandler.Delete)
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", orderHandler.List)
		r.Post("/", orderHandler.Create)
		r.Get("/statistics", orderHandler.Statistics)
		r.Get("/{id}", orderHandler.GetByID)
		r.Put("/{id}", orderHandler.Update)
		r.Patch("/{id}/status", orderHandler.UpdateStatus)
		r.Patch("/{id}/payment-status", orderHandler.UpdatePaymentStatus)
		r.Delete("/{id}", orderHandler.Delete)
	})

	r.Route("/api/accounts", func(r chi.Router) {
		r.Get("/", accountHandler.List)
		r.Post("/", accountHandler.Create)
		r.Post("/login", accountHandler.Login)
	})

	return r
}
