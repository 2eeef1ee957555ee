package router

import (
	"net/http"

	"licenseshop/internal/handler"
	"licenseshop/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// Public routes are open; everything under /api/admin requires the API key.
func New(
	productHandler *handler.ProductHandler,
	catalogHandler *handler.CatalogHandler,
	orderHandler *handler.OrderHandler,
	licenseHandler *handler.LicenseHandler,
	cartHandler *handler.CartHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", productHandler.GetAll)
		r.Get("/products/{id}", productHandler.Get)
		r.Get("/products/{id}/variants", productHandler.ListVariants)
		r.Get("/products/{id}/combinations", productHandler.ListCombinations)
		r.Post("/products/{id}/price", productHandler.ResolvePrice)

		r.Post("/orders", orderHandler.Create)
		r.Get("/orders/{id}", orderHandler.GetByID)

		r.Get("/cart", cartHandler.Get)
		r.Delete("/cart", cartHandler.Clear)
		r.Post("/cart/items", cartHandler.AddItem)
		r.Patch("/cart/items", cartHandler.UpdateItem)
		r.Delete("/cart/items", cartHandler.RemoveItem)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(apiKey, logger))

			r.Post("/variants", catalogHandler.CreateVariant)
			r.Patch("/variants/{id}", catalogHandler.UpdateVariant)
			r.Delete("/variants/{id}", catalogHandler.DeleteVariant)

			r.Get("/products/{id}/skus", catalogHandler.ListSKUs)
			r.Put("/products/{id}/skus", catalogHandler.ReplaceSKUs)
			r.Post("/skus", catalogHandler.CreateSKU)
			r.Patch("/skus/{id}", catalogHandler.UpdateSKU)
			r.Delete("/skus/{id}", catalogHandler.DeleteSKU)

			r.Get("/orders", orderHandler.GetAll)
			r.Patch("/orders/{id}/status", orderHandler.UpdateStatus)

			r.Get("/licenses", licenseHandler.GetAll)
			r.Get("/licenses/expiring", licenseHandler.Expiring)
			r.Get("/licenses/{id}", licenseHandler.GetByID)
			r.Post("/licenses", licenseHandler.Create)
			r.Patch("/licenses/{id}", licenseHandler.Update)
			r.Delete("/licenses/{id}", licenseHandler.Delete)
		})
	})

	return r
}
