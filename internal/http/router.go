package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iEkal8fGe/warehouse/internal/http/handlers"
)

// NewRouter wires every endpoint under /api/v1. Admin-only routes sit in
// their own group; the external sync API is key-gated and never sees user
// tokens.
func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(LoginRateLimit)
			r.Post("/auth/login", handlers.LoginHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware)

			r.Get("/auth/me", handlers.MeHandler)
			r.Post("/auth/logout", handlers.LogoutHandler)

			r.Get("/products", handlers.ListProductsHandler)
			r.Get("/products/{id}", handlers.GetProductByIDHandler)

			r.Get("/inventory/my", handlers.MyInventoryHandler)
			r.Get("/inventory/warehouse/{id}", handlers.WarehouseInventoryHandler)

			r.Post("/supplies", handlers.CreateSupplyHandler)
			r.Get("/supplies/{id}", handlers.GetSupplyHandler)
			r.Delete("/supplies/{id}", handlers.DeleteSupplyHandler)
			r.Delete("/supply-items/{itemID}", handlers.DeleteSupplyItemHandler)
			r.Get("/warehouses/my/supplies", handlers.ListMySuppliesHandler)
			r.Get("/warehouses/{id}/supplies", handlers.ListWarehouseSuppliesHandler)

			r.Get("/orders/warehouse/my", handlers.ListMyWarehouseOrdersHandler)
			r.Get("/orders/warehouse/{id}", handlers.ListWarehouseOrdersHandler)
			r.Get("/orders/{id}", handlers.GetOrderHandler)
			r.Patch("/orders/{id}/ship", handlers.ShipOrderHandler)

			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin)

				r.Get("/users", handlers.ListUsersHandler)
				r.Post("/users", handlers.CreateUserHandler)
				r.Get("/users/{id}", handlers.GetUserByIDHandler)
				r.Patch("/users/{id}", handlers.UpdateUserHandler)
				r.Delete("/users/{id}", handlers.DeleteUserHandler)

				r.Get("/warehouses", handlers.ListWarehousesHandler)
				r.Post("/warehouses", handlers.CreateWarehouseHandler)
				r.Get("/warehouses/{id}", handlers.GetWarehouseByIDHandler)
				r.Patch("/warehouses/{id}", handlers.UpdateWarehouseHandler)
				r.Delete("/warehouses/{id}", handlers.DeleteWarehouseHandler)

				r.Post("/products", handlers.CreateProductHandler)
				r.Patch("/products/{id}", handlers.UpdateProductHandler)
				r.Delete("/products/{id}", handlers.DeleteProductHandler)

				r.Get("/orders", handlers.ListAllOrdersHandler)
			})
		})

		r.Route("/external/orders", func(r chi.Router) {
			r.Use(RequireAPIKey)

			r.Post("/sync", handlers.SyncExternalOrderHandler)
			r.Patch("/sync-status", handlers.SyncExternalOrderStatusHandler)
			r.Get("/sync/{externalOrderID}", handlers.GetExternalOrderHandler)
			r.Delete("/sync/{externalOrderID}", handlers.DeleteExternalOrderHandler)
		})
	})

	return r
}
