package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/shop-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers groups the HTTP handlers mounted by NewRouter
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Products *ProductHandler
	Basket   *BasketHandler
	Sales    *SalesHandler
}

// RouterOptions configures the router middleware
type RouterOptions struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter wires every route. Everything except /health and /login
// requires a resolvable credential.
func NewRouter(h Handlers, resolver middleware.RoleResolver, opts RouterOptions, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(opts.RequestTimeout))
	}

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-API-Key", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health.ServeHTTP)
	r.Post("/login", h.Auth.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(resolver))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Products.ListProducts)
			r.Get("/search", h.Products.ListProducts)
			r.Get("/count", h.Products.CountProducts)
			r.Post("/", h.Products.CreateProduct)
			r.Get("/{productId}", h.Products.GetProduct)
			r.Put("/{productId}", h.Products.UpdateProduct)
			r.Delete("/{productId}", h.Products.DeleteProduct)
		})

		r.Route("/basket", func(r chi.Router) {
			r.Get("/", h.Basket.GetBasket)
			r.Post("/", h.Basket.AddItem)
			r.Delete("/", h.Basket.ClearBasket)
			r.Put("/{productId}", h.Basket.SetItem)
			r.Delete("/{productId}", h.Basket.RemoveItem)
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", h.Sales.QuerySales)
			r.Get("/{year}/{bucket}", h.Sales.SalesSummary)
		})
	})

	return r
}
