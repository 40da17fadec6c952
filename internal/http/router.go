package http

import (
	"log/slog"
	"net/http"

	"github.com/fjod/chess_academy/internal/auth"
	"github.com/fjod/chess_academy/internal/catalog"
	"github.com/fjod/chess_academy/internal/config"
	"github.com/fjod/chess_academy/internal/logger"
	"github.com/fjod/chess_academy/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Storefront is everything the API needs from the service layer.
type Storefront interface {
	AccountService
	ProfileService
	CartService
	CheckoutService
	BookingService
	ProgressService
	Catalog() *catalog.Catalog
}

type Deps struct {
	Service  Storefront
	Auth     auth.Provider
	Gatherer prometheus.Gatherer
	Log      *slog.Logger
}

func NewRouter(cfg config.HTTP, deps Deps) http.Handler {
	authHandler := NewAuthHandler(deps.Auth, deps.Service, deps.Log)
	profileHandler := NewProfileHandler(deps.Service, deps.Log)
	cartHandler := NewCartHandler(deps.Service, deps.Log)
	checkoutHandler := NewCheckoutHandler(deps.Service, deps.Log)
	bookingHandler := NewBookingHandler(deps.Service, deps.Log)
	progressHandler := NewProgressHandler(deps.Service, deps.Log)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware(deps.Log))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.RequestSize(cfg.MaxRequestBodySize))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         600,
	}))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))

	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/"
	}

	r.Route(basePath, func(r chi.Router) {
		r.Get("/catalog", catalogHandler(deps.Service.Catalog()))
		r.Get("/trainers", bookingHandler.Trainers)
		r.Post("/auth/signup", authHandler.SignUp)
		r.Post("/auth/signin", authHandler.SignIn)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(deps.Auth))

			r.Post("/auth/signout", authHandler.SignOut)
			r.Get("/auth/session", authHandler.Session)

			r.Get("/profile", profileHandler.GetProfile)
			r.Put("/profile", profileHandler.UpdateProfile)
			r.Get("/subscription", profileHandler.GetSubscription)
			r.Post("/subscription/activate", profileHandler.ActivateSubscription)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Post("/add", cartHandler.AddItem)
				r.Delete("/", cartHandler.ClearCart)
				r.Delete("/{id}", cartHandler.RemoveItem)
			})

			r.Post("/checkout", checkoutHandler.Checkout)
			r.Get("/library", checkoutHandler.Library)
			r.Get("/purchases", checkoutHandler.Purchases)

			r.Post("/seed-trainers", bookingHandler.SeedTrainers)
			r.Route("/bookings", func(r chi.Router) {
				r.Get("/", bookingHandler.List)
				r.Post("/", bookingHandler.Create)
				r.Delete("/{id}", bookingHandler.Cancel)
			})

			r.Get("/progress/{type}", progressHandler.Get)
			r.Post("/progress/{type}", progressHandler.Save)
		})
	})

	return otelhttp.NewHandler(r, "storefront")
}
