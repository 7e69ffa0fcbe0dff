package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockroomhq/stockroom-backend/api/controllers"
	"github.com/stockroomhq/stockroom-backend/api/middleware"
	products "github.com/stockroomhq/stockroom-backend/internal/products"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/metrics"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	ProductService products.Service
	Registry       *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	httpMetrics := metrics.NewHTTPMetrics(registry)

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.Metrics(httpMetrics),
		middleware.CORS(deps.Config.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.DB))
	})

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/products", func(r chi.Router) {
		r.Post("/", controllers.CreateProduct(deps.ProductService, deps.Logger))
		r.Get("/", controllers.ListProducts(deps.ProductService, deps.Logger))
		r.Get("/{productId}", controllers.GetProduct(deps.ProductService, deps.Logger))
	})

	return r
}
