package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inkwellpress/inkwell-backend/api/controllers"
	"github.com/inkwellpress/inkwell-backend/api/middleware"
	"github.com/inkwellpress/inkwell-backend/internal/books"
	"github.com/inkwellpress/inkwell-backend/internal/cart"
	"github.com/inkwellpress/inkwell-backend/internal/contact"
	"github.com/inkwellpress/inkwell-backend/internal/diagnostics"
	"github.com/inkwellpress/inkwell-backend/internal/payments"
	"github.com/inkwellpress/inkwell-backend/pkg/config"
	"github.com/inkwellpress/inkwell-backend/pkg/logger"
	"github.com/inkwellpress/inkwell-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisP controllers.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	promGatherer prometheus.Gatherer,
	booksService books.Service,
	cartService cart.Service,
	contactService contact.Service,
	diagnosticsService diagnostics.Service,
	paymentsService payments.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if promGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/books", func(r chi.Router) {
			r.Get("/", controllers.BookList(booksService, logg))
			r.Get("/{bookId}", controllers.BookDetail(booksService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.CartSession(cfg.Cart, logg))
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, booksService, logg))
			r.Patch("/items/{itemId}", controllers.CartUpdateItem(cartService, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(cartService, logg))
			r.Post("/visibility", controllers.CartSetVisibility(cartService, logg))
		})

		r.Post("/contact", controllers.ContactSubmit(contactService, logg))
		r.Get("/diagnostics/database", controllers.DatabaseDiagnostics(diagnosticsService, logg))
		r.Post("/payments/intent", controllers.PaymentIntentCreate(paymentsService, logg))
	})

	return r
}
