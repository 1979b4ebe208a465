package web

import (
	"crypto/rand"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"venueadmin/internal/adapters/http/middleware"
	"venueadmin/internal/adapters/http/perf"
	bookingStore "venueadmin/internal/adapters/storage/booking"
	clientStore "venueadmin/internal/adapters/storage/client"
	receivableStore "venueadmin/internal/adapters/storage/receivable"
	venueStore "venueadmin/internal/adapters/storage/venue"
	"venueadmin/internal/application/money"
	"venueadmin/internal/application/orchestrators"
	"venueadmin/internal/application/pages"
	"venueadmin/internal/application/tablesettings"
	"venueadmin/internal/config"
)

// Stores holds the storage dependencies the non-list endpoints use directly.
// List pages reach their stores through the page registry.
type Stores struct {
	Venues      venueStore.Store
	Clients     clientStore.Store
	Bookings    bookingStore.Store
	Receivables receivableStore.Store
}

// App is everything the HTTP layer serves.
type App struct {
	Config    config.Config
	Stores    Stores
	Pages     *pages.Registry
	Settings  *tablesettings.Cache
	Defaults  config.TableDefaults
	Collector *perf.Collector
	Money     money.Formatter
	Location  *time.Location // nil means UTC
	Clock     orchestrators.Clock
}

func (a *App) now() time.Time {
	if a.Clock.Now != nil {
		return a.Clock.Now()
	}
	return time.Now()
}

func (a *App) location() *time.Location {
	if a.Location == nil {
		return time.UTC
	}
	return a.Location
}

// csrfKey returns the configured key or, outside production, a random one.
// Config.Validate already rejects a missing key in production.
func csrfKey(cfg config.Config) []byte {
	key, err := cfg.CSRFKeyBytes()
	if err == nil && key != nil {
		return key
	}
	key = make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("failed to generate CSRF key: " + err.Error())
	}
	slog.Warn("csrf_random_key", "hint", "set VENUEADMIN_CSRF_KEY so forms survive restarts")
	return key
}

// NewRouter registers every route without middleware.
func NewRouter(app *App) *http.ServeMux {
	if app.Money == (money.Formatter{}) {
		app.Money = money.NewFormatter("en", "")
	}
	h := &handlers{app: app}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /admin/perf", h.handleAdminPerf)
	mux.HandleFunc("GET /static/app.css", handleStatic)
	mux.HandleFunc("GET /static/app.js", handleStatic)

	mux.HandleFunc("GET /{$}", h.handleReport)

	mux.HandleFunc("GET /api/table-settings/{entity}", h.handleGetTableSettings)
	mux.HandleFunc("PUT /api/table-settings/{entity}", h.handlePutTableSettings)
	mux.HandleFunc("DELETE /api/table-settings/{entity}", h.handleDeleteTableSettings)
	mux.HandleFunc("POST /api/table-settings/flush", h.handleFlushTableSettings)

	mux.HandleFunc("GET /api/bookings", h.handleBookingsInRange)
	mux.HandleFunc("PATCH /api/bookings/{id}/schedule", h.handleRescheduleBooking)

	mux.HandleFunc("GET /{entity}", h.handleList)
	mux.HandleFunc("POST /{entity}", h.handleCreate)
	mux.HandleFunc("GET /{entity}/new", h.handleNewForm)
	mux.HandleFunc("GET /{entity}/export.csv", h.handleExportCSV)
	mux.HandleFunc("POST /{entity}/{id}/actions/{action}", h.handleAction)
	return mux
}

// NewMux wires HTTP handlers and the middleware chain.
// PRE: app.Pages and app.Settings are set
// POST: Returns a handler ready for http.Server
func NewMux(app *App) http.Handler {
	limiter := middleware.NewRateLimiter(app.Config.RateLimit, time.Second)

	// Apply middleware: RateLimit -> CSRF -> SecurityHeaders -> Timing -> Mux
	// Timing sits next to the mux: CSRF clones the request, and the clone is
	// the one the mux stamps with the matched pattern.
	return middleware.Chain(NewRouter(app),
		middleware.Timing(app.Collector, app.Config.SlowRequest),
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey(app.Config), middleware.CSRFOptions{
			Secure:         app.Config.IsProduction(),
			TrustedOrigins: app.Config.TrustedOrigins,
		}),
		middleware.RateLimit(limiter),
	)
}
