package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET /health
//	GET /api/v1/calendars
//	GET /api/v1/calendar/{year}
//	GET /api/v1/calendar/{year}/date/{date}
//	GET /api/v1/calendar/{year}/ics
//
// The calendar routes accept the query parameters epiphany, ascension,
// corpus_christi, locale, national and diocese.
func SetupRoutes(handlers *Handlers, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "No route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/calendars", handlers.ListCalendars)

		r.Route("/calendar/{year}", func(r chi.Router) {
			r.Get("/", handlers.GetCalendar)
			r.Get("/date/{date}", handlers.GetCalendarDate)
			r.Get("/ics", handlers.GetCalendarICS)
		})
	})

	return r
}
