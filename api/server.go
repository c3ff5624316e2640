/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend
  5. Session:    Password-gate token check (all /api except /api/login)

ROUTE GROUPS:
  /api/employees/*   Roster management
  /api/vacations/*   Booking create/edit/delete + dry-run validation
  /api/config        Headcount cap
  /api/reports/*     Read-only summaries
  /api/scenarios/*   Demo data (dev only)
  /metrics           Prometheus (unauthenticated, scrape-friendly)

SEE ALSO:
  - handlers.go: Handler implementations
  - auth.go: Session gate
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(trackInFlight)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(h.requireSession)

			// Roster
			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.ListEmployees)
				r.Post("/", h.CreateEmployee)
				r.Get("/{id}", h.GetEmployee)
				r.Put("/{id}", h.UpdateEmployee)
				r.Delete("/{id}", h.DeleteEmployee)
				r.Get("/{id}/summary", h.GetEmployeeSummary)
			})

			// Bookings
			r.Route("/vacations", func(r chi.Router) {
				r.Get("/", h.ListVacations)
				r.Post("/", h.CreateVacation)
				r.Post("/validate", h.ValidateVacation)
				r.Put("/{id}", h.UpdateVacation)
				r.Delete("/{id}", h.DeleteVacation)
			})

			// Organization settings
			r.Get("/config", h.GetConfig)
			r.Put("/config", h.UpdateConfig)

			// Reports
			r.Route("/reports", func(r chi.Router) {
				r.Get("/summary", h.ReportSummary)
				r.Get("/upcoming", h.ReportUpcoming)
				r.Get("/congestion", h.ReportCongestion)
			})

			// Demo data
			r.Route("/scenarios", func(r chi.Router) {
				r.Get("/", h.ListScenarios)
				r.Post("/load", h.LoadScenario)
			})
		})
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func trackInFlight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestsInFlight.Inc()
		defer requestsInFlight.Dec()
		next.ServeHTTP(w, r)
	})
}
