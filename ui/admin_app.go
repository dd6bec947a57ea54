package ui

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"ikigai/internal/admin"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// AdminApp serves the operator dashboard endpoints on a separate port,
// kept off the public API surface.
type AdminApp struct {
	router   *chi.Mux
	stats    *admin.StatsService
	exporter *admin.Exporter
}

// NewAdminApp creates the admin server and registers its routes
func NewAdminApp(stats *admin.StatsService, exporter *admin.Exporter) *AdminApp {
	app := &AdminApp{
		router:   chi.NewRouter(),
		stats:    stats,
		exporter: exporter,
	}

	app.router.Use(middleware.Logger)
	app.router.Use(middleware.Recoverer)

	app.router.Get("/healthz", app.handleHealth)
	app.router.Route("/admin", func(r chi.Router) {
		r.Get("/stats", app.handleStats)
		r.Get("/export", app.handleExport)
	})

	return app
}

// Handler exposes the underlying http.Handler, used by tests
func (a *AdminApp) Handler() http.Handler {
	return a.router
}

// Run starts the admin server on the given address
func (a *AdminApp) Run(addr string) error {
	log.Printf("[Admin] Listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *AdminApp) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (a *AdminApp) handleStats(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "7d"
	}

	overview, err := a.stats.Overview(r.Context(), period)
	if err != nil {
		log.Printf("[Admin] Stats failed: %v", err)
		http.Error(w, "failed to compute stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(overview)
}

func (a *AdminApp) handleExport(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "30d"
	}

	workbook, err := a.exporter.Export(r.Context(), period)
	if err != nil {
		log.Printf("[Admin] Export failed: %v", err)
		http.Error(w, "failed to export sessions", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("sessions-%s-%s.xlsx", period, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(workbook)
}
