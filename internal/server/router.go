// Package server implements the HTTP server and routing logic.
package server

import (
	"net/http"

	"github.com/maruel/tabdb/internal/server/dto"
	"github.com/maruel/tabdb/internal/server/handlers"
	"github.com/maruel/tabdb/internal/server/ratelimit"
)

// NewRouter creates and configures the HTTP router.
// Serves API endpoints at /api/*.
func NewRouter(svc *handlers.Services, cfg *handlers.Config, limiters *ratelimit.Config) http.Handler {
	mux := &http.ServeMux{}
	th := handlers.NewTableHandler(svc)
	rh := handlers.NewRowHandler(svc)
	hh := handlers.NewHealthHandler(svc, cfg.Version)
	hist := handlers.NewHistoryHandler(svc)

	// Health check
	mux.Handle("GET /api/health", Wrap(hh.Health, cfg, limiters))

	// Table endpoints
	mux.Handle("GET /api/tables", Wrap(th.ListTables, cfg, limiters))
	mux.Handle("POST /api/tables", Wrap(th.CreateTable, cfg, limiters))
	mux.Handle("POST /api/tables/difference", Wrap(th.Difference, cfg, limiters))
	mux.Handle("GET /api/tables/{name}", Wrap(th.GetTable, cfg, limiters))
	mux.Handle("DELETE /api/tables/{name}", Wrap(th.DeleteTable, cfg, limiters))
	mux.Handle("GET /api/tables/{name}/schema", Wrap(th.Schema, cfg, limiters))

	// Row endpoints
	mux.Handle("GET /api/tables/{name}/rows", Wrap(rh.ListRows, cfg, limiters))
	mux.Handle("POST /api/tables/{name}/rows", Wrap(rh.AddRow, cfg, limiters))
	mux.Handle("PUT /api/tables/{name}/rows/{index}", Wrap(rh.UpdateRow, cfg, limiters))
	mux.Handle("DELETE /api/tables/{name}/rows/{index}", Wrap(rh.DeleteRow, cfg, limiters))

	// History endpoint
	mux.Handle("GET /api/history", Wrap(hist.History, cfg, limiters))

	// Unknown API paths get a JSON error instead of the default text page.
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		apiErr := dto.NotFound("endpoint " + r.Method + " " + r.URL.Path)
		writeErrorResponseWithCode(w, apiErr.StatusCode(), apiErr.Code(), apiErr.Error(), apiErr.Details())
	})

	return LoggingMiddleware(mux)
}
