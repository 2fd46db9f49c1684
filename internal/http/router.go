// Package http assembles the service's HTTP surface.
package http

import (
	"log/slog"
	nethttp "net/http"
	"strings"

	"ncaa-contests-service/internal/http/handlers"
	"ncaa-contests-service/internal/http/middleware"
	"ncaa-contests-service/internal/metrics"
)

// NewRouter registers the routes and wraps them with the logging middleware.
// admin may be nil, in which case the admin endpoints are not registered.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/contests", handler.Contests)
	mux.HandleFunc("/contests/", handler.ContestByID)
	mux.HandleFunc("/selection", handler.Selection)
	mux.HandleFunc("/selection/", handler.SelectionByIndex)
	mux.HandleFunc("/export", handler.Export)
	mux.HandleFunc("/query", handler.Query)
	mux.HandleFunc("/settings", handler.Settings)
	mux.HandleFunc("/sports", handler.Sports)
	mux.HandleFunc("/divisions", handler.Divisions)
	if admin != nil {
		mux.HandleFunc("/admin/refresh", admin.Refresh)
	}

	var root nethttp.Handler = mux
	root = trailingSlashGuard(root)
	return middleware.Logging(logger, recorder, root)
}

// trailingSlashGuard keeps /contests/ and /selection/ (no trailing segment)
// from falling through to the ID handlers as empty ids; ServeMux would
// otherwise serve them with a redirect-free match.
func trailingSlashGuard(next nethttp.Handler) nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if len(r.URL.Path) > 1 && strings.HasSuffix(r.URL.Path, "/") {
			r.URL.Path = strings.TrimSuffix(r.URL.Path, "/")
		}
		next.ServeHTTP(w, r)
	})
}
