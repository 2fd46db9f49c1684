package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"ncaa-contests-service/internal/http/requestutil"
	"ncaa-contests-service/internal/logging"
)

// RefreshRunner triggers an immediate refresh cycle.
type RefreshRunner interface {
	RefreshNow(ctx context.Context) (int, error)
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	runner RefreshRunner
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(runner RefreshRunner, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		runner: runner,
		token:  token,
		logger: logger,
	}
}

// Refresh runs a refresh cycle immediately instead of waiting for the next
// tick. Guarded by the admin token; returns 401 if missing/invalid.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.runner == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	count, err := h.runner.RefreshNow(r.Context())
	if err != nil {
		logging.Warn(logger, "admin refresh failed", slog.Any("err", err))
		writeError(w, r, http.StatusBadGateway, "refresh failed", logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"count":  count,
	}, logger)
	logging.Info(logger, "admin refresh complete", slog.Int(logging.FieldCount, count))
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}
