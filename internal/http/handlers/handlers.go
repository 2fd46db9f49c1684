// Package handlers wires HTTP routes to the contest session.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"ncaa-contests-service/internal/app/session"
	"ncaa-contests-service/internal/config"
	"ncaa-contests-service/internal/domain/contests"
	"ncaa-contests-service/internal/logging"
	"ncaa-contests-service/internal/poller"
	"ncaa-contests-service/internal/providers"
	"ncaa-contests-service/internal/providers/ncaa"
	"ncaa-contests-service/internal/selection"
	"ncaa-contests-service/internal/xmlexport"
)

// Handler wires HTTP routes to the session.
type Handler struct {
	sess     *session.Session
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler.
func NewHandler(sess *session.Session, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		sess:     sess,
		logger:   logger,
		statusFn: statusFn,
	}
}

// ContestsResponse is the payload for contest listings.
type ContestsResponse struct {
	Count    int                `json:"count"`
	Contests []contests.Contest `json:"contests"`
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Contests returns the current working set, filtered by the top25 and
// conference query parameters.
func (h *Handler) Contests(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	top25 := false
	if raw := r.URL.Query().Get("top25"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, nethttp.StatusBadRequest, "top25 must be a boolean", h.logger)
			return
		}
		top25 = parsed
	}
	conference := r.URL.Query().Get("conference")

	items := h.sess.Contests(top25, conference)
	logger := loggerFromContext(r, h.logger)
	logging.Info(logger, "served contests",
		slog.Int(logging.FieldCount, len(items)),
		slog.Bool("top25", top25),
		slog.String("conference", conference),
	)
	writeJSON(w, nethttp.StatusOK, ContestsResponse{Count: len(items), Contests: items}, h.logger)
}

// ContestByID returns a single contest from the working set.
func (h *Handler) ContestByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	idRaw := strings.TrimPrefix(r.URL.Path, "/contests/")
	id, err := url.PathUnescape(idRaw)
	if err != nil || id == "" || strings.ContainsAny(id, " \t/") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid contest id", h.logger)
		return
	}

	c, ok := h.sess.ContestByID(id)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "contest not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, c, h.logger)
}

// Selection serves the selection collection: GET lists it, POST adds a
// working-set contest by id, DELETE clears it.
func (h *Handler) Selection(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.Method {
	case nethttp.MethodGet:
		items := h.sess.Selection()
		writeJSON(w, nethttp.StatusOK, ContestsResponse{Count: len(items), Contests: items}, h.logger)
	case nethttp.MethodPost:
		h.addSelection(w, r)
	case nethttp.MethodDelete:
		h.sess.ClearSelection()
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "cleared"}, h.logger)
	default:
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *Handler) addSelection(w nethttp.ResponseWriter, r *nethttp.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == "" {
		writeError(w, r, nethttp.StatusBadRequest, "body must be {\"id\": \"...\"}", h.logger)
		return
	}
	c, err := h.sess.Select(body.ID)
	if err != nil {
		writeError(w, r, nethttp.StatusNotFound, "contest not in current working set", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusCreated, c, h.logger)
}

// SelectionByIndex removes a single selection entry by its position.
func (h *Handler) SelectionByIndex(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodDelete, h.logger) {
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/selection/")
	index, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid selection index", h.logger)
		return
	}
	removed, err := h.sess.RemoveSelected(index)
	if err != nil {
		if errors.Is(err, selection.ErrIndexOutOfRange) {
			writeError(w, r, nethttp.StatusNotFound, "selection index out of range", h.logger)
			return
		}
		writeError(w, r, nethttp.StatusInternalServerError, "failed to remove selection", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, removed, h.logger)
}

// ExportRequest is the body for POST /export.
type ExportRequest struct {
	Path     string            `json:"path,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Export renders the current selection to XML and writes it to disk.
func (h *Handler) Export(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	var req ExportRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, nethttp.StatusBadRequest, "invalid export request body", h.logger)
			return
		}
	}

	meta := exportMeta(h.sess, req.Metadata)
	path, err := h.sess.Export(meta, req.Path)
	if err != nil {
		logger := loggerFromContext(r, h.logger)
		logging.Warn(logger, "export failed", slog.Any("err", err))
		writeError(w, r, nethttp.StatusInternalServerError, "failed to write export", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"path":  path,
		"count": len(h.sess.Selection()),
	}, h.logger)
}

// exportMeta builds the export metadata block: current query context first,
// then caller-supplied keys in sorted order.
func exportMeta(sess *session.Session, extra map[string]string) []xmlexport.Meta {
	q := sess.Query()
	meta := []xmlexport.Meta{
		{Key: "Sport", Value: q.SportCode},
		{Key: "Division", Value: strconv.Itoa(q.Division)},
		{Key: "Date", Value: q.Date},
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		meta = append(meta, xmlexport.Meta{Key: k, Value: extra[k]})
	}
	return meta
}

// Query serves the fetch query: GET returns it, PUT replaces it.
func (h *Handler) Query(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.Method {
	case nethttp.MethodGet:
		writeJSON(w, nethttp.StatusOK, queryPayload(h.sess.Query()), h.logger)
	case nethttp.MethodPut:
		h.setQuery(w, r)
	default:
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

type queryBody struct {
	Sport      string `json:"sport"`
	Division   int    `json:"division"`
	SeasonYear int    `json:"season_year"`
	Date       string `json:"date,omitempty"`
	Week       int    `json:"week,omitempty"`
}

func queryPayload(q providers.Query) queryBody {
	return queryBody{
		Sport:      q.SportCode,
		Division:   q.Division,
		SeasonYear: q.SeasonYear,
		Date:       q.Date,
		Week:       q.Week,
	}
}

func (h *Handler) setQuery(w nethttp.ResponseWriter, r *nethttp.Request) {
	var body queryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid query body", h.logger)
		return
	}
	if body.Sport != "" && !ncaa.IsKnownSportCode(body.Sport) {
		writeError(w, r, nethttp.StatusBadRequest, "unknown sport code", h.logger)
		return
	}
	q := providers.Query{
		SportCode:  body.Sport,
		Division:   body.Division,
		SeasonYear: body.SeasonYear,
		Date:       body.Date,
		Week:       body.Week,
	}
	if err := h.sess.SetQuery(q); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, queryPayload(h.sess.Query()), h.logger)
}

// Settings serves the session settings: GET returns them, PUT updates the
// update interval.
func (h *Handler) Settings(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.Method {
	case nethttp.MethodGet:
		h.getSettings(w, r)
	case nethttp.MethodPut:
		h.putSettings(w, r)
	default:
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *Handler) getSettings(w nethttp.ResponseWriter, r *nethttp.Request) {
	settings := h.sess.Settings()
	payload := map[string]any{
		"update_interval_seconds": int(h.sess.UpdateInterval().Seconds()),
	}
	if settings != nil {
		payload["default_sport"] = settings.Get(config.SettingDefaultSport, "")
		payload["default_division"] = settings.GetInt(config.SettingDefaultDivision, 0)
		payload["default_season_year"] = settings.GetInt(config.SettingDefaultSeasonYear, 0)
		payload["last_save_directory"] = settings.Get(config.SettingLastSaveDirectory, "")
	}
	writeJSON(w, nethttp.StatusOK, payload, h.logger)
}

func (h *Handler) putSettings(w nethttp.ResponseWriter, r *nethttp.Request) {
	var body struct {
		UpdateIntervalSeconds *int `json:"update_interval_seconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.UpdateIntervalSeconds == nil {
		writeError(w, r, nethttp.StatusBadRequest, "body must set update_interval_seconds", h.logger)
		return
	}
	if err := h.sess.SetUpdateInterval(*body.UpdateIntervalSeconds); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}
	h.getSettings(w, r)
}

// Sports returns the sport catalog.
func (h *Handler) Sports(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	writeJSON(w, nethttp.StatusOK, ncaa.Sports(), h.logger)
}

// Divisions returns the division catalog.
func (h *Handler) Divisions(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	writeJSON(w, nethttp.StatusOK, ncaa.Divisions(), h.logger)
}
