package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ncaa-contests-service/internal/app/session"
	"ncaa-contests-service/internal/config"
	"ncaa-contests-service/internal/domain/contests"
	"ncaa-contests-service/internal/poller"
	"ncaa-contests-service/internal/providers"
	"ncaa-contests-service/internal/xmlexport"
)

type stubProvider struct {
	result []contests.Contest
}

func (p *stubProvider) FetchContests(context.Context, providers.Query) ([]contests.Contest, error) {
	return p.result, nil
}

func fixtureContests() []contests.Contest {
	return []contests.Contest{
		{
			ID:     "c1",
			Date:   "01/15/2026",
			Status: "scheduled",
			Sport:  "WBB",
			HomeTeam: contests.TeamSide{
				Name:       "Hawkeyes",
				Rank:       "4",
				Conference: "Big Ten",
			},
			AwayTeam: contests.TeamSide{Name: "Cyclones", Conference: "Big 12"},
		},
		{
			ID:       "c2",
			Date:     "01/15/2026",
			Status:   "live",
			Sport:    "WBB",
			HomeTeam: contests.TeamSide{Name: "Terrapins", Conference: "Big Ten"},
			AwayTeam: contests.TeamSide{Name: "Blue Devils", Conference: "ACC"},
		},
	}
}

func newTestHandler(t *testing.T, items []contests.Contest, statusFn func() poller.Status) (*Handler, *session.Session) {
	t.Helper()
	dir := t.TempDir()
	sess := session.New(session.Deps{
		Provider: &stubProvider{result: items},
		Settings: config.NewSettings(filepath.Join(dir, "config.json")),
		Writer:   xmlexport.NewWriter(filepath.Join(dir, "exports"), 5),
	})
	if items != nil {
		if _, err := sess.Refresh(context.Background()); err != nil {
			t.Fatalf("seeding session: %v", err)
		}
	}
	return NewHandler(sess, nil, statusFn), sess
}

func decodeContests(t *testing.T, rec *httptest.ResponseRecorder) ContestsResponse {
	t.Helper()
	var resp ContestsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp
}

func TestContestsListsWorkingSet(t *testing.T) {
	h, _ := newTestHandler(t, fixtureContests(), nil)
	rec := httptest.NewRecorder()
	h.Contests(rec, httptest.NewRequest("GET", "/contests", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeContests(t, rec)
	if resp.Count != 2 || len(resp.Contests) != 2 {
		t.Errorf("count = %d, contests = %d", resp.Count, len(resp.Contests))
	}
}

func TestContestsAppliesFilters(t *testing.T) {
	h, _ := newTestHandler(t, fixtureContests(), nil)

	rec := httptest.NewRecorder()
	h.Contests(rec, httptest.NewRequest("GET", "/contests?top25=true", nil))
	if resp := decodeContests(t, rec); resp.Count != 1 || resp.Contests[0].ID != "c1" {
		t.Errorf("top25 filter: got %+v", resp)
	}

	rec = httptest.NewRecorder()
	h.Contests(rec, httptest.NewRequest("GET", "/contests?conference=acc", nil))
	if resp := decodeContests(t, rec); resp.Count != 1 || resp.Contests[0].ID != "c2" {
		t.Errorf("conference filter: got %+v", resp)
	}

	rec = httptest.NewRecorder()
	h.Contests(rec, httptest.NewRequest("GET", "/contests?top25=banana", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid top25: status = %d", rec.Code)
	}
}

func TestContestByID(t *testing.T) {
	h, _ := newTestHandler(t, fixtureContests(), nil)

	rec := httptest.NewRecorder()
	h.ContestByID(rec, httptest.NewRequest("GET", "/contests/c1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var c contests.Contest
	if err := json.NewDecoder(rec.Body).Decode(&c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.ID != "c1" {
		t.Errorf("id = %q", c.ID)
	}

	rec = httptest.NewRecorder()
	h.ContestByID(rec, httptest.NewRequest("GET", "/contests/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing contest: status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ContestByID(rec, httptest.NewRequest("GET", "/contests/", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty id: status = %d", rec.Code)
	}
}

func TestSelectionLifecycle(t *testing.T) {
	h, _ := newTestHandler(t, fixtureContests(), nil)

	// Add c1.
	rec := httptest.NewRecorder()
	h.Selection(rec, httptest.NewRequest("POST", "/selection", strings.NewReader(`{"id":"c1"}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// List it.
	rec = httptest.NewRecorder()
	h.Selection(rec, httptest.NewRequest("GET", "/selection", nil))
	if resp := decodeContests(t, rec); resp.Count != 1 {
		t.Fatalf("list: count = %d", resp.Count)
	}

	// Remove by index.
	rec = httptest.NewRecorder()
	h.SelectionByIndex(rec, httptest.NewRequest("DELETE", "/selection/0", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("remove: status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Selection(rec, httptest.NewRequest("GET", "/selection", nil))
	if resp := decodeContests(t, rec); resp.Count != 0 {
		t.Errorf("after remove: count = %d", resp.Count)
	}
}

func TestSelectionRejectsUnknownContest(t *testing.T) {
	h, _ := newTestHandler(t, fixtureContests(), nil)
	rec := httptest.NewRecorder()
	h.Selection(rec, httptest.NewRequest("POST", "/selection", strings.NewReader(`{"id":"ghost"}`)))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestSelectionByIndexErrors(t *testing.T) {
	h, _ := newTestHandler(t, fixtureContests(), nil)

	rec := httptest.NewRecorder()
	h.SelectionByIndex(rec, httptest.NewRequest("DELETE", "/selection/abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric index: status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.SelectionByIndex(rec, httptest.NewRequest("DELETE", "/selection/9", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("out-of-range index: status = %d", rec.Code)
	}
}

func TestSelectionClear(t *testing.T) {
	h, sess := newTestHandler(t, fixtureContests(), nil)
	if _, err := sess.Select("c1"); err != nil {
		t.Fatalf("seed selection: %v", err)
	}

	rec := httptest.NewRecorder()
	h.Selection(rec, httptest.NewRequest("DELETE", "/selection", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(sess.Selection()) != 0 {
		t.Error("selection not cleared")
	}
}

func TestExportWritesFile(t *testing.T) {
	h, sess := newTestHandler(t, fixtureContests(), nil)
	if _, err := sess.Select("c1"); err != nil {
		t.Fatalf("seed selection: %v", err)
	}

	rec := httptest.NewRecorder()
	h.Export(rec, httptest.NewRequest("POST", "/export", strings.NewReader(`{"metadata":{"Operator":"test"}}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Path  string `json:"path"`
		Count int    `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Path == "" || resp.Count != 1 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestExportWithoutBody(t *testing.T) {
	h, _ := newTestHandler(t, fixtureContests(), nil)
	rec := httptest.NewRecorder()
	h.Export(rec, httptest.NewRequest("POST", "/export", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestQueryRoundTrip(t *testing.T) {
	h, _ := newTestHandler(t, nil, nil)

	rec := httptest.NewRecorder()
	h.Query(rec, httptest.NewRequest("GET", "/query", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status = %d", rec.Code)
	}

	body := `{"sport":"MBB","division":1,"season_year":2025,"date":"02/01/2026"}`
	rec = httptest.NewRecorder()
	h.Query(rec, httptest.NewRequest("PUT", "/query", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("put: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got queryBody
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Sport != "MBB" || got.Date != "02/01/2026" {
		t.Errorf("query = %+v", got)
	}
}

func TestQueryRejectsUnknownSport(t *testing.T) {
	h, _ := newTestHandler(t, nil, nil)
	rec := httptest.NewRecorder()
	h.Query(rec, httptest.NewRequest("PUT", "/query", strings.NewReader(`{"sport":"XXX","division":1,"season_year":2025}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	h, _ := newTestHandler(t, nil, nil)

	rec := httptest.NewRecorder()
	h.Settings(rec, httptest.NewRequest("GET", "/settings", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Settings(rec, httptest.NewRequest("PUT", "/settings", strings.NewReader(`{"update_interval_seconds":30}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("put: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got, _ := resp["update_interval_seconds"].(float64); got != 30 {
		t.Errorf("update_interval_seconds = %v", resp["update_interval_seconds"])
	}
}

func TestSettingsRejectsSubMinimumInterval(t *testing.T) {
	h, _ := newTestHandler(t, nil, nil)
	rec := httptest.NewRecorder()
	h.Settings(rec, httptest.NewRequest("PUT", "/settings", strings.NewReader(`{"update_interval_seconds":1}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestCatalogs(t *testing.T) {
	h, _ := newTestHandler(t, nil, nil)

	rec := httptest.NewRecorder()
	h.Sports(rec, httptest.NewRequest("GET", "/sports", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("sports: status = %d", rec.Code)
	}
	var sports []map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&sports); err != nil {
		t.Fatalf("decode sports: %v", err)
	}
	if len(sports) != 12 {
		t.Errorf("sports count = %d, want 12", len(sports))
	}

	rec = httptest.NewRecorder()
	h.Divisions(rec, httptest.NewRequest("GET", "/divisions", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("divisions: status = %d", rec.Code)
	}
}

func TestReadiness(t *testing.T) {
	ready := poller.Status{LastSuccess: time.Now()}
	h, _ := newTestHandler(t, nil, func() poller.Status { return ready })

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest("GET", "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("ready: status = %d", rec.Code)
	}

	ready = poller.Status{ConsecutiveFailures: 5, LastError: "upstream down"}
	rec = httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest("GET", "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("not ready: status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "upstream down") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t, nil, nil)
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest("POST", "/health", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("wrong method: status = %d", rec.Code)
	}
}
