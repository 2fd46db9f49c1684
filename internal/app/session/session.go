// Package session owns the per-session state: the working contest set from
// the last fetch, the user's selection, and the query driving refresh cycles.
// Nothing here is ambient; the server constructs one Session and passes it to
// the components that need it.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"ncaa-contests-service/internal/config"
	"ncaa-contests-service/internal/domain/contests"
	"ncaa-contests-service/internal/filter"
	"ncaa-contests-service/internal/logging"
	"ncaa-contests-service/internal/metrics"
	"ncaa-contests-service/internal/providers"
	"ncaa-contests-service/internal/selection"
	"ncaa-contests-service/internal/store"
	"ncaa-contests-service/internal/timeutil"
	"ncaa-contests-service/internal/xmlexport"
)

// Session coordinates fetch, selection and export for one running service.
type Session struct {
	provider  providers.ContestProvider
	store     *store.MemoryStore
	selection *selection.Store
	settings  *config.Settings
	renderer  *xmlexport.Renderer
	writer    *xmlexport.Writer
	logger    *slog.Logger
	metrics   *metrics.Recorder
	now       func() time.Time

	mu    sync.RWMutex
	query providers.Query
}

// Deps collects the collaborators a Session needs.
type Deps struct {
	Provider  providers.ContestProvider
	Store     *store.MemoryStore
	Selection *selection.Store
	Settings  *config.Settings
	Renderer  *xmlexport.Renderer
	Writer    *xmlexport.Writer
	Logger    *slog.Logger
	Metrics   *metrics.Recorder
}

// New constructs a Session. The initial query comes from the settings
// defaults with today's date.
func New(deps Deps) *Session {
	s := &Session{
		provider:  deps.Provider,
		store:     deps.Store,
		selection: deps.Selection,
		settings:  deps.Settings,
		renderer:  deps.Renderer,
		writer:    deps.Writer,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
		now:       time.Now,
	}
	if s.store == nil {
		s.store = store.NewMemoryStore()
	}
	if s.selection == nil {
		s.selection = selection.NewStore()
	}
	if s.renderer == nil {
		s.renderer = xmlexport.NewRenderer()
	}
	s.query = s.defaultQuery()
	return s
}

func (s *Session) defaultQuery() providers.Query {
	q := providers.Query{
		SportCode:  "WBB",
		Division:   1,
		SeasonYear: 2025,
	}
	if s.settings != nil {
		q.SportCode = s.settings.Get(config.SettingDefaultSport, q.SportCode)
		q.Division = s.settings.GetInt(config.SettingDefaultDivision, q.Division)
		q.SeasonYear = s.settings.GetInt(config.SettingDefaultSeasonYear, q.SeasonYear)
	}
	q.Date = timeutil.FormatContestDate(s.now())
	return q
}

// Query returns the query driving refresh cycles.
func (s *Session) Query() providers.Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// SetQuery validates and installs a new query, persisting its sport, division
// and season year as session defaults.
func (s *Session) SetQuery(q providers.Query) error {
	q.Date = timeutil.NormalizeContestDate(q.Date)
	if err := q.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.query = q
	s.mu.Unlock()

	if s.settings != nil {
		// Best-effort persistence; a read-only settings file must not block
		// the query change.
		if err := s.settings.Set(config.SettingDefaultSport, q.SportCode); err != nil {
			logging.Warn(s.logger, "failed to persist default sport", slog.Any("err", err))
		}
		if err := s.settings.Set(config.SettingDefaultDivision, q.Division); err != nil {
			logging.Warn(s.logger, "failed to persist default division", slog.Any("err", err))
		}
		if err := s.settings.Set(config.SettingDefaultSeasonYear, q.SeasonYear); err != nil {
			logging.Warn(s.logger, "failed to persist default season year", slog.Any("err", err))
		}
	}
	return nil
}

// Refresh runs one fetch cycle: fetch the current query, replace the working
// set, and reconcile the selection against it. The returned count is the size
// of the fresh working set.
func (s *Session) Refresh(ctx context.Context) (int, error) {
	if s.provider == nil {
		return 0, providers.ErrProviderUnavailable
	}
	q := s.Query()

	fetched, err := s.provider.FetchContests(ctx, q)
	if err != nil {
		return 0, err
	}

	s.store.SetContests(fetched)
	result := s.selection.Reconcile(fetched)
	if s.metrics != nil {
		s.metrics.RecordReconciliation(result.Replaced, result.Stale)
	}
	logging.Info(s.logger, "refreshed contests",
		slog.String(logging.FieldSport, q.SportCode),
		slog.String(logging.FieldDate, q.Date),
		slog.Int(logging.FieldCount, len(fetched)),
		slog.Int("selection_replaced", result.Replaced),
		slog.Int("selection_stale", result.Stale),
	)
	return len(fetched), nil
}

// Contests returns the working set filtered by the given view options.
func (s *Session) Contests(top25 bool, conference string) []contests.Contest {
	preds := []filter.Predicate{filter.Conference(conference)}
	if top25 {
		preds = append(preds, filter.Top25)
	}
	return filter.Apply(s.store.ListContests(), preds...)
}

// ContestByID looks up a contest in the working set.
func (s *Session) ContestByID(id string) (contests.Contest, bool) {
	return s.store.GetContest(id)
}

// Select adds the working-set contest with the given id to the selection.
func (s *Session) Select(id string) (contests.Contest, error) {
	c, ok := s.store.GetContest(id)
	if !ok {
		return contests.Contest{}, fmt.Errorf("session: contest %q not in current working set", id)
	}
	s.selection.Add(c)
	return c, nil
}

// Selection returns the current selection in insertion order.
func (s *Session) Selection() []contests.Contest {
	return s.selection.Contests()
}

// RemoveSelected removes the selection entry at the given position.
func (s *Session) RemoveSelected(index int) (contests.Contest, error) {
	return s.selection.RemoveAt(index)
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() {
	s.selection.Clear()
}

// UpdateInterval returns the auto-refresh cadence from settings, clamped to
// the enforced minimum.
func (s *Session) UpdateInterval() time.Duration {
	seconds := 60
	if s.settings != nil {
		seconds = s.settings.GetInt(config.SettingUpdateInterval, seconds)
	}
	interval := time.Duration(seconds) * time.Second
	if interval < config.MinRefreshInterval {
		return config.MinRefreshInterval
	}
	return interval
}

// SetUpdateInterval validates and persists a new auto-refresh cadence in
// seconds.
func (s *Session) SetUpdateInterval(seconds int) error {
	if minimum := int(config.MinRefreshInterval / time.Second); seconds < minimum {
		return fmt.Errorf("update interval must be at least %d seconds", minimum)
	}
	if s.settings == nil {
		return nil
	}
	return s.settings.Set(config.SettingUpdateInterval, seconds)
}

// Export renders the current selection with the given metadata and writes it
// to path, or to the export directory with a generated name when path is
// empty. It returns the written path.
func (s *Session) Export(meta []xmlexport.Meta, path string) (string, error) {
	selected := s.selection.Contests()
	document, err := s.renderer.Render(selected, meta)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordExport(len(selected), err)
		}
		return "", err
	}

	var written string
	switch {
	case path != "":
		err = xmlexport.Save(path, document)
		written = path
	case s.writer != nil:
		written, err = s.writer.WriteDocument("", document)
	default:
		err = fmt.Errorf("session: no export path and no export directory configured")
	}
	if s.metrics != nil {
		s.metrics.RecordExport(len(selected), err)
	}
	if err != nil {
		return "", err
	}

	if s.settings != nil {
		if setErr := s.settings.Set(config.SettingLastSaveDirectory, filepath.Dir(written)); setErr != nil {
			logging.Warn(s.logger, "failed to persist save directory", slog.Any("err", setErr))
		}
	}
	logging.Info(s.logger, "exported selection",
		slog.Int(logging.FieldCount, len(selected)),
		slog.String("path", written),
	)
	return written, nil
}

// Settings exposes the flat key-value collaborator.
func (s *Session) Settings() *config.Settings {
	return s.settings
}
