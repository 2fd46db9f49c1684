package providers

import (
	"context"
	"log/slog"
	"time"

	"ncaa-contests-service/internal/domain/contests"
	"ncaa-contests-service/internal/logging"
	"ncaa-contests-service/internal/metrics"
)

// safeProvider is the fetch boundary: transport failures are logged and
// converted into an empty result so nothing downstream ever has to handle a
// network error. Invalid queries still fail fast; they are caller bugs, not
// transport conditions.
type safeProvider struct {
	inner   ContestProvider
	name    string
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewSafeProvider wraps inner so that fetch errors degrade to zero contests.
func NewSafeProvider(inner ContestProvider, name string, logger *slog.Logger, recorder *metrics.Recorder) ContestProvider {
	return &safeProvider{
		inner:   inner,
		name:    name,
		logger:  logger,
		metrics: recorder,
	}
}

func (p *safeProvider) FetchContests(ctx context.Context, q Query) ([]contests.Contest, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if p.inner == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "no inner provider configured")
		return []contests.Contest{}, nil
	}

	start := time.Now()
	fetched, err := p.inner.FetchContests(ctx, q)
	if p.metrics != nil {
		p.metrics.RecordProviderAttempt(p.name, time.Since(start), err)
	}
	if err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "contest fetch failed",
			slog.String(logging.FieldSport, q.SportCode),
			slog.String(logging.FieldDate, q.Date),
			slog.Any("err", err),
		)
		return []contests.Contest{}, nil
	}
	return fetched, nil
}
