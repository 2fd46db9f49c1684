package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"ncaa-contests-service/internal/config"
	"ncaa-contests-service/internal/logging"
	"ncaa-contests-service/internal/metrics"
)

const defaultInterval = 60 * time.Second

var errStopped = errors.New("poller: stopped")

// Refresher runs one fetch-and-reconcile cycle and reports how many contests
// the fresh working set holds.
type Refresher interface {
	Refresh(ctx context.Context) (int, error)
}

// IntervalSource supplies the current auto-refresh cadence. The poller
// re-reads it after every cycle so interval changes take effect without a
// restart.
type IntervalSource interface {
	UpdateInterval() time.Duration
}

// Poller drives periodic refresh cycles against a Refresher.
type Poller struct {
	refresher Refresher
	intervals IntervalSource
	logger    *slog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration

	group singleflight.Group

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastCount           int
}

// IsReady reports whether the loop has had a recent success and is not
// failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(refresher Refresher, intervals IntervalSource, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	if interval < config.MinRefreshInterval {
		interval = config.MinRefreshInterval
	}
	return &Poller{
		refresher: refresher,
		intervals: intervals,
		logger:    logger,
		metrics:   recorder,
		interval:  interval,
		done:      make(chan struct{}),
	}
}

// Start begins refreshing until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		p.logInfo("refresh loop started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Initial cycle to warm the working set on boot.
		p.RefreshNow(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logInfo("refresh loop stopped")
				return
			case <-p.done:
				p.stopTicker()
				p.logInfo("refresh loop stopped")
				return
			case <-p.ticker.C:
				p.RefreshNow(ctx)
				p.applyInterval()
			}
		}
	}()
}

// Stop halts the refresh loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// RefreshNow runs a refresh cycle immediately. Concurrent callers share a
// single in-flight cycle rather than stacking fetches against the provider.
func (p *Poller) RefreshNow(ctx context.Context) (int, error) {
	v, err, _ := p.group.Do("refresh", func() (any, error) {
		return p.runCycle(ctx)
	})
	count, _ := v.(int)
	return count, err
}

func (p *Poller) runCycle(ctx context.Context) (int, error) {
	select {
	case <-p.done:
		return 0, errStopped
	default:
	}

	start := time.Now()
	p.recordAttempt(start)
	count, err := p.refresher.Refresh(ctx)
	if p.metrics != nil {
		p.metrics.RecordRefreshCycle(time.Since(start), err)
	}
	if err != nil {
		p.logError("refresh cycle failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, start)
		return 0, err
	}

	p.recordSuccess(count, start)
	p.logInfo("refresh cycle complete",
		logging.FieldCount, count,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return count, nil
}

// applyInterval picks up cadence changes between cycles.
func (p *Poller) applyInterval() {
	if p.intervals == nil || p.ticker == nil {
		return
	}
	next := p.intervals.UpdateInterval()
	if next < config.MinRefreshInterval {
		next = config.MinRefreshInterval
	}
	if next != p.interval {
		p.interval = next
		p.ticker.Reset(next)
		p.logInfo("refresh interval changed", slog.Int64(logging.FieldDurationMS, next.Milliseconds()))
	}
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Poller) logError(msg string, err error, attrs ...any) {
	if p.logger != nil {
		p.logger.Error(msg, append(attrs, "error", err)...)
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(count int, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.LastCount = count
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the loop's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
