// Package teststubs holds shared test doubles for cross-package tests.
package teststubs

import (
	"context"
	"sync/atomic"

	"ncaa-contests-service/internal/domain/contests"
	"ncaa-contests-service/internal/providers"
)

// StubProvider is a test double for providers.ContestProvider.
type StubProvider struct {
	Contests []contests.Contest
	Err      error
	Calls    atomic.Int32
	Notify   chan struct{}
}

// FetchContests returns the configured contests and error while tracking calls.
func (s *StubProvider) FetchContests(ctx context.Context, q providers.Query) ([]contests.Contest, error) {
	_ = ctx
	_ = q
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Contests, s.Err
}

// StubRefresher is a test double for poller.Refresher.
type StubRefresher struct {
	Count int
	Err   error
	Calls atomic.Int32
}

// Refresh returns the configured count and error while tracking calls.
func (s *StubRefresher) Refresh(ctx context.Context) (int, error) {
	_ = ctx
	s.Calls.Add(1)
	return s.Count, s.Err
}
