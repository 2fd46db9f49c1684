package providers

import (
	"context"
	"fmt"

	"ncaa-contests-service/internal/domain/contests"
	"ncaa-contests-service/internal/timeutil"
)

// Query identifies one schedule fetch: which sport, division, season and date
// to ask the upstream provider for. Week is optional; zero means "not set"
// and is sent as null.
type Query struct {
	SportCode  string
	Division   int
	SeasonYear int
	Date       string // MM/DD/YYYY
	Week       int
}

// Validate checks the query against the provider contract before any network
// call is made.
func (q Query) Validate() error {
	if q.SportCode == "" {
		return fmt.Errorf("query: sport code required")
	}
	if q.Division < 1 || q.Division > 3 {
		return fmt.Errorf("query: division must be 1-3, got %d", q.Division)
	}
	if q.Date != "" {
		if _, err := timeutil.ParseContestDate(q.Date); err != nil {
			return fmt.Errorf("query: date must be MM/DD/YYYY: %w", err)
		}
	}
	if q.Week < 0 {
		return fmt.Errorf("query: week must be positive, got %d", q.Week)
	}
	return nil
}

// ContestProvider defines how upstream schedule data is fetched and
// normalized. Implementations issue a single attempt per call; there is no
// retry or backoff anywhere in the fetch path.
type ContestProvider interface {
	FetchContests(ctx context.Context, q Query) ([]contests.Contest, error)
}
