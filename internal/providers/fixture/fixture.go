package fixture

import (
	"context"
	"time"

	"ncaa-contests-service/internal/domain/contests"
	"ncaa-contests-service/internal/providers"
	"ncaa-contests-service/internal/timeutil"
)

// Provider returns a static set of contests useful for local testing and
// bootstrapping without hitting the upstream API.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// FetchContests returns a deterministic set of example contests for the
// queried date.
func (p *Provider) FetchContests(ctx context.Context, q providers.Query) ([]contests.Contest, error) {
	_ = ctx
	if err := q.Validate(); err != nil {
		return nil, err
	}

	date := q.Date
	if date == "" {
		date = timeutil.FormatContestDate(p.now().UTC())
	}

	return []contests.Contest{
		{
			ID:        "fixture-1",
			Date:      date,
			Time:      "7:00 PM ET",
			Venue:     "Fixture Fieldhouse",
			Status:    "PRE",
			Broadcast: "ESPN",
			Sport:     q.SportCode,
			Division:  "1",
			HomeTeam: contests.TeamSide{
				Name:       "Fixture State",
				ShortName:  "FXS",
				Rank:       "5",
				Conference: "Big Ten Conference",
				Record:     "14-2",
			},
			AwayTeam: contests.TeamSide{
				Name:       "Example Tech",
				ShortName:  "EXT",
				Conference: "ACC",
				Record:     "11-5",
			},
		},
		{
			ID:       "fixture-2",
			Date:     date,
			Time:     "9:00 PM ET",
			Venue:    "Sample Arena",
			Status:   "PRE",
			Sport:    q.SportCode,
			Division: "1",
			HomeTeam: contests.TeamSide{
				Name:       "Demo A&M",
				ShortName:  "DAM",
				Conference: "SEC",
				Record:     "9-7",
			},
			AwayTeam: contests.TeamSide{
				Name:       "Placeholder U",
				ShortName:  "PLU",
				Rank:       "22",
				Conference: "Big 12 Conference",
				Record:     "13-3",
			},
		},
	}, nil
}
