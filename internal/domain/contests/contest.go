package contests

// TeamSide is one participant (home or away) in a contest. All fields are
// display strings taken from the upstream payload; absent values stay "".
type TeamSide struct {
	Name       string `json:"name"`
	ShortName  string `json:"short_name"`
	Score      string `json:"score"`
	Rank       string `json:"rank"`
	Conference string `json:"conference"`
	Record     string `json:"record"`
}

// Contest is a single scheduled or in-progress event between two sides.
// The upstream schema is not contractually stable, so every field defaults to
// the empty string rather than failing on a missing value.
type Contest struct {
	ID         string   `json:"id"`
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	Location   string   `json:"location"`
	Venue      string   `json:"venue"`
	Status     string   `json:"status"`
	Broadcast  string   `json:"broadcast"`
	Tournament string   `json:"tournament"`
	Sport      string   `json:"sport"`
	Division   string   `json:"division"`
	HomeTeam   TeamSide `json:"home_team"`
	AwayTeam   TeamSide `json:"away_team"`
}

// HasID reports whether the provider assigned a stable identifier. An empty
// id means the contest can never be matched during reconciliation.
func (c Contest) HasID() bool {
	return c.ID != ""
}
