package contests

import "testing"

func TestHasID(t *testing.T) {
	if (Contest{}).HasID() {
		t.Fatal("expected empty id to report no stable identity")
	}
	if !(Contest{ID: "c1"}).HasID() {
		t.Fatal("expected non-empty id to report a stable identity")
	}
}

func TestContestValueEquality(t *testing.T) {
	a := Contest{
		ID:       "c1",
		Date:     "01/15/2026",
		HomeTeam: TeamSide{Name: "A", Rank: "5"},
		AwayTeam: TeamSide{Name: "B"},
	}
	b := a
	if a != b {
		t.Fatal("expected copied contest to compare equal")
	}
	b.HomeTeam.Score = "10"
	if a == b {
		t.Fatal("expected score change to break equality")
	}
}
