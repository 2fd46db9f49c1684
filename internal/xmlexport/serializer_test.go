package xmlexport

import (
	"strings"
	"testing"
	"time"

	"ncaa-contests-service/internal/domain/contests"
)

func fixedRenderer() *Renderer {
	r := NewRenderer()
	r.now = func() time.Time { return time.Date(2026, 1, 15, 9, 30, 5, 0, time.UTC) }
	return r
}

func TestRenderEmptyDocumentShape(t *testing.T) {
	doc, err := fixedRenderer().Render(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(doc, "<?xml") {
		t.Fatalf("expected document declaration, got %q", doc[:20])
	}
	for _, want := range []string{
		"<NCAASports>",
		"<Metadata>",
		"<GeneratedAt>2026-01-15 09:30:05</GeneratedAt>",
		`<Contests count="0">`,
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("expected document to contain %q:\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "<Contest ") {
		t.Fatalf("expected no contest children:\n%s", doc)
	}
}

func TestRenderOmitsEmptyFields(t *testing.T) {
	c := contests.Contest{
		ID:        "c1",
		Venue:     "",
		Broadcast: "ESPN",
		HomeTeam:  contests.TeamSide{Name: "State", ShortName: "ST"},
	}
	doc, err := fixedRenderer().Render([]contests.Contest{c}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(doc, "<Broadcast>ESPN</Broadcast>") {
		t.Fatalf("expected Broadcast child:\n%s", doc)
	}
	if strings.Contains(doc, "<Venue>") {
		t.Fatalf("expected no Venue child:\n%s", doc)
	}
	if !strings.Contains(doc, `<Contest id="c1">`) {
		t.Fatalf("expected id attribute:\n%s", doc)
	}
	if !strings.Contains(doc, "<Shortname>ST</Shortname>") {
		t.Fatalf("expected Shortname element naming:\n%s", doc)
	}
	// Away side is entirely empty, so no node at all.
	if strings.Contains(doc, "<AwayTeam>") {
		t.Fatalf("expected no AwayTeam node:\n%s", doc)
	}
	if !strings.Contains(doc, "<HomeTeam>") {
		t.Fatalf("expected HomeTeam node:\n%s", doc)
	}
}

func TestRenderMetadataOrderPreserved(t *testing.T) {
	meta := []Meta{
		{Key: "Sport", Value: "Women's Basketball"},
		{Key: "Division", Value: "Division I"},
		{Key: "Date", Value: "01/15/2026"},
	}
	doc, err := fixedRenderer().Render(nil, meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sport := strings.Index(doc, "<Sport>")
	division := strings.Index(doc, "<Division>")
	date := strings.Index(doc, "<Date>")
	generated := strings.Index(doc, "<GeneratedAt>")
	if sport < 0 || division < 0 || date < 0 || generated < 0 {
		t.Fatalf("expected all metadata entries:\n%s", doc)
	}
	if !(sport < division && division < date && date < generated) {
		t.Fatalf("expected insertion order then GeneratedAt:\n%s", doc)
	}
}

func TestRenderDeterministic(t *testing.T) {
	items := []contests.Contest{
		{
			ID:     "c1",
			Date:   "01/15/2026",
			Status: "LIVE",
			HomeTeam: contests.TeamSide{
				Name: "A", Score: "55", Rank: "3", Conference: "Big Ten Conference", Record: "14-2",
			},
			AwayTeam: contests.TeamSide{Name: "B", Score: "51"},
		},
	}
	meta := []Meta{{Key: "Source", Value: "live"}}

	r := fixedRenderer()
	first, err := r.Render(items, meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := r.Render(items, meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatal("expected byte-identical output for identical inputs")
	}
}

func TestRenderEscapesMarkup(t *testing.T) {
	c := contests.Contest{
		ID:       "c1",
		Venue:    `Smith & Jones <Arena>`,
		HomeTeam: contests.TeamSide{Name: "A&M"},
	}
	doc, err := fixedRenderer().Render([]contests.Contest{c}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc, "Smith &amp; Jones &lt;Arena&gt;") {
		t.Fatalf("expected escaped venue text:\n%s", doc)
	}
	if !strings.Contains(doc, "<Name>A&amp;M</Name>") {
		t.Fatalf("expected escaped team name:\n%s", doc)
	}
}

func TestRenderIndentsNestedLevels(t *testing.T) {
	doc, err := fixedRenderer().Render([]contests.Contest{
		{ID: "c1", HomeTeam: contests.TeamSide{Name: "A"}},
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc, "\n  <Contests") {
		t.Fatalf("expected two-space indent at depth one:\n%s", doc)
	}
	if !strings.Contains(doc, "\n      <HomeTeam>") {
		t.Fatalf("expected two-space indent per level:\n%s", doc)
	}
}
