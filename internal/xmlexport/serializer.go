// Package xmlexport renders curated contests into the XML export document and
// persists it to disk. Rendering is deterministic: element order is fixed by
// the schema, not by map iteration, so identical inputs produce identical
// bytes.
package xmlexport

import (
	"encoding/xml"
	"fmt"
	"time"

	"ncaa-contests-service/internal/domain/contests"
	"ncaa-contests-service/internal/timeutil"
)

// Meta is one caller-supplied metadata entry. Entries are emitted in the
// order given.
type Meta struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Renderer produces export documents.
type Renderer struct {
	now func() time.Time
}

// NewRenderer constructs a Renderer using wall-clock time for the
// GeneratedAt stamp.
func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

type xmlMetaEntry struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type xmlMetadata struct {
	XMLName     xml.Name `xml:"Metadata"`
	Entries     []xmlMetaEntry
	GeneratedAt string `xml:"GeneratedAt"`
}

type xmlTeam struct {
	Name       string `xml:"Name,omitempty"`
	ShortName  string `xml:"Shortname,omitempty"`
	Score      string `xml:"Score,omitempty"`
	Rank       string `xml:"Rank,omitempty"`
	Conference string `xml:"Conference,omitempty"`
	Record     string `xml:"Record,omitempty"`
}

type xmlContest struct {
	XMLName    xml.Name `xml:"Contest"`
	ID         string   `xml:"id,attr"`
	Date       string   `xml:"Date,omitempty"`
	Time       string   `xml:"Time,omitempty"`
	Location   string   `xml:"Location,omitempty"`
	Venue      string   `xml:"Venue,omitempty"`
	Status     string   `xml:"Status,omitempty"`
	Broadcast  string   `xml:"Broadcast,omitempty"`
	Tournament string   `xml:"Tournament,omitempty"`
	Sport      string   `xml:"Sport,omitempty"`
	Division   string   `xml:"Division,omitempty"`
	HomeTeam   *xmlTeam `xml:"HomeTeam,omitempty"`
	AwayTeam   *xmlTeam `xml:"AwayTeam,omitempty"`
}

type xmlDocument struct {
	XMLName  xml.Name `xml:"NCAASports"`
	Metadata xmlMetadata
	Contests struct {
		Count    string `xml:"count,attr"`
		Contests []xmlContest
	} `xml:"Contests"`
}

// Render produces the export document for the given contests and metadata.
func (r *Renderer) Render(items []contests.Contest, meta []Meta) (string, error) {
	doc := xmlDocument{}

	for _, m := range meta {
		doc.Metadata.Entries = append(doc.Metadata.Entries, xmlMetaEntry{
			XMLName: xml.Name{Local: m.Key},
			Value:   m.Value,
		})
	}
	doc.Metadata.GeneratedAt = timeutil.FormatTimestamp(r.now())

	doc.Contests.Count = fmt.Sprintf("%d", len(items))
	for _, c := range items {
		doc.Contests.Contests = append(doc.Contests.Contests, mapContest(c))
	}

	encoded, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("xmlexport: render: %w", err)
	}
	return xml.Header + string(encoded) + "\n", nil
}

func mapContest(c contests.Contest) xmlContest {
	return xmlContest{
		ID:         c.ID,
		Date:       c.Date,
		Time:       c.Time,
		Location:   c.Location,
		Venue:      c.Venue,
		Status:     c.Status,
		Broadcast:  c.Broadcast,
		Tournament: c.Tournament,
		Sport:      c.Sport,
		Division:   c.Division,
		HomeTeam:   mapTeam(c.HomeTeam),
		AwayTeam:   mapTeam(c.AwayTeam),
	}
}

func mapTeam(side contests.TeamSide) *xmlTeam {
	if side == (contests.TeamSide{}) {
		return nil
	}
	return &xmlTeam{
		Name:       side.Name,
		ShortName:  side.ShortName,
		Score:      side.Score,
		Rank:       side.Rank,
		Conference: side.Conference,
		Record:     side.Record,
	}
}
