package ncaa

import "encoding/json"

// contestsEnvelope is the provider's top-level response shape. Individual
// contest entries stay raw so one malformed record cannot fail the batch.
type contestsEnvelope struct {
	Data struct {
		Contests []json.RawMessage `json:"contests"`
	} `json:"data"`
}

type rawContest struct {
	ID           flexString `json:"id"`
	StartDate    flexString `json:"startDate"`
	StartTime    flexString `json:"startTime"`
	Location     flexString `json:"location"`
	Venue        flexString `json:"venue"`
	ContestState flexString `json:"contestState"`
	Broadcast    flexString `json:"broadcast"`
	Tournament   flexString `json:"tournament"`
	Sport        flexString `json:"sport"`
	Division     flexString `json:"division"`
	Home         *rawSide   `json:"home"`
	Away         *rawSide   `json:"away"`
}

type rawSide struct {
	Names struct {
		Full  flexString `json:"full"`
		Short flexString `json:"short"`
	} `json:"names"`
	Score         flexString      `json:"score"`
	Rank          flexString      `json:"rank"`
	Conferences   []rawConference `json:"conferences"`
	CurrentRecord flexString      `json:"currentRecord"`
}

type rawConference struct {
	ConferenceName flexString `json:"conferenceName"`
}

// flexString absorbs the provider's loose scalar typing: JSON strings,
// numbers and booleans all decode to their text form, and null or any
// non-scalar value degrades to the empty string.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = ""
			return nil
		}
		*f = flexString(s)
	case '{', '[':
		*f = ""
	default:
		// Numbers and booleans keep their literal text.
		*f = flexString(data)
	}
	return nil
}

func (f flexString) String() string {
	return string(f)
}
