package ncaa

import (
	"encoding/json"
	"log/slog"

	"ncaa-contests-service/internal/domain/contests"
	"ncaa-contests-service/internal/logging"
)

// ParsePayload normalizes a raw provider response body into contests. An
// absent or malformed envelope yields an empty slice; a single malformed
// contest entry is skipped and logged while its siblings are still parsed.
func ParsePayload(body []byte, logger *slog.Logger) []contests.Contest {
	var envelope contestsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		logging.Warn(logger, "contest payload undecodable", slog.Any("err", err))
		return []contests.Contest{}
	}

	parsed := make([]contests.Contest, 0, len(envelope.Data.Contests))
	for i, raw := range envelope.Data.Contests {
		var rc rawContest
		if err := json.Unmarshal(raw, &rc); err != nil {
			logging.Warn(logger, "skipping malformed contest entry",
				slog.Int("index", i), slog.Any("err", err))
			continue
		}
		parsed = append(parsed, mapContest(rc))
	}
	return parsed
}

func mapContest(rc rawContest) contests.Contest {
	return contests.Contest{
		ID:         rc.ID.String(),
		Date:       rc.StartDate.String(),
		Time:       rc.StartTime.String(),
		Location:   rc.Location.String(),
		Venue:      rc.Venue.String(),
		Status:     rc.ContestState.String(),
		Broadcast:  rc.Broadcast.String(),
		Tournament: rc.Tournament.String(),
		Sport:      rc.Sport.String(),
		Division:   rc.Division.String(),
		HomeTeam:   mapSide(rc.Home),
		AwayTeam:   mapSide(rc.Away),
	}
}

func mapSide(rs *rawSide) contests.TeamSide {
	if rs == nil {
		return contests.TeamSide{}
	}
	return contests.TeamSide{
		Name:       rs.Names.Full.String(),
		ShortName:  rs.Names.Short.String(),
		Score:      rs.Score.String(),
		Rank:       rs.Rank.String(),
		Conference: firstConference(rs.Conferences),
		Record:     rs.CurrentRecord.String(),
	}
}

// firstConference takes the first entry of the side's conference list, else "".
func firstConference(list []rawConference) string {
	if len(list) == 0 {
		return ""
	}
	return list[0].ConferenceName.String()
}
