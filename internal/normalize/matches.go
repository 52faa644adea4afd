package normalize

import (
	"time"

	"github.com/riskibarqy/pitchmart/internal/domain/competition"
	"github.com/riskibarqy/pitchmart/internal/domain/match"
	"github.com/riskibarqy/pitchmart/internal/domain/team"
)

const matchDateLayout = "2006-01-02"

// Matches normalizes one season's raw match records and derives the
// teams that appear in them. Records without a match id or date are
// rejected; both source shapes land on the same rows.
func Matches(records []map[string]any) ([]match.Match, []team.Team, []Reject) {
	var (
		matches  []match.Match
		rejects  []Reject
		teamByID = map[int64]team.Team{}
	)

	for i, record := range records {
		d := newDoc(record)

		matchID := d.int64p("match_id")
		if matchID == nil {
			rejects = append(rejects, Reject{Index: i, Reason: "missing match_id"})
			continue
		}
		matchDate, err := time.Parse(matchDateLayout, d.strValue("match_date"))
		if err != nil {
			rejects = append(rejects, Reject{Index: i, Reason: "unparseable match_date"})
			continue
		}

		homeID := d.int64p("home_team.home_team_id")
		awayID := d.int64p("away_team.away_team_id")
		if homeID == nil || awayID == nil {
			rejects = append(rejects, Reject{Index: i, Reason: "missing team ids"})
			continue
		}
		homeName := d.strValue("home_team.home_team_name")
		awayName := d.strValue("away_team.away_team_name")

		compID := d.int64p("competition.competition_id")
		seasonID := d.int64p("season.season_id")
		if compID == nil || seasonID == nil {
			rejects = append(rejects, Reject{Index: i, Reason: "missing competition or season id"})
			continue
		}

		matches = append(matches, match.Match{
			MatchID:       *matchID,
			CompetitionID: *compID,
			SeasonID:      *seasonID,
			MatchDate:     matchDate,
			KickOff:       d.str("kick_off"),
			HomeTeamID:    *homeID,
			HomeTeamName:  homeName,
			AwayTeamID:    *awayID,
			AwayTeamName:  awayName,
			HomeScore:     d.int64p("home_score"),
			AwayScore:     d.int64p("away_score"),
			MatchWeek:     d.int64p("match_week"),
			Stadium:       d.str("stadium.name"),
			Referee:       d.str("referee.name"),
			Stage:         d.str("competition_stage.name"),
		})

		teamByID[*homeID] = team.Team{TeamID: *homeID, TeamName: homeName}
		teamByID[*awayID] = team.Team{TeamID: *awayID, TeamName: awayName}
	}

	teams := make([]team.Team, 0, len(teamByID))
	for _, t := range teamByID {
		teams = append(teams, t)
	}
	return matches, teams, rejects
}

// Competitions normalizes the competitions index. The file is flat in
// every vintage of the feed, but it goes through the same accessor so
// a nested variant would also work.
func Competitions(records []map[string]any) ([]competition.Competition, []Reject) {
	var (
		out     []competition.Competition
		rejects []Reject
	)
	for i, record := range records {
		d := newDoc(record)

		compID := d.int64p("competition_id")
		seasonID := d.int64p("season_id")
		if compID == nil || seasonID == nil {
			rejects = append(rejects, Reject{Index: i, Reason: "missing competition or season id"})
			continue
		}
		out = append(out, competition.Competition{
			CompetitionID:   *compID,
			SeasonID:        *seasonID,
			CompetitionName: d.strValue("competition_name"),
			SeasonName:      d.strValue("season_name"),
			CountryName:     d.strValue("country_name"),
		})
	}
	return out, rejects
}
