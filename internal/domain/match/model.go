package match

import "time"

// Match is one fixture of a competition season. Scores are pointers
// because the source feed occasionally publishes matches before a
// result is recorded.
type Match struct {
	MatchID       int64
	CompetitionID int64
	SeasonID      int64
	MatchDate     time.Time
	KickOff       *string
	HomeTeamID    int64
	HomeTeamName  string
	AwayTeamID    int64
	AwayTeamName  string
	HomeScore     *int64
	AwayScore     *int64
	MatchWeek     *int64
	Stadium       *string
	Referee       *string
	Stage         *string
}
