package postgres

import "time"

type matchTableModel struct {
	MatchID       int64     `db:"match_id"`
	CompetitionID int64     `db:"competition_id"`
	SeasonID      int64     `db:"season_id"`
	MatchDate     time.Time `db:"match_date"`
	KickOff       *string   `db:"kick_off"`
	HomeTeamID    int64     `db:"home_team_id"`
	HomeTeamName  string    `db:"home_team_name"`
	AwayTeamID    int64     `db:"away_team_id"`
	AwayTeamName  string    `db:"away_team_name"`
	HomeScore     *int64    `db:"home_score"`
	AwayScore     *int64    `db:"away_score"`
	MatchWeek     *int64    `db:"match_week"`
	Stadium       *string   `db:"stadium"`
	Referee       *string   `db:"referee"`
	Stage         *string   `db:"stage"`
}
