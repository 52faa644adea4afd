package postgres

type competitionTableModel struct {
	CompetitionID   int64  `db:"competition_id"`
	SeasonID        int64  `db:"season_id"`
	CompetitionName string `db:"competition_name"`
	SeasonName      string `db:"season_name"`
	CountryName     string `db:"country_name"`
}
