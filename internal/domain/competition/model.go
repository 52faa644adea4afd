package competition

// Competition is one competition season as served by the StatsBomb open
// data feed. A season is the unit of ingestion, so the pair
// (CompetitionID, SeasonID) identifies a row.
type Competition struct {
	CompetitionID   int64
	SeasonID        int64
	CompetitionName string
	SeasonName      string
	CountryName     string
}
