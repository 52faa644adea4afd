package postgres

type xgTimelineTableModel struct {
	MatchID      int64   `db:"match_id"`
	TeamID       int64   `db:"team_id"`
	TeamName     string  `db:"team_name"`
	Period       int64   `db:"period"`
	Minute       int64   `db:"minute"`
	Second       int64   `db:"second"`
	XG           float64 `db:"xg"`
	CumulativeXG float64 `db:"cumulative_xg"`
	IsGoal       bool    `db:"is_goal"`
}

type shotMapTableModel struct {
	MatchID    int64    `db:"match_id"`
	EventID    string   `db:"event_id"`
	TeamID     int64    `db:"team_id"`
	TeamName   string   `db:"team_name"`
	PlayerID   *int64   `db:"player_id"`
	PlayerName *string  `db:"player_name"`
	LocationX  float64  `db:"location_x"`
	LocationY  float64  `db:"location_y"`
	XG         float64  `db:"xg"`
	Outcome    *string  `db:"outcome"`
	BodyPart   *string  `db:"body_part"`
	Technique  *string  `db:"technique"`
	ShotType   *string  `db:"shot_type"`
	IsGoal     bool     `db:"is_goal"`
}

type passNetworkNodeTableModel struct {
	MatchID    int64   `db:"match_id"`
	TeamID     int64   `db:"team_id"`
	PlayerID   int64   `db:"player_id"`
	PlayerName string  `db:"player_name"`
	Position   *string `db:"position"`
	X          float64 `db:"avg_x"`
	Y          float64 `db:"avg_y"`
	Touches    int64   `db:"touch_count"`
	PassCount  int64   `db:"pass_count"`
}

type passNetworkEdgeTableModel struct {
	MatchID     int64   `db:"match_id"`
	TeamID      int64   `db:"team_id"`
	PasserID    int64   `db:"passer_id"`
	RecipientID int64   `db:"recipient_id"`
	PassCount   int64   `db:"pass_count"`
	MeanStartX  float64 `db:"avg_start_x"`
	MeanStartY  float64 `db:"avg_start_y"`
	MeanEndX    float64 `db:"avg_end_x"`
	MeanEndY    float64 `db:"avg_end_y"`
}

type formationPositionTableModel struct {
	MatchID      int64   `db:"match_id"`
	TeamID       int64   `db:"team_id"`
	PlayerID     int64   `db:"player_id"`
	PlayerName   string  `db:"player_name"`
	Position     *string `db:"position"`
	JerseyNumber *int64  `db:"jersey_number"`
	IsStarter    bool    `db:"is_starter"`
	X            float64 `db:"avg_x"`
	Y            float64 `db:"avg_y"`
	Touches      int64   `db:"touch_count"`
}

type teamStatsTableModel struct {
	MatchID           int64    `db:"match_id"`
	TeamID            int64    `db:"team_id"`
	TeamName          string   `db:"team_name"`
	Shots             int64    `db:"total_shots"`
	ShotsOnTarget     int64    `db:"shots_on_target"`
	Goals             int64    `db:"goals"`
	TotalXG           float64  `db:"total_xg"`
	Passes            int64    `db:"total_passes"`
	PassesCompleted   int64    `db:"passes_completed"`
	PassCompletionPct float64  `db:"pass_completion_pct"`
	Carries           int64    `db:"total_carries"`
	Pressures         int64    `db:"total_pressures"`
	PPDA              *float64 `db:"ppda"`
}

type ppdaMatchTableModel struct {
	MatchID          int64    `db:"match_id"`
	TeamID           int64    `db:"team_id"`
	TeamName         string   `db:"team_name"`
	PassesAllowed    int64    `db:"opp_passes_in_zone"`
	DefensiveActions int64    `db:"def_actions"`
	PPDA             *float64 `db:"ppda"`
}

type ppdaTeamTableModel struct {
	CompetitionID  int64    `db:"competition_id"`
	SeasonID       int64    `db:"season_id"`
	TeamID         int64    `db:"team_id"`
	TeamName       string   `db:"team_name"`
	MatchesPlayed  int64    `db:"matches_played"`
	MatchesDefined int64    `db:"matches_defined"`
	AvgPPDA        *float64 `db:"avg_ppda"`
}

type xtGridTableModel struct {
	CellX       int64   `db:"grid_col"`
	CellY       int64   `db:"grid_row"`
	Value       float64 `db:"xt_value"`
	ShotProb    float64 `db:"shot_prob"`
	GoalProb    float64 `db:"goal_prob"`
	Iterations  int64   `db:"iterations"`
	Approximate bool    `db:"approximate"`
}

type xtPlayerTableModel struct {
	PlayerID   int64   `db:"player_id"`
	PlayerName string  `db:"player_name"`
	Matches    int64   `db:"matches_played"`
	TotalXT    float64 `db:"total_xt_added"`
	PassXT     float64 `db:"xt_passes"`
	CarryXT    float64 `db:"xt_carries"`
	XTPerMatch float64 `db:"xt_per_match"`
}
