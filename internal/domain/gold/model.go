package gold

// XGTimelineRow is one shot on a team's cumulative expected-goals
// timeline, ordered by period, minute, second.
type XGTimelineRow struct {
	MatchID      int64
	TeamID       int64
	TeamName     string
	Period       int64
	Minute       int64
	Second       int64
	XG           float64
	CumulativeXG float64
	IsGoal       bool
}

type ShotMapRow struct {
	MatchID    int64
	EventID    string
	TeamID     int64
	TeamName   string
	PlayerID   *int64
	PlayerName *string
	LocationX  float64
	LocationY  float64
	XG         float64
	Outcome    *string
	BodyPart   *string
	Technique  *string
	ShotType   *string
	IsGoal     bool
}

// PassNetworkNode positions one starter at the mean of their own touch
// locations.
type PassNetworkNode struct {
	MatchID    int64
	TeamID     int64
	PlayerID   int64
	PlayerName string
	Position   *string
	X          float64
	Y          float64
	Touches    int64
	PassCount  int64
}

// PassNetworkEdge is an ordered passer-to-recipient link weighted by
// completed passes inside the network window.
type PassNetworkEdge struct {
	MatchID     int64
	TeamID      int64
	PasserID    int64
	RecipientID int64
	PassCount   int64
	MeanStartX  float64
	MeanStartY  float64
	MeanEndX    float64
	MeanEndY    float64
}

// FormationPositionRow is the touch-weighted mean position of every
// player who appeared, joined to their lineup entry.
type FormationPositionRow struct {
	MatchID      int64
	TeamID       int64
	PlayerID     int64
	PlayerName   string
	Position     *string
	JerseyNumber *int64
	IsStarter    bool
	X            float64
	Y            float64
	Touches      int64
}

type TeamStatsRow struct {
	MatchID           int64
	TeamID            int64
	TeamName          string
	Shots             int64
	ShotsOnTarget     int64
	Goals             int64
	TotalXG           float64
	Passes            int64
	PassesCompleted   int64
	PassCompletionPct float64
	Carries           int64
	Pressures         int64
	PPDA              *float64
}

// PPDAMatchRow records the raw PPDA inputs so a nil ratio stays
// auditable: DefensiveActions of zero leaves PPDA undefined.
type PPDAMatchRow struct {
	MatchID          int64
	TeamID           int64
	TeamName         string
	PassesAllowed    int64
	DefensiveActions int64
	PPDA             *float64
}

// PPDATeamRow averages a team's defined match PPDA values across a
// season. MatchesDefined counts only matches where the ratio existed.
type PPDATeamRow struct {
	CompetitionID  int64
	SeasonID       int64
	TeamID         int64
	TeamName       string
	MatchesPlayed  int64
	MatchesDefined int64
	AvgPPDA        *float64
}

// XTGridRow is one zone of the fitted expected-threat surface.
// Approximate is set when value iteration hit its budget before
// converging.
type XTGridRow struct {
	CellX       int64
	CellY       int64
	Value       float64
	ShotProb    float64
	GoalProb    float64
	Iterations  int64
	Approximate bool
}

type XTPlayerRow struct {
	PlayerID   int64
	PlayerName string
	Matches    int64
	TotalXT    float64
	PassXT     float64
	CarryXT    float64
	XTPerMatch float64
}

// MatchAggregates bundles every per-match gold table so persistence
// can replace a match's aggregates atomically.
type MatchAggregates struct {
	MatchID            int64
	XGTimeline         []XGTimelineRow
	ShotMap            []ShotMapRow
	PassNetworkNodes   []PassNetworkNode
	PassNetworkEdges   []PassNetworkEdge
	FormationPositions []FormationPositionRow
	TeamStats          []TeamStatsRow
	PPDA               []PPDAMatchRow
}
