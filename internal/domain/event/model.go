package event

// Event is the canonical, shape-independent form of one StatsBomb
// event. Optional source fields stay nil rather than zero so silver
// rows can distinguish "absent" from "zero".
type Event struct {
	EventID          string
	MatchID          int64
	Index            int64
	Period           int64
	Timestamp        string
	Minute           int64
	Second           int64
	Type             string
	Possession       *int64
	PossessionTeamID *int64
	PlayPattern      *string
	TeamID           *int64
	TeamName         *string
	PlayerID         *int64
	PlayerName       *string
	Position         *string
	LocationX        *float64
	LocationY        *float64
	Duration         *float64
	UnderPressure    bool
}

// Pass carries the pass-specific enrichment of an event. IsCompleted
// is derived from the source: a pass with no outcome reached its
// target.
type Pass struct {
	EventID       string
	MatchID       int64
	RecipientID   *int64
	RecipientName *string
	Length        *float64
	Angle         *float64
	Height        *string
	EndX          *float64
	EndY          *float64
	BodyPart      *string
	PassType      *string
	Technique     *string
	Outcome       *string
	IsCompleted   bool
	IsCross       bool
	IsSwitch      bool
	IsThroughBall bool
	IsShotAssist  bool
	IsGoalAssist  bool
}

type Shot struct {
	EventID     string
	MatchID     int64
	StatsbombXG *float64
	EndX        *float64
	EndY        *float64
	EndZ        *float64
	Outcome     *string
	Technique   *string
	BodyPart    *string
	ShotType    *string
	FirstTime   bool
	KeyPassID   *string
	IsGoal      bool
}

type Carry struct {
	EventID string
	MatchID int64
	EndX    *float64
	EndY    *float64
}

// LineupEntry is one player appearance in a match squad. IsStarter is
// true when the source lineup assigns the player a starting position.
type LineupEntry struct {
	MatchID      int64
	TeamID       int64
	PlayerID     int64
	PlayerName   string
	JerseyNumber *int64
	Position     *string
	IsStarter    bool
}

// FreezeFramePlayer is one player position captured at the moment of a
// shot.
type FreezeFramePlayer struct {
	ShotEventID string
	MatchID     int64
	PlayerID    *int64
	PlayerName  *string
	Position    *string
	LocationX   *float64
	LocationY   *float64
	IsTeammate  bool
}

// MatchFacts bundles every fact row of one match so persistence can
// commit or discard them as a unit.
type MatchFacts struct {
	MatchID      int64
	Events       []Event
	Passes       []Pass
	Shots        []Shot
	Carries      []Carry
	Lineups      []LineupEntry
	FreezeFrames []FreezeFramePlayer
}

// PassDetail joins a pass with its parent event for the aggregators,
// which need origin location, actor and clock alongside the pass
// fields.
type PassDetail struct {
	Event Event
	Pass  Pass
}

type ShotDetail struct {
	Event Event
	Shot  Shot
}

type CarryDetail struct {
	Event Event
	Carry Carry
}
