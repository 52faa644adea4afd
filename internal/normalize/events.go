package normalize

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/pitchmart/internal/domain/event"
)

// enrichedTypes get a type-specific fact row in addition to the
// generic event row.
const (
	typePass  = "Pass"
	typeShot  = "Shot"
	typeCarry = "Carry"
)

// knownEventTypes is the StatsBomb v4 event taxonomy. Types outside it
// still produce a generic event row but are counted so feed drift
// shows up in the run report.
var knownEventTypes = map[string]struct{}{
	"Pass": {}, "Shot": {}, "Carry": {}, "Pressure": {}, "Ball Receipt*": {},
	"Ball Recovery": {}, "Duel": {}, "Clearance": {}, "Interception": {},
	"Dribble": {}, "Block": {}, "Foul Committed": {}, "Foul Won": {},
	"Goal Keeper": {}, "Substitution": {}, "Half Start": {}, "Half End": {},
	"Starting XI": {}, "Tactical Shift": {}, "Injury Stoppage": {},
	"Miscontrol": {}, "Dispossessed": {}, "Offside": {}, "50/50": {},
	"Error": {}, "Shield": {}, "Referee Ball-Drop": {}, "Own Goal For": {},
	"Own Goal Against": {}, "Player On": {}, "Player Off": {},
	"Bad Behaviour": {}, "Camera On": {}, "Camera off": {},
}

// Reject records one raw event excluded from the silver layer.
type Reject struct {
	Index  int
	Reason string
}

// Result is the canonical output of normalizing one match's events.
type Result struct {
	Events       []event.Event
	Passes       []event.Pass
	Shots        []event.Shot
	Carries      []event.Carry
	FreezeFrames []event.FreezeFramePlayer
	Rejected     []Reject
	Unmapped     map[string]int
}

// DecodeRecords parses one raw JSON array into generic records.
func DecodeRecords(data []byte) ([]map[string]any, error) {
	var records []map[string]any
	if err := sonic.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, "decode raw records")
	}
	return records, nil
}

// Events normalizes one match's raw event records. Records with an
// unusable identity or clock are rejected individually; absent
// optional fields become nil.
func Events(matchID int64, records []map[string]any) Result {
	res := Result{Unmapped: map[string]int{}}

	for i, record := range records {
		d := newDoc(record)

		ev, reason := extractEvent(matchID, d)
		if reason != "" {
			res.Rejected = append(res.Rejected, Reject{Index: i, Reason: reason})
			continue
		}

		res.Events = append(res.Events, ev)

		switch ev.Type {
		case typePass:
			res.Passes = append(res.Passes, extractPass(ev.EventID, matchID, d))
		case typeShot:
			res.Shots = append(res.Shots, extractShot(ev.EventID, matchID, d))
			res.FreezeFrames = append(res.FreezeFrames, extractFreezeFrame(ev.EventID, matchID, d)...)
		case typeCarry:
			res.Carries = append(res.Carries, extractCarry(ev.EventID, matchID, d))
		default:
			if _, ok := knownEventTypes[ev.Type]; !ok {
				res.Unmapped[ev.Type]++
			}
		}
	}

	return res
}

func extractEvent(matchID int64, d doc) (event.Event, string) {
	id := d.strValue("id")
	if id == "" {
		return event.Event{}, "missing event id"
	}
	typeName := d.strValue("type.name")
	if typeName == "" {
		return event.Event{}, "missing event type"
	}

	minute := d.int64p("minute")
	second := d.int64p("second")
	if minute == nil || second == nil {
		return event.Event{}, "missing event clock"
	}
	if *minute < 0 || *second < 0 {
		return event.Event{}, fmt.Sprintf("negative event clock %d:%d", *minute, *second)
	}

	index := d.int64p("index")
	period := d.int64p("period")
	if index == nil || period == nil {
		return event.Event{}, "missing index or period"
	}

	x, y := d.location("location")

	return event.Event{
		EventID:          id,
		MatchID:          matchID,
		Index:            *index,
		Period:           *period,
		Timestamp:        d.strValue("timestamp"),
		Minute:           *minute,
		Second:           *second,
		Type:             typeName,
		Possession:       d.int64p("possession"),
		PossessionTeamID: d.int64p("possession_team.id"),
		PlayPattern:      d.str("play_pattern.name"),
		TeamID:           d.int64p("team.id"),
		TeamName:         d.str("team.name"),
		PlayerID:         d.int64p("player.id"),
		PlayerName:       d.str("player.name"),
		Position:         d.str("position.name"),
		LocationX:        x,
		LocationY:        y,
		Duration:         d.float64p("duration"),
		UnderPressure:    d.boolValue("under_pressure"),
	}, ""
}

func extractPass(eventID string, matchID int64, d doc) event.Pass {
	endX, endY := d.location("pass.end_location")
	outcome := d.str("pass.outcome.name")

	return event.Pass{
		EventID:       eventID,
		MatchID:       matchID,
		RecipientID:   d.int64p("pass.recipient.id"),
		RecipientName: d.str("pass.recipient.name"),
		Length:        d.float64p("pass.length"),
		Angle:         d.float64p("pass.angle"),
		Height:        d.str("pass.height.name"),
		EndX:          endX,
		EndY:          endY,
		BodyPart:      d.str("pass.body_part.name"),
		PassType:      d.str("pass.type.name"),
		Technique:     d.str("pass.technique.name"),
		Outcome:       outcome,
		IsCompleted:   outcome == nil,
		IsCross:       d.boolValue("pass.cross"),
		IsSwitch:      d.boolValue("pass.switch"),
		IsThroughBall: d.boolValue("pass.through_ball"),
		IsShotAssist:  d.boolValue("pass.shot_assist"),
		IsGoalAssist:  d.boolValue("pass.goal_assist"),
	}
}

func extractShot(eventID string, matchID int64, d doc) event.Shot {
	endX, endY := d.location("shot.end_location")
	outcome := d.str("shot.outcome.name")

	return event.Shot{
		EventID:     eventID,
		MatchID:     matchID,
		StatsbombXG: d.float64p("shot.statsbomb_xg"),
		EndX:        endX,
		EndY:        endY,
		EndZ:        d.locationZ("shot.end_location"),
		Outcome:     outcome,
		Technique:   d.str("shot.technique.name"),
		BodyPart:    d.str("shot.body_part.name"),
		ShotType:    d.str("shot.type.name"),
		FirstTime:   d.boolValue("shot.first_time"),
		KeyPassID:   d.str("shot.key_pass_id"),
		IsGoal:      outcome != nil && *outcome == "Goal",
	}
}

func extractCarry(eventID string, matchID int64, d doc) event.Carry {
	endX, endY := d.location("carry.end_location")
	return event.Carry{
		EventID: eventID,
		MatchID: matchID,
		EndX:    endX,
		EndY:    endY,
	}
}

// extractFreezeFrame flattens the shot freeze frame. Frame entries are
// nested objects in both source shapes.
func extractFreezeFrame(eventID string, matchID int64, d doc) []event.FreezeFramePlayer {
	raw, ok := d.lookup("shot.freeze_frame")
	if !ok {
		return nil
	}
	entries, ok := raw.([]any)
	if !ok {
		return nil
	}

	out := make([]event.FreezeFramePlayer, 0, len(entries))
	for _, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		fd := doc{m: obj, shape: ShapeNested}
		x, y := fd.location("location")
		out = append(out, event.FreezeFramePlayer{
			ShotEventID: eventID,
			MatchID:     matchID,
			PlayerID:    fd.int64p("player.id"),
			PlayerName:  fd.str("player.name"),
			Position:    fd.str("position.name"),
			LocationX:   x,
			LocationY:   y,
			IsTeammate:  fd.boolValue("teammate"),
		})
	}
	return out
}
