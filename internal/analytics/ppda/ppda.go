// Package ppda computes passes per defensive action, a pressing
// intensity measure. Lower means a more aggressive press.
package ppda

import "github.com/riskibarqy/pitchmart/internal/domain/event"

// DefaultZoneX bounds the pressing zone to the opponent's 60% of the
// 120-length pitch.
const DefaultZoneX = 48.0

// defensiveActionTypes are the event types counted in the denominator.
var defensiveActionTypes = map[string]struct{}{
	"Tackle":         {},
	"Interception":   {},
	"Foul Committed": {},
	"Pressure":       {},
	"Ball Recovery":  {},
}

// Value is one team's pressing measure for one match. PPDA stays nil
// when the team recorded no defensive actions in the zone; the ratio
// is undefined there, not one.
type Value struct {
	TeamID           int64
	TeamName         string
	PassesAllowed    int64
	DefensiveActions int64
	PPDA             *float64
}

// Compute derives both teams' PPDA from one match's events and pass
// details. The numerator counts only completed passes in the zone; the
// denominator counts defensive actions there. Matches that don't
// resolve to exactly two teams yield nothing.
func Compute(events []event.Event, passes []event.PassDetail, zoneX float64) []Value {
	if zoneX <= 0 {
		zoneX = DefaultZoneX
	}

	type teamCounts struct {
		name       string
		passes     int64
		defActions int64
	}
	counts := map[int64]*teamCounts{}

	team := func(id int64, name *string) *teamCounts {
		tc, ok := counts[id]
		if !ok {
			tc = &teamCounts{}
			counts[id] = tc
		}
		if tc.name == "" && name != nil {
			tc.name = *name
		}
		return tc
	}

	for _, ev := range events {
		if ev.TeamID == nil {
			continue
		}
		tc := team(*ev.TeamID, ev.TeamName)

		if ev.LocationX == nil || *ev.LocationX <= zoneX {
			continue
		}
		if _, ok := defensiveActionTypes[ev.Type]; ok {
			tc.defActions++
		}
	}

	for _, pd := range passes {
		if pd.Event.TeamID == nil {
			continue
		}
		tc := team(*pd.Event.TeamID, pd.Event.TeamName)

		if !pd.Pass.IsCompleted {
			continue
		}
		if pd.Event.LocationX == nil || *pd.Event.LocationX <= zoneX {
			continue
		}
		tc.passes++
	}

	if len(counts) != 2 {
		return nil
	}

	ids := make([]int64, 0, 2)
	for id := range counts {
		ids = append(ids, id)
	}
	if ids[0] > ids[1] {
		ids[0], ids[1] = ids[1], ids[0]
	}

	out := make([]Value, 0, 2)
	for i, id := range ids {
		opponent := counts[ids[1-i]]
		own := counts[id]

		v := Value{
			TeamID:           id,
			TeamName:         own.name,
			PassesAllowed:    opponent.passes,
			DefensiveActions: own.defActions,
		}
		if own.defActions > 0 {
			ratio := float64(opponent.passes) / float64(own.defActions)
			v.PPDA = &ratio
		}
		out = append(out, v)
	}
	return out
}
