package ppda

import (
	"testing"

	"github.com/riskibarqy/pitchmart/internal/domain/event"
)

func ev(teamID int64, teamName, eventType string, x float64) event.Event {
	return event.Event{
		Type:      eventType,
		TeamID:    &teamID,
		TeamName:  &teamName,
		LocationX: &x,
	}
}

func pass(teamID int64, teamName string, x float64, completed bool) event.PassDetail {
	return event.PassDetail{
		Event: ev(teamID, teamName, "Pass", x),
		Pass:  event.Pass{IsCompleted: completed},
	}
}

func TestComputeExactRatio(t *testing.T) {
	var passes []event.PassDetail
	// Team 2 completes 12 passes in team 1's pressing zone.
	for i := 0; i < 12; i++ {
		passes = append(passes, pass(2, "France", 60, true))
	}
	// Team 1 makes 4 defensive actions there.
	events := []event.Event{
		ev(1, "Argentina", "Pressure", 55),
		ev(1, "Argentina", "Tackle", 70),
		ev(1, "Argentina", "Interception", 50),
		ev(1, "Argentina", "Ball Recovery", 90),
	}
	// Outside the zone: must not count.
	passes = append(passes, pass(2, "France", 30, true))
	events = append(events, ev(1, "Argentina", "Tackle", 20))
	// Non-defensive types in zone: must not count either.
	events = append(events, ev(1, "Argentina", "Carry", 60))

	values := Compute(events, passes, DefaultZoneX)
	if len(values) != 2 {
		t.Fatalf("expected two teams, got %d", len(values))
	}

	one := values[0]
	if one.TeamID != 1 {
		t.Fatalf("expected team 1 first, got %d", one.TeamID)
	}
	if one.PassesAllowed != 12 || one.DefensiveActions != 4 {
		t.Fatalf("unexpected counts: %+v", one)
	}
	if one.PPDA == nil || *one.PPDA != 3.0 {
		t.Fatalf("want PPDA 3.0, got %+v", one.PPDA)
	}
}

func TestComputeCountsOnlyCompletedPasses(t *testing.T) {
	passes := []event.PassDetail{
		pass(2, "France", 60, true),
		pass(2, "France", 75, true),
		pass(2, "France", 65, false),
	}
	events := []event.Event{
		ev(1, "Argentina", "Tackle", 55),
	}

	values := Compute(events, passes, DefaultZoneX)
	if len(values) != 2 {
		t.Fatalf("expected two teams, got %d", len(values))
	}
	one := values[0]
	if one.TeamID != 1 {
		t.Fatalf("expected team 1 first, got %d", one.TeamID)
	}
	if one.PassesAllowed != 2 {
		t.Fatalf("incomplete pass must not count: %+v", one)
	}
	if one.PPDA == nil || *one.PPDA != 2.0 {
		t.Fatalf("want PPDA 2.0, got %+v", one.PPDA)
	}
}

func TestComputeZeroDenominatorIsUndefined(t *testing.T) {
	passes := []event.PassDetail{
		pass(1, "Argentina", 60, true),
		pass(2, "France", 60, true),
	}

	values := Compute(nil, passes, DefaultZoneX)
	if len(values) != 2 {
		t.Fatalf("expected two teams, got %d", len(values))
	}
	for _, v := range values {
		if v.PPDA != nil {
			t.Fatalf("no defensive actions must leave PPDA undefined: %+v", v)
		}
		if v.PassesAllowed != 1 {
			t.Fatalf("passes allowed must still be counted: %+v", v)
		}
	}
}

func TestComputeNeedsTwoTeams(t *testing.T) {
	if values := Compute(nil, []event.PassDetail{pass(1, "Argentina", 60, true)}, DefaultZoneX); values != nil {
		t.Fatalf("single team must yield nothing, got %+v", values)
	}
	if values := Compute(nil, nil, DefaultZoneX); values != nil {
		t.Fatalf("no events must yield nothing, got %+v", values)
	}
}

func TestComputeBoundaryIsExclusive(t *testing.T) {
	events := []event.Event{
		ev(1, "Argentina", "Tackle", 48),
		ev(1, "Argentina", "Tackle", 48.1),
	}
	passes := []event.PassDetail{
		pass(2, "France", 48, true),
		pass(2, "France", 48.1, true),
	}

	values := Compute(events, passes, DefaultZoneX)
	for _, v := range values {
		if v.TeamID == 1 && (v.PassesAllowed != 1 || v.DefensiveActions != 1) {
			t.Fatalf("x = 48 must fall outside the zone: %+v", v)
		}
	}
}
