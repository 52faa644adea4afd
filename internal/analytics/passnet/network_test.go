package passnet

import (
	"testing"

	"github.com/riskibarqy/pitchmart/internal/domain/event"
)

func starterEntry(teamID, playerID int64, name string) event.LineupEntry {
	pos := "Midfield"
	return event.LineupEntry{
		MatchID:    1,
		TeamID:     teamID,
		PlayerID:   playerID,
		PlayerName: name,
		Position:   &pos,
		IsStarter:  true,
	}
}

func passDetail(teamID, passer, recipient int64, minute int64, x, y, endX, endY float64, completed bool) event.PassDetail {
	var outcome *string
	if !completed {
		s := "Incomplete"
		outcome = &s
	}
	return event.PassDetail{
		Event: event.Event{
			Type:      "Pass",
			Period:    1,
			Minute:    minute,
			TeamID:    &teamID,
			PlayerID:  &passer,
			LocationX: &x,
			LocationY: &y,
		},
		Pass: event.Pass{
			RecipientID: &recipient,
			EndX:        &endX,
			EndY:        &endY,
			Outcome:     outcome,
			IsCompleted: completed,
		},
	}
}

func touch(teamID, playerID int64, minute int64, x, y float64) event.Event {
	return event.Event{
		Type:      "Carry",
		Period:    1,
		Minute:    minute,
		TeamID:    &teamID,
		PlayerID:  &playerID,
		LocationX: &x,
		LocationY: &y,
	}
}

func TestBuildCountsOrderedEdges(t *testing.T) {
	lineups := []event.LineupEntry{
		starterEntry(1, 10, "A"),
		starterEntry(1, 20, "B"),
		starterEntry(1, 30, "C"),
	}

	passes := []event.PassDetail{
		passDetail(1, 10, 20, 5, 40, 40, 60, 40, true),
		passDetail(1, 10, 20, 15, 42, 38, 58, 42, true),
		passDetail(1, 20, 30, 20, 60, 40, 80, 40, true),
		// Incomplete: no edge.
		passDetail(1, 30, 10, 25, 80, 40, 40, 40, false),
		// Other team: no edge.
		passDetail(2, 10, 20, 25, 40, 40, 60, 40, true),
	}

	events := []event.Event{
		touch(1, 10, 5, 40, 40),
		touch(1, 20, 10, 60, 40),
		touch(1, 30, 20, 80, 40),
	}
	for _, p := range passes[:4] {
		events = append(events, p.Event)
	}

	network := Build(1, events, passes, lineups, 0)

	if len(network.Edges) != 2 {
		t.Fatalf("expected 2 edges, got %+v", network.Edges)
	}
	ab := network.Edges[0]
	if ab.PasserID != 10 || ab.RecipientID != 20 || ab.PassCount != 2 {
		t.Fatalf("unexpected A->B edge: %+v", ab)
	}
	if ab.MeanStartX != 41 || ab.MeanEndY != 41 {
		t.Fatalf("unexpected A->B means: %+v", ab)
	}
	bc := network.Edges[1]
	if bc.PasserID != 20 || bc.RecipientID != 30 || bc.PassCount != 1 {
		t.Fatalf("unexpected B->C edge: %+v", bc)
	}
}

func TestBuildNodePositionsAreTouchMeans(t *testing.T) {
	lineups := []event.LineupEntry{starterEntry(1, 10, "A")}
	events := []event.Event{
		touch(1, 10, 5, 30, 20),
		touch(1, 10, 10, 50, 40),
		touch(1, 10, 15, 40, 30),
	}

	network := Build(1, events, nil, lineups, 0)
	if len(network.Nodes) != 1 {
		t.Fatalf("expected one node, got %+v", network.Nodes)
	}
	node := network.Nodes[0]
	if node.X != 40 || node.Y != 30 {
		t.Fatalf("unexpected mean position: %+v", node)
	}
	if node.Touches != 3 {
		t.Fatalf("unexpected touch count: %+v", node)
	}
	if node.PlayerName != "A" {
		t.Fatalf("node must fall back to the lineup name: %+v", node)
	}
}

func TestBuildWindowClosesAtFirstSubstitution(t *testing.T) {
	lineups := []event.LineupEntry{
		starterEntry(1, 10, "A"),
		starterEntry(1, 20, "B"),
	}

	sub := int64(1)
	subTeam := int64(1)
	lateTouch := touch(1, 10, 70, 90, 40)
	lateTouch.Period = 2
	events := []event.Event{
		touch(1, 10, 30, 40, 40),
		{Type: "Substitution", Period: 2, Minute: 60, Second: 12, TeamID: &subTeam, PlayerID: &sub},
		lateTouch,
	}

	passes := []event.PassDetail{
		passDetail(1, 10, 20, 30, 40, 40, 60, 40, true),
		passDetail(1, 10, 20, 70, 40, 40, 60, 40, true),
	}
	passes[1].Event.Period = 2

	network := Build(1, events, passes, lineups, 0)

	if len(network.Edges) != 1 || network.Edges[0].PassCount != 1 {
		t.Fatalf("pass after the first substitution must not count: %+v", network.Edges)
	}
	if network.Nodes[0].Touches != 1 {
		t.Fatalf("touch after the first substitution must not count: %+v", network.Nodes[0])
	}
}

func TestBuildExplicitCutoffOverridesSubstitution(t *testing.T) {
	lineups := []event.LineupEntry{
		starterEntry(1, 10, "A"),
		starterEntry(1, 20, "B"),
	}
	passes := []event.PassDetail{
		passDetail(1, 10, 20, 10, 40, 40, 60, 40, true),
		passDetail(1, 10, 20, 50, 40, 40, 60, 40, true),
	}

	network := Build(1, nil, passes, lineups, 45)
	if len(network.Edges) != 1 || network.Edges[0].PassCount != 1 {
		t.Fatalf("cutoff minute must bound the window: %+v", network.Edges)
	}
}

func TestBuildEdgeMeansUseLocatedPassesOnly(t *testing.T) {
	lineups := []event.LineupEntry{
		starterEntry(1, 10, "A"),
		starterEntry(1, 20, "B"),
	}

	located := passDetail(1, 10, 20, 5, 40, 40, 60, 40, true)
	unlocated := passDetail(1, 10, 20, 10, 0, 0, 0, 0, true)
	unlocated.Event.LocationX = nil
	unlocated.Event.LocationY = nil
	unlocated.Pass.EndX = nil
	unlocated.Pass.EndY = nil

	network := Build(1, nil, []event.PassDetail{located, unlocated}, lineups, 0)

	if len(network.Edges) != 1 {
		t.Fatalf("expected one edge, got %+v", network.Edges)
	}
	edge := network.Edges[0]
	if edge.PassCount != 2 {
		t.Fatalf("unlocated completed pass must still weigh the edge: %+v", edge)
	}
	if edge.MeanStartX != 40 || edge.MeanStartY != 40 || edge.MeanEndX != 60 || edge.MeanEndY != 40 {
		t.Fatalf("means must average only located passes: %+v", edge)
	}
}

func TestBuildDropsStartersWithoutTouches(t *testing.T) {
	lineups := []event.LineupEntry{
		starterEntry(1, 10, "A"),
		starterEntry(1, 20, "B"),
	}
	events := []event.Event{touch(1, 10, 5, 40, 40)}

	network := Build(1, events, nil, lineups, 0)
	if len(network.Nodes) != 1 || network.Nodes[0].PlayerID != 10 {
		t.Fatalf("a starter with no located touch has no position and no node: %+v", network.Nodes)
	}
}

func TestBuildIgnoresNonStarters(t *testing.T) {
	bench := starterEntry(1, 99, "Sub")
	bench.IsStarter = false
	lineups := []event.LineupEntry{starterEntry(1, 10, "A"), bench}

	passes := []event.PassDetail{
		passDetail(1, 10, 99, 10, 40, 40, 60, 40, true),
		passDetail(1, 99, 10, 12, 60, 40, 40, 40, true),
	}
	events := []event.Event{touch(1, 99, 5, 40, 40)}

	network := Build(1, events, passes, lineups, 0)
	if len(network.Edges) != 0 {
		t.Fatalf("edges touching non-starters must be dropped: %+v", network.Edges)
	}
	if len(network.Nodes) != 0 {
		t.Fatalf("non-starters must not become nodes: %+v", network.Nodes)
	}
}
