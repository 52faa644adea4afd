package normalize

import "testing"

func TestLineups(t *testing.T) {
	records := []map[string]any{
		{
			"team_id":   float64(779),
			"team_name": "Argentina",
			"lineup": []any{
				map[string]any{
					"player_id":     float64(5503),
					"player_name":   "Lionel Messi",
					"jersey_number": float64(10),
					"country":       map[string]any{"id": float64(11), "name": "Argentina"},
					"positions": []any{
						map[string]any{
							"position":     "Right Center Forward",
							"from":         "00:00",
							"start_reason": "Starting XI",
						},
					},
				},
				map[string]any{
					"player_id":     float64(6909),
					"player_name":   "Paulo Dybala",
					"jersey_number": float64(21),
					"positions": []any{
						map[string]any{
							"position":     "Right Center Forward",
							"from":         "119:52",
							"start_reason": "Substitution - On (Tactical)",
						},
					},
				},
				map[string]any{
					"player_id":     float64(7055),
					"player_name":   "Gerónimo Rulli",
					"jersey_number": float64(12),
					"positions":     []any{},
				},
			},
		},
	}

	entries, players := Lineups(3857256, records)
	if len(entries) != 3 || len(players) != 3 {
		t.Fatalf("unexpected counts: entries=%d players=%d", len(entries), len(players))
	}

	byPlayer := map[int64]int{}
	for i, e := range entries {
		byPlayer[e.PlayerID] = i
	}

	starter := entries[byPlayer[5503]]
	if !starter.IsStarter {
		t.Fatal("Starting XI window must mark a starter")
	}
	if starter.Position == nil || *starter.Position != "Right Center Forward" {
		t.Fatalf("unexpected position: %+v", starter.Position)
	}

	sub := entries[byPlayer[6909]]
	if sub.IsStarter {
		t.Fatal("substitute with a position window must not be a starter")
	}
	if sub.Position == nil {
		t.Fatal("substitute who played must keep a position")
	}

	unused := entries[byPlayer[7055]]
	if unused.IsStarter || unused.Position != nil {
		t.Fatalf("unused substitute must have no position: %+v", unused)
	}

	if players[0].Country == nil || *players[0].Country != "Argentina" {
		t.Fatalf("unexpected country: %+v", players[0].Country)
	}
}
