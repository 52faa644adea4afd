package normalize

import (
	"reflect"
	"testing"
)

func TestMatchesFlatAndNestedProduceIdenticalRows(t *testing.T) {
	nested := map[string]any{
		"match_id":   float64(3857256),
		"match_date": "2022-12-18",
		"kick_off":   "18:00:00.000",
		"home_score": float64(3),
		"away_score": float64(3),
		"match_week": float64(7),
		"competition": map[string]any{
			"competition_id":   float64(43),
			"competition_name": "FIFA World Cup",
		},
		"season":            map[string]any{"season_id": float64(106), "season_name": "2022"},
		"home_team":         map[string]any{"home_team_id": float64(779), "home_team_name": "Argentina"},
		"away_team":         map[string]any{"away_team_id": float64(771), "away_team_name": "France"},
		"competition_stage": map[string]any{"id": float64(26), "name": "Final"},
		"stadium":           map[string]any{"id": float64(1), "name": "Lusail Stadium"},
		"referee":           map[string]any{"id": float64(2), "name": "Szymon Marciniak"},
	}
	flat := map[string]any{
		"match_id":                      float64(3857256),
		"match_date":                    "2022-12-18",
		"kick_off":                      "18:00:00.000",
		"home_score":                    float64(3),
		"away_score":                    float64(3),
		"match_week":                    float64(7),
		"competition.competition_id":    float64(43),
		"competition.competition_name":  "FIFA World Cup",
		"season.season_id":              float64(106),
		"season.season_name":            "2022",
		"home_team.home_team_id":        float64(779),
		"home_team.home_team_name":      "Argentina",
		"away_team.away_team_id":        float64(771),
		"away_team.away_team_name":      "France",
		"competition_stage.name":        "Final",
		"stadium.name":                  "Lusail Stadium",
		"referee.name":                  "Szymon Marciniak",
	}

	nestedRows, nestedTeams, nestedRejects := Matches([]map[string]any{nested})
	flatRows, flatTeams, flatRejects := Matches([]map[string]any{flat})

	if len(nestedRejects) != 0 || len(flatRejects) != 0 {
		t.Fatalf("unexpected rejects: %+v %+v", nestedRejects, flatRejects)
	}
	if !reflect.DeepEqual(nestedRows, flatRows) {
		t.Fatalf("match rows diverge:\nnested: %+v\nflat:   %+v", nestedRows[0], flatRows[0])
	}
	if len(nestedTeams) != 2 || len(flatTeams) != 2 {
		t.Fatalf("expected two teams from each shape")
	}

	m := nestedRows[0]
	if m.Stage == nil || *m.Stage != "Final" {
		t.Fatalf("unexpected stage: %+v", m.Stage)
	}
	if m.HomeScore == nil || *m.HomeScore != 3 {
		t.Fatalf("unexpected home score: %+v", m.HomeScore)
	}
}

func TestMatchesRejectsUnusableRecords(t *testing.T) {
	records := []map[string]any{
		{"match_date": "2022-12-18"},
		{"match_id": float64(1), "match_date": "not-a-date"},
	}

	rows, _, rejects := Matches(records)
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
	if len(rejects) != 2 {
		t.Fatalf("expected 2 rejects, got %+v", rejects)
	}
}

func TestCompetitions(t *testing.T) {
	records := []map[string]any{
		{
			"competition_id":   float64(43),
			"season_id":        float64(106),
			"competition_name": "FIFA World Cup",
			"season_name":      "2022",
			"country_name":     "International",
		},
		{"season_id": float64(27)},
	}

	rows, rejects := Competitions(records)
	if len(rows) != 1 || len(rejects) != 1 {
		t.Fatalf("unexpected split: rows=%d rejects=%d", len(rows), len(rejects))
	}
	if rows[0].CompetitionID != 43 || rows[0].SeasonName != "2022" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}
