package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("match_id", "team_id").
		From("fact_events").
		Where(Eq("type", "Pass"), Gt("location_x", 48.0), NotNull("team_id")).
		GroupBy("match_id", "team_id").
		OrderBy("match_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT match_id, team_id FROM fact_events WHERE type = $1 AND location_x > $2 AND team_id IS NOT NULL GROUP BY match_id, team_id ORDER BY match_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Pass" || args[1] != 48.0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilderMultiRow(t *testing.T) {
	query, args, err := InsertInto("dim_team").
		Columns("team_id", "team_name").
		Values(int64(1), "Argentina").
		Values(int64(2), "France").
		Suffix("ON CONFLICT (team_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO dim_team (team_id, team_name) VALUES ($1, $2), ($3, $4) ON CONFLICT (team_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("gold_shot_map").
		Where(Eq("match_id", int64(3857256))).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM gold_shot_map WHERE match_id = $1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != int64(3857256) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		TeamID   int64  `db:"team_id"`
		TeamName string `db:"team_name"`
	}

	query, args, err := InsertModels("dim_team", []row{
		{TeamID: 1, TeamName: "Argentina"},
		{TeamID: 2, TeamName: "France"},
	}, "")
	if err != nil {
		t.Fatalf("build insert models query: %v", err)
	}

	wantQuery := "INSERT INTO dim_team (team_id, team_name) VALUES ($1, $2), ($3, $4)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != int64(2) {
		t.Fatalf("unexpected args: %+v", args)
	}
}
