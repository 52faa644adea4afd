package usecase

import (
	"context"
	"testing"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/pitchmart/internal/config"
	"github.com/riskibarqy/pitchmart/internal/domain/matchstate"
	"github.com/riskibarqy/pitchmart/internal/infrastructure/bronze"
	"github.com/riskibarqy/pitchmart/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pitchmart/internal/platform/logging"
)

type fakeBronzeStore struct {
	competitions []bronze.CompetitionRow
	matches      map[[2]int64][]bronze.MatchRow
	events       map[int64][]bronze.EventRow
	lineups      map[int64][]bronze.LineupRow
}

func newFakeBronzeStore() *fakeBronzeStore {
	return &fakeBronzeStore{
		matches: map[[2]int64][]bronze.MatchRow{},
		events:  map[int64][]bronze.EventRow{},
		lineups: map[int64][]bronze.LineupRow{},
	}
}

func (s *fakeBronzeStore) WriteCompetitions(rows []bronze.CompetitionRow, _ bool) (bool, error) {
	s.competitions = rows
	return true, nil
}

func (s *fakeBronzeStore) WriteMatches(competitionID, seasonID int64, rows []bronze.MatchRow, _ bool) (bool, error) {
	s.matches[[2]int64{competitionID, seasonID}] = rows
	return true, nil
}

func (s *fakeBronzeStore) WriteEvents(matchID int64, rows []bronze.EventRow, _ bool) (bool, error) {
	s.events[matchID] = rows
	return true, nil
}

func (s *fakeBronzeStore) WriteLineups(matchID int64, rows []bronze.LineupRow, _ bool) (bool, error) {
	s.lineups[matchID] = rows
	return true, nil
}

func (s *fakeBronzeStore) ReadCompetitions() ([]bronze.CompetitionRow, error) {
	return s.competitions, nil
}

func (s *fakeBronzeStore) ReadMatches(competitionID, seasonID int64) ([]bronze.MatchRow, error) {
	return s.matches[[2]int64{competitionID, seasonID}], nil
}

func (s *fakeBronzeStore) ReadEvents(matchID int64) ([]bronze.EventRow, error) {
	return s.events[matchID], nil
}

func (s *fakeBronzeStore) ReadLineups(matchID int64) ([]bronze.LineupRow, error) {
	return s.lineups[matchID], nil
}

func (s *fakeBronzeStore) HasLineups(matchID int64) bool {
	_, ok := s.lineups[matchID]
	return ok
}

func mustPayload(t *testing.T, record map[string]any) string {
	t.Helper()
	payload, err := sonic.MarshalString(record)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return payload
}

func eventRecord(id string, index, period, minute, second int64, eventType string) map[string]any {
	return map[string]any{
		"id":        id,
		"index":     index,
		"period":    period,
		"timestamp": "00:00:00.000",
		"minute":    minute,
		"second":    second,
		"type":      map[string]any{"name": eventType},
		"team":      map[string]any{"id": int64(100), "name": "Home FC"},
		"player":    map[string]any{"id": int64(10), "name": "Keeper"},
	}
}

type silverFixture struct {
	store      *fakeBronzeStore
	comps      *memory.CompetitionRepository
	teams      *memory.TeamRepository
	players    *memory.PlayerRepository
	matches    *memory.MatchRepository
	eventsRepo *memory.EventRepository
	states     *memory.MatchStateRepository
	service    *SilverService
}

func newSilverFixture(store *fakeBronzeStore) silverFixture {
	f := silverFixture{
		store:      store,
		comps:      memory.NewCompetitionRepository(),
		teams:      memory.NewTeamRepository(),
		players:    memory.NewPlayerRepository(),
		matches:    memory.NewMatchRepository(),
		eventsRepo: memory.NewEventRepository(),
		states:     memory.NewMatchStateRepository(),
	}
	f.service = NewSilverService(
		store, f.comps, f.teams, f.players, f.matches, f.eventsRepo, f.states,
		SilverConfig{RejectThreshold: 0.05}, nil, logging.NewNop(),
	)
	return f
}

func seedSeason(t *testing.T, store *fakeBronzeStore, matchID int64) {
	t.Helper()

	store.competitions = []bronze.CompetitionRow{{
		CompetitionID: 43,
		SeasonID:      106,
		Payload: mustPayload(t, map[string]any{
			"competition_id":   int64(43),
			"season_id":        int64(106),
			"competition_name": "FIFA World Cup",
			"season_name":      "2022",
			"country_name":     "International",
		}),
	}}
	store.matches[[2]int64{43, 106}] = []bronze.MatchRow{{
		CompetitionID: 43,
		SeasonID:      106,
		MatchID:       matchID,
		Payload: mustPayload(t, map[string]any{
			"match_id":    matchID,
			"match_date":  "2022-12-18",
			"home_team":   map[string]any{"home_team_id": int64(100), "home_team_name": "Home FC"},
			"away_team":   map[string]any{"away_team_id": int64(200), "away_team_name": "Away FC"},
			"competition": map[string]any{"competition_id": int64(43), "competition_name": "FIFA World Cup"},
			"season":      map[string]any{"season_id": int64(106), "season_name": "2022"},
			"home_score":  int64(1),
			"away_score":  int64(0),
		}),
	}}
	store.lineups[matchID] = []bronze.LineupRow{{
		MatchID: matchID,
		TeamID:  100,
		Payload: mustPayload(t, map[string]any{
			"team_id":   int64(100),
			"team_name": "Home FC",
			"lineup": []any{map[string]any{
				"player_id":     int64(10),
				"player_name":   "Keeper",
				"jersey_number": int64(1),
				"positions": []any{map[string]any{
					"position":     "Goalkeeper",
					"start_reason": "Starting XI",
				}},
			}},
		}),
	}}
}

func TestSilverServiceMaterializesAndSkips(t *testing.T) {
	store := newFakeBronzeStore()
	seedSeason(t, store, 7777)
	store.events[7777] = []bronze.EventRow{
		{MatchID: 7777, EventID: "e1", Index: 1, Payload: mustPayload(t, eventRecord("e1", 1, 1, 0, 0, "Half Start"))},
		{MatchID: 7777, EventID: "e2", Index: 2, Payload: mustPayload(t, eventRecord("e2", 2, 1, 0, 5, "Pass"))},
		{MatchID: 7777, EventID: "e3", Index: 3, Payload: mustPayload(t, eventRecord("e3", 3, 1, 1, 0, "Carry"))},
	}

	f := newSilverFixture(store)
	ctx := context.Background()

	result, err := f.service.Run(ctx, []config.CompetitionEntry{{CompetitionID: 43, SeasonID: 106, Enabled: true}}, false)
	if err != nil {
		t.Fatalf("run silver: %v", err)
	}
	if result.Materialized != 1 || result.Failed != 0 || result.Skipped != 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	facts, ok := f.eventsRepo.Facts(7777)
	if !ok {
		t.Fatal("expected facts for match 7777")
	}
	if len(facts.Events) != 3 || len(facts.Passes) != 1 || len(facts.Carries) != 1 {
		t.Fatalf("unexpected fact counts events=%d passes=%d carries=%d",
			len(facts.Events), len(facts.Passes), len(facts.Carries))
	}
	if len(facts.Lineups) != 1 || !facts.Lineups[0].IsStarter {
		t.Fatalf("unexpected lineups %+v", facts.Lineups)
	}

	state, err := f.states.Get(ctx, 7777)
	if err != nil || state == nil {
		t.Fatalf("get state: %v %v", state, err)
	}
	if state.Status != matchstate.StatusMaterialized || state.EventCount != 3 {
		t.Fatalf("unexpected state %+v", state)
	}

	// A second run must not re-insert the already materialized match.
	result, err = f.service.Run(ctx, []config.CompetitionEntry{{CompetitionID: 43, SeasonID: 106, Enabled: true}}, false)
	if err != nil {
		t.Fatalf("rerun silver: %v", err)
	}
	if result.Skipped != 1 || result.Materialized != 0 {
		t.Fatalf("unexpected rerun result %+v", result)
	}
	if f.eventsRepo.InsertCalls != 1 {
		t.Fatalf("InsertCalls = %d, want 1", f.eventsRepo.InsertCalls)
	}

	// Force reprocesses it.
	result, err = f.service.Run(ctx, []config.CompetitionEntry{{CompetitionID: 43, SeasonID: 106, Enabled: true}}, true)
	if err != nil {
		t.Fatalf("forced rerun silver: %v", err)
	}
	if result.Materialized != 1 {
		t.Fatalf("unexpected forced result %+v", result)
	}
	if f.eventsRepo.InsertCalls != 2 {
		t.Fatalf("InsertCalls = %d, want 2", f.eventsRepo.InsertCalls)
	}
}

func TestSilverServiceRejectThresholdFailsMatch(t *testing.T) {
	store := newFakeBronzeStore()
	seedSeason(t, store, 8888)

	rows := make([]bronze.EventRow, 0, 10)
	for i := int64(1); i <= 9; i++ {
		rows = append(rows, bronze.EventRow{
			MatchID: 8888, Index: i,
			Payload: mustPayload(t, eventRecord("ok", i, 1, i, 0, "Pass")),
		})
	}
	broken := eventRecord("bad", 10, 1, 10, 0, "Pass")
	delete(broken, "type")
	rows = append(rows, bronze.EventRow{MatchID: 8888, Index: 10, Payload: mustPayload(t, broken)})
	store.events[8888] = rows

	f := newSilverFixture(store)
	ctx := context.Background()

	result, err := f.service.Run(ctx, []config.CompetitionEntry{{CompetitionID: 43, SeasonID: 106, Enabled: true}}, false)
	if err != nil {
		t.Fatalf("run silver: %v", err)
	}
	if result.Failed != 1 || result.Materialized != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Rejected != 1 {
		t.Fatalf("Rejected = %d, want 1", result.Rejected)
	}

	if _, ok := f.eventsRepo.Facts(8888); ok {
		t.Fatal("facts must not be written for a failed match")
	}
	state, err := f.states.Get(ctx, 8888)
	if err != nil || state == nil {
		t.Fatalf("get state: %v %v", state, err)
	}
	if state.Status != matchstate.StatusFailed || state.FailureReason == nil {
		t.Fatalf("unexpected state %+v", state)
	}
}

func TestSilverServiceClockRegressionFailsMatch(t *testing.T) {
	store := newFakeBronzeStore()
	seedSeason(t, store, 9999)
	store.events[9999] = []bronze.EventRow{
		{MatchID: 9999, Index: 1, Payload: mustPayload(t, eventRecord("e1", 1, 1, 30, 0, "Pass"))},
		{MatchID: 9999, Index: 2, Payload: mustPayload(t, eventRecord("e2", 2, 1, 12, 0, "Pass"))},
	}

	f := newSilverFixture(store)

	result, err := f.service.Run(context.Background(), []config.CompetitionEntry{{CompetitionID: 43, SeasonID: 106, Enabled: true}}, false)
	if err != nil {
		t.Fatalf("run silver: %v", err)
	}
	if result.Failed != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestSilverServiceUpsertsDimensions(t *testing.T) {
	store := newFakeBronzeStore()
	seedSeason(t, store, 7777)
	store.events[7777] = []bronze.EventRow{
		{MatchID: 7777, Index: 1, Payload: mustPayload(t, eventRecord("e1", 1, 1, 0, 0, "Half Start"))},
	}

	f := newSilverFixture(store)
	ctx := context.Background()

	if _, err := f.service.Run(ctx, []config.CompetitionEntry{{CompetitionID: 43, SeasonID: 106, Enabled: true}}, false); err != nil {
		t.Fatalf("run silver: %v", err)
	}

	comps, err := f.comps.List(ctx)
	if err != nil || len(comps) != 1 {
		t.Fatalf("competitions = %v (%v)", comps, err)
	}
	if comps[0].CompetitionName != "FIFA World Cup" {
		t.Fatalf("unexpected competition %+v", comps[0])
	}
	if f.teams.Len() != 2 {
		t.Fatalf("teams = %d, want 2", f.teams.Len())
	}
	if f.players.Len() != 1 {
		t.Fatalf("players = %d, want 1", f.players.Len())
	}
	m, err := f.matches.Get(ctx, 7777)
	if err != nil || m == nil {
		t.Fatalf("match missing: %v %v", m, err)
	}
	if m.HomeTeamName != "Home FC" || m.AwayTeamID != 200 {
		t.Fatalf("unexpected match %+v", m)
	}
}
