package usecase

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/riskibarqy/pitchmart/internal/config"
	"github.com/riskibarqy/pitchmart/internal/infrastructure/bronze"
	"github.com/riskibarqy/pitchmart/internal/platform/logging"
)

type fakeRawSource struct {
	calls atomic.Int64
}

func (s *fakeRawSource) Competitions(_ context.Context, _ bool) ([]byte, error) {
	s.calls.Add(1)
	return []byte(`[{"competition_id":43,"season_id":106,"competition_name":"FIFA World Cup","season_name":"2022"}]`), nil
}

func (s *fakeRawSource) Matches(_ context.Context, _, _ int64, _ bool) ([]byte, error) {
	s.calls.Add(1)
	return []byte(`[{"match_id":7777,"match_date":"2022-12-18",` +
		`"home_team":{"home_team_id":100,"home_team_name":"Home FC"},` +
		`"away_team":{"away_team_id":200,"away_team_name":"Away FC"},` +
		`"competition":{"competition_id":43},"season":{"season_id":106}}]`), nil
}

func (s *fakeRawSource) Events(_ context.Context, _ int64, _ bool) ([]byte, error) {
	s.calls.Add(1)
	return []byte(`[{"id":"e1","index":1,"period":1,"minute":0,"second":3,"type":{"name":"Pass"}},` +
		`{"id":"e2","index":2,"period":1,"minute":0,"second":5,"type":{"name":"Carry"}}]`), nil
}

func (s *fakeRawSource) Lineups(_ context.Context, _ int64, _ bool) ([]byte, error) {
	s.calls.Add(1)
	return []byte(`[{"team_id":100,"team_name":"Home FC","lineup":[]}]`), nil
}

func TestBronzeServiceWritesKeyedFiles(t *testing.T) {
	source := &fakeRawSource{}
	store := bronze.NewStore(t.TempDir())
	service := NewBronzeService(source, store, 2, nil, logging.NewNop())

	entries := []config.CompetitionEntry{{CompetitionID: 43, SeasonID: 106, Enabled: true}}
	result, err := service.Run(context.Background(), entries, false)
	if err != nil {
		t.Fatalf("run bronze: %v", err)
	}
	// competitions, one season, one match's events and lineups.
	if result.FilesWritten != 4 || result.FilesSkipped != 0 || result.FailedFiles != 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	events, err := store.ReadEvents(7777)
	if err != nil {
		t.Fatalf("read events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("event rows = %d, want 2", len(events))
	}
	if events[0].EventID != "e1" || events[0].Index != 1 || events[0].MatchID != 7777 {
		t.Fatalf("unexpected event row %+v", events[0])
	}

	matches, err := store.ReadMatches(43, 106)
	if err != nil {
		t.Fatalf("read matches: %v", err)
	}
	if len(matches) != 1 || matches[0].MatchID != 7777 {
		t.Fatalf("unexpected match rows %+v", matches)
	}

	lineups, err := store.ReadLineups(7777)
	if err != nil {
		t.Fatalf("read lineups: %v", err)
	}
	if len(lineups) != 1 || lineups[0].TeamID != 100 {
		t.Fatalf("unexpected lineup rows %+v", lineups)
	}
}

func TestBronzeServiceSecondRunSkipsExistingFiles(t *testing.T) {
	source := &fakeRawSource{}
	store := bronze.NewStore(t.TempDir())
	service := NewBronzeService(source, store, 1, nil, logging.NewNop())

	entries := []config.CompetitionEntry{{CompetitionID: 43, SeasonID: 106, Enabled: true}}
	ctx := context.Background()

	if _, err := service.Run(ctx, entries, false); err != nil {
		t.Fatalf("first run: %v", err)
	}
	result, err := service.Run(ctx, entries, false)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if result.FilesWritten != 0 || result.FilesSkipped != 4 {
		t.Fatalf("unexpected rerun result %+v", result)
	}
}
