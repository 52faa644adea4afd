package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/pitchmart/internal/domain/event"
)

type EventRepository struct {
	mu    sync.RWMutex
	facts map[int64]event.MatchFacts

	// InsertCalls counts InsertMatchFacts invocations so tests can
	// assert that already materialized matches are skipped.
	InsertCalls int
}

func NewEventRepository() *EventRepository {
	return &EventRepository{facts: make(map[int64]event.MatchFacts)}
}

func (r *EventRepository) InsertMatchFacts(_ context.Context, facts event.MatchFacts) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.InsertCalls++
	r.facts[facts.MatchID] = facts
	return nil
}

func (r *EventRepository) ListEventsByMatch(_ context.Context, matchID int64) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := append([]event.Event(nil), r.facts[matchID].Events...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Index < rows[j].Index })
	return rows, nil
}

func (r *EventRepository) ListPassDetailsByMatch(_ context.Context, matchID int64) ([]event.PassDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	facts := r.facts[matchID]
	parents := parentsByID(facts.Events)
	out := make([]event.PassDetail, 0, len(facts.Passes))
	for _, p := range facts.Passes {
		out = append(out, event.PassDetail{Event: parents[p.EventID], Pass: p})
	}
	sortByClock(out, func(d event.PassDetail) event.Event { return d.Event })
	return out, nil
}

func (r *EventRepository) ListShotDetailsByMatch(_ context.Context, matchID int64) ([]event.ShotDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	facts := r.facts[matchID]
	parents := parentsByID(facts.Events)
	out := make([]event.ShotDetail, 0, len(facts.Shots))
	for _, s := range facts.Shots {
		out = append(out, event.ShotDetail{Event: parents[s.EventID], Shot: s})
	}
	sortByClock(out, func(d event.ShotDetail) event.Event { return d.Event })
	return out, nil
}

func (r *EventRepository) ListCarryDetailsByMatch(_ context.Context, matchID int64) ([]event.CarryDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	facts := r.facts[matchID]
	parents := parentsByID(facts.Events)
	out := make([]event.CarryDetail, 0, len(facts.Carries))
	for _, c := range facts.Carries {
		out = append(out, event.CarryDetail{Event: parents[c.EventID], Carry: c})
	}
	sortByClock(out, func(d event.CarryDetail) event.Event { return d.Event })
	return out, nil
}

func (r *EventRepository) ListLineupsByMatch(_ context.Context, matchID int64) ([]event.LineupEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]event.LineupEntry(nil), r.facts[matchID].Lineups...), nil
}

// Facts returns the last inserted bundle for a match, for test
// assertions on all-or-nothing writes.
func (r *EventRepository) Facts(matchID int64) (event.MatchFacts, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	facts, ok := r.facts[matchID]
	return facts, ok
}

func parentsByID(events []event.Event) map[string]event.Event {
	parents := make(map[string]event.Event, len(events))
	for _, ev := range events {
		parents[ev.EventID] = ev
	}
	return parents
}

func sortByClock[T any](rows []T, eventOf func(T) event.Event) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := eventOf(rows[i]), eventOf(rows[j])
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		if a.Minute != b.Minute {
			return a.Minute < b.Minute
		}
		if a.Second != b.Second {
			return a.Second < b.Second
		}
		return a.EventID < b.EventID
	})
}
