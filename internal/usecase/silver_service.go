package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/pitchmart/internal/config"
	"github.com/riskibarqy/pitchmart/internal/domain/competition"
	"github.com/riskibarqy/pitchmart/internal/domain/event"
	"github.com/riskibarqy/pitchmart/internal/domain/match"
	"github.com/riskibarqy/pitchmart/internal/domain/matchstate"
	"github.com/riskibarqy/pitchmart/internal/domain/player"
	"github.com/riskibarqy/pitchmart/internal/domain/team"
	"github.com/riskibarqy/pitchmart/internal/infrastructure/bronze"
	"github.com/riskibarqy/pitchmart/internal/normalize"
	"github.com/riskibarqy/pitchmart/internal/platform/logging"
	"github.com/riskibarqy/pitchmart/internal/platform/metrics"
)

type SilverConfig struct {
	// RejectThreshold is the tolerated share of rejected event records
	// per match before the whole match is discarded.
	RejectThreshold float64
}

type SilverService struct {
	store           BronzeStore
	competitionRepo competition.Repository
	teamRepo        team.Repository
	playerRepo      player.Repository
	matchRepo       match.Repository
	eventRepo       event.Repository
	stateRepo       matchstate.Repository
	cfg             SilverConfig
	metrics         *metrics.Manager
	logger          *logging.Logger
}

func NewSilverService(
	store BronzeStore,
	competitionRepo competition.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	eventRepo event.Repository,
	stateRepo matchstate.Repository,
	cfg SilverConfig,
	m *metrics.Manager,
	logger *logging.Logger,
) *SilverService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SilverService{
		store:           store,
		competitionRepo: competitionRepo,
		teamRepo:        teamRepo,
		playerRepo:      playerRepo,
		matchRepo:       matchRepo,
		eventRepo:       eventRepo,
		stateRepo:       stateRepo,
		cfg:             cfg,
		metrics:         m,
		logger:          logger,
	}
}

type SilverResult struct {
	Materialized int
	Skipped      int
	Failed       int
	Rejected     int
}

// Run projects bronze into the star schema. Dimensions are upserted on
// natural keys; each match's fact rows commit in one transaction or
// not at all, and the per-match state registry makes reruns skip work
// that is already done.
func (s *SilverService) Run(ctx context.Context, entries []config.CompetitionEntry, force bool) (SilverResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SilverService.Run")
	defer span.End()

	if s.store == nil || s.eventRepo == nil || s.stateRepo == nil {
		return SilverResult{}, fmt.Errorf("%w: silver stage is not fully configured", ErrDependencyUnavailable)
	}

	if err := s.loadCompetitions(ctx); err != nil {
		return SilverResult{}, err
	}

	result := SilverResult{}
	matchIDs := make([]int64, 0, 64)
	for _, entry := range entries {
		ids, err := s.loadSeason(ctx, entry)
		if err != nil {
			return result, err
		}
		matchIDs = append(matchIDs, ids...)
	}

	for _, matchID := range matchIDs {
		status, rejected, err := s.materializeMatch(ctx, matchID, force)
		if err != nil {
			return result, err
		}
		result.Rejected += rejected
		switch status {
		case matchstate.StatusMaterialized:
			result.Materialized++
		case matchstate.StatusFailed:
			result.Failed++
		default:
			result.Skipped++
		}
	}

	s.logger.InfoContext(ctx, "silver stage finished",
		"materialized", result.Materialized, "skipped", result.Skipped,
		"failed", result.Failed, "rejected_records", result.Rejected)
	return result, nil
}

func (s *SilverService) loadCompetitions(ctx context.Context) error {
	rows, err := s.store.ReadCompetitions()
	if err != nil {
		return fmt.Errorf("read bronze competitions: %w", err)
	}
	records, err := recordsFromPayloads(competitionPayloads(rows))
	if err != nil {
		return fmt.Errorf("decode bronze competitions: %w", err)
	}

	competitions, rejects := normalize.Competitions(records)
	s.metrics.RecordsRejected(len(rejects))
	if err := s.competitionRepo.UpsertMany(ctx, competitions); err != nil {
		return fmt.Errorf("upsert competitions: %w", err)
	}
	return nil
}

func (s *SilverService) loadSeason(ctx context.Context, entry config.CompetitionEntry) ([]int64, error) {
	rows, err := s.store.ReadMatches(entry.CompetitionID, entry.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("read bronze matches competition=%d season=%d: %w", entry.CompetitionID, entry.SeasonID, err)
	}

	payloads := make([]string, 0, len(rows))
	for _, row := range rows {
		payloads = append(payloads, row.Payload)
	}
	records, err := recordsFromPayloads(payloads)
	if err != nil {
		return nil, fmt.Errorf("decode bronze matches competition=%d season=%d: %w", entry.CompetitionID, entry.SeasonID, err)
	}

	matches, teams, rejects := normalize.Matches(records)
	s.metrics.RecordsRejected(len(rejects))

	if err := s.teamRepo.UpsertMany(ctx, teams); err != nil {
		return nil, fmt.Errorf("upsert teams: %w", err)
	}
	if err := s.matchRepo.UpsertMany(ctx, matches); err != nil {
		return nil, fmt.Errorf("upsert matches: %w", err)
	}

	matchIDs := make([]int64, 0, len(matches))
	for _, m := range matches {
		matchIDs = append(matchIDs, m.MatchID)
	}
	return matchIDs, nil
}

// materializeMatch returns the resulting state status, or "" when the
// match was skipped because it was already materialized.
func (s *SilverService) materializeMatch(ctx context.Context, matchID int64, force bool) (string, int, error) {
	state, err := s.stateRepo.Get(ctx, matchID)
	if err != nil {
		return "", 0, fmt.Errorf("get match state match=%d: %w", matchID, err)
	}
	if state != nil && state.Status == matchstate.StatusMaterialized && !force {
		s.metrics.MatchSkipped()
		return "", 0, nil
	}

	eventRows, err := s.store.ReadEvents(matchID)
	if err != nil {
		return "", 0, fmt.Errorf("read bronze events match=%d: %w", matchID, err)
	}
	sort.Slice(eventRows, func(i, j int) bool { return eventRows[i].Index < eventRows[j].Index })

	payloads := make([]string, 0, len(eventRows))
	for _, row := range eventRows {
		payloads = append(payloads, row.Payload)
	}
	records, err := recordsFromPayloads(payloads)
	if err != nil {
		return "", 0, fmt.Errorf("decode bronze events match=%d: %w", matchID, err)
	}

	res := normalize.Events(matchID, records)
	rejected := len(res.Rejected)
	s.metrics.RecordsRejected(rejected)
	for eventType, n := range res.Unmapped {
		s.metrics.UnmappedEventType(eventType, n)
	}

	if len(records) > 0 {
		ratio := float64(rejected) / float64(len(records))
		if ratio > s.cfg.RejectThreshold {
			reason := fmt.Sprintf("reject ratio %.4f over threshold %.4f (%d of %d records)",
				ratio, s.cfg.RejectThreshold, rejected, len(records))
			return s.failMatch(ctx, matchID, reason, rejected)
		}
	}
	if reason := clockRegression(res.Events); reason != "" {
		return s.failMatch(ctx, matchID, reason, rejected)
	}

	var lineups []event.LineupEntry
	if s.store.HasLineups(matchID) {
		lineupRows, err := s.store.ReadLineups(matchID)
		if err != nil {
			return "", 0, fmt.Errorf("read bronze lineups match=%d: %w", matchID, err)
		}
		lineupPayloads := make([]string, 0, len(lineupRows))
		for _, row := range lineupRows {
			lineupPayloads = append(lineupPayloads, row.Payload)
		}
		lineupRecords, err := recordsFromPayloads(lineupPayloads)
		if err != nil {
			return "", 0, fmt.Errorf("decode bronze lineups match=%d: %w", matchID, err)
		}

		var players []player.Player
		lineups, players = normalize.Lineups(matchID, lineupRecords)
		if err := s.playerRepo.UpsertMany(ctx, players); err != nil {
			return "", 0, fmt.Errorf("upsert players match=%d: %w", matchID, err)
		}
	}

	facts := event.MatchFacts{
		MatchID:      matchID,
		Events:       res.Events,
		Passes:       res.Passes,
		Shots:        res.Shots,
		Carries:      res.Carries,
		Lineups:      lineups,
		FreezeFrames: res.FreezeFrames,
	}
	if err := s.eventRepo.InsertMatchFacts(ctx, facts); err != nil {
		reason := fmt.Sprintf("insert match facts: %v", err)
		return s.failMatch(ctx, matchID, reason, rejected)
	}

	if err := s.stateRepo.MarkMaterialized(ctx, matchID, int64(len(res.Events)), int64(rejected)); err != nil {
		return "", 0, fmt.Errorf("mark materialized match=%d: %w", matchID, err)
	}
	s.metrics.MatchMaterialized()
	s.metrics.FactRowsWritten("fact_events", len(res.Events))
	s.metrics.FactRowsWritten("fact_passes", len(res.Passes))
	s.metrics.FactRowsWritten("fact_shots", len(res.Shots))
	s.metrics.FactRowsWritten("fact_carries", len(res.Carries))
	s.metrics.FactRowsWritten("fact_lineups", len(lineups))
	return matchstate.StatusMaterialized, rejected, nil
}

func (s *SilverService) failMatch(ctx context.Context, matchID int64, reason string, rejected int) (string, int, error) {
	s.logger.WarnContext(ctx, "match discarded", "match_id", matchID, "reason", reason)
	if err := s.stateRepo.MarkFailed(ctx, matchID, reason); err != nil {
		return "", 0, fmt.Errorf("mark failed match=%d: %w", matchID, err)
	}
	s.metrics.MatchFailed()
	return matchstate.StatusFailed, rejected, nil
}

// clockRegression verifies that the match clock never runs backwards
// when events are replayed in source index order.
func clockRegression(events []event.Event) string {
	for i := 1; i < len(events); i++ {
		prev, cur := events[i-1], events[i]
		if cur.Period < prev.Period {
			return fmt.Sprintf("period regression at index %d", cur.Index)
		}
		if cur.Period > prev.Period {
			continue
		}
		if cur.Minute < prev.Minute || (cur.Minute == prev.Minute && cur.Second < prev.Second) {
			return fmt.Sprintf("clock regression at index %d: %d:%02d after %d:%02d",
				cur.Index, cur.Minute, cur.Second, prev.Minute, prev.Second)
		}
	}
	return ""
}

func recordsFromPayloads(payloads []string) ([]map[string]any, error) {
	records := make([]map[string]any, 0, len(payloads))
	for _, payload := range payloads {
		var record map[string]any
		if err := sonic.UnmarshalString(payload, &record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func competitionPayloads(rows []bronze.CompetitionRow) []string {
	payloads := make([]string, 0, len(rows))
	for _, row := range rows {
		payloads = append(payloads, row.Payload)
	}
	return payloads
}
