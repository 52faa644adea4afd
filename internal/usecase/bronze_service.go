package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/pitchmart/internal/config"
	"github.com/riskibarqy/pitchmart/internal/infrastructure/bronze"
	"github.com/riskibarqy/pitchmart/internal/normalize"
	"github.com/riskibarqy/pitchmart/internal/platform/logging"
	"github.com/riskibarqy/pitchmart/internal/platform/metrics"
)

// BronzeStore is the write-once parquet layer. Writes report whether a
// file was actually produced so skips are visible in the run report.
type BronzeStore interface {
	WriteCompetitions(rows []bronze.CompetitionRow, force bool) (bool, error)
	WriteMatches(competitionID, seasonID int64, rows []bronze.MatchRow, force bool) (bool, error)
	WriteEvents(matchID int64, rows []bronze.EventRow, force bool) (bool, error)
	WriteLineups(matchID int64, rows []bronze.LineupRow, force bool) (bool, error)
	ReadCompetitions() ([]bronze.CompetitionRow, error)
	ReadMatches(competitionID, seasonID int64) ([]bronze.MatchRow, error)
	ReadEvents(matchID int64) ([]bronze.EventRow, error)
	ReadLineups(matchID int64) ([]bronze.LineupRow, error)
	HasLineups(matchID int64) bool
}

type BronzeService struct {
	source     RawSource
	store      BronzeStore
	maxWorkers int
	metrics    *metrics.Manager
	logger     *logging.Logger
}

func NewBronzeService(source RawSource, store BronzeStore, maxWorkers int, m *metrics.Manager, logger *logging.Logger) *BronzeService {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &BronzeService{source: source, store: store, maxWorkers: maxWorkers, metrics: m, logger: logger}
}

type BronzeResult struct {
	FilesWritten int
	FilesSkipped int
	FailedFiles  int
}

// Run materializes raw JSON into keyed parquet files. Each record is
// re-serialized verbatim into a payload column next to its partition
// ids; nothing is interpreted at this layer.
func (s *BronzeService) Run(ctx context.Context, entries []config.CompetitionEntry, force bool) (BronzeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BronzeService.Run")
	defer span.End()

	if s.source == nil || s.store == nil {
		return BronzeResult{}, fmt.Errorf("%w: bronze stage is not fully configured", ErrDependencyUnavailable)
	}

	var written, skipped atomic.Int64
	record := func(wrote bool) {
		if wrote {
			written.Add(1)
			s.metrics.BronzeFileWritten()
		} else {
			skipped.Add(1)
		}
	}

	wrote, err := s.writeCompetitions(ctx, force)
	if err != nil {
		return BronzeResult{}, err
	}
	record(wrote)

	matchIDs := make([]int64, 0, 64)
	for _, entry := range entries {
		ids, wrote, err := s.writeSeason(ctx, entry, force)
		if err != nil {
			return BronzeResult{}, err
		}
		record(wrote)
		matchIDs = append(matchIDs, ids...)
	}

	pool, err := ants.NewPool(s.maxWorkers)
	if err != nil {
		return BronzeResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var failed atomic.Int64
	var workers sync.WaitGroup
	for _, matchID := range matchIDs {
		matchID := matchID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			eventsWrote, err := s.writeMatchEvents(ctx, matchID, force)
			if err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "bronze events write failed", "match_id", matchID, "error", err)
				return
			}
			record(eventsWrote)

			lineupsWrote, err := s.writeMatchLineups(ctx, matchID, force)
			if err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "bronze lineups write failed", "match_id", matchID, "error", err)
				return
			}
			record(lineupsWrote)
		}); err != nil {
			workers.Done()
			return BronzeResult{}, fmt.Errorf("submit bronze task: %w", err)
		}
	}
	workers.Wait()

	result := BronzeResult{
		FilesWritten: int(written.Load()),
		FilesSkipped: int(skipped.Load()),
		FailedFiles:  int(failed.Load()),
	}
	s.logger.InfoContext(ctx, "bronze stage finished",
		"files_written", result.FilesWritten, "files_skipped", result.FilesSkipped, "failed_files", result.FailedFiles)
	return result, nil
}

func (s *BronzeService) writeCompetitions(ctx context.Context, force bool) (bool, error) {
	data, err := s.source.Competitions(ctx, force)
	if err != nil {
		return false, fmt.Errorf("fetch competitions index: %w", err)
	}
	records, err := normalize.DecodeRecords(data)
	if err != nil {
		return false, fmt.Errorf("decode competitions index: %w", err)
	}

	rows := make([]bronze.CompetitionRow, 0, len(records))
	for _, record := range records {
		payload, err := sonic.MarshalString(record)
		if err != nil {
			return false, fmt.Errorf("marshal competition payload: %w", err)
		}
		competitionID, _ := normalize.Int64Field(record, "competition_id")
		seasonID, _ := normalize.Int64Field(record, "season_id")
		rows = append(rows, bronze.CompetitionRow{
			CompetitionID: competitionID,
			SeasonID:      seasonID,
			Payload:       payload,
		})
	}
	return s.store.WriteCompetitions(rows, force)
}

func (s *BronzeService) writeSeason(ctx context.Context, entry config.CompetitionEntry, force bool) ([]int64, bool, error) {
	data, err := s.source.Matches(ctx, entry.CompetitionID, entry.SeasonID, force)
	if err != nil {
		return nil, false, fmt.Errorf("fetch matches competition=%d season=%d: %w", entry.CompetitionID, entry.SeasonID, err)
	}
	records, err := normalize.DecodeRecords(data)
	if err != nil {
		return nil, false, fmt.Errorf("decode matches competition=%d season=%d: %w", entry.CompetitionID, entry.SeasonID, err)
	}

	matchIDs := make([]int64, 0, len(records))
	rows := make([]bronze.MatchRow, 0, len(records))
	for _, record := range records {
		matchID, ok := normalize.Int64Field(record, "match_id")
		if !ok {
			continue
		}
		payload, err := sonic.MarshalString(record)
		if err != nil {
			return nil, false, fmt.Errorf("marshal match payload match=%d: %w", matchID, err)
		}
		matchIDs = append(matchIDs, matchID)
		rows = append(rows, bronze.MatchRow{
			CompetitionID: entry.CompetitionID,
			SeasonID:      entry.SeasonID,
			MatchID:       matchID,
			Payload:       payload,
		})
	}

	wrote, err := s.store.WriteMatches(entry.CompetitionID, entry.SeasonID, rows, force)
	if err != nil {
		return nil, false, err
	}
	return matchIDs, wrote, nil
}

func (s *BronzeService) writeMatchEvents(ctx context.Context, matchID int64, force bool) (bool, error) {
	data, err := s.source.Events(ctx, matchID, force)
	if err != nil {
		return false, fmt.Errorf("fetch events: %w", err)
	}
	records, err := normalize.DecodeRecords(data)
	if err != nil {
		return false, fmt.Errorf("decode events: %w", err)
	}

	rows := make([]bronze.EventRow, 0, len(records))
	for i, record := range records {
		payload, err := sonic.MarshalString(record)
		if err != nil {
			return false, fmt.Errorf("marshal event payload: %w", err)
		}
		eventID, _ := normalize.StringField(record, "id")
		index, ok := normalize.Int64Field(record, "index")
		if !ok {
			index = int64(i)
		}
		rows = append(rows, bronze.EventRow{
			MatchID: matchID,
			EventID: eventID,
			Index:   index,
			Payload: payload,
		})
	}
	return s.store.WriteEvents(matchID, rows, force)
}

func (s *BronzeService) writeMatchLineups(ctx context.Context, matchID int64, force bool) (bool, error) {
	data, err := s.source.Lineups(ctx, matchID, force)
	if err != nil {
		return false, fmt.Errorf("fetch lineups: %w", err)
	}
	records, err := normalize.DecodeRecords(data)
	if err != nil {
		return false, fmt.Errorf("decode lineups: %w", err)
	}

	rows := make([]bronze.LineupRow, 0, len(records))
	for _, record := range records {
		payload, err := sonic.MarshalString(record)
		if err != nil {
			return false, fmt.Errorf("marshal lineup payload: %w", err)
		}
		teamID, _ := normalize.Int64Field(record, "team_id")
		rows = append(rows, bronze.LineupRow{
			MatchID: matchID,
			TeamID:  teamID,
			Payload: payload,
		})
	}
	return s.store.WriteLineups(matchID, rows, force)
}
