package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/pitchmart/internal/config"
	"github.com/riskibarqy/pitchmart/internal/normalize"
	"github.com/riskibarqy/pitchmart/internal/platform/logging"
)

// RawSource serves the raw feed files. Fetches land in the local raw
// cache, so a repeated stage run is served from disk unless forced.
type RawSource interface {
	Competitions(ctx context.Context, force bool) ([]byte, error)
	Matches(ctx context.Context, competitionID, seasonID int64, force bool) ([]byte, error)
	Events(ctx context.Context, matchID int64, force bool) ([]byte, error)
	Lineups(ctx context.Context, matchID int64, force bool) ([]byte, error)
}

type DownloadService struct {
	source     RawSource
	maxWorkers int
	logger     *logging.Logger
}

func NewDownloadService(source RawSource, maxWorkers int, logger *logging.Logger) *DownloadService {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &DownloadService{source: source, maxWorkers: maxWorkers, logger: logger}
}

type DownloadResult struct {
	Seasons     int
	Matches     int
	FailedFiles int
}

// Run pulls the competitions index plus every enabled season's match
// list, then fans out over matches fetching events and lineups. A
// single failed match file does not abort the run; it is counted and
// the match is picked up again next time.
func (s *DownloadService) Run(ctx context.Context, entries []config.CompetitionEntry, force bool) (DownloadResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DownloadService.Run")
	defer span.End()

	if s.source == nil {
		return DownloadResult{}, fmt.Errorf("%w: raw source is not configured", ErrDependencyUnavailable)
	}

	if _, err := s.source.Competitions(ctx, force); err != nil {
		return DownloadResult{}, fmt.Errorf("fetch competitions index: %w", err)
	}

	result := DownloadResult{}
	matchIDs := make([]int64, 0, 64)
	for _, entry := range entries {
		data, err := s.source.Matches(ctx, entry.CompetitionID, entry.SeasonID, force)
		if err != nil {
			return result, fmt.Errorf("fetch matches competition=%d season=%d: %w", entry.CompetitionID, entry.SeasonID, err)
		}
		records, err := normalize.DecodeRecords(data)
		if err != nil {
			return result, fmt.Errorf("decode matches competition=%d season=%d: %w", entry.CompetitionID, entry.SeasonID, err)
		}
		result.Seasons++

		for _, record := range records {
			if matchID, ok := normalize.Int64Field(record, "match_id"); ok {
				matchIDs = append(matchIDs, matchID)
			}
		}
	}

	pool, err := ants.NewPool(s.maxWorkers)
	if err != nil {
		return result, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var failed atomic.Int64
	var workers sync.WaitGroup
	for _, matchID := range matchIDs {
		matchID := matchID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if _, err := s.source.Events(ctx, matchID, force); err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "fetch events failed", "match_id", matchID, "error", err)
				return
			}
			if _, err := s.source.Lineups(ctx, matchID, force); err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "fetch lineups failed", "match_id", matchID, "error", err)
			}
		}); err != nil {
			workers.Done()
			return result, fmt.Errorf("submit download task: %w", err)
		}
	}
	workers.Wait()

	result.Matches = len(matchIDs)
	result.FailedFiles = int(failed.Load())
	s.logger.InfoContext(ctx, "download stage finished",
		"seasons", result.Seasons, "matches", result.Matches, "failed_files", result.FailedFiles)
	return result, nil
}
