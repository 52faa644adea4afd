package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/pitchmart/internal/config"
	"github.com/riskibarqy/pitchmart/internal/platform/logging"
)

const (
	StageDownload = "download"
	StageBronze   = "bronze"
	StageSilver   = "silver"
	StageGold     = "gold"
	StageAll      = "all"
)

type PipelineService struct {
	download *DownloadService
	bronze   *BronzeService
	silver   *SilverService
	gold     *GoldService
	logger   *logging.Logger
}

func NewPipelineService(
	download *DownloadService,
	bronze *BronzeService,
	silver *SilverService,
	gold *GoldService,
	logger *logging.Logger,
) *PipelineService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PipelineService{download: download, bronze: bronze, silver: silver, gold: gold, logger: logger}
}

// Run executes one stage, or every stage in medallion order for
// StageAll. A stage failure stops the run; completed stages keep their
// output, so the rerun resumes from persisted state.
func (s *PipelineService) Run(ctx context.Context, stage string, entries []config.CompetitionEntry, force bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.Run")
	defer span.End()

	stage = strings.ToLower(strings.TrimSpace(stage))
	switch stage {
	case StageDownload:
		_, err := s.download.Run(ctx, entries, force)
		return err
	case StageBronze:
		_, err := s.bronze.Run(ctx, entries, force)
		return err
	case StageSilver:
		_, err := s.silver.Run(ctx, entries, force)
		return err
	case StageGold:
		_, err := s.gold.Run(ctx)
		return err
	case StageAll:
		if _, err := s.download.Run(ctx, entries, force); err != nil {
			return fmt.Errorf("download stage: %w", err)
		}
		if _, err := s.bronze.Run(ctx, entries, force); err != nil {
			return fmt.Errorf("bronze stage: %w", err)
		}
		if _, err := s.silver.Run(ctx, entries, force); err != nil {
			return fmt.Errorf("silver stage: %w", err)
		}
		if _, err := s.gold.Run(ctx); err != nil {
			return fmt.Errorf("gold stage: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown stage %q (valid: %s, %s, %s, %s, %s)",
			ErrInvalidInput, stage, StageDownload, StageBronze, StageSilver, StageGold, StageAll)
	}
}
