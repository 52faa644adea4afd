package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pitchmart/internal/domain/gold"
	qb "github.com/riskibarqy/pitchmart/internal/platform/querybuilder"
)

var perMatchGoldTables = []string{
	"gold_xg_timeline",
	"gold_shot_map",
	"gold_pass_network_nodes",
	"gold_pass_network_edges",
	"gold_formation_positions",
	"gold_team_stats",
	"gold_ppda_match",
}

type GoldRepository struct {
	db *sqlx.DB
}

func NewGoldRepository(db *sqlx.DB) *GoldRepository {
	return &GoldRepository{db: db}
}

// ReplaceMatchAggregates swaps every per-match gold row of one match in
// a single transaction, so readers never see a half-built match.
func (r *GoldRepository) ReplaceMatchAggregates(ctx context.Context, aggregates gold.MatchAggregates) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace match aggregates: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range perMatchGoldTables {
		query, args, err := qb.DeleteFrom(table).Where(qb.Eq("match_id", aggregates.MatchID)).ToSQL()
		if err != nil {
			return fmt.Errorf("build clear %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s match=%d: %w", table, aggregates.MatchID, err)
		}
	}

	timelineModels := make([]xgTimelineTableModel, 0, len(aggregates.XGTimeline))
	for _, row := range aggregates.XGTimeline {
		timelineModels = append(timelineModels, xgTimelineTableModel{
			MatchID:      row.MatchID,
			TeamID:       row.TeamID,
			TeamName:     row.TeamName,
			Period:       row.Period,
			Minute:       row.Minute,
			Second:       row.Second,
			XG:           row.XG,
			CumulativeXG: row.CumulativeXG,
			IsGoal:       row.IsGoal,
		})
	}
	shotMapModels := make([]shotMapTableModel, 0, len(aggregates.ShotMap))
	for _, row := range aggregates.ShotMap {
		shotMapModels = append(shotMapModels, shotMapTableModel{
			MatchID:    row.MatchID,
			EventID:    row.EventID,
			TeamID:     row.TeamID,
			TeamName:   row.TeamName,
			PlayerID:   row.PlayerID,
			PlayerName: row.PlayerName,
			LocationX:  row.LocationX,
			LocationY:  row.LocationY,
			XG:         row.XG,
			Outcome:    row.Outcome,
			BodyPart:   row.BodyPart,
			Technique:  row.Technique,
			ShotType:   row.ShotType,
			IsGoal:     row.IsGoal,
		})
	}
	nodeModels := make([]passNetworkNodeTableModel, 0, len(aggregates.PassNetworkNodes))
	for _, row := range aggregates.PassNetworkNodes {
		nodeModels = append(nodeModels, passNetworkNodeTableModel{
			MatchID:    row.MatchID,
			TeamID:     row.TeamID,
			PlayerID:   row.PlayerID,
			PlayerName: row.PlayerName,
			Position:   row.Position,
			X:          row.X,
			Y:          row.Y,
			Touches:    row.Touches,
			PassCount:  row.PassCount,
		})
	}
	edgeModels := make([]passNetworkEdgeTableModel, 0, len(aggregates.PassNetworkEdges))
	for _, row := range aggregates.PassNetworkEdges {
		edgeModels = append(edgeModels, passNetworkEdgeTableModel{
			MatchID:     row.MatchID,
			TeamID:      row.TeamID,
			PasserID:    row.PasserID,
			RecipientID: row.RecipientID,
			PassCount:   row.PassCount,
			MeanStartX:  row.MeanStartX,
			MeanStartY:  row.MeanStartY,
			MeanEndX:    row.MeanEndX,
			MeanEndY:    row.MeanEndY,
		})
	}
	formationModels := make([]formationPositionTableModel, 0, len(aggregates.FormationPositions))
	for _, row := range aggregates.FormationPositions {
		formationModels = append(formationModels, formationPositionTableModel{
			MatchID:      row.MatchID,
			TeamID:       row.TeamID,
			PlayerID:     row.PlayerID,
			PlayerName:   row.PlayerName,
			Position:     row.Position,
			JerseyNumber: row.JerseyNumber,
			IsStarter:    row.IsStarter,
			X:            row.X,
			Y:            row.Y,
			Touches:      row.Touches,
		})
	}
	statsModels := make([]teamStatsTableModel, 0, len(aggregates.TeamStats))
	for _, row := range aggregates.TeamStats {
		statsModels = append(statsModels, teamStatsTableModel{
			MatchID:           row.MatchID,
			TeamID:            row.TeamID,
			TeamName:          row.TeamName,
			Shots:             row.Shots,
			ShotsOnTarget:     row.ShotsOnTarget,
			Goals:             row.Goals,
			TotalXG:           row.TotalXG,
			Passes:            row.Passes,
			PassesCompleted:   row.PassesCompleted,
			PassCompletionPct: row.PassCompletionPct,
			Carries:           row.Carries,
			Pressures:         row.Pressures,
			PPDA:              row.PPDA,
		})
	}
	ppdaModels := make([]ppdaMatchTableModel, 0, len(aggregates.PPDA))
	for _, row := range aggregates.PPDA {
		ppdaModels = append(ppdaModels, ppdaMatchTableModel{
			MatchID:          row.MatchID,
			TeamID:           row.TeamID,
			TeamName:         row.TeamName,
			PassesAllowed:    row.PassesAllowed,
			DefensiveActions: row.DefensiveActions,
			PPDA:             row.PPDA,
		})
	}

	if err := insertBatched(ctx, tx, "gold_xg_timeline", timelineModels); err != nil {
		return err
	}
	if err := insertBatched(ctx, tx, "gold_shot_map", shotMapModels); err != nil {
		return err
	}
	if err := insertBatched(ctx, tx, "gold_pass_network_nodes", nodeModels); err != nil {
		return err
	}
	if err := insertBatched(ctx, tx, "gold_pass_network_edges", edgeModels); err != nil {
		return err
	}
	if err := insertBatched(ctx, tx, "gold_formation_positions", formationModels); err != nil {
		return err
	}
	if err := insertBatched(ctx, tx, "gold_team_stats", statsModels); err != nil {
		return err
	}
	if err := insertBatched(ctx, tx, "gold_ppda_match", ppdaModels); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace match aggregates tx: %w", err)
	}
	return nil
}

// ReplaceXT rebuilds the dataset-wide threat surface and the player
// leaderboard together. They come from one fit, so they swap together.
func (r *GoldRepository) ReplaceXT(ctx context.Context, grid []gold.XTGridRow, players []gold.XTPlayerRow) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace xt: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"gold_xt_grid", "gold_xt_player"} {
		query, args, err := qb.DeleteFrom(table).ToSQL()
		if err != nil {
			return fmt.Errorf("build clear %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	gridModels := make([]xtGridTableModel, 0, len(grid))
	for _, row := range grid {
		gridModels = append(gridModels, xtGridTableModel{
			CellX:       row.CellX,
			CellY:       row.CellY,
			Value:       row.Value,
			ShotProb:    row.ShotProb,
			GoalProb:    row.GoalProb,
			Iterations:  row.Iterations,
			Approximate: row.Approximate,
		})
	}
	playerModels := make([]xtPlayerTableModel, 0, len(players))
	for _, row := range players {
		playerModels = append(playerModels, xtPlayerTableModel{
			PlayerID:   row.PlayerID,
			PlayerName: row.PlayerName,
			Matches:    row.Matches,
			TotalXT:    row.TotalXT,
			PassXT:     row.PassXT,
			CarryXT:    row.CarryXT,
			XTPerMatch: row.XTPerMatch,
		})
	}

	if err := insertBatched(ctx, tx, "gold_xt_grid", gridModels); err != nil {
		return err
	}
	if err := insertBatched(ctx, tx, "gold_xt_player", playerModels); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace xt tx: %w", err)
	}
	return nil
}

func (r *GoldRepository) ReplacePPDATeam(ctx context.Context, rows []gold.PPDATeamRow) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace ppda team: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.DeleteFrom("gold_ppda_team").ToSQL()
	if err != nil {
		return fmt.Errorf("build clear gold_ppda_team query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear gold_ppda_team: %w", err)
	}

	models := make([]ppdaTeamTableModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, ppdaTeamTableModel{
			CompetitionID:  row.CompetitionID,
			SeasonID:       row.SeasonID,
			TeamID:         row.TeamID,
			TeamName:       row.TeamName,
			MatchesPlayed:  row.MatchesPlayed,
			MatchesDefined: row.MatchesDefined,
			AvgPPDA:        row.AvgPPDA,
		})
	}
	if err := insertBatched(ctx, tx, "gold_ppda_team", models); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace ppda team tx: %w", err)
	}
	return nil
}
