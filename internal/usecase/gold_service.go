package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/pitchmart/internal/analytics/passnet"
	"github.com/riskibarqy/pitchmart/internal/analytics/ppda"
	"github.com/riskibarqy/pitchmart/internal/analytics/xt"
	"github.com/riskibarqy/pitchmart/internal/domain/event"
	"github.com/riskibarqy/pitchmart/internal/domain/gold"
	"github.com/riskibarqy/pitchmart/internal/domain/match"
	"github.com/riskibarqy/pitchmart/internal/domain/matchstate"
	"github.com/riskibarqy/pitchmart/internal/platform/logging"
)

// onTargetOutcomes per the source taxonomy: a goal or a save is on
// target, everything else (off target, blocked, wayward) is not.
var onTargetOutcomes = map[string]struct{}{
	"Goal": {}, "Saved": {}, "Saved to Post": {},
}

// setPiecePassTypes are restarts excluded from threat attribution so
// the surface reflects open play.
var setPiecePassTypes = map[string]struct{}{
	"Kick Off": {}, "Goal Kick": {}, "Corner": {}, "Throw-in": {},
}

type GoldConfig struct {
	PPDAZoneX               float64
	PassNetworkCutoffMinute int64
	XTMaxIterations         int
	XTEpsilon               float64
	XTMinMatches            int
	MaxWorkers              int
}

type GoldService struct {
	matchRepo match.Repository
	eventRepo event.Repository
	stateRepo matchstate.Repository
	goldRepo  gold.Repository
	cfg       GoldConfig
	logger    *logging.Logger
}

func NewGoldService(
	matchRepo match.Repository,
	eventRepo event.Repository,
	stateRepo matchstate.Repository,
	goldRepo gold.Repository,
	cfg GoldConfig,
	logger *logging.Logger,
) *GoldService {
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &GoldService{
		matchRepo: matchRepo,
		eventRepo: eventRepo,
		stateRepo: stateRepo,
		goldRepo:  goldRepo,
		cfg:       cfg,
		logger:    logger,
	}
}

type GoldResult struct {
	Matches       int
	XTPlayers     int
	XTApproximate bool
}

// threatMove is one open-play pass or carry with both endpoints,
// tagged with its actor for the player leaderboard.
type threatMove struct {
	playerID   int64
	playerName string
	isCarry    bool
	move       xt.Move
}

// matchComputation is everything derived from one match: the per-match
// aggregates plus the raw material for the dataset-wide models.
type matchComputation struct {
	aggregates    gold.MatchAggregates
	competitionID int64
	seasonID      int64
	moves         []threatMove
	shots         []xt.Shot
}

// Run rebuilds every gold aggregate from the silver layer. Per-match
// aggregates are computed concurrently; the threat surface and season
// tables need the whole dataset and come after.
func (s *GoldService) Run(ctx context.Context) (GoldResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GoldService.Run")
	defer span.End()

	if s.eventRepo == nil || s.stateRepo == nil || s.goldRepo == nil {
		return GoldResult{}, fmt.Errorf("%w: gold stage is not fully configured", ErrDependencyUnavailable)
	}

	matchIDs, err := s.stateRepo.ListMaterializedIDs(ctx)
	if err != nil {
		return GoldResult{}, fmt.Errorf("list materialized matches: %w", err)
	}

	workers := pool.NewWithResults[matchComputation]().WithErrors().WithMaxGoroutines(s.cfg.MaxWorkers)
	for _, matchID := range matchIDs {
		matchID := matchID
		workers.Go(func() (matchComputation, error) {
			return s.computeMatch(ctx, matchID)
		})
	}
	computations, err := workers.Wait()
	if err != nil {
		return GoldResult{}, err
	}

	for _, comp := range computations {
		if err := s.goldRepo.ReplaceMatchAggregates(ctx, comp.aggregates); err != nil {
			return GoldResult{}, fmt.Errorf("replace aggregates match=%d: %w", comp.aggregates.MatchID, err)
		}
	}

	grid, players, approximate := s.fitThreat(computations)
	if err := s.goldRepo.ReplaceXT(ctx, grid, players); err != nil {
		return GoldResult{}, fmt.Errorf("replace threat surface: %w", err)
	}

	seasonRows := s.aggregatePPDASeasons(computations)
	if err := s.goldRepo.ReplacePPDATeam(ctx, seasonRows); err != nil {
		return GoldResult{}, fmt.Errorf("replace season pressing table: %w", err)
	}

	result := GoldResult{Matches: len(computations), XTPlayers: len(players), XTApproximate: approximate}
	s.logger.InfoContext(ctx, "gold stage finished",
		"matches", result.Matches, "xt_players", result.XTPlayers, "xt_approximate", result.XTApproximate)
	return result, nil
}

func (s *GoldService) computeMatch(ctx context.Context, matchID int64) (matchComputation, error) {
	m, err := s.matchRepo.Get(ctx, matchID)
	if err != nil {
		return matchComputation{}, fmt.Errorf("get match=%d: %w", matchID, err)
	}
	if m == nil {
		return matchComputation{}, fmt.Errorf("%w: match=%d is materialized but missing from dim_match", ErrNotFound, matchID)
	}

	events, err := s.eventRepo.ListEventsByMatch(ctx, matchID)
	if err != nil {
		return matchComputation{}, fmt.Errorf("list events match=%d: %w", matchID, err)
	}
	passes, err := s.eventRepo.ListPassDetailsByMatch(ctx, matchID)
	if err != nil {
		return matchComputation{}, fmt.Errorf("list passes match=%d: %w", matchID, err)
	}
	shots, err := s.eventRepo.ListShotDetailsByMatch(ctx, matchID)
	if err != nil {
		return matchComputation{}, fmt.Errorf("list shots match=%d: %w", matchID, err)
	}
	carries, err := s.eventRepo.ListCarryDetailsByMatch(ctx, matchID)
	if err != nil {
		return matchComputation{}, fmt.Errorf("list carries match=%d: %w", matchID, err)
	}
	lineups, err := s.eventRepo.ListLineupsByMatch(ctx, matchID)
	if err != nil {
		return matchComputation{}, fmt.Errorf("list lineups match=%d: %w", matchID, err)
	}

	names := newNameIndex(*m, events, lineups)

	agg := gold.MatchAggregates{MatchID: matchID}
	agg.XGTimeline = buildXGTimeline(matchID, shots, names)
	agg.ShotMap = buildShotMap(matchID, shots, names)
	agg.FormationPositions = buildFormationPositions(events, lineups)

	ppdaValues := ppda.Compute(events, passes, s.cfg.PPDAZoneX)
	ppdaByTeam := make(map[int64]*float64, len(ppdaValues))
	for _, v := range ppdaValues {
		ppdaByTeam[v.TeamID] = v.PPDA
		agg.PPDA = append(agg.PPDA, gold.PPDAMatchRow{
			MatchID:          matchID,
			TeamID:           v.TeamID,
			TeamName:         names.team(v.TeamID),
			PassesAllowed:    v.PassesAllowed,
			DefensiveActions: v.DefensiveActions,
			PPDA:             v.PPDA,
		})
	}

	for _, teamID := range []int64{m.HomeTeamID, m.AwayTeamID} {
		agg.TeamStats = append(agg.TeamStats,
			buildTeamStats(matchID, teamID, names.team(teamID), events, passes, shots, carries, ppdaByTeam[teamID]))

		network := passnet.Build(teamID, events, passes, lineups, s.cfg.PassNetworkCutoffMinute)
		for _, node := range network.Nodes {
			agg.PassNetworkNodes = append(agg.PassNetworkNodes, gold.PassNetworkNode{
				MatchID:    matchID,
				TeamID:     teamID,
				PlayerID:   node.PlayerID,
				PlayerName: node.PlayerName,
				Position:   node.Position,
				X:          node.X,
				Y:          node.Y,
				Touches:    node.Touches,
				PassCount:  node.PassCount,
			})
		}
		for _, edge := range network.Edges {
			agg.PassNetworkEdges = append(agg.PassNetworkEdges, gold.PassNetworkEdge{
				MatchID:     matchID,
				TeamID:      teamID,
				PasserID:    edge.PasserID,
				RecipientID: edge.RecipientID,
				PassCount:   edge.PassCount,
				MeanStartX:  edge.MeanStartX,
				MeanStartY:  edge.MeanStartY,
				MeanEndX:    edge.MeanEndX,
				MeanEndY:    edge.MeanEndY,
			})
		}
	}

	moves, xtShots := collectThreatInputs(passes, carries, shots, names)

	return matchComputation{
		aggregates:    agg,
		competitionID: m.CompetitionID,
		seasonID:      m.SeasonID,
		moves:         moves,
		shots:         xtShots,
	}, nil
}

// nameIndex resolves team and player names. Fact rows carry ids only;
// the display names live on the events and lineups.
type nameIndex struct {
	teams   map[int64]string
	players map[int64]string
}

func newNameIndex(m match.Match, events []event.Event, lineups []event.LineupEntry) nameIndex {
	idx := nameIndex{
		teams:   map[int64]string{m.HomeTeamID: m.HomeTeamName, m.AwayTeamID: m.AwayTeamName},
		players: map[int64]string{},
	}
	for _, entry := range lineups {
		idx.players[entry.PlayerID] = entry.PlayerName
	}
	for _, ev := range events {
		if ev.PlayerID != nil && ev.PlayerName != nil {
			idx.players[*ev.PlayerID] = *ev.PlayerName
		}
	}
	return idx
}

func (idx nameIndex) team(teamID int64) string {
	return idx.teams[teamID]
}

func (idx nameIndex) player(playerID *int64) string {
	if playerID == nil {
		return ""
	}
	return idx.players[*playerID]
}

func buildXGTimeline(matchID int64, shots []event.ShotDetail, names nameIndex) []gold.XGTimelineRow {
	cumulative := map[int64]float64{}
	rows := make([]gold.XGTimelineRow, 0, len(shots))
	for _, sd := range shots {
		if sd.Event.TeamID == nil {
			continue
		}
		teamID := *sd.Event.TeamID
		xg := 0.0
		if sd.Shot.StatsbombXG != nil {
			xg = *sd.Shot.StatsbombXG
		}
		cumulative[teamID] += xg
		rows = append(rows, gold.XGTimelineRow{
			MatchID:      matchID,
			TeamID:       teamID,
			TeamName:     names.team(teamID),
			Period:       sd.Event.Period,
			Minute:       sd.Event.Minute,
			Second:       sd.Event.Second,
			XG:           xg,
			CumulativeXG: cumulative[teamID],
			IsGoal:       sd.Shot.IsGoal,
		})
	}
	return rows
}

func buildShotMap(matchID int64, shots []event.ShotDetail, names nameIndex) []gold.ShotMapRow {
	rows := make([]gold.ShotMapRow, 0, len(shots))
	for _, sd := range shots {
		if sd.Event.TeamID == nil || sd.Event.LocationX == nil || sd.Event.LocationY == nil {
			continue
		}
		xg := 0.0
		if sd.Shot.StatsbombXG != nil {
			xg = *sd.Shot.StatsbombXG
		}
		var playerName *string
		if name := names.player(sd.Event.PlayerID); name != "" {
			playerName = &name
		}
		rows = append(rows, gold.ShotMapRow{
			MatchID:    matchID,
			EventID:    sd.Event.EventID,
			TeamID:     *sd.Event.TeamID,
			TeamName:   names.team(*sd.Event.TeamID),
			PlayerID:   sd.Event.PlayerID,
			PlayerName: playerName,
			LocationX:  *sd.Event.LocationX,
			LocationY:  *sd.Event.LocationY,
			XG:         xg,
			Outcome:    sd.Shot.Outcome,
			BodyPart:   sd.Shot.BodyPart,
			Technique:  sd.Shot.Technique,
			ShotType:   sd.Shot.ShotType,
			IsGoal:     sd.Shot.IsGoal,
		})
	}
	return rows
}

func buildFormationPositions(events []event.Event, lineups []event.LineupEntry) []gold.FormationPositionRow {
	type acc struct {
		sumX, sumY float64
		touches    int64
	}
	touches := map[int64]*acc{}
	for _, ev := range events {
		if ev.PlayerID == nil || ev.LocationX == nil || ev.LocationY == nil {
			continue
		}
		a, ok := touches[*ev.PlayerID]
		if !ok {
			a = &acc{}
			touches[*ev.PlayerID] = a
		}
		a.sumX += *ev.LocationX
		a.sumY += *ev.LocationY
		a.touches++
	}

	rows := make([]gold.FormationPositionRow, 0, len(lineups))
	for _, entry := range lineups {
		row := gold.FormationPositionRow{
			MatchID:      entry.MatchID,
			TeamID:       entry.TeamID,
			PlayerID:     entry.PlayerID,
			PlayerName:   entry.PlayerName,
			Position:     entry.Position,
			JerseyNumber: entry.JerseyNumber,
			IsStarter:    entry.IsStarter,
		}
		if a, ok := touches[entry.PlayerID]; ok && a.touches > 0 {
			row.X = a.sumX / float64(a.touches)
			row.Y = a.sumY / float64(a.touches)
			row.Touches = a.touches
		}
		rows = append(rows, row)
	}
	return rows
}

func buildTeamStats(
	matchID, teamID int64,
	teamName string,
	events []event.Event,
	passes []event.PassDetail,
	shots []event.ShotDetail,
	carries []event.CarryDetail,
	ppdaValue *float64,
) gold.TeamStatsRow {
	row := gold.TeamStatsRow{MatchID: matchID, TeamID: teamID, TeamName: teamName, PPDA: ppdaValue}

	for _, sd := range shots {
		if sd.Event.TeamID == nil || *sd.Event.TeamID != teamID {
			continue
		}
		row.Shots++
		if sd.Shot.IsGoal {
			row.Goals++
		}
		if sd.Shot.Outcome != nil {
			if _, ok := onTargetOutcomes[*sd.Shot.Outcome]; ok {
				row.ShotsOnTarget++
			}
		}
		if sd.Shot.StatsbombXG != nil {
			row.TotalXG += *sd.Shot.StatsbombXG
		}
	}
	for _, pd := range passes {
		if pd.Event.TeamID == nil || *pd.Event.TeamID != teamID {
			continue
		}
		row.Passes++
		if pd.Pass.IsCompleted {
			row.PassesCompleted++
		}
	}
	for _, cd := range carries {
		if cd.Event.TeamID != nil && *cd.Event.TeamID == teamID {
			row.Carries++
		}
	}
	for _, ev := range events {
		if ev.Type == "Pressure" && ev.TeamID != nil && *ev.TeamID == teamID {
			row.Pressures++
		}
	}
	if row.Passes > 0 {
		row.PassCompletionPct = 100 * float64(row.PassesCompleted) / float64(row.Passes)
	}
	return row
}

// collectThreatInputs gathers open-play moves and shots for the threat
// model. Restart passes are excluded; a move needs both endpoints.
func collectThreatInputs(
	passes []event.PassDetail,
	carries []event.CarryDetail,
	shots []event.ShotDetail,
	names nameIndex,
) ([]threatMove, []xt.Shot) {
	moves := make([]threatMove, 0, len(passes)+len(carries))
	for _, pd := range passes {
		if !pd.Pass.IsCompleted || pd.Event.PlayerID == nil {
			continue
		}
		if pd.Pass.PassType != nil {
			if _, ok := setPiecePassTypes[*pd.Pass.PassType]; ok {
				continue
			}
		}
		if pd.Event.LocationX == nil || pd.Event.LocationY == nil || pd.Pass.EndX == nil || pd.Pass.EndY == nil {
			continue
		}
		moves = append(moves, threatMove{
			playerID:   *pd.Event.PlayerID,
			playerName: names.player(pd.Event.PlayerID),
			move: xt.Move{
				StartX: *pd.Event.LocationX, StartY: *pd.Event.LocationY,
				EndX: *pd.Pass.EndX, EndY: *pd.Pass.EndY,
			},
		})
	}
	for _, cd := range carries {
		if cd.Event.PlayerID == nil {
			continue
		}
		if cd.Event.LocationX == nil || cd.Event.LocationY == nil || cd.Carry.EndX == nil || cd.Carry.EndY == nil {
			continue
		}
		moves = append(moves, threatMove{
			playerID:   *cd.Event.PlayerID,
			playerName: names.player(cd.Event.PlayerID),
			isCarry:    true,
			move: xt.Move{
				StartX: *cd.Event.LocationX, StartY: *cd.Event.LocationY,
				EndX: *cd.Carry.EndX, EndY: *cd.Carry.EndY,
			},
		})
	}

	xtShots := make([]xt.Shot, 0, len(shots))
	for _, sd := range shots {
		if sd.Event.LocationX == nil || sd.Event.LocationY == nil {
			continue
		}
		xtShots = append(xtShots, xt.Shot{X: *sd.Event.LocationX, Y: *sd.Event.LocationY, Goal: sd.Shot.IsGoal})
	}
	return moves, xtShots
}

func (s *GoldService) fitThreat(computations []matchComputation) ([]gold.XTGridRow, []gold.XTPlayerRow, bool) {
	var allMoves []xt.Move
	var allShots []xt.Shot
	for _, comp := range computations {
		for _, tm := range comp.moves {
			allMoves = append(allMoves, tm.move)
		}
		allShots = append(allShots, comp.shots...)
	}

	surface := xt.Fit(allMoves, allShots, xt.Config{
		MaxIterations: s.cfg.XTMaxIterations,
		Epsilon:       s.cfg.XTEpsilon,
	})

	grid := make([]gold.XTGridRow, 0, xt.Zones)
	for row := 0; row < xt.GridY; row++ {
		for col := 0; col < xt.GridX; col++ {
			z := row*xt.GridX + col
			grid = append(grid, gold.XTGridRow{
				CellX:       int64(col),
				CellY:       int64(row),
				Value:       surface.Values[z],
				ShotProb:    surface.ShotProb[z],
				GoalProb:    surface.GoalProb[z],
				Iterations:  int64(surface.Iterations),
				Approximate: surface.Approximate,
			})
		}
	}

	type playerAcc struct {
		name    string
		matches int
		total   float64
		passXT  float64
		carryXT float64
	}
	players := map[int64]*playerAcc{}
	for _, comp := range computations {
		seen := map[int64]bool{}
		for _, tm := range comp.moves {
			acc, ok := players[tm.playerID]
			if !ok {
				acc = &playerAcc{}
				players[tm.playerID] = acc
			}
			if tm.playerName != "" {
				acc.name = tm.playerName
			}
			if !seen[tm.playerID] {
				seen[tm.playerID] = true
				acc.matches++
			}
			delta := surface.Delta(tm.move)
			acc.total += delta
			if tm.isCarry {
				acc.carryXT += delta
			} else {
				acc.passXT += delta
			}
		}
	}

	rows := make([]gold.XTPlayerRow, 0, len(players))
	for playerID, acc := range players {
		if acc.matches < s.cfg.XTMinMatches {
			continue
		}
		rows = append(rows, gold.XTPlayerRow{
			PlayerID:   playerID,
			PlayerName: acc.name,
			Matches:    int64(acc.matches),
			TotalXT:    acc.total,
			PassXT:     acc.passXT,
			CarryXT:    acc.carryXT,
			XTPerMatch: acc.total / float64(acc.matches),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].XTPerMatch != rows[j].XTPerMatch {
			return rows[i].XTPerMatch > rows[j].XTPerMatch
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
	return grid, rows, surface.Approximate
}

// aggregatePPDASeasons averages defined per-match pressing ratios into
// one row per team and season. Undefined matches count as played but
// never dilute the average.
func (s *GoldService) aggregatePPDASeasons(computations []matchComputation) []gold.PPDATeamRow {
	type seasonKey struct {
		competitionID int64
		seasonID      int64
		teamID        int64
	}
	type seasonAcc struct {
		teamName string
		played   int64
		defined  int64
		sum      float64
	}
	accs := map[seasonKey]*seasonAcc{}
	for _, comp := range computations {
		for _, row := range comp.aggregates.PPDA {
			key := seasonKey{comp.competitionID, comp.seasonID, row.TeamID}
			acc, ok := accs[key]
			if !ok {
				acc = &seasonAcc{teamName: row.TeamName}
				accs[key] = acc
			}
			acc.played++
			if row.PPDA != nil {
				acc.defined++
				acc.sum += *row.PPDA
			}
		}
	}

	rows := make([]gold.PPDATeamRow, 0, len(accs))
	for key, acc := range accs {
		row := gold.PPDATeamRow{
			CompetitionID:  key.competitionID,
			SeasonID:       key.seasonID,
			TeamID:         key.teamID,
			TeamName:       acc.teamName,
			MatchesPlayed:  acc.played,
			MatchesDefined: acc.defined,
		}
		if acc.defined > 0 {
			avg := acc.sum / float64(acc.defined)
			row.AvgPPDA = &avg
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CompetitionID != rows[j].CompetitionID {
			return rows[i].CompetitionID < rows[j].CompetitionID
		}
		if rows[i].SeasonID != rows[j].SeasonID {
			return rows[i].SeasonID < rows[j].SeasonID
		}
		return rows[i].TeamID < rows[j].TeamID
	})
	return rows
}
