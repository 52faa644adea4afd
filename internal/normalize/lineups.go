package normalize

import (
	"github.com/riskibarqy/pitchmart/internal/domain/event"
	"github.com/riskibarqy/pitchmart/internal/domain/player"
)

const startReasonStartingXI = "Starting XI"

// Lineups normalizes one match's lineup file into squad entries plus
// the player dimension rows it mentions. A player is a starter when
// one of their position windows opens the match; substitutes have
// positions too, so presence of a position alone is not enough.
func Lineups(matchID int64, records []map[string]any) ([]event.LineupEntry, []player.Player) {
	var (
		entries []event.LineupEntry
		players []player.Player
	)

	for _, teamRecord := range records {
		td := newDoc(teamRecord)
		teamID := td.int64p("team_id")
		if teamID == nil {
			continue
		}

		raw, ok := td.lookup("lineup")
		if !ok {
			continue
		}
		squad, ok := raw.([]any)
		if !ok {
			continue
		}

		for _, member := range squad {
			obj, ok := member.(map[string]any)
			if !ok {
				continue
			}
			pd := newDoc(obj)

			playerID := pd.int64p("player_id")
			if playerID == nil {
				continue
			}

			position, starter := firstPosition(pd)
			entries = append(entries, event.LineupEntry{
				MatchID:      matchID,
				TeamID:       *teamID,
				PlayerID:     *playerID,
				PlayerName:   pd.strValue("player_name"),
				JerseyNumber: pd.int64p("jersey_number"),
				Position:     position,
				IsStarter:    starter,
			})
			players = append(players, player.Player{
				PlayerID:   *playerID,
				PlayerName: pd.strValue("player_name"),
				Country:    pd.str("country.name"),
			})
		}
	}

	return entries, players
}

// firstPosition reads the player's first position window. Unused
// substitutes have no windows and stay benched with a nil position.
func firstPosition(pd doc) (*string, bool) {
	raw, ok := pd.lookup("positions")
	if !ok {
		return nil, false
	}
	windows, ok := raw.([]any)
	if !ok || len(windows) == 0 {
		return nil, false
	}
	first, ok := windows[0].(map[string]any)
	if !ok {
		return nil, false
	}
	wd := newDoc(first)

	position := wd.str("position")
	starter := wd.strValue("start_reason") == startReasonStartingXI
	return position, starter
}
