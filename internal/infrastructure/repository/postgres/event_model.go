package postgres

import "github.com/riskibarqy/pitchmart/internal/domain/event"

type eventTableModel struct {
	EventID          string   `db:"event_id"`
	MatchID          int64    `db:"match_id"`
	Index            int64    `db:"index"`
	Period           int64    `db:"period"`
	Timestamp        string   `db:"timestamp"`
	Minute           int64    `db:"minute"`
	Second           int64    `db:"second"`
	Type             string   `db:"type"`
	Possession       *int64   `db:"possession"`
	PossessionTeamID *int64   `db:"possession_team_id"`
	PlayPattern      *string  `db:"play_pattern"`
	TeamID           *int64   `db:"team_id"`
	TeamName         *string  `db:"team_name"`
	PlayerID         *int64   `db:"player_id"`
	PlayerName       *string  `db:"player_name"`
	Position         *string  `db:"position"`
	LocationX        *float64 `db:"location_x"`
	LocationY        *float64 `db:"location_y"`
	Duration         *float64 `db:"duration"`
	UnderPressure    bool     `db:"under_pressure"`
}

// Pass, shot and carry tables carry the parent event's actor, clock
// and origin columns so the aggregate readers stay single-table, as a
// star schema should.
type passTableModel struct {
	EventID       string   `db:"event_id"`
	MatchID       int64    `db:"match_id"`
	TeamID        *int64   `db:"team_id"`
	PlayerID      *int64   `db:"player_id"`
	Period        int64    `db:"period"`
	Minute        int64    `db:"minute"`
	Second        int64    `db:"second"`
	LocationX     *float64 `db:"location_x"`
	LocationY     *float64 `db:"location_y"`
	EndX          *float64 `db:"end_location_x"`
	EndY          *float64 `db:"end_location_y"`
	RecipientID   *int64   `db:"recipient_id"`
	RecipientName *string  `db:"recipient_name"`
	Length        *float64 `db:"length"`
	Angle         *float64 `db:"angle"`
	Height        *string  `db:"height"`
	BodyPart      *string  `db:"body_part"`
	PassType      *string  `db:"pass_type"`
	Technique     *string  `db:"technique"`
	Outcome       *string  `db:"outcome"`
	IsCompleted   bool     `db:"is_completed"`
	IsCross       bool     `db:"is_cross"`
	IsSwitch      bool     `db:"is_switch"`
	IsThroughBall bool     `db:"is_through_ball"`
	IsShotAssist  bool     `db:"is_shot_assist"`
	IsGoalAssist  bool     `db:"is_goal_assist"`
	UnderPressure bool     `db:"under_pressure"`
}

type shotTableModel struct {
	EventID       string   `db:"event_id"`
	MatchID       int64    `db:"match_id"`
	TeamID        *int64   `db:"team_id"`
	PlayerID      *int64   `db:"player_id"`
	Period        int64    `db:"period"`
	Minute        int64    `db:"minute"`
	Second        int64    `db:"second"`
	LocationX     *float64 `db:"location_x"`
	LocationY     *float64 `db:"location_y"`
	EndX          *float64 `db:"end_location_x"`
	EndY          *float64 `db:"end_location_y"`
	EndZ          *float64 `db:"end_location_z"`
	XG            *float64 `db:"xg"`
	Outcome       *string  `db:"outcome"`
	IsGoal        bool     `db:"is_goal"`
	BodyPart      *string  `db:"body_part"`
	Technique     *string  `db:"technique"`
	ShotType      *string  `db:"shot_type"`
	IsFirstTime   bool     `db:"is_first_time"`
	KeyPassID     *string  `db:"key_pass_id"`
	UnderPressure bool     `db:"under_pressure"`
}

type carryTableModel struct {
	EventID       string   `db:"event_id"`
	MatchID       int64    `db:"match_id"`
	TeamID        *int64   `db:"team_id"`
	PlayerID      *int64   `db:"player_id"`
	Period        int64    `db:"period"`
	Minute        int64    `db:"minute"`
	Second        int64    `db:"second"`
	LocationX     *float64 `db:"location_x"`
	LocationY     *float64 `db:"location_y"`
	EndX          *float64 `db:"end_location_x"`
	EndY          *float64 `db:"end_location_y"`
	Duration      *float64 `db:"duration"`
	UnderPressure bool     `db:"under_pressure"`
}

type lineupTableModel struct {
	MatchID      int64   `db:"match_id"`
	TeamID       int64   `db:"team_id"`
	PlayerID     int64   `db:"player_id"`
	PlayerName   string  `db:"player_name"`
	JerseyNumber *int64  `db:"jersey_number"`
	Position     *string `db:"position"`
	IsStarter    bool    `db:"is_starter"`
}

type freezeFrameTableModel struct {
	ShotEventID string   `db:"event_id"`
	MatchID     int64    `db:"match_id"`
	PlayerID    *int64   `db:"player_id"`
	PlayerName  *string  `db:"player_name"`
	Position    *string  `db:"position"`
	LocationX   *float64 `db:"location_x"`
	LocationY   *float64 `db:"location_y"`
	IsTeammate  bool     `db:"is_teammate"`
}

func eventToModel(item event.Event) eventTableModel {
	return eventTableModel{
		EventID:          item.EventID,
		MatchID:          item.MatchID,
		Index:            item.Index,
		Period:           item.Period,
		Timestamp:        item.Timestamp,
		Minute:           item.Minute,
		Second:           item.Second,
		Type:             item.Type,
		Possession:       item.Possession,
		PossessionTeamID: item.PossessionTeamID,
		PlayPattern:      item.PlayPattern,
		TeamID:           item.TeamID,
		TeamName:         item.TeamName,
		PlayerID:         item.PlayerID,
		PlayerName:       item.PlayerName,
		Position:         item.Position,
		LocationX:        item.LocationX,
		LocationY:        item.LocationY,
		Duration:         item.Duration,
		UnderPressure:    item.UnderPressure,
	}
}

func modelToEvent(row eventTableModel) event.Event {
	return event.Event{
		EventID:          row.EventID,
		MatchID:          row.MatchID,
		Index:            row.Index,
		Period:           row.Period,
		Timestamp:        row.Timestamp,
		Minute:           row.Minute,
		Second:           row.Second,
		Type:             row.Type,
		Possession:       row.Possession,
		PossessionTeamID: row.PossessionTeamID,
		PlayPattern:      row.PlayPattern,
		TeamID:           row.TeamID,
		TeamName:         row.TeamName,
		PlayerID:         row.PlayerID,
		PlayerName:       row.PlayerName,
		Position:         row.Position,
		LocationX:        row.LocationX,
		LocationY:        row.LocationY,
		Duration:         row.Duration,
		UnderPressure:    row.UnderPressure,
	}
}

func passToModel(p event.Pass, parent event.Event) passTableModel {
	return passTableModel{
		EventID:       p.EventID,
		MatchID:       p.MatchID,
		TeamID:        parent.TeamID,
		PlayerID:      parent.PlayerID,
		Period:        parent.Period,
		Minute:        parent.Minute,
		Second:        parent.Second,
		LocationX:     parent.LocationX,
		LocationY:     parent.LocationY,
		EndX:          p.EndX,
		EndY:          p.EndY,
		RecipientID:   p.RecipientID,
		RecipientName: p.RecipientName,
		Length:        p.Length,
		Angle:         p.Angle,
		Height:        p.Height,
		BodyPart:      p.BodyPart,
		PassType:      p.PassType,
		Technique:     p.Technique,
		Outcome:       p.Outcome,
		IsCompleted:   p.IsCompleted,
		IsCross:       p.IsCross,
		IsSwitch:      p.IsSwitch,
		IsThroughBall: p.IsThroughBall,
		IsShotAssist:  p.IsShotAssist,
		IsGoalAssist:  p.IsGoalAssist,
		UnderPressure: parent.UnderPressure,
	}
}

func modelToPassDetail(row passTableModel) event.PassDetail {
	return event.PassDetail{
		Event: event.Event{
			EventID:       row.EventID,
			MatchID:       row.MatchID,
			Period:        row.Period,
			Minute:        row.Minute,
			Second:        row.Second,
			Type:          "Pass",
			TeamID:        row.TeamID,
			PlayerID:      row.PlayerID,
			LocationX:     row.LocationX,
			LocationY:     row.LocationY,
			UnderPressure: row.UnderPressure,
		},
		Pass: event.Pass{
			EventID:       row.EventID,
			MatchID:       row.MatchID,
			RecipientID:   row.RecipientID,
			RecipientName: row.RecipientName,
			Length:        row.Length,
			Angle:         row.Angle,
			Height:        row.Height,
			EndX:          row.EndX,
			EndY:          row.EndY,
			BodyPart:      row.BodyPart,
			PassType:      row.PassType,
			Technique:     row.Technique,
			Outcome:       row.Outcome,
			IsCompleted:   row.IsCompleted,
			IsCross:       row.IsCross,
			IsSwitch:      row.IsSwitch,
			IsThroughBall: row.IsThroughBall,
			IsShotAssist:  row.IsShotAssist,
			IsGoalAssist:  row.IsGoalAssist,
		},
	}
}

func shotToModel(s event.Shot, parent event.Event) shotTableModel {
	return shotTableModel{
		EventID:       s.EventID,
		MatchID:       s.MatchID,
		TeamID:        parent.TeamID,
		PlayerID:      parent.PlayerID,
		Period:        parent.Period,
		Minute:        parent.Minute,
		Second:        parent.Second,
		LocationX:     parent.LocationX,
		LocationY:     parent.LocationY,
		EndX:          s.EndX,
		EndY:          s.EndY,
		EndZ:          s.EndZ,
		XG:            s.StatsbombXG,
		Outcome:       s.Outcome,
		IsGoal:        s.IsGoal,
		BodyPart:      s.BodyPart,
		Technique:     s.Technique,
		ShotType:      s.ShotType,
		IsFirstTime:   s.FirstTime,
		KeyPassID:     s.KeyPassID,
		UnderPressure: parent.UnderPressure,
	}
}

func modelToShotDetail(row shotTableModel) event.ShotDetail {
	return event.ShotDetail{
		Event: event.Event{
			EventID:       row.EventID,
			MatchID:       row.MatchID,
			Period:        row.Period,
			Minute:        row.Minute,
			Second:        row.Second,
			Type:          "Shot",
			TeamID:        row.TeamID,
			PlayerID:      row.PlayerID,
			LocationX:     row.LocationX,
			LocationY:     row.LocationY,
			UnderPressure: row.UnderPressure,
		},
		Shot: event.Shot{
			EventID:     row.EventID,
			MatchID:     row.MatchID,
			StatsbombXG: row.XG,
			EndX:        row.EndX,
			EndY:        row.EndY,
			EndZ:        row.EndZ,
			Outcome:     row.Outcome,
			Technique:   row.Technique,
			BodyPart:    row.BodyPart,
			ShotType:    row.ShotType,
			FirstTime:   row.IsFirstTime,
			KeyPassID:   row.KeyPassID,
			IsGoal:      row.IsGoal,
		},
	}
}

func carryToModel(c event.Carry, parent event.Event) carryTableModel {
	return carryTableModel{
		EventID:       c.EventID,
		MatchID:       c.MatchID,
		TeamID:        parent.TeamID,
		PlayerID:      parent.PlayerID,
		Period:        parent.Period,
		Minute:        parent.Minute,
		Second:        parent.Second,
		LocationX:     parent.LocationX,
		LocationY:     parent.LocationY,
		EndX:          c.EndX,
		EndY:          c.EndY,
		Duration:      parent.Duration,
		UnderPressure: parent.UnderPressure,
	}
}

func modelToCarryDetail(row carryTableModel) event.CarryDetail {
	return event.CarryDetail{
		Event: event.Event{
			EventID:       row.EventID,
			MatchID:       row.MatchID,
			Period:        row.Period,
			Minute:        row.Minute,
			Second:        row.Second,
			Type:          "Carry",
			TeamID:        row.TeamID,
			PlayerID:      row.PlayerID,
			LocationX:     row.LocationX,
			LocationY:     row.LocationY,
			Duration:      row.Duration,
			UnderPressure: row.UnderPressure,
		},
		Carry: event.Carry{
			EventID: row.EventID,
			MatchID: row.MatchID,
			EndX:    row.EndX,
			EndY:    row.EndY,
		},
	}
}
