// Package passnet builds the starters' passing network of one team in
// one match. The window closes at the team's first substitution so
// node positions describe a stable eleven.
package passnet

import (
	"sort"

	"github.com/riskibarqy/pitchmart/internal/domain/event"
)

type Node struct {
	PlayerID   int64
	PlayerName string
	Position   *string
	X          float64
	Y          float64
	Touches    int64
	PassCount  int64
}

type Edge struct {
	PasserID    int64
	RecipientID int64
	PassCount   int64
	MeanStartX  float64
	MeanStartY  float64
	MeanEndX    float64
	MeanEndY    float64
}

type Network struct {
	TeamID int64
	Nodes  []Node
	Edges  []Edge
}

// clock orders events inside a match.
type clock struct {
	period int64
	minute int64
	second int64
}

func (c clock) before(other clock) bool {
	if c.period != other.period {
		return c.period < other.period
	}
	if c.minute != other.minute {
		return c.minute < other.minute
	}
	return c.second < other.second
}

// Build assembles the network for teamID. With cutoffMinute zero the
// window ends at the team's first substitution (or never, if the
// eleven played through); a positive cutoffMinute overrides that.
func Build(teamID int64, events []event.Event, passes []event.PassDetail, lineups []event.LineupEntry, cutoffMinute int64) Network {
	starters := map[int64]event.LineupEntry{}
	for _, entry := range lineups {
		if entry.TeamID == teamID && entry.IsStarter {
			starters[entry.PlayerID] = entry
		}
	}

	inWindow := windowFunc(teamID, events, cutoffMinute)

	type nodeAcc struct {
		sumX, sumY float64
		touches    int64
		passCount  int64
	}
	nodes := map[int64]*nodeAcc{}
	names := map[int64]string{}

	node := func(playerID int64) *nodeAcc {
		acc, ok := nodes[playerID]
		if !ok {
			acc = &nodeAcc{}
			nodes[playerID] = acc
		}
		return acc
	}

	// Touch positions come from every on-ball event with a location.
	for _, ev := range events {
		if ev.TeamID == nil || *ev.TeamID != teamID || ev.PlayerID == nil {
			continue
		}
		if _, ok := starters[*ev.PlayerID]; !ok {
			continue
		}
		if ev.PlayerName != nil {
			names[*ev.PlayerID] = *ev.PlayerName
		}
		if ev.LocationX == nil || ev.LocationY == nil {
			continue
		}
		if !inWindow(clock{ev.Period, ev.Minute, ev.Second}) {
			continue
		}
		acc := node(*ev.PlayerID)
		acc.sumX += *ev.LocationX
		acc.sumY += *ev.LocationY
		acc.touches++
	}

	type edgeAcc struct {
		count                      int64
		startN, endN               int64
		sumSX, sumSY, sumEX, sumEY float64
	}
	edges := map[[2]int64]*edgeAcc{}

	for _, pd := range passes {
		ev, p := pd.Event, pd.Pass
		if ev.TeamID == nil || *ev.TeamID != teamID {
			continue
		}
		if !p.IsCompleted || ev.PlayerID == nil || p.RecipientID == nil {
			continue
		}
		if _, ok := starters[*ev.PlayerID]; !ok {
			continue
		}
		if _, ok := starters[*p.RecipientID]; !ok {
			continue
		}
		if !inWindow(clock{ev.Period, ev.Minute, ev.Second}) {
			continue
		}

		node(*ev.PlayerID).passCount++

		key := [2]int64{*ev.PlayerID, *p.RecipientID}
		acc, ok := edges[key]
		if !ok {
			acc = &edgeAcc{}
			edges[key] = acc
		}
		acc.count++
		if ev.LocationX != nil && ev.LocationY != nil {
			acc.sumSX += *ev.LocationX
			acc.sumSY += *ev.LocationY
			acc.startN++
		}
		if p.EndX != nil && p.EndY != nil {
			acc.sumEX += *p.EndX
			acc.sumEY += *p.EndY
			acc.endN++
		}
	}

	// A starter with no located touch inside the window has no mean
	// position to plot and is left out of the node set.
	out := Network{TeamID: teamID}
	for playerID, acc := range nodes {
		if acc.touches == 0 {
			continue
		}
		entry := starters[playerID]
		name := names[playerID]
		if name == "" {
			name = entry.PlayerName
		}
		out.Nodes = append(out.Nodes, Node{
			PlayerID:   playerID,
			PlayerName: name,
			Position:   entry.Position,
			X:          acc.sumX / float64(acc.touches),
			Y:          acc.sumY / float64(acc.touches),
			Touches:    acc.touches,
			PassCount:  acc.passCount,
		})
	}
	sort.Slice(out.Nodes, func(i, j int) bool { return out.Nodes[i].PlayerID < out.Nodes[j].PlayerID })

	// Means divide by the located pass count, not the edge weight:
	// a completed pass without coordinates still weighs the edge but
	// must not drag the mean toward the origin.
	for key, acc := range edges {
		edge := Edge{
			PasserID:    key[0],
			RecipientID: key[1],
			PassCount:   acc.count,
		}
		if acc.startN > 0 {
			edge.MeanStartX = acc.sumSX / float64(acc.startN)
			edge.MeanStartY = acc.sumSY / float64(acc.startN)
		}
		if acc.endN > 0 {
			edge.MeanEndX = acc.sumEX / float64(acc.endN)
			edge.MeanEndY = acc.sumEY / float64(acc.endN)
		}
		out.Edges = append(out.Edges, edge)
	}
	sort.Slice(out.Edges, func(i, j int) bool {
		if out.Edges[i].PasserID != out.Edges[j].PasserID {
			return out.Edges[i].PasserID < out.Edges[j].PasserID
		}
		return out.Edges[i].RecipientID < out.Edges[j].RecipientID
	})

	return out
}

// windowFunc returns the predicate deciding whether an event time is
// inside the network window.
func windowFunc(teamID int64, events []event.Event, cutoffMinute int64) func(clock) bool {
	if cutoffMinute > 0 {
		return func(c clock) bool { return c.minute < cutoffMinute }
	}

	var firstSub *clock
	for _, ev := range events {
		if ev.Type != "Substitution" || ev.TeamID == nil || *ev.TeamID != teamID {
			continue
		}
		c := clock{ev.Period, ev.Minute, ev.Second}
		if firstSub == nil || c.before(*firstSub) {
			sub := c
			firstSub = &sub
		}
	}
	if firstSub == nil {
		return func(clock) bool { return true }
	}
	return func(c clock) bool { return c.before(*firstSub) }
}
