// Package xt fits an expected-threat surface over the pitch via
// Markov chain value iteration. Possession value per zone is the
// chance a possession there ends in a goal within the next actions:
//
//	V(z) = P(shot|z)·P(goal|shot,z) + P(move|z)·Σ P(z'|z)·V(z')
package xt

const (
	GridX  = 16
	GridY  = 12
	PitchX = 120.0
	PitchY = 80.0

	Zones = GridX * GridY
)

// smoothing keeps empty zones from dividing by zero, as in the
// classic formulation.
const smoothing = 1e-6

// Move is one completed possession-advancing action, a pass or carry
// with both endpoints known.
type Move struct {
	StartX, StartY float64
	EndX, EndY     float64
}

type Shot struct {
	X, Y float64
	Goal bool
}

type Config struct {
	MaxIterations int
	Epsilon       float64
}

// Surface is the fitted grid. Approximate is set when the iteration
// budget ran out before the epsilon criterion was met; the values are
// still the best available estimate.
type Surface struct {
	Values      []float64
	ShotProb    []float64
	GoalProb    []float64
	Iterations  int
	Approximate bool
}

// ZoneOf maps pitch coordinates to a flat zone index, clamping
// out-of-bounds points to the edge zones.
func ZoneOf(x, y float64) int {
	col := int(x / PitchX * GridX)
	row := int(y / PitchY * GridY)
	col = clamp(col, 0, GridX-1)
	row = clamp(row, 0, GridY-1)
	return row*GridX + col
}

// Fit builds the surface from observed moves and shots.
func Fit(moves []Move, shots []Shot, cfg Config) Surface {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 10
	}
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = 1e-6
	}

	shotCounts := make([]float64, Zones)
	goalCounts := make([]float64, Zones)
	for _, s := range shots {
		z := ZoneOf(s.X, s.Y)
		shotCounts[z]++
		if s.Goal {
			goalCounts[z]++
		}
	}

	moveCounts := make([]float64, Zones)
	transition := make([]float64, Zones*Zones)
	for _, m := range moves {
		from := ZoneOf(m.StartX, m.StartY)
		to := ZoneOf(m.EndX, m.EndY)
		moveCounts[from]++
		transition[from*Zones+to]++
	}

	// Row-normalize the transition counts into probabilities.
	for z := 0; z < Zones; z++ {
		row := transition[z*Zones : (z+1)*Zones]
		var sum float64
		for _, v := range row {
			sum += v
		}
		if sum == 0 {
			continue
		}
		for i := range row {
			row[i] /= sum
		}
	}

	shotProb := make([]float64, Zones)
	goalProb := make([]float64, Zones)
	moveProb := make([]float64, Zones)
	for z := 0; z < Zones; z++ {
		total := shotCounts[z] + moveCounts[z] + smoothing
		shotProb[z] = shotCounts[z] / total
		moveProb[z] = moveCounts[z] / total
		goalProb[z] = goalCounts[z] / (shotCounts[z] + smoothing)
	}

	values := make([]float64, Zones)
	next := make([]float64, Zones)
	iterations := 0
	converged := false

	for i := 0; i < cfg.MaxIterations; i++ {
		var maxDelta float64
		for z := 0; z < Zones; z++ {
			var expected float64
			row := transition[z*Zones : (z+1)*Zones]
			for dst, p := range row {
				if p != 0 {
					expected += p * values[dst]
				}
			}
			next[z] = shotProb[z]*goalProb[z] + moveProb[z]*expected
			if delta := abs(next[z] - values[z]); delta > maxDelta {
				maxDelta = delta
			}
		}
		values, next = next, values
		iterations = i + 1
		if maxDelta < cfg.Epsilon {
			converged = true
			break
		}
	}

	return Surface{
		Values:      values,
		ShotProb:    shotProb,
		GoalProb:    goalProb,
		Iterations:  iterations,
		Approximate: !converged,
	}
}

// ValueAt returns the surface value of the zone containing (x, y).
func (s Surface) ValueAt(x, y float64) float64 {
	return s.Values[ZoneOf(x, y)]
}

// Delta is the threat added by one move, destination value minus
// origin value.
func (s Surface) Delta(m Move) float64 {
	return s.ValueAt(m.EndX, m.EndY) - s.ValueAt(m.StartX, m.StartY)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
