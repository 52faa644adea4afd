package xt

import (
	"math"
	"testing"
)

// Shots from one zone, half of them goals, no moves: that zone's value
// is P(shot)·P(goal|shot) ≈ 0.5 and every other zone stays at zero.
func TestFitShotOnlyZone(t *testing.T) {
	shots := []Shot{
		{X: 114, Y: 40, Goal: true},
		{X: 114, Y: 40, Goal: false},
	}

	surface := Fit(nil, shots, Config{MaxIterations: 10, Epsilon: 1e-9})

	got := surface.ValueAt(114, 40)
	if math.Abs(got-0.5) > 1e-3 {
		t.Fatalf("shot zone value: want ~0.5, got %f", got)
	}
	if v := surface.ValueAt(10, 40); v != 0 {
		t.Fatalf("empty zone must stay zero, got %f", v)
	}
	if surface.Approximate {
		t.Fatal("degenerate model must converge within budget")
	}
}

// A deterministic chain: moves always go from the halfway zone to the
// box, shots only happen in the box and always score. The fixed point
// is V(box)=1 and V(halfway)=1, reached after two sweeps.
func TestFitPropagatesValueThroughChain(t *testing.T) {
	var moves []Move
	var shots []Shot
	for i := 0; i < 50; i++ {
		moves = append(moves, Move{StartX: 61, StartY: 40, EndX: 114, EndY: 40})
		shots = append(shots, Shot{X: 114, Y: 40, Goal: true})
	}

	surface := Fit(moves, shots, Config{MaxIterations: 10, Epsilon: 1e-9})

	box := surface.ValueAt(114, 40)
	halfway := surface.ValueAt(61, 40)

	// Box: 50 shots, 0 outgoing moves -> P(shot)=1, P(goal|shot)=1.
	if math.Abs(box-1.0) > 1e-3 {
		t.Fatalf("box zone value: want ~1.0, got %f", box)
	}
	// Halfway: 0 shots, all moves lead to the box -> V = 1·1·V(box).
	if math.Abs(halfway-box) > 1e-3 {
		t.Fatalf("halfway zone must inherit the box value, got %f vs %f", halfway, box)
	}
	if surface.Approximate {
		t.Fatal("two-zone chain must converge within budget")
	}

	// Moving into the box adds threat, moving out gives it back.
	up := surface.Delta(Move{StartX: 10, StartY: 40, EndX: 114, EndY: 40})
	if up <= 0 {
		t.Fatalf("move toward goal must add threat, got %f", up)
	}
	down := surface.Delta(Move{StartX: 114, StartY: 40, EndX: 10, EndY: 40})
	if down != -up {
		t.Fatalf("reverse move must remove the same threat: %f vs %f", down, up)
	}
}

func TestFitFlagsBudgetOverrun(t *testing.T) {
	// A three-zone chain needs more than one sweep to settle.
	var moves []Move
	var shots []Shot
	for i := 0; i < 20; i++ {
		moves = append(moves, Move{StartX: 10, StartY: 40, EndX: 61, EndY: 40})
		moves = append(moves, Move{StartX: 61, StartY: 40, EndX: 114, EndY: 40})
		shots = append(shots, Shot{X: 114, Y: 40, Goal: true})
	}

	surface := Fit(moves, shots, Config{MaxIterations: 1, Epsilon: 1e-9})
	if !surface.Approximate {
		t.Fatal("one iteration cannot settle a three-zone chain")
	}
	if surface.Iterations != 1 {
		t.Fatalf("unexpected iteration count: %d", surface.Iterations)
	}

	full := Fit(moves, shots, Config{MaxIterations: 10, Epsilon: 1e-9})
	if full.Approximate {
		t.Fatal("ten iterations must be enough for a three-zone chain")
	}
	if full.Iterations >= 10 {
		t.Fatalf("epsilon stop expected before the budget, got %d iterations", full.Iterations)
	}
}

func TestZoneOfClampsOutOfBounds(t *testing.T) {
	if z := ZoneOf(-5, -5); z != 0 {
		t.Fatalf("negative coordinates must clamp to zone 0, got %d", z)
	}
	if z := ZoneOf(130, 90); z != Zones-1 {
		t.Fatalf("overshoot must clamp to the last zone, got %d", z)
	}
	if z := ZoneOf(120, 80); z != Zones-1 {
		t.Fatalf("boundary coordinates must clamp inside the grid, got %d", z)
	}
}
