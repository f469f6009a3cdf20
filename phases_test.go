package twisty

import "testing"

func TestDetectPhase(t *testing.T) {
	tests := []struct {
		moves string
		want  Phase
	}{
		{"", PhaseSolved},
		{"D", PhaseYellowCross},
		{"D2", PhaseYellowCross},
		{"R", PhaseScrambled},
		{"x y2", PhaseSolved},
		{"x2 U x2", PhaseYellowCross},
	}
	for _, tt := range tests {
		c := NewCube()
		if err := c.ApplyNotation(tt.moves); err != nil {
			t.Fatal(err)
		}
		if got := c.DetectPhase(); got != tt.want {
			t.Errorf("DetectPhase after %q = %v, want %v", tt.moves, got, tt.want)
		}
	}
}

func TestProgressSolved(t *testing.T) {
	p := NewCube().Progress()
	if !(p.WhiteCross && p.FirstLayer && p.SecondLayer && p.YellowCross &&
		p.YellowCorners && p.YellowOriented && p.Solved) {
		t.Errorf("solved cube progress = %+v", p)
	}
}

func TestPhaseOrdering(t *testing.T) {
	if !(PhaseScrambled < PhaseWhiteCross && PhaseYellowOriented < PhaseSolved) {
		t.Error("phases must be ordered")
	}
	if PhaseYellowCorners.String() != "yellow_corners" {
		t.Errorf("String() = %q", PhaseYellowCorners.String())
	}
}

func TestTrackerOwnCube(t *testing.T) {
	tr := NewTracker()
	var reached []Phase
	tr.SetPhaseCallback(func(p Phase) { reached = append(reached, p) })

	if err := tr.ApplyMoves([]Move{R, U}); err != nil {
		t.Fatal(err)
	}
	if tr.CurrentPhase() != PhaseScrambled || len(reached) != 0 {
		t.Errorf("after R U: phase %v, callbacks %v", tr.CurrentPhase(), reached)
	}
	if err := tr.ApplyMoves([]Move{UPrime, RPrime}); err != nil {
		t.Fatal(err)
	}
	if !tr.IsSolved() || tr.HighestPhase() != PhaseSolved {
		t.Errorf("undo should solve: highest %v", tr.HighestPhase())
	}
	if len(reached) != 1 || reached[0] != PhaseSolved {
		t.Errorf("callbacks = %v", reached)
	}

	_ = tr.ApplyMove(F)
	tr.Reset()
	if !tr.IsSolved() || tr.HighestPhase() != PhaseScrambled {
		t.Error("Reset should restore an owned cube and forget progress")
	}
}

func TestTrackEngine(t *testing.T) {
	e := NewEngine()
	tr := Track(e)
	var reached []Phase
	tr.SetPhaseCallback(func(p Phase) { reached = append(reached, p) })

	_ = e.EnqueueNotation("D D'")
	runUntilIdle(t, e)

	if len(reached) != 2 || reached[0] != PhaseYellowCross || reached[1] != PhaseSolved {
		t.Errorf("phases reached = %v, want [yellow_cross solved]", reached)
	}
	if tr.Cube() != e.Cube() {
		t.Error("tracker should watch the engine's cube")
	}
}

func TestPhaseKeys(t *testing.T) {
	for p := PhaseScrambled; p <= PhaseSolved; p++ {
		got, ok := ParsePhase(p.String())
		if !ok || got != p {
			t.Errorf("ParsePhase(%q) = %v, %v", p.String(), got, ok)
		}
		if p.DisplayName() == "" || p.DisplayName() == "Unknown" {
			t.Errorf("%v has no display name", p)
		}
	}
	if _, ok := ParsePhase("f2l"); ok {
		t.Error("unknown key parsed")
	}
	if Phase(42).String() != "unknown" {
		t.Errorf("out-of-range phase = %q", Phase(42).String())
	}
}
