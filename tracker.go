package twisty

// Tracker watches a cube and reports solving progress.
type Tracker struct {
	cube          *Cube
	owned         bool
	lastPhase     Phase
	highestPhase  Phase // Monotonic - never goes backwards
	phaseCallback func(phase Phase)
}

// NewTracker creates a tracker over its own solved cube.
func NewTracker() *Tracker {
	return &Tracker{
		cube:      NewCube(),
		owned:     true,
		lastPhase: PhaseSolved,
	}
}

// Track creates a tracker over the engine's cube, re-checking the phase
// every time a move locks.
func Track(e *Engine) *Tracker {
	t := &Tracker{
		cube:      e.Cube(),
		lastPhase: e.Cube().DetectPhase(),
	}
	e.OnLock(func(Move) { t.checkPhaseTransition() })
	e.OnSolveEnd(func() { t.highestPhase = PhaseScrambled })
	return t
}

// SetPhaseCallback sets a callback that fires when a new highest phase is
// reached.
func (t *Tracker) SetPhaseCallback(cb func(phase Phase)) {
	t.phaseCallback = cb
}

// Reset forgets the highest phase reached. A tracker owning its cube also
// restores it to solved.
func (t *Tracker) Reset() {
	if t.owned {
		t.cube.Reset()
	}
	t.highestPhase = PhaseScrambled
	t.lastPhase = t.cube.DetectPhase()
}

// ApplyMove applies a move instantly and checks for phase transitions.
// It fails while the cube is mid-animation.
func (t *Tracker) ApplyMove(m Move) error {
	if err := t.cube.Apply(m); err != nil {
		return err
	}
	t.checkPhaseTransition()
	return nil
}

// ApplyMoves applies multiple moves.
func (t *Tracker) ApplyMoves(moves []Move) error {
	for _, m := range moves {
		if err := t.ApplyMove(m); err != nil {
			return err
		}
	}
	return nil
}

// checkPhaseTransition fires the callback only when a phase above every
// earlier one is reached.
func (t *Tracker) checkPhaseTransition() {
	current := t.cube.DetectPhase()
	t.lastPhase = current

	if current > t.highestPhase {
		t.highestPhase = current
		if t.phaseCallback != nil {
			t.phaseCallback(current)
		}
	}
}

// CurrentPhase returns the phase as of the last check. It may go backwards
// while solving.
func (t *Tracker) CurrentPhase() Phase {
	return t.lastPhase
}

// HighestPhase returns the highest phase reached.
func (t *Tracker) HighestPhase() Phase {
	return t.highestPhase
}

// Progress returns the detailed progress.
func (t *Tracker) Progress() Progress {
	return t.cube.Progress()
}

// IsSolved returns true if the cube is solved.
func (t *Tracker) IsSolved() bool {
	return t.cube.IsSolved()
}

// Cube returns the underlying cube for inspection.
func (t *Tracker) Cube() *Cube {
	return t.cube
}
