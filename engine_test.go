package twisty

import (
	"errors"
	"math"
	"testing"
	"time"
)

const frame = time.Second / 60

// runUntilIdle ticks e until nothing is queued or in flight.
func runUntilIdle(t *testing.T, e *Engine) int {
	t.Helper()
	for i := 0; i < 100000; i++ {
		if !e.Busy() {
			return i
		}
		e.Tick(frame)
	}
	t.Fatal("engine never went idle")
	return 0
}

func TestEngineStartsIdle(t *testing.T) {
	e := NewEngine()
	e.Tick(frame)
	if e.State() != Idle {
		t.Errorf("State() = %v, want idle", e.State())
	}
	if e.Busy() {
		t.Error("new engine should not be busy")
	}
}

func TestAnimationCompletionU(t *testing.T) {
	e := NewEngine()
	before := map[*Piece]Point{}
	for _, p := range e.Cube().Pieces() {
		before[p] = p.Position()
	}

	if err := e.Enqueue("U"); err != nil {
		t.Fatal(err)
	}
	// 12.5 rad/s for 200ms is 2.5 rad, past a quarter turn.
	e.Tick(200 * time.Millisecond)

	if e.State() != Idle {
		t.Fatalf("State() = %v after a full quarter, want idle", e.State())
	}
	for _, p := range e.Cube().Pieces() {
		if p.Animating() {
			t.Errorf("piece %d still animating", p.ID())
		}
		old := before[p]
		want := old
		if old[1] == 1 {
			// -1 direction about y: (x, y, z) -> (-z, y, x)
			want = Point{-old[2], old[1], old[0]}
		}
		if p.Position() != want {
			t.Errorf("piece from %v at %v, want %v", old, p.Position(), want)
		}
	}
}

func TestAnimationInterpolates(t *testing.T) {
	e := NewEngine(WithAnimSpeed(12.5))
	_ = e.Enqueue("U")

	// 16ms at 12.5 rad/s is 0.2 rad per tick: seven ticks stay short of a
	// quarter turn, the eighth completes it.
	tick := 16 * time.Millisecond
	for i := 0; i < 7; i++ {
		e.Tick(tick)
		if e.State() != Turning {
			t.Fatalf("tick %d: State() = %v, want turning", i+1, e.State())
		}
	}

	p := e.Cube().PieceAt(Point{1, 1, 0})
	if p == nil || !p.Animating() {
		t.Fatal("UR edge should be animating and still locked at its old slot")
	}
	live := p.LivePosition()
	if live.Sub(p.Position().Vec3()).Len() < 0.1 {
		t.Errorf("live position %v should have left %v", live, p.Position())
	}
	if math.Abs(live.Len()-math.Sqrt2) > 1e-9 {
		t.Errorf("live position %v should stay on its orbit", live)
	}
	if got := e.Cube().Serialize(); got != SolvedState {
		t.Error("locked state must not change mid-move")
	}
	if _, err := e.Serialize(); !errors.Is(err, ErrAnimating) {
		t.Errorf("Engine.Serialize mid-move error = %v, want ErrAnimating", err)
	}

	e.Tick(tick)
	if e.State() != Idle {
		t.Fatalf("State() = %v after eighth tick, want idle", e.State())
	}
	if p.Position() != (Point{0, 1, 1}) {
		t.Errorf("UR edge locked at %v, want UF slot", p.Position())
	}
	if p.LivePosition() != p.Position().Vec3() {
		t.Error("live position should snap to the locked position")
	}
}

func TestInvalidTokenDroppedWithoutConsumingFrame(t *testing.T) {
	e := NewEngine()
	_ = e.Enqueue("Q")
	_ = e.Enqueue("R7")
	_ = e.Enqueue("R")
	e.Tick(frame)
	m, ok := e.Current()
	if !ok || m != R {
		t.Errorf("Current() = %v, %v; want R in flight", m, ok)
	}
	if e.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", e.Pending())
	}
}

func TestQueueIsFIFO(t *testing.T) {
	seq := "R U R' F2 M' x d E S'"
	e := NewEngine()
	var dispatched []Move
	e.OnDispatch(func(m Move) { dispatched = append(dispatched, m) })
	if err := e.EnqueueNotation(seq); err != nil {
		t.Fatal(err)
	}
	runUntilIdle(t, e)

	if got := FormatMoves(dispatched); got != seq {
		t.Errorf("dispatch order %q, want %q", got, seq)
	}
	want := NewCube()
	_ = want.ApplyNotation(seq)
	if got, _ := e.Serialize(); got != want.Serialize() {
		t.Errorf("animated result %s differs from instant %s", got, want.Serialize())
	}
	if err := e.Cube().Validate(); err != nil {
		t.Error(err)
	}
}

func TestDoubleMoveIsTwoQuarters(t *testing.T) {
	e := NewEngine()
	var dispatches, locks []Move
	e.OnDispatch(func(m Move) { dispatches = append(dispatches, m) })
	e.OnLock(func(m Move) { locks = append(locks, m) })

	_ = e.Enqueue("F2")
	e.Tick(time.Second)
	if e.State() != Idle || e.Pending() != 1 {
		t.Fatalf("after first quarter: state %v pending %d, want idle with the second half queued", e.State(), e.Pending())
	}
	if len(locks) != 0 {
		t.Error("OnLock should wait for the second quarter")
	}
	half := NewCube()
	_ = half.Apply(F)
	if got, _ := e.Serialize(); got != half.Serialize() {
		t.Error("first quarter should equal F")
	}

	e.Tick(time.Second)
	if len(dispatches) != 1 || dispatches[0] != F2 {
		t.Errorf("dispatches = %v, want [F2]", dispatches)
	}
	if len(locks) != 1 || locks[0] != F2 {
		t.Errorf("locks = %v, want [F2]", locks)
	}
	if h := e.History(); len(h) != 1 || h[0] != F2 {
		t.Errorf("History() = %v, want [F2]", h)
	}
}

func TestOnFrameFiresWhileTurning(t *testing.T) {
	e := NewEngine()
	frames := 0
	e.OnFrame(func(*Cube) { frames++ })
	e.Tick(frame)
	if frames != 0 {
		t.Error("idle tick should not emit a frame")
	}
	_ = e.Enqueue("R")
	n := runUntilIdle(t, e)
	if frames != n {
		t.Errorf("frames = %d, ticks = %d", frames, n)
	}
}

func TestSolveWithHistorySolver(t *testing.T) {
	e := NewEngine()
	e.SetSolver(HistorySolver(e))

	var started []Move
	ended := 0
	e.OnSolveStart(func(sol []Move) { started = sol })
	e.OnSolveEnd(func() { ended++ })

	_ = e.EnqueueNotation("R U2 f' M x")
	if err := e.Solve(); err != nil {
		t.Fatal(err)
	}
	if !e.Solving() {
		t.Error("Solving() should be true once requested")
	}
	if err := e.Enqueue("R"); !errors.Is(err, ErrSolving) {
		t.Errorf("Enqueue while solving = %v, want ErrSolving", err)
	}
	if err := e.Solve(); !errors.Is(err, ErrSolving) {
		t.Errorf("second Solve = %v, want ErrSolving", err)
	}

	runUntilIdle(t, e)

	if got := FormatMoves(started); got != "x' M' f U2 R'" {
		t.Errorf("solution = %q", got)
	}
	if ended != 1 {
		t.Errorf("OnSolveEnd fired %d times", ended)
	}
	if e.Solving() {
		t.Error("Solving() should clear at the end marker")
	}
	if len(e.History()) != 0 {
		t.Error("history should clear when the solution ends")
	}
	if got, _ := e.Serialize(); got != SolvedState {
		t.Errorf("cube not solved: %s", got)
	}
	if err := e.Enqueue("R"); err != nil {
		t.Errorf("input after solution = %v", err)
	}
}

func TestSolverSeesLockedState(t *testing.T) {
	var seen string
	e := NewEngine(WithSolver(SolverFunc(func(state string) (string, error) {
		seen = state
		return "", nil
	})))
	_ = e.EnqueueNotation("R U")
	_ = e.Solve()
	runUntilIdle(t, e)

	want := NewCube()
	_ = want.ApplyNotation("R U")
	if seen != want.Serialize() {
		t.Errorf("solver saw %s, want %s", seen, want.Serialize())
	}
}

func TestSolverFailureEndsSolution(t *testing.T) {
	e := NewEngine(WithSolver(SolverFunc(func(string) (string, error) {
		return "", errors.New("boom")
	})))
	_ = e.Solve()
	runUntilIdle(t, e)
	if e.Solving() {
		t.Error("a failed solve should still end")
	}
}

func TestSolveWithoutSolver(t *testing.T) {
	e := NewEngine()
	if err := e.Solve(); !errors.Is(err, ErrNoSolver) {
		t.Errorf("Solve() = %v, want ErrNoSolver", err)
	}
}

func TestSolutionMarkersDoNotConsumeFrames(t *testing.T) {
	e := NewEngine(WithSolver(SolverFunc(func(string) (string, error) {
		return "U", nil
	})))
	_ = e.Solve()
	e.Tick(frame)
	if m, ok := e.Current(); !ok || m != U {
		t.Errorf("first tick should already animate the solution, got %v %v", m, ok)
	}
}

func TestResetRefusedMidMove(t *testing.T) {
	e := NewEngine()
	_ = e.EnqueueNotation("R U F")
	e.Tick(frame)
	if err := e.Reset(); !errors.Is(err, ErrAnimating) {
		t.Errorf("Reset mid-move = %v, want ErrAnimating", err)
	}
	e.Tick(time.Second)
	if err := e.Reset(); err != nil {
		t.Fatal(err)
	}
	if e.Pending() != 0 || e.Cube().Serialize() != SolvedState {
		t.Error("Reset should clear the queue and solve the cube")
	}
}

func TestClearQueueKeepsSecondHalf(t *testing.T) {
	e := NewEngine()
	_ = e.EnqueueNotation("R2 U F")
	e.Tick(time.Second)
	if n := e.ClearQueue(); n != 2 {
		t.Errorf("ClearQueue() = %d, want 2", n)
	}
	runUntilIdle(t, e)
	want := NewCube()
	_ = want.Apply(R2)
	if got, _ := e.Serialize(); got != want.Serialize() {
		t.Error("the dispatched double should complete")
	}
}

func TestMoveHistoryDisabled(t *testing.T) {
	e := NewEngine(WithMoveHistory(false))
	_ = e.EnqueueNotation("R U")
	runUntilIdle(t, e)
	if len(e.History()) != 0 {
		t.Error("history should stay empty when disabled")
	}
}

func TestIndependentEngines(t *testing.T) {
	a, b := NewEngine(), NewEngine()
	_ = a.Enqueue("R")
	runUntilIdle(t, a)
	if b.Cube().Serialize() != SolvedState {
		t.Error("engines must not share state")
	}
}

func TestSettledMarksLockTickOnly(t *testing.T) {
	e := NewEngine()
	_ = e.Enqueue("U")
	_ = e.Enqueue("D")
	e.Tick(200 * time.Millisecond)

	settled := 0
	for _, p := range e.Cube().Pieces() {
		if p.Settled() {
			settled++
			if p.Position()[1] != 1 {
				t.Errorf("piece %d settled off the U layer", p.ID())
			}
			if !p.LivePosition().ApproxEqual(p.Position().Vec3()) {
				t.Errorf("piece %d live %v, locked %v", p.ID(), p.LivePosition(), p.Position())
			}
		}
	}
	if settled != 9 {
		t.Errorf("%d pieces settled after U, want 9", settled)
	}

	// The next tick starts D and clears the flags.
	e.Tick(frame)
	for _, p := range e.Cube().Pieces() {
		if p.Settled() {
			t.Errorf("piece %d still settled while D animates", p.ID())
		}
	}
}

func TestProjectedIncludesQueue(t *testing.T) {
	e := NewEngine()
	for _, tok := range []string{"x", "M", "U2", "bogus", "Rw"} {
		_ = e.Enqueue(tok)
	}
	e.Tick(frame) // x in flight
	e.Tick(200 * time.Millisecond)
	e.Tick(frame) // M in flight

	want := NewCube()
	if err := want.ApplyNotation("x M U2 Rw"); err != nil {
		t.Fatal(err)
	}
	got := e.Projected()
	if got.Serialize() != want.Serialize() {
		t.Errorf("Projected = %s, want %s", got.Serialize(), want.Serialize())
	}
	for _, p := range got.Pieces() {
		if p.Animating() {
			t.Errorf("projected piece %d still animating", p.ID())
		}
	}

	// The engine's own cube is untouched.
	if !e.Cube().Turning() {
		t.Error("projection should not finish the move in flight")
	}
	runUntilIdle(t, e)
	if e.Cube().Serialize() != want.Serialize() {
		t.Errorf("engine settled at %s, want %s", e.Cube().Serialize(), want.Serialize())
	}
}

func TestProjectedMidDouble(t *testing.T) {
	e := NewEngine()
	_ = e.Enqueue("F2")
	e.Tick(200 * time.Millisecond) // first quarter locked, second queued
	e.Tick(frame)                  // second quarter in flight

	want := NewCube()
	_ = want.Apply(F2)
	if got := e.Projected().Serialize(); got != want.Serialize() {
		t.Errorf("Projected mid F2 = %s, want %s", got, want.Serialize())
	}
}
