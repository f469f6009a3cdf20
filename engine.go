package twisty

import (
	"log/slog"
	"time"
)

// State is the animation state of an Engine.
type State int

const (
	Idle    State = iota // no move in flight
	Turning              // a quarter turn is being animated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Turning:
		return "turning"
	default:
		return "unknown"
	}
}

// Reserved queue markers bracketing a solver's answer. They never parse as
// moves.
const (
	SolutionStart = "<solution-start>"
	SolutionEnd   = "<solution-end>"
)

type itemKind int

const (
	itemToken itemKind = iota
	itemSecondHalf
	itemSolutionStart
	itemSolutionEnd
)

// queued is one entry of the move queue. Tokens stay raw until dequeued.
type queued struct {
	kind  itemKind
	token string
	move  Move // set for itemSecondHalf
}

// Engine owns one cube, its move queue and the animation state machine.
//
// Producers append tokens with Enqueue; a frame driver calls Tick once per
// frame and the engine dispatches at most one quarter turn at a time, in
// FIFO order. An Engine is not safe for concurrent use: run it from a
// single goroutine and funnel input from other goroutines through a
// channel into that goroutine.
type Engine struct {
	cfg  *config
	log  *slog.Logger
	cube *Cube

	state   State
	queue   []queued
	current Move // move in flight
	last    bool // current quarter is the final one of current
	solving bool
	history []Move

	onDispatch   []func(Move)
	onLock       []func(Move)
	onFrame      []func(*Cube)
	onSolveStart []func(solution []Move)
	onSolveEnd   []func()
}

// NewEngine creates an engine around a solved cube.
func NewEngine(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Engine{
		cfg:  cfg,
		log:  cfg.logger,
		cube: NewCube(),
	}
}

// OnDispatch registers a callback fired when a move starts animating.
// Doubles fire once, on their first quarter. Callbacks run in
// registration order on the goroutine calling Tick.
func (e *Engine) OnDispatch(cb func(Move)) {
	e.onDispatch = append(e.onDispatch, cb)
}

// OnLock registers a callback fired when a move has fully locked.
func (e *Engine) OnLock(cb func(Move)) {
	e.onLock = append(e.onLock, cb)
}

// OnFrame registers a callback fired after every tick that moved pieces.
// It is the hook for render sinks reading live positions.
func (e *Engine) OnFrame(cb func(*Cube)) {
	e.onFrame = append(e.onFrame, cb)
}

// OnSolveStart registers a callback fired when the solver has answered and
// its moves have been queued.
func (e *Engine) OnSolveStart(cb func(solution []Move)) {
	e.onSolveStart = append(e.onSolveStart, cb)
}

// OnSolveEnd registers a callback fired when solution playback finishes.
func (e *Engine) OnSolveEnd(cb func()) {
	e.onSolveEnd = append(e.onSolveEnd, cb)
}

// SetSolver replaces the configured solver.
func (e *Engine) SetSolver(s Solver) {
	e.cfg.solver = s
}

// Cube returns the engine's cube. Callers must treat it as read-only.
func (e *Engine) Cube() *Cube { return e.cube }

// State returns the current animation state.
func (e *Engine) State() State { return e.state }

// Solving reports whether a solution has been requested and has not
// finished playing.
func (e *Engine) Solving() bool { return e.solving }

// Pending returns the number of queued entries, markers included.
func (e *Engine) Pending() int { return len(e.queue) }

// Busy reports whether a move is in flight or anything is queued.
func (e *Engine) Busy() bool {
	return e.state == Turning || len(e.queue) > 0
}

// Current returns the move in flight.
func (e *Engine) Current() (Move, bool) {
	return e.current, e.state == Turning
}

// History returns a copy of the moves dispatched since the last completed
// solution.
func (e *Engine) History() []Move {
	out := make([]Move, len(e.history))
	copy(out, e.history)
	return out
}

// Projected returns a copy of the cube as it will stand once the move in
// flight and every queued move have locked. Invalid tokens and solution
// markers are skipped.
func (e *Engine) Projected() *Cube {
	c := e.cube.Clone()
	c.advance(QuarterTurn)
	for _, item := range e.queue {
		switch item.kind {
		case itemSecondHalf:
			_ = c.Apply(Move{Layer: item.move.Layer, Turn: CW})
		case itemToken:
			if m, err := ParseMove(item.token); err == nil {
				_ = c.Apply(m)
			}
		}
	}
	return c
}

// Enqueue appends a raw move token. The token is not validated here:
// unrecognized tokens are dropped when they reach the front of the queue.
// Input is refused with ErrSolving while a solution is playing.
func (e *Engine) Enqueue(token string) error {
	if e.solving {
		return ErrSolving
	}
	e.queue = append(e.queue, queued{kind: itemToken, token: token})
	return nil
}

// EnqueueMove appends a parsed move.
func (e *Engine) EnqueueMove(m Move) error {
	return e.Enqueue(m.Notation())
}

// EnqueueNotation appends every whitespace-separated token of s.
func (e *Engine) EnqueueNotation(s string) error {
	if e.solving {
		return ErrSolving
	}
	for _, tok := range solutionTokens(s) {
		e.queue = append(e.queue, queued{kind: itemToken, token: tok})
	}
	return nil
}

// Solve requests a solution. The solver runs when the request reaches the
// front of the queue, so moves queued earlier are played first. Further
// input is refused until the solution has played.
func (e *Engine) Solve() error {
	if e.solving {
		return ErrSolving
	}
	if e.cfg.solver == nil {
		return ErrNoSolver
	}
	e.solving = true
	e.queue = append(e.queue, queued{kind: itemSolutionStart})
	return nil
}

// ClearQueue discards every queued entry that has not been dispatched and
// returns how many were dropped. The move in flight, if any, completes.
// A pending solution is abandoned and input is accepted again. The second
// quarter of a double already dispatched is kept.
func (e *Engine) ClearQueue() int {
	keep := 0
	if len(e.queue) > 0 && e.queue[0].kind == itemSecondHalf {
		keep = 1
	}
	n := len(e.queue) - keep
	e.queue = e.queue[:keep]
	e.solving = false
	return n
}

// Reset discards the queue and returns the cube to the solved state. It
// fails with ErrAnimating while a move is in flight; moves are never
// cancelled midway.
func (e *Engine) Reset() error {
	if e.state == Turning {
		return ErrAnimating
	}
	e.queue = e.queue[:0]
	e.solving = false
	e.history = nil
	e.cube.Reset()
	e.log.Debug("cube reset")
	return nil
}

// Serialize returns the locked state string. It fails with ErrAnimating
// while a move is in flight.
func (e *Engine) Serialize() (string, error) {
	if e.state == Turning {
		return "", ErrAnimating
	}
	return e.cube.Serialize(), nil
}

// Tick advances the engine by dt of real time. When idle it first drains
// markers and invalid tokens from the queue until one quarter turn is
// dispatched; the new turn starts animating in the same tick.
func (e *Engine) Tick(dt time.Duration) {
	if e.state == Idle {
		e.poll()
	}
	if e.state != Turning {
		return
	}

	if e.cube.advance(dt.Seconds() * e.cfg.animSpeed) {
		e.state = Idle
		if e.last {
			e.log.Debug("move locked", "move", e.current.Notation())
			for _, cb := range e.onLock {
				cb(e.current)
			}
		}
	}
	for _, cb := range e.onFrame {
		cb(e.cube)
	}
}

// poll pops queue entries until a quarter turn is dispatched or the queue
// is empty.
func (e *Engine) poll() {
	for e.state == Idle && len(e.queue) > 0 {
		item := e.queue[0]
		e.queue = e.queue[1:]

		switch item.kind {
		case itemSolutionStart:
			e.runSolver()
		case itemSolutionEnd:
			e.finishSolution()
		case itemSecondHalf:
			e.dispatch(item.move, 1, true)
		default:
			m, err := ParseMove(item.token)
			if err != nil {
				e.log.Debug("dropping invalid move token", "token", item.token)
				continue
			}
			e.start(m)
		}
	}
}

// start dispatches the first quarter of m. A double leaves its second
// quarter at the front of the queue.
func (e *Engine) start(m Move) {
	q := m.Quarters()
	if len(q) == 2 {
		e.queue = append([]queued{{kind: itemSecondHalf, move: m}}, e.queue...)
	}
	if e.cfg.moveHistory {
		e.history = append(e.history, m)
	}
	for _, cb := range e.onDispatch {
		cb(m)
	}
	e.dispatch(m, q[0], len(q) == 1)
}

// dispatch selects the pieces for one quarter of m and enters Turning.
func (e *Engine) dispatch(m Move, dir int, last bool) {
	triples, _ := Triples(m.Layer, dir)
	n := 0
	for _, t := range triples {
		n += e.cube.selectPlane(t)
	}
	e.current = m
	e.last = last
	e.state = Turning
	e.log.Debug("move dispatched", "move", m.Notation(), "pieces", n)
}

// runSolver asks the solver for a solution to the current locked state and
// queues it followed by the end marker.
func (e *Engine) runSolver() {
	state := e.cube.Serialize()
	var solution string
	if e.cfg.solver != nil {
		s, err := e.cfg.solver.Solve(state)
		if err != nil {
			e.log.Warn("solver failed", "state", state, "error", err)
		} else {
			solution = s
		}
	}
	tokens := solutionTokens(solution)
	for _, tok := range tokens {
		e.queue = append(e.queue, queued{kind: itemToken, token: tok})
	}
	e.queue = append(e.queue, queued{kind: itemSolutionEnd})
	e.log.Info("solution queued", "moves", len(tokens))

	moves := ParseMoves(solution)
	for _, cb := range e.onSolveStart {
		cb(moves)
	}
}

func (e *Engine) finishSolution() {
	e.solving = false
	e.history = nil
	for _, cb := range e.onSolveEnd {
		cb()
	}
}
