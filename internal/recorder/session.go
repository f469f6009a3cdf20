package recorder

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

var (
	ErrRecording    = errors.New("recorder: session already in progress")
	ErrNotRecording = errors.New("recorder: no session in progress")
)

// SessionState represents the current state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateEnded
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session records the moves an engine dispatches, and the phases its cube
// reaches, into the database.
type Session struct {
	stateFile *StateFile
	log       *slog.Logger

	mu         sync.RWMutex
	state      SessionState
	sessionID  string
	startTime  time.Time
	moveIndex  int
	inSolution bool

	sessionRepo *storage.SessionRepository
	moveRepo    *storage.MoveRepository
	phaseRepo   *storage.PhaseRepository

	onMove func(twisty.Move)
}

// NewSession creates a session recorder. stateFile may be nil.
func NewSession(db *storage.DB, stateFile *StateFile) *Session {
	return &Session{
		stateFile:   stateFile,
		log:         slog.New(slog.DiscardHandler),
		state:       StateIdle,
		sessionRepo: storage.NewSessionRepository(db),
		moveRepo:    storage.NewMoveRepository(db),
		phaseRepo:   storage.NewPhaseRepository(db),
	}
}

// SetLogger sets the logger for recording failures.
func (s *Session) SetLogger(l *slog.Logger) {
	if l != nil {
		s.log = l
	}
}

// SetMoveCallback sets the callback fired after a move is stored.
func (s *Session) SetMoveCallback(cb func(twisty.Move)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMove = cb
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SessionID returns the current session ID.
func (s *Session) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// ElapsedMs returns the time since the session started in milliseconds.
func (s *Session) ElapsedMs() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateRecording {
		return 0
	}
	return time.Since(s.startTime).Milliseconds()
}

// MoveCount returns the number of moves stored so far.
func (s *Session) MoveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.moveIndex
}

// Start opens a new session. source names the input, such as "keyboard",
// "ws" or "ble".
func (s *Session) Start(source, scramble, notes string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return "", ErrRecording
	}

	id, err := s.sessionRepo.Create(source, scramble, notes)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	s.sessionID = id
	s.startTime = time.Now()
	s.moveIndex = 0
	s.inSolution = false
	s.state = StateRecording

	if s.stateFile != nil {
		if err := s.stateFile.SetActiveSession(id); err != nil {
			s.log.Warn("failed to update state file", "error", err)
		}
	}
	s.log.Info("session started", "session", id, "source", source)
	return id, nil
}

// End closes the session, storing the locked state it finished in.
func (s *Session) End(finalState string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNotRecording
	}
	if err := s.sessionRepo.End(s.sessionID, finalState); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	s.state = StateEnded

	if s.stateFile != nil {
		if err := s.stateFile.ClearActiveSession(); err != nil {
			s.log.Warn("failed to update state file", "error", err)
		}
	}
	s.log.Info("session ended", "session", s.sessionID, "moves", s.moveIndex)
	return nil
}

// Resume continues an interrupted session, appending after its last move.
func (s *Session) Resume(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessionRepo.Get(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	if sess == nil {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	if sess.EndedAt != nil {
		return fmt.Errorf("session %s already ended", sessionID)
	}

	next, err := s.moveRepo.GetNextIndex(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get next move index: %w", err)
	}

	s.sessionID = sessionID
	s.startTime = sess.StartedAt
	s.moveIndex = next
	s.inSolution = false
	s.state = StateRecording
	return nil
}

// RecordMove stores one move at the current offset from the session start.
func (s *Session) RecordMove(m twisty.Move) error {
	s.mu.Lock()
	if s.state != StateRecording {
		s.mu.Unlock()
		return ErrNotRecording
	}
	tsMs := time.Since(s.startTime).Milliseconds()
	if _, err := s.moveRepo.Create(s.sessionID, s.moveIndex, tsMs, m, s.inSolution); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to store move: %w", err)
	}
	s.moveIndex++
	cb := s.onMove
	s.mu.Unlock()

	if cb != nil {
		cb(m)
	}
	return nil
}

// MarkPhase stores the moment a new phase was first reached.
func (s *Session) MarkPhase(p twisty.Phase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNotRecording
	}
	tsMs := time.Since(s.startTime).Milliseconds()
	if _, err := s.phaseRepo.CreatePhaseMark(s.sessionID, tsMs, p.String(), s.moveIndex); err != nil {
		return fmt.Errorf("failed to mark phase: %w", err)
	}
	return nil
}

func (s *Session) setInSolution(v bool) {
	s.mu.Lock()
	s.inSolution = v
	s.mu.Unlock()
}

// Attach records every move e dispatches while the session is open, and
// every new highest phase its cube reaches. Moves played back from a solver
// answer are flagged as solution moves. Storage errors are logged; they
// never stop the engine.
func (s *Session) Attach(e *twisty.Engine) *twisty.Tracker {
	e.OnDispatch(func(m twisty.Move) {
		if err := s.RecordMove(m); err != nil && !errors.Is(err, ErrNotRecording) {
			s.log.Warn("failed to record move", "move", m.Notation(), "error", err)
		}
	})
	e.OnSolveStart(func([]twisty.Move) { s.setInSolution(true) })
	e.OnSolveEnd(func() { s.setInSolution(false) })

	tracker := twisty.Track(e)
	tracker.SetPhaseCallback(func(p twisty.Phase) {
		if err := s.MarkPhase(p); err != nil && !errors.Is(err, ErrNotRecording) {
			s.log.Warn("failed to mark phase", "phase", p.String(), "error", err)
		}
	})
	return tracker
}
