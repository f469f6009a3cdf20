package storage

import "fmt"

// PhaseMark records the moment a session first reached a solving phase.
type PhaseMark struct {
	PhaseMarkID int64
	SessionID   string
	TsMs        int64
	PhaseKey    string
	MoveCount   int
}

// PhaseRepository provides CRUD operations for phase marks.
type PhaseRepository struct {
	db *DB
}

// NewPhaseRepository creates a new phase repository.
func NewPhaseRepository(db *DB) *PhaseRepository {
	return &PhaseRepository{db: db}
}

// CreatePhaseMark stores a phase mark and returns its ID.
func (r *PhaseRepository) CreatePhaseMark(sessionID string, tsMs int64, phaseKey string, moveCount int) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO phase_marks (session_id, ts_ms, phase_key, move_count)
		VALUES (?, ?, ?, ?)
	`, sessionID, tsMs, phaseKey, moveCount)
	if err != nil {
		return 0, fmt.Errorf("failed to create phase mark: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get phase mark ID: %w", err)
	}
	return id, nil
}

// GetPhaseMarks retrieves all phase marks for a session in time order.
func (r *PhaseRepository) GetPhaseMarks(sessionID string) ([]PhaseMark, error) {
	rows, err := r.db.Query(`
		SELECT phase_mark_id, session_id, ts_ms, phase_key, move_count
		FROM phase_marks
		WHERE session_id = ?
		ORDER BY ts_ms, phase_mark_id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get phase marks: %w", err)
	}
	defer rows.Close()

	var marks []PhaseMark
	for rows.Next() {
		var m PhaseMark
		if err := rows.Scan(&m.PhaseMarkID, &m.SessionID, &m.TsMs, &m.PhaseKey, &m.MoveCount); err != nil {
			return nil, fmt.Errorf("failed to scan phase mark: %w", err)
		}
		marks = append(marks, m)
	}
	return marks, rows.Err()
}
