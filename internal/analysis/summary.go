// Package analysis computes statistics over recorded sessions.
package analysis

import (
	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

// PauseThresholdMs is the gap between moves counted as a pause.
const PauseThresholdMs = 1500

// Summary contains the statistics for a single session.
type Summary struct {
	SessionID         string       `json:"session_id"`
	DurationMs        int64        `json:"duration_ms"`
	TotalMoves        int          `json:"total_moves"`
	SolutionMoves     int          `json:"solution_moves"`
	SimplifiedMoves   int          `json:"simplified_moves"`
	Efficiency        float64      `json:"efficiency"`
	TPS               float64      `json:"tps"`
	LongestPauseMs    int64        `json:"longest_pause_ms"`
	PauseCount        int          `json:"pause_count"`
	AvgMoveDurationMs float64      `json:"avg_move_duration_ms"`
	Phases            []PhaseSplit `json:"phases,omitempty"`
}

// PhaseSplit is the time and moves spent reaching one phase after the
// previous one.
type PhaseSplit struct {
	PhaseKey   string  `json:"phase_key"`
	EndTsMs    int64   `json:"end_ts_ms"`
	DurationMs int64   `json:"duration_ms"`
	MoveCount  int     `json:"move_count"`
	TPS        float64 `json:"tps"`
}

// Pause is a gap between two consecutive moves.
type Pause struct {
	AfterMoveIndex int   `json:"after_move_index"`
	DurationMs     int64 `json:"duration_ms"`
	TsMs           int64 `json:"ts_ms"`
}

// Summarize computes the statistics of a session. Moves played back from a
// solution are counted separately and excluded from timing figures.
func Summarize(s *storage.Session, records []storage.MoveRecord, marks []storage.PhaseMark) Summary {
	var played []storage.MoveRecord
	solution := 0
	for _, r := range records {
		if r.Solution {
			solution++
			continue
		}
		played = append(played, r)
	}

	sum := Summary{
		SessionID:     s.SessionID,
		TotalMoves:    len(played),
		SolutionMoves: solution,
	}
	if s.DurationMs != nil {
		sum.DurationMs = *s.DurationMs
	} else if len(played) > 0 {
		sum.DurationMs = played[len(played)-1].TsMs
	}

	simplified := twisty.Simplify(storage.ToMoves(played))
	sum.SimplifiedMoves = len(simplified)
	if sum.TotalMoves > 0 {
		sum.Efficiency = float64(sum.SimplifiedMoves) / float64(sum.TotalMoves)
	}

	sum.TPS = TPS(len(played), sum.DurationMs)
	sum.AvgMoveDurationMs = AvgMoveDuration(played)
	for _, p := range Pauses(played, 0) {
		if p.DurationMs > sum.LongestPauseMs {
			sum.LongestPauseMs = p.DurationMs
		}
		if p.DurationMs >= PauseThresholdMs {
			sum.PauseCount++
		}
	}

	var prevTs int64
	prevMoves := 0
	for _, m := range marks {
		split := PhaseSplit{
			PhaseKey:   m.PhaseKey,
			EndTsMs:    m.TsMs,
			DurationMs: m.TsMs - prevTs,
			MoveCount:  m.MoveCount - prevMoves,
		}
		split.TPS = TPS(split.MoveCount, split.DurationMs)
		sum.Phases = append(sum.Phases, split)
		prevTs, prevMoves = m.TsMs, m.MoveCount
	}
	return sum
}

// Pauses returns every gap between consecutive moves of at least
// thresholdMs.
func Pauses(records []storage.MoveRecord, thresholdMs int64) []Pause {
	var pauses []Pause
	for i := 1; i < len(records); i++ {
		gap := records[i].TsMs - records[i-1].TsMs
		if gap >= thresholdMs {
			pauses = append(pauses, Pause{
				AfterMoveIndex: records[i-1].MoveIndex,
				DurationMs:     gap,
				TsMs:           records[i-1].TsMs,
			})
		}
	}
	return pauses
}

// TPS is turns per second.
func TPS(moves int, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(moves) / (float64(durationMs) / 1000.0)
}

// AvgMoveDuration is the mean time between consecutive moves.
func AvgMoveDuration(records []storage.MoveRecord) float64 {
	if len(records) < 2 {
		return 0
	}
	total := records[len(records)-1].TsMs - records[0].TsMs
	return float64(total) / float64(len(records)-1)
}

// LayerCounts counts moves per layer letter.
func LayerCounts(moves []twisty.Move) map[twisty.Layer]int {
	counts := make(map[twisty.Layer]int)
	for _, m := range moves {
		counts[m.Layer]++
	}
	return counts
}
