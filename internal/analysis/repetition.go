package analysis

import (
	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

// Cancellation is a move immediately undone, such as R followed by R'.
type Cancellation struct {
	Index int    `json:"index"` // index of the first move
	Moves string `json:"moves"`
	TsMs  int64  `json:"ts_ms"`
}

// Merge is a pair of same-layer moves that one move would do, such as
// R R for R2.
type Merge struct {
	Index  int    `json:"index"`
	Moves  string `json:"moves"`
	Merged string `json:"merged"`
	TsMs   int64  `json:"ts_ms"`
}

// BackAndForth is a pair of moves repeated at least three times in a
// row, such as R U R U R U.
type BackAndForth struct {
	StartIndex int    `json:"start_index"`
	EndIndex   int    `json:"end_index"`
	Pattern    string `json:"pattern"`
	Count      int    `json:"count"`
	TsMs       int64  `json:"ts_ms"`
}

// Repetitions collects wasted motion in a session.
type Repetitions struct {
	Cancellations []Cancellation `json:"cancellations"`
	Merges        []Merge        `json:"merges"`
	BackAndForth  []BackAndForth `json:"back_and_forth"`
	WastedMoves   int            `json:"wasted_moves"`
}

// AnalyzeRepetitions scans played moves for cancellations, merges and
// back-and-forth patterns. Solution moves are skipped.
func AnalyzeRepetitions(records []storage.MoveRecord) Repetitions {
	var played []storage.MoveRecord
	for _, r := range records {
		if !r.Solution {
			played = append(played, r)
		}
	}
	moves := storage.ToMoves(played)

	rep := Repetitions{
		Cancellations: []Cancellation{},
		Merges:        []Merge{},
	}
	for i := 0; i+1 < len(moves); i++ {
		a, b := moves[i], moves[i+1]
		if a.Layer != b.Layer {
			continue
		}
		pair := twisty.FormatMoves([]twisty.Move{a, b})
		switch merged := twisty.Simplify([]twisty.Move{a, b}); len(merged) {
		case 0:
			rep.Cancellations = append(rep.Cancellations, Cancellation{Index: i, Moves: pair, TsMs: played[i].TsMs})
			rep.WastedMoves += 2
		case 1:
			rep.Merges = append(rep.Merges, Merge{Index: i, Moves: pair, Merged: merged[0].Notation(), TsMs: played[i].TsMs})
			rep.WastedMoves++
		}
	}
	rep.BackAndForth = findBackAndForth(moves, played)
	return rep
}

func findBackAndForth(moves []twisty.Move, played []storage.MoveRecord) []BackAndForth {
	patterns := []BackAndForth{}
	i := 0
	for i+3 < len(moves) {
		a, b := moves[i], moves[i+1]
		if a == b {
			i++
			continue
		}
		count := 1
		j := i + 2
		for j+1 < len(moves) && moves[j] == a && moves[j+1] == b {
			count++
			j += 2
		}
		if count < 3 {
			i++
			continue
		}
		patterns = append(patterns, BackAndForth{
			StartIndex: i,
			EndIndex:   i + count*2 - 1,
			Pattern:    twisty.FormatMoves([]twisty.Move{a, b}),
			Count:      count,
			TsMs:       played[i].TsMs,
		})
		i = j
	}
	return patterns
}
