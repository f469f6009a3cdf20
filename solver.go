package twisty

import "strings"

// Solver produces a move sequence that solves the given state.
//
// state is the 54-character serialization (see Cube.Serialize). The
// returned solution is a whitespace-separated list of move tokens and may
// be empty when the cube is already solved.
type Solver interface {
	Solve(state string) (string, error)
}

// SolverFunc adapts a function to the Solver interface.
type SolverFunc func(state string) (string, error)

// Solve calls f(state).
func (f SolverFunc) Solve(state string) (string, error) {
	return f(state)
}

// HistorySolver returns a solver that undoes everything the engine has
// dispatched since the last solution: the move history reversed and
// inverted. It ignores the state string. Move history must be enabled.
func HistorySolver(e *Engine) Solver {
	return SolverFunc(func(string) (string, error) {
		return FormatMoves(Simplify(InvertSequence(e.History()))), nil
	})
}

// solutionTokens splits a solver answer into raw tokens. Invalid tokens are
// kept and dropped later at dispatch, like any queued input.
func solutionTokens(solution string) []string {
	return strings.Fields(solution)
}
