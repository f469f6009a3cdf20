package twisty

import "strings"

// Layer names the slab of pieces a move turns, in standard notation.
type Layer string

const (
	LayerU Layer = "U" // Up
	LayerD Layer = "D" // Down
	LayerF Layer = "F" // Front
	LayerB Layer = "B" // Back
	LayerR Layer = "R" // Right
	LayerL Layer = "L" // Left

	// Wide turns: outer layer plus the adjacent middle slice.
	LayerUw Layer = "u"
	LayerDw Layer = "d"
	LayerFw Layer = "f"
	LayerBw Layer = "b"
	LayerRw Layer = "r"
	LayerLw Layer = "l"

	// Middle slices.
	LayerM Layer = "M" // between L and R, turns like L
	LayerE Layer = "E" // between U and D, turns like D
	LayerS Layer = "S" // between F and B, turns like F

	// Whole-cube rotations.
	LayerX Layer = "x" // turns like R
	LayerY Layer = "y" // turns like U
	LayerZ Layer = "z" // turns like F
)

// IsSlice reports whether l is one of the middle slices M, E or S.
func (l Layer) IsSlice() bool {
	return l == LayerM || l == LayerE || l == LayerS
}

// IsRotation reports whether l turns the whole cube.
func (l Layer) IsRotation() bool {
	return l == LayerX || l == LayerY || l == LayerZ
}

// IsWide reports whether l is a lowercase wide turn.
func (l Layer) IsWide() bool {
	switch l {
	case LayerUw, LayerDw, LayerFw, LayerBw, LayerRw, LayerLw:
		return true
	}
	return false
}

// Turn represents the direction and magnitude of a layer turn.
type Turn int

const (
	CW     Turn = 1  // Clockwise (90 degrees)
	CCW    Turn = -1 // Counter-clockwise (90 degrees)
	Double Turn = 2  // Half turn (180 degrees)
)

// Move represents a single move: which layer turns and by how much.
type Move struct {
	Layer Layer
	Turn  Turn
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, u', M, x2
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case CCW:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return string(m.Layer) + suffix
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the inverse of this move.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case CW:
		inv.Turn = CCW
	case CCW:
		inv.Turn = CW
		// Double is its own inverse
	}
	return inv
}

// Quarters returns the quarter-turn directions the move decomposes into.
// Doubles are two clockwise quarters.
func (m Move) Quarters() []int {
	switch m.Turn {
	case CW:
		return []int{1}
	case CCW:
		return []int{-1}
	case Double:
		return []int{1, 1}
	default:
		return nil
	}
}

// Valid reports whether m is one of the legal notation tokens.
func (m Move) Valid() bool {
	if _, ok := layerTable[m.Layer]; !ok {
		return false
	}
	switch m.Turn {
	case CW, CCW:
		return true
	case Double:
		return !m.Layer.IsSlice()
	}
	return false
}

// ParseMove parses a single notation token.
// Accepted: face turns U D F B R L, wide turns u d f b r l and whole-cube
// rotations x y z, each with no suffix, ' or 2; slices M E S with no suffix
// or '. A backtick is accepted for prime, and X Y Z are accepted for the
// lowercase rotations.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidNotation
	}

	var layer Layer
	switch c := s[0]; c {
	case 'U', 'D', 'F', 'B', 'R', 'L', 'M', 'E', 'S',
		'u', 'd', 'f', 'b', 'r', 'l', 'x', 'y', 'z':
		layer = Layer(s[:1])
	case 'X', 'Y', 'Z':
		layer = Layer(strings.ToLower(s[:1]))
	default:
		return Move{}, ErrInvalidNotation
	}

	turn := CW
	switch s[1:] {
	case "":
	case "'", "`":
		turn = CCW
	case "2", "2'", "2`":
		turn = Double
	default:
		return Move{}, ErrInvalidNotation
	}

	m := Move{Layer: layer, Turn: turn}
	if !m.Valid() {
		return Move{}, ErrInvalidNotation
	}
	return m, nil
}

// MustParseMove is like ParseMove but panics on invalid notation. It is
// meant for package-level tables and tests.
func MustParseMove(s string) Move {
	m, err := ParseMove(s)
	if err != nil {
		panic(err.Error() + ": " + s)
	}
	return m
}

// ParseMoves parses a whitespace-separated sequence of moves.
// Example: "R U R' U'"
// Invalid moves are skipped.
func ParseMoves(s string) []Move {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			continue // Skip invalid moves
		}
		moves = append(moves, move)
	}

	return moves
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}
	return strings.Join(parts, " ")
}

// InvertSequence returns the sequence that undoes moves: reversed, with
// every move inverted.
func InvertSequence(moves []Move) []Move {
	out := make([]Move, len(moves))
	for i, m := range moves {
		out[len(moves)-1-i] = m.Inverse()
	}
	return out
}

// Simplify merges adjacent moves on the same layer, dropping pairs that
// cancel. R R becomes R2, R R' disappears, R2 R becomes R'. Slice half
// turns stay spelled out as two quarters.
func Simplify(moves []Move) []Move {
	type run struct {
		layer Layer
		q     int
	}
	stack := make([]run, 0, len(moves))
	for _, m := range moves {
		q := quarterCount(m.Turn)
		if n := len(stack); n > 0 && stack[n-1].layer == m.Layer {
			stack[n-1].q = (stack[n-1].q + q) % 4
			if stack[n-1].q == 0 {
				stack = stack[:n-1]
			}
			continue
		}
		if q != 0 {
			stack = append(stack, run{m.Layer, q})
		}
	}

	out := make([]Move, 0, len(stack))
	for _, r := range stack {
		if t, ok := turnForQuarters(r.q, r.layer); ok {
			out = append(out, Move{Layer: r.layer, Turn: t})
			continue
		}
		out = append(out, Move{Layer: r.layer, Turn: CW}, Move{Layer: r.layer, Turn: CW})
	}
	return out
}

func quarterCount(t Turn) int {
	switch t {
	case CW:
		return 1
	case Double:
		return 2
	case CCW:
		return 3
	}
	return 0
}

func turnForQuarters(q int, l Layer) (Turn, bool) {
	switch q {
	case 1:
		return CW, true
	case 2:
		return Double, !l.IsSlice()
	case 3:
		return CCW, true
	}
	return 0, false
}
