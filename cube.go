package twisty

import (
	"fmt"
	"strings"
)

// Cube is a 3x3x3 puzzle made of 26 pieces. Pieces and stickers are
// created once by NewCube and only their positions and orientations
// change afterwards.
//
// Pieces are indexed in x-major order over {-1,0,1}^3 with the origin
// skipped; sticker IDs follow the same order with each piece's stickers
// listed x, y, z.
type Cube struct {
	pieces   []*Piece
	stickers []*Sticker
}

// NewCube creates a solved cube: White up, Red front, Blue right.
func NewCube() *Cube {
	c := &Cube{
		pieces:   make([]*Piece, 0, 26),
		stickers: make([]*Sticker, 0, 54),
	}
	var next StickerID
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				p := Point{x, y, z}
				if p.IsZero() {
					continue
				}
				pc := newPiece(len(c.pieces), p, &next)
				c.pieces = append(c.pieces, pc)
				c.stickers = append(c.stickers, pc.stickers...)
			}
		}
	}
	return c
}

// Clone creates a deep copy of the cube, including any move in flight.
func (c *Cube) Clone() *Cube {
	clone := &Cube{
		pieces:   make([]*Piece, len(c.pieces)),
		stickers: make([]*Sticker, len(c.stickers)),
	}
	for i, p := range c.pieces {
		cp := *p
		cp.stickers = make([]*Sticker, len(p.stickers))
		for j, s := range p.stickers {
			cs := *s
			cs.piece = &cp
			cp.stickers[j] = &cs
			clone.stickers[cs.id] = &cs
		}
		clone.pieces[i] = &cp
	}
	return clone
}

// Reset returns every piece to its solved position in place. Any move in
// flight is abandoned; Engine only calls this while idle.
func (c *Cube) Reset() {
	for _, p := range c.pieces {
		p.reset()
	}
}

// Pieces returns all 26 pieces.
func (c *Cube) Pieces() []*Piece { return c.pieces }

// Stickers returns all 54 stickers indexed by StickerID.
func (c *Cube) Stickers() []*Sticker { return c.stickers }

// Sticker returns the sticker with the given ID, or nil.
func (c *Cube) Sticker(id StickerID) *Sticker {
	if id < 0 || int(id) >= len(c.stickers) {
		return nil
	}
	return c.stickers[id]
}

// PieceAt returns the piece currently locked at p, or nil.
func (c *Cube) PieceAt(p Point) *Piece {
	for _, pc := range c.pieces {
		if pc.fixed == p {
			return pc
		}
	}
	return nil
}

// StickerAt returns the sticker at position p facing f, or nil.
func (c *Cube) StickerAt(p Point, f Direction) *Sticker {
	pc := c.PieceAt(p)
	if pc == nil {
		return nil
	}
	want := f.Point()
	for _, s := range pc.stickers {
		if s.facing == want {
			return s
		}
	}
	return nil
}

// Turning reports whether any piece is mid-animation.
func (c *Cube) Turning() bool {
	for _, p := range c.pieces {
		if p.animating {
			return true
		}
	}
	return false
}

// selectPlane marks every piece on the plane for animation and returns how
// many were selected.
func (c *Cube) selectPlane(t LayerTurn) int {
	n := 0
	for _, p := range c.pieces {
		if p.fixed[t.Axis] == t.Plane {
			p.begin(t.Axis, t.Dir)
			n++
		}
	}
	return n
}

// advance rotates every animating piece by up to delta radians, locking
// pieces that reach a quarter turn. It reports whether no piece is left
// animating.
func (c *Cube) advance(delta float64) bool {
	done := true
	for _, p := range c.pieces {
		p.settled = false
		if !p.animating {
			continue
		}
		step := delta
		if remaining := QuarterTurn - p.animAngle; step > remaining {
			step = remaining
		}
		if step > 0 {
			p.step(step)
		}
		if p.animAngle >= QuarterTurn-angleEpsilon {
			p.lock()
			continue
		}
		done = false
	}
	return done
}

const angleEpsilon = 1e-9

// Apply turns the cube instantly, without animation. It fails with
// ErrAnimating while a move is in flight and with ErrInvalidNotation on an
// illegal move; moves before the failing one stay applied.
func (c *Cube) Apply(moves ...Move) error {
	if c.Turning() {
		return ErrAnimating
	}
	for _, m := range moves {
		if !m.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidNotation, m.Notation())
		}
		for _, q := range m.Quarters() {
			triples, _ := Triples(m.Layer, q)
			for _, t := range triples {
				for _, p := range c.pieces {
					if p.fixed[t.Axis] == t.Plane {
						p.turn(t.Axis, t.Dir)
					}
				}
			}
		}
	}
	return nil
}

// ApplyNotation parses a whitespace-separated sequence and applies it.
// Unlike ParseMoves, an invalid token is an error.
func (c *Cube) ApplyNotation(s string) error {
	for _, tok := range strings.Fields(s) {
		m, err := ParseMove(tok)
		if err != nil {
			return fmt.Errorf("%w: %q", err, tok)
		}
		if err := c.Apply(m); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the lattice invariants of the locked state: positions
// form a bijection onto the 26 lattice points and every face carries
// exactly nine distinct stickers.
func (c *Cube) Validate() error {
	seen := make(map[Point]bool, len(c.pieces))
	for _, p := range c.pieces {
		for _, v := range p.fixed {
			if v < -1 || v > 1 {
				return fmt.Errorf("%w: piece %d at %v", ErrInvalidState, p.id, p.fixed)
			}
		}
		if p.fixed.IsZero() || seen[p.fixed] {
			return fmt.Errorf("%w: piece %d at %v", ErrInvalidState, p.id, p.fixed)
		}
		seen[p.fixed] = true
	}

	type slot struct {
		facing Point
		pos    Point
	}
	slots := make(map[slot]bool, len(c.stickers))
	perFace := make(map[Point]int, 6)
	for _, s := range c.stickers {
		d, ok := s.facing.Direction()
		if !ok || s.Position()[d.Axis] != d.Sign {
			return fmt.Errorf("%w: sticker %d facing %v at %v", ErrInvalidState, s.id, s.facing, s.Position())
		}
		k := slot{s.facing, s.Position()}
		if slots[k] {
			return fmt.Errorf("%w: two stickers at %v facing %v", ErrInvalidState, k.pos, k.facing)
		}
		slots[k] = true
		perFace[s.facing]++
	}
	for _, d := range Directions {
		if n := perFace[d.Point()]; n != 9 {
			return fmt.Errorf("%w: %d stickers face %v", ErrInvalidState, n, d)
		}
	}
	return nil
}

// IsSolved returns true if every face shows a single color. Whole-cube
// rotations do not affect the result.
func (c *Cube) IsSolved() bool {
	f := c.Facelets()
	for face := range f {
		for i := 1; i < 9; i++ {
			if f[face][i] != f[face][0] {
				return false
			}
		}
	}
	return true
}

// Canonical returns a re-oriented copy with the white center up and the
// red center in front. Only whole-cube rotations are applied, so the
// puzzle state is unchanged.
func (c *Cube) Canonical() *Cube {
	out := c.Clone()
	for _, m := range canonicalRotations(out) {
		_ = out.Apply(m)
	}
	return out
}

// canonicalRotations returns the rotations that bring the white center to
// U and then the red center to F.
func canonicalRotations(c *Cube) []Move {
	var moves []Move
	switch c.centerFace(White) {
	case FaceD:
		moves = append(moves, Move{LayerX, Double})
	case FaceF:
		moves = append(moves, Move{LayerX, CW})
	case FaceB:
		moves = append(moves, Move{LayerX, CCW})
	case FaceR:
		moves = append(moves, Move{LayerZ, CCW})
	case FaceL:
		moves = append(moves, Move{LayerZ, CW})
	}
	probe := c.Clone()
	_ = probe.Apply(moves...)
	switch probe.centerFace(Red) {
	case FaceR:
		moves = append(moves, Move{LayerY, CW})
	case FaceL:
		moves = append(moves, Move{LayerY, CCW})
	case FaceB:
		moves = append(moves, Move{LayerY, Double})
	}
	return moves
}

// centerFace returns the face currently holding the center of color col.
func (c *Cube) centerFace(col Color) Face {
	for _, p := range c.pieces {
		if len(p.stickers) == 1 && p.stickers[0].color == col {
			return p.stickers[0].Face()
		}
	}
	return FaceU
}

// String returns the unfolded net of the locked state:
//
//	      U
//	    L F R B
//	      D
func (c *Cube) String() string {
	f := c.Facelets()
	var sb strings.Builder

	// U face (indented)
	for row := 0; row < 3; row++ {
		sb.WriteString("      ")
		for col := 0; col < 3; col++ {
			sb.WriteString(f[FaceU][row*3+col].String() + " ")
		}
		sb.WriteString("\n")
	}

	// L, F, R, B faces (side by side)
	for row := 0; row < 3; row++ {
		for _, face := range []Face{FaceL, FaceF, FaceR, FaceB} {
			for col := 0; col < 3; col++ {
				sb.WriteString(f[face][row*3+col].String() + " ")
			}
		}
		sb.WriteString("\n")
	}

	// D face (indented)
	for row := 0; row < 3; row++ {
		sb.WriteString("      ")
		for col := 0; col < 3; col++ {
			sb.WriteString(f[FaceD][row*3+col].String() + " ")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
