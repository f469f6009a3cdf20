package twisty

import (
	"fmt"
	"strings"
)

// Facelets is the flat color view of a cube: Facelets[face][index] is the
// color of one sticker. Each face is indexed row-major as seen from
// outside the cube:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// U is seen with B at the top, D with F at the top, and the four side
// faces with U at the top.
type Facelets [6][9]Color

// SolvedState is the serialization of a solved cube.
const SolvedState = "WWWWWWWWW" + "YYYYYYYYY" + "RRRRRRRRR" + "OOOOOOOOO" + "BBBBBBBBB" + "GGGGGGGGG"

// faceletIndex maps a lattice position on face f to its row-major index.
func faceletIndex(f Face, p Point) int {
	x, y, z := p[0], p[1], p[2]
	switch f {
	case FaceU:
		return (z+1)*3 + (x + 1)
	case FaceD:
		return (1-z)*3 + (x + 1)
	case FaceF:
		return (1-y)*3 + (x + 1)
	case FaceB:
		return (1-y)*3 + (1 - x)
	case FaceR:
		return (1-y)*3 + (1 - z)
	case FaceL:
		return (1-y)*3 + (z + 1)
	}
	return -1
}

// Facelets computes the color layout from the locked state. Live
// interpolation values are never consulted.
func (c *Cube) Facelets() Facelets {
	var f Facelets
	for _, s := range c.stickers {
		face := s.Face()
		f[face][faceletIndex(face, s.Position())] = s.color
	}
	return f
}

// Serialize returns the 54-character state string: faces in the order
// U D F B R L, each row-major, one color letter per sticker. It reads only
// locked state; while a move is in flight the result reflects the
// position before that move. Use Engine.Serialize to have the engine
// refuse mid-move.
func (c *Cube) Serialize() string {
	return c.Facelets().String()
}

// String returns the 54-character serialization.
func (f Facelets) String() string {
	var sb strings.Builder
	sb.Grow(54)
	for _, face := range Faces {
		for i := 0; i < 9; i++ {
			sb.WriteString(f[face][i].String())
		}
	}
	return sb.String()
}

// ParseFacelets parses a 54-character state string in U D F B R L order.
// It checks the alphabet and that each color appears nine times; it does
// not check that the state is reachable.
func ParseFacelets(s string) (Facelets, error) {
	var f Facelets
	if len(s) != 54 {
		return f, fmt.Errorf("%w: length %d", ErrInvalidFacelets, len(s))
	}
	var counts [6]int
	for i := 0; i < 54; i++ {
		col, ok := ParseColor(s[i])
		if !ok {
			return f, fmt.Errorf("%w: bad color %q at %d", ErrInvalidFacelets, s[i], i)
		}
		f[Faces[i/9]][i%9] = col
		counts[col]++
	}
	for col, n := range counts {
		if n != 9 {
			return f, fmt.Errorf("%w: %d %s stickers", ErrInvalidFacelets, n, Color(col).Name())
		}
	}
	return f, nil
}

// kociembaOrder is the face order used by two-phase solvers.
var kociembaOrder = [6]Face{FaceU, FaceR, FaceF, FaceD, FaceL, FaceB}

// Kociemba converts f to the URFDLB face-letter format used by two-phase
// solvers. Each color is named after the face whose center shows it, so
// the result does not depend on how the cube is held.
func (f Facelets) Kociemba() string {
	var letter [6]string
	for _, face := range Faces {
		letter[f[face][4]] = face.String()
	}
	var sb strings.Builder
	sb.Grow(54)
	for _, face := range kociembaOrder {
		for i := 0; i < 9; i++ {
			sb.WriteString(letter[f[face][i]])
		}
	}
	return sb.String()
}
