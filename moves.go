package twisty

import "math/rand/v2"

// Predefined moves for convenience.
// Use these instead of constructing Move structs manually.
//
// Example:
//
//	cube.Apply(twisty.R, twisty.U, twisty.RPrime, twisty.UPrime)
var (
	// Right face moves
	R      = Move{Layer: LayerR, Turn: CW}     // Right clockwise
	RPrime = Move{Layer: LayerR, Turn: CCW}    // Right counter-clockwise
	R2     = Move{Layer: LayerR, Turn: Double} // Right 180

	// Left face moves
	L      = Move{Layer: LayerL, Turn: CW}
	LPrime = Move{Layer: LayerL, Turn: CCW}
	L2     = Move{Layer: LayerL, Turn: Double}

	// Up face moves
	U      = Move{Layer: LayerU, Turn: CW}
	UPrime = Move{Layer: LayerU, Turn: CCW}
	U2     = Move{Layer: LayerU, Turn: Double}

	// Down face moves
	D      = Move{Layer: LayerD, Turn: CW}
	DPrime = Move{Layer: LayerD, Turn: CCW}
	D2     = Move{Layer: LayerD, Turn: Double}

	// Front face moves
	F      = Move{Layer: LayerF, Turn: CW}
	FPrime = Move{Layer: LayerF, Turn: CCW}
	F2     = Move{Layer: LayerF, Turn: Double}

	// Back face moves
	B      = Move{Layer: LayerB, Turn: CW}
	BPrime = Move{Layer: LayerB, Turn: CCW}
	B2     = Move{Layer: LayerB, Turn: Double}

	// Slices
	M      = Move{Layer: LayerM, Turn: CW}
	MPrime = Move{Layer: LayerM, Turn: CCW}
	E      = Move{Layer: LayerE, Turn: CW}
	EPrime = Move{Layer: LayerE, Turn: CCW}
	S      = Move{Layer: LayerS, Turn: CW}
	SPrime = Move{Layer: LayerS, Turn: CCW}

	// Whole-cube rotations
	X      = Move{Layer: LayerX, Turn: CW}
	XPrime = Move{Layer: LayerX, Turn: CCW}
	Y      = Move{Layer: LayerY, Turn: CW}
	YPrime = Move{Layer: LayerY, Turn: CCW}
	Z      = Move{Layer: LayerZ, Turn: CW}
	ZPrime = Move{Layer: LayerZ, Turn: CCW}
)

// Sexy move: R U R' U' - one of the most common algorithms
var SexyMove = []Move{R, U, RPrime, UPrime}

// Inverse sexy move: U R U' R'
var InverseSexyMove = []Move{U, R, UPrime, RPrime}

// T-perm algorithm
var TPerm = []Move{R, U, RPrime, UPrime, RPrime, F, R2, UPrime, RPrime, UPrime, R, U, RPrime, FPrime}

// H-perm using slices: M2 U M2 U2 M2 U M2, with each M2 spelled out.
var HPerm = []Move{M, M, U, M, M, U2, M, M, U, M, M}

var scrambleLayers = []Layer{LayerU, LayerD, LayerF, LayerB, LayerR, LayerL}

// Scramble returns n random face turns. Consecutive moves never turn the
// same face.
func Scramble(rng *rand.Rand, n int) []Move {
	turns := []Turn{CW, CCW, Double}
	out := make([]Move, 0, n)
	var prev Layer
	for len(out) < n {
		l := scrambleLayers[rng.IntN(len(scrambleLayers))]
		if l == prev {
			continue
		}
		out = append(out, Move{Layer: l, Turn: turns[rng.IntN(len(turns))]})
		prev = l
	}
	return out
}
