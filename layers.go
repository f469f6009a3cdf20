package twisty

// layerSpec describes which lattice planes a layer letter turns.
//
// ref is the reference plane whose outside view defines "clockwise" for
// the letter: the face itself for face, wide and whole-cube moves, 0 for
// the middle slices. Wide moves and rotations share their face's ref, so
// every plane they turn moves in the face's direction.
type layerSpec struct {
	axis   Axis
	planes []int
	ref    int
}

var layerTable = map[Layer]layerSpec{
	LayerR: {AxisX, []int{1}, 1},
	LayerL: {AxisX, []int{-1}, -1},
	LayerU: {AxisY, []int{1}, 1},
	LayerD: {AxisY, []int{-1}, -1},
	LayerF: {AxisZ, []int{1}, 1},
	LayerB: {AxisZ, []int{-1}, -1},

	LayerRw: {AxisX, []int{1, 0}, 1},
	LayerLw: {AxisX, []int{-1, 0}, -1},
	LayerUw: {AxisY, []int{1, 0}, 1},
	LayerDw: {AxisY, []int{-1, 0}, -1},
	LayerFw: {AxisZ, []int{1, 0}, 1},
	LayerBw: {AxisZ, []int{-1, 0}, -1},

	LayerM: {AxisX, []int{0}, 0},
	LayerE: {AxisY, []int{0}, 0},
	LayerS: {AxisZ, []int{0}, 0},

	LayerX: {AxisX, []int{-1, 0, 1}, 1},
	LayerY: {AxisY, []int{-1, 0, 1}, 1},
	LayerZ: {AxisZ, []int{-1, 0, 1}, 1},
}

// sliceSign is the rotation sign of a clockwise middle-slice turn.
// M follows L and E follows D, both positive about their axis. S follows F
// and is negative about z. The asymmetry is part of the notation and is
// pinned by tests.
var sliceSign = [3]int{
	AxisX: 1,
	AxisY: 1,
	AxisZ: -1,
}

// animSign converts a notation direction on plane ref of axis into the
// sign of the right-hand rotation about the positive axis. Clockwise seen
// from outside a face is a negative rotation about that face's normal.
func animSign(axis Axis, ref int) int {
	if ref != 0 {
		return -ref
	}
	return sliceSign[axis]
}

// LayerTurn is one (axis, plane, direction) triple of a decomposed move.
// Dir is the right-hand rotation sign about the positive axis.
type LayerTurn struct {
	Axis  Axis
	Plane int
	Dir   int
}

// Triples decomposes one quarter of m in direction dir (+1 clockwise, -1
// counter-clockwise) into the planes that turn and their rotation sign.
func Triples(l Layer, dir int) ([]LayerTurn, bool) {
	spec, ok := layerTable[l]
	if !ok {
		return nil, false
	}
	animDir := dir * animSign(spec.axis, spec.ref)
	out := make([]LayerTurn, len(spec.planes))
	for i, plane := range spec.planes {
		out[i] = LayerTurn{Axis: spec.axis, Plane: plane, Dir: animDir}
	}
	return out, true
}

// Layers returns every layer letter in a stable order.
func Layers() []Layer {
	return []Layer{
		LayerU, LayerD, LayerF, LayerB, LayerR, LayerL,
		LayerUw, LayerDw, LayerFw, LayerBw, LayerRw, LayerLw,
		LayerM, LayerE, LayerS,
		LayerX, LayerY, LayerZ,
	}
}

// LegalMoves returns every accepted notation token.
func LegalMoves() []Move {
	var out []Move
	for _, l := range Layers() {
		for _, t := range []Turn{CW, CCW, Double} {
			m := Move{Layer: l, Turn: t}
			if m.Valid() {
				out = append(out, m)
			}
		}
	}
	return out
}
