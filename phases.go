package twisty

// Phase is a stage of the layer-by-layer method, solved with white on top.
// Phases are ordered, so they compare with < and >.
type Phase int

const (
	PhaseScrambled      Phase = iota
	PhaseWhiteCross           // white edges on U, matching their side centers
	PhaseFirstLayer           // all of U plus the top ring of each side face
	PhaseSecondLayer          // middle ring of each side face
	PhaseYellowCross          // yellow edges facing D
	PhaseYellowCorners        // bottom corners in place, maybe twisted
	PhaseYellowOriented       // bottom corners twisted correctly
	PhaseSolved
)

// phaseLabels holds the storage key and the display name of each phase.
// Keys are persisted as phase marks and must not change.
var phaseLabels = [...][2]string{
	PhaseScrambled:      {"scrambled", "Scrambled"},
	PhaseWhiteCross:     {"white_cross", "White cross"},
	PhaseFirstLayer:     {"first_layer", "First layer"},
	PhaseSecondLayer:    {"second_layer", "Middle layer"},
	PhaseYellowCross:    {"yellow_cross", "Yellow cross"},
	PhaseYellowCorners:  {"yellow_corners", "Last-layer corners placed"},
	PhaseYellowOriented: {"yellow_oriented", "Last-layer corners twisted"},
	PhaseSolved:         {"solved", "Solved"},
}

// String returns the phase's storage key.
func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseLabels) {
		return "unknown"
	}
	return phaseLabels[p][0]
}

func (p Phase) DisplayName() string {
	if p < 0 || int(p) >= len(phaseLabels) {
		return "Unknown"
	}
	return phaseLabels[p][1]
}

// ParsePhase maps a storage key back to its phase.
func ParsePhase(key string) (Phase, bool) {
	for p, l := range phaseLabels {
		if l[0] == key {
			return Phase(p), true
		}
	}
	return PhaseScrambled, false
}

// Progress records which phases are complete.
type Progress struct {
	WhiteCross     bool
	FirstLayer     bool
	SecondLayer    bool
	YellowCross    bool
	YellowCorners  bool
	YellowOriented bool
	Solved         bool
}

// Phase checks run on facelets of a cube held white up, red front; use
// Cube.DetectPhase to canonicalize first. Adjacent stickers are compared
// against their face's center, so the checks only assume white on U and
// yellow on D.

var sideFaces = [4]Face{FaceF, FaceR, FaceB, FaceL}

// upEdgeNeighbor maps a U edge index to the side face it borders.
var upEdgeNeighbor = map[int]Face{1: FaceB, 3: FaceL, 5: FaceR, 7: FaceF}

func (f *Facelets) center(face Face) Color {
	return f[face][4]
}

// WhiteCross checks the four U edges are white and their side stickers
// match the side centers.
func (f *Facelets) WhiteCross() bool {
	for pos, side := range upEdgeNeighbor {
		if f[FaceU][pos] != White {
			return false
		}
		if f[side][1] != f.center(side) {
			return false
		}
	}
	return true
}

// FirstLayer checks the cross plus all U corners, with the top row of
// every side face matching its center.
func (f *Facelets) FirstLayer() bool {
	if !f.WhiteCross() {
		return false
	}
	for i := 0; i < 9; i++ {
		if f[FaceU][i] != White {
			return false
		}
	}
	for _, side := range sideFaces {
		c := f.center(side)
		if f[side][0] != c || f[side][2] != c {
			return false
		}
	}
	return true
}

// SecondLayer checks the middle-row edges of every side face.
func (f *Facelets) SecondLayer() bool {
	if !f.FirstLayer() {
		return false
	}
	for _, side := range sideFaces {
		c := f.center(side)
		if f[side][3] != c || f[side][5] != c {
			return false
		}
	}
	return true
}

// YellowCross checks the four D edges show yellow. Their side stickers may
// still be permuted.
func (f *Facelets) YellowCross() bool {
	if !f.SecondLayer() {
		return false
	}
	for _, pos := range []int{1, 3, 5, 7} {
		if f[FaceD][pos] != Yellow {
			return false
		}
	}
	return true
}

// bottomCorners lists the D corners as facelet slots, F-R, R-B, B-L, L-F.
var bottomCorners = [4][3]struct {
	face Face
	idx  int
}{
	{{FaceF, 8}, {FaceR, 6}, {FaceD, 2}},
	{{FaceR, 8}, {FaceB, 6}, {FaceD, 8}},
	{{FaceB, 8}, {FaceL, 6}, {FaceD, 6}},
	{{FaceL, 8}, {FaceF, 6}, {FaceD, 0}},
}

// YellowCorners checks each bottom corner holds the right three colors,
// ignoring twist.
func (f *Facelets) YellowCorners() bool {
	if !f.YellowCross() {
		return false
	}
	for _, corner := range bottomCorners {
		actual := make([]Color, 3)
		expected := make([]Color, 3)
		for i, slot := range corner {
			actual[i] = f[slot.face][slot.idx]
			expected[i] = f.center(slot.face)
		}
		if !sameColors(actual, expected) {
			return false
		}
	}
	return true
}

// YellowOriented checks D is all yellow and the bottom corners match
// their side centers.
func (f *Facelets) YellowOriented() bool {
	if !f.YellowCorners() {
		return false
	}
	for i := 0; i < 9; i++ {
		if f[FaceD][i] != Yellow {
			return false
		}
	}
	for _, side := range sideFaces {
		c := f.center(side)
		if f[side][6] != c || f[side][8] != c {
			return false
		}
	}
	return true
}

// Solved reports whether every face is a single color.
func (f *Facelets) Solved() bool {
	for face := range f {
		for i := 1; i < 9; i++ {
			if f[face][i] != f[face][0] {
				return false
			}
		}
	}
	return true
}

// Phase returns the furthest phase reached.
func (f *Facelets) Phase() Phase {
	switch {
	case f.Solved():
		return PhaseSolved
	case f.YellowOriented():
		return PhaseYellowOriented // edges may still need a last-layer turn
	case f.YellowCorners():
		return PhaseYellowCorners
	case f.YellowCross():
		return PhaseYellowCross
	case f.SecondLayer():
		return PhaseSecondLayer
	case f.FirstLayer():
		return PhaseFirstLayer
	case f.WhiteCross():
		return PhaseWhiteCross
	}
	return PhaseScrambled
}

// Progress reports every phase check at once.
func (f *Facelets) Progress() Progress {
	return Progress{
		WhiteCross:     f.WhiteCross(),
		FirstLayer:     f.FirstLayer(),
		SecondLayer:    f.SecondLayer(),
		YellowCross:    f.YellowCross(),
		YellowCorners:  f.YellowCorners(),
		YellowOriented: f.YellowOriented(),
		Solved:         f.Solved(),
	}
}

// DetectPhase canonicalizes the cube and returns its phase.
func (c *Cube) DetectPhase() Phase {
	f := c.Canonical().Facelets()
	return f.Phase()
}

// Progress canonicalizes the cube and reports every phase check.
func (c *Cube) Progress() Progress {
	f := c.Canonical().Facelets()
	return f.Progress()
}

// sameColors checks if two color slices contain the same colors (in any order).
func sameColors(a, b []Color) bool {
	if len(a) != len(b) {
		return false
	}

	count := make(map[Color]int)
	for _, c := range a {
		count[c]++
	}
	for _, c := range b {
		count[c]--
	}
	for _, v := range count {
		if v != 0 {
			return false
		}
	}
	return true
}
