package twisty

import (
	"math/rand/v2"
	"testing"
)

// snapshot captures the locked state of every sticker.
type snapshot map[StickerID][2]Point

func snap(c *Cube) snapshot {
	s := make(snapshot, 54)
	for _, st := range c.Stickers() {
		s[st.ID()] = [2]Point{st.Position(), st.Facing()}
	}
	return s
}

func sameSnapshot(a, b snapshot) bool {
	if len(a) != len(b) {
		return false
	}
	for id, v := range a {
		if b[id] != v {
			return false
		}
	}
	return true
}

func mustApply(t *testing.T, c *Cube, notation string) {
	t.Helper()
	if err := c.ApplyNotation(notation); err != nil {
		t.Fatalf("apply %q: %v", notation, err)
	}
}

func TestNewCubeIsSolved(t *testing.T) {
	c := NewCube()
	if !c.IsSolved() {
		t.Error("New cube should be solved")
	}
	if got := c.Serialize(); got != SolvedState {
		t.Errorf("Serialize() = %s, want %s", got, SolvedState)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestNewCubePieceShapes(t *testing.T) {
	c := NewCube()
	if len(c.Pieces()) != 26 {
		t.Fatalf("got %d pieces, want 26", len(c.Pieces()))
	}
	if len(c.Stickers()) != 54 {
		t.Fatalf("got %d stickers, want 54", len(c.Stickers()))
	}

	counts := map[int]int{}
	for _, p := range c.Pieces() {
		counts[len(p.Stickers())]++
		for _, s := range p.Stickers() {
			if s.Piece() != p {
				t.Errorf("sticker %d not owned by piece %d", s.ID(), p.ID())
			}
		}
	}
	if counts[1] != 6 || counts[2] != 12 || counts[3] != 8 {
		t.Errorf("centers/edges/corners = %d/%d/%d, want 6/12/8", counts[1], counts[2], counts[3])
	}

	for i, s := range c.Stickers() {
		if s.ID() != StickerID(i) {
			t.Errorf("sticker at index %d has ID %d", i, s.ID())
		}
	}
}

func TestStickerColorsByFace(t *testing.T) {
	c := NewCube()
	want := map[Face]Color{
		FaceL: Green, FaceR: Blue,
		FaceD: Yellow, FaceU: White,
		FaceB: Orange, FaceF: Red,
	}
	for _, s := range c.Stickers() {
		if s.Color() != want[s.Face()] {
			t.Errorf("sticker %d on %v is %v, want %v", s.ID(), s.Face(), s.Color(), want[s.Face()])
		}
	}
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	c := NewCube()
	mustApply(t, c, "R")
	if c.IsSolved() {
		t.Error("Cube should not be solved after R move")
	}
}

func TestPinnedSingleMoves(t *testing.T) {
	tests := []struct {
		move string
		want string
	}{
		{"U", "WWWWWWWWWYYYYYYYYYBBBRRRRRRGGGOOOOOOOOOBBBBBBRRRGGGGGG"},
		{"R", "WWRWWRWWRYYOYYOYYORRYRRYRRYWOOWOOWOOBBBBBBBBBGGGGGGGGG"},
		{"F", "WWWWWWGGGBBBYYYYYYRRRRRRRRROOOOOOOOOWBBWBBWBBGGYGGYGGY"},
		{"M", "WOWWOWWOWYRYYRYYRYRWRRWRRWROYOOYOOYOBBBBBBBBBGGGGGGGGG"},
		// S turns like F: the middle row of U takes the left face's colors.
		{"S", "WWWGGGWWWYYYBBBYYYRRRRRRRRROOOOOOOOOBWBBWBBWBGYGGYGGYG"},
	}
	for _, tt := range tests {
		c := NewCube()
		mustApply(t, c, tt.move)
		if got := c.Serialize(); got != tt.want {
			t.Errorf("%s: got  %s\nwant %s", tt.move, got, tt.want)
			t.Log(c.String())
		}
	}
}

func TestQuarterTurnOrderFour(t *testing.T) {
	for _, m := range LegalMoves() {
		if m.Turn == Double {
			continue
		}
		c := NewCube()
		before := snap(c)
		for i := 0; i < 4; i++ {
			if err := c.Apply(m); err != nil {
				t.Fatalf("%v: %v", m, err)
			}
		}
		if !sameSnapshot(before, snap(c)) {
			t.Errorf("%v x 4 should be the identity", m)
			t.Log(c.String())
		}
	}
}

func TestMoveThenInverseIsIdentity(t *testing.T) {
	for _, m := range LegalMoves() {
		c := NewCube()
		mustApply(t, c, "R U F'")
		before := snap(c)
		if err := c.Apply(m, m.Inverse()); err != nil {
			t.Fatalf("%v: %v", m, err)
		}
		if !sameSnapshot(before, snap(c)) {
			t.Errorf("%v %v should be the identity", m, m.Inverse())
		}
	}
}

func TestDoubleIsTwoQuarters(t *testing.T) {
	for _, l := range Layers() {
		if l.IsSlice() {
			continue
		}
		a, b := NewCube(), NewCube()
		_ = a.Apply(Move{Layer: l, Turn: Double})
		_ = b.Apply(Move{Layer: l, Turn: CW}, Move{Layer: l, Turn: CW})
		if !sameSnapshot(snap(a), snap(b)) {
			t.Errorf("%s2 differs from %s %s", l, l, l)
		}
	}
}

func TestPermutationInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	legal := LegalMoves()
	c := NewCube()
	for i := 0; i < 500; i++ {
		m := legal[rng.IntN(len(legal))]
		if err := c.Apply(m); err != nil {
			t.Fatalf("apply %v: %v", m, err)
		}
		if err := c.Validate(); err != nil {
			t.Fatalf("after %d moves (%v): %v", i+1, m, err)
		}
	}
}

func TestCommutation(t *testing.T) {
	commute := func(a, b string) bool {
		c1, c2 := NewCube(), NewCube()
		mustApply(t, c1, a+" "+b)
		mustApply(t, c2, b+" "+a)
		return sameSnapshot(snap(c1), snap(c2))
	}

	// Disjoint, parallel layers commute.
	for _, pair := range [][2]string{{"R", "L"}, {"U", "D"}, {"F", "B"}, {"R", "M"}, {"U'", "E"}} {
		if !commute(pair[0], pair[1]) {
			t.Errorf("%s and %s should commute", pair[0], pair[1])
		}
	}
	// Layers on crossing axes share pieces and do not.
	for _, pair := range [][2]string{{"R", "U"}, {"M", "E"}, {"F", "r"}, {"S", "M"}} {
		if commute(pair[0], pair[1]) {
			t.Errorf("%s and %s should not commute", pair[0], pair[1])
		}
	}
}

func TestSexyMove_6Times_ReturnsToSolved(t *testing.T) {
	// (R U R' U') x 6 = identity
	c := NewCube()
	for i := 0; i < 6; i++ {
		if err := c.Apply(SexyMove...); err != nil {
			t.Fatal(err)
		}
	}
	if got := c.Serialize(); got != SolvedState {
		t.Error("Sexy move x 6 should return to solved")
		t.Log(c.String())
	}
}

func TestTPermTwiceIsIdentity(t *testing.T) {
	c := NewCube()
	_ = c.Apply(TPerm...)
	if c.IsSolved() {
		t.Fatal("T-perm should change the cube")
	}
	_ = c.Apply(TPerm...)
	if !c.IsSolved() {
		t.Error("T-perm twice should return to solved")
		t.Log(c.String())
	}
}

func TestWholeCubeRotationKeepsSolved(t *testing.T) {
	c := NewCube()
	mustApply(t, c, "x y2 z'")
	if !c.IsSolved() {
		t.Error("rotations should not unsolve the cube")
	}
	if c.Serialize() == SolvedState {
		t.Error("rotations should change which colors face which way")
	}
	if got := c.Canonical().Serialize(); got != SolvedState {
		t.Errorf("Canonical() = %s, want solved orientation", got)
	}
}

func TestCanonicalKeepsState(t *testing.T) {
	c := NewCube()
	mustApply(t, c, "R U R' F2 D")
	want := c.Serialize()

	turned := NewCube()
	mustApply(t, turned, "R U R' F2 D z x'")
	if got := turned.Canonical().Serialize(); got != want {
		t.Errorf("Canonical() = %s, want %s", got, want)
	}
}

func TestWideMoveEqualsFacePlusSlice(t *testing.T) {
	pairs := map[string]string{
		"r": "R M'",
		"l": "L M",
		"u": "U E'",
		"d": "D E",
		"f": "F S",
		"b": "B S'",
		"x": "R M' L'",
		"y": "U E' D'",
		"z": "F S B'",
	}
	for wide, parts := range pairs {
		a, b := NewCube(), NewCube()
		mustApply(t, a, wide)
		mustApply(t, b, parts)
		if !sameSnapshot(snap(a), snap(b)) {
			t.Errorf("%s should equal %s", wide, parts)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := NewCube()
	mustApply(t, c, "R")
	clone := c.Clone()
	mustApply(t, c, "U")
	if clone.Serialize() == c.Serialize() {
		t.Error("clone should not follow the original")
	}
	for _, s := range clone.Stickers() {
		if s.Piece() == nil || clone.Sticker(s.ID()) != s {
			t.Fatalf("clone sticker %d not wired to clone", s.ID())
		}
	}
}

func TestApplyRefusedWhileTurning(t *testing.T) {
	c := NewCube()
	triples, _ := Triples(LayerR, 1)
	for _, tr := range triples {
		c.selectPlane(tr)
	}
	if err := c.Apply(U); err != ErrAnimating {
		t.Errorf("Apply during animation = %v, want ErrAnimating", err)
	}
}

func TestApplyNotationRejectsInvalid(t *testing.T) {
	c := NewCube()
	if err := c.ApplyNotation("R Q U"); err == nil {
		t.Error("expected an error for Q")
	}
}

func TestResetRestoresSolved(t *testing.T) {
	c := NewCube()
	mustApply(t, c, "R U F' x")
	pieces := c.Pieces()
	c.Reset()
	if c.Serialize() != SolvedState {
		t.Error("Reset should restore the solved state")
	}
	for i, p := range c.Pieces() {
		if p != pieces[i] {
			t.Fatal("Reset should keep the same pieces")
		}
		if p.Position() != p.Home() {
			t.Errorf("piece %d at %v, want %v", p.ID(), p.Position(), p.Home())
		}
	}
}

func TestCubeString(t *testing.T) {
	c := NewCube()
	s := c.String()
	if len(s) == 0 {
		t.Fatal("empty net")
	}
	t.Log(s)
}
