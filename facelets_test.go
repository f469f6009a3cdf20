package twisty

import (
	"errors"
	"testing"
)

func TestSerializeSolved(t *testing.T) {
	want := "WWWWWWWWW" + "YYYYYYYYY" + "RRRRRRRRR" + "OOOOOOOOO" + "BBBBBBBBB" + "GGGGGGGGG"
	if got := NewCube().Serialize(); got != want {
		t.Errorf("Serialize() = %s, want %s", got, want)
	}
}

func TestSerializeIgnoresLiveState(t *testing.T) {
	c := NewCube()
	triples, _ := Triples(LayerU, 1)
	for _, tr := range triples {
		c.selectPlane(tr)
	}
	c.advance(0.5)
	if got := c.Serialize(); got != SolvedState {
		t.Errorf("mid-move Serialize() = %s, want the locked solved state", got)
	}
}

func TestParseFacelets(t *testing.T) {
	c := NewCube()
	_ = c.ApplyNotation("R U F' L2 M")
	s := c.Serialize()
	f, err := ParseFacelets(s)
	if err != nil {
		t.Fatal(err)
	}
	if f != c.Facelets() {
		t.Error("ParseFacelets should reproduce Facelets")
	}
}

func TestParseFaceletsErrors(t *testing.T) {
	bad := []string{
		"",
		SolvedState[:53],
		"X" + SolvedState[1:],
		"Y" + SolvedState[1:], // ten yellows, eight whites
	}
	for _, s := range bad {
		if _, err := ParseFacelets(s); !errors.Is(err, ErrInvalidFacelets) {
			t.Errorf("ParseFacelets(%q) error = %v", s, err)
		}
	}
}

func TestKociemba(t *testing.T) {
	c := NewCube()
	if got := c.Facelets().Kociemba(); got != "UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB" {
		t.Errorf("solved Kociemba = %s", got)
	}

	_ = c.Apply(R)
	want := "UUFUUFUUFRRRRRRRRRFFDFFDFFDDDBDDBDDBLLLLLLLLLUBBUBBUBB"
	if got := c.Facelets().Kociemba(); got != want {
		t.Errorf("Kociemba after R = %s, want %s", got, want)
	}

	// Names follow the centers, so a rotated solved cube still reads solved.
	c = NewCube()
	_ = c.Apply(X, Y)
	if got := c.Facelets().Kociemba(); got != "UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB" {
		t.Errorf("rotated solved Kociemba = %s", got)
	}
}
