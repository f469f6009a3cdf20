package twisty

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestLayerTable(t *testing.T) {
	tests := []struct {
		layer  Layer
		axis   Axis
		planes []int
		dir    int // rotation sign of a clockwise quarter
	}{
		{LayerR, AxisX, []int{1}, -1},
		{LayerL, AxisX, []int{-1}, 1},
		{LayerU, AxisY, []int{1}, -1},
		{LayerD, AxisY, []int{-1}, 1},
		{LayerF, AxisZ, []int{1}, -1},
		{LayerB, AxisZ, []int{-1}, 1},

		{LayerRw, AxisX, []int{1, 0}, -1},
		{LayerLw, AxisX, []int{-1, 0}, 1},
		{LayerUw, AxisY, []int{1, 0}, -1},
		{LayerDw, AxisY, []int{-1, 0}, 1},
		{LayerFw, AxisZ, []int{1, 0}, -1},
		{LayerBw, AxisZ, []int{-1, 0}, 1},

		{LayerM, AxisX, []int{0}, 1},
		{LayerE, AxisY, []int{0}, 1},
		{LayerS, AxisZ, []int{0}, -1},

		{LayerX, AxisX, []int{-1, 0, 1}, -1},
		{LayerY, AxisY, []int{-1, 0, 1}, -1},
		{LayerZ, AxisZ, []int{-1, 0, 1}, -1},
	}
	if len(tests) != len(layerTable) {
		t.Fatalf("table has %d layers, test covers %d", len(layerTable), len(tests))
	}
	for _, tt := range tests {
		for _, q := range []int{1, -1} {
			triples, ok := Triples(tt.layer, q)
			if !ok {
				t.Fatalf("%s: not in table", tt.layer)
			}
			if len(triples) != len(tt.planes) {
				t.Errorf("%s: %d triples, want %d", tt.layer, len(triples), len(tt.planes))
				continue
			}
			for i, tr := range triples {
				if tr.Axis != tt.axis || tr.Plane != tt.planes[i] || tr.Dir != q*tt.dir {
					t.Errorf("%s dir %d: triple %d = %+v, want axis %v plane %d dir %d",
						tt.layer, q, i, tr, tt.axis, tt.planes[i], q*tt.dir)
				}
			}
		}
	}
}

// The S slice turns with F, which is a negative rotation about z, while M
// and E turn positively about x and y. This is pinned reference behavior.
func TestSliceSignAsymmetryPinned(t *testing.T) {
	if sliceSign[AxisX] != 1 || sliceSign[AxisY] != 1 || sliceSign[AxisZ] != -1 {
		t.Fatalf("sliceSign = %v, want [1 1 -1]", sliceSign)
	}

	c := NewCube()
	_ = c.Apply(S)
	// S carries the U center to R, as F carries the U edge to R.
	p := c.PieceAt(Point{1, 0, 0})
	if p == nil {
		t.Fatal("R center slot is empty")
	}
	if p.Home() != (Point{0, 1, 0}) {
		t.Errorf("after S the R center slot holds the piece from %v, want the U center", p.Home())
	}
}

func TestMovesCarryPieces(t *testing.T) {
	tests := []struct {
		move     Move
		from, to Point
	}{
		{U, Point{0, 1, 1}, Point{-1, 1, 0}},  // UF edge to UL
		{R, Point{1, 0, 1}, Point{1, 1, 0}},   // FR edge to UR
		{F, Point{0, 1, 1}, Point{1, 0, 1}},   // UF edge to FR
		{L, Point{-1, 1, 0}, Point{-1, 0, 1}}, // UL edge to FL
		{D, Point{0, -1, 1}, Point{1, -1, 0}}, // DF edge to DR
		{B, Point{0, 1, -1}, Point{-1, 0, -1}},
		{M, Point{0, 1, 0}, Point{0, 0, 1}}, // U center to F
		{E, Point{0, 0, 1}, Point{1, 0, 0}}, // F center to R
		{S, Point{0, 1, 0}, Point{1, 0, 0}}, // U center to R
		{Move{LayerRw, CW}, Point{0, 1, 0}, Point{0, 0, -1}},
		{X, Point{0, 0, 1}, Point{0, 1, 0}},
		{Y, Point{1, 0, 0}, Point{0, 0, 1}},
		{Z, Point{0, 1, 0}, Point{1, 0, 0}},
	}
	for _, tt := range tests {
		c := NewCube()
		p := c.PieceAt(tt.from)
		_ = c.Apply(tt.move)
		if p.Position() != tt.to {
			t.Errorf("%v moved %v to %v, want %v", tt.move, tt.from, p.Position(), tt.to)
		}
	}
}

func TestRotationIsOrthogonal(t *testing.T) {
	for axis := AxisX; axis <= AxisZ; axis++ {
		for _, theta := range []float64{0, 0.3, QuarterTurn, -QuarterTurn, math.Pi, 7.1} {
			r := Rotation(axis, theta)
			prod := r.Mul3(r.Transpose())
			if !prod.ApproxEqualThreshold(mgl64.Ident3(), 1e-12) {
				t.Errorf("R(%v, %v) is not orthogonal", axis, theta)
			}
			if d := r.Det(); math.Abs(d-1) > 1e-12 {
				t.Errorf("det R(%v, %v) = %v", axis, theta, d)
			}
			// The axis itself is fixed.
			if !r.Mul3x1(axis.Unit()).ApproxEqual(axis.Unit()) {
				t.Errorf("R(%v, %v) moves its own axis", axis, theta)
			}
		}
	}
}

func TestRotationRightHanded(t *testing.T) {
	// A positive quarter turn about x takes y to z, about y takes z to x,
	// about z takes x to y.
	cases := []struct {
		axis     Axis
		from, to Point
	}{
		{AxisX, Point{0, 1, 0}, Point{0, 0, 1}},
		{AxisY, Point{0, 0, 1}, Point{1, 0, 0}},
		{AxisZ, Point{1, 0, 0}, Point{0, 1, 0}},
	}
	for _, tt := range cases {
		if got := tt.from.Rotate(tt.axis, 1); got != tt.to {
			t.Errorf("rotate %v about %v = %v, want %v", tt.from, tt.axis, got, tt.to)
		}
	}
}

func TestLegalMoveCount(t *testing.T) {
	// 6 faces, 6 wide layers and 3 rotations with three suffixes each,
	// and 3 slices with two.
	if n := len(LegalMoves()); n != 51 {
		t.Errorf("got %d legal moves, want 51", n)
	}
}
