package notation

import (
	"strings"
	"testing"

	"github.com/SeamusWaldron/twisty"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		move string
		want string
	}{
		{"R", "R up"},
		{"R'", "R down"},
		{"R2", "R up x 2"},
		{"L", "L down"},
		{"U", "top row left"},
		{"U'", "top row right"},
		{"D", "bottom row right"},
		{"F2", "front clockwise x 2"},
		{"B", "back anti-clockwise"},
		{"M", "middle column down"},
		{"E'", "middle row left"},
		{"S", "standing slice clockwise"},
		{"r", "R up (two layers)"},
		{"u'", "top row right (two layers)"},
		{"y", "whole cube left"},
		{"x2", "whole cube up x 2"},
	}
	for _, tt := range tests {
		t.Run(tt.move, func(t *testing.T) {
			if got := Describe(twisty.MustParseMove(tt.move)); got != tt.want {
				t.Errorf("Describe(%s) = %q, want %q", tt.move, got, tt.want)
			}
		})
	}
}

func TestDescribeEveryLegalMove(t *testing.T) {
	seen := make(map[string]twisty.Move)
	for _, m := range twisty.LegalMoves() {
		d := Describe(m)
		if d == m.Notation() {
			t.Errorf("%s has no description", m.Notation())
		}
		if prev, ok := seen[d]; ok {
			t.Errorf("%s and %s share description %q", prev.Notation(), m.Notation(), d)
		}
		seen[d] = m
	}
}

func TestDescribeSequence(t *testing.T) {
	got := DescribeSequence(twisty.ParseMoves("R U'"))
	lines := strings.Split(got, "\n")
	if len(lines) != 2 || lines[0] != "R\tR up" || lines[1] != "U'\ttop row right" {
		t.Errorf("DescribeSequence = %q", got)
	}
}
