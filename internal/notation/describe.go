// Package notation renders moves as plain-language instructions.
package notation

import (
	"strings"

	"github.com/SeamusWaldron/twisty"
)

// phrases holds the clockwise and counter-clockwise wording per layer.
// Reference frame: white on top, red in front, facing the cube. Row
// directions describe where the front stickers travel.
var phrases = map[twisty.Layer][2]string{
	twisty.LayerR: {"R up", "R down"},
	twisty.LayerL: {"L down", "L up"},
	twisty.LayerU: {"top row left", "top row right"},
	twisty.LayerD: {"bottom row right", "bottom row left"},
	twisty.LayerF: {"front clockwise", "front anti-clockwise"},
	twisty.LayerB: {"back anti-clockwise", "back clockwise"}, // as seen from the front

	twisty.LayerM: {"middle column down", "middle column up"},
	twisty.LayerE: {"middle row right", "middle row left"},
	twisty.LayerS: {"standing slice clockwise", "standing slice anti-clockwise"},

	twisty.LayerX: {"whole cube up", "whole cube down"},
	twisty.LayerY: {"whole cube left", "whole cube right"},
	twisty.LayerZ: {"whole cube clockwise", "whole cube anti-clockwise"},
}

// wideBase maps a wide layer to the face it extends.
var wideBase = map[twisty.Layer]twisty.Layer{
	twisty.LayerUw: twisty.LayerU, twisty.LayerDw: twisty.LayerD,
	twisty.LayerFw: twisty.LayerF, twisty.LayerBw: twisty.LayerB,
	twisty.LayerRw: twisty.LayerR, twisty.LayerLw: twisty.LayerL,
}

// Describe converts a move to a plain-language instruction, e.g.
// "R up", "top row left x 2" or "R up (two layers)".
func Describe(m twisty.Move) string {
	layer, wide := wideBase[m.Layer]
	if !wide {
		layer = m.Layer
	}
	p, ok := phrases[layer]
	if !ok {
		return m.Notation()
	}

	var s string
	switch m.Turn {
	case twisty.CW:
		s = p[0]
	case twisty.CCW:
		s = p[1]
	case twisty.Double:
		s = p[0] + " x 2"
	default:
		return m.Notation()
	}
	if wide {
		s += " (two layers)"
	}
	return s
}

// DescribeSequence describes every move, one per line.
func DescribeSequence(moves []twisty.Move) string {
	lines := make([]string, len(moves))
	for i, m := range moves {
		lines[i] = m.Notation() + "\t" + Describe(m)
	}
	return strings.Join(lines, "\n")
}
