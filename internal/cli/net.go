package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/twisty"
)

// Terminal colors for sticker cells (ANSI 256 palette).
var stickerColors = map[twisty.Color]lipgloss.Color{
	twisty.White:  lipgloss.Color("15"),
	twisty.Yellow: lipgloss.Color("11"),
	twisty.Red:    lipgloss.Color("9"),
	twisty.Orange: lipgloss.Color("208"),
	twisty.Blue:   lipgloss.Color("12"),
	twisty.Green:  lipgloss.Color("10"),
}

const blankFace = "       " // one face row plus the gap

func cell(c twisty.Color) string {
	return lipgloss.NewStyle().Background(stickerColors[c]).Render("  ")
}

// renderNet draws the locked state as a colored net:
//
//	  U
//	L F R B
//	  D
func renderNet(f twisty.Facelets) string {
	var b strings.Builder
	row := func(face twisty.Face, r int) {
		for col := 0; col < 3; col++ {
			b.WriteString(cell(f[face][r*3+col]))
		}
		b.WriteString(" ")
	}

	for r := 0; r < 3; r++ {
		b.WriteString(blankFace)
		row(twisty.FaceU, r)
		b.WriteString("\n")
	}
	for r := 0; r < 3; r++ {
		for _, face := range []twisty.Face{twisty.FaceL, twisty.FaceF, twisty.FaceR, twisty.FaceB} {
			row(face, r)
		}
		b.WriteString("\n")
	}
	for r := 0; r < 3; r++ {
		b.WriteString(blankFace)
		row(twisty.FaceD, r)
		b.WriteString("\n")
	}
	return b.String()
}
