package cli

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/notation"
)

var (
	applyScramble int
	applyKociemba bool
	applyPlain    bool
	applyDescribe bool
)

var applyCmd = &cobra.Command{
	Use:   "apply [moves]",
	Short: "Apply moves to a solved cube and print the result",
	Long: `Apply a move sequence instantly to a solved cube and print the net, the
54-character state string and the solving phase.

Example:
  twisty apply "R U R' U'"
  twisty apply --scramble 25 --kociemba`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().IntVar(&applyScramble, "scramble", 0, "Apply N random face turns first")
	applyCmd.Flags().BoolVar(&applyKociemba, "kociemba", false, "Also print the URFDLB facelet string")
	applyCmd.Flags().BoolVar(&applyDescribe, "describe", false, "Spell out each move in plain language")
	applyCmd.Flags().BoolVar(&applyPlain, "plain", false, "Print the net as letters instead of colors")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	c := twisty.NewCube()

	var moves []twisty.Move
	if applyScramble > 0 {
		rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
		moves = append(moves, twisty.Scramble(rng, applyScramble)...)
	}
	for _, tok := range strings.Fields(strings.Join(args, " ")) {
		m, err := twisty.ParseMove(tok)
		if err != nil {
			return err
		}
		moves = append(moves, m)
	}
	if err := c.Apply(moves...); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(moves) > 0 {
		fmt.Fprintf(out, "Moves:   %s\n", twisty.FormatMoves(moves))
		fmt.Fprintf(out, "Inverse: %s\n\n", twisty.FormatMoves(twisty.Simplify(twisty.InvertSequence(moves))))
		if applyDescribe {
			fmt.Fprintln(out, notation.DescribeSequence(moves))
			fmt.Fprintln(out)
		}
	}
	if applyPlain {
		fmt.Fprint(out, c.String())
	} else {
		fmt.Fprint(out, renderNet(c.Facelets()))
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "State:   %s\n", c.Serialize())
	if applyKociemba {
		fmt.Fprintf(out, "URFDLB:  %s\n", c.Facelets().Kociemba())
	}
	fmt.Fprintf(out, "Phase:   %s\n", c.DetectPhase().DisplayName())
	return nil
}
