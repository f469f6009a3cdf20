package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/analysis"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

var (
	sessionsLimit int
	sessionsJSON  bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect recorded sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sessions",
	RunE:  runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a session's moves, phases and final state",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and its moves",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

func init() {
	sessionsListCmd.Flags().IntVarP(&sessionsLimit, "limit", "n", 20, "Maximum number of sessions")
	sessionsShowCmd.Flags().BoolVar(&sessionsJSON, "json", false, "Print statistics as JSON")
	sessionsCmd.AddCommand(sessionsListCmd, sessionsShowCmd, sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}

// withDB opens the configured database for the duration of fn.
func withDB(fn func(db *storage.DB) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

// findSession resolves a full session ID or a unique prefix of one.
func findSession(db *storage.DB, idOrPrefix string) (*storage.Session, error) {
	found, err := storage.NewSessionRepository(db).FindByPrefix(idOrPrefix)
	if err != nil {
		return nil, err
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("no session matches %q", idOrPrefix)
	case 1:
		return &found[0], nil
	default:
		return nil, fmt.Errorf("%q matches %d sessions", idOrPrefix, len(found))
	}
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	return withDB(func(db *storage.DB) error {
		sessions, err := storage.NewSessionRepository(db).List(sessionsLimit)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions recorded yet. Start one with: twisty play --record")
			return nil
		}
		moves := storage.NewMoveRepository(db)
		for i := range sessions {
			n, err := moves.Count(sessions[i].SessionID)
			if err != nil {
				return err
			}
			fmt.Println(sessionSummary(&sessions[i], n))
		}
		return nil
	})
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	return withDB(func(db *storage.DB) error {
		s, err := findSession(db, args[0])
		if err != nil {
			return err
		}
		records, err := storage.NewMoveRepository(db).GetBySession(s.SessionID)
		if err != nil {
			return err
		}
		marks, err := storage.NewPhaseRepository(db).GetPhaseMarks(s.SessionID)
		if err != nil {
			return err
		}

		summary := analysis.Summarize(s, records, marks)
		grams := analysis.MineNGrams(storage.ToMoves(records), 4, 8, 3)
		reps := analysis.AnalyzeRepetitions(records)
		if sessionsJSON {
			data, err := json.MarshalIndent(struct {
				Summary     analysis.Summary         `json:"summary"`
				Repetitions analysis.Repetitions     `json:"repetitions"`
				NGrams      map[int][]analysis.NGram `json:"ngrams,omitempty"`
			}{summary, reps, grams}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Session:  %s\n", s.SessionID)
		fmt.Printf("Started:  %s\n", s.StartedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Source:   %s\n", s.Source)
		if s.DurationMs != nil {
			fmt.Printf("Duration: %s\n", formatElapsed(*s.DurationMs))
		}
		if s.ScrambleText != nil {
			fmt.Printf("Scramble: %s\n", *s.ScrambleText)
		}
		if s.Notes != nil {
			fmt.Printf("Notes:    %s\n", *s.Notes)
		}

		var played, solution []string
		for _, r := range records {
			if r.Solution {
				solution = append(solution, r.Notation)
			} else {
				played = append(played, r.Notation)
			}
		}
		fmt.Printf("\nMoves (%d): %s\n", len(played), strings.Join(played, " "))
		if len(solution) > 0 {
			fmt.Printf("Solution (%d): %s\n", len(solution), strings.Join(solution, " "))
		}

		if summary.TotalMoves > 0 {
			fmt.Printf("\nTPS %.2f  avg %.0fms/move  longest pause %s  pauses %d\n",
				summary.TPS, summary.AvgMoveDurationMs, formatElapsed(summary.LongestPauseMs), summary.PauseCount)
			fmt.Printf("Simplified to %d moves (%.0f%%)\n", summary.SimplifiedMoves, summary.Efficiency*100)
			fmt.Printf("Wasted moves: %d (%d cancellations, %d merges, %d back-and-forth runs)\n",
				reps.WastedMoves, len(reps.Cancellations), len(reps.Merges), len(reps.BackAndForth))
		}

		if len(summary.Phases) > 0 {
			fmt.Println("\nPhases:")
			for _, p := range summary.Phases {
				name := p.PhaseKey
				if ph, ok := twisty.ParsePhase(p.PhaseKey); ok {
					name = ph.DisplayName()
				}
				fmt.Printf("  %-26s %8s  +%s  %3d moves  %.2f TPS\n",
					name, formatElapsed(p.EndTsMs), formatElapsed(p.DurationMs), p.MoveCount, p.TPS)
			}
		}

		for n := 8; n >= 4; n-- {
			if gs := grams[n]; len(gs) > 0 {
				fmt.Printf("\nRepeated %d-move sequences:\n", n)
				for _, g := range gs {
					fmt.Printf("  %-32s x%d\n", strings.Join(g.Sequence, " "), g.Count)
				}
				break
			}
		}

		if s.FinalState != nil {
			f, err := twisty.ParseFacelets(*s.FinalState)
			if err == nil {
				fmt.Println()
				fmt.Print(renderNet(f))
			}
		}
		return nil
	})
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	return withDB(func(db *storage.DB) error {
		s, err := findSession(db, args[0])
		if err != nil {
			return err
		}
		if err := storage.NewSessionRepository(db).Delete(s.SessionID); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", s.SessionID)
		return nil
	})
}
