package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

var (
	replaySpeed float64
	replayPrint bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [session-id]",
	Short: "Replay a recorded session",
	Long: `Animate the moves of a recorded session, including any solution that was
played back. Without an ID the most recent session is replayed.

Usage:
  twisty replay                 # Replay the last session
  twisty replay 3f2a91c0        # Replay by ID prefix
  twisty replay --speed 0.5     # Half speed
  twisty replay --print         # Print each locked move instead of a TUI`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().Float64VarP(&replaySpeed, "speed", "s", 1.0, "Animation speed multiplier")
	replayCmd.Flags().BoolVar(&replayPrint, "print", false, "Print locked moves without a TUI")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if replaySpeed <= 0 {
		return fmt.Errorf("speed must be positive")
	}
	cfg.AnimSpeed *= replaySpeed

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var s *storage.Session
	if len(args) == 1 {
		s, err = findSession(db, args[0])
	} else {
		s, err = storage.NewSessionRepository(db).GetLast()
		if err == nil && s == nil {
			err = fmt.Errorf("no sessions recorded yet")
		}
	}
	if err != nil {
		return err
	}

	records, err := storage.NewMoveRepository(db).GetBySession(s.SessionID)
	if err != nil {
		return err
	}
	moves := storage.ToMoves(records)

	e := twisty.NewEngine(twisty.WithAnimSpeed(cfg.AnimSpeed), twisty.WithMoveHistory(false))
	for _, m := range moves {
		if err := e.EnqueueMove(m); err != nil {
			return err
		}
	}

	if replayPrint {
		return printReplay(e, cfg.FrameInterval())
	}

	log, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	title := fmt.Sprintf("twisty - replay %s (%d moves)", s.SessionID[:8], len(moves))
	_, err = runCubeTUI(cfg, e, title, "replay", nil, log, func(m *cubeModel) {
		m.readOnly = true
	})
	return err
}

// printReplay runs the engine on a simulated clock and prints every lock.
func printReplay(e *twisty.Engine, frame time.Duration) error {
	var clock time.Duration
	e.OnLock(func(m twisty.Move) {
		fmt.Printf("%8s  %-3s  %s\n", formatElapsed(clock.Milliseconds()), m.Notation(), e.Cube().DetectPhase())
	})
	for e.Busy() {
		e.Tick(frame)
		clock += frame
	}
	fmt.Printf("\nFinal state: %s\n", e.Cube().Serialize())
	return nil
}
