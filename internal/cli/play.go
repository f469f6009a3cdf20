package cli

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/config"
	"github.com/SeamusWaldron/twisty/internal/eventlog"
	"github.com/SeamusWaldron/twisty/internal/recorder"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

var (
	playScramble  int
	recordSession bool
	sessionNotes  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Turn an animated cube from the keyboard",
	Long: `Start an interactive TUI showing the cube as a colored net.

Keyboard:
  u d f b r l   - face turns (shift for counter-clockwise)
  w + face      - wide turns (wr = r, wR = r')
  m e s         - slice turns
  x y z         - whole-cube rotations
  enter         - solve (plays the solution back)
  backspace     - drop queued moves
  ctrl+r        - reset to solved
  q/Esc         - quit`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&playScramble, "scramble", 0, "Start with N random face turns")
	addRecordFlags(playCmd)
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	e, err := newEngine(cfg, log)
	if err != nil {
		return err
	}

	var scramble []twisty.Move
	if playScramble > 0 {
		scramble = twisty.Scramble(rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)), playScramble)
	}

	sess, err := runCubeTUI(cfg, e, "twisty", "keyboard", scramble, log, nil)
	if err != nil {
		return err
	}
	if sess != "" {
		fmt.Printf("Session saved: %s\n", sess)
	}
	return nil
}

// runCubeTUI runs the cube TUI until the user quits, recording the session
// when --record is set. It returns the recorded session ID, if any.
// configure, when set, adjusts the model before the program starts.
func runCubeTUI(cfg config.Config, e *twisty.Engine, title, source string, scramble []twisty.Move, log *slog.Logger, configure func(*cubeModel)) (string, error) {
	var (
		tracker *twisty.Tracker
		session *recorder.Session
	)

	if cfg.EventLogDir != "" {
		j := eventlog.Open(cfg.EventLogDir, log)
		j.Attach(e)
		defer func() {
			if err := j.Close(); err != nil {
				log.Warn("event log close failed", "err", err)
			}
		}()
	}

	if recordSession {
		db, err := openDB(cfg)
		if err != nil {
			return "", err
		}
		defer db.Close()

		stateFile, err := openStateFile()
		if err != nil {
			return "", err
		}
		session = recorder.NewSession(db, stateFile)
		session.SetLogger(log)
		if _, err := session.Start(source, twisty.FormatMoves(scramble), sessionNotes); err != nil {
			return "", err
		}
		tracker = session.Attach(e)
	}

	for _, mv := range scramble {
		if err := e.EnqueueMove(mv); err != nil {
			return "", err
		}
	}

	model := newCubeModel(title, e, tracker, cfg.FrameInterval())
	model.session = session
	if configure != nil {
		configure(model)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return "", fmt.Errorf("TUI error: %w", err)
	}

	if session == nil {
		return "", nil
	}
	id := session.SessionID()
	if err := session.End(e.Cube().Serialize()); err != nil {
		return id, err
	}
	return id, nil
}

func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&recordSession, "record", false, "Record the session to the database")
	cmd.Flags().StringVar(&sessionNotes, "notes", "", "Notes stored with a recorded session")
}

// openStateFile loads ~/.twisty/state.json.
func openStateFile() (*recorder.StateFile, error) {
	path, err := recorder.DefaultStatePath()
	if err != nil {
		return nil, err
	}
	sf, err := recorder.NewStateFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return sf, nil
}

// sessionSummary formats one stored session for listings.
func sessionSummary(s *storage.Session, moves int) string {
	status := "open"
	if s.DurationMs != nil {
		status = formatElapsed(*s.DurationMs)
	}
	return fmt.Sprintf("%s  %s  %-8s  %4d moves  %s",
		s.SessionID[:8], s.StartedAt.Local().Format("2006-01-02 15:04"), s.Source, moves, status)
}
