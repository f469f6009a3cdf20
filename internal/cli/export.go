package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty/internal/eventlog"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

var (
	exportSessionID string
	exportFormat    string
	exportOutput    string
	exportLast      bool
	exportEventDir  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export session moves or the event log",
}

var exportMovesCmd = &cobra.Command{
	Use:   "moves",
	Short: "Export the moves of a session",
	Long: `Export the move sequence of a session in text or JSON format.

Examples:
  twisty export moves --last
  twisty export moves --id <session_id> --format json
  twisty export moves --id <session_id> --format txt -o moves.txt`,
	RunE: runExportMoves,
}

var exportEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Decompress the engine event log to JSON lines",
	RunE:  runExportEvents,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportMovesCmd, exportEventsCmd)

	exportMovesCmd.Flags().StringVar(&exportSessionID, "id", "", "Session ID (or prefix) to export")
	exportMovesCmd.Flags().BoolVar(&exportLast, "last", false, "Export the last session")
	exportMovesCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json)")
	exportCmd.PersistentFlags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	exportEventsCmd.Flags().StringVar(&exportEventDir, "dir", "", "Event log directory (default from config)")
}

type moveJSON struct {
	MoveIndex int    `json:"move_index"`
	TsMs      int64  `json:"ts_ms"`
	Layer     string `json:"layer"`
	Turn      int    `json:"turn"`
	Notation  string `json:"notation"`
	Solution  bool   `json:"solution,omitempty"`
}

func runExportMoves(cmd *cobra.Command, args []string) error {
	if exportSessionID == "" && !exportLast {
		return fmt.Errorf("specify --id or --last")
	}

	return withDB(func(db *storage.DB) error {
		var (
			s   *storage.Session
			err error
		)
		if exportLast {
			s, err = storage.NewSessionRepository(db).GetLast()
			if err == nil && s == nil {
				err = fmt.Errorf("no sessions found")
			}
		} else {
			s, err = findSession(db, exportSessionID)
		}
		if err != nil {
			return err
		}

		moves, err := storage.NewMoveRepository(db).GetBySession(s.SessionID)
		if err != nil {
			return fmt.Errorf("failed to get moves: %w", err)
		}
		if len(moves) == 0 {
			return fmt.Errorf("no moves found for session %s", s.SessionID)
		}

		var output string
		switch strings.ToLower(exportFormat) {
		case "txt":
			notations := make([]string, len(moves))
			for i, m := range moves {
				notations[i] = m.Notation
			}
			output = strings.Join(notations, " ")

		case "json":
			out := make([]moveJSON, len(moves))
			for i, m := range moves {
				out[i] = moveJSON{
					MoveIndex: m.MoveIndex,
					TsMs:      m.TsMs,
					Layer:     m.Layer,
					Turn:      m.Turn,
					Notation:  m.Notation,
					Solution:  m.Solution,
				}
			}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			output = string(data)

		default:
			return fmt.Errorf("unknown format: %s (use txt or json)", exportFormat)
		}

		if err := writeOutput(output + "\n"); err != nil {
			return err
		}
		if exportOutput != "" {
			fmt.Printf("Exported %d moves to %s\n", len(moves), exportOutput)
		}
		return nil
	})
}

func runExportEvents(cmd *cobra.Command, args []string) error {
	dir := exportEventDir
	if dir == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dir = cfg.EventLogDir
	}
	if dir == "" {
		return fmt.Errorf("no event log directory: set event_log_dir or pass --dir")
	}

	files, err := eventlog.Files(dir)
	if err != nil {
		return err
	}
	var b strings.Builder
	enc := json.NewEncoder(&b)
	n := 0
	for _, f := range files {
		events, err := eventlog.ReadFile(f)
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(f), err)
		}
		for _, ev := range events {
			if err := enc.Encode(ev); err != nil {
				return err
			}
			n++
		}
	}
	if err := writeOutput(b.String()); err != nil {
		return err
	}
	if exportOutput != "" {
		fmt.Printf("Exported %d events from %d files to %s\n", n, len(files), exportOutput)
	}
	return nil
}

// writeOutput writes to --output, or stdout when unset.
func writeOutput(s string) error {
	if exportOutput == "" {
		fmt.Print(s)
		return nil
	}
	dir := filepath.Dir(exportOutput)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(exportOutput, []byte(s), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
