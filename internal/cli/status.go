package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty/internal/eventlog"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration, database and device information",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	stateFile, err := openStateFile()
	if err != nil {
		return err
	}
	state := stateFile.State()

	fmt.Println("twisty status")
	fmt.Println("=============")
	fmt.Println()
	fmt.Printf("Animation: %.1f rad/s at %d Hz\n", cfg.AnimSpeed, cfg.FrameRateHz)
	if cfg.SolverCommand != "" {
		fmt.Printf("Solver: %s\n", cfg.SolverCommand)
	} else {
		fmt.Println("Solver: move history")
	}
	fmt.Println()

	db, err := openDB(cfg)
	if err != nil {
		fmt.Printf("Database: %v\n", err)
	} else {
		defer db.Close()
		fmt.Printf("Database: %s\n", db.Path())
		sessions := storage.NewSessionRepository(db)
		if last, err := sessions.GetLast(); err == nil && last != nil {
			fmt.Printf("Last session: %s (%s)\n", last.SessionID[:8], last.StartedAt.Local().Format(time.RFC3339))
		}
		if all, err := sessions.List(-1); err == nil {
			fmt.Printf("Total sessions: %d\n", len(all))
		}
	}

	if cfg.EventLogDir != "" {
		files, err := eventlog.Files(cfg.EventLogDir)
		if err == nil {
			fmt.Printf("Event log: %s (%d files)\n", cfg.EventLogDir, len(files))
		}
	}
	fmt.Println()

	if state.ActiveSessionID != "" {
		fmt.Printf("Active session: %s\n", state.ActiveSessionID)
		fmt.Println("  (left open by an interrupted run)")
	} else {
		fmt.Println("No active session")
	}

	if state.LastDeviceID != "" {
		fmt.Printf("Last device: %s (%s)\n", state.LastDeviceName, state.LastDeviceID)
	} else {
		fmt.Println("No device history")
	}
	return nil
}
