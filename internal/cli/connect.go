package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty/internal/ble"
)

var (
	scanTimeout time.Duration
	connectID   string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List nearby GoCube smart cubes",
	RunE:  runScan,
}

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Drive the cube from a GoCube smart cube",
	Long: `Connect to a GoCube over Bluetooth and mirror every physical face turn
on the animated cube. The keyboard keeps working alongside the cube.

Make sure the cube is awake and not connected to a phone. Without --id
the first cube found is used; the last device is remembered.`,
	RunE: runConnect,
}

func init() {
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 5*time.Second, "Scan duration")
	connectCmd.Flags().DurationVar(&scanTimeout, "timeout", 5*time.Second, "Scan duration when no device is known")
	connectCmd.Flags().StringVar(&connectID, "id", "", "Device address to connect to")
	addRecordFlags(connectCmd)
	rootCmd.AddCommand(scanCmd, connectCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Println("Scanning for GoCube devices...")

	client, err := ble.NewClient(newLogger(cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("BLE not available: %w", err)
	}
	results, err := client.Scan(cmd.Context(), scanTimeout)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No devices found. Rotate the cube to wake it up.")
		return nil
	}
	for _, r := range results {
		fmt.Printf("  %-20s %s  RSSI %d\n", r.Name, r.ID(), r.RSSI)
	}
	return nil
}

func runConnect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	stateFile, err := openStateFile()
	if err != nil {
		return err
	}

	client, err := ble.NewClient(newLogger(cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("BLE not available: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), ble.ConnectTimeout+scanTimeout)
	defer cancel()

	id := connectID
	if id == "" {
		id = stateFile.LastDeviceID()
	}
	if id != "" {
		fmt.Printf("Connecting to %s...\n", id)
		err = client.Connect(ctx, id)
	} else {
		fmt.Println("Scanning for GoCube devices...")
		var results []ble.ScanResult
		results, err = client.Scan(ctx, scanTimeout)
		if err == nil && len(results) == 0 {
			err = ble.ErrDeviceNotFound
		}
		if err == nil {
			fmt.Printf("Found: %s\n", results[0].Name)
			err = client.ConnectTo(results[0])
		}
	}
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer client.Disconnect()

	if err := stateFile.SetLastDevice(client.DeviceID(), client.DeviceName()); err != nil {
		return err
	}

	// The TUI logs to a file from here on; BLE callbacks hand data to the
	// model through channels.
	log, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	rotations := make(chan []ble.Rotation, 64)
	devices := make(chan deviceMsg, 8)
	client.OnRotation(func(r []ble.Rotation) {
		select {
		case rotations <- r:
		default:
			log.Warn("rotation dropped, TUI busy")
		}
	})
	client.OnMessage(func(m *ble.Message) {
		if m.Type != ble.MsgTypeBattery {
			return
		}
		select {
		case devices <- deviceMsg{battery: client.Battery()}:
		default:
		}
	})
	devices <- deviceMsg{name: client.DeviceName(), battery: client.Battery()}

	e, err := newEngine(cfg, log)
	if err != nil {
		return err
	}
	sess, err := runCubeTUI(cfg, e, "twisty - GoCube", "gocube", nil, log, func(m *cubeModel) {
		m.rotations = rotations
		m.devices = devices
	})
	if err != nil {
		return err
	}
	if sess != "" {
		fmt.Printf("Session saved: %s\n", sess)
	}
	return nil
}
