// Package recorder records engine sessions into storage.
package recorder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// AppState is the small amount of state kept between CLI invocations.
type AppState struct {
	DBPath          string `json:"db_path,omitempty"`
	ActiveSessionID string `json:"active_session_id,omitempty"`
	LastDeviceID    string `json:"last_device_id,omitempty"`
	LastDeviceName  string `json:"last_device_name,omitempty"`
}

// StateFile manages the application state file.
type StateFile struct {
	path  string
	state AppState
}

// DefaultStatePath returns the default state file path.
func DefaultStatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".twisty", "state.json"), nil
}

// NewStateFile loads the state file at path. A missing file is an empty
// state.
func NewStateFile(path string) (*StateFile, error) {
	sf := &StateFile{path: path}
	if err := sf.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return sf, nil
}

// Load loads the state from disk.
func (sf *StateFile) Load() error {
	data, err := os.ReadFile(sf.path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &sf.state); err != nil {
		return fmt.Errorf("%s: %w", sf.path, err)
	}
	return nil
}

// Save writes the state to disk.
func (sf *StateFile) Save() error {
	data, err := json.MarshalIndent(sf.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(sf.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(sf.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// State returns the current state.
func (sf *StateFile) State() AppState {
	return sf.state
}

// SetActiveSession records the session being recorded.
func (sf *StateFile) SetActiveSession(id string) error {
	sf.state.ActiveSessionID = id
	return sf.Save()
}

// ClearActiveSession forgets the active session.
func (sf *StateFile) ClearActiveSession() error {
	sf.state.ActiveSessionID = ""
	return sf.Save()
}

// SetLastDevice sets the last connected device.
func (sf *StateFile) SetLastDevice(deviceID, deviceName string) error {
	sf.state.LastDeviceID = deviceID
	sf.state.LastDeviceName = deviceName
	return sf.Save()
}

// ActiveSessionID returns the active session ID, empty when none.
func (sf *StateFile) ActiveSessionID() string {
	return sf.state.ActiveSessionID
}

// LastDeviceID returns the last connected device ID.
func (sf *StateFile) LastDeviceID() string {
	return sf.state.LastDeviceID
}
