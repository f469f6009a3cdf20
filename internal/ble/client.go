// Package ble connects to GoCube smart cubes over Bluetooth LE and decodes
// their notifications into face turns.
package ble

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"tinygo.org/x/bluetooth"
)

var (
	ErrNotConnected     = errors.New("ble: not connected to device")
	ErrAlreadyConnected = errors.New("ble: already connected to a device")
	ErrDeviceNotFound   = errors.New("ble: device not found")
	ErrServiceNotFound  = errors.New("ble: GoCube service not found")
)

var (
	serviceUUID = bluetooth.NewUUID(uuid.MustParse(ServiceUUID))
	txCharUUID  = bluetooth.NewUUID(uuid.MustParse(TxCharUUID))
	rxCharUUID  = bluetooth.NewUUID(uuid.MustParse(RxCharUUID))
)

// ConnectTimeout bounds the scan that precedes Connect.
const ConnectTimeout = 10 * time.Second

// ScanResult is a discovered GoCube.
type ScanResult struct {
	Name    string
	Address bluetooth.Address
	RSSI    int16
}

// ID returns the platform address string used to reconnect.
func (r ScanResult) ID() string { return r.Address.String() }

// Client manages the connection to one GoCube.
type Client struct {
	adapter *bluetooth.Adapter
	log     *slog.Logger

	mu        sync.RWMutex
	device    bluetooth.Device
	rxChar    bluetooth.DeviceCharacteristic
	connected bool
	name      string
	id        string
	battery   int

	onMessage  func(*Message)
	onRotation func([]Rotation)
}

// NewClient enables the default adapter.
func NewClient(log *slog.Logger) (*Client, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("enable BLE adapter: %w", err)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Client{adapter: adapter, log: log, battery: -1}, nil
}

// OnMessage registers a callback for every parsed frame. It runs on the
// adapter's goroutine.
func (c *Client) OnMessage(cb func(*Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMessage = cb
}

// OnRotation registers a callback for decoded rotation frames. It runs on
// the adapter's goroutine.
func (c *Client) OnRotation(cb func([]Rotation)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onRotation = cb
}

// Scan collects GoCubes advertising within timeout.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	if c.IsConnected() {
		return nil, ErrAlreadyConnected
	}

	var (
		mu      sync.Mutex
		results []ScanResult
		seen    = make(map[string]bool)
		done    = make(chan error, 1)
	)
	go func() {
		done <- c.adapter.Scan(func(_ *bluetooth.Adapter, r bluetooth.ScanResult) {
			if !isGoCube(r.LocalName()) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			addr := r.Address.String()
			if seen[addr] {
				return
			}
			seen[addr] = true
			results = append(results, ScanResult{Name: r.LocalName(), Address: r.Address, RSSI: r.RSSI})
		})
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
	}
	_ = c.adapter.StopScan()

	mu.Lock()
	defer mu.Unlock()
	return results, nil
}

func isGoCube(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), "gocube")
}

// Connect scans for the device with the given address and connects to it.
func (c *Client) Connect(ctx context.Context, id string) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}

	found := make(chan ScanResult, 1)
	go func() {
		_ = c.adapter.Scan(func(a *bluetooth.Adapter, r bluetooth.ScanResult) {
			if r.Address.String() != id {
				return
			}
			select {
			case found <- ScanResult{Name: r.LocalName(), Address: r.Address, RSSI: r.RSSI}:
			default:
			}
			_ = a.StopScan()
		})
	}()

	select {
	case r := <-found:
		return c.ConnectTo(r)
	case <-time.After(ConnectTimeout):
		_ = c.adapter.StopScan()
		return ErrDeviceNotFound
	case <-ctx.Done():
		_ = c.adapter.StopScan()
		return ctx.Err()
	}
}

// ConnectTo connects to a device from a scan result, subscribes to
// notifications and asks for the battery level.
func (c *Client) ConnectTo(r ScanResult) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}

	device, err := c.adapter.Connect(r.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	rx, err := c.subscribe(device)
	if err != nil {
		_ = device.Disconnect()
		return err
	}

	c.mu.Lock()
	c.device = device
	c.rxChar = rx
	c.connected = true
	c.name = r.Name
	c.id = r.ID()
	c.mu.Unlock()

	c.log.Info("connected", "device", r.Name, "id", r.ID())
	if err := c.RequestBattery(); err != nil {
		c.log.Warn("battery request failed", "err", err)
	}
	return nil
}

func (c *Client) subscribe(device bluetooth.Device) (bluetooth.DeviceCharacteristic, error) {
	var rx bluetooth.DeviceCharacteristic

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		return rx, fmt.Errorf("discover services: %w", err)
	}
	if len(services) == 0 {
		return rx, ErrServiceNotFound
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		return rx, fmt.Errorf("discover characteristics: %w", err)
	}
	var tx bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			tx = ch
		case rxCharUUID:
			rx = ch
		}
	}

	if err := tx.EnableNotifications(c.handleNotification); err != nil {
		return rx, fmt.Errorf("enable notifications: %w", err)
	}
	return rx, nil
}

// Disconnect drops the current connection, if any.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return nil
	}
	err := c.device.Disconnect()
	c.connected = false
	c.name, c.id = "", ""
	c.battery = -1
	return err
}

func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

func (c *Client) DeviceID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.id
}

// Battery returns the last reported battery level, or -1.
func (c *Client) Battery() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.battery
}

// SendCommand writes a command frame to the cube.
func (c *Client) SendCommand(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.connected {
		return ErrNotConnected
	}
	data := BuildCommand(cmd)
	if _, err := c.rxChar.WriteWithoutResponse(data); err != nil {
		_, err = c.rxChar.Write(data)
		return err
	}
	return nil
}

func (c *Client) RequestBattery() error { return c.SendCommand(CmdRequestBattery) }

// ResetSolved tells the cube to treat its current state as solved.
func (c *Client) ResetSolved() error { return c.SendCommand(CmdResetSolved) }

func (c *Client) FlashBacklight() error { return c.SendCommand(CmdFlashBacklight) }

func (c *Client) EnableOrientation() error { return c.SendCommand(CmdEnableOrientation) }

func (c *Client) DisableOrientation() error { return c.SendCommand(CmdDisableOrientation) }

func (c *Client) handleNotification(data []byte) {
	msg, err := Parse(data)
	if err != nil {
		c.log.Debug("dropping frame", "err", err, "len", len(data))
		return
	}
	c.dispatch(msg)
}

// dispatch routes a parsed frame to the callbacks.
func (c *Client) dispatch(msg *Message) {
	c.log.Debug("frame", "type", MessageTypeName(msg.Type), "raw", msg.RawBase64)

	var rotations []Rotation
	switch msg.Type {
	case MsgTypeBattery:
		if level, err := DecodeBattery(msg.Payload); err == nil {
			c.mu.Lock()
			c.battery = level
			c.mu.Unlock()
		}
	case MsgTypeRotation:
		r, err := DecodeRotation(msg.Payload)
		if err != nil {
			c.log.Warn("bad rotation frame", "err", err)
			break
		}
		rotations = r
	}

	c.mu.RLock()
	onMsg, onRot := c.onMessage, c.onRotation
	c.mu.RUnlock()

	if onMsg != nil {
		onMsg(msg)
	}
	if onRot != nil && len(rotations) > 0 {
		onRot(rotations)
	}
}
