package ble

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// GoCube BLE service and characteristic UUIDs.
const (
	ServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	TxCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // notify
	RxCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // write
)

// Message types sent by the cube.
const (
	MsgTypeRotation     byte = 0x01
	MsgTypeState        byte = 0x02
	MsgTypeOrientation  byte = 0x03
	MsgTypeBattery      byte = 0x05
	MsgTypeOfflineStats byte = 0x07
	MsgTypeCubeType     byte = 0x08
)

// Commands written to the RX characteristic.
const (
	CmdRequestBattery       byte = 0x32
	CmdRequestState         byte = 0x33
	CmdReboot               byte = 0x34
	CmdResetSolved          byte = 0x35
	CmdDisableOrientation   byte = 0x37
	CmdEnableOrientation    byte = 0x38
	CmdRequestOfflineStats  byte = 0x39
	CmdFlashBacklight       byte = 0x41
	CmdToggleAnimatedBL     byte = 0x42
	CmdSlowFlashBacklight   byte = 0x43
	CmdToggleBacklight      byte = 0x44
	CmdRequestCubeType      byte = 0x56
	CmdCalibrateOrientation byte = 0x57
)

const (
	framePrefix byte = 0x2A // '*'
	frameCR     byte = 0x0D
	frameLF     byte = 0x0A
)

var (
	ErrInvalidPrefix   = errors.New("ble: invalid frame prefix")
	ErrInvalidSuffix   = errors.New("ble: invalid frame suffix")
	ErrInvalidChecksum = errors.New("ble: invalid checksum")
	ErrFrameTooShort   = errors.New("ble: frame too short")
	ErrInvalidLength   = errors.New("ble: invalid frame length")
)

// Message is one decoded notification frame.
type Message struct {
	Type      byte
	Payload   []byte
	RawBase64 string // the whole frame, for logging
}

// Parse decodes a notification frame:
//
//	0x2A len type payload... checksum 0x0D 0x0A
//
// len counts every byte after itself. checksum is the byte sum of
// everything before it, modulo 256.
func Parse(data []byte) (*Message, error) {
	if len(data) < 6 {
		return nil, ErrFrameTooShort
	}
	if data[0] != framePrefix {
		return nil, ErrInvalidPrefix
	}

	length := int(data[1])
	total := 2 + length
	if length < 4 || len(data) < total {
		return nil, fmt.Errorf("%w: length byte %d, frame %d bytes", ErrInvalidLength, length, len(data))
	}

	sumIdx := total - 3
	if data[sumIdx+1] != frameCR || data[sumIdx+2] != frameLF {
		return nil, ErrInvalidSuffix
	}
	if sum := checksum(data[:sumIdx]); sum != data[sumIdx] {
		return nil, fmt.Errorf("%w: frame says 0x%02X, computed 0x%02X", ErrInvalidChecksum, data[sumIdx], sum)
	}

	return &Message{
		Type:      data[2],
		Payload:   data[3:sumIdx],
		RawBase64: base64.StdEncoding.EncodeToString(data[:total]),
	}, nil
}

// Encode builds a notification frame, the inverse of Parse.
func Encode(msgType byte, payload []byte) []byte {
	frame := make([]byte, 0, len(payload)+6)
	frame = append(frame, framePrefix, byte(len(payload)+4), msgType)
	frame = append(frame, payload...)
	frame = append(frame, checksum(frame), frameCR, frameLF)
	return frame
}

// BuildCommand creates a payload-free command frame for the cube. The cube
// expects a length byte of 1 here.
func BuildCommand(cmd byte) []byte {
	const length byte = 0x01
	return []byte{framePrefix, length, cmd, framePrefix + length + cmd, frameCR, frameLF}
}

func checksum(b []byte) byte {
	var sum byte
	for _, v := range b {
		sum += v
	}
	return sum
}

// MessageTypeName returns a short name for a message type.
func MessageTypeName(msgType byte) string {
	switch msgType {
	case MsgTypeRotation:
		return "rotation"
	case MsgTypeState:
		return "state"
	case MsgTypeOrientation:
		return "orientation"
	case MsgTypeBattery:
		return "battery"
	case MsgTypeOfflineStats:
		return "offline_stats"
	case MsgTypeCubeType:
		return "cube_type"
	default:
		return fmt.Sprintf("unknown_0x%02X", msgType)
	}
}
