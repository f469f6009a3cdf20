package ble

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/twisty"
)

// Rotation is one face turn reported by the cube. The face is identified
// by the color of its center.
type Rotation struct {
	Code              byte // raw face and direction code, 0x00-0x0B
	CenterOrientation byte
	Color             twisty.Color
	Clockwise         bool
}

// deviceColors is the cube's color numbering.
var deviceColors = [6]twisty.Color{
	twisty.Blue, twisty.Green, twisty.White, twisty.Yellow, twisty.Red, twisty.Orange,
}

// DecodeRotation decodes a rotation payload: pairs of face code and center
// orientation. Even codes are clockwise, odd codes counter-clockwise.
func DecodeRotation(payload []byte) ([]Rotation, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("rotation payload must have even length, got %d", len(payload))
	}

	rotations := make([]Rotation, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		code := payload[i]
		idx := int(code / 2)
		if idx >= len(deviceColors) {
			return nil, fmt.Errorf("unknown face code 0x%02X", code)
		}
		rotations = append(rotations, Rotation{
			Code:              code,
			CenterOrientation: payload[i+1],
			Color:             deviceColors[idx],
			Clockwise:         code%2 == 0,
		})
	}
	return rotations, nil
}

// MoveFor maps a rotation to a face move on c: the layer is whichever face
// currently shows the rotation's center color, so whole-cube rotations
// applied in software keep physical and virtual turns in step. When moves
// are still queued on an engine, pass Engine.Projected so the mapping sees
// the centers those moves leave behind.
func MoveFor(c *twisty.Cube, r Rotation) (twisty.Move, error) {
	for _, face := range twisty.Faces {
		n := face.Normal()
		s := c.StickerAt(n.Point(), n)
		if s == nil || s.Color() != r.Color {
			continue
		}
		turn := twisty.CCW
		if r.Clockwise {
			turn = twisty.CW
		}
		return twisty.Move{Layer: twisty.Layer(face.String()), Turn: turn}, nil
	}
	return twisty.Move{}, fmt.Errorf("no center shows %s", r.Color.Name())
}

// MovesFor maps every rotation with MoveFor.
func MovesFor(c *twisty.Cube, rotations []Rotation) ([]twisty.Move, error) {
	moves := make([]twisty.Move, 0, len(rotations))
	for _, r := range rotations {
		m, err := MoveFor(c, r)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// DecodeBattery decodes a battery payload into a percentage.
func DecodeBattery(payload []byte) (int, error) {
	if len(payload) < 1 {
		return 0, fmt.Errorf("battery payload too short")
	}
	return int(payload[0]), nil
}

// DecodeCubeType decodes a cube type payload.
func DecodeCubeType(payload []byte) (string, error) {
	if len(payload) < 1 {
		return "", fmt.Errorf("cube type payload too short")
	}
	if payload[0] == 0x01 {
		return "edge", nil
	}
	return "standard", nil
}

// Orientation is the physical attitude of the cube.
type Orientation struct {
	Quat  mgl64.Quat
	Up    twisty.Face // face pointing up
	Front twisty.Face // face toward the solver
}

// DecodeOrientation decodes an ASCII "x#y#z#w" quaternion payload. The
// last field may carry trailing bytes.
func DecodeOrientation(payload []byte) (*Orientation, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 4 {
		return nil, fmt.Errorf("orientation payload must have 4 parts, got %d", len(parts))
	}
	parts[3] = leadingNumber(parts[3])

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid orientation component %d: %w", i, err)
		}
		v[i] = f
	}

	q := mgl64.Quat{W: v[3], V: mgl64.Vec3{v[0], v[1], v[2]}}
	if q.Len() == 0 {
		return nil, fmt.Errorf("zero orientation quaternion")
	}
	q = q.Normalize()
	return &Orientation{
		Quat:  q,
		Up:    twisty.Closest(q.Rotate(mgl64.Vec3{0, 1, 0})).Face(),
		Front: twisty.Closest(q.Rotate(mgl64.Vec3{0, 0, 1})).Face(),
	}, nil
}

func leadingNumber(s string) string {
	end := 0
	for i, r := range s {
		if (r == '-' && i == 0) || r == '.' || (r >= '0' && r <= '9') {
			end = i + 1
			continue
		}
		break
	}
	return s[:end]
}

// OfflineStats are the counters the cube keeps while disconnected.
type OfflineStats struct {
	Moves   int
	Seconds int
	Solves  int
}

// DecodeOfflineStats decodes an ASCII "moves#seconds#solves" payload.
func DecodeOfflineStats(payload []byte) (*OfflineStats, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 3 {
		return nil, fmt.Errorf("offline stats payload must have 3 parts, got %d", len(parts))
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid offline stats field %d: %w", i, err)
		}
		v[i] = n
	}
	return &OfflineStats{Moves: v[0], Seconds: v[1], Solves: v[2]}, nil
}
