package protocol

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/twisty"
)

// MOVE (client -> server). Token is passed to the engine unparsed.
type MoveMsg struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// SOLVE (client -> server)
type SolveMsg struct {
	Type string `json:"type"`
}

// RESET (client -> server)
type ResetMsg struct {
	Type string `json:"type"`
}

// GESTURE (client -> server). The client does its own picking and
// projection; Sticker is -1 or absent for drags that began off the cube.
type GestureMsg struct {
	Type    string     `json:"type"`
	Sticker *int       `json:"sticker,omitempty"`
	Delta   [2]float64 `json:"delta"`
	Camera  [3]float64 `json:"camera"`
	PressX  float64    `json:"press_x,omitempty"`
	CutoffX float64    `json:"cutoff_x,omitempty"`
}

// DragInput resolves the gesture against the locked state of c.
func (m GestureMsg) DragInput(c *twisty.Cube) (twisty.DragInput, error) {
	in := twisty.DragInput{
		Delta:     mgl64.Vec2(m.Delta),
		CameraPos: mgl64.Vec3(m.Camera),
		PressX:    m.PressX,
		CutoffX:   m.CutoffX,
	}
	if m.Sticker == nil || *m.Sticker < 0 {
		return in, nil
	}
	s := c.Sticker(twisty.StickerID(*m.Sticker))
	if s == nil {
		return in, fmt.Errorf("unknown sticker %d", *m.Sticker)
	}
	in.Hit = true
	in.Position = s.Position()
	in.Facing = s.Facing()
	return in, nil
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	State           string      `json:"state"`
	Stickers        []StickerAt `json:"stickers"`
}

// StickerAt describes a sticker's fixed identity and its current slot.
type StickerAt struct {
	ID       int    `json:"id"`
	Piece    int    `json:"piece"`
	Color    string `json:"color"`
	Position [3]int `json:"position"`
	Facing   [3]int `json:"facing"`
}

// NewWelcome describes every sticker of a locked cube.
func NewWelcome(c *twisty.Cube) WelcomeMsg {
	stickers := make([]StickerAt, 0, len(c.Stickers()))
	for _, s := range c.Stickers() {
		stickers = append(stickers, StickerAt{
			ID:       int(s.ID()),
			Piece:    s.Piece().ID(),
			Color:    s.Color().String(),
			Position: s.Position(),
			Facing:   s.Facing(),
		})
	}
	return WelcomeMsg{
		Type:            TypeWelcome,
		ProtocolVersion: Version,
		State:           c.Serialize(),
		Stickers:        stickers,
	}
}

// FRAME (server -> client). Sent for every tick that moved pieces; only
// the animating pieces and their stickers are included. On the tick a
// quarter turn locks, the frame carries the locked pieces at their final
// pose.
type FrameMsg struct {
	Type     string          `json:"type"`
	Seq      uint64          `json:"seq"`
	Move     string          `json:"move,omitempty"`
	Pieces   []PieceFrame    `json:"pieces"`
	Stickers []StickerFacing `json:"stickers,omitempty"`
}

type PieceFrame struct {
	ID  int        `json:"id"`
	Pos mgl64.Vec3 `json:"pos"`
	Rot mgl64.Mat3 `json:"rot"` // column-major
}

type StickerFacing struct {
	ID     int        `json:"id"`
	Facing mgl64.Vec3 `json:"facing"`
}

// NewFrame snapshots the live transform of every piece of c that is
// animating or locked during the latest tick.
func NewFrame(seq uint64, move string, c *twisty.Cube) FrameMsg {
	f := FrameMsg{Type: TypeFrame, Seq: seq, Move: move, Pieces: []PieceFrame{}}
	for _, p := range c.Pieces() {
		if !p.Animating() && !p.Settled() {
			continue
		}
		f.Pieces = append(f.Pieces, PieceFrame{ID: p.ID(), Pos: p.LivePosition(), Rot: p.LiveOrientation()})
		for _, s := range p.Stickers() {
			f.Stickers = append(f.Stickers, StickerFacing{ID: int(s.ID()), Facing: s.LiveFacing()})
		}
	}
	return f
}

// STATE (server -> client). Sent after every lock and on reset.
type StateMsg struct {
	Type    string `json:"type"`
	Seq     uint64 `json:"seq"`
	State   string `json:"state"`
	Move    string `json:"move,omitempty"`
	Phase   string `json:"phase,omitempty"`
	Solving bool   `json:"solving"`
}

// ERROR (server -> client)
type ErrorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	CodeBadRequest = "BAD_REQUEST"
	CodeRejected   = "REJECTED"
)

func NewError(code string, err error) ErrorMsg {
	return ErrorMsg{Type: TypeError, Code: code, Message: err.Error()}
}
