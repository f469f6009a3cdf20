package protocol

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SeamusWaldron/twisty"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}
	return v
}

func TestDecodeInbound(t *testing.T) {
	v := newValidator(t)
	tests := []struct {
		raw  string
		want any
	}{
		{`{"type":"MOVE","token":"R'"}`, &MoveMsg{Type: TypeMove, Token: "R'"}},
		{`{"type":"MOVE","token":"nonsense"}`, &MoveMsg{Type: TypeMove, Token: "nonsense"}},
		{`{"type":"SOLVE"}`, &SolveMsg{Type: TypeSolve}},
		{`{"type":"RESET"}`, &ResetMsg{Type: TypeReset}},
	}
	for _, tt := range tests {
		got, err := v.DecodeInbound([]byte(tt.raw))
		if err != nil {
			t.Errorf("DecodeInbound(%s): %v", tt.raw, err)
			continue
		}
		gb, _ := json.Marshal(got)
		wb, _ := json.Marshal(tt.want)
		if string(gb) != string(wb) {
			t.Errorf("DecodeInbound(%s) = %s, want %s", tt.raw, gb, wb)
		}
	}
}

func TestDecodeInboundRejects(t *testing.T) {
	v := newValidator(t)
	tests := []struct {
		raw  string
		want error
	}{
		{`{"type":"FLY"}`, ErrUnknownType},
		{`{"type":"FRAME","seq":1,"pieces":[]}`, ErrUnknownType},
		{`{"type":"MOVE"}`, ErrInvalid},
		{`{"type":"MOVE","token":""}`, ErrInvalid},
		{`{"type":"MOVE","token":"R","extra":1}`, ErrInvalid},
		{`{"type":"GESTURE","delta":[0.1],"camera":[3,4,7]}`, ErrInvalid},
		{`{"type":"GESTURE","sticker":54,"delta":[0.1,0],"camera":[3,4,7]}`, ErrInvalid},
		{`not json`, ErrInvalid},
	}
	for _, tt := range tests {
		if _, err := v.DecodeInbound([]byte(tt.raw)); !errors.Is(err, tt.want) {
			t.Errorf("DecodeInbound(%s) error = %v, want %v", tt.raw, err, tt.want)
		}
	}
}

func TestGestureDragInput(t *testing.T) {
	v := newValidator(t)
	c := twisty.NewCube()
	front := c.StickerAt(twisty.Point{0, 0, 1}, twisty.Direction{Axis: twisty.AxisZ, Sign: 1})

	raw, _ := json.Marshal(map[string]any{
		"type":    TypeGesture,
		"sticker": int(front.ID()),
		"delta":   []float64{0.2, 0},
		"camera":  []float64{3, 4, 7},
	})
	msg, err := v.DecodeInbound(raw)
	if err != nil {
		t.Fatal(err)
	}
	in, err := msg.(*GestureMsg).DragInput(c)
	if err != nil {
		t.Fatal(err)
	}
	if !in.Hit || in.Position != (twisty.Point{0, 0, 1}) || in.Facing != (twisty.Point{0, 0, 1}) {
		t.Errorf("DragInput = %+v", in)
	}
	m, err := twisty.ResolveDrag(in, twisty.DefaultGestureTolerance)
	if err != nil || m != twisty.E {
		t.Errorf("ResolveDrag = %v, %v; want E", m, err)
	}

	bg := GestureMsg{Type: TypeGesture, Delta: [2]float64{0.3, 0}, Camera: [3]float64{3, 4, 7}}
	in, err = bg.DragInput(c)
	if err != nil || in.Hit {
		t.Errorf("background gesture = %+v, %v", in, err)
	}
}

func TestOutboundMatchesSchemas(t *testing.T) {
	v := newValidator(t)
	c := twisty.NewCube()
	e := twisty.NewEngine()
	_ = e.Enqueue("R")
	e.Tick(16 * time.Millisecond)

	frame := NewFrame(7, "R", e.Cube())
	if len(frame.Pieces) != 9 || len(frame.Stickers) != 21 {
		t.Errorf("frame has %d pieces, %d stickers; want 9 and 21", len(frame.Pieces), len(frame.Stickers))
	}
	raw, _ := json.Marshal(frame)
	if err := v.Validate(TypeFrame, raw); err != nil {
		t.Errorf("frame: %v", err)
	}

	state := StateMsg{Type: TypeState, Seq: 8, State: c.Serialize(), Move: "R", Phase: "solved"}
	raw, _ = json.Marshal(state)
	if err := v.Validate(TypeState, raw); err != nil {
		t.Errorf("state: %v", err)
	}

	raw, _ = json.Marshal(StateMsg{Type: TypeState, State: "nope"})
	if err := v.Validate(TypeState, raw); !errors.Is(err, ErrInvalid) {
		t.Errorf("bad state validated: %v", err)
	}

	w := NewWelcome(c)
	if len(w.Stickers) != 54 || w.State != twisty.SolvedState {
		t.Errorf("welcome = %d stickers, state %s", len(w.Stickers), w.State)
	}
}

// framesFor plays token at 60 Hz and returns every frame the engine emits.
func framesFor(t *testing.T, token string) []FrameMsg {
	t.Helper()
	e := twisty.NewEngine()
	var frames []FrameMsg
	e.OnFrame(func(c *twisty.Cube) {
		m, _ := e.Current()
		frames = append(frames, NewFrame(uint64(len(frames)), m.Notation(), c))
	})
	if err := e.Enqueue(token); err != nil {
		t.Fatal(err)
	}
	for i := 0; e.Busy(); i++ {
		if i > 1000 {
			t.Fatalf("%s never settled", token)
		}
		e.Tick(time.Second / 60)
	}
	return frames
}

// atPose reports whether every piece of f sits exactly where it is in want.
func atPose(f FrameMsg, want *twisty.Cube) bool {
	if len(f.Pieces) == 0 {
		return false
	}
	for _, pf := range f.Pieces {
		p := want.Pieces()[pf.ID]
		if !pf.Pos.ApproxEqual(p.Position().Vec3()) || !pf.Rot.ApproxEqual(p.Orientation()) {
			return false
		}
	}
	return true
}

func TestFrameCarriesLockedPose(t *testing.T) {
	tests := []struct {
		token    string
		quarters []twisty.Move
	}{
		{"R", []twisty.Move{twisty.R}},
		{"M'", []twisty.Move{twisty.MustParseMove("M'")}},
		{"U2", []twisty.Move{twisty.U, twisty.U}},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			frames := framesFor(t, tt.token)
			last := frames[len(frames)-1]
			if last.Move != tt.token {
				t.Errorf("last frame move = %q, want %q", last.Move, tt.token)
			}
			if len(last.Pieces) != 9 {
				t.Fatalf("last frame has %d pieces, want 9", len(last.Pieces))
			}
			if len(last.Stickers) == 0 {
				t.Errorf("last frame has no sticker facings")
			}

			// Every quarter, doubles included, ends on a frame showing the
			// locked pose.
			want := twisty.NewCube()
			next := 0
			for _, q := range tt.quarters {
				if err := want.Apply(q); err != nil {
					t.Fatal(err)
				}
				for next < len(frames) && !atPose(frames[next], want) {
					next++
				}
				if next == len(frames) {
					t.Fatalf("no frame shows the pose after %s", q.Notation())
				}
				next++
			}
		})
	}
}
