package twisty

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultGestureTolerance is the drag length, in normalized device
// coordinates, below which no move is emitted. Touch screens usually want
// a larger value such as 0.1.
const DefaultGestureTolerance = 0.015

// Camera is the view the gesture resolver reasons about. Screen points are
// normalized device coordinates: x to the right, y upward, both in [-1, 1].
// The camera is assumed to orbit the origin with world +y as its up vector.
type Camera interface {
	Position() mgl64.Vec3
	Project(world mgl64.Vec3) mgl64.Vec2
}

// Picker hit-tests a screen point against the rendered stickers.
type Picker interface {
	Pick(screen mgl64.Vec2) (StickerID, bool)
}

// DragInput is everything needed to turn one drag into a move.
type DragInput struct {
	Delta     mgl64.Vec2 // drag vector in NDC, y upward
	CameraPos mgl64.Vec3

	// Hit reports whether the press landed on a sticker; Position and
	// Facing are that sticker's locked values.
	Hit      bool
	Position Point
	Facing   Point

	// Background drags only: press x and the projected x of the corner
	// piece nearest the camera, both in NDC.
	PressX  float64
	CutoffX float64
}

// ResolveDrag maps a drag to exactly one move. Drags no longer than
// tolerance return ErrNoGesture. The result depends only on in, so equal
// inputs always resolve to the same move.
func ResolveDrag(in DragInput, tolerance float64) (Move, error) {
	if in.Delta.Len() <= tolerance {
		return Move{}, ErrNoGesture
	}
	chosen, cd := classifyDrag(in.Delta)
	if !in.Hit {
		return resolveBackground(in, chosen, cd)
	}

	view := Closest(in.CameraPos)
	group := gestureGroup{view: view.Axis, top: AxisY, chosen: chosen}
	ts := 1
	if view.Axis == AxisY {
		group.top, ts = screenTop(in.CameraPos)
	}
	pair, ok := gestureTable[group]
	if !ok {
		return Move{}, ErrGestureAmbiguous
	}

	rule := pair.offProbe
	if abs(in.Facing[pair.probe]) == 1 {
		rule = pair.onProbe
	}

	pos := in.Position[rule.plane]
	if pos < -1 || pos > 1 {
		return Move{}, ErrGestureAmbiguous
	}
	dir := rule.coef[pos+1] * cd
	if rule.useFacing {
		dir *= in.Facing[rule.facing]
	}
	if rule.useView {
		dir *= view.Sign
	}
	if rule.useTop {
		dir *= ts
	}
	return moveFromDir(rule.layers[pos+1], dir)
}

// classifyDrag picks the dominant screen axis and its sign. Exact diagonals
// count as vertical.
func classifyDrag(d mgl64.Vec2) (ScreenAxis, int) {
	if math.Abs(d[0]) > math.Abs(d[1]) {
		return ScreenX, sign(d[0])
	}
	return ScreenY, sign(d[1])
}

// screenTop returns the horizontal world axis pointing most nearly "up" on
// screen for a camera looking along y, and its sign. With world +y as the
// camera's up vector, screen-up projected onto the xz plane points away
// from the camera when looking down and toward it when looking up.
func screenTop(cam mgl64.Vec3) (Axis, int) {
	s := -float64(sign(cam[1]))
	hx, hz := s*cam[0], s*cam[2]
	if math.Abs(hz) >= math.Abs(hx) {
		return AxisZ, sign(hz)
	}
	return AxisX, sign(hx)
}

// resolveBackground maps a drag that started off the cube to a whole-cube
// rotation. Horizontal drags spin about y. Vertical drags tip the cube
// toward or away from the viewer about whichever horizontal axis belongs
// to the face under the press: the two side faces turned toward the camera
// meet at the nearest corner, whose projected x splits the screen.
func resolveBackground(in DragInput, chosen ScreenAxis, cd int) (Move, error) {
	if chosen == ScreenX {
		return moveFromDir(LayerY, -cd)
	}
	sx, sz := sign(in.CameraPos[0]), sign(in.CameraPos[2])
	zFaceLeft := sx*sz > 0
	pressLeft := in.PressX < in.CutoffX
	if pressLeft == zFaceLeft {
		return moveFromDir(LayerX, cd*sz)
	}
	return moveFromDir(LayerZ, -cd*sx)
}

// NearestCorner returns the corner piece position closest to the camera.
// Zero camera components count as positive.
func NearestCorner(cam mgl64.Vec3) Point {
	return Point{sign(cam[0]), sign(cam[1]), sign(cam[2])}
}

func moveFromDir(l Layer, dir int) (Move, error) {
	switch dir {
	case 1:
		return Move{Layer: l, Turn: CW}, nil
	case -1:
		return Move{Layer: l, Turn: CCW}, nil
	default:
		return Move{}, ErrGestureAmbiguous
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Resolver tracks one pointer drag at a time and emits at most one move
// per drag, once the pointer has moved past the tolerance.
type Resolver struct {
	cube      *Cube
	camera    Camera
	picker    Picker
	tolerance float64

	pressed bool
	spent   bool
	start   mgl64.Vec2
	sticker StickerID
	hit     bool
}

// NewResolver creates a resolver over cube. A non-positive tolerance
// selects DefaultGestureTolerance.
func NewResolver(cube *Cube, camera Camera, picker Picker, tolerance float64) *Resolver {
	if tolerance <= 0 {
		tolerance = DefaultGestureTolerance
	}
	return &Resolver{
		cube:      cube,
		camera:    camera,
		picker:    picker,
		tolerance: tolerance,
		sticker:   NoSticker,
	}
}

// Press starts a drag at screen point p.
func (r *Resolver) Press(p mgl64.Vec2) {
	r.pressed = true
	r.spent = false
	r.start = p
	r.sticker, r.hit = r.picker.Pick(p)
	if !r.hit {
		r.sticker = NoSticker
	}
}

// Drag reports the pointer at p. It returns a move the first time the drag
// exceeds the tolerance and nothing afterwards until the next Press.
func (r *Resolver) Drag(p mgl64.Vec2) (Move, bool) {
	if !r.pressed || r.spent {
		return Move{}, false
	}
	in, ok := r.input(p)
	if !ok {
		return Move{}, false
	}
	m, err := ResolveDrag(in, r.tolerance)
	if err != nil {
		return Move{}, false
	}
	r.spent = true
	return m, true
}

// Release ends the drag.
func (r *Resolver) Release() {
	r.pressed = false
	r.spent = false
	r.hit = false
	r.sticker = NoSticker
}

// PressedSticker returns the sticker under the current press, if any.
func (r *Resolver) PressedSticker() (StickerID, bool) {
	return r.sticker, r.pressed && r.hit
}

func (r *Resolver) input(p mgl64.Vec2) (DragInput, bool) {
	cam := r.camera.Position()
	in := DragInput{
		Delta:     p.Sub(r.start),
		CameraPos: cam,
		Hit:       r.hit,
		PressX:    r.start[0],
	}
	if r.hit {
		s := r.cube.Sticker(r.sticker)
		if s == nil {
			return DragInput{}, false
		}
		in.Position = s.Position()
		in.Facing = s.Facing()
		return in, true
	}
	in.CutoffX = r.camera.Project(NearestCorner(cam).Vec3())[0]
	return in, true
}
