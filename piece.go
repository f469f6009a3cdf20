package twisty

import "github.com/go-gl/mathgl/mgl64"

// StickerID identifies a sticker for the lifetime of a cube. IDs are
// assigned once at construction, 0 through 53.
type StickerID int

// NoSticker is returned by pickers when a press lands on the background.
const NoSticker StickerID = -1

// Sticker is one colored square glued to one side of a piece.
type Sticker struct {
	id    StickerID
	color Color
	piece *Piece

	home       Point // facing in the solved state
	facing     Point // fixed facing, a signed unit vector
	liveFacing mgl64.Vec3
	livePos    mgl64.Vec3
}

// ID returns the sticker's stable identifier.
func (s *Sticker) ID() StickerID { return s.id }

// Color returns the sticker color.
func (s *Sticker) Color() Color { return s.color }

// Piece returns the owning piece.
func (s *Sticker) Piece() *Piece { return s.piece }

// Position returns the locked lattice position (that of the owning piece).
func (s *Sticker) Position() Point { return s.piece.fixed }

// Facing returns the locked outward facing.
func (s *Sticker) Facing() Point { return s.facing }

// Face returns the cube face the sticker currently lies on.
func (s *Sticker) Face() Face {
	d, _ := s.facing.Direction()
	return d.Face()
}

// LiveFacing returns the interpolated facing used for rendering.
func (s *Sticker) LiveFacing() mgl64.Vec3 { return s.liveFacing }

// LivePosition returns the interpolated position used for rendering.
func (s *Sticker) LivePosition() mgl64.Vec3 { return s.livePos }

// Piece is one of the 26 visible cubies.
type Piece struct {
	id       int
	home     Point
	fixed    Point
	orient   mgl64.Mat3 // locked orientation, exact quarter-turn product
	live     mgl64.Vec3
	liveRot  mgl64.Mat3
	stickers []*Sticker

	animating bool
	animAxis  Axis
	animDir   int
	animAngle float64
	settled   bool // locked during the latest advance
}

// newPiece creates the piece at p with one sticker per outward coordinate.
// Stickers are colored by the face they start on.
func newPiece(id int, p Point, nextSticker *StickerID) *Piece {
	pc := &Piece{
		id:      id,
		home:    p,
		fixed:   p,
		orient:  mgl64.Ident3(),
		live:    p.Vec3(),
		liveRot: mgl64.Ident3(),
	}
	for axis := AxisX; axis <= AxisZ; axis++ {
		if p[axis] == 0 {
			continue
		}
		d := Direction{Axis: axis, Sign: p[axis]}
		facing := d.Point()
		pc.stickers = append(pc.stickers, &Sticker{
			id:         *nextSticker,
			color:      d.Face().SolvedColor(),
			piece:      pc,
			home:       facing,
			facing:     facing,
			liveFacing: facing.Vec3(),
			livePos:    p.Vec3(),
		})
		*nextSticker++
	}
	return pc
}

// reset returns the piece to its solved position and orientation.
func (p *Piece) reset() {
	p.fixed = p.home
	p.orient = mgl64.Ident3()
	p.live = p.home.Vec3()
	p.liveRot = p.orient
	p.animating = false
	p.animAngle = 0
	p.animDir = 0
	p.settled = false
	for _, s := range p.stickers {
		s.facing = s.home
		s.liveFacing = s.home.Vec3()
		s.livePos = p.live
	}
}

// ID returns the piece's stable index, 0 through 25.
func (p *Piece) ID() int { return p.id }

// Position returns the locked lattice position.
func (p *Piece) Position() Point { return p.fixed }

// Home returns the position the piece occupies in the solved state.
func (p *Piece) Home() Point { return p.home }

// Orientation returns the locked orientation relative to the solved state.
func (p *Piece) Orientation() mgl64.Mat3 { return p.orient }

// LivePosition returns the interpolated position used for rendering.
func (p *Piece) LivePosition() mgl64.Vec3 { return p.live }

// LiveOrientation returns the interpolated orientation used for rendering.
func (p *Piece) LiveOrientation() mgl64.Mat3 { return p.liveRot }

// Stickers returns the piece's stickers: three for corners, two for edges
// and one for centers.
func (p *Piece) Stickers() []*Sticker { return p.stickers }

// Animating reports whether the piece belongs to the move in flight.
func (p *Piece) Animating() bool { return p.animating }

// Settled reports whether the piece locked during the latest frame. Its
// live fields then hold the exact locked pose.
func (p *Piece) Settled() bool { return p.settled }

// Angle returns the angle swept so far by the move in flight.
func (p *Piece) Angle() float64 { return p.animAngle }

// begin marks the piece as part of a quarter turn about axis.
func (p *Piece) begin(axis Axis, dir int) {
	p.animating = true
	p.animAxis = axis
	p.animDir = dir
	p.animAngle = 0
}

// step advances the live transform by theta radians in the piece's
// animation direction.
func (p *Piece) step(theta float64) {
	r := Rotation(p.animAxis, float64(p.animDir)*theta)
	p.live = r.Mul3x1(p.live)
	p.liveRot = r.Mul3(p.liveRot)
	for _, s := range p.stickers {
		s.livePos = r.Mul3x1(s.livePos)
		s.liveFacing = r.Mul3x1(s.liveFacing)
	}
	p.animAngle += theta
}

// lock commits the exact quarter turn to the fixed state and snaps the live
// fields back onto it.
func (p *Piece) lock() {
	p.turn(p.animAxis, p.animDir)
	p.animating = false
	p.settled = true
	p.animAngle = 0
	p.animDir = 0
}

// turn applies one exact quarter turn to the fixed state and resets the
// live fields to match.
func (p *Piece) turn(axis Axis, dir int) {
	r := Rotation(axis, float64(dir)*QuarterTurn)
	p.fixed = RoundPoint(r.Mul3x1(p.fixed.Vec3()))
	p.orient = roundMat3(r.Mul3(p.orient))
	p.live = p.fixed.Vec3()
	p.liveRot = p.orient
	for _, s := range p.stickers {
		s.facing = RoundPoint(r.Mul3x1(s.facing.Vec3()))
		s.liveFacing = s.facing.Vec3()
		s.livePos = p.live
	}
}
