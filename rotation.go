package twisty

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis is one of the three cardinal axes of the cube lattice.
type Axis int

const (
	AxisX Axis = 0
	AxisY Axis = 1
	AxisZ Axis = 2
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Unit returns the positive unit vector along a.
func (a Axis) Unit() mgl64.Vec3 {
	var v mgl64.Vec3
	v[a] = 1
	return v
}

// QuarterTurn is the angle of a single quarter turn in radians.
const QuarterTurn = math.Pi / 2

// Rotation returns the right-hand rotation matrix about axis for theta
// radians. It is defined for every real theta.
func Rotation(axis Axis, theta float64) mgl64.Mat3 {
	switch axis {
	case AxisX:
		return mgl64.Rotate3DX(theta)
	case AxisY:
		return mgl64.Rotate3DY(theta)
	case AxisZ:
		return mgl64.Rotate3DZ(theta)
	default:
		return mgl64.Ident3()
	}
}

// Point is an integer lattice coordinate. Piece positions live in
// {-1,0,1}^3 minus the origin; sticker facings are signed unit vectors.
type Point [3]int

// Vec3 converts p to a float vector.
func (p Point) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
}

// Rotate applies dir quarter turns about axis and rounds the result back
// onto the lattice.
func (p Point) Rotate(axis Axis, dir int) Point {
	return RoundPoint(Rotation(axis, float64(dir)*QuarterTurn).Mul3x1(p.Vec3()))
}

// IsZero reports whether p is the origin.
func (p Point) IsZero() bool {
	return p == Point{}
}

// Direction returns the signed axis p points along when p is a unit vector.
func (p Point) Direction() (Direction, bool) {
	for _, d := range Directions {
		if d.Point() == p {
			return d, true
		}
	}
	return Direction{}, false
}

// RoundPoint rounds every component of v to the nearest integer.
func RoundPoint(v mgl64.Vec3) Point {
	return Point{int(math.Round(v[0])), int(math.Round(v[1])), int(math.Round(v[2]))}
}

// roundMat3 snaps a product of quarter-turn matrices back to exact
// signed permutation entries.
func roundMat3(m mgl64.Mat3) mgl64.Mat3 {
	for i := range m {
		m[i] = math.Round(m[i])
		if m[i] == 0 {
			m[i] = 0 // clear negative zero
		}
	}
	return m
}

// Direction is a signed cardinal axis. The six directions double as face
// normals.
type Direction struct {
	Axis Axis
	Sign int // +1 or -1
}

// Directions lists the six face normals in the order x, y, z, -x, -y, -z.
// Ties in nearest-direction searches resolve to the earliest entry.
var Directions = [6]Direction{
	{AxisX, 1}, {AxisY, 1}, {AxisZ, 1},
	{AxisX, -1}, {AxisY, -1}, {AxisZ, -1},
}

// Point returns the unit lattice vector for d.
func (d Direction) Point() Point {
	var p Point
	p[d.Axis] = d.Sign
	return p
}

// Vec3 returns the unit vector for d.
func (d Direction) Vec3() mgl64.Vec3 {
	return d.Point().Vec3()
}

func (d Direction) String() string {
	if d.Sign < 0 {
		return "-" + d.Axis.String()
	}
	return "+" + d.Axis.String()
}

// Face returns the face whose outward normal is d.
func (d Direction) Face() Face {
	return faceByNormal[d]
}

// Closest returns the direction whose unit point lies nearest to v.
func Closest(v mgl64.Vec3) Direction {
	best := Directions[0]
	bestDist := math.Inf(1)
	for _, d := range Directions {
		dist := d.Vec3().Sub(v).Len()
		if dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
