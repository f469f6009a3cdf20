package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/twisty"
)

// stickerHalf is half the edge of a sticker quad. Quads tile each face
// without gaps.
const stickerHalf = 0.5

// RayPicker hit-tests screen points against the locked sticker quads of a
// cube. It implements twisty.Picker.
type RayPicker struct {
	cube   *twisty.Cube
	camera *PerspectiveCamera
}

func NewRayPicker(cube *twisty.Cube, camera *PerspectiveCamera) *RayPicker {
	return &RayPicker{cube: cube, camera: camera}
}

// Pick returns the nearest sticker under an NDC point.
func (p *RayPicker) Pick(ndc mgl64.Vec2) (twisty.StickerID, bool) {
	origin, dir, err := p.camera.Ray(ndc)
	if err != nil {
		return twisty.NoSticker, false
	}

	best, bestT := twisty.NoSticker, math.Inf(1)
	for _, s := range p.cube.Stickers() {
		n := s.Facing().Vec3()
		denom := dir.Dot(n)
		if denom >= 0 {
			continue // facing away
		}
		center := s.Position().Vec3().Add(n.Mul(0.5))
		t := center.Sub(origin).Dot(n) / denom
		if t <= 0 || t >= bestT {
			continue
		}
		hit := origin.Add(dir.Mul(t)).Sub(center)
		inside := true
		for axis := 0; axis < 3; axis++ {
			if n[axis] == 0 && math.Abs(hit[axis]) > stickerHalf {
				inside = false
				break
			}
		}
		if inside {
			best, bestT = s.ID(), t
		}
	}
	return best, best != twisty.NoSticker
}
