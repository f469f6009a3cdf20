package twisty

// Color represents a sticker color. Colors never change over the life of a
// sticker; only its position and facing do.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Red    Color = 2 // Front face when solved
	Orange Color = 3 // Back face when solved
	Blue   Color = 4 // Right face when solved
	Green  Color = 5 // Left face when solved
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Red:
		return "R"
	case Orange:
		return "O"
	case Blue:
		return "B"
	case Green:
		return "G"
	default:
		return "?"
	}
}

// Name returns the full color name.
func (c Color) Name() string {
	switch c {
	case White:
		return "white"
	case Yellow:
		return "yellow"
	case Red:
		return "red"
	case Orange:
		return "orange"
	case Blue:
		return "blue"
	case Green:
		return "green"
	default:
		return "unknown"
	}
}

// ParseColor maps a facelet letter back to its color.
func ParseColor(b byte) (Color, bool) {
	switch b {
	case 'W':
		return White, true
	case 'Y':
		return Yellow, true
	case 'R':
		return Red, true
	case 'O':
		return Orange, true
	case 'B':
		return Blue, true
	case 'G':
		return Green, true
	default:
		return 0, false
	}
}

// Face identifies one side of the cube in facelet order.
// This is distinct from Layer which is used for move notation.
type Face int

const (
	FaceU Face = 0 // Up (+y)
	FaceD Face = 1 // Down (-y)
	FaceF Face = 2 // Front (+z)
	FaceB Face = 3 // Back (-z)
	FaceR Face = 4 // Right (+x)
	FaceL Face = 5 // Left (-x)
)

// Faces lists the faces in serialization order.
var Faces = [6]Face{FaceU, FaceD, FaceF, FaceB, FaceR, FaceL}

func (f Face) String() string {
	switch f {
	case FaceU:
		return "U"
	case FaceD:
		return "D"
	case FaceF:
		return "F"
	case FaceB:
		return "B"
	case FaceR:
		return "R"
	case FaceL:
		return "L"
	default:
		return "?"
	}
}

// Normal returns the outward normal of f.
func (f Face) Normal() Direction {
	return faceNormals[f]
}

// SolvedColor returns the color f shows in the solved state.
func (f Face) SolvedColor() Color {
	return Color(f)
}

var faceNormals = [6]Direction{
	FaceU: {AxisY, 1},
	FaceD: {AxisY, -1},
	FaceF: {AxisZ, 1},
	FaceB: {AxisZ, -1},
	FaceR: {AxisX, 1},
	FaceL: {AxisX, -1},
}

var faceByNormal = map[Direction]Face{
	{AxisY, 1}:  FaceU,
	{AxisY, -1}: FaceD,
	{AxisZ, 1}:  FaceF,
	{AxisZ, -1}: FaceB,
	{AxisX, 1}:  FaceR,
	{AxisX, -1}: FaceL,
}
