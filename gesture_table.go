package twisty

// ScreenAxis is the dominant on-screen direction of a drag.
type ScreenAxis int

const (
	ScreenX ScreenAxis = iota // horizontal, positive to the right
	ScreenY                   // vertical, positive upward
)

func (a ScreenAxis) String() string {
	if a == ScreenX {
		return "screen-x"
	}
	return "screen-y"
}

// gestureGroup selects the rule pair for one view. top is only meaningful
// when the camera looks along y; it is AxisY otherwise.
type gestureGroup struct {
	view   Axis
	top    Axis
	chosen ScreenAxis
}

// gestureRule turns a pressed sticker into a layer move.
//
// The layer is picked by the sticker's position along plane; its direction
// is coef times the drag sign, times the sticker's facing component along
// facing when useFacing, times the view sign when useView, times the top
// sign when useTop.
type gestureRule struct {
	plane     Axis
	layers    [3]Layer // indexed by position+1
	coef      [3]int
	facing    Axis
	useFacing bool
	useView   bool
	useTop    bool
}

// gesturePair holds the rule for stickers facing along probe and the rule
// for every other sticker.
type gesturePair struct {
	probe    Axis
	onProbe  gestureRule
	offProbe gestureRule
}

var (
	layersBSF = [3]Layer{LayerB, LayerS, LayerF}
	layersDEU = [3]Layer{LayerD, LayerE, LayerU}
	layersLMR = [3]Layer{LayerL, LayerM, LayerR}

	// Horizontal drags on a side face always turn a horizontal layer.
	ruleDEU = gestureRule{plane: AxisY, layers: layersDEU, coef: [3]int{1, 1, -1}}
)

var gestureTable = map[gestureGroup]gesturePair{
	{AxisZ, AxisY, ScreenX}: {
		probe:    AxisY,
		onProbe:  gestureRule{plane: AxisZ, layers: layersBSF, coef: [3]int{-1, 1, 1}, facing: AxisY, useFacing: true, useView: true},
		offProbe: ruleDEU,
	},
	{AxisZ, AxisY, ScreenY}: {
		probe:    AxisX,
		onProbe:  gestureRule{plane: AxisZ, layers: layersBSF, coef: [3]int{1, -1, -1}, facing: AxisX, useFacing: true},
		offProbe: gestureRule{plane: AxisX, layers: layersLMR, coef: [3]int{-1, -1, 1}, useView: true},
	},
	{AxisX, AxisY, ScreenX}: {
		probe:    AxisY,
		onProbe:  gestureRule{plane: AxisX, layers: layersLMR, coef: [3]int{-1, -1, 1}, facing: AxisY, useFacing: true, useView: true},
		offProbe: ruleDEU,
	},
	{AxisX, AxisY, ScreenY}: {
		probe:    AxisZ,
		onProbe:  gestureRule{plane: AxisX, layers: layersLMR, coef: [3]int{-1, -1, 1}, facing: AxisZ, useFacing: true},
		offProbe: gestureRule{plane: AxisZ, layers: layersBSF, coef: [3]int{1, -1, -1}, useView: true},
	},
	{AxisY, AxisZ, ScreenX}: {
		probe:    AxisY,
		onProbe:  gestureRule{plane: AxisZ, layers: layersBSF, coef: [3]int{1, -1, -1}, facing: AxisY, useFacing: true, useView: true, useTop: true},
		offProbe: ruleDEU,
	},
	{AxisY, AxisX, ScreenX}: {
		probe:    AxisY,
		onProbe:  gestureRule{plane: AxisX, layers: layersLMR, coef: [3]int{1, 1, -1}, facing: AxisY, useFacing: true, useView: true, useTop: true},
		offProbe: ruleDEU,
	},
	{AxisY, AxisZ, ScreenY}: {
		probe:    AxisX,
		onProbe:  gestureRule{plane: AxisZ, layers: layersBSF, coef: [3]int{1, -1, -1}, facing: AxisX, useFacing: true},
		offProbe: gestureRule{plane: AxisX, layers: layersLMR, coef: [3]int{1, 1, -1}, useView: true, useTop: true},
	},
	{AxisY, AxisX, ScreenY}: {
		probe:    AxisZ,
		onProbe:  gestureRule{plane: AxisX, layers: layersLMR, coef: [3]int{-1, -1, 1}, facing: AxisZ, useFacing: true},
		offProbe: gestureRule{plane: AxisZ, layers: layersBSF, coef: [3]int{-1, 1, 1}, useView: true, useTop: true},
	},
}
