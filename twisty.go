// Package twisty models a 3x3x3 twisty puzzle as 26 rigid pieces and drives
// it with animated quarter-turn moves.
//
// The package covers the kinematics core: rotation matrices for the three
// cardinal axes, the piece and sticker model, the 48-token move notation,
// a frame-driven animation engine with a FIFO move queue, a gesture
// resolver that turns a screen drag into one move token, and the 54-facelet
// state serializer consumed by external solvers.
//
// Quick start:
//
//	e := twisty.NewEngine(twisty.WithAnimSpeed(12.5))
//	e.OnLock(func(m twisty.Move) {
//	    fmt.Println("locked", m)
//	})
//	e.EnqueueNotation("R U R' U'")
//	for e.Busy() {
//	    e.Tick(time.Second / 60)
//	}
//	fmt.Println(e.Cube().Serialize())
package twisty
