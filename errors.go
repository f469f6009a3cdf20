package twisty

import "errors"

// Sentinel errors for the twisty package.
var (
	// Parsing errors
	ErrInvalidNotation = errors.New("twisty: invalid move notation")
	ErrInvalidFacelets = errors.New("twisty: invalid facelet string")

	// Engine errors
	ErrAnimating = errors.New("twisty: move in flight")
	ErrSolving   = errors.New("twisty: solution playback in progress")
	ErrNoSolver  = errors.New("twisty: no solver configured")

	// Gesture errors
	ErrNoGesture        = errors.New("twisty: drag below tolerance")
	ErrGestureAmbiguous = errors.New("twisty: gesture has no unique move")

	// State errors
	ErrInvalidState = errors.New("twisty: cube state violates lattice invariant")
)
