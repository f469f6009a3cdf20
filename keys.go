package twisty

import "strings"

// KeyMap translates keyboard input into move tokens.
//
// A lowercase letter turns that layer clockwise and the uppercase letter
// turns it counter-clockwise: r is R, R is R'. Letters u d f b r l prefixed
// with w give wide turns: wr is r, wR is r'. x y z rotate the whole cube.
// Enter requests a solution.
type KeyMap struct {
	pendingWide bool
}

// KeyAction is what a key press asks for.
type KeyAction int

const (
	KeyNone  KeyAction = iota // unmapped or waiting for the second key
	KeyMove                   // a move token
	KeySolve                  // request a solution
)

// Press feeds one key. It returns the action and, for KeyMove, the token.
func (k *KeyMap) Press(key string) (KeyAction, string) {
	if key == "enter" || key == "\r" || key == "\n" {
		k.pendingWide = false
		return KeySolve, ""
	}
	if len(key) != 1 {
		k.pendingWide = false
		return KeyNone, ""
	}
	if key == "w" && !k.pendingWide {
		k.pendingWide = true
		return KeyNone, ""
	}

	wide := k.pendingWide
	k.pendingWide = false

	lower := strings.ToLower(key)
	prime := key != lower
	switch lower {
	case "u", "d", "f", "b", "r", "l":
		if !wide {
			lower = strings.ToUpper(lower)
		}
	case "m", "e", "s":
		if wide {
			return KeyNone, ""
		}
		lower = strings.ToUpper(lower)
	case "x", "y", "z":
		if wide {
			return KeyNone, ""
		}
	default:
		return KeyNone, ""
	}
	if prime {
		return KeyMove, lower + "'"
	}
	return KeyMove, lower
}
