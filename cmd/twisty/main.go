// twisty - an animated Rubik's cube move engine with keyboard, websocket and
// GoCube input.
package main

import (
	"github.com/SeamusWaldron/twisty/internal/cli"
)

func main() {
	cli.Execute()
}
