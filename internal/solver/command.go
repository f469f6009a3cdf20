// Package solver adapts external solver programs to twisty.Solver.
package solver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/SeamusWaldron/twisty"
)

// Format selects how the cube state is passed to the solver program.
type Format int

const (
	// FormatColors passes the 54-letter color serialization.
	FormatColors Format = iota
	// FormatKociemba passes the URFDLB face-letter string.
	FormatKociemba
)

// DefaultTimeout bounds a solver run when Command.Timeout is zero.
const DefaultTimeout = 10 * time.Second

var ErrEmptyCommand = errors.New("solver: empty command")

// Command runs a program once per solve, with the state appended as the
// last argument, and reads the solution from its standard output.
type Command struct {
	Name    string
	Args    []string
	Format  Format
	Timeout time.Duration
}

// Parse builds a Command from a whitespace-separated command line such as
// "kociemba" or "python3 solve.py --kociemba". A "--kociemba" argument
// selects FormatKociemba and is passed through.
func Parse(line string) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrEmptyCommand
	}
	c := &Command{Name: fields[0], Args: fields[1:]}
	if c.Name == "kociemba" {
		c.Format = FormatKociemba
	}
	for _, a := range c.Args {
		if a == "--kociemba" {
			c.Format = FormatKociemba
		}
	}
	return c, nil
}

// Solve implements twisty.Solver.
func (c *Command) Solve(state string) (string, error) {
	arg := state
	if c.Format == FormatKociemba {
		f, err := twisty.ParseFacelets(state)
		if err != nil {
			return "", err
		}
		arg = f.Kociemba()
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	args := append(append([]string(nil), c.Args...), arg)
	cmd := exec.CommandContext(ctx, c.Name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%s: %w: %s", c.Name, err, msg)
		}
		return "", fmt.Errorf("%s: %w", c.Name, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
