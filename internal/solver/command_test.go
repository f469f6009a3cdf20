package solver

import (
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/SeamusWaldron/twisty"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		line   string
		name   string
		args   int
		format Format
	}{
		{"kociemba", "kociemba", 0, FormatKociemba},
		{"python3 solve.py --kociemba", "python3", 2, FormatKociemba},
		{"  ./mysolver  -q ", "./mysolver", 1, FormatColors},
	}
	for _, tt := range tests {
		c, err := Parse(tt.line)
		if err != nil {
			t.Fatal(err)
		}
		if c.Name != tt.name || len(c.Args) != tt.args || c.Format != tt.format {
			t.Errorf("Parse(%q) = %+v", tt.line, c)
		}
	}
	if _, err := Parse("   "); err != ErrEmptyCommand {
		t.Errorf("Parse(blank) = %v", err)
	}
}

func TestCommandPassesState(t *testing.T) {
	requireShell(t)
	c := stateAfter(t, "R")

	// $0 is the state argument under sh -c.
	cmd := &Command{Name: "sh", Args: []string{"-c", `echo "$0"`}}
	got, err := cmd.Solve(c)
	if err != nil {
		t.Fatal(err)
	}
	if got != c {
		t.Errorf("solver saw %q, want %q", got, c)
	}

	cmd.Format = FormatKociemba
	got, err = cmd.Solve(c)
	if err != nil {
		t.Fatal(err)
	}
	if want := "UUFUUFUUFRRRRRRRRRFFDFFDFFDDDBDDBDDBLLLLLLLLLUBBUBBUBB"; got != want {
		t.Errorf("kociemba argument = %q, want %q", got, want)
	}
}

func TestCommandDrivesEngine(t *testing.T) {
	requireShell(t)
	e := twisty.NewEngine(twisty.WithSolver(&Command{Name: "sh", Args: []string{"-c", `echo "R'"`}}))
	_ = e.Enqueue("R")
	_ = e.Solve()
	for i := 0; e.Busy() && i < 1000; i++ {
		e.Tick(time.Second)
	}
	if s, _ := e.Serialize(); s != twisty.SolvedState {
		t.Errorf("engine state %s", s)
	}
}

func TestCommandFailure(t *testing.T) {
	requireShell(t)
	cmd := &Command{Name: "sh", Args: []string{"-c", "echo unsolvable >&2; exit 3"}}
	_, err := cmd.Solve(twisty.SolvedState)
	if err == nil || !strings.Contains(err.Error(), "unsolvable") {
		t.Errorf("err = %v", err)
	}

	bad := &Command{Name: "sh", Format: FormatKociemba}
	if _, err := bad.Solve("nope"); err == nil {
		t.Error("invalid state should fail before running")
	}
}

// stateAfter returns the serialization of a cube after notation.
func stateAfter(t *testing.T, notation string) string {
	t.Helper()
	c := twisty.NewCube()
	if err := c.ApplyNotation(notation); err != nil {
		t.Fatal(err)
	}
	return c.Serialize()
}
