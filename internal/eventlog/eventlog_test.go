package eventlog

import (
	"testing"
	"time"

	"github.com/SeamusWaldron/twisty"
)

func TestWriterRotatesHourly(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "events")
	clock := time.Date(2026, 3, 1, 10, 59, 0, 0, time.UTC)
	w.now = func() time.Time { return clock }

	if err := w.Write(Event{Kind: KindDispatch, Move: "R"}); err != nil {
		t.Fatal(err)
	}
	clock = clock.Add(2 * time.Minute)
	if err := w.Write(Event{Kind: KindDispatch, Move: "U"}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	files, err := Files(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %v, want one per hour", files)
	}
	evs, err := ReadFile(files[1])
	if err != nil {
		t.Fatal(err)
	}
	if len(evs) != 1 || evs[0].Move != "U" {
		t.Errorf("second hour holds %+v", evs)
	}
}

func TestJournalRecordsEngine(t *testing.T) {
	dir := t.TempDir()
	j := Open(dir, nil)
	j.w.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	e := twisty.NewEngine()
	e.SetSolver(twisty.HistorySolver(e))
	j.Attach(e)

	_ = e.Enqueue("R")
	_ = e.Solve()
	for i := 0; e.Busy() && i < 1000; i++ {
		e.Tick(time.Second / 60)
	}

	if err := j.Close(); err != nil {
		t.Fatal(err)
	}
	files, err := Files(dir)
	if err != nil || len(files) != 1 {
		t.Fatalf("Files() = %v, %v", files, err)
	}
	evs, err := ReadFile(files[0])
	if err != nil {
		t.Fatal(err)
	}
	var kinds []string
	for _, ev := range evs {
		kinds = append(kinds, ev.Kind+":"+ev.Move)
	}
	want := []string{"dispatch:R", "lock:R", "solve_start:", "dispatch:R'", "lock:R'", "solve_end:"}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, kinds[i], want[i])
		}
	}
	if evs[4].State != twisty.SolvedState {
		t.Error("lock event should carry the locked state")
	}
	if len(evs[2].Moves) != 1 || evs[2].Moves[0] != "R'" {
		t.Errorf("solve_start moves = %v", evs[2].Moves)
	}
}

func TestWriterRestartWithinHour(t *testing.T) {
	dir := t.TempDir()
	hour := func() time.Time { return time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC) }

	// The first writer dies without Close, leaving its frame open.
	crashed := NewWriter(dir, "events")
	crashed.now = hour
	if err := crashed.Write(Event{Kind: KindDispatch, Move: "R"}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = crashed.Close() })

	restarted := NewWriter(dir, "events")
	restarted.now = hour
	if err := restarted.Write(Event{Kind: KindDispatch, Move: "U"}); err != nil {
		t.Fatal(err)
	}
	if err := restarted.Close(); err != nil {
		t.Fatal(err)
	}

	files, err := Files(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %v, want one per writer", files)
	}
	evs, err := ReadFile(files[1])
	if err != nil {
		t.Fatalf("reading the restarted writer's file: %v", err)
	}
	if len(evs) != 1 || evs[0].Move != "U" {
		t.Errorf("restarted writer's file holds %+v", evs)
	}
}
