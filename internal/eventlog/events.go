package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/SeamusWaldron/twisty"
)

// Event kinds.
const (
	KindDispatch   = "dispatch"
	KindLock       = "lock"
	KindSolveStart = "solve_start"
	KindSolveEnd   = "solve_end"
)

// Event is one line of the journal.
type Event struct {
	Time  time.Time `json:"ts"`
	Kind  string    `json:"kind"`
	Move  string    `json:"move,omitempty"`
	State string    `json:"state,omitempty"` // locked state after a lock
	Moves []string  `json:"moves,omitempty"` // solver answer
}

// Journal writes engine events to a Writer.
type Journal struct {
	w   *Writer
	log *slog.Logger
}

// Open creates a journal writing "events-<hour>-<seq>.jsonl.zst" files under dir.
func Open(dir string, log *slog.Logger) *Journal {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Journal{w: NewWriter(dir, "events"), log: log}
}

func (j *Journal) Close() error { return j.w.Close() }

func (j *Journal) write(ev Event) {
	ev.Time = j.w.now().UTC()
	if err := j.w.Write(ev); err != nil {
		j.log.Warn("event log write failed", "kind", ev.Kind, "error", err)
	}
}

// Attach journals every dispatch, lock and solution boundary of e.
func (j *Journal) Attach(e *twisty.Engine) {
	e.OnDispatch(func(m twisty.Move) {
		j.write(Event{Kind: KindDispatch, Move: m.Notation()})
	})
	e.OnLock(func(m twisty.Move) {
		j.write(Event{Kind: KindLock, Move: m.Notation(), State: e.Cube().Serialize()})
	})
	e.OnSolveStart(func(solution []twisty.Move) {
		moves := make([]string, len(solution))
		for i, m := range solution {
			moves[i] = m.Notation()
		}
		j.write(Event{Kind: KindSolveStart, Moves: moves})
	})
	e.OnSolveEnd(func() {
		j.write(Event{Kind: KindSolveEnd})
	})
}

// Files lists the journal files in dir, oldest first.
func Files(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "events-*.jsonl.zst"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// ReadFile decodes every event in one journal file.
func ReadFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	var events []Event
	for line := 1; sc.Scan(); line++ {
		var ev Event
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			return events, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		events = append(events, ev)
	}
	return events, sc.Err()
}
