package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/ble"
	"github.com/SeamusWaldron/twisty/internal/recorder"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Messages
type frameMsg time.Time
type rotationMsg []ble.Rotation
type deviceMsg struct {
	name    string
	battery int
}

// cubeModel drives an engine from a frame ticker and shows it as a net.
// Key presses, smart-cube rotations and replayed moves all go through the
// engine queue.
type cubeModel struct {
	title    string
	engine   *twisty.Engine
	tracker  *twisty.Tracker
	keys     twisty.KeyMap
	interval time.Duration
	last     time.Time

	// Optional sources
	rotations <-chan []ble.Rotation
	devices   <-chan deviceMsg
	readOnly  bool // replay: keys other than quit are ignored

	session *recorder.Session
	device  string
	battery int

	err      error
	quitting bool
}

func newCubeModel(title string, e *twisty.Engine, tracker *twisty.Tracker, interval time.Duration) *cubeModel {
	if tracker == nil {
		tracker = twisty.Track(e)
	}
	return &cubeModel{
		title:    title,
		engine:   e,
		tracker:  tracker,
		interval: interval,
		battery:  -1,
	}
}

func (m *cubeModel) Init() tea.Cmd {
	m.last = time.Now()
	return tea.Batch(m.frameCmd(), m.listenRotations(), m.listenDevices())
}

func (m *cubeModel) frameCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *cubeModel) listenRotations() tea.Cmd {
	if m.rotations == nil {
		return nil
	}
	return func() tea.Msg {
		return rotationMsg(<-m.rotations)
	}
}

func (m *cubeModel) listenDevices() tea.Cmd {
	if m.devices == nil {
		return nil
	}
	return func() tea.Msg {
		return <-m.devices
	}
}

func (m *cubeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())

	case frameMsg:
		now := time.Time(msg)
		m.engine.Tick(now.Sub(m.last))
		m.last = now
		return m, m.frameCmd()

	case rotationMsg:
		// Keyboard rotations may still be queued; map against the centers
		// they will leave behind.
		moves, err := ble.MovesFor(m.engine.Projected(), msg)
		if err != nil {
			m.err = err
		}
		for _, mv := range moves {
			if err := m.engine.EnqueueMove(mv); err != nil {
				m.err = err
			}
		}
		return m, m.listenRotations()

	case deviceMsg:
		if msg.name != "" {
			m.device = msg.name
		}
		if msg.battery >= 0 {
			m.battery = msg.battery
		}
		return m, m.listenDevices()
	}
	return m, nil
}

func (m *cubeModel) handleKey(key string) tea.Cmd {
	switch key {
	case "ctrl+c", "esc", "q":
		m.quitting = true
		return tea.Quit
	}
	if m.readOnly {
		return nil
	}

	m.err = nil
	switch key {
	case "backspace":
		m.engine.ClearQueue()
		return nil
	case "ctrl+r":
		if err := m.engine.Reset(); err != nil {
			m.err = err
			return nil
		}
		m.tracker.Reset()
		return nil
	}

	action, token := m.keys.Press(key)
	switch action {
	case twisty.KeyMove:
		m.err = m.engine.Enqueue(token)
	case twisty.KeySolve:
		m.err = m.engine.Solve()
	}
	return nil
}

func (m *cubeModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	if m.device != "" {
		status := fmt.Sprintf("Connected: %s", m.device)
		if m.battery >= 0 {
			status += fmt.Sprintf(" (Battery: %d%%)", m.battery)
		}
		b.WriteString(statusStyle.Render(status))
		b.WriteString("\n\n")
	}

	b.WriteString(renderNet(m.engine.Cube().Facelets()))
	b.WriteString("\n")

	state := m.engine.State().String()
	if mv, ok := m.engine.Current(); ok {
		state = fmt.Sprintf("%s %s %3.0f°", state, mv.Notation(), m.angle())
	}
	b.WriteString(fmt.Sprintf("Engine: %s   Queued: %d\n", state, m.engine.Pending()))

	if m.engine.Solving() {
		b.WriteString(phaseStyle.Render("SOLVING"))
	} else if m.tracker.IsSolved() {
		b.WriteString(phaseStyle.Render("SOLVED"))
	} else {
		b.WriteString(fmt.Sprintf("Phase: %s", phaseStyle.Render(m.tracker.CurrentPhase().DisplayName())))
	}
	b.WriteString("\n")

	if m.session != nil && m.session.State() == recorder.StateRecording {
		b.WriteString(statusStyle.Render(fmt.Sprintf("Recording %s  %d moves  %s",
			m.session.SessionID()[:8], m.session.MoveCount(), formatElapsed(m.session.ElapsedMs()))))
		b.WriteString("\n")
	}

	if hist := m.engine.History(); len(hist) > 0 {
		start := max(0, len(hist)-20)
		prefix := ""
		if start > 0 {
			prefix = "... "
		}
		b.WriteString("Moves: " + prefix + moveStyle.Render(twisty.FormatMoves(hist[start:])))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "Keys: u d f b r l m e s x y z (shift=prime, w+face=wide) | enter=solve backspace=clear ctrl+r=reset q=quit"
	if m.readOnly {
		help = "Replaying | q=quit"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")
	return b.String()
}

// angle returns the current turn angle in degrees.
func (m *cubeModel) angle() float64 {
	for _, p := range m.engine.Cube().Pieces() {
		if p.Animating() {
			return math.Abs(p.Angle()) * 180 / math.Pi
		}
	}
	return 0
}

func formatElapsed(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%d:%05.2f", mins, secs)
}
