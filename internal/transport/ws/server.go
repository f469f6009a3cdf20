// Package ws serves an engine to render clients over websockets: frames
// and states flow out, moves and gestures flow in.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/protocol"
)

type Options struct {
	FrameInterval    time.Duration // engine tick period; default 1/60 s
	GestureTolerance float64       // default twisty.DefaultGestureTolerance
	PongWait         time.Duration // silence tolerated before a client is dropped; default 60 s
	Logger           *slog.Logger
}

// Server owns an engine. All engine access happens on the goroutine running
// Run; connection goroutines talk to it through channels.
type Server struct {
	engine    *twisty.Engine
	tracker   *twisty.Tracker
	validator *protocol.Validator
	log       *slog.Logger
	interval  time.Duration
	tolerance float64
	pongWait  time.Duration

	upgrader websocket.Upgrader

	inbox chan envelope
	join  chan joinRequest
	leave chan chan []byte

	clients map[chan []byte]struct{}
	seq     uint64
	done    chan struct{} // closed when Run returns
}

type envelope struct {
	msg any
	out chan []byte
}

type joinRequest struct {
	out  chan []byte
	resp chan []byte
}

func NewServer(e *twisty.Engine, opts Options) (*Server, error) {
	v, err := protocol.NewValidator()
	if err != nil {
		return nil, err
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = time.Second / 60
	}
	if opts.GestureTolerance <= 0 {
		opts.GestureTolerance = twisty.DefaultGestureTolerance
	}
	if opts.PongWait <= 0 {
		opts.PongWait = 60 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		engine:    e,
		tracker:   twisty.Track(e),
		validator: v,
		log:       opts.Logger,
		interval:  opts.FrameInterval,
		tolerance: opts.GestureTolerance,
		pongWait:  opts.PongWait,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		inbox:   make(chan envelope, 64),
		join:    make(chan joinRequest),
		leave:   make(chan chan []byte),
		clients: make(map[chan []byte]struct{}),
		done:    make(chan struct{}),
	}

	// Frames only fire on ticks with a move in flight, including the tick
	// it locks on, so the current move is always the one being drawn.
	e.OnFrame(func(c *twisty.Cube) {
		m, _ := e.Current()
		s.seq++
		s.broadcast(protocol.NewFrame(s.seq, m.Notation(), c))
	})
	e.OnLock(func(m twisty.Move) { s.broadcastState(m.Notation()) })
	e.OnSolveEnd(func() { s.broadcastState("") })
	return s, nil
}

// Run drives the engine at the frame interval until ctx is done. Open
// connections are closed when it returns. Run must be called once.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-s.join:
			s.clients[req.out] = struct{}{}
			b, _ := json.Marshal(protocol.NewWelcome(s.engine.Cube()))
			req.resp <- b
		case out := <-s.leave:
			delete(s.clients, out)
		case env := <-s.inbox:
			s.handle(env)
		case <-ticker.C:
			s.engine.Tick(s.interval)
		}
	}
}

func (s *Server) handle(env envelope) {
	var err error
	switch m := env.msg.(type) {
	case *protocol.MoveMsg:
		err = s.engine.Enqueue(m.Token)
	case *protocol.SolveMsg:
		err = s.engine.Solve()
	case *protocol.ResetMsg:
		if err = s.engine.Reset(); err == nil {
			s.tracker.Reset()
			s.broadcastState("")
		}
	case *protocol.GestureMsg:
		err = s.gesture(m)
	}
	if err != nil {
		s.log.Debug("request rejected", "error", err)
		s.send(env.out, protocol.NewError(protocol.CodeRejected, err))
	}
}

func (s *Server) gesture(m *protocol.GestureMsg) error {
	in, err := m.DragInput(s.engine.Cube())
	if err != nil {
		return err
	}
	move, err := twisty.ResolveDrag(in, s.tolerance)
	if errors.Is(err, twisty.ErrNoGesture) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.engine.EnqueueMove(move)
}

func (s *Server) broadcastState(move string) {
	s.seq++
	s.broadcast(protocol.StateMsg{
		Type:    protocol.TypeState,
		Seq:     s.seq,
		State:   s.engine.Cube().Serialize(),
		Move:    move,
		Phase:   s.tracker.CurrentPhase().String(),
		Solving: s.engine.Solving(),
	})
}

// broadcast queues v for every client, dropping it for clients whose
// queue is full.
func (s *Server) broadcast(v any) {
	if len(s.clients) == 0 {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("marshal failed", "error", err)
		return
	}
	for out := range s.clients {
		select {
		case out <- b:
		default:
			s.log.Debug("client queue full, dropping message")
		}
	}
}

func (s *Server) send(out chan []byte, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case out <- b:
	default:
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		out := make(chan []byte, 64)
		resp := make(chan []byte, 1)
		select {
		case s.join <- joinRequest{out: out, resp: resp}:
		case <-s.done:
			return
		case <-r.Context().Done():
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		defer s.unregister(out)

		if err := writeMessage(conn, <-resp); err != nil {
			return
		}

		// Watch-only clients never send, so pongs keep them alive.
		_ = conn.SetReadDeadline(time.Now().Add(s.pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(s.pongWait))
		})

		// Writer goroutine.
		go func() {
			ping := time.NewTicker(s.pongWait * 9 / 10)
			defer ping.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-s.done:
					_ = conn.Close()
					return
				case <-ping.C:
					if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
						cancel()
						return
					}
				case b := <-out:
					if err := writeMessage(conn, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop.
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				cancel()
				break
			}
			_ = conn.SetReadDeadline(time.Now().Add(s.pongWait))
			msg, err := s.validator.DecodeInbound(raw)
			if err != nil {
				s.send(out, protocol.NewError(protocol.CodeBadRequest, err))
				continue
			}
			select {
			case s.inbox <- envelope{msg: msg, out: out}:
			case <-s.done:
			}
		}
	}
}

func (s *Server) unregister(out chan []byte) {
	select {
	case s.leave <- out:
	case <-s.done:
	}
}

const writeWait = 5 * time.Second

func writeMessage(conn *websocket.Conn, b []byte) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, b)
}
