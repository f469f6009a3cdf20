package twisty

import "log/slog"

// DefaultAnimSpeed is the default angular speed of an animated turn in
// radians per second. A quarter turn takes about 126ms.
const DefaultAnimSpeed = 12.5

// Option configures Engine behavior.
type Option func(*config)

type config struct {
	animSpeed   float64
	solver      Solver
	logger      *slog.Logger
	moveHistory bool
}

func defaultConfig() *config {
	return &config{
		animSpeed:   DefaultAnimSpeed,
		logger:      newNopLogger(),
		moveHistory: true,
	}
}

// WithAnimSpeed sets the angular speed of animated turns in radians per
// second. Non-positive values are ignored.
func WithAnimSpeed(radPerSec float64) Option {
	return func(c *config) {
		if radPerSec > 0 {
			c.animSpeed = radPerSec
		}
	}
}

// WithSolver sets the solver consulted when a solution is requested.
func WithSolver(s Solver) Option {
	return func(c *config) {
		c.solver = s
	}
}

// WithLogger sets the logger for engine diagnostics. By default nothing is
// logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMoveHistory enables or disables move history tracking.
// When enabled (default), dispatched moves are stored and accessible via
// History(). The history is cleared when a solution finishes playing.
func WithMoveHistory(enabled bool) Option {
	return func(c *config) {
		c.moveHistory = enabled
	}
}
