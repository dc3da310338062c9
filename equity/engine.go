// Package equity estimates hand equity against one random opponent by Monte
// Carlo sampling and builds the toss hold'em discard choice on top of it.
//
// The board in toss hold'em runs out to six cards and the evaluator is given
// hole and board together. An Engine owns its random source and is not safe
// for concurrent use; create one per goroutine.
package equity

import (
	"errors"
	"io"
	rand "math/rand/v2"
	"runtime"

	"github.com/charmbracelet/log"
)

// FinalBoardCards is the size of a complete toss hold'em board.
const FinalBoardCards = 6

var (
	// ErrInvalidIterationCount is returned when a non-positive trial count is requested.
	ErrInvalidIterationCount = errors.New("iterations must be positive")
	// ErrInvalidHoleSize is returned when the hole has the wrong number of cards.
	ErrInvalidHoleSize = errors.New("invalid hole card count")
	// ErrBoardTooLarge is returned when the board already exceeds the final size.
	ErrBoardTooLarge = errors.New("board too large")
)

const (
	// DefaultDiscardIterations is the trial budget per candidate when choosing a discard.
	DefaultDiscardIterations = 10000
	// DefaultPreDiscardIterations is the light budget per retention when
	// estimating strength with three hole cards.
	DefaultPreDiscardIterations = 50
	// DefaultParallelThreshold is the smallest run split across workers.
	DefaultParallelThreshold = 500
)

// Engine runs equity estimations.
type Engine struct {
	evaluator         Evaluator
	rng               *rand.Rand
	logger            *log.Logger
	workers           int
	parallelThreshold int
	preDiscard        int
	tiers             Tiers
}

// Option configures an Engine.
type Option func(*Engine)

// WithEvaluator sets the hand evaluator. The default is Native.
func WithEvaluator(ev Evaluator) Option {
	return func(e *Engine) {
		e.evaluator = ev
	}
}

// WithLogger sets the logger used for debug output. A nil logger keeps the
// default, which discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger == nil {
			return
		}
		e.logger = logger.WithPrefix("equity")
	}
}

// WithWorkers sets how many goroutines share a large run. Zero picks
// runtime.NumCPU capped at 8; negative values mean one.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n == 0 {
			n = min(runtime.NumCPU(), 8)
		}
		e.workers = max(n, 1)
	}
}

// WithParallelThreshold sets the smallest iteration count split across workers.
func WithParallelThreshold(n int) Option {
	return func(e *Engine) {
		e.parallelThreshold = n
	}
}

// WithPreDiscardIterations sets the per-retention budget used by Strength
// when the hole still has three cards.
func WithPreDiscardIterations(n int) Option {
	return func(e *Engine) {
		e.preDiscard = n
	}
}

// WithTiers sets the time-keyed iteration tiers used by Strength.
func WithTiers(t Tiers) Option {
	return func(e *Engine) {
		e.tiers = t
	}
}

// NewEngine creates an engine drawing all randomness from rng.
func NewEngine(rng *rand.Rand, opts ...Option) *Engine {
	e := &Engine{
		evaluator:         Native{},
		rng:               rng,
		logger:            log.New(io.Discard),
		workers:           1,
		parallelThreshold: DefaultParallelThreshold,
		preDiscard:        DefaultPreDiscardIterations,
		tiers:             DefaultTiers(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
