package equity

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/tossequity/internal/randutil"
	"github.com/lox/tossequity/poker"
	"golang.org/x/sync/errgroup"
)

// table is the fixed part of an estimation: the known cards and the unseen deck.
type table struct {
	hole  poker.Hand
	board poker.Hand
	need  int
	deck  *poker.Deck
}

// trial is one sampled completion of the board and an opponent hole.
type trial struct {
	board   poker.Hand
	villain poker.Hand
}

// visitor observes every trial; only tests install one.
type visitor func(trial, Outcome)

func newTable(hole, board []poker.Card) (table, error) {
	if len(hole) != 2 {
		return table{}, fmt.Errorf("%w: want 2, got %d", ErrInvalidHoleSize, len(hole))
	}
	if len(board) > FinalBoardCards {
		return table{}, fmt.Errorf("%w: %d cards, max %d", ErrBoardTooLarge, len(board), FinalBoardCards)
	}

	holeSet, err := poker.NewHand(hole...)
	if err != nil {
		return table{}, fmt.Errorf("hole: %w", err)
	}
	boardSet, err := poker.NewHand(board...)
	if err != nil {
		return table{}, fmt.Errorf("board: %w", err)
	}
	if holeSet.Overlaps(boardSet) {
		return table{}, fmt.Errorf("%w: %s in both hole and board", poker.ErrDuplicateCard, holeSet&boardSet)
	}

	t := table{
		hole:  holeSet,
		board: boardSet,
		need:  max(0, FinalBoardCards-len(board)),
		deck:  poker.NewDeck(holeSet | boardSet),
	}
	if t.deck.CardsRemaining() < t.need+2 {
		return table{}, fmt.Errorf("%w: need %d cards, %d unseen", poker.ErrInsufficientDeck, t.need+2, t.deck.CardsRemaining())
	}
	return t, nil
}

// run plays n trials against deck, which the caller owns.
func (t table) run(ev Evaluator, deck *poker.Deck, rng *rand.Rand, n int, visit visitor) (Result, error) {
	var res Result
	buf := make([]poker.Card, t.need+2)

	for range n {
		drawn, err := deck.Draw(rng, t.need+2, buf)
		if err != nil {
			return res, err
		}

		tr := trial{board: t.board}
		for _, c := range drawn[:t.need] {
			tr.board.AddCard(c)
		}
		for _, c := range drawn[t.need:] {
			tr.villain.AddCard(c)
		}

		outcome, err := Showdown(ev, t.hole, tr.villain, tr.board)
		if err != nil {
			return res, err
		}
		if visit != nil {
			visit(tr, outcome)
		}
		res.add(outcome)
	}
	return res, nil
}

// Estimate returns the equity of a two card hole against one random hand,
// averaged over iterations independent trials. The board holds zero to six
// cards and is completed to six in every trial.
func (e *Engine) Estimate(hole, board []poker.Card, iterations int) (float64, error) {
	res, err := e.Simulate(hole, board, iterations)
	if err != nil {
		return 0, err
	}
	return res.Equity(), nil
}

// Simulate runs the trials behind Estimate and returns the raw counts.
func (e *Engine) Simulate(hole, board []poker.Card, iterations int) (Result, error) {
	return e.simulate(hole, board, iterations, nil)
}

func (e *Engine) simulate(hole, board []poker.Card, iterations int, visit visitor) (Result, error) {
	if iterations <= 0 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidIterationCount, iterations)
	}
	t, err := newTable(hole, board)
	if err != nil {
		return Result{}, err
	}

	if visit == nil && e.workers > 1 && iterations >= e.parallelThreshold {
		return e.simulateParallel(t, iterations)
	}
	return t.run(e.evaluator, t.deck, e.rng, iterations, visit)
}

// simulateParallel splits the trials across workers. Each worker owns a copy
// of the deck and a source split from the engine's, so a fixed seed and
// worker count reproduce the same counts.
func (e *Engine) simulateParallel(t table, iterations int) (Result, error) {
	workers := min(e.workers, iterations)
	perWorker := iterations / workers
	remainder := iterations % workers

	results := make([]Result, workers)
	var g errgroup.Group

	for w := range workers {
		n := perWorker
		if w < remainder {
			n++ // Distribute remainder samples
		}
		rng := randutil.Split(e.rng)
		deck := t.deck.Clone()

		g.Go(func() error {
			res, err := t.run(e.evaluator, deck, rng, n, nil)
			results[w] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var total Result
	for _, r := range results {
		total.merge(r)
	}
	return total, nil
}
