package equity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tossequity/internal/randutil"
	"github.com/lox/tossequity/poker"
)

func cards(s string) []poker.Card {
	if s == "" {
		return nil
	}
	return poker.MustParseCards(s)
}

func TestEstimateEquity(t *testing.T) {
	tests := []struct {
		name        string
		hole        string
		board       string
		expectedMin float64
		expectedMax float64
	}{
		{
			name:        "Pocket Aces vs Random",
			hole:        "AsAd",
			expectedMin: 0.70,
			expectedMax: 0.92,
		},
		{
			name:        "72o vs Random",
			hole:        "7h2c",
			expectedMin: 0.18,
			expectedMax: 0.45,
		},
		{
			name:        "Set on a dry flop",
			hole:        "6c6d",
			board:       "6s2hTc",
			expectedMin: 0.80,
			expectedMax: 1.00,
		},
		{
			name:        "Nut straight on six card board",
			hole:        "AhKd",
			board:       "QsJcTd3h4s8c",
			expectedMin: 0.97,
			expectedMax: 1.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Use fixed seed for deterministic tests
			e := NewEngine(randutil.New(12345))
			equity, err := e.Estimate(cards(tt.hole), cards(tt.board), 2000)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, equity, tt.expectedMin)
			assert.LessOrEqual(t, equity, tt.expectedMax)
		})
	}
}

func TestEstimateErrors(t *testing.T) {
	e := NewEngine(randutil.New(1))

	tests := []struct {
		name       string
		hole       string
		board      string
		iterations int
		want       error
	}{
		{"zero iterations", "AsKd", "", 0, ErrInvalidIterationCount},
		{"negative iterations", "AsKd", "", -5, ErrInvalidIterationCount},
		{"one hole card", "As", "", 10, ErrInvalidHoleSize},
		{"three hole cards", "AsKdQh", "", 10, ErrInvalidHoleSize},
		{"seven board cards", "AsKd", "2c3c4c5c6c7c8c", 10, ErrBoardTooLarge},
		{"duplicate in hole", "AsAs", "", 10, poker.ErrDuplicateCard},
		{"hole card on board", "AsKd", "As2c3c", 10, poker.ErrDuplicateCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Estimate(cards(tt.hole), cards(tt.board), tt.iterations)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEstimateRange(t *testing.T) {
	e := NewEngine(randutil.New(77))
	rng := randutil.New(78)

	for i := range 200 {
		dealt, err := poker.Sample(rng, 0, 2+i%7)
		require.NoError(t, err)

		eq, err := e.Estimate(dealt[:2], dealt[2:], 1)
		require.NoError(t, err)
		assert.Contains(t, []float64{0, 0.5, 1}, eq, "single trial must be a loss, tie or win")

		eq, err = e.Estimate(dealt[:2], dealt[2:], 25)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, eq, 0.0)
		assert.LessOrEqual(t, eq, 1.0)
	}
}

func TestSimulateCountsEveryTrial(t *testing.T) {
	e := NewEngine(randutil.New(5))
	res, err := e.Simulate(cards("KhQh"), cards("2c7d"), 321)
	require.NoError(t, err)

	assert.Equal(t, 321, res.Trials)
	assert.Equal(t, res.Trials, res.Wins+res.Ties+res.Losses())
	assert.InDelta(t, 1.0, res.WinRate()+res.TieRate()+res.LossRate(), 1e-9)
}

func TestEstimateDeterministicWithSeed(t *testing.T) {
	a, err := NewEngine(randutil.New(42)).Simulate(cards("9s8s"), cards("7s2d"), 1000)
	require.NoError(t, err)
	b, err := NewEngine(randutil.New(42)).Simulate(cards("9s8s"), cards("7s2d"), 1000)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// Every trial deals cards disjoint from the known cards and from each other,
// and keeps the known board.
func TestTrialsNeverCollide(t *testing.T) {
	e := NewEngine(randutil.New(9))
	hole := cards("Ac Kc")
	board := cards("2d 9h")
	holeSet, _ := poker.NewHand(hole...)
	boardSet, _ := poker.NewHand(board...)

	_, err := e.simulate(hole, board, 500, func(tr trial, _ Outcome) {
		require.Equal(t, FinalBoardCards, tr.board.CountCards())
		require.Equal(t, 2, tr.villain.CountCards())
		require.Equal(t, boardSet, tr.board&boardSet, "known board changed")
		require.False(t, tr.villain.Overlaps(tr.board))
		require.False(t, tr.villain.Overlaps(holeSet))
		require.False(t, (tr.board &^ boardSet).Overlaps(holeSet))
	})
	require.NoError(t, err)
}

// With six board cards nothing is left to deal to the board; only the
// opponent's hand varies.
func TestFullBoardIsNeverAltered(t *testing.T) {
	e := NewEngine(randutil.New(10))
	board := cards("2c 7d 9h Jc Qs 3s")
	boardSet, err := poker.NewHand(board...)
	require.NoError(t, err)

	villains := make(map[poker.Hand]bool)
	_, err = e.simulate(cards("Ah Ad"), board, 400, func(tr trial, _ Outcome) {
		require.Equal(t, boardSet, tr.board)
		villains[tr.villain] = true
	})
	require.NoError(t, err)
	assert.Greater(t, len(villains), 100)
}

// Replaying the same sampled trials with hero and villain swapped flips wins
// and losses and keeps ties.
func TestShowdownSymmetry(t *testing.T) {
	e := NewEngine(randutil.New(2025))
	hole := cards("Ts 9s")
	holeSet, _ := poker.NewHand(hole...)
	const iterations = 1000

	var trials []trial
	forward, err := e.simulate(hole, cards("8s 2d 2h"), iterations, func(tr trial, _ Outcome) {
		trials = append(trials, tr)
	})
	require.NoError(t, err)
	require.Len(t, trials, iterations)

	var reverse Result
	for _, tr := range trials {
		o, err := Showdown(Native{}, tr.villain, holeSet, tr.board)
		require.NoError(t, err)
		reverse.add(o)
	}

	assert.Equal(t, forward.Wins, reverse.Losses())
	assert.Equal(t, forward.Losses(), reverse.Wins)
	assert.Equal(t, forward.Ties, reverse.Ties)
	assert.Equal(t, iterations, forward.Wins+reverse.Wins+forward.Ties, "each trial is a win for one side or a tie")
}

func TestEvaluatorErrorsPropagate(t *testing.T) {
	boom := errors.New("evaluator exploded")
	e := NewEngine(randutil.New(1), WithEvaluator(EvaluatorFunc(func(poker.Hand) (poker.Score, error) {
		return 0, boom
	})))

	_, err := e.Estimate(cards("AsKd"), nil, 10)
	assert.ErrorIs(t, err, boom)

	e = NewEngine(randutil.New(1), WithWorkers(4), WithParallelThreshold(10),
		WithEvaluator(EvaluatorFunc(func(poker.Hand) (poker.Score, error) {
			return 0, boom
		})))
	_, err = e.Estimate(cards("AsKd"), nil, 100)
	assert.ErrorIs(t, err, boom)
}

func TestParallelMatchesSequential(t *testing.T) {
	ev := &counting{Evaluator: Native{}}
	parallel := NewEngine(randutil.New(3), WithWorkers(4), WithParallelThreshold(100), WithEvaluator(ev))

	a, err := parallel.Simulate(cards("QdQc"), cards("Jd4s5h"), 4001)
	require.NoError(t, err)
	assert.Equal(t, 4001, a.Trials)
	assert.Equal(t, int64(2*4001), ev.calls.Load())

	again, err := NewEngine(randutil.New(3), WithWorkers(4), WithParallelThreshold(100)).
		Simulate(cards("QdQc"), cards("Jd4s5h"), 4001)
	require.NoError(t, err)
	assert.Equal(t, a, again, "same seed and worker count must reproduce counts")

	seq, err := NewEngine(randutil.New(4)).Simulate(cards("QdQc"), cards("Jd4s5h"), 4001)
	require.NoError(t, err)
	assert.InDelta(t, seq.Equity(), a.Equity(), 0.04)
}

func TestResultRates(t *testing.T) {
	r := Result{Wins: 6, Ties: 2, Trials: 10}
	assert.InDelta(t, 0.7, r.Equity(), 1e-9)
	assert.InDelta(t, 0.6, r.WinRate(), 1e-9)
	assert.InDelta(t, 0.2, r.TieRate(), 1e-9)
	assert.InDelta(t, 0.2, r.LossRate(), 1e-9)

	lower, upper := r.ConfidenceInterval()
	assert.Less(t, lower, r.Equity())
	assert.Greater(t, upper, r.Equity())

	var empty Result
	assert.Zero(t, empty.Equity())
	lower, upper = empty.ConfidenceInterval()
	assert.Zero(t, lower)
	assert.Zero(t, upper)
}

func BenchmarkEstimatePreDiscard(b *testing.B) {
	e := NewEngine(randutil.New(42))
	hole := cards("AsKh")
	board := cards("Ad7c2s")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Estimate(hole, board, 1000)
	}
}
