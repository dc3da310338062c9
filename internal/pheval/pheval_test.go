package pheval

import (
	"cmp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tossequity/internal/randutil"
	"github.com/lox/tossequity/poker"
)

func hand(t *testing.T, s string) poker.Hand {
	t.Helper()
	h, err := poker.NewHand(poker.MustParseCards(s)...)
	require.NoError(t, err)
	return h
}

func TestEvaluateOrdering(t *testing.T) {
	tests := []struct {
		name   string
		weaker string
		better string
	}{
		{"pair beats high card", "Ac Kd Qh Js 9c", "2c 2d 3h 4s 5d"},
		{"ace plays high", "Kc Qd Jh 9s 7c", "Ac 9d 7h 5s 3c"},
		{"wheel is the lowest straight", "As 2d 3h 4s 5c", "2c 3d 4h 5s 6c"},
		{"six cards flush over straight", "5c 6d 7h 8s 9c 2d", "2h 5h 9h Jh Kh 3c"},
		{"seven cards full house over flush", "2h 5h 9h Jh Kh 3c 4d", "Kc Kd Ks 4h 4c 2s 7d"},
		{"eight cards straight flush over quads", "6c 6d 6h 6s 2s 9s Ts Js", "3h 4h 5h 6h 7h 7d 7c 7s"},
	}

	var ev Evaluator
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weaker, err := ev.Evaluate(hand(t, tt.weaker))
			require.NoError(t, err)
			better, err := ev.Evaluate(hand(t, tt.better))
			require.NoError(t, err)
			assert.Greater(t, better, weaker)
		})
	}
}

// The library and the native evaluator must agree on every comparison,
// including ties.
func TestAgreesWithNative(t *testing.T) {
	rng := randutil.New(2024)
	var ev Evaluator

	for size := 5; size <= 8; size++ {
		for range 1500 {
			dealt, err := poker.Sample(rng, 0, 2*size)
			require.NoError(t, err)
			a, _ := poker.NewHand(dealt[:size]...)
			b, _ := poker.NewHand(dealt[size:]...)

			pa, err := ev.Evaluate(a)
			require.NoError(t, err)
			pb, err := ev.Evaluate(b)
			require.NoError(t, err)

			require.Equal(t,
				cmp.Compare(poker.Evaluate(a), poker.Evaluate(b)),
				cmp.Compare(pa, pb),
				"%s vs %s", a, b)
		}
	}
}

func TestEvaluateRejectsSize(t *testing.T) {
	var ev Evaluator
	_, err := ev.Evaluate(hand(t, "Ac Kd Qh Js"))
	assert.Error(t, err)
	_, err = ev.Evaluate(hand(t, "Ac Kd Qh Js Tc 9d 8h 7s 6c"))
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	for _, s := range []string{"Kc Kd 7h 4s 2c", "Ah Kh Qh Jh Th 2c 3d"} {
		desc, err := Describe(hand(t, s))
		require.NoError(t, err)
		assert.NotEmpty(t, desc)
	}
}

func BenchmarkEvaluate8(b *testing.B) {
	h, _ := poker.NewHand(poker.MustParseCards("6c 6d 6h 6s 2s 9s Ts Js")...)
	var ev Evaluator
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ev.Evaluate(h)
	}
}
