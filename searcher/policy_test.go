package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUCT(t *testing.T) {
	t.Run("panics with zero parent visits", func(t *testing.T) {
		require.Panics(t, func() {
			newUCT(CSquared, 0)
		}, "Should panic when N is 0")
	})
}

func TestUCTEvaluate(t *testing.T) {
	t.Run("computing UCT value", func(t *testing.T) {
		policy := newUCT(CSquared, 50)
		got := policy.evaluate(3.5, 8)

		expected := 3.5/8 + math.Sqrt(CSquared*math.Log(50)/8)
		require.InDelta(t, expected, got, 0.0001, "Should compute q/n + sqrt(c^2*ln(N)/n)")
	})

	t.Run("panics with zero child visits", func(t *testing.T) {
		policy := newUCT(CSquared, 50)
		require.Panics(t, func() {
			policy.evaluate(1.0, 0)
		}, "Should panic when n is 0")
	})

	t.Run("single parent visit is pure exploitation", func(t *testing.T) {
		policy := newUCT(CSquared, 1)
		require.InDelta(t, 0.25, policy.evaluate(1, 4), 1e-9)
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		policy := newUCT(CSquared, 100)
		require.Greater(t, policy.evaluate(5, 10), policy.evaluate(10, 20),
			"Same mean reward with more visits should score lower")
	})
}
