package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBudgetScaleClamps(t *testing.T) {
	b := Budget{Priority: 0.9, Durability: 0.9, Quality: 0.9}
	scaled := b.Scale(2)
	require.Equal(t, 1.0, scaled.Priority)
	require.Equal(t, 1.0, scaled.Durability)
	require.Equal(t, 1.0, scaled.Quality)
}

func TestBudgetMergeIsSymmetric(t *testing.T) {
	a := Budget{Priority: 0.2, Durability: 0.4, Quality: 0.6}
	b := Budget{Priority: 0.8, Durability: 0.6, Quality: 0.4}
	require.Equal(t, a.Merge(b), b.Merge(a))
}

func TestBudgetEquivalentWithinTolerance(t *testing.T) {
	a := Budget{Priority: 0.5, Durability: 0.5, Quality: 0.5}
	close := Budget{Priority: 0.52, Durability: 0.48, Quality: 0.53}
	far := Budget{Priority: 0.9, Durability: 0.5, Quality: 0.5}
	require.True(t, a.Equivalent(close))
	require.False(t, a.Equivalent(far))
}
