package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveStateLoadStateRoundTrip(t *testing.T) {
	k := NewKernel(nil)
	truth := TruthValue{Frequency: 0.9, Confidence: 0.8}
	id, err := k.InheritanceEdge(Atom("sparrow"), Atom("bird"), &AddOptions{Truth: &truth})
	require.NoError(t, err)
	k.Config.Set("budgetThreshold", 0.25)

	blob, err := k.SaveState()
	require.NoError(t, err)

	restored := NewKernel(nil)
	require.NoError(t, restored.LoadState(blob))

	edge, ok := restored.GetEdge(id)
	require.True(t, ok)
	require.Equal(t, "Inheritance", edge.Type)
	require.Len(t, edge.Beliefs, 1)
	require.InDelta(t, truth.Frequency, edge.Beliefs[0].Truth.Frequency, 1e-9)
	require.InDelta(t, truth.Confidence, edge.Beliefs[0].Truth.Confidence, 1e-9)
	require.Equal(t, 0.25, restored.Config.Get("budgetThreshold"))
	require.Equal(t, 1, restored.EdgeCount())
}

func TestLoadStateRebuildsIndices(t *testing.T) {
	k := NewKernel(nil)
	truth := Certain()
	_, err := k.InheritanceEdge(Atom("sparrow"), Atom("bird"), &AddOptions{Truth: &truth})
	require.NoError(t, err)

	blob, err := k.SaveState()
	require.NoError(t, err)

	restored := NewKernel(nil)
	require.NoError(t, restored.LoadState(blob))

	p := CompoundPattern("Inheritance", VariablePattern("x", nil), TermPattern("bird"))
	results := restored.Query(p, QueryOptions{})
	require.Len(t, results, 1, "byType index should be rebuilt from the loaded hypergraph")
	require.Equal(t, "sparrow", results[0].Bindings["x"])
}
