package kernel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCompositionWatcherFiresWhenAllRequiredTypesSeen(t *testing.T) {
	w := newCompositionWatcher(CompositionSpec{
		ID:            "inheritance-plus-similarity",
		RequiredTypes: map[string]struct{}{"Inheritance": {}, "Similarity": {}},
		TimeWindow:    time.Minute,
	})

	now := time.Now()
	require.False(t, w.Observe("Inheritance", "Inheritance(sparrow,bird)", now))
	require.True(t, w.Observe("Similarity", "Similarity(sparrow,finch)", now))
	require.False(t, w.Observe("Equivalence", "Equivalence(a,b)", now), "unlisted types never satisfy the spec and are ignored")
}

func TestCompositionWatcherCleansUpExpiredObservations(t *testing.T) {
	w := newCompositionWatcher(CompositionSpec{
		ID:            "short-window",
		RequiredTypes: map[string]struct{}{"Inheritance": {}, "Similarity": {}},
		TimeWindow:    time.Millisecond,
	})

	start := time.Now()
	w.Observe("Inheritance", "Inheritance(sparrow,bird)", start)
	later := start.Add(time.Hour)
	require.False(t, w.Observe("Similarity", "Similarity(sparrow,finch)", later), "the earlier Inheritance touch should have expired out of the window")
}

func TestCompositionWatcherConceptArgsOrderedByType(t *testing.T) {
	w := newCompositionWatcher(CompositionSpec{
		ID:            "inheritance-plus-similarity",
		RequiredTypes: map[string]struct{}{"Inheritance": {}, "Similarity": {}},
	})
	now := time.Now()
	w.Observe("Similarity", "Similarity(sparrow,finch)", now)
	w.Observe("Inheritance", "Inheritance(sparrow,bird)", now)

	require.Equal(t, []EdgeID{"Inheritance(sparrow,bird)", "Similarity(sparrow,finch)"}, w.ConceptArgs())
}

func TestKernelObserveCompositionEmitsRecognizedEvent(t *testing.T) {
	k := NewKernel(nil)
	k.RegisterComposition(CompositionSpec{
		ID:            "inheritance-solo",
		RequiredTypes: map[string]struct{}{"Inheritance": {}},
	})

	var recognized []string
	k.Bus.On("pattern-composition-recognized", func(payload any) {
		if m, ok := payload.(map[string]any); ok {
			recognized = append(recognized, m["composition"].(string))
		}
	})

	truth := Certain()
	_, err := k.InheritanceEdge(Atom("sparrow"), Atom("bird"), &AddOptions{Truth: &truth})
	require.NoError(t, err)
	require.Contains(t, recognized, "inheritance-solo")
}

func TestKernelObserveCompositionFormsConceptEdgeAndEmitsConceptFormed(t *testing.T) {
	k := NewKernel(nil)
	k.RegisterComposition(CompositionSpec{
		ID:            "inheritance-plus-similarity",
		RequiredTypes: map[string]struct{}{"Inheritance": {}, "Similarity": {}},
		TimeWindow:    time.Minute,
	})

	var formed []string
	k.Bus.On("concept-formed", func(payload any) {
		if m, ok := payload.(map[string]any); ok {
			formed = append(formed, m["concept"].(string))
		}
	})

	truth := Certain()
	_, err := k.InheritanceEdge(Atom("sparrow"), Atom("bird"), &AddOptions{Truth: &truth})
	require.NoError(t, err)
	_, err = k.SimilarityEdge(Atom("sparrow"), Atom("finch"), &AddOptions{Truth: &truth})
	require.NoError(t, err)

	require.Len(t, formed, 1)
	conceptEdge, ok := k.GetEdge(formed[0])
	require.True(t, ok)
	require.Equal(t, "Concept", conceptEdge.Type)
	require.Equal(t, []EdgeID{"Inheritance(sparrow,bird)", "Similarity(sparrow,finch)"}, conceptEdge.Args)
}
