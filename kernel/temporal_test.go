package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComposeBaseBeforeBeforeIsBefore(t *testing.T) {
	rs := composeBase(RelBefore, RelBefore)
	require.True(t, rs.contains(RelBefore))
	require.Len(t, rs, 1)
}

func TestComposeBaseEqualsIsIdentity(t *testing.T) {
	require.True(t, composeBase(RelEquals, RelMeets).contains(RelMeets))
	require.True(t, composeBase(RelOverlaps, RelEquals).contains(RelOverlaps))
}

func TestComposeBaseUnhandledPairFallsBackToFullSet(t *testing.T) {
	rs := composeBase(RelStartedBy, RelFinishedBy)
	require.Len(t, rs, len(allAllenRelations), "unhandled pairs stay conservative, not wrong")
}

func TestRelationSetInverseRoundTrips(t *testing.T) {
	rs := newRelationSet(RelBefore, RelMeets)
	back := rs.inverse().inverse()
	require.Equal(t, rs, back)
}

func TestInsertConstraintKeepsNarrowerExistingRelationOnConflict(t *testing.T) {
	k := NewKernel(nil)
	require.True(t, k.Temporal.AddConstraint("A", "B", RelBefore))
	// Accepted at the gate (the hand-coded composition table never proves an
	// outright contradiction), but the conflicting write is a no-op: the
	// stored relation stays the original, narrower Before.
	require.True(t, k.Temporal.AddConstraint("A", "B", RelAfter))

	rs, ok := k.Temporal.InferRelationship("A", "B")
	require.True(t, ok)
	require.True(t, rs.contains(RelBefore))
}

func TestAddConstraintPropagatesTransitively(t *testing.T) {
	k := NewKernel(nil)
	require.True(t, k.Temporal.AddConstraint("A", "B", RelBefore))
	require.True(t, k.Temporal.AddConstraint("B", "C", RelBefore))

	rs, ok := k.Temporal.InferRelationship("A", "C")
	require.True(t, ok)
	require.True(t, rs.contains(RelBefore))
}

func TestInferRelationshipUsesInverseWhenOnlyReverseKnown(t *testing.T) {
	k := NewKernel(nil)
	require.True(t, k.Temporal.AddConstraint("A", "B", RelBefore))

	rs, ok := k.Temporal.InferRelationship("B", "A")
	require.True(t, ok)
	require.True(t, rs.contains(RelAfter))
}

func TestTemporalTransitivityRuleDerivesEdge(t *testing.T) {
	k := NewKernel(nil)
	truth := Certain()
	_, err := k.AddEdge("TemporalRelation", []*Term{Atom("eventA"), Atom("eventB"), Atom(string(RelBefore))}, &AddOptions{Truth: &truth})
	require.NoError(t, err)
	_, err = k.AddEdge("TemporalRelation", []*Term{Atom("eventB"), Atom("eventC"), Atom(string(RelBefore))}, &AddOptions{Truth: &truth})
	require.NoError(t, err)

	k.Run(200)

	_, ok := k.GetEdge("TemporalRelation(eventA,eventC,before)")
	require.True(t, ok, "transitive rule should derive eventA before eventC")
}
