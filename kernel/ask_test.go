package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAskResolvesImmediatelyWhenEdgeAlreadyMatches(t *testing.T) {
	k := NewKernel(nil)
	truth := Certain()
	id, err := k.InheritanceEdge(Atom("sparrow"), Atom("bird"), &AddOptions{Truth: &truth})
	require.NoError(t, err)

	future := k.Ask(id, AskOptions{MinExpectation: 0.5, TimeoutMs: 1000})
	answer, err := future.Wait()
	require.NoError(t, err)
	require.Equal(t, id, answer.ID)
}

func TestAskResolvesWhenEdgeArrivesLater(t *testing.T) {
	k := NewKernel(nil)
	future := k.Ask(EdgeID("Inheritance(sparrow,bird)"), AskOptions{MinExpectation: 0.5, TimeoutMs: 2000})

	truth := Certain()
	_, err := k.InheritanceEdge(Atom("sparrow"), Atom("bird"), &AddOptions{Truth: &truth})
	require.NoError(t, err)

	answer, err := future.Wait()
	require.NoError(t, err)
	require.Equal(t, EdgeID("Inheritance(sparrow,bird)"), answer.ID)
}

func TestAskTimesOutWithoutAMatch(t *testing.T) {
	k := NewKernel(nil)
	future := k.Ask(EdgeID("Inheritance(nonexistent,thing)"), AskOptions{TimeoutMs: 50})
	_, err := future.Wait()
	require.ErrorIs(t, err, ErrTimeout)
}

func TestAskCancelDeliversCancelledError(t *testing.T) {
	k := NewKernel(nil)
	future := k.Ask(EdgeID("Inheritance(nonexistent,thing)"), AskOptions{TimeoutMs: 5000})
	future.Cancel()
	_, err := future.Wait()
	require.ErrorIs(t, err, ErrCancelled)
}

func TestAskByPatternMatchesOnInsert(t *testing.T) {
	k := NewKernel(nil)
	p := CompoundPattern("Inheritance", VariablePattern("x", nil), TermPattern("bird"))
	future := k.Ask(p, AskOptions{TimeoutMs: 2000})

	truth := TruthValue{Frequency: 0.9, Confidence: 0.8}
	_, err := k.InheritanceEdge(Atom("robin"), Atom("bird"), &AddOptions{Truth: &truth})
	require.NoError(t, err)

	answer, err := future.Wait()
	require.NoError(t, err)
	require.Equal(t, "robin", answer.Bindings["x"])
}
