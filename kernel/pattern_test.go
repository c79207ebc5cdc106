package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func seedBirds(t *testing.T, k *Kernel) {
	t.Helper()
	truth := TruthValue{Frequency: 0.95, Confidence: 0.9}
	_, err := k.InheritanceEdge(Atom("sparrow"), Atom("bird"), &AddOptions{Truth: &truth})
	require.NoError(t, err)
	_, err = k.InheritanceEdge(Atom("robin"), Atom("bird"), &AddOptions{Truth: &truth})
	require.NoError(t, err)
	weak := TruthValue{Frequency: 0.3, Confidence: 0.9}
	_, err = k.InheritanceEdge(Atom("penguin"), Atom("bird"), &AddOptions{Truth: &weak})
	require.NoError(t, err)
}

func TestMatchTermExactIdentity(t *testing.T) {
	k := NewKernel(nil)
	seedBirds(t, k)
	_, ok := Match(k, TermPattern("Inheritance(sparrow,bird)"), "Inheritance(sparrow,bird)", nil)
	require.True(t, ok)
	_, ok = Match(k, TermPattern("Inheritance(sparrow,bird)"), "Inheritance(robin,bird)", nil)
	require.False(t, ok)
}

func TestQueryBindsVariableAcrossMatches(t *testing.T) {
	k := NewKernel(nil)
	seedBirds(t, k)

	p := CompoundPattern("Inheritance", VariablePattern("x", nil), TermPattern("bird"))
	results := k.Query(p, QueryOptions{})
	require.Len(t, results, 3)
	var subjects []string
	for _, r := range results {
		subjects = append(subjects, r.Bindings["x"])
	}
	require.ElementsMatch(t, []string{"sparrow", "robin", "penguin"}, subjects)
}

func TestQueryFiltersByMinExpectation(t *testing.T) {
	k := NewKernel(nil)
	seedBirds(t, k)

	p := CompoundPattern("Inheritance", VariablePattern("x", nil), TermPattern("bird"))
	results := k.Query(p, QueryOptions{MinExpectation: 0.6})
	require.Len(t, results, 2, "penguin's low-expectation belief should be filtered out")
	for _, r := range results {
		require.NotEqual(t, "penguin", r.Bindings["x"])
	}
}

func TestQueryRespectsLimit(t *testing.T) {
	k := NewKernel(nil)
	seedBirds(t, k)

	p := CompoundPattern("Inheritance", VariablePattern("x", nil), TermPattern("bird"))
	results := k.Query(p, QueryOptions{Limit: 1, SortBy: "expectation"})
	require.Len(t, results, 1)
}

func TestVariableConstraintTypeMismatchFails(t *testing.T) {
	k := NewKernel(nil)
	seedBirds(t, k)

	constraint := &VariableConstraints{Type: "Similarity"}
	p := CompoundPattern("Inheritance", VariablePattern("x", constraint), TermPattern("bird"))
	results := k.Query(p, QueryOptions{})
	require.Empty(t, results, "no Inheritance subject is also typed as Similarity")
}

func TestSameVariableMustBindConsistently(t *testing.T) {
	k := NewKernel(nil)
	truth := Certain()
	_, err := k.InheritanceEdge(Atom("sparrow"), Atom("bird"), &AddOptions{Truth: &truth})
	require.NoError(t, err)
	_, err = k.SimilarityEdge(Atom("sparrow"), Atom("sparrow"), &AddOptions{Truth: &truth})
	require.NoError(t, err)

	// x must be the same edge id in both legs: only true when both args equal.
	p := CompoundPattern("Similarity", VariablePattern("x", nil), VariablePattern("x", nil))
	results := k.Query(p, QueryOptions{})
	require.Len(t, results, 1)
	require.Equal(t, "sparrow", results[0].Bindings["x"])
}
