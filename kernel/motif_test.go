package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMotifMemoryTracksRecurringDerivationShape(t *testing.T) {
	m := newMotifMemory(2)

	subject := &Hyperedge{ID: "Inheritance(sparrow,bird)", Type: "Inheritance", Args: []EdgeID{"sparrow", "bird"}}
	predicate := &Hyperedge{ID: "Inheritance(bird,animal)", Type: "Inheritance", Args: []EdgeID{"bird", "animal"}}
	derived := &Hyperedge{ID: "Inheritance(sparrow,animal)", Type: "Inheritance", Args: []EdgeID{"sparrow", "animal"}}

	m.onEventAdded(subject)
	m.onEventAdded(predicate)
	m.onEventAdded(derived)

	m.onMaterialized(derived, []*Hyperedge{subject, predicate}, "inheritance-transitivity")
	m.onMaterialized(derived, []*Hyperedge{subject, predicate}, "inheritance-transitivity")

	hot := m.HotMotifs(2)
	require.Len(t, hot, 1)
	require.Equal(t, "Inheritance", hot[0].DerivedType)
	require.Equal(t, "inheritance-transitivity", hot[0].RuleID)
}

func TestHashEdgeBaseIsStableForSameShape(t *testing.T) {
	a := &Hyperedge{Type: "Inheritance", Args: []EdgeID{"sparrow", "bird"}}
	b := &Hyperedge{Type: "Inheritance", Args: []EdgeID{"robin", "bird"}}
	require.Equal(t, hashEdgeBase(a), hashEdgeBase(b), "same type+arity should hash identically regardless of arg identity")
}
