package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAtomIDIsItsOwnName(t *testing.T) {
	require.Equal(t, "sparrow", Atom("sparrow").ID())
}

func TestCompoundIDIsCanonicalString(t *testing.T) {
	term := Compound("Inheritance", Atom("sparrow"), Atom("bird"))
	require.Equal(t, "Inheritance(sparrow,bird)", term.ID())
}

func TestNestedCompoundIDRecurses(t *testing.T) {
	inner := Compound("Property", Atom("color"), Atom("red"))
	outer := Compound("Instance", Atom("cardinal"), inner)
	require.Equal(t, "Instance(cardinal,Property(color,red))", outer.ID())
}

func TestArityForWellKnownTypes(t *testing.T) {
	require.Equal(t, 2, arityFor("Inheritance"))
	require.Equal(t, 1, arityFor("Negation"))
	require.Equal(t, 3, arityFor("TemporalRelation"))
	require.Equal(t, -1, arityFor("Conjunction"), "n-ary types enforce no fixed arity")
}

func TestCanonicalIDSpecialCasesSingleTermWrapper(t *testing.T) {
	require.Equal(t, "sparrow", canonicalID("Term", []string{"sparrow"}))
	require.Equal(t, "Inheritance(sparrow,bird)", canonicalID("Inheritance", []string{"sparrow", "bird"}))
}
