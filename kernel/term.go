package kernel

import (
	"strings"
)

// Term is an atom (a bare name) or a compound (type, ordered args). Its
// canonical identity is a deterministic string form used as the key
// everywhere in the hypergraph: type(arg1,arg2,...). An atom's identity is
// its own name.
type Term struct {
	Type string
	Args []*Term
	Name string
}

// Atom builds a leaf term whose canonical id is its own name.
func Atom(name string) *Term {
	return &Term{Name: name}
}

// Compound builds an n-ary term of the given type over nested args.
func Compound(typ string, args ...*Term) *Term {
	return &Term{Type: typ, Args: args}
}

// ID computes the canonical string identity of the term, recursing through
// nested compounds.
func (t *Term) ID() string {
	if t == nil {
		return ""
	}
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.ID()
	}
	var b strings.Builder
	b.WriteString(t.Type)
	b.WriteByte('(')
	b.WriteString(strings.Join(parts, ","))
	b.WriteByte(')')
	return b.String()
}

// arity returns the expected argument count for a well-known edge type, or
// -1 when the type is n-ary (no fixed arity is enforced).
func arityFor(edgeType string) int {
	switch edgeType {
	case "Inheritance", "Similarity", "Implication", "Equivalence":
		return 2
	case "Negation":
		return 1
	case "TemporalRelation":
		return 3
	case "TimeInterval":
		return 2
	case "Property":
		return 2
	case "Instance":
		return 2
	default:
		return -1
	}
}

// canonicalID computes a hyperedge's canonical identity from its resolved
// argument ids (invariant 6: type(arg1,...,argN)).
func canonicalID(edgeType string, argIDs []string) string {
	// Special case (spec §3): a Term-typed edge wrapping a single atom takes
	// the atom's own name as identity rather than "Term(name)".
	if edgeType == "Term" && len(argIDs) == 1 {
		return argIDs[0]
	}
	var b strings.Builder
	b.WriteString(edgeType)
	b.WriteByte('(')
	b.WriteString(strings.Join(argIDs, ","))
	b.WriteByte(')')
	return b.String()
}
