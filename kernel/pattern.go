package kernel

import "sort"

// Pattern is the structured tree the kernel accepts in place of surface
// syntax (spec §4.10): a Term/Variable leaf or a compound node over nested
// sub-patterns. Generalized from the teacher's Expression/Condition fluent
// DSL (expression_ast_impl.go, condition.go) — where the teacher compiles a
// token stream into an RPN evaluator over booleans, the kernel's pattern
// tree is already structured data, so matching walks it directly rather
// than compiling it first.
type Pattern struct {
	Type        string
	Args        []*Pattern
	Name        string // Term: the literal id/name. Variable: the binding name.
	Truth       *TruthValue
	Priority    *float64
	Constraints *VariableConstraints
}

// VariableConstraints narrows what a Variable node is allowed to bind to.
type VariableConstraints struct {
	Type           string
	MinExpectation *float64
	MaxExpectation *float64
	IsA            EdgeID // the candidate must have Inheritance(candidate, IsA)
}

// TermPattern is sugar for a literal-id leaf.
func TermPattern(id EdgeID) *Pattern { return &Pattern{Type: "Term", Name: id} }

// VariablePattern is sugar for a bindable leaf.
func VariablePattern(name string, c *VariableConstraints) *Pattern {
	return &Pattern{Type: "Variable", Name: name, Constraints: c}
}

// CompoundPattern is sugar for a typed n-ary node.
func CompoundPattern(typ string, args ...*Pattern) *Pattern {
	return &Pattern{Type: typ, Args: args}
}

// Bindings maps a Pattern's Variable names to the edge ids they matched.
type Bindings map[string]EdgeID

// Match attempts to unify p against edgeID, extending bindings. Returns the
// (possibly new) bindings map and whether the match succeeded; on failure
// the original bindings are returned unmodified.
func Match(k *Kernel, p *Pattern, edgeID EdgeID, bindings Bindings) (Bindings, bool) {
	if bindings == nil {
		bindings = make(Bindings)
	}
	switch p.Type {
	case "Term":
		if p.Name == edgeID {
			return bindings, true
		}
		return bindings, false

	case "Variable":
		if bound, ok := bindings[p.Name]; ok {
			return bindings, bound == edgeID
		}
		if !satisfiesConstraints(k, p.Constraints, edgeID) {
			return bindings, false
		}
		next := cloneBindings(bindings)
		next[p.Name] = edgeID
		return next, true

	default:
		edge, ok := k.graph[edgeID]
		if !ok || edge.Type != p.Type || len(edge.Args) != len(p.Args) {
			return bindings, false
		}
		cur := bindings
		for i, argPattern := range p.Args {
			var matched bool
			cur, matched = Match(k, argPattern, edge.Args[i], cur)
			if !matched {
				return bindings, false
			}
		}
		if p.Truth != nil {
			b := edge.Strongest()
			if b == nil || b.Truth.Expectation() < p.Truth.Expectation() {
				return bindings, false
			}
		}
		return cur, true
	}
}

func satisfiesConstraints(k *Kernel, c *VariableConstraints, edgeID EdgeID) bool {
	if c == nil {
		return true
	}
	edge, hasEdge := k.graph[edgeID]
	if c.Type != "" {
		if !hasEdge || edge.Type != c.Type {
			return false
		}
	}
	if c.MinExpectation != nil || c.MaxExpectation != nil {
		exp := 0.5
		if hasEdge {
			if b := edge.Strongest(); b != nil {
				exp = b.Truth.Expectation()
			}
		}
		if c.MinExpectation != nil && exp < *c.MinExpectation {
			return false
		}
		if c.MaxExpectation != nil && exp > *c.MaxExpectation {
			return false
		}
	}
	if c.IsA != "" {
		found := false
		for _, inh := range edgesByTypeAndArgPos(k, "Inheritance", 0, edgeID) {
			if inh.Args[1] == c.IsA {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func cloneBindings(b Bindings) Bindings {
	out := make(Bindings, len(b)+1)
	for k, v := range b {
		out[k] = v
	}
	return out
}

// QueryResult is one row of query()'s result list.
type QueryResult struct {
	ID          EdgeID
	Bindings    Bindings
	Expectation float64
	Edge        *Hyperedge
}

// QueryOptions controls query()'s limit, filtering, and ordering.
type QueryOptions struct {
	Limit          int
	MinExpectation float64
	SortBy         string // "expectation" (default), "activation", "recent"
}

// Query walks every candidate edge of p's top-level type (or the whole
// graph for a bare Variable) and returns every successful match, filtered
// and ordered per opts (spec §6: query(pattern, {limit, minExpectation,
// sortBy})).
func (k *Kernel) Query(p *Pattern, opts QueryOptions) []QueryResult {
	var candidates []EdgeID
	if p.Type != "Term" && p.Type != "Variable" {
		candidates = k.indices.byTypeIDs(p.Type)
	} else {
		candidates = make([]EdgeID, 0, len(k.graph))
		for id := range k.graph {
			candidates = append(candidates, id)
		}
	}

	var out []QueryResult
	for _, id := range candidates {
		bindings, ok := Match(k, p, id, nil)
		if !ok {
			continue
		}
		edge := k.graph[id]
		exp := 0.5
		if b := edge.Strongest(); b != nil {
			exp = b.Truth.Expectation()
		}
		if exp < opts.MinExpectation {
			continue
		}
		out = append(out, QueryResult{ID: id, Bindings: bindings, Expectation: exp, Edge: edge})
	}

	switch opts.SortBy {
	case "activation":
		sort.SliceStable(out, func(i, j int) bool {
			return k.indices.activation(out[i].ID) > k.indices.activation(out[j].ID)
		})
	case "recent":
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Edge.CreatedAt.After(out[j].Edge.CreatedAt)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Expectation > out[j].Expectation })
	}

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}
