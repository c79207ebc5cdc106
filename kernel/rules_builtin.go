package kernel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// registerBuiltinRules wires every built-in derivation rule from spec §4.4
// into k's registry. Priorities are spaced out so the tie-break rule
// (usageCount desc, then name) only matters among rules of genuinely equal
// weight.
func registerBuiltinRules(k *Kernel) {
	reg := k.rules
	reg.Register(ruleInheritanceTransitivity())
	reg.Register(ruleSimilarityFromInheritance())
	reg.Register(rulePropertyInheritance())
	reg.Register(ruleInduction())
	reg.Register(ruleSimilaritySymmetry())
	reg.Register(ruleAnalogy())
	reg.Register(ruleImplicationForward())
	reg.Register(ruleEquivalenceDecomposition())
	reg.Register(ruleConjunctionDecomposition())
	reg.Register(ruleConsequentConjunction())
	reg.Register(ruleTemporalTransitivity())
	reg.Register(ruleMetaLearning())
}

// edgesByTypeAndArgPos returns every hyperedge of the given type whose args[pos]
// equals val, using byArg as the candidate set.
func edgesByTypeAndArgPos(k *Kernel, edgeType string, pos int, val EdgeID) []*Hyperedge {
	var out []*Hyperedge
	for _, id := range k.indices.byArgIDs(val) {
		e, ok := k.graph[id]
		if !ok || e.Type != edgeType || len(e.Args) <= pos || e.Args[pos] != val {
			continue
		}
		out = append(out, e)
	}
	return out
}

// derivationGuard implements the "derivationCache[...] and memoization[...] ≤
// pathLength" guard spec §4.4 attaches to every multi-premise rule: skip when
// this conclusion was already reached at an equal-or-shorter path.
func derivationGuard(k *Kernel, cacheKey, memoKey string, pathLength int) bool {
	if k.indices.derivationCache.Contains(cacheKey) {
		if prior, ok := k.indices.memoizedAt(memoKey); ok && pathLength >= prior {
			return false
		}
	}
	k.indices.derivationCache.Add(cacheKey)
	k.indices.memoize(memoKey, pathLength)
	return true
}

func ruleInheritanceTransitivity() Rule {
	return newFuncRule("inheritance-transitivity", 0.9, 0.8,
		func(k *Kernel, ev *Event, edge *Hyperedge) bool {
			return edge.Type == "Inheritance" && len(edge.Args) == 2
		},
		func(k *Kernel, ev *Event, edge *Hyperedge) error {
			s, m := edge.Args[0], edge.Args[1]
			factor := k.Config.Get("transitiveInheritanceBudgetFactor")

			for _, e2 := range edgesByTypeAndArgPos(k, "Inheritance", 0, m) {
				p := e2.Args[1]
				if p == s {
					continue
				}
				if err := deriveInheritanceTransitive(k, ev, s, m, p, edge, e2, factor); err != nil {
					return err
				}
			}
			for _, e1 := range edgesByTypeAndArgPos(k, "Inheritance", 1, edge.Args[0]) {
				s2, m2, p2 := e1.Args[0], edge.Args[0], edge.Args[1]
				if s2 == p2 {
					continue
				}
				if err := deriveInheritanceTransitive(k, ev, s2, m2, p2, e1, edge, factor); err != nil {
					return err
				}
			}
			return nil
		})
}

func deriveInheritanceTransitive(k *Kernel, ev *Event, s, m, p EdgeID, e1, e2 *Hyperedge, factor float64) error {
	cacheKey := fmt.Sprintf("%s->%s|%s|%s", s, p, e1.ID, e2.ID)
	memoKey := fmt.Sprintf("Inheritance(%s,%s)|%d", s, p, ev.PathHash)
	if !derivationGuard(k, cacheKey, memoKey, ev.PathLength) {
		return nil
	}
	b1, b2 := e1.Strongest(), e2.Strongest()
	if b1 == nil || b2 == nil {
		return nil
	}
	truth := Transitive(b1.Truth, b2.Truth)
	budget := b1.Budget.Merge(b2.Budget).Scale(factor)
	id, err := k.AddEdge("Inheritance", []*Term{Atom(s), Atom(p)}, &AddOptions{
		Truth: &truth, Budget: &budget, Premises: []EdgeID{e1.ID, e2.ID}, DerivedBy: "inheritance-transitivity",
	})
	if err != nil {
		return err
	}
	_ = id
	return nil
}

func ruleSimilarityFromInheritance() Rule {
	return newFuncRule("similarity-from-inheritance", 0.6, 0.5,
		func(k *Kernel, ev *Event, edge *Hyperedge) bool {
			return edge.Type == "Inheritance" && len(edge.Args) == 2 && edge.Strongest() != nil
		},
		func(k *Kernel, ev *Event, edge *Hyperedge) error {
			factor := k.Config.Get("similarityFromInheritanceBudgetFactor")
			truth := TruthValue{Frequency: 1, Confidence: 0.9}
			budget := budgetFromTruth(truth).Scale(factor)
			_, err := k.AddEdge("Similarity", []*Term{Atom(edge.Args[0]), Atom(edge.Args[1])}, &AddOptions{
				Truth: &truth, Budget: &budget, Premises: []EdgeID{edge.ID}, DerivedBy: "similarity-from-inheritance",
			})
			return err
		})
}

func rulePropertyInheritance() Rule {
	return newFuncRule("property-inheritance", 0.5, 0.5,
		func(k *Kernel, ev *Event, edge *Hyperedge) bool {
			return (edge.Type == "Instance" || edge.Type == "Property") && len(edge.Args) == 2
		},
		func(k *Kernel, ev *Event, edge *Hyperedge) error {
			budFactor := k.Config.Get("propertyInheritanceBudgetFactor")

			propagate := func(subject, class EdgeID, anchor *Hyperedge) error {
				for _, prop := range edgesByTypeAndArgPos(k, "Property", 0, class) {
					b := prop.Strongest()
					if b == nil {
						continue
					}
					budget := b.Budget.Scale(budFactor)
					_, err := k.AddEdge("Property", []*Term{Atom(subject), Atom(prop.Args[1])}, &AddOptions{
						Truth: &b.Truth, Budget: &budget, Premises: []EdgeID{anchor.ID, prop.ID}, DerivedBy: "property-inheritance",
					})
					if err != nil {
						return err
					}
				}
				return nil
			}

			if edge.Type == "Instance" {
				return propagate(edge.Args[0], edge.Args[1], edge)
			}
			for _, inst := range edgesByTypeAndArgPos(k, "Instance", 1, edge.Args[0]) {
				if err := propagate(inst.Args[0], edge.Args[0], edge); err != nil {
					return err
				}
			}
			return nil
		})
}

func ruleInduction() Rule {
	return newFuncRule("induction", 0.55, 0.5,
		func(k *Kernel, ev *Event, edge *Hyperedge) bool {
			return edge.Type == "Inheritance" && len(edge.Args) == 2 && edge.Strongest() != nil
		},
		func(k *Kernel, ev *Event, edge *Hyperedge) error {
			a, p := edge.Args[0], edge.Args[1]
			factor := k.Config.Get("inductiveSimilarityBudgetFactor")
			for _, other := range edgesByTypeAndArgPos(k, "Inheritance", 1, p) {
				b := other.Args[0]
				if b == a {
					continue
				}
				cacheKey := fmt.Sprintf("induction:%s~%s|%s|%s", a, b, edge.ID, other.ID)
				memoKey := fmt.Sprintf("Similarity(%s,%s)|%d", a, b, ev.PathHash)
				if !derivationGuard(k, cacheKey, memoKey, ev.PathLength) {
					continue
				}
				t1, t2 := edge.Strongest().Truth, other.Strongest().Truth
				truth := Induction(t1, t2)
				budget := edge.Strongest().Budget.Merge(other.Strongest().Budget).Scale(factor)
				if _, err := k.AddEdge("Similarity", []*Term{Atom(a), Atom(b)}, &AddOptions{
					Truth: &truth, Budget: &budget, Premises: []EdgeID{edge.ID, other.ID}, DerivedBy: "induction",
				}); err != nil {
					return err
				}
			}
			return nil
		})
}

func ruleSimilaritySymmetry() Rule {
	return newFuncRule("similarity-symmetry", 0.7, 0.6,
		func(k *Kernel, ev *Event, edge *Hyperedge) bool {
			return edge.Type == "Similarity" && len(edge.Args) == 2 && edge.Strongest() != nil
		},
		func(k *Kernel, ev *Event, edge *Hyperedge) error {
			factor := k.Config.Get("similaritySymmetryBudgetFactor")
			b := edge.Strongest()
			budget := b.Budget.Scale(factor)
			_, err := k.AddEdge("Similarity", []*Term{Atom(edge.Args[1]), Atom(edge.Args[0])}, &AddOptions{
				Truth: &b.Truth, Budget: &budget, Premises: []EdgeID{edge.ID}, DerivedBy: "similarity-symmetry",
			})
			return err
		})
}

func ruleAnalogy() Rule {
	return newFuncRule("analogy", 0.55, 0.5,
		func(k *Kernel, ev *Event, edge *Hyperedge) bool {
			return (edge.Type == "Similarity" || edge.Type == "Inheritance") && len(edge.Args) == 2 && edge.Strongest() != nil
		},
		func(k *Kernel, ev *Event, edge *Hyperedge) error {
			factor := k.Config.Get("analogyBudgetFactor")

			derive := func(a, b, p EdgeID, sim, inh *Hyperedge) error {
				cacheKey := fmt.Sprintf("analogy:%s=>%s|%s|%s", b, p, sim.ID, inh.ID)
				memoKey := fmt.Sprintf("Inheritance(%s,%s)|%d", b, p, ev.PathHash)
				if !derivationGuard(k, cacheKey, memoKey, ev.PathLength) {
					return nil
				}
				truth := Analogy(sim.Strongest().Truth, inh.Strongest().Truth)
				budget := sim.Strongest().Budget.Merge(inh.Strongest().Budget).Scale(factor)
				_, err := k.AddEdge("Inheritance", []*Term{Atom(b), Atom(p)}, &AddOptions{
					Truth: &truth, Budget: &budget, Premises: []EdgeID{sim.ID, inh.ID}, DerivedBy: "analogy",
				})
				_ = a
				return err
			}

			if edge.Type == "Similarity" {
				a, b := edge.Args[0], edge.Args[1]
				for _, inh := range edgesByTypeAndArgPos(k, "Inheritance", 0, a) {
					if err := derive(a, b, inh.Args[1], edge, inh); err != nil {
						return err
					}
				}
				return nil
			}
			a, p := edge.Args[0], edge.Args[1]
			for _, sim := range edgesByTypeAndArgPos(k, "Similarity", 0, a) {
				if err := derive(a, sim.Args[1], p, sim, edge); err != nil {
					return err
				}
			}
			return nil
		})
}

func ruleImplicationForward() Rule {
	return newFuncRule("implication-forward", 0.85, 0.75,
		func(k *Kernel, ev *Event, edge *Hyperedge) bool {
			if edge.Type == "Implication" && len(edge.Args) == 2 {
				if p, ok := k.graph[edge.Args[0]]; ok && p.Strongest() != nil {
					return true
				}
				return false
			}
			return len(edgesByTypeAndArgPos(k, "Implication", 0, edge.ID)) > 0 && edge.Strongest() != nil
		},
		func(k *Kernel, ev *Event, edge *Hyperedge) error {
			actFactor := k.Config.Get("implicationActivationFactor")
			budFactor := k.Config.Get("implicationBudgetFactor")

			apply := func(impl *Hyperedge, premise *Hyperedge) error {
				c := impl.Args[1]
				tImpl, tP := impl.Strongest().Truth, premise.Strongest().Truth
				truth := Deduced(tP, tImpl)
				budget := impl.Strongest().Budget.Merge(premise.Strongest().Budget).Scale(budFactor)
				if err := k.Revise(c, truth, budget); err != nil && !errors.Is(err, ErrUnknownEdge) {
					return err
				}
				derived := &Event{
					Target:     c,
					Activation: premise.Strongest().Truth.Expectation() * actFactor,
					Budget:     budget,
					PathHash:   ev.PathHash ^ hashString(c),
					PathLength: ev.PathLength + 1,
				}
				k.propagate(derived)
				return nil
			}

			if edge.Type == "Implication" {
				premise := k.graph[edge.Args[0]]
				return apply(edge, premise)
			}
			for _, impl := range edgesByTypeAndArgPos(k, "Implication", 0, edge.ID) {
				if err := apply(impl, edge); err != nil {
					return err
				}
			}
			return nil
		})
}

func ruleEquivalenceDecomposition() Rule {
	return newFuncRule("equivalence-decomposition", 0.5, 0.5,
		func(k *Kernel, ev *Event, edge *Hyperedge) bool {
			return edge.Type == "Equivalence" && len(edge.Args) == 2 && edge.Strongest() != nil
		},
		func(k *Kernel, ev *Event, edge *Hyperedge) error {
			factor := k.Config.Get("equivalenceBudgetFactor")
			b := edge.Strongest()
			budget := b.Budget.Scale(factor)
			a0, a1 := edge.Args[0], edge.Args[1]
			if _, err := k.AddEdge("Implication", []*Term{Atom(a0), Atom(a1)}, &AddOptions{
				Truth: &b.Truth, Budget: &budget, Premises: []EdgeID{edge.ID}, DerivedBy: "equivalence-decomposition",
			}); err != nil {
				return err
			}
			_, err := k.AddEdge("Implication", []*Term{Atom(a1), Atom(a0)}, &AddOptions{
				Truth: &b.Truth, Budget: &budget, Premises: []EdgeID{edge.ID}, DerivedBy: "equivalence-decomposition",
			})
			return err
		})
}

func ruleConjunctionDecomposition() Rule {
	return newFuncRule("conjunction-decomposition", 0.45, 0.4,
		func(k *Kernel, ev *Event, edge *Hyperedge) bool {
			return edge.Type == "Conjunction" && len(edge.Args) > 0
		},
		func(k *Kernel, ev *Event, edge *Hyperedge) error {
			actFactor := k.Config.Get("conjunctionActivationFactor")
			budFactor := k.Config.Get("conjunctionBudgetFactor")
			for _, arg := range edge.Args {
				derived := &Event{
					Target:     arg,
					Activation: ev.Activation * actFactor,
					Budget:     ev.Budget.Scale(budFactor),
					PathHash:   ev.PathHash ^ hashString(arg),
					PathLength: ev.PathLength + 1,
				}
				k.propagate(derived)
			}
			return nil
		})
}

func ruleConsequentConjunction() Rule {
	return newFuncRule("consequent-conjunction", 0.5, 0.45,
		func(k *Kernel, ev *Event, edge *Hyperedge) bool {
			if edge.Type != "Implication" || len(edge.Args) != 2 || edge.Strongest() == nil {
				return false
			}
			conj, ok := k.graph[edge.Args[1]]
			return ok && conj.Type == "Conjunction" && len(conj.Args) >= 2
		},
		func(k *Kernel, ev *Event, edge *Hyperedge) error {
			conj := k.graph[edge.Args[1]]
			truth := Deduced(edge.Strongest().Truth, Certain())
			budget := edge.Strongest().Budget
			for _, conclusion := range conj.Args {
				if _, err := k.AddEdge("Implication", []*Term{Atom(edge.Args[0]), Atom(conclusion)}, &AddOptions{
					Truth: &truth, Budget: &budget, Premises: []EdgeID{edge.ID, conj.ID}, DerivedBy: "consequent-conjunction",
				}); err != nil {
					return err
				}
			}
			return nil
		})
}

func ruleTemporalTransitivity() Rule {
	return newFuncRule("temporal-transitivity", 0.6, 0.5,
		func(k *Kernel, ev *Event, edge *Hyperedge) bool {
			return edge.Type == "TemporalRelation" && len(edge.Args) == 3
		},
		func(k *Kernel, ev *Event, edge *Hyperedge) error {
			return k.Temporal.deriveTransitive(k, ev, edge)
		})
}

func ruleMetaLearning() Rule {
	return newFuncRule("meta-learning", 0.95, 0.9,
		func(k *Kernel, ev *Event, edge *Hyperedge) bool {
			if edge.Type != "Inheritance" || len(edge.Args) != 2 {
				return false
			}
			return strings.HasPrefix(edge.Args[0], "Term(*,") && strings.HasSuffix(edge.Args[0], ")")
		},
		func(k *Kernel, ev *Event, edge *Hyperedge) error {
			configKey := strings.TrimSuffix(strings.TrimPrefix(edge.Args[0], "Term(*,"), ")")
			if !k.Config.IsRecognized(configKey) {
				return nil
			}
			value, err := strconv.ParseFloat(edge.Args[1], 64)
			if err != nil {
				return nil
			}
			k.Config.Set(configKey, value)
			k.Bus.Emit("meta-learning-applied", map[string]any{"configKey": configKey, "value": value})
			return nil
		})
}
