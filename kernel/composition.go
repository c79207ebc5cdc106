package kernel

import (
	"sort"
	"time"
)

// CompositionSpec names a set of edge types that must all be touched within
// TimeWindow for a composition to be recognized.
type CompositionSpec struct {
	ID               string
	RequiredTypes    map[string]struct{}
	TimeWindow       time.Duration
	MinOccurrences   map[string]int
}

// CompositionWatcher detects when every required type in a CompositionSpec
// has been touched within its time window, emitting
// pattern-composition-recognized. Grounded on pattern_composition.go's
// PatternCompositionWatcher, simplified: it watches hyperedge types directly
// rather than motif matches, since the kernel's motif layer (motif.go)
// already plays the teacher's pattern-recognition role.
type CompositionWatcher struct {
	spec CompositionSpec

	recent   map[string][]time.Time
	counts   map[string]int
	lastEdge map[string]EdgeID
}

func newCompositionWatcher(spec CompositionSpec) *CompositionWatcher {
	if spec.MinOccurrences == nil {
		spec.MinOccurrences = make(map[string]int)
	}
	for t := range spec.RequiredTypes {
		if spec.MinOccurrences[t] == 0 {
			spec.MinOccurrences[t] = 1
		}
	}
	return &CompositionWatcher{
		spec:     spec,
		recent:   make(map[string][]time.Time),
		counts:   make(map[string]int),
		lastEdge: make(map[string]EdgeID),
	}
}

// Observe records that edgeID, an edge of edgeType, was touched at t and
// reports whether the composition is now fully recognized.
func (w *CompositionWatcher) Observe(edgeType string, edgeID EdgeID, t time.Time) bool {
	if _, required := w.spec.RequiredTypes[edgeType]; !required {
		return false
	}
	w.recent[edgeType] = append(w.recent[edgeType], t)
	w.counts[edgeType]++
	w.lastEdge[edgeType] = edgeID
	w.cleanup(t)

	for rt := range w.spec.RequiredTypes {
		if w.counts[rt] < w.spec.MinOccurrences[rt] {
			return false
		}
		if len(w.recent[rt]) == 0 {
			return false
		}
	}
	return true
}

// ConceptArgs returns the most recent edge touched for each required type,
// ordered by type name for deterministic Concept-edge identity.
func (w *CompositionWatcher) ConceptArgs() []EdgeID {
	types := make([]string, 0, len(w.spec.RequiredTypes))
	for t := range w.spec.RequiredTypes {
		types = append(types, t)
	}
	sort.Strings(types)
	args := make([]EdgeID, 0, len(types))
	for _, t := range types {
		if id, ok := w.lastEdge[t]; ok {
			args = append(args, id)
		}
	}
	return args
}

func (w *CompositionWatcher) cleanup(now time.Time) {
	if w.spec.TimeWindow <= 0 {
		return
	}
	cutoff := now.Add(-w.spec.TimeWindow)
	for t, times := range w.recent {
		kept := times[:0]
		for _, ts := range times {
			if ts.After(cutoff) {
				kept = append(kept, ts)
			}
		}
		if len(kept) == 0 {
			delete(w.recent, t)
			w.counts[t] = 0
		} else {
			w.recent[t] = kept
		}
	}
}

// RegisterComposition adds a composition watcher to the kernel.
func (k *Kernel) RegisterComposition(spec CompositionSpec) {
	k.compositions = append(k.compositions, newCompositionWatcher(spec))
}

// observeComposition feeds every registered watcher and, for any composition
// newly recognized, forms a Concept hyperedge over the edges that fulfilled
// it and emits pattern-composition-recognized and concept-formed.
func (k *Kernel) observeComposition(edge *Hyperedge) {
	now := time.Now()
	for _, w := range k.compositions {
		if !w.Observe(edge.Type, edge.ID, now) {
			continue
		}
		k.Bus.Emit("pattern-composition-recognized", map[string]any{"composition": w.spec.ID})

		args := w.ConceptArgs()
		terms := make([]*Term, len(args))
		for i, id := range args {
			terms[i] = Atom(id)
		}
		conceptID, err := k.AddEdge("Concept", terms, &AddOptions{
			Truth:     &TruthValue{Frequency: 1, Confidence: 0.5},
			DerivedBy: "composition:" + w.spec.ID,
		})
		if err != nil {
			continue
		}
		k.Bus.Emit("concept-formed", map[string]any{"concept": conceptID, "composition": w.spec.ID})
	}
}
