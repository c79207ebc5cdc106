package kernel

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// EdgeID is a hyperedge's canonical string identity: type(arg1,arg2,...).
type EdgeID = string

// EvidenceRecord is a single piece of support or refutation attached to a
// belief (spec §9 open question: evidence is belief-scoped, not
// edge-scoped; edge-level aggregation is derived by walking every belief).
type EvidenceRecord struct {
	ID       string
	Source   string
	Strength float64
	Type     string
	AddedAt  time.Time
}

// Belief is a truth-valued, budgeted, justified assertion attached to a
// hyperedge.
type Belief struct {
	ID        string
	Truth     TruthValue
	Budget    Budget
	Premises  []EdgeID
	DerivedBy string
	Timestamp time.Time
	Evidence  []EvidenceRecord
}

func newBelief(truth TruthValue, budget Budget, premises []EdgeID, derivedBy string) *Belief {
	return &Belief{
		ID:        uuid.NewString(),
		Truth:     truth,
		Budget:    budget,
		Premises:  append([]EdgeID(nil), premises...),
		DerivedBy: derivedBy,
		Timestamp: time.Now(),
	}
}

// Hyperedge is a typed n-ary relation holding a bounded, expectation-sorted
// list of beliefs.
type Hyperedge struct {
	ID        EdgeID
	Type      string
	Args      []EdgeID
	Beliefs   []*Belief
	Temporal  *TemporalTag
	CreatedAt time.Time
}

// TemporalTag marks an edge carrying an explicit interval, used by the
// temporal reasoner (spec §4.9) to recognize TimeInterval/TemporalRelation
// edges without a type switch at every call site.
type TemporalTag struct {
	Start float64
	End   float64
}

// Strongest is the edge's first (highest-expectation) belief, or nil for an
// edge with no beliefs yet.
func (h *Hyperedge) Strongest() *Belief {
	if len(h.Beliefs) == 0 {
		return nil
	}
	return h.Beliefs[0]
}

// sortBeliefs keeps the belief list ordered by expectation descending
// (invariant 2).
func sortBeliefs(beliefs []*Belief) {
	sort.SliceStable(beliefs, func(i, j int) bool {
		return beliefs[i].Truth.Expectation() > beliefs[j].Truth.Expectation()
	})
}

// insertBelief inserts a belief into an expectation-sorted, capacity-bounded
// list, dropping the weakest belief when the capacity is exceeded (invariant
// 2). Returns the dropped belief, if any.
func insertBelief(beliefs []*Belief, b *Belief, capacity int) ([]*Belief, *Belief) {
	beliefs = append(beliefs, b)
	sortBeliefs(beliefs)
	if capacity > 0 && len(beliefs) > capacity {
		dropped := beliefs[len(beliefs)-1]
		beliefs = beliefs[:len(beliefs)-1]
		return beliefs, dropped
	}
	return beliefs, nil
}
