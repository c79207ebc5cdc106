package kernel

import "sort"

// MemoryManager scores every edge's importance, forgets the lowest-scoring
// edges once the graph exceeds capacity, and allocates attention budgets for
// new work (spec §4.8). Grounded on in_memory_structural_memory.go's habit
// of keeping a flat map alongside the graph and pruning it in one pass;
// the importance-score formula itself has no teacher analogue and follows
// the spec directly.
type MemoryManager struct {
	k     *Kernel
	score map[EdgeID]float64

	recentSuccess map[EdgeID]float64
	questionTerms map[EdgeID]bool
	contextStack  []EdgeID
	goals         map[EdgeID]bool
	achievedGoals map[EdgeID]bool
}

func newMemoryManager(k *Kernel) *MemoryManager {
	return &MemoryManager{
		k:             k,
		score:         make(map[EdgeID]float64),
		recentSuccess: make(map[EdgeID]float64),
		questionTerms: make(map[EdgeID]bool),
		goals:         make(map[EdgeID]bool),
		achievedGoals: make(map[EdgeID]bool),
	}
}

// PushContext records id on the active reasoning-context stack; while it is
// on the stack, Tick adds the context weight to id's own importance.
func (m *MemoryManager) PushContext(id EdgeID) {
	m.contextStack = append(m.contextStack, id)
}

// PopContext removes the most recently pushed context entry, if any.
func (m *MemoryManager) PopContext() {
	if len(m.contextStack) == 0 {
		return
	}
	m.contextStack = m.contextStack[:len(m.contextStack)-1]
}

// MarkGoal flags id as a goal edge; Tick adds the goal weight to that edge's
// own importance on every pass.
func (m *MemoryManager) MarkGoal(id EdgeID) {
	m.goals[id] = true
}

// RecordSuccess notes a recent learning success on id, boosting its
// importance; Tick multiplies the boost by the decay factor each pass and
// drops it once it falls below 0.001.
func (m *MemoryManager) RecordSuccess(id EdgeID, amount float64) {
	m.recentSuccess[id] += amount
}

// CheckGoalAchievement emits goal-achieved the first time a goal-marked
// edge's strongest belief crosses inferenceThreshold. Tracked in
// achievedGoals so the event fires once per goal, not once per belief
// revision above threshold.
func (m *MemoryManager) CheckGoalAchievement(edge *Hyperedge) {
	if edge == nil || !m.goals[edge.ID] || m.achievedGoals[edge.ID] {
		return
	}
	strongest := edge.Strongest()
	if strongest == nil {
		return
	}
	if strongest.Truth.Expectation() < m.k.Config.Get("inferenceThreshold") {
		return
	}
	m.achievedGoals[edge.ID] = true
	m.k.Bus.Emit("goal-achieved", map[string]any{
		"edge":        edge.ID,
		"expectation": strongest.Truth.Expectation(),
	})
}

// Tick runs one maintenance pass: decay every importance score, apply
// additive boosts, and forget the lowest-scoring edges if over capacity.
func (m *MemoryManager) Tick() {
	decay := m.k.Config.Get("importanceDecayFactor")
	actW := m.k.Config.Get("importanceActivationWeight")
	qW := m.k.Config.Get("importanceQuestionWeight")
	succW := m.k.Config.Get("importanceSuccessWeight")
	ctxW := m.k.Config.Get("importanceContextWeight")
	goalW := m.k.Config.Get("importanceGoalWeight")

	inContext := make(map[EdgeID]bool, len(m.contextStack))
	for _, id := range m.contextStack {
		inContext[id] = true
	}

	for id := range m.k.graph {
		cur := m.score[id]
		cur *= decay

		cur += actW * m.k.indices.activation(id)
		if m.questionTerms[id] {
			cur += qW
		}
		if s, ok := m.recentSuccess[id]; ok {
			cur += succW * s
		}
		if inContext[id] {
			cur += ctxW
		}
		if m.goals[id] {
			cur += goalW
		}
		m.score[id] = clamp01(cur)
	}
	for id := range m.recentSuccess {
		m.recentSuccess[id] *= decay
		if m.recentSuccess[id] < 0.001 {
			delete(m.recentSuccess, id)
		}
	}

	m.forget()
}

// forget removes the lowest-scoring edges once the graph exceeds capacity,
// breaking ties deterministically by edge id (resolved Open Question: no
// randomization, so repeated runs over identical state forget identically).
func (m *MemoryManager) forget() {
	capacity := int(m.k.Config.Get("capacity"))
	if capacity <= 0 || m.k.edgeCount() <= capacity {
		return
	}
	overflow := m.k.edgeCount() - capacity

	type scored struct {
		id    EdgeID
		score float64
	}
	all := make([]scored, 0, len(m.k.graph))
	for id := range m.k.graph {
		all = append(all, scored{id: id, score: m.score[id]})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score < all[j].score
		}
		return all[i].id < all[j].id
	})

	for i := 0; i < overflow && i < len(all); i++ {
		id := all[i].id
		edge, ok := m.k.graph[id]
		if !ok {
			continue
		}
		delete(m.k.graph, id)
		delete(m.score, id)
		m.k.indices.removeEdge(edge)
		m.k.Bus.Emit("pruned", map[string]any{"edge": id})
	}
}

// AllocateResources derives a new budget from task hints and an optional
// parent budget (spec §4.8).
func (m *MemoryManager) AllocateResources(importance, urgency float64, parent *Budget) Budget {
	b := Budget{
		Priority:   clamp01(0.5*importance + 0.5*urgency),
		Durability: clamp01(importance),
		Quality:    clamp01(0.5 + 0.5*importance),
	}
	if parent != nil {
		b = b.Merge(*parent)
	}
	return b
}
