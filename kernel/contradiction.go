package kernel

import "time"

// ContradictionManager tracks divergent beliefs per edge and resolves them
// on demand (spec §4.6). Evidence is belief-scoped (resolved Open
// Question): each EvidenceRecord attaches to a specific Belief rather than
// the edge as a whole, so resolve() can compare competing beliefs directly
// instead of an edge-wide aggregate.
//
// Not grounded on any teacher mechanism directly — the teacher repo has no
// contradiction concept — built from edge.go's EvidenceRecord per spec
// §4.6's contract.
type ContradictionManager struct {
	k *Kernel

	// detected tracks edges with an unresolved contradiction, so repeated
	// divergent inserts on the same edge emit contradiction-detected once
	// per distinct divergence episode rather than on every insert.
	detected map[EdgeID]bool
}

func newContradictionManager(k *Kernel) *ContradictionManager {
	return &ContradictionManager{k: k, detected: make(map[EdgeID]bool)}
}

// attachEvidence appends an evidence record to belief (spec §4.6:
// addEvidence(edgeId, beliefId, {source,strength,type})).
func (cm *ContradictionManager) attachEvidence(edgeID EdgeID, belief *Belief, rec EvidenceRecord) {
	if rec.AddedAt.IsZero() {
		rec.AddedAt = time.Now()
	}
	belief.Evidence = append(belief.Evidence, rec)
}

// notifyDetected marks edgeID as having an unresolved contradiction and
// emits contradiction-detected, once per divergence episode.
func (cm *ContradictionManager) notifyDetected(edgeID EdgeID) {
	if cm.detected[edgeID] {
		return
	}
	cm.detected[edgeID] = true
	cm.k.Bus.Emit("contradiction-detected", map[string]any{"edge": edgeID})
}

// beliefSummary is the shape analyze() reports for each competing belief.
type beliefSummary struct {
	BeliefID    string  `json:"beliefId"`
	Frequency   float64 `json:"frequency"`
	Confidence  float64 `json:"confidence"`
	Expectation float64 `json:"expectation"`
	Strength    float64 `json:"strength"`
}

// analysisReport is the return shape of analyze().
type analysisReport struct {
	Contradictions      []beliefSummary `json:"contradictions"`
	ResolutionSuggestion struct {
		Resolved  bool   `json:"resolved"`
		WinnerID  string `json:"winnerId,omitempty"`
		Rationale string `json:"rationale"`
	} `json:"resolutionSuggestion"`
}

// aggregateStrength is Σ evidence.strength + confidence, the score resolve()
// maximizes.
func aggregateStrength(b *Belief) float64 {
	total := b.Truth.Confidence
	for _, ev := range b.Evidence {
		total += ev.Strength
	}
	return total
}

// Analyze reports every belief competing on edgeID and a resolution
// suggestion, without mutating state.
func (cm *ContradictionManager) Analyze(edgeID EdgeID) (analysisReport, bool) {
	edge, ok := cm.k.graph[edgeID]
	if !ok || len(edge.Beliefs) < 2 {
		return analysisReport{}, false
	}
	var report analysisReport
	var winner *Belief
	best := -1.0
	for _, b := range edge.Beliefs {
		report.Contradictions = append(report.Contradictions, beliefSummary{
			BeliefID:    b.ID,
			Frequency:   b.Truth.Frequency,
			Confidence:  b.Truth.Confidence,
			Expectation: b.Truth.Expectation(),
			Strength:    aggregateStrength(b),
		})
		if s := aggregateStrength(b); s > best {
			best = s
			winner = b
		}
	}
	report.ResolutionSuggestion.Resolved = winner != nil
	if winner != nil {
		report.ResolutionSuggestion.WinnerID = winner.ID
		report.ResolutionSuggestion.Rationale = "highest aggregate strength+confidence"
	}
	return report, true
}

// Resolve picks the belief with the highest aggregate strength+confidence,
// discards every other belief on the edge, and emits contradiction-resolved.
func (cm *ContradictionManager) Resolve(edgeID EdgeID) (*Belief, bool) {
	edge, ok := cm.k.graph[edgeID]
	if !ok || len(edge.Beliefs) == 0 {
		return nil, false
	}
	winner := edge.Beliefs[0]
	best := aggregateStrength(winner)
	for _, b := range edge.Beliefs[1:] {
		if s := aggregateStrength(b); s > best {
			best = s
			winner = b
		}
	}
	edge.Beliefs = []*Belief{winner}
	delete(cm.detected, edgeID)
	cm.k.Bus.Emit("contradiction-resolved", map[string]any{"edge": edgeID, "winner": winner.ID})
	return winner, true
}
