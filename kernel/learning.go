package kernel

import (
	"math"
	"sort"
	"strings"
	"time"
)

// experience is one entry in the bounded experience ring (spec §4.7).
type experience struct {
	Timestamp      time.Time
	DerivationPath []string
	Target         EdgeID
	Premises       []EdgeID
	Conclusion     EdgeID
	Budget         Budget
	Success        bool
	Accuracy       float64
}

// patternStats accumulates outcomes for a derivation signature
// (joinSorted(typeof(premises)) + "=>" + typeof(conclusion)).
type patternStats struct {
	Instances    []experience
	SuccessCount int
	TotalCount   int
	AverageAcc   float64
}

// ruleStats is the learning engine's own productivity counter per rule,
// parallel to (but independent of) the rule's own ruleBase bookkeeping —
// spec §4.7 models it as a separate map the learning engine owns.
type ruleStats struct {
	Successes int
	Attempts  int
}

// LearningEngine watches derivation outcomes, reinforces or weakens belief
// paths, promotes productive patterns into shortcut rules, retires
// unproductive rules, and tunes kernel-wide policy knobs (spec §4.7).
// Grounded on pattern_memory.go's signature->stats map shape; the
// shortcut-synthesis and policy-adjustment behaviors have no teacher
// analogue and follow the spec directly.
type LearningEngine struct {
	k *Kernel

	experienceBuffer []experience
	patternMemory    map[string]*patternStats
	ruleProductivity map[string]*ruleStats

	questionLoadSamples []int
	temporalConstraintCount int
}

func newLearningEngine(k *Kernel) *LearningEngine {
	return &LearningEngine{
		k:                k,
		patternMemory:    make(map[string]*patternStats),
		ruleProductivity: make(map[string]*ruleStats),
	}
}

func signature(premiseTypes []string, conclusionType string) string {
	sorted := append([]string(nil), premiseTypes...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",") + "=>" + conclusionType
}

// recordRuleAttempt is called by dispatch() after every rule execution,
// regardless of whether the rule's condition actually produced a derivation.
func (l *LearningEngine) recordRuleAttempt(ruleName string, success bool) {
	st, ok := l.ruleProductivity[ruleName]
	if !ok {
		st = &ruleStats{}
		l.ruleProductivity[ruleName] = st
	}
	st.Attempts++
	if success {
		st.Successes++
	}
}

// RecordExperience appends an outcome to the experience buffer and the
// pattern-memory table, then reacts: weaken on failure, reinforce on a
// strong success.
func (l *LearningEngine) RecordExperience(ex experience) {
	maxSize := int(l.k.Config.Get("experienceBufferMaxSize"))
	l.experienceBuffer = append(l.experienceBuffer, ex)
	if maxSize > 0 && len(l.experienceBuffer) > maxSize {
		l.experienceBuffer = l.experienceBuffer[len(l.experienceBuffer)-maxSize:]
	}

	premiseTypes := make([]string, 0, len(ex.Premises))
	for _, p := range ex.Premises {
		if e, ok := l.k.graph[p]; ok {
			premiseTypes = append(premiseTypes, e.Type)
		}
	}
	conclType := ""
	if e, ok := l.k.graph[ex.Conclusion]; ok {
		conclType = e.Type
	}
	sig := signature(premiseTypes, conclType)
	st, ok := l.patternMemory[sig]
	if !ok {
		st = &patternStats{}
		l.patternMemory[sig] = st
	}
	st.Instances = append(st.Instances, ex)
	st.TotalCount++
	if ex.Success {
		st.SuccessCount++
	}
	st.AverageAcc = ((st.AverageAcc * float64(st.TotalCount-1)) + ex.Accuracy) / float64(st.TotalCount)

	learningRate := l.k.Config.Get("learningRate")
	if ex.Accuracy < 0.3 || !ex.Success {
		l.analyzeFailure(ex, learningRate)
	} else if ex.Accuracy > 0.8 {
		l.reinforcePattern(ex, learningRate)
	}
}

// analyzeFailure weakens the truth-confidence of each derivation-path step,
// with depth-proportional decay.
func (l *LearningEngine) analyzeFailure(ex experience, learningRate float64) {
	for depth, id := range ex.Premises {
		edge, ok := l.k.graph[id]
		if !ok || edge.Strongest() == nil {
			continue
		}
		b := edge.Strongest()
		delta := learningRate * math.Pow(0.8, float64(depth))
		b.Truth.Confidence = clampConfidence(b.Truth.Confidence - delta)
		sortBeliefs(edge.Beliefs)
	}
}

// reinforcePattern strengthens the same steps symmetrically.
func (l *LearningEngine) reinforcePattern(ex experience, learningRate float64) {
	for depth, id := range ex.Premises {
		edge, ok := l.k.graph[id]
		if !ok || edge.Strongest() == nil {
			continue
		}
		b := edge.Strongest()
		delta := learningRate * math.Pow(0.8, float64(depth))
		b.Truth.Confidence = clampConfidence(b.Truth.Confidence + delta)
		sortBeliefs(edge.Beliefs)
	}
	l.k.Memory.RecordSuccess(ex.Conclusion, 1)
}

// ApplyLearning rolls up recent patterns into shortcut rules (spec §4.7).
func (l *LearningEngine) ApplyLearning() {
	minInstances := int(l.k.Config.Get("patternMinInstances"))
	threshold := l.k.Config.Get("patternSuccessRateThreshold")

	for sig, st := range l.patternMemory {
		if st.TotalCount < minInstances {
			continue
		}
		successRate := float64(st.SuccessCount) / float64(st.TotalCount)
		if successRate <= threshold {
			continue
		}
		l.createShortcutRule(sig, st, successRate)
		delete(l.patternMemory, sig)
	}
}

// createShortcutRule synthesizes Implication(Conjunction(premises...),
// conclusion) with truth (0.9, successRate), an atomic learned rule.
func (l *LearningEngine) createShortcutRule(sig string, st *patternStats, successRate float64) {
	last := st.Instances[len(st.Instances)-1]
	if len(last.Premises) == 0 {
		return
	}
	premiseArgs := make([]*Term, len(last.Premises))
	for i, p := range last.Premises {
		premiseArgs[i] = Atom(p)
	}
	conjID, err := l.k.AddEdge("Conjunction", premiseArgs, nil)
	if err != nil {
		return
	}
	truth := TruthValue{Frequency: 0.9, Confidence: clampConfidence(successRate)}
	id, err := l.k.AddEdge("Implication", []*Term{Atom(conjID), Atom(last.Conclusion)}, &AddOptions{
		Truth: &truth, DerivedBy: "shortcut:" + sig,
	})
	if err != nil {
		return
	}
	l.k.Bus.Emit("shortcut-created", map[string]any{"edge": id, "signature": sig})
}

// AdaptDerivationRules disables underperforming rules and re-enables
// recovered ones (spec §4.7).
func (l *LearningEngine) AdaptDerivationRules() {
	minAttempts := int(l.k.Config.Get("ruleProductivityMinAttempts"))
	disableAt := l.k.Config.Get("ruleDisableEffectivenessThreshold")
	enableAt := l.k.Config.Get("ruleEnableEffectivenessThreshold")

	for _, rule := range l.k.rules.All() {
		st, ok := l.ruleProductivity[rule.Name()]
		if !ok || st.Attempts < minAttempts {
			continue
		}
		effectiveness := float64(st.Successes) / float64(st.Attempts)
		if rule.Enabled() && effectiveness < disableAt {
			rule.SetEnabled(false)
			l.k.Bus.Emit("rule-disabled", map[string]any{"rule": rule.Name()})
		} else if !rule.Enabled() && effectiveness >= enableAt {
			rule.SetEnabled(true)
			l.k.Bus.Emit("rule-enabled", map[string]any{"rule": rule.Name()})
		}
	}
}

// NoteQuestionLoad records the current outstanding-question count for the
// next AdjustPolicy call.
func (l *LearningEngine) NoteQuestionLoad(n int) {
	l.questionLoadSamples = append(l.questionLoadSamples, n)
	if len(l.questionLoadSamples) > 20 {
		l.questionLoadSamples = l.questionLoadSamples[len(l.questionLoadSamples)-20:]
	}
}

// NoteTemporalConstraintCount records the current constraint count for
// AdjustPolicy's temporalHorizon update.
func (l *LearningEngine) NoteTemporalConstraintCount(n int) {
	l.temporalConstraintCount = n
}

// AdjustPolicy tightens or relaxes budgetThreshold under question-queue
// load and raises temporalHorizon with diminishing returns (spec §4.7).
func (l *LearningEngine) AdjustPolicy() {
	if len(l.questionLoadSamples) > 0 {
		sum := 0
		for _, n := range l.questionLoadSamples {
			sum += n
		}
		avg := float64(sum) / float64(len(l.questionLoadSamples))
		cur := l.k.Config.Get("budgetThreshold")
		switch {
		case avg > 10:
			l.k.Config.Set("budgetThreshold", clamp01(cur*1.1))
		case avg < 2:
			l.k.Config.Set("budgetThreshold", clamp01(cur*0.9))
		}
	}

	base := l.k.Config.Get("defaultTemporalHorizon")
	maxHorizon := l.k.Config.Get("maxTemporalHorizon")
	horizon := math.Min(maxHorizon, base+math.Floor(math.Sqrt(float64(l.temporalConstraintCount))))
	l.k.Config.Set("temporalHorizon", horizon)
}
