package kernel

import (
	"fmt"
	"time"
)

// Kernel is the single mutable reasoning instance (spec §5's "shared
// resource policy"): every component — hypergraph, indices, event queue,
// derivation rules, contradiction manager, memory manager, learning engine,
// temporal reasoner — hangs off one value. Callers wanting parallelism run
// independent kernels.
type Kernel struct {
	Config *Config
	Bus    *Bus

	graph   map[EdgeID]*Hyperedge
	indices *Indices
	queue   *EventQueue

	rules *RuleRegistry

	Contradiction *ContradictionManager
	Memory        *MemoryManager
	Learning      *LearningEngine
	Temporal      *TemporalReasoner
	Motifs        *MotifMemory

	compositions []*CompositionWatcher
	questions    *questionTable

	currentStep        int
	maintenanceEvery    int
	stopMaintenance     bool
}

// NewKernel wires every component together around a shared configuration.
// Grounded on NewSynapse() in synapse.go, which constructs an
// InMemoryEventNetwork and an empty rule registry the same way.
func NewKernel(cfg *Config) *Kernel {
	if cfg == nil {
		cfg = NewConfig()
	}
	k := &Kernel{
		Config:           cfg,
		Bus:              newBus(),
		graph:            make(map[EdgeID]*Hyperedge),
		indices:          newIndices(int(cfg.Get("derivationCacheSize"))),
		queue:            NewEventQueue(int(cfg.Get("eventQueueSoftCap"))),
		rules:            newRuleRegistry(),
		maintenanceEvery: 50,
		questions:        newQuestionTable(),
	}
	k.Contradiction = newContradictionManager(k)
	k.Memory = newMemoryManager(k)
	k.Learning = newLearningEngine(k)
	k.Temporal = newTemporalReasoner(k)
	k.Motifs = newMotifMemory(4)
	registerBuiltinRules(k)
	return k
}

// GetEdge returns the edge for id, or ok=false if the hypergraph holds no
// such edge.
func (k *Kernel) GetEdge(id EdgeID) (*Hyperedge, bool) {
	e, ok := k.graph[id]
	return e, ok
}

// GetBeliefs returns the belief list (expectation-sorted) for id.
func (k *Kernel) GetBeliefs(id EdgeID) []*Belief {
	e, ok := k.graph[id]
	if !ok {
		return nil
	}
	return append([]*Belief(nil), e.Beliefs...)
}

// edgeCount reports how many hyperedges the graph currently holds, used by
// the memory manager's forgetting pass.
func (k *Kernel) edgeCount() int {
	return len(k.graph)
}

// EdgeCount is the exported form of edgeCount, for callers outside the
// package (the CLI, the HTTP API) that want to report graph size.
func (k *Kernel) EdgeCount() int {
	return k.edgeCount()
}

// AddEdge is addHyperedge (spec §4.1): canonicalizes args, creates or
// revises the edge, refreshes indices, enqueues an add-belief event, and
// runs the contradiction manager on divergence. Returns the canonical id.
func (k *Kernel) AddEdge(edgeType string, args []*Term, opts *AddOptions) (EdgeID, error) {
	if opts == nil {
		opts = &AddOptions{}
	}
	if arity := arityFor(edgeType); arity != -1 && arity != len(args) {
		return "", fmt.Errorf("%w: %s expects %d args, got %d", ErrInvalidInput, edgeType, arity, len(args))
	}
	if opts.Truth != nil {
		if opts.Truth.Frequency < 0 || opts.Truth.Frequency > 1 || opts.Truth.Confidence < 0 || opts.Truth.Confidence >= 1 {
			return "", fmt.Errorf("%w: truth value out of range", ErrInvalidInput)
		}
	}

	argIDs := make([]EdgeID, len(args))
	for i, a := range args {
		id, err := k.resolveArg(a)
		if err != nil {
			return "", err
		}
		argIDs[i] = id
	}

	id := canonicalID(edgeType, argIDs)

	for _, premise := range opts.Premises {
		if premise == id {
			continue
		}
		if _, ok := k.graph[premise]; !ok {
			return "", fmt.Errorf("%w: premise %q not present", ErrInvariantViolation, premise)
		}
	}

	edge, existed := k.graph[id]
	if !existed {
		edge = &Hyperedge{ID: id, Type: edgeType, Args: argIDs, CreatedAt: timestampOrNow(opts.Timestamp)}
		if opts.Temporal != nil {
			edge.Temporal = opts.Temporal
		}
		k.graph[id] = edge
	} else if opts.Temporal != nil {
		edge.Temporal = opts.Temporal
	}

	var contradicted bool
	if opts.Truth != nil {
		budget := k.resolveBudget(opts)
		newBel := newBelief(*opts.Truth, budget, opts.Premises, opts.DerivedBy)
		newBel.Timestamp = timestampOrNow(opts.Timestamp)
		edge.Beliefs, contradicted = k.mergeBelief(edge, newBel)
		k.Memory.CheckGoalAchievement(edge)
	}

	k.indices.indexEdge(edge)
	if existed {
		k.Motifs.onEventTouched(edge)
	} else {
		k.Motifs.onEventAdded(edge)
	}
	k.observeComposition(edge)

	if len(opts.Premises) > 0 {
		var contributors []*Hyperedge
		for _, p := range opts.Premises {
			if c, ok := k.graph[p]; ok {
				contributors = append(contributors, c)
			}
		}
		if len(contributors) > 0 {
			k.Motifs.onMaterialized(edge, contributors, opts.DerivedBy)
			k.Learning.RecordExperience(experience{
				Timestamp:  time.Now(),
				Target:     id,
				Premises:   opts.Premises,
				Conclusion: id,
				Budget:     k.resolveBudget(opts),
				Success:    true,
				Accuracy:   1,
			})
		}
	}

	ev := &Event{
		Target:     id,
		Activation: 1,
		Budget:     k.resolveBudget(opts),
		PathLength: 0,
	}
	if opts.Truth != nil {
		ev.Activation = opts.Truth.Expectation()
	}
	if err := k.queue.Push(ev); err != nil {
		k.Bus.Emit("log", map[string]any{"level": "info", "msg": "event queue overflow", "target": id})
	}

	if contradicted {
		k.Contradiction.notifyDetected(id)
	}

	k.questions.onEdgeChanged(k, edge)

	return id, nil
}

// resolveArg canonicalizes a single argument term, recursing through nested
// compounds by ensuring a shell hyperedge exists for each (spec §4.1:
// "canonicalizes args ... recursing for nested compounds").
func (k *Kernel) resolveArg(t *Term) (EdgeID, error) {
	if t == nil {
		return "", fmt.Errorf("%w: nil term", ErrInvalidInput)
	}
	if len(t.Args) == 0 {
		return t.Name, nil
	}
	id, err := k.AddEdge(t.Type, t.Args, nil)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (k *Kernel) resolveBudget(opts *AddOptions) Budget {
	if opts.Budget != nil {
		return *opts.Budget
	}
	if opts.Truth != nil {
		return budgetFromTruth(*opts.Truth)
	}
	return defaultBudget()
}

func timestampOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

// mergeBelief implements §4.5: a compatible belief is revised with the
// edge's strongest belief and the revised belief takes that strongest
// belief's place; divergent beliefs are both kept and the contradiction
// manager is notified.
func (k *Kernel) mergeBelief(edge *Hyperedge, newBel *Belief) ([]*Belief, bool) {
	capacity := int(k.Config.Get("beliefCapacity"))
	strongest := edge.Strongest()
	if strongest == nil {
		beliefs, dropped := insertBelief(edge.Beliefs, newBel, capacity)
		if dropped != nil {
			k.Bus.Emit("log", map[string]any{"level": "info", "msg": "belief capacity trim", "edge": edge.ID})
		}
		return beliefs, false
	}

	threshold := k.Config.Get("contradictionThreshold")
	delta := absF(strongest.Truth.Frequency - newBel.Truth.Frequency)
	if delta <= threshold {
		revised := Revision(strongest.Truth, newBel.Truth)
		merged := &Belief{
			ID:        newBel.ID,
			Truth:     revised,
			Budget:    strongest.Budget.Merge(newBel.Budget),
			Premises:  append(append([]EdgeID(nil), strongest.Premises...), newBel.Premises...),
			DerivedBy: newBel.DerivedBy,
			Timestamp: newBel.Timestamp,
		}
		rest := edge.Beliefs[1:]
		beliefs, dropped := insertBelief(append([]*Belief(nil), rest...), merged, capacity)
		if dropped != nil {
			k.Bus.Emit("log", map[string]any{"level": "info", "msg": "belief capacity trim", "edge": edge.ID})
		}
		return beliefs, false
	}

	beliefs, dropped := insertBelief(edge.Beliefs, newBel, capacity)
	if dropped != nil {
		k.Bus.Emit("log", map[string]any{"level": "info", "msg": "belief capacity trim", "edge": edge.ID})
	}
	k.Contradiction.attachEvidence(edge.ID, newBel, EvidenceRecord{Strength: newBel.Truth.Confidence, Type: "insertion", AddedAt: newBel.Timestamp})
	k.Contradiction.attachEvidence(edge.ID, strongest, EvidenceRecord{Strength: strongest.Truth.Confidence, Type: "existing", AddedAt: strongest.Timestamp})
	return beliefs, true
}

// Revise is the explicit-revision sugar from spec §6.
func (k *Kernel) Revise(id EdgeID, truth TruthValue, budget Budget) error {
	edge, ok := k.graph[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEdge, id)
	}
	newBel := newBelief(truth, budget, nil, "revise")
	beliefs, contradicted := k.mergeBelief(edge, newBel)
	edge.Beliefs = beliefs
	k.Memory.CheckGoalAchievement(edge)
	if contradicted {
		k.Contradiction.notifyDetected(id)
	}
	k.questions.onEdgeChanged(k, edge)
	return nil
}

// Sugar constructors (spec §6).
func (k *Kernel) InheritanceEdge(subject, predicate *Term, opts *AddOptions) (EdgeID, error) {
	return k.AddEdge("Inheritance", []*Term{subject, predicate}, opts)
}
func (k *Kernel) SimilarityEdge(a, b *Term, opts *AddOptions) (EdgeID, error) {
	return k.AddEdge("Similarity", []*Term{a, b}, opts)
}
func (k *Kernel) ImplicationEdge(premise, conclusion *Term, opts *AddOptions) (EdgeID, error) {
	return k.AddEdge("Implication", []*Term{premise, conclusion}, opts)
}
func (k *Kernel) EquivalenceEdge(a, b *Term, opts *AddOptions) (EdgeID, error) {
	return k.AddEdge("Equivalence", []*Term{a, b}, opts)
}
func (k *Kernel) TermEdge(name string, opts *AddOptions) (EdgeID, error) {
	return k.AddEdge("Term", []*Term{Atom(name)}, opts)
}

// Step pops one event, dispatches it to the derivation engine, and lets
// propagation enqueue whatever follows. Returns false when the queue is
// empty (nothing left to do this step).
func (k *Kernel) Step() bool {
	ev := k.queue.Pop()
	if ev == nil {
		return false
	}
	k.currentStep++

	k.dispatch(ev)
	k.propagateWave(ev)

	if k.maintenanceEvery > 0 && k.currentStep%k.maintenanceEvery == 0 {
		k.RunMaintenance()
	}
	return true
}

// Run steps the kernel up to nSteps times, stopping early once the queue is
// quiescent.
func (k *Kernel) Run(nSteps int) int {
	ran := 0
	for ran < nSteps {
		if !k.Step() {
			break
		}
		ran++
	}
	return ran
}

// RunMaintenance runs the periodic maintenance cycle: importance decay,
// forgetting, rule adaptation, and policy adjustment (spec §2).
func (k *Kernel) RunMaintenance() {
	if k.stopMaintenance {
		return
	}
	k.Memory.Tick()
	k.Learning.ApplyLearning()
	k.Learning.AdaptDerivationRules()
	k.Learning.AdjustPolicy()
	k.Temporal.AdjustTemporalHorizon()
}

// StopMaintenance interrupts the maintenance cycle (spec §5: "interruptible
// by a stop flag; it restarts from the beginning next step").
func (k *Kernel) StopMaintenance(stop bool) {
	k.stopMaintenance = stop
}
