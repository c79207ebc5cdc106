package kernel

import (
	"encoding/json"
	"time"
)

// persistedTruth mirrors the bit-exact {f,c,p?} layout spec §6 names for a
// belief's truth value; p is reserved for a future priority tag and always
// omitted today.
type persistedTruth struct {
	F float64 `json:"f"`
	C float64 `json:"c"`
}

type persistedBudget struct {
	P float64 `json:"p"`
	D float64 `json:"d"`
	Q float64 `json:"q"`
}

type persistedBelief struct {
	Truth     persistedTruth  `json:"truth"`
	Budget    persistedBudget `json:"budget"`
	Premises  []EdgeID        `json:"premises"`
	DerivedBy string          `json:"derivedBy"`
	Timestamp time.Time       `json:"timestamp"`
}

type persistedEdge struct {
	ID      EdgeID            `json:"id"`
	Type    string            `json:"type"`
	Args    []EdgeID          `json:"args"`
	Beliefs []persistedBelief `json:"beliefs"`
}

type persistedState struct {
	Version     string            `json:"version"`
	Timestamp   time.Time         `json:"timestamp"`
	Config      map[string]float64 `json:"config"`
	CurrentStep int               `json:"currentStep"`
	Hypergraph  []persistedEdge   `json:"hypergraph"`
}

// SaveState serializes the kernel's durable state (spec §6): config,
// currentStep, and every hyperedge's beliefs. Indices, caches, and the
// event queue are intentionally excluded — LoadState rebuilds the indices
// from the stored edges and starts with an empty queue.
func (k *Kernel) SaveState() ([]byte, error) {
	state := persistedState{
		Version:     "1.0",
		Timestamp:   time.Now(),
		Config:      k.Config.Snapshot(),
		CurrentStep: k.currentStep,
	}
	for _, edge := range k.graph {
		pe := persistedEdge{ID: edge.ID, Type: edge.Type, Args: append([]EdgeID(nil), edge.Args...)}
		for _, b := range edge.Beliefs {
			pe.Beliefs = append(pe.Beliefs, persistedBelief{
				Truth:     persistedTruth{F: b.Truth.Frequency, C: b.Truth.Confidence},
				Budget:    persistedBudget{P: b.Budget.Priority, D: b.Budget.Durability, Q: b.Budget.Quality},
				Premises:  b.Premises,
				DerivedBy: b.DerivedBy,
				Timestamp: b.Timestamp,
			})
		}
		state.Hypergraph = append(state.Hypergraph, pe)
	}
	return json.Marshal(state)
}

// LoadState replaces the kernel's hypergraph and config with the contents
// of data, rebuilding every index from scratch. The event queue starts
// empty; callers that need propagation to resume should re-seed it.
func (k *Kernel) LoadState(data []byte) error {
	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}

	cfg := NewConfig()
	for key, v := range state.Config {
		cfg.Set(key, v)
	}
	k.Config = cfg
	k.currentStep = state.CurrentStep

	k.graph = make(map[EdgeID]*Hyperedge, len(state.Hypergraph))
	k.indices = newIndices(int(cfg.Get("derivationCacheSize")))
	k.queue = NewEventQueue(int(cfg.Get("eventQueueSoftCap")))

	for _, pe := range state.Hypergraph {
		edge := &Hyperedge{ID: pe.ID, Type: pe.Type, Args: pe.Args}
		for _, pb := range pe.Beliefs {
			edge.Beliefs = append(edge.Beliefs, &Belief{
				Truth:     TruthValue{Frequency: pb.Truth.F, Confidence: pb.Truth.C},
				Budget:    Budget{Priority: pb.Budget.P, Durability: pb.Budget.D, Quality: pb.Budget.Q},
				Premises:  pb.Premises,
				DerivedBy: pb.DerivedBy,
				Timestamp: pb.Timestamp,
			})
		}
		sortBeliefs(edge.Beliefs)
		k.graph[edge.ID] = edge
		k.indices.indexEdge(edge)
	}
	return nil
}
