package kernel

import "hash/fnv"

// dispatch runs the derivation engine over one popped event: every enabled
// rule whose condition fires gets to execute, in descending-priority order
// (spec §4.4). A rule's own usage bookkeeping and the learning engine's
// per-rule productivity counters are both updated regardless of outcome.
func (k *Kernel) dispatch(ev *Event) {
	edge, ok := k.graph[ev.Target]
	if !ok {
		return
	}
	for _, rule := range k.rules.ordered() {
		if !rule.Enabled() {
			continue
		}
		if !rule.Condition(k, ev, edge) {
			continue
		}
		err := rule.Execute(k, ev, edge)
		success := err == nil
		rule.RecordUsage(success)
		k.Learning.recordRuleAttempt(rule.Name(), success)
	}
}

// propagate is the gatekeeper every derived event must pass through before
// it reaches the queue (spec §4.3): drop on low priority, path-length
// overrun, or a repeated (target, pathHash) pair; otherwise clamp activation
// and record the path hash before pushing.
func (k *Kernel) propagate(ev *Event) {
	threshold := k.Config.Get("budgetThreshold")
	maxPathLength := int(k.Config.Get("maxPathLength"))

	if ev.Budget.Priority < threshold {
		return
	}
	if ev.PathLength > maxPathLength {
		return
	}
	if k.indices.hasPathHash(ev.Target, ev.PathHash) {
		return
	}

	ev.Activation = clamp01(ev.Activation)
	maxPathCacheSize := int(k.Config.Get("pathCacheSize"))
	k.indices.recordPathHash(ev.Target, ev.PathHash, maxPathCacheSize)

	if err := k.queue.Push(ev); err != nil {
		k.Bus.Emit("log", map[string]any{"level": "info", "msg": "event queue overflow", "target": ev.Target})
	}
}

// propagateWave dispatches ev to its structural and procedural neighbors
// (spec §4.3): down into a compound edge's arguments, and out to any
// compound edges that reference ev.Target as an argument.
func (k *Kernel) propagateWave(ev *Event) {
	k.updateActivation(ev.Target, ev.Activation)
	edge, ok := k.graph[ev.Target]

	budgetDecay := k.Config.Get("budgetDecay")
	truthExp := 1.0
	if ok {
		if strongest := edge.Strongest(); strongest != nil {
			truthExp = strongest.Truth.Expectation()
		}
	}

	if ok && len(edge.Args) > 0 {
		for _, argID := range edge.Args {
			derived := &Event{
				Target:         argID,
				Activation:     ev.Activation * truthExp,
				Budget:         ev.Budget.Scale(budgetDecay),
				PathHash:       ev.PathHash ^ hashString(argID),
				PathLength:     ev.PathLength + 1,
				DerivationPath: append(append([]string(nil), ev.DerivationPath...), "structural"),
			}
			k.propagate(derived)
		}
		k.Temporal.consume(k, edge, ev)
		return
	}

	for _, referringID := range k.indices.byArgIDs(ev.Target) {
		derived := &Event{
			Target:         referringID,
			Activation:     ev.Activation * truthExp,
			Budget:         ev.Budget.Scale(budgetDecay),
			PathHash:       ev.PathHash ^ hashString(referringID),
			PathLength:     ev.PathLength + 1,
			DerivationPath: append(append([]string(nil), ev.DerivationPath...), "procedural"),
		}
		k.propagate(derived)
	}
}

// updateActivation applies the EMA decay (spec §4.3) and records the result
// in the indices.
func (k *Kernel) updateActivation(id EdgeID, a float64) float64 {
	decay := k.Config.Get("decay")
	return k.indices.updateActivation(id, a, decay)
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
