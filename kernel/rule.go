package kernel

import (
	"sort"
	"time"
)

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/rule_mock.go github.com/jtomasevic/synar/kernel Rule

// Rule is a derivation rule: a cheap condition guard plus an execute step
// that may add edges, enqueue events, and notify the learning engine (spec
// §4.4). Grounded on the teacher's Rule interface in rules.go
// (Process/BindNetwork), split here into a pure condition/execute pair since
// our rule set is evaluated against the in-process Kernel rather than
// through a bound network reference.
type Rule interface {
	Name() string
	Condition(k *Kernel, ev *Event, edge *Hyperedge) bool
	Execute(k *Kernel, ev *Event, edge *Hyperedge) error

	Priority() float64
	Applicability() float64
	SuccessRate() float64
	UsageCount() int
	LastUsed() time.Time
	Enabled() bool
	SetEnabled(bool)
	RecordUsage(success bool)
}

// ruleBase carries the tunable attributes spec §4.4 assigns to every rule.
type ruleBase struct {
	name          string
	priority      float64
	applicability float64
	attempts      int
	successes     int
	lastUsed      time.Time
	enabled       bool
}

func (r *ruleBase) Name() string           { return r.name }
func (r *ruleBase) Priority() float64      { return r.priority }
func (r *ruleBase) Applicability() float64 { return r.applicability }
func (r *ruleBase) UsageCount() int        { return r.attempts }
func (r *ruleBase) LastUsed() time.Time    { return r.lastUsed }
func (r *ruleBase) Enabled() bool          { return r.enabled }
func (r *ruleBase) SetEnabled(e bool)      { r.enabled = e }

func (r *ruleBase) SuccessRate() float64 {
	if r.attempts == 0 {
		return 0
	}
	return float64(r.successes) / float64(r.attempts)
}

func (r *ruleBase) RecordUsage(success bool) {
	r.attempts++
	if success {
		r.successes++
	}
	r.lastUsed = time.Now()
}

// funcRule is a Rule built from two closures. Grounded on the teacher's
// DeriveEventRule, which pairs a compiled Condition with an EventTemplate;
// our rule set is fixed at compile time, so closures stand in for the
// teacher's data-driven condition compiler.
type funcRule struct {
	ruleBase
	condition func(k *Kernel, ev *Event, edge *Hyperedge) bool
	execute   func(k *Kernel, ev *Event, edge *Hyperedge) error
}

func newFuncRule(name string, priority, applicability float64,
	cond func(*Kernel, *Event, *Hyperedge) bool,
	exec func(*Kernel, *Event, *Hyperedge) error) *funcRule {
	return &funcRule{
		ruleBase:  ruleBase{name: name, priority: priority, applicability: applicability, enabled: true},
		condition: cond,
		execute:   exec,
	}
}

func (f *funcRule) Condition(k *Kernel, ev *Event, edge *Hyperedge) bool {
	return f.condition(k, ev, edge)
}

func (f *funcRule) Execute(k *Kernel, ev *Event, edge *Hyperedge) error {
	return f.execute(k, ev, edge)
}

// RuleRegistry holds every registered rule. Dispatch order is condition-based
// (every enabled rule's Condition is tried, not just rules keyed by the
// event's edge type) per the resolved Open Question, ordered by descending
// priority with ties broken by usageCount desc then alphabetical name (spec
// §4.4).
type RuleRegistry struct {
	rules []Rule
}

func newRuleRegistry() *RuleRegistry {
	return &RuleRegistry{}
}

func (rr *RuleRegistry) Register(r Rule) {
	rr.rules = append(rr.rules, r)
}

func (rr *RuleRegistry) All() []Rule {
	return rr.rules
}

func (rr *RuleRegistry) ByName(name string) Rule {
	for _, r := range rr.rules {
		if r.Name() == name {
			return r
		}
	}
	return nil
}

func (rr *RuleRegistry) ordered() []Rule {
	out := append([]Rule(nil), rr.rules...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Priority() != b.Priority() {
			return a.Priority() > b.Priority()
		}
		if a.UsageCount() != b.UsageCount() {
			return a.UsageCount() > b.UsageCount()
		}
		return a.Name() < b.Name()
	})
	return out
}
