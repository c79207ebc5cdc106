package kernel

import "time"

// AddOptions carries the optional fields accepted by addHyperedge (spec
// §4.1): an initial truth value, a budget override, justifying premises, the
// producing rule's name, an explicit timestamp, and a temporal tag.
type AddOptions struct {
	Truth     *TruthValue
	Budget    *Budget
	Premises  []EdgeID
	DerivedBy string
	Timestamp time.Time
	Temporal  *TemporalTag
}
