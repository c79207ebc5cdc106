package kernel

import "container/heap"

// Event is an activation event travelling through the event queue: a
// derivation step scheduled on target, carrying its own activation level,
// budget, and loop-detection bookkeeping.
type Event struct {
	ID             string
	Target         EdgeID
	Activation     float64
	Budget         Budget
	PathHash       uint64
	PathLength     int
	DerivationPath []string
	insertOrder    int // FIFO tie-break for equal priority within a step
}

// eventHeap is a max-heap on Budget.Priority, ties broken by insertion order
// (FIFO), implementing container/heap.Interface.
type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].Budget.Priority != h[j].Budget.Priority {
		return h[i].Budget.Priority > h[j].Budget.Priority
	}
	return h[i].insertOrder < h[j].insertOrder
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x any)   { *h = append(*h, x.(*Event)) }
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// EventQueue is a max-heap keyed on budget.priority (spec §4.2). It does not
// deduplicate at push time; the derivation engine handles idempotence via
// memoization.
type EventQueue struct {
	h       eventHeap
	counter int
	softCap int
}

// NewEventQueue creates an empty queue with the given soft capacity. A
// non-positive softCap disables the cap.
func NewEventQueue(softCap int) *EventQueue {
	q := &EventQueue{softCap: softCap}
	heap.Init(&q.h)
	return q
}

// Push inserts ev. When the queue is at its soft cap, the lowest-priority
// event (the new one, if it is the lowest) is dropped instead — matching
// spec §5's "overflow drops lowest-priority" and returning ErrCapacity so the
// caller can surface a "log" bus event.
func (q *EventQueue) Push(ev *Event) error {
	q.counter++
	ev.insertOrder = q.counter
	heap.Push(&q.h, ev)
	if q.softCap > 0 && q.h.Len() > q.softCap {
		q.dropLowestPriority()
		return ErrCapacity
	}
	return nil
}

func (q *EventQueue) dropLowestPriority() {
	if len(q.h) == 0 {
		return
	}
	worst := 0
	for i := 1; i < len(q.h); i++ {
		if q.h[i].Budget.Priority < q.h[worst].Budget.Priority {
			worst = i
		}
	}
	heap.Remove(&q.h, worst)
}

// Pop removes and returns the highest-priority event, or nil if empty.
func (q *EventQueue) Pop() *Event {
	if q.h.Len() == 0 {
		return nil
	}
	return heap.Pop(&q.h).(*Event)
}

// Peek returns the highest-priority event without removing it, or nil.
func (q *EventQueue) Peek() *Event {
	if q.h.Len() == 0 {
		return nil
	}
	return q.h[0]
}

// Size returns the number of queued events.
func (q *EventQueue) Size() int {
	return q.h.Len()
}
