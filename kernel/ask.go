package kernel

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Answer is what a fulfilled ask() future resolves to.
type Answer struct {
	ID          EdgeID
	Bindings    Bindings
	Expectation float64
	Edge        *Hyperedge
}

// AskOptions controls ask()'s matching and timeout behavior (spec §6).
type AskOptions struct {
	MinExpectation float64
	TimeoutMs      int
	Limit          int
	SortBy         string
}

// askResult is what a question's channel carries: either an Answer or an
// error (ErrTimeout, ErrCancelled).
type askResult struct {
	answer *Answer
	err    error
}

// question is one outstanding ask(), indexed by id. The only asynchronous
// surface in the kernel (spec §5): its timer fires on its own goroutine, so
// the question table is mutex-protected even though the rest of the kernel
// is single-threaded.
type question struct {
	id      string
	byID    EdgeID
	pattern *Pattern
	opts    AskOptions
	ch      chan askResult
	timer   *time.Timer
}

type questionTable struct {
	mu        sync.Mutex
	questions map[string]*question
}

func newQuestionTable() *questionTable {
	return &questionTable{questions: make(map[string]*question)}
}

// AskFuture is the deferred result of an ask() call.
type AskFuture struct {
	ch     chan askResult
	cancel func()
}

// Wait blocks until the question is fulfilled, times out, or is cancelled.
func (f *AskFuture) Wait() (*Answer, error) {
	res := <-f.ch
	return res.answer, res.err
}

// Cancel removes the pending question with no partial mutation to roll
// back (spec §5).
func (f *AskFuture) Cancel() {
	f.cancel()
}

// Ask resolves when a matching edge above opts.MinExpectation appears, or
// fails with ErrTimeout when opts.TimeoutMs (or the questionTimeout config
// default) elapses (spec §5/§6). patternOrID is either an EdgeID or a
// *Pattern.
func (k *Kernel) Ask(patternOrID any, opts AskOptions) *AskFuture {
	q := &question{id: uuid.NewString(), opts: opts, ch: make(chan askResult, 1)}
	switch v := patternOrID.(type) {
	case EdgeID:
		q.byID = v
	case *Pattern:
		q.pattern = v
	}

	timeoutMs := opts.TimeoutMs
	if timeoutMs <= 0 {
		timeoutMs = int(k.Config.Get("questionTimeout"))
	}

	k.questions.mu.Lock()
	k.questions.questions[q.id] = q
	k.questions.mu.Unlock()

	q.timer = time.AfterFunc(time.Duration(timeoutMs)*time.Millisecond, func() {
		k.failQuestion(q.id, ErrTimeout)
	})

	if ans, ok := k.matchQuestion(q); ok {
		k.fulfillQuestion(q.id, ans)
	}

	return &AskFuture{ch: q.ch, cancel: func() { k.cancelQuestion(q.id) }}
}

// onEdgeChanged checks every outstanding question against the edge that was
// just inserted or revised, fulfilling any that now match (spec §5).
func (qt *questionTable) onEdgeChanged(k *Kernel, edge *Hyperedge) {
	qt.mu.Lock()
	candidates := make([]*question, 0, len(qt.questions))
	for _, q := range qt.questions {
		candidates = append(candidates, q)
	}
	qt.mu.Unlock()

	k.Learning.NoteQuestionLoad(len(candidates))

	for _, q := range candidates {
		if q.byID != "" && q.byID != edge.ID {
			continue
		}
		if ans, ok := k.matchQuestion(q); ok {
			k.fulfillQuestion(q.id, ans)
		}
	}
}

func (k *Kernel) matchQuestion(q *question) (*Answer, bool) {
	if q.byID != "" {
		edge, ok := k.graph[q.byID]
		if !ok || edge.Strongest() == nil {
			return nil, false
		}
		exp := edge.Strongest().Truth.Expectation()
		if exp < q.opts.MinExpectation {
			return nil, false
		}
		return &Answer{ID: edge.ID, Expectation: exp, Edge: edge}, true
	}
	if q.pattern == nil {
		return nil, false
	}
	results := k.Query(q.pattern, QueryOptions{Limit: 1, MinExpectation: q.opts.MinExpectation, SortBy: q.opts.SortBy})
	if len(results) == 0 {
		return nil, false
	}
	r := results[0]
	return &Answer{ID: r.ID, Bindings: r.Bindings, Expectation: r.Expectation, Edge: r.Edge}, true
}

func (k *Kernel) fulfillQuestion(id string, ans *Answer) {
	qt := k.questions
	qt.mu.Lock()
	q, ok := qt.questions[id]
	if ok {
		delete(qt.questions, id)
	}
	qt.mu.Unlock()
	if !ok {
		return
	}
	q.timer.Stop()
	q.ch <- askResult{answer: ans}
	k.Bus.Emit("answer", map[string]any{"question": id, "edge": ans.ID})
}

func (k *Kernel) failQuestion(id string, err error) {
	qt := k.questions
	qt.mu.Lock()
	q, ok := qt.questions[id]
	if ok {
		delete(qt.questions, id)
	}
	qt.mu.Unlock()
	if !ok {
		return
	}
	q.ch <- askResult{err: err}
}

func (k *Kernel) cancelQuestion(id string) {
	qt := k.questions
	qt.mu.Lock()
	q, ok := qt.questions[id]
	if ok {
		delete(qt.questions, id)
	}
	qt.mu.Unlock()
	if !ok {
		return
	}
	q.timer.Stop()
	q.ch <- askResult{err: ErrCancelled}
}
