package kernel

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Handler receives a bus payload for a topic it subscribed to.
type Handler func(payload any)

// Bus is the kernel's on/emit surface (spec §6): log, contradiction-detected,
// contradiction-resolved, pruned, rule-disabled, rule-enabled,
// shortcut-created, concept-formed, goal-achieved, meta-learning-applied,
// temporal-update, answer, pattern-composition-recognized.
//
// Grounded on the teacher's PatternListener/PatternCompositionListener
// callback interfaces (pattern_listener.go, pattern_composition.go): a
// topic-keyed slice of callbacks, invoked synchronously and in registration
// order from inside the step that produced the event.
type Bus struct {
	mu       sync.Mutex
	handlers map[string][]Handler
}

func newBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// On registers handler for topic.
func (b *Bus) On(topic string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
}

// Emit invokes every handler registered for topic with payload.
func (b *Bus) Emit(topic string, payload any) {
	b.mu.Lock()
	handlers := append([]Handler(nil), b.handlers[topic]...)
	b.mu.Unlock()
	for _, h := range handlers {
		h(payload)
	}
}

// LogListener is the default "log" topic sink: it JSON-marshals payloads to
// an io.Writer, the same way PatternListenerPoc prints matches to stdout.
type LogListener struct {
	w io.Writer
}

// NewLogListener returns a Handler suitable for Bus.On("log", ...).
func NewLogListener(w io.Writer) Handler {
	l := &LogListener{w: w}
	return l.handle
}

func (l *LogListener) handle(payload any) {
	str, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		fmt.Fprintf(l.w, "log: %v\n", payload)
		return
	}
	fmt.Fprintf(l.w, "log: %s\n", str)
}
