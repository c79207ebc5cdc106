package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventQueuePopsHighestPriorityFirst(t *testing.T) {
	q := NewEventQueue(0)
	require.NoError(t, q.Push(&Event{Target: "low", Budget: Budget{Priority: 0.2}}))
	require.NoError(t, q.Push(&Event{Target: "high", Budget: Budget{Priority: 0.9}}))
	require.NoError(t, q.Push(&Event{Target: "mid", Budget: Budget{Priority: 0.5}}))

	require.Equal(t, EdgeID("high"), q.Pop().Target)
	require.Equal(t, EdgeID("mid"), q.Pop().Target)
	require.Equal(t, EdgeID("low"), q.Pop().Target)
	require.Nil(t, q.Pop())
}

func TestEventQueueFIFOTieBreak(t *testing.T) {
	q := NewEventQueue(0)
	require.NoError(t, q.Push(&Event{Target: "first", Budget: Budget{Priority: 0.5}}))
	require.NoError(t, q.Push(&Event{Target: "second", Budget: Budget{Priority: 0.5}}))

	require.Equal(t, EdgeID("first"), q.Pop().Target)
	require.Equal(t, EdgeID("second"), q.Pop().Target)
}

func TestEventQueueSoftCapDropsLowestPriority(t *testing.T) {
	q := NewEventQueue(2)
	require.NoError(t, q.Push(&Event{Target: "a", Budget: Budget{Priority: 0.9}}))
	require.NoError(t, q.Push(&Event{Target: "b", Budget: Budget{Priority: 0.5}}))
	err := q.Push(&Event{Target: "c", Budget: Budget{Priority: 0.1}})
	require.ErrorIs(t, err, ErrCapacity)
	require.Equal(t, 2, q.Size())

	first := q.Pop()
	second := q.Pop()
	require.Equal(t, EdgeID("a"), first.Target)
	require.Equal(t, EdgeID("b"), second.Target)
}
