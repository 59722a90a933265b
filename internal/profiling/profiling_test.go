package profiling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(name string, d time.Duration) {
	mu.Lock()
	frameTotals[name] += d
	mu.Unlock()
}

func TestTrackAccumulates(t *testing.T) {
	ResetFrame()
	stop := Track("a")
	time.Sleep(time.Millisecond)
	stop()
	Track("a")()

	snap := Snapshot()
	require.Contains(t, snap, "a")
	assert.GreaterOrEqual(t, snap["a"], time.Millisecond)

	ResetFrame()
	assert.Empty(t, Snapshot())
}

func TestSumWithPrefix(t *testing.T) {
	ResetFrame()
	record("render.clear", 2*time.Millisecond)
	record("render.scene", 3*time.Millisecond)
	record("input.poll", 7*time.Millisecond)

	assert.Equal(t, 5*time.Millisecond, SumWithPrefix("render."))
	assert.Equal(t, 12*time.Millisecond, SumWithPrefix(""))
	assert.Equal(t, time.Duration(0), SumWithPrefix("audio."))
}

func TestTopNOrdering(t *testing.T) {
	ResetFrame()
	record("slow", 4200*time.Microsecond)
	record("fast", 300*time.Microsecond)
	record("whole", 2*time.Millisecond)

	assert.Equal(t, "slow:4.2ms, whole:2ms", TopN(2))
	assert.Len(t, Top(10), 3)
	assert.Empty(t, Top(-1))
	assert.Len(t, Fields(1), 1)
}
