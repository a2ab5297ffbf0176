package status

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestRegistryConcurrentUpdates verifies counters stay exact under parallel writers
func TestRegistryConcurrentUpdates(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Ticks.Add(1)
			r.Elapsed.Advance(10 * time.Millisecond)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(16), r.Ticks.Value())
	assert.Equal(t, 160*time.Millisecond, r.Elapsed.Elapsed())
}

func TestLabelTruncates(t *testing.T) {
	var l Label
	assert.Equal(t, "", l.Value())
	l.Set("cluster_drag_with_a_very_long_suffix")
	assert.Len(t, l.Value(), MaxLabelLen)
}

func TestClockFormatAndReset(t *testing.T) {
	var c Clock
	c.Advance(1300 * time.Millisecond)
	assert.Equal(t, "1.3", c.Format())
	c.Reset()
	assert.Equal(t, "0.0", c.Format())
}

func TestLineOrderAndSkip(t *testing.T) {
	r := NewRegistry()
	r.Complete.Set(3)
	r.Total.Set(9)
	r.Gesture.Set("idle")

	assert.Equal(t, "gesture=idle complete=3 total=9 solved=false",
		r.Line(KeyGesture, KeyComplete, "missing", KeyTotal, KeySolved))
	assert.Equal(t, "", r.Line("missing"))
}

// TestSnapshotCoversEveryKey verifies each listed key resolves to a metric
func TestSnapshotCoversEveryKey(t *testing.T) {
	r := NewRegistry()
	r.Joins.Add(2)
	r.Solved.Set(true)

	snap := r.Snapshot()
	assert.Len(t, snap, len(Keys))
	assert.Equal(t, "2", snap[KeyJoins])
	assert.Equal(t, "true", snap[KeySolved])
	assert.Equal(t, "0.0", snap[KeyElapsed])
}
