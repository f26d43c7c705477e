package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorTimings(t *testing.T) {
	c := NewCollector()
	c.RecordTiming(OpClassify, 10*time.Microsecond, nil)
	c.RecordTiming(OpClassify, 30*time.Microsecond, nil)
	c.RecordTiming(OpClassify, 20*time.Microsecond, errors.New("boom"))

	snap := c.Snapshot()
	op := snap.Operations[OpClassify]
	require.NotNil(t, op)
	assert.Equal(t, int64(3), op.Count)
	assert.Equal(t, int64(1), op.Errors)
	assert.Equal(t, int64(60), op.TotalTimeUs)
	assert.InDelta(t, 20.0, op.AvgTimeUs, 0.001)
	assert.Equal(t, int64(10), op.MinTimeUs)
	assert.Equal(t, int64(30), op.MaxTimeUs)

	assert.Nil(t, snap.Operations[OpValidate], "unused operations are omitted")
}

func TestCollectorCounters(t *testing.T) {
	c := NewCollector()
	c.RecordStrategy("static")
	c.RecordStrategy("static")
	c.RecordFinding("R5")

	snap := c.Snapshot()
	assert.Equal(t, int64(2), snap.Strategies["static"])
	assert.Equal(t, int64(1), snap.Findings["R5"])

	// Snapshot maps are copies.
	snap.Strategies["static"] = 99
	assert.Equal(t, int64(2), c.Snapshot().Strategies["static"])
}

func TestCollectorConcurrent(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RecordTiming(OpRecommend, time.Millisecond, nil)
			c.RecordFinding("R1")
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	assert.Equal(t, int64(50), snap.Operations[OpRecommend].Count)
	assert.Equal(t, int64(50), snap.Findings["R1"])
}
