// Package metrics provides in-memory runtime statistics collection.
package metrics

import (
	"math"
	"sync"
	"time"
)

// Operation names for the collector.
const (
	OpNormalize  = "normalize"
	OpClassify   = "classify"
	OpSynthesize = "synthesize"
	OpValidate   = "validate"
	OpRecommend  = "recommend"
)

// OperationMetrics holds aggregated metrics for a single operation type.
type OperationMetrics struct {
	Count     int64
	Errors    int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// OperationSnapshot provides computed stats from raw metrics.
type OperationSnapshot struct {
	Count       int64   `json:"count"`
	Errors      int64   `json:"errors"`
	TotalTimeUs int64   `json:"total_time_us"`
	AvgTimeUs   float64 `json:"avg_time_us"`
	MinTimeUs   int64   `json:"min_time_us"`
	MaxTimeUs   int64   `json:"max_time_us"`
}

// Snapshot represents the full statistics at a point in time.
type Snapshot struct {
	UptimeSeconds float64 `json:"uptime_seconds"`

	// Findings counts validation findings by rule id.
	Findings map[string]int64 `json:"findings,omitempty"`

	// Strategies counts decisions by chosen strategy.
	Strategies map[string]int64 `json:"strategies,omitempty"`

	Operations map[string]*OperationSnapshot `json:"operations"`
}

// Collector aggregates in-memory runtime statistics.
// All methods are thread-safe.
type Collector struct {
	mu         sync.RWMutex
	startTime  time.Time
	ops        map[string]*OperationMetrics
	findings   map[string]int64
	strategies map[string]int64
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime:  time.Now(),
		ops:        make(map[string]*OperationMetrics),
		findings:   make(map[string]int64),
		strategies: make(map[string]int64),
	}
}

// getOrCreate returns existing metrics or creates new ones for an operation.
// Caller must hold write lock.
func (c *Collector) getOrCreate(op string) *OperationMetrics {
	m, ok := c.ops[op]
	if !ok {
		m = &OperationMetrics{MinTime: time.Duration(math.MaxInt64)}
		c.ops[op] = m
	}
	return m
}

// RecordTiming records timing for an operation. A non-nil err counts as a failure.
func (c *Collector) RecordTiming(op string, duration time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.getOrCreate(op)
	m.Count++
	m.TotalTime += duration
	if err != nil {
		m.Errors++
	}

	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}
}

// RecordStrategy counts a classification outcome.
func (c *Collector) RecordStrategy(strategy string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strategies[strategy]++
}

// RecordFinding counts a validation finding by rule id.
func (c *Collector) RecordFinding(ruleID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.findings[ruleID]++
}

// snapshotOp creates a snapshot for an operation, returning nil if no data.
func snapshotOp(m *OperationMetrics) *OperationSnapshot {
	if m == nil || m.Count == 0 {
		return nil
	}
	return &OperationSnapshot{
		Count:       m.Count,
		Errors:      m.Errors,
		TotalTimeUs: m.TotalTime.Microseconds(),
		AvgTimeUs:   float64(m.TotalTime.Microseconds()) / float64(m.Count),
		MinTimeUs:   m.MinTime.Microseconds(),
		MaxTimeUs:   m.MaxTime.Microseconds(),
	}
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := Snapshot{
		UptimeSeconds: time.Since(c.startTime).Seconds(),
		Findings:      make(map[string]int64, len(c.findings)),
		Strategies:    make(map[string]int64, len(c.strategies)),
		Operations:    make(map[string]*OperationSnapshot, len(c.ops)),
	}
	for op, m := range c.ops {
		if s := snapshotOp(m); s != nil {
			snap.Operations[op] = s
		}
	}
	for k, v := range c.findings {
		snap.Findings[k] = v
	}
	for k, v := range c.strategies {
		snap.Strategies[k] = v
	}
	return snap
}
