package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts rendered frames and handled events.
type Metrics struct {
	frames         atomic.Uint64
	frameTotalNs   atomic.Int64
	frameMaxNs     atomic.Int64
	renderFailures atomic.Uint64

	events       atomic.Uint64
	eventErrors  atomic.Uint64
	staleIndexes atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordFrame records one render and how long it took.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.frames.Add(1)
	m.frameTotalNs.Add(ns)

	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordRenderFailure records a frame whose presenter failed.
func (m *Metrics) RecordRenderFailure() {
	m.renderFailures.Add(1)
}

// RecordEvent records one consumed event.
func (m *Metrics) RecordEvent(err error) {
	m.events.Add(1)
	if err != nil {
		m.eventErrors.Add(1)
	}
}

// RecordStaleIndex records a discarded index completion.
func (m *Metrics) RecordStaleIndex() {
	m.staleIndexes.Add(1)
}

// Snapshot returns the current values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frames := m.frames.Load()
	var avg time.Duration
	if frames > 0 {
		avg = time.Duration(m.frameTotalNs.Load() / int64(frames))
	}
	return MetricsSnapshot{
		Frames:         frames,
		AvgFrameTime:   avg,
		MaxFrameTime:   time.Duration(m.frameMaxNs.Load()),
		RenderFailures: m.renderFailures.Load(),
		Events:         m.events.Load(),
		EventErrors:    m.eventErrors.Load(),
		StaleIndexes:   m.staleIndexes.Load(),
		Uptime:         time.Since(m.startTime),
	}
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Frames         uint64
	AvgFrameTime   time.Duration
	MaxFrameTime   time.Duration
	RenderFailures uint64

	Events       uint64
	EventErrors  uint64
	StaleIndexes uint64

	Uptime time.Duration
}
