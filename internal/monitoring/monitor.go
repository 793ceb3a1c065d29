package monitoring

import (
	"sync"
	"time"
)

// Monitor keeps running totals of widget activity for the JSON metrics
// endpoint, next to a few descriptive labels about the running service.
type Monitor struct {
	mu       sync.RWMutex
	counters map[string]float64
	info     map[string]string
	started  time.Time
}

// Snapshot is a point-in-time copy of a Monitor.
type Snapshot struct {
	UptimeSeconds float64            `json:"uptimeSeconds"`
	Counters      map[string]float64 `json:"counters"`
	Info          map[string]string  `json:"info,omitempty"`
}

// NewMonitor creates a monitor whose uptime starts now.
func NewMonitor() *Monitor {
	return &Monitor{
		counters: make(map[string]float64),
		info:     make(map[string]string),
		started:  time.Now(),
	}
}

// Add moves a counter by delta. Unknown counters start at zero.
func (m *Monitor) Add(name string, delta float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] += delta
}

// Value returns a counter.
func (m *Monitor) Value(name string) (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.counters[name]
	return v, ok
}

// SetInfo records a descriptive label such as the catalog backend.
func (m *Monitor) SetInfo(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.info[key] = value
}

// Snapshot copies the current state.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Snapshot{
		UptimeSeconds: time.Since(m.started).Seconds(),
		Counters:      make(map[string]float64, len(m.counters)),
	}
	for k, v := range m.counters {
		s.Counters[k] = v
	}
	if len(m.info) > 0 {
		s.Info = make(map[string]string, len(m.info))
		for k, v := range m.info {
			s.Info[k] = v
		}
	}
	return s
}

// Reset zeroes every counter. Info labels are kept.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = make(map[string]float64)
}
