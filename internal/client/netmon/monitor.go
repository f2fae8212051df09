// Package netmon tracks device connectivity. The monitor is the single
// online/offline signal consumed by the RPC client's short-circuit and
// the coordinator's queue draining.
package netmon

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// DefaultProbeInterval is how often the background probe checks the
// backend health endpoint.
const DefaultProbeInterval = 15 * time.Second

// probeTimeout keeps a dead network from stalling the probe loop
const probeTimeout = 5 * time.Second

// Monitor holds the current connectivity state and notifies subscribers
// on transitions. The state starts online; the first failed probe flips
// it.
type Monitor struct {
	probeURL string
	interval time.Duration
	client   *http.Client
	logger   *slog.Logger

	mu     sync.Mutex
	online bool
	subs   []chan bool
}

// New creates a monitor probing the given health URL.
func New(probeURL string, interval time.Duration, logger *slog.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		probeURL: probeURL,
		interval: interval,
		client:   &http.Client{Timeout: probeTimeout},
		logger:   logger,
		online:   true,
	}
}

// Online reports the current connectivity state
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// SetOnline overrides the connectivity state, notifying subscribers when
// it changes. The probe loop calls this; tests and a manual offline
// switch may too.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	changed := m.online != online
	m.online = online
	subs := m.subs
	m.mu.Unlock()

	if !changed {
		return
	}

	m.logger.Info("connectivity changed", "online", online)
	for _, sub := range subs {
		// Non-blocking send: a slow subscriber keeps only the latest
		// transition pending.
		select {
		case sub <- online:
		default:
		}
	}
}

// Subscribe returns a channel receiving the new state on every
// transition. The channel is buffered; consecutive transitions coalesce.
func (m *Monitor) Subscribe() <-chan bool {
	ch := make(chan bool, 1)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	return ch
}

// Run probes the health endpoint until ctx is canceled. An immediate
// probe runs first so state settles before the first tick.
func (m *Monitor) Run(ctx context.Context) {
	m.probe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

// probe performs one reachability check
func (m *Monitor) probe(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.probeURL, nil)
	if err != nil {
		m.logger.Warn("failed to create probe request", "error", err)
		return
	}

	resp, err := m.client.Do(req)
	if err != nil {
		m.SetOnline(false)
		return
	}
	_ = resp.Body.Close()

	// Any HTTP response means the network path is up, even a 5xx
	m.SetOnline(true)
}
