// Package connectivity turns periodic reachability probes into
// "became reachable" / "became unreachable" notifications.
package connectivity

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Listener receives connectivity transitions. Calls are made from the
// monitor's goroutine, one at a time, in transition order.
type Listener interface {
	BecameReachable(ctx context.Context)
	BecameUnreachable(ctx context.Context)
}

// ProbeFunc reports nil when the network is usable.
type ProbeFunc func(ctx context.Context) error

// TCPProbe dials addr and closes the connection straight away.
func TCPProbe(addr string, timeout time.Duration) ProbeFunc {
	return func(ctx context.Context) error {
		d := net.Dialer{Timeout: timeout}
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return err
		}
		return conn.Close()
	}
}

type Monitor struct {
	probe    ProbeFunc
	interval time.Duration

	mu        sync.Mutex
	notify    sync.Mutex
	reachable bool
	listeners []Listener
}

// NewMonitor starts out reachable. A nil probe means the monitor only moves
// on explicit Set calls.
func NewMonitor(probe ProbeFunc, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Monitor{probe: probe, interval: interval, reachable: true}
}

func (m *Monitor) Subscribe(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

func (m *Monitor) Reachable() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reachable
}

// Set records the current state and notifies listeners if it changed.
func (m *Monitor) Set(ctx context.Context, reachable bool) {
	m.notify.Lock()
	defer m.notify.Unlock()

	m.mu.Lock()
	changed := m.reachable != reachable
	m.reachable = reachable
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	if !changed {
		return
	}
	if reachable {
		log.Info().Msg("Connectivity: back online")
	} else {
		log.Info().Msg("Connectivity: offline mode")
	}
	for _, l := range listeners {
		if reachable {
			l.BecameReachable(ctx)
		} else {
			l.BecameUnreachable(ctx)
		}
	}
}

// Check runs the probe once and applies the result.
func (m *Monitor) Check(ctx context.Context) {
	if m.probe == nil {
		return
	}
	err := m.probe(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("Connectivity probe failed")
	}
	m.Set(ctx, err == nil)
}

// Run probes on every tick until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	if m.probe == nil {
		return
	}
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
