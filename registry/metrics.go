/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// WithMetrics registers registry instrumentation with pr: a gauge of active
// blockers and counters for additions, removals and timeout expiries.
func WithMetrics(pr prometheus.Registerer) Option {
	return func(r *Registry) {
		if pr == nil {
			return
		}
		m := &metrics{
			active: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "blockfx_active_blockers",
				Help: "Number of blockers currently held in the registry.",
			}),
			added: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "blockfx_blockers_added_total",
				Help: "Total number of blocker entries created.",
			}),
			removed: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "blockfx_blockers_removed_total",
				Help: "Total number of blocker entries removed, including expiries.",
			}),
			expired: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "blockfx_blocker_timeouts_total",
				Help: "Total number of blocker entries removed by timeout expiry.",
			}),
		}
		pr.MustRegister(m.active, m.added, m.removed, m.expired)
		r.met = m
	}
}

// metrics holds the registry's collectors. All methods are nil-receiver
// safe so call sites need no instrumentation checks.
type metrics struct {
	active  prometheus.Gauge
	added   prometheus.Counter
	removed prometheus.Counter
	expired prometheus.Counter
}

func (m *metrics) onAdd() {
	if m == nil {
		return
	}
	m.active.Inc()
	m.added.Inc()
}

func (m *metrics) onRemove() {
	if m == nil {
		return
	}
	m.active.Dec()
	m.removed.Inc()
}

func (m *metrics) onExpire() {
	if m == nil {
		return
	}
	m.active.Dec()
	m.removed.Inc()
	m.expired.Inc()
}

func (m *metrics) onReset(n int) {
	if m == nil {
		return
	}
	m.active.Sub(float64(n))
	m.removed.Add(float64(n))
}
