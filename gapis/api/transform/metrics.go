// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transform

import "github.com/prometheus/client_golang/prometheus"

var (
	serializedExecutables = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "queuesync",
			Subsystem: "serializer",
			Name:      "executables_emitted_total",
			Help:      "Total number of command list executions emitted in serialized order",
		},
	)

	syntheticFences = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "queuesync",
			Subsystem: "serializer",
			Name:      "synthetic_fences_total",
			Help:      "Total number of synthetic fences created for serialized queues",
		},
	)

	replayedSignals = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "queuesync",
			Subsystem: "serializer",
			Name:      "queue_signals_emitted_total",
			Help:      "Total number of recorded queue signals written after the work they follow",
		},
	)

	blockedExecutables = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "queuesync",
			Subsystem: "serializer",
			Name:      "blocked_executables",
			Help:      "Command list executions still blocked at the last flush",
		},
	)
)

func init() {
	prometheus.MustRegister(serializedExecutables, syntheticFences, replayedSignals, blockedExecutables)
}
