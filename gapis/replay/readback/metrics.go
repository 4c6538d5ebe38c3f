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

package readback

import "github.com/prometheus/client_golang/prometheus"

var (
	readbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "queuesync",
			Subsystem: "readback",
			Name:      "requests_total",
			Help:      "Total number of readback requests by outcome",
		},
		[]string{"outcome"},
	)

	readbacksInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "queuesync",
			Subsystem: "readback",
			Name:      "inflight_workers",
			Help:      "Readback workers currently waiting on a fence or decoding",
		},
	)

	readbackWait = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "queuesync",
			Subsystem: "readback",
			Name:      "fence_wait_seconds",
			Help:      "Time readback workers spent waiting for their fence",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		},
	)
)

const (
	outcomeScheduled = "scheduled"
	outcomeCompleted = "completed"
	outcomeTimeout   = "timeout"
	outcomeFailed    = "failed"
)

func init() {
	prometheus.MustRegister(readbacksTotal, readbacksInflight, readbackWait)
}
