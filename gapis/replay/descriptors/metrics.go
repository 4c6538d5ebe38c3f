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

package descriptors

import "github.com/prometheus/client_golang/prometheus"

var (
	poolExhausted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "queuesync",
			Subsystem: "descriptors",
			Name:      "pool_exhausted_total",
			Help:      "Total number of descriptors that could not be preserved because their pool was full",
		},
		[]string{"kind"},
	)

	slotsInUse = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "queuesync",
			Subsystem: "descriptors",
			Name:      "slots_in_use",
			Help:      "Descriptor slots currently holding preserved content",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(poolExhausted, slotsInUse)
}
