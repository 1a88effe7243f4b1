// Copyright 2026 The roc-package-web-app-react Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "webapp"

type metrics struct {
	renders  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	prefetch prometheus.Histogram
}

// newMetrics creates the render metrics, registering them with reg unless
// it is nil.
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_total",
			Help:      "Total number of server renders by outcome",
		}, []string{"outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Server render duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		prefetch: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prefetch_duration_seconds",
			Help:      "Route data prefetch duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
