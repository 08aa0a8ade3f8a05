/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Seal triggers recorded on BatchesSealedTotal.
const (
	TriggerSize  = "size"
	TriggerAge   = "age"
	TriggerForce = "force"
)

// Pipeline metrics. Collectors are usable before Register is called; Register
// only exposes them on the default registry.
var (
	EventsTrackedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "metriqus_events_tracked_total",
			Help: "Total number of events appended to the current queue",
		},
	)

	BatchesSealedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metriqus_batches_sealed_total",
			Help: "Total number of event batches sealed, by trigger",
		},
		[]string{"trigger"},
	)

	BatchesDeliveredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "metriqus_batches_delivered_total",
			Help: "Total number of event batches accepted by the collector",
		},
	)

	DeliveryExhaustedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "metriqus_delivery_exhausted_total",
			Help: "Total number of delivery runs that gave up after all retries",
		},
	)

	PendingBatches = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "metriqus_pending_batches",
			Help: "Number of sealed batches waiting for delivery",
		},
	)

	DeliveryRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "metriqus_delivery_request_duration_seconds",
			Help:    "Duration of a single batch delivery request",
			Buckets: prometheus.DefBuckets,
		},
	)
)

var registerOnce sync.Once

// Register registers all Prometheus metrics on the default registry. Safe to
// call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(EventsTrackedTotal)
		prometheus.MustRegister(BatchesSealedTotal)
		prometheus.MustRegister(BatchesDeliveredTotal)
		prometheus.MustRegister(DeliveryExhaustedTotal)
		prometheus.MustRegister(PendingBatches)
		prometheus.MustRegister(DeliveryRequestDuration)
	})
}
