// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters/histograms exposing a Matrix run's
// progress to a scraper, grounded on the pack's prometheus/client_golang
// dependency and its <namespace>_<subsystem>_<name>_total naming
// convention. A Matrix with a nil Metrics records nothing: metrics are
// opt-in, built with WithMetrics and assigned to Matrix.Metrics.
type Metrics struct {
	cellsTotal       *prometheus.CounterVec
	cellsFailedTotal *prometheus.CounterVec
	cellDuration     *prometheus.HistogramVec
	cellQueries      *prometheus.HistogramVec
}

// WithMetrics registers one Matrix run's counters/histograms with registry
// and returns the Metrics to assign to Matrix.Metrics. Each call registers
// a fresh set of collectors, so registry must not already carry one from a
// prior WithMetrics call.
func WithMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)
	return &Metrics{
		cellsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "deltadbg",
			Subsystem: "bench",
			Name:      "cells_total",
			Help:      "Total benchmark matrix cells run, by algorithm and cache variant.",
		}, []string{"algorithm", "cache"}),

		cellsFailedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "deltadbg",
			Subsystem: "bench",
			Name:      "cells_failed_total",
			Help:      "Total benchmark matrix cells that did not reach StatusCompleted.",
		}, []string{"algorithm", "cache"}),

		cellDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "deltadbg",
			Subsystem: "bench",
			Name:      "cell_duration_seconds",
			Help:      "Wall-clock duration of one benchmark matrix cell.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"algorithm", "cache"}),

		cellQueries: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "deltadbg",
			Subsystem: "bench",
			Name:      "cell_oracle_queries",
			Help:      "Oracle queries issued by one benchmark matrix cell.",
			Buckets:   []float64{1, 10, 50, 100, 500, 1000, 5000},
		}, []string{"algorithm", "cache"}),
	}
}

// observe folds one finished Record into m. A nil m is a no-op, so callers
// never need to branch on whether metrics were requested.
func (m *Metrics) observe(r Record) {
	if m == nil {
		return
	}
	m.cellsTotal.WithLabelValues(r.Algorithm, r.Cache).Inc()
	if r.Status != StatusCompleted {
		m.cellsFailedTotal.WithLabelValues(r.Algorithm, r.Cache).Inc()
	}
	m.cellDuration.WithLabelValues(r.Algorithm, r.Cache).Observe(r.Time.Seconds())
	m.cellQueries.WithLabelValues(r.Algorithm, r.Cache).Observe(float64(r.Count))
}
