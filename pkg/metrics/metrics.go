// Package metrics registra as métricas Prometheus da API e do pipeline
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

type Metrics struct {
	// Pipeline
	StageDuration *prometheus.HistogramVec
	SectionsTotal *prometheus.CounterVec
	RowsAnalyzed  prometheus.Histogram

	// HTTP
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Digest agendado
	DigestRunsTotal *prometheus.CounterVec
	DigestLastRun   prometheus.Gauge
}

// NewMetrics registra as métricas uma única vez por processo.
//
// Métricas:
//   - analysis_stage_duration_seconds{stage}
//   - analysis_sections_total{section,status}
//   - analysis_rows
//   - http_requests_total{route,method,status}
//   - http_request_duration_seconds{route,method}
//   - digest_runs_total{result}
//   - digest_last_run_timestamp_seconds
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			StageDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "analysis_stage_duration_seconds",
					Help:    "Duration of each analysis pipeline stage in seconds",
					Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms a ~4s
				},
				[]string{"stage"},
			),

			SectionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "analysis_sections_total",
					Help: "Total number of report sections produced, by status",
				},
				[]string{"section", "status"}, // "ok" ou "absent"
			),

			RowsAnalyzed: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "analysis_rows",
					Help:    "Number of rows per analyzed dataset",
					Buckets: prometheus.ExponentialBuckets(10, 4, 10),
				},
			),

			RequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"route", "method", "status"},
			),

			RequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "Duration of HTTP requests in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"route", "method"},
			),

			DigestRunsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "digest_runs_total",
					Help: "Total number of scheduled digest runs",
				},
				[]string{"result"}, // "success" ou "error"
			),

			DigestLastRun: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "digest_last_run_timestamp_seconds",
					Help: "Unix time of the last finished digest run",
				},
			),
		}
	})

	return globalMetrics
}

func (m *Metrics) ObserveStage(stage string, started time.Time) {
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(started).Seconds())
}

func (m *Metrics) RecordSection(section string, ok bool) {
	status := "absent"
	if ok {
		status = "ok"
	}
	m.SectionsTotal.WithLabelValues(section, status).Inc()
}

func (m *Metrics) RecordRows(rows int) {
	m.RowsAnalyzed.Observe(float64(rows))
}

func (m *Metrics) RecordRequest(route, method string, status int, started time.Time) {
	m.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route, method).Observe(time.Since(started).Seconds())
}

func (m *Metrics) RecordDigest(err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.DigestRunsTotal.WithLabelValues(result).Inc()
	m.DigestLastRun.SetToCurrentTime()
}
