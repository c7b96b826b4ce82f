// Package metrics holds the Prometheus instrumentation of the report engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the engine collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	sectionsGenerated    *prometheus.CounterVec
	sectionsFailed       *prometheus.CounterVec
	enhancementFallbacks *prometheus.CounterVec
	reportDuration       *prometheus.HistogramVec
	reportsGenerated     *prometheus.CounterVec
	httpRequests         *prometheus.CounterVec
	httpDuration         *prometheus.HistogramVec
}

// New creates the engine collectors and registers them on reg
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		sectionsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "report_sections_generated_total",
				Help: "Total number of report sections generated",
			},
			[]string{"section", "detail_level"},
		),
		sectionsFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "report_sections_failed_total",
				Help: "Total number of report sections that could not be generated",
			},
			[]string{"section"},
		),
		enhancementFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "report_enhancement_fallbacks_total",
				Help: "Total number of sections that fell back to raw text after enhancement failed",
			},
			[]string{"section"},
		),
		reportDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "report_generation_duration_seconds",
				Help:    "Duration of report generation in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"detail_level", "format"},
		),
		reportsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reports_generated_total",
				Help: "Total number of reports assembled",
			},
			[]string{"format", "partial"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
	}

	collectors := []prometheus.Collector{
		m.sectionsGenerated,
		m.sectionsFailed,
		m.enhancementFallbacks,
		m.reportDuration,
		m.reportsGenerated,
		m.httpRequests,
		m.httpDuration,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// SectionGenerated records a successfully generated section
func (m *Metrics) SectionGenerated(section, level string) {
	if m == nil {
		return
	}
	m.sectionsGenerated.WithLabelValues(section, level).Inc()
}

// SectionFailed records a generator failure
func (m *Metrics) SectionFailed(section string) {
	if m == nil {
		return
	}
	m.sectionsFailed.WithLabelValues(section).Inc()
}

// EnhancementFallback records a section that kept its raw text
func (m *Metrics) EnhancementFallback(section string) {
	if m == nil {
		return
	}
	m.enhancementFallbacks.WithLabelValues(section).Inc()
}

// ReportGenerated records one assembled report and its latency
func (m *Metrics) ReportGenerated(level, format string, partial bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	p := "false"
	if partial {
		p = "true"
	}
	m.reportsGenerated.WithLabelValues(format, p).Inc()
	m.reportDuration.WithLabelValues(level, format).Observe(elapsed.Seconds())
}

// HTTPRequest records one served HTTP request
func (m *Metrics) HTTPRequest(path, method, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(path, method, status).Inc()
	m.httpDuration.WithLabelValues(path, method).Observe(elapsed.Seconds())
}
