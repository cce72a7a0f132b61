package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Parser metrics
	CampaignsParsed   *prometheus.CounterVec
	FieldsResolved    *prometheus.CounterVec
	ParseDuration     prometheus.Histogram
	BatchJobsTotal    *prometheus.CounterVec
	BatchJobDuration  prometheus.Histogram
	BatchJobsInFlight prometheus.Gauge
	AnswersEnhanced   *prometheus.CounterVec

	// Storage and outbound metrics
	RepositoryOps      *prometheus.CounterVec
	RepositoryDuration *prometheus.HistogramVec
	ExternalCalls      *prometheus.CounterVec
	ExternalDuration   *prometheus.HistogramVec
	EventsPublished    *prometheus.CounterVec
}

// New registers the collectors with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the collectors with reg, so tests can use a private registry.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		CampaignsParsed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaigns_parsed_total",
				Help: "Total number of conversations parsed, by classified campaign type",
			},
			[]string{"type"},
		),

		FieldsResolved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaign_fields_resolved_total",
				Help: "Campaign fields filled, by field and by source (extracted or defaulted)",
			},
			[]string{"field", "source"},
		),

		ParseDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "campaign_parse_duration_seconds",
				Help:    "Time spent parsing one conversation",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
		),

		BatchJobsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaign_batch_jobs_total",
				Help: "Total number of batch parse jobs",
			},
			[]string{"status"},
		),

		BatchJobDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "campaign_batch_job_duration_seconds",
				Help:    "Batch parse job duration in seconds",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
		),

		BatchJobsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "campaign_batch_jobs_in_progress",
				Help: "Number of batch parse jobs currently running",
			},
		),

		AnswersEnhanced: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "answers_enhanced_total",
				Help: "Total number of answers enhanced, by question key and outcome",
			},
			[]string{"question_key", "outcome"},
		),

		RepositoryOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaign_repository_operations_total",
				Help: "Total number of repository operations",
			},
			[]string{"driver", "operation", "status"},
		),

		RepositoryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "campaign_repository_duration_seconds",
				Help:    "Repository operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"driver", "operation"},
		),

		ExternalCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_api_calls_total",
				Help: "Total number of outbound API calls",
			},
			[]string{"api", "status"},
		),

		ExternalDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "external_api_duration_seconds",
				Help:    "Outbound API call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"api"},
		),

		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaign_events_published_total",
				Help: "Total number of campaign events published",
			},
			[]string{"event", "status"},
		),
	}
}

// HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func (m *Metrics) RecordParse(campaignType string, duration time.Duration) {
	m.CampaignsParsed.WithLabelValues(campaignType).Inc()
	m.ParseDuration.Observe(duration.Seconds())
}

// RecordField counts one resolved field; source is "extracted" or "defaulted".
func (m *Metrics) RecordField(field, source string) {
	m.FieldsResolved.WithLabelValues(field, source).Inc()
}

func (m *Metrics) RecordBatchJob(status string, duration time.Duration) {
	m.BatchJobsTotal.WithLabelValues(status).Inc()
	m.BatchJobDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordEnhancement(questionKey, outcome string) {
	m.AnswersEnhanced.WithLabelValues(questionKey, outcome).Inc()
}

func (m *Metrics) RecordRepositoryOp(driver, operation, status string, duration time.Duration) {
	m.RepositoryOps.WithLabelValues(driver, operation, status).Inc()
	m.RepositoryDuration.WithLabelValues(driver, operation).Observe(duration.Seconds())
}

// External API call metrics
func (m *Metrics) RecordExternalAPICall(api, status string, duration time.Duration) {
	m.ExternalCalls.WithLabelValues(api, status).Inc()
	m.ExternalDuration.WithLabelValues(api).Observe(duration.Seconds())
}

func (m *Metrics) RecordEventPublished(event, status string) {
	m.EventsPublished.WithLabelValues(event, status).Inc()
}

func (m *Metrics) IncBatchJobsInProgress() {
	m.BatchJobsInFlight.Inc()
}

func (m *Metrics) DecBatchJobsInProgress() {
	m.BatchJobsInFlight.Dec()
}

// HTTP requests in flight counter
func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// HTTP requests in flight counter
func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}
