package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"orgcatalog.app/catalog/core/db"
)

var (
	txOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "organization_catalog",
		Subsystem: "unit_of_work",
		Name:      "transactions_total",
		Help:      "Outermost transactions by outcome (committed or rolled_back).",
	}, []string{"outcome"})

	hierarchyRejections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "organization_catalog",
		Subsystem: "activities",
		Name:      "hierarchy_rejections_total",
		Help:      "Activity writes rejected by the hierarchy checks, by reason.",
	}, []string{"reason"})

	radiusResults = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "organization_catalog",
		Subsystem: "geo",
		Name:      "radius_query_results",
		Help:      "Number of entities returned by a radius query.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
	}, []string{"entity"})

	eventPublishFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "organization_catalog",
		Subsystem: "events",
		Name:      "publish_failures_total",
		Help:      "Catalog events that could not be written to the stream.",
	})

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "organization_catalog",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route template, method and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
)

func init() {
	prometheus.MustRegister(txOutcomes, hierarchyRejections, radiusResults, eventPublishFailures, httpRequestDuration)
}

// RecordTxOutcome matches db.DB.SetTxObserver.
func RecordTxOutcome(outcome db.TxOutcome) {
	txOutcomes.WithLabelValues(string(outcome)).Inc()
}

// RecordHierarchyRejection counts a rejected activity write; reason is "depth" or "cycle".
func RecordHierarchyRejection(reason string) {
	hierarchyRejections.WithLabelValues(reason).Inc()
}

func RecordRadiusResults(entity string, n int) {
	radiusResults.WithLabelValues(entity).Observe(float64(n))
}

func RecordEventPublishFailure() {
	eventPublishFailures.Inc()
}

// RecordHTTPRequest observes one served request. route is the matched template, not the raw path.
func RecordHTTPRequest(route, method string, status int, seconds float64) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(seconds)
}
