package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Catalog Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gearsh",
			Name:      "search_requests_total",
			Help:      "Total number of artist searches",
		},
		[]string{"sort", "ranked"},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "gearsh",
			Name:      "search_results",
			Help:      "Number of profiles returned per search",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)

	ArtistCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gearsh",
			Name:      "artist_cache_total",
			Help:      "Artist detail cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var catalogMetricsRegistered bool

// RegisterCatalogMetrics registers the catalog metrics. Must be called once from main.
func RegisterCatalogMetrics() {
	if catalogMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(ArtistCacheTotal)
	catalogMetricsRegistered = true
}

// SearchRecorder feeds search metrics. It satisfies usecase/search.Recorder.
type SearchRecorder struct{}

// ObserveSearch records one completed search.
func (SearchRecorder) ObserveSearch(sort string, ranked bool, results int) {
	SearchRequestsTotal.WithLabelValues(sort, strconv.FormatBool(ranked)).Inc()
	SearchResults.Observe(float64(results))
}
