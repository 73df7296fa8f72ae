package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommend HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "movielab_recommend_latency_seconds",
		Help:    "Latency of the recommend endpoint",
		Buckets: prometheus.DefBuckets,
	})

	// Requests per analytical endpoint
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "movielab_requests_total",
		Help: "Total requests per analytical endpoint",
	}, []string{"endpoint"})

	// Recommendation cache outcomes
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "movielab_recommend_cache_hits_total",
		Help: "Recommendation cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "movielab_recommend_cache_misses_total",
		Help: "Recommendation cache misses",
	})

	// Time spent building a full engine bundle (SVD + k-means + profiles)
	EngineBuildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "movielab_engine_build_seconds",
		Help:    "Wall time of a full engine bundle build",
		Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
	})

	EngineReloadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "movielab_engine_reloads_total",
		Help: "Successful engine reloads",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RequestsTotal,
		CacheHitsTotal,
		CacheMissesTotal,
		EngineBuildDuration,
		EngineReloadsTotal,
	)
}
