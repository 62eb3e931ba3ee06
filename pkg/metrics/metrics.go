package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PagesFetched = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "validator_summary",
		Name:      "etherscan_pages_fetched_total",
		Help:      "Number of transaction pages retrieved from the Etherscan API",
	})

	TransactionsFetched = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "validator_summary",
		Name:      "etherscan_transactions_fetched_total",
		Help:      "Number of transaction records retrieved from the Etherscan API",
	})

	RateLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "validator_summary",
		Name:      "etherscan_rate_limit_hits_total",
		Help:      "Number of HTTP 429 responses received from the Etherscan API",
	})

	RequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "validator_summary",
		Name:      "etherscan_request_duration_seconds",
		Help:      "Histogram for the duration of Etherscan API requests",
		Buckets:   prometheus.DefBuckets,
	})
)
