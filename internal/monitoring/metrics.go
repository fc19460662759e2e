package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

var (
	CatalogFanouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_fanout_total",
			Help: "Total number of feature catalog fan-outs by operation and result",
		},
		[]string{"op", "result"},
	)
	FanoutDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_fanout_duration_seconds",
			Help:    "Duration of feature catalog fan-out transactions in seconds",
			Buckets: prometheus.LinearBuckets(0, 0.5, 10),
		},
	)
	FeedEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "changefeed_events_total",
			Help: "Total number of change feed events applied by kind",
		},
		[]string{"kind"},
	)
	FeedDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "changefeed_events_dropped_total",
			Help: "Total number of malformed change feed events discarded",
		},
	)
)

func InitMetrics() {
	for _, c := range []prometheus.Collector{CatalogFanouts, FanoutDuration, FeedEvents, FeedDropped} {
		if err := prometheus.Register(c); err != nil {
			log.Error().Err(err).Msg("Failed to register metric")
		}
	}
}
