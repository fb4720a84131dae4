package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BuildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exam_builds_total",
		Help: "The total number of exam builds by outcome",
	}, []string{"status"})

	BuildDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "exam_build_duration_seconds",
		Help:    "Duration of one exam build",
		Buckets: prometheus.DefBuckets,
	})

	ShortagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exam_content_shortages_total",
		Help: "Total number of per-topic content shortages recorded during builds",
	}, []string{"topic"})

	PoolEligible = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "exam_pool_eligible_items",
		Help: "Number of candidate items eligible after ledger filtering",
	})

	LedgerFingerprints = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "exam_ledger_fingerprints",
		Help: "Number of content fingerprints in the ledger snapshot",
	})

	ChunksIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exam_chunks_ingested_total",
		Help: "The total number of content chunks ingested by topic",
	}, []string{"topic"})

	ItemsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exam_items_generated_total",
		Help: "The total number of candidate items generated by status",
	}, []string{"status"})

	GenerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "exam_generation_request_duration_seconds",
		Help:    "Duration of generation service requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"model"})
)
