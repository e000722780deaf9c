package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics. ProcessingFailures broken out by stage is the operator's
// signal for "reserved but never persisted" keys: the caller was already
// acknowledged, so failures only ever show up here and in the logs.
var (
	ReceiptsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "expense_receipts_accepted_total",
		Help: "Total receipt submissions accepted for processing",
	})

	ReceiptsDuplicate = promauto.NewCounter(prometheus.CounterOpts{
		Name: "expense_receipts_duplicate_total",
		Help: "Total receipt submissions suppressed as duplicates",
	})

	ProcessingFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "expense_processing_failures_total",
			Help: "Total deferred processing failures by stage",
		},
		[]string{"stage"},
	)

	ProcessingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "expense_processing_duration_seconds",
		Help:    "Duration of deferred receipt processing",
		Buckets: prometheus.DefBuckets,
	})

	ExpensesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "expense_records_created_total",
		Help: "Total normalized expense records persisted",
	})

	CaptureWrites = promauto.NewCounter(prometheus.CounterOpts{
		Name: "expense_raw_captures_written_total",
		Help: "Total raw capture files written to the bronze sink",
	})
)

// Processing stages used as failure labels.
const (
	StageCapture = "capture"
	StageConvert = "convert"
	StagePersist = "persist"
)
