package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lifecycle counters, partitioned by operation outcome where useful.

var (
	TransfersOpened = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "remiteasy",
		Subsystem: "ledger",
		Name:      "transfers_opened_total",
		Help:      "Total transfers opened (funds locked in escrow)",
	})

	TransfersCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "remiteasy",
		Subsystem: "ledger",
		Name:      "transfers_completed_total",
		Help:      "Total transfers released to their recipient",
	})

	TransfersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "remiteasy",
		Subsystem: "ledger",
		Name:      "transfers_cancelled_total",
		Help:      "Total transfers refunded to their sender",
	})

	VolumeLocked = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "remiteasy",
		Subsystem: "ledger",
		Name:      "volume_locked_lamports_total",
		Help:      "Gross lamports locked into escrow by opened transfers",
	})

	FeesCollected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "remiteasy",
		Subsystem: "ledger",
		Name:      "fees_collected_lamports_total",
		Help:      "Lamports retained as protocol fees on release",
	})

	OperationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "remiteasy",
		Subsystem: "ledger",
		Name:      "operation_errors_total",
		Help:      "Failed lifecycle operations",
	}, []string{"operation"})
)
