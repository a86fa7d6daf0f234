package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// BringupTotal counts S1G interface bring-up attempts by result
	BringupTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "s1gap",
			Name:      "bringup_total",
			Help:      "Total number of S1G interface bring-up attempts",
		},
		[]string{"interface", "result"},
	)

	// StationRecordsTotal counts capability store operations
	StationRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "s1gap",
			Name:      "station_records_total",
			Help:      "Total number of S1G capability record operations",
		},
		[]string{"result"},
	)

	// NegotiationsTotal counts capability negotiations for outbound advertisement
	NegotiationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "s1gap",
			Name:      "negotiations_total",
			Help:      "Total number of S1G capability negotiations",
		},
	)

	// FramesTotal counts management frames handed to the dispatcher
	FramesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "s1gap",
			Name:      "frames_total",
			Help:      "Total number of management frames processed",
		},
		[]string{"subtype", "result"},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// Result label values.
const (
	ResultOK           = "ok"
	ResultError        = "error"
	ResultSkipped      = "skipped"
	ResultStored       = "stored"
	ResultAbsent       = "absent"
	ResultAllocFailure = "alloc_failure"
	ResultDropped      = "dropped"
)

// InitMetrics registers all metrics with the global Prometheus registry
// This function is idempotent and can be called multiple times safely
func InitMetrics() {
	once.Do(func() {
		prometheus.DefaultRegisterer.Register(BringupTotal)
		prometheus.DefaultRegisterer.Register(StationRecordsTotal)
		prometheus.DefaultRegisterer.Register(NegotiationsTotal)
		prometheus.DefaultRegisterer.Register(FramesTotal)
	})
}
