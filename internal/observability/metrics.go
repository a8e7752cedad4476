package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	storeReadCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "deliveries",
		Subsystem: "store",
		Name:      "reads_total",
		Help:      "Number of full-table reads served by the backing store.",
	})
	storeWriteCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "deliveries",
		Subsystem: "store",
		Name:      "writes_total",
		Help:      "Number of whole-table replace writes issued to the backing store.",
	})
	lastWriteGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "deliveries",
		Subsystem: "store",
		Name:      "last_write_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successful write-through.",
	})
)

func init() {
	prometheus.MustRegister(storeReadCounter, storeWriteCounter, lastWriteGauge)
}

// RecordStoreRead counts one backing-store read.
func RecordStoreRead() {
	storeReadCounter.Inc()
}

// RecordStoreWrite counts one write-through and moves the persistence
// watermark.
func RecordStoreWrite(ts time.Time) {
	storeWriteCounter.Inc()
	if ts.IsZero() {
		return
	}
	lastWriteGauge.Set(float64(ts.Unix()))
}
