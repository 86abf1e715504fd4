package observability

import (
	"testing"
	"time"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	RecordHTTPRequest("tracksyncd", "GET", "/health", 200, 12*time.Millisecond)
	RecordFrame("set_key")
	RecordKeyApplied("upsert")
	RecordRowSent()
	RecordDisconnect()
}
