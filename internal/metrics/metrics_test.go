package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRequest(t *testing.T) {
	counter := RequestsTotal.WithLabelValues("GET", "/clips/{clipID}/stream", "302")
	before := testutil.ToFloat64(counter)

	RecordRequest("GET", "/clips/{clipID}/stream", "302", 5*time.Millisecond)
	RecordRequest("GET", "/clips/{clipID}/stream", "302", 7*time.Millisecond)

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestRecordRequest_DistinctLabels(t *testing.T) {
	RecordRequest("GET", "/clips", "200", time.Millisecond)
	RecordRequest("POST", "/clips", "201", time.Millisecond)
	RecordRequest("GET", "/clips/{clipID}/stats", "404", time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "/clips", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(RequestsTotal.WithLabelValues("POST", "/clips", "201")))
	assert.Equal(t, float64(1), testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "/clips/{clipID}/stats", "404")))
}
