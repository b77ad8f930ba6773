package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestEndpoint(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/health", "/health"},
		{"/metrics", "/metrics"},
		{"/jobs", "/jobs"},
		{"/jobs/1", "/jobs/{id}"},
		{"/jobs/abc", "/jobs/{id}"},
		{"/jobs/1/extra", "other"},
		{"/companies", "other"},
		{"/", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, Endpoint(tt.path))
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("GET", "/jobs/{id}", "404")
	before := testutil.ToFloat64(counter)

	RecordAPIRequest("GET", "/jobs/{id}", 404, 2*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRecordRateLimited(t *testing.T) {
	counter := RateLimitRejections.WithLabelValues("POST", "/jobs")
	before := testutil.ToFloat64(counter)

	RecordRateLimited("POST", "/jobs")

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRecordJobMutation(t *testing.T) {
	for _, op := range []string{"create", "update", "delete"} {
		t.Run(op, func(t *testing.T) {
			counter := JobMutations.WithLabelValues(op)
			before := testutil.ToFloat64(counter)

			RecordJobMutation(op)

			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}
