package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveESIRequest(t *testing.T) {
	before := testutil.ToFloat64(esiRequests.WithLabelValues("/universe/ids/", "200"))
	ObserveESIRequest("/universe/ids/", 200, 15*time.Millisecond)
	after := testutil.ToFloat64(esiRequests.WithLabelValues("/universe/ids/", "200"))

	assert.Equal(t, before+1, after)
}

func TestObserveESIRequest_NoResponse(t *testing.T) {
	before := testutil.ToFloat64(esiRequests.WithLabelValues("/route/", "error"))
	ObserveESIRequest("/route/", 0, time.Second)
	after := testutil.ToFloat64(esiRequests.WithLabelValues("/route/", "error"))

	assert.Equal(t, before+1, after)
}

func TestRecordRouteCheck(t *testing.T) {
	before := testutil.ToFloat64(routeChecks.WithLabelValues(OutcomeAmbiguous))
	RecordRouteCheck(OutcomeAmbiguous)
	RecordRouteCheck(OutcomeAmbiguous)

	assert.Equal(t, before+2, testutil.ToFloat64(routeChecks.WithLabelValues(OutcomeAmbiguous)))
}

func TestInitIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Init()
		Init()
	})
	assert.Len(t, Collectors(), 3)
}
