package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveUpstream(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRequests.WithLabelValues("brapi", "200"))
	ObserveUpstream("brapi", 200)
	assert.Equal(t, before+1, testutil.ToFloat64(UpstreamRequests.WithLabelValues("brapi", "200")))

	beforeErr := testutil.ToFloat64(UpstreamRequests.WithLabelValues("brapi", "error"))
	ObserveUpstream("brapi", 0)
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(UpstreamRequests.WithLabelValues("brapi", "error")))
}

func TestObserveStage(t *testing.T) {
	ok := testutil.ToFloat64(PipelineRuns.WithLabelValues("process", "success"))
	fail := testutil.ToFloat64(PipelineRuns.WithLabelValues("process", "failure"))

	ObserveStage("process", nil)
	ObserveStage("process", errors.New("boom"))

	assert.Equal(t, ok+1, testutil.ToFloat64(PipelineRuns.WithLabelValues("process", "success")))
	assert.Equal(t, fail+1, testutil.ToFloat64(PipelineRuns.WithLabelValues("process", "failure")))
}

func TestHandler(t *testing.T) {
	FundsLoaded.Set(12)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fiidash_funds_loaded 12")
}
