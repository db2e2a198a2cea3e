package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fiidash_upstream_requests_total",
			Help: "Requests sent to upstream quote/scrape sources",
		},
		[]string{"source", "status"},
	)

	PipelineRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fiidash_pipeline_runs_total",
			Help: "Pipeline stage executions",
		},
		[]string{"stage", "result"},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fiidash_http_requests_total",
			Help: "Dashboard API requests",
		},
		[]string{"route", "status"},
	)

	FundsLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fiidash_funds_loaded",
			Help: "Funds in the most recently loaded dataset",
		},
	)
)

func init() {
	prometheus.MustRegister(UpstreamRequests, PipelineRuns, HTTPRequests, FundsLoaded)
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveUpstream records one upstream call. status 0 means transport error.
func ObserveUpstream(source string, status int) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	UpstreamRequests.WithLabelValues(source, label).Inc()
}

// ObserveStage records a pipeline stage outcome
func ObserveStage(stage string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	PipelineRuns.WithLabelValues(stage, result).Inc()
}
