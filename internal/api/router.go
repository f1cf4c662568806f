package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Graceus777/Route-Optimizer/internal/api/handlers"
	"github.com/Graceus777/Route-Optimizer/internal/extract"
	"github.com/Graceus777/Route-Optimizer/internal/platform/metrics"
	"github.com/Graceus777/Route-Optimizer/internal/workflow"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware
// of concrete adapters).
func NewRouter(wf *workflow.Workflow, extractor *extract.Extractor) http.Handler {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{Workflow: wf}
	extractHandler := &handlers.ExtractHandler{Extractor: extractor}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/v1/routes/plan", planHandler.Plan)
	mux.HandleFunc("/v1/addresses/extract", extractHandler.Extract)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return requestIDMiddleware(loggingMiddleware(mux))
}
