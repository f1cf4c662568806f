package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Graceus777/Route-Optimizer/internal/domain"
	"github.com/Graceus777/Route-Optimizer/internal/extract"
	"github.com/Graceus777/Route-Optimizer/internal/geocode"
	"github.com/Graceus777/Route-Optimizer/internal/platform/obs"
	"github.com/Graceus777/Route-Optimizer/internal/profit"
	"github.com/Graceus777/Route-Optimizer/internal/route"
)

// State identifies a step of the delivery workflow.
type State int

const (
	StateCollectingAddresses State = iota
	StateResolvingAddresses
	StateOptimizingRoute
	StateCollectingTips
	StateEvaluating
	StateComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCollectingAddresses:
		return "collecting_addresses"
	case StateResolvingAddresses:
		return "resolving_addresses"
	case StateOptimizingRoute:
		return "optimizing_route"
	case StateCollectingTips:
		return "collecting_tips"
	case StateEvaluating:
		return "evaluating"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Fatal request errors. Per-address resolution failures are reported in
// RunResult.Failures instead and never abort the run on their own.
var (
	ErrNoCandidates      = errors.New("no candidate addresses")
	ErrCentralUnresolved = errors.New("central location could not be resolved")
	ErrNoUsableStops     = errors.New("no delivery address could be resolved")
)

// Request is one batch of deliveries to plan and evaluate.
// RawText feeds the address extractor; Addresses are taken as-is. At
// least one of the two must yield a candidate. Central, when set,
// overrides the configured central location for this run only.
type Request struct {
	Central   string
	RawText   string
	Addresses []string
	Tips      TipSource
}

// RunResult is everything a single workflow run produced, including the
// terminal state. None of it outlives the request.
type RunResult struct {
	State      State
	Err        error
	Candidates []string
	Failures   []geocode.Failure
	Route      *domain.Route
	Tips       []float64
	Report     *domain.ProfitabilityReport
}

// Workflow sequences extraction, resolution, route optimization, tip
// collection, and profitability evaluation for delivery requests. The
// struct holds only shared dependencies and is safe for concurrent use;
// all per-request state lives in the RunResult.
type Workflow struct {
	extractor      *extract.Extractor
	resolver       *geocode.Resolver
	optimizer      *route.Optimizer
	costModel      domain.VehicleCostModel
	centralAddress string
}

func New(
	extractor *extract.Extractor,
	resolver *geocode.Resolver,
	optimizer *route.Optimizer,
	costModel domain.VehicleCostModel,
	centralAddress string,
) *Workflow {
	return &Workflow{
		extractor:      extractor,
		resolver:       resolver,
		optimizer:      optimizer,
		costModel:      costModel,
		centralAddress: centralAddress,
	}
}

// Run drives one request through the workflow states. The returned
// result is terminal: StateComplete with a report, or StateFailed with
// the fatal error set.
func (w *Workflow) Run(ctx context.Context, req Request) *RunResult {
	res := &RunResult{State: StateCollectingAddresses}
	reqID := obs.RequestID(ctx)

	// CollectingAddresses: gather candidates from direct input and, when
	// raw text was supplied, from extraction. First appearance wins.
	candidates := make([]string, 0, len(req.Addresses))
	seen := make(map[string]struct{})
	appendCandidate := func(a string) {
		a = strings.TrimSpace(a)
		if a == "" {
			return
		}
		if _, ok := seen[a]; ok {
			return
		}
		seen[a] = struct{}{}
		candidates = append(candidates, a)
	}
	for _, a := range req.Addresses {
		appendCandidate(a)
	}
	if strings.TrimSpace(req.RawText) != "" && w.extractor != nil {
		for _, a := range w.extractor.Extract(req.RawText) {
			appendCandidate(a)
		}
	}
	res.Candidates = candidates

	if len(candidates) == 0 {
		return w.fail(res, ErrNoCandidates)
	}

	// ResolvingAddresses: the central location must resolve before any
	// route can be computed; delivery addresses may partially fail.
	w.advance(res, StateResolvingAddresses, reqID)

	centralAddress := w.centralAddress
	if strings.TrimSpace(req.Central) != "" {
		centralAddress = strings.TrimSpace(req.Central)
	}

	central, err := w.resolver.Resolve(ctx, centralAddress)
	if err != nil {
		return w.fail(res, fmt.Errorf("%w: %w", ErrCentralUnresolved, err))
	}

	resolved, failures, err := w.resolver.ResolveAll(ctx, candidates)
	if err != nil {
		return w.fail(res, fmt.Errorf("resolve addresses: %w", err))
	}
	res.Failures = failures

	if len(resolved) == 0 {
		return w.fail(res, ErrNoUsableStops)
	}

	// OptimizingRoute: provider-optimized order, or the local fallback.
	w.advance(res, StateOptimizingRoute, reqID)

	r, err := w.optimizer.Optimize(ctx, central, resolved)
	if err != nil {
		return w.fail(res, fmt.Errorf("optimize route: %w", err))
	}
	res.Route = r

	// CollectingTips: one tip per stop in optimized order, defaulting to
	// zero when no source is configured or a prompt times out.
	w.advance(res, StateCollectingTips, reqID)

	tips := make([]float64, len(r.Stops))
	for i := range r.Stops {
		if req.Tips == nil {
			continue
		}
		tip, err := req.Tips.Tip(ctx, r.Stops[i])
		if err != nil {
			return w.fail(res, fmt.Errorf("collect tip for %q: %w", r.Stops[i].Address, err))
		}
		tips[i] = tip
		r.Stops[i].Tip = tip
	}
	res.Tips = tips

	// Evaluating: pure cost-model arithmetic over the final route.
	w.advance(res, StateEvaluating, reqID)

	report := profit.Evaluate(r, tips, w.costModel)
	res.Report = &report

	w.advance(res, StateComplete, reqID)
	return res
}

func (w *Workflow) advance(res *RunResult, next State, reqID string) {
	log.Debug().
		Str("req_id", reqID).
		Str("from", res.State.String()).
		Str("to", next.String()).
		Msg("workflow transition")
	res.State = next
}

func (w *Workflow) fail(res *RunResult, err error) *RunResult {
	log.Warn().
		Str("from", res.State.String()).
		Err(err).
		Msg("workflow failed")
	res.State = StateFailed
	res.Err = err
	return res
}
