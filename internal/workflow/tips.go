package workflow

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/Graceus777/Route-Optimizer/internal/domain"
)

// TipSource supplies the tip amount for each stop in optimized order.
// Implementations may answer from a pre-supplied batch or by prompting
// an external actor; the workflow only depends on the contract.
type TipSource interface {
	// Tip returns the tip for a stop. A zero value with a nil error is a
	// valid answer, not a failure.
	Tip(ctx context.Context, stop domain.RouteStop) (float64, error)
}

// StaticTips serves tips from a batch supplied up front. Amounts are
// parallel to the submitted delivery addresses and keyed by address, so
// a stop keeps its own tip regardless of where route optimization
// places it and regardless of which other addresses failed to resolve.
// Stops without a supplied tip default to zero.
type StaticTips struct {
	byAddress map[string]float64
}

func NewStaticTips(addresses []string, amounts []float64) *StaticTips {
	m := make(map[string]float64, len(amounts))
	for i, a := range addresses {
		if i >= len(amounts) {
			break
		}
		m[normalizeAddress(a)] = sanitizeTip(amounts[i])
	}
	return &StaticTips{byAddress: m}
}

func (s *StaticTips) Tip(_ context.Context, stop domain.RouteStop) (float64, error) {
	return s.byAddress[normalizeAddress(stop.Address)], nil
}

// normalizeAddress collapses whitespace the same way resolved stop
// addresses are normalized, so lookups match the addresses on the route.
func normalizeAddress(a string) string {
	return strings.Join(strings.Fields(a), " ")
}

// TipPrompt is one outstanding interactive request for a tip amount.
// The presentation layer receives prompts from the Prompts channel and
// answers on Reply.
type TipPrompt struct {
	Address string
	Reply   chan<- float64
}

// PromptTips collects tips interactively, one prompt per stop with a
// bounded wait. A prompt left unanswered past its timeout resolves to a
// zero tip so the workflow always makes progress; there is no explicit
// cancel signal beyond the context.
type PromptTips struct {
	Prompts chan TipPrompt
	timeout time.Duration
}

func NewPromptTips(timeout time.Duration) *PromptTips {
	return &PromptTips{
		Prompts: make(chan TipPrompt),
		timeout: timeout,
	}
}

func (p *PromptTips) Tip(ctx context.Context, stop domain.RouteStop) (float64, error) {
	reply := make(chan float64, 1)

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case p.Prompts <- TipPrompt{Address: stop.Address, Reply: reply}:
	case <-timer.C:
		// Nobody is listening for prompts; continue with the default.
		return 0, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}

	select {
	case v := <-reply:
		return sanitizeTip(v), nil
	case <-timer.C:
		return 0, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// sanitizeTip maps invalid tip values to the zero default.
func sanitizeTip(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
