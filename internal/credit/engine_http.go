package credit

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"loans/pkg/platform/upstream"
)

const scoringService = "credit-bureau"

var _ Engine = (*HTTPEngine)(nil)

// HTTPEngine asks a remote scoring service for a score.
//
//	POST {base}/v1/scores  {"name","address"} -> {"score": int}
//
// Requests are throttled client-side so a batch run cannot exceed the
// service's quota.
type HTTPEngine struct {
	client  *upstream.Client
	limiter *rate.Limiter
	metrics *Metrics
}

type HTTPEngineOption func(*HTTPEngine)

// WithRateLimit allows rps requests per second with the given burst.
// A non-positive rps disables throttling.
func WithRateLimit(rps float64, burst int) HTTPEngineOption {
	return func(e *HTTPEngine) {
		if rps <= 0 {
			e.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		e.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithEngineMetrics(m *Metrics) HTTPEngineOption {
	return func(e *HTTPEngine) {
		e.metrics = m
	}
}

func NewHTTPEngine(baseURL, apiKey string, timeout time.Duration, opts ...HTTPEngineOption) *HTTPEngine {
	e := &HTTPEngine{
		client:  upstream.NewClient(scoringService, baseURL, apiKey, timeout),
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type scoreRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type scoreResponse struct {
	Score *int `json:"score"`
}

func (e *HTTPEngine) Compute(ctx context.Context, name, address string) (int, error) {
	if e.limiter.Limit() != rate.Inf && e.limiter.Tokens() < 1 {
		e.metrics.IncrementThrottled()
	}
	if err := e.limiter.Wait(ctx); err != nil {
		return 0, upstream.NewError(upstream.ErrorRateLimited, scoringService, "rate limit wait", err)
	}

	var resp scoreResponse
	if err := e.client.PostJSON(ctx, "/v1/scores", scoreRequest{Name: name, Address: address}, nil, &resp); err != nil {
		return 0, err
	}
	if resp.Score == nil {
		return 0, upstream.NewError(upstream.ErrorBadData, scoringService, "score response missing score", nil)
	}
	return *resp.Score, nil
}
