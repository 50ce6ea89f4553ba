package credit

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loans/pkg/platform/upstream"
	"loans/pkg/testutil"
)

func newBureau(t *testing.T, handler http.HandlerFunc) *testutil.Upstream {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/scores", handler)
	return testutil.NewUpstream(t, mux)
}

func TestHTTPEngine_Compute(t *testing.T) {
	srv := newBureau(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer bureau-key", r.Header.Get("Authorization"))
		req := testutil.DecodeJSON[scoreRequest](t, r)
		assert.Equal(t, "Sarah", req.Name)
		assert.Equal(t, "133 Pluralsight Drive", req.Address)
		testutil.WriteJSON(t, w, http.StatusOK, map[string]int{"score": 300})
	})
	engine := NewHTTPEngine(srv.URL, "bureau-key", time.Second)

	score, err := engine.Compute(context.Background(), "Sarah", "133 Pluralsight Drive")
	require.NoError(t, err)
	assert.Equal(t, 300, score)
}

func TestHTTPEngine_Errors(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		category upstream.ErrorCategory
	}{
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			category: upstream.ErrorAuthentication,
		},
		{
			name: "too many requests",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			category: upstream.ErrorRateLimited,
		},
		{
			name: "missing score",
			handler: func(w http.ResponseWriter, r *http.Request) {
				testutil.WriteJSON(t, w, http.StatusOK, map[string]string{})
			},
			category: upstream.ErrorBadData,
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
			category: upstream.ErrorBadData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newBureau(t, tt.handler)
			_, err := NewHTTPEngine(srv.URL, "", time.Second).Compute(context.Background(), "Sarah", "addr")
			require.Error(t, err)
			assert.Equal(t, tt.category, upstream.GetCategory(err))
		})
	}
}

func TestHTTPEngine_RateLimit(t *testing.T) {
	srv := newBureau(t, func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(t, w, http.StatusOK, map[string]int{"score": 500})
	})
	metrics := NewMetrics(prometheus.NewRegistry())
	engine := NewHTTPEngine(srv.URL, "", time.Second, WithRateLimit(0.001, 1), WithEngineMetrics(metrics))

	_, err := engine.Compute(context.Background(), "Sarah", "addr")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = engine.Compute(ctx, "Sarah", "addr")
	require.Error(t, err)
	assert.Equal(t, upstream.ErrorRateLimited, upstream.GetCategory(err))
	assert.Equal(t, 1, srv.Requests(), "throttled call must not reach the bureau")
	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.ThrottledWaiting))
}
