package identity

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loans/pkg/platform/upstream"
	"loans/pkg/testutil"
)

func newRegistry(t *testing.T, verify http.HandlerFunc) *testutil.Upstream {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/sessions", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		testutil.WriteJSON(t, w, http.StatusOK, map[string]string{"session_id": "sess-1"})
	})
	mux.HandleFunc("POST /v1/verifications", verify)
	return testutil.NewUpstream(t, mux)
}

func TestHTTPTransport_Verify(t *testing.T) {
	srv := newRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sess-1", r.Header.Get("X-Session-ID"))
		req := testutil.DecodeJSON[verificationRequest](t, r)
		verified := req.Name == "Sarah" && req.Age == 25 && req.Address == "133 Pluralsight Drive, Draper, Utah"
		testutil.WriteJSON(t, w, http.StatusOK, map[string]bool{"verified": verified})
	})
	transport := NewHTTPTransport(srv.URL+"/", "test-key", time.Second)
	ctx := context.Background()

	require.NoError(t, transport.Open(ctx))

	status, err := transport.CallService(ctx, "Sarah", 25, "133 Pluralsight Drive, Draper, Utah")
	require.NoError(t, err)
	assert.True(t, status.Passed)

	status, err = transport.CallService(ctx, "Sarah", 52, "133 Pluralsight Drive, Draper, Utah")
	require.NoError(t, err)
	assert.False(t, status.Passed)

	assert.Equal(t, 3, srv.Requests())
}

func TestHTTPTransport_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("server error is an outage", func(t *testing.T) {
		srv := newRegistry(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		transport := NewHTTPTransport(srv.URL, "test-key", time.Second)
		require.NoError(t, transport.Open(ctx))

		_, err := transport.CallService(ctx, "Sarah", 25, "addr")
		assert.Equal(t, upstream.ErrorOutage, upstream.GetCategory(err))
	})

	t.Run("missing verified field is bad data", func(t *testing.T) {
		srv := newRegistry(t, func(w http.ResponseWriter, r *http.Request) {
			testutil.WriteJSON(t, w, http.StatusOK, map[string]string{"status": "ok"})
		})
		transport := NewHTTPTransport(srv.URL, "test-key", time.Second)
		require.NoError(t, transport.Open(ctx))

		_, err := transport.CallService(ctx, "Sarah", 25, "addr")
		assert.Equal(t, upstream.ErrorBadData, upstream.GetCategory(err))
	})

	t.Run("slow service times out", func(t *testing.T) {
		srv := newRegistry(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			testutil.WriteJSON(t, w, http.StatusOK, map[string]bool{"verified": true})
		})
		transport := NewHTTPTransport(srv.URL, "test-key", 20*time.Millisecond)
		require.NoError(t, transport.Open(ctx))

		_, err := transport.CallService(ctx, "Sarah", 25, "addr")
		assert.Equal(t, upstream.ErrorTimeout, upstream.GetCategory(err))
		assert.True(t, upstream.IsRetryable(err))
	})

	t.Run("empty session id is bad data", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("POST /v1/sessions", func(w http.ResponseWriter, r *http.Request) {
			testutil.WriteJSON(t, w, http.StatusOK, map[string]string{})
		})
		srv := testutil.NewUpstream(t, mux)

		err := NewHTTPTransport(srv.URL, "", time.Second).Open(ctx)
		assert.Equal(t, upstream.ErrorBadData, upstream.GetCategory(err))
	})

	t.Run("unreachable service is an outage", func(t *testing.T) {
		err := NewHTTPTransport("http://127.0.0.1:1", "", time.Second).Open(ctx)
		assert.Equal(t, upstream.ErrorOutage, upstream.GetCategory(err))
	})
}
