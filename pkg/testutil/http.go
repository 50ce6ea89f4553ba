// Package testutil provides common test utilities for adapter and processor tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Upstream is a fake remote service for adapter tests. It counts requests so
// tests can assert how often the adapter called out.
type Upstream struct {
	*httptest.Server
	requests atomic.Int64
}

// NewUpstream starts a fake service routed through mux and closes it when the
// test ends.
func NewUpstream(t *testing.T, mux *http.ServeMux) *Upstream {
	t.Helper()
	u := &Upstream{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.requests.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(u.Close)
	return u
}

// Requests returns the number of requests served so far.
func (u *Upstream) Requests() int {
	return int(u.requests.Load())
}

// WriteJSON writes body as a JSON response with the given status. It runs on
// the server goroutine, so failures are reported without stopping the test.
func WriteJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(body), "failed to encode response")
}

// DecodeJSON decodes a request body into T, marking the test failed on error.
func DecodeJSON[T any](t *testing.T, r *http.Request) T {
	t.Helper()
	var v T
	assert.NoError(t, json.NewDecoder(r.Body).Decode(&v), "failed to decode request body")
	return v
}
