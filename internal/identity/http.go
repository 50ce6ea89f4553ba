package identity

import (
	"context"
	"sync"
	"time"

	"loans/internal/loans/models"
	"loans/pkg/platform/upstream"
)

const serviceName = "identity-registry"

var _ Transport = (*HTTPTransport)(nil)

// HTTPTransport talks to a remote identity verification service.
//
//	POST {base}/v1/sessions       -> {"session_id": "..."}
//	POST {base}/v1/verifications  {"name","age","address"} -> {"verified": bool}
type HTTPTransport struct {
	client *upstream.Client

	mu        sync.RWMutex
	sessionID string
}

func NewHTTPTransport(baseURL, apiKey string, timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		client: upstream.NewClient(serviceName, baseURL, apiKey, timeout),
	}
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
}

type verificationRequest struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Address string `json:"address"`
}

type verificationResponse struct {
	Verified *bool `json:"verified"`
}

func (t *HTTPTransport) Open(ctx context.Context) error {
	var resp sessionResponse
	if err := t.client.PostJSON(ctx, "/v1/sessions", nil, nil, &resp); err != nil {
		return err
	}
	if resp.SessionID == "" {
		return upstream.NewError(upstream.ErrorBadData, serviceName, "session response missing session_id", nil)
	}

	t.mu.Lock()
	t.sessionID = resp.SessionID
	t.mu.Unlock()
	return nil
}

// CallService sends the attributes exactly as given; the service decides what
// counts as a match.
func (t *HTTPTransport) CallService(ctx context.Context, name string, age int, address string) (models.IdentityVerificationStatus, error) {
	t.mu.RLock()
	session := t.sessionID
	t.mu.RUnlock()

	var resp verificationResponse
	req := verificationRequest{Name: name, Age: age, Address: address}
	headers := map[string]string{"X-Session-ID": session}
	if err := t.client.PostJSON(ctx, "/v1/verifications", req, headers, &resp); err != nil {
		return models.IdentityVerificationStatus{}, err
	}
	if resp.Verified == nil {
		return models.IdentityVerificationStatus{}, upstream.NewError(upstream.ErrorBadData, serviceName, "verification response missing verified", nil)
	}
	return models.IdentityVerificationStatus{Passed: *resp.Verified}, nil
}
