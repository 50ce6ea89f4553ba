package identity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"loans/internal/loans/models"
	"loans/internal/loans/ports"
	"loans/pkg/platform/sentinel"
)

var _ ports.IdentityVerifier = (*Gateway)(nil)

// Transport is the remote call a Gateway delegates to. Swapping the transport
// keeps the gateway's own behaviour (session handling, logging) under test.
type Transport interface {
	// Open starts a session with the verification service.
	Open(ctx context.Context) error
	// CallService asks the service to verify the identity attributes.
	CallService(ctx context.Context, name string, age int, address string) (models.IdentityVerificationStatus, error)
}

// CallServiceFunc adapts a function to a Transport whose Open is a no-op.
type CallServiceFunc func(ctx context.Context, name string, age int, address string) (models.IdentityVerificationStatus, error)

func (f CallServiceFunc) Open(context.Context) error { return nil }

func (f CallServiceFunc) CallService(ctx context.Context, name string, age int, address string) (models.IdentityVerificationStatus, error) {
	return f(ctx, name, age, address)
}

// Gateway is the service gateway variant of the identity verifier.
type Gateway struct {
	transport Transport
	logger    *slog.Logger

	mu     sync.Mutex
	opened bool
}

type GatewayOption func(*Gateway)

func WithLogger(logger *slog.Logger) GatewayOption {
	return func(g *Gateway) {
		g.logger = logger
	}
}

func NewGateway(transport Transport, opts ...GatewayOption) (*Gateway, error) {
	if transport == nil {
		return nil, fmt.Errorf("identity transport is required")
	}
	g := &Gateway{transport: transport}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Initialize opens a session on the transport.
func (g *Gateway) Initialize(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.transport.Open(ctx); err != nil {
		g.opened = false
		return fmt.Errorf("open identity session: %w", err)
	}
	g.opened = true
	return nil
}

// Validate delegates to Transport.CallService. It fails with
// sentinel.ErrInvalidState when no session was opened.
func (g *Gateway) Validate(ctx context.Context, name string, age int, address string) (bool, error) {
	g.mu.Lock()
	opened := g.opened
	g.mu.Unlock()

	if !opened {
		return false, fmt.Errorf("identity gateway not initialized: %w", sentinel.ErrInvalidState)
	}

	status, err := g.transport.CallService(ctx, name, age, address)
	if err != nil {
		return false, fmt.Errorf("verify identity: %w", err)
	}
	if g.logger != nil {
		g.logger.DebugContext(ctx, "identity verified", "passed", status.Passed)
	}
	return status.Passed, nil
}
