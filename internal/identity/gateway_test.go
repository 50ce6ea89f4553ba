package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"loans/internal/identity"
	"loans/internal/loans/models"
	"loans/internal/loans/ports/mocks"
	"loans/internal/loans/processor"
	"loans/pkg/platform/sentinel"
	"loans/pkg/testutil"
)

type sessionTransport struct {
	openErr error
	opened  int
	calls   int
}

func (s *sessionTransport) Open(context.Context) error {
	s.opened++
	return s.openErr
}

func (s *sessionTransport) CallService(context.Context, string, int, string) (models.IdentityVerificationStatus, error) {
	s.calls++
	return models.IdentityVerificationStatus{Passed: true}, nil
}

func newGateway(t *testing.T, transport identity.Transport) *identity.Gateway {
	t.Helper()
	g, err := identity.NewGateway(transport)
	require.NoError(t, err)
	return g
}

func TestNewGateway_RequiresTransport(t *testing.T) {
	g, err := identity.NewGateway(nil)
	assert.Error(t, err)
	assert.Nil(t, g)
}

func TestGateway_Session(t *testing.T) {
	ctx := context.Background()

	t.Run("validate without a session is invalid state", func(t *testing.T) {
		transport := &sessionTransport{}
		g := newGateway(t, transport)

		_, err := g.Validate(ctx, "Sarah", 25, "addr")
		assert.ErrorIs(t, err, sentinel.ErrInvalidState)
		assert.Zero(t, transport.calls)
	})

	t.Run("failed open leaves the gateway closed", func(t *testing.T) {
		openErr := errors.New("handshake refused")
		transport := &sessionTransport{openErr: openErr}
		g := newGateway(t, transport)

		err := g.Initialize(ctx)
		assert.ErrorIs(t, err, openErr)

		_, err = g.Validate(ctx, "Sarah", 25, "addr")
		assert.ErrorIs(t, err, sentinel.ErrInvalidState)
	})

	t.Run("initialize then validate delegates once", func(t *testing.T) {
		transport := &sessionTransport{}
		g := newGateway(t, transport)

		require.NoError(t, g.Initialize(ctx))
		ok, err := g.Validate(ctx, "Sarah", 25, "addr")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 1, transport.opened)
		assert.Equal(t, 1, transport.calls)
	})
}

func TestGateway_TransportErrorIsWrapped(t *testing.T) {
	cause := errors.New("registry exploded")
	g := newGateway(t, identity.CallServiceFunc(
		func(context.Context, string, int, string) (models.IdentityVerificationStatus, error) {
			return models.IdentityVerificationStatus{}, cause
		}))
	require.NoError(t, g.Initialize(context.Background()))

	_, err := g.Validate(context.Background(), "Sarah", 25, "addr")
	assert.ErrorIs(t, err, cause)
}

// The gateway keeps its own Initialize/Validate behaviour while only the
// service call is replaced.
func TestGateway_AcceptWithSubstitutedServiceCall(t *testing.T) {
	var got struct {
		name    string
		age     int
		address string
	}
	gateway := newGateway(t, identity.CallServiceFunc(
		func(_ context.Context, name string, age int, address string) (models.IdentityVerificationStatus, error) {
			got.name, got.age, got.address = name, age, address
			return models.IdentityVerificationStatus{Passed: true}, nil
		}))

	ctrl := gomock.NewController(t)
	scorer := mocks.NewMockCreditScorer(ctrl)
	scorer.EXPECT().CalculateScore(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	scorer.EXPECT().ScoreResult(gomock.Any()).Return(models.CreditScoreResult{Score: 300}, nil)

	sut, err := processor.New(gateway, scorer)
	require.NoError(t, err)

	app := testutil.NewApplication(t, 65_000)
	require.NoError(t, sut.Process(context.Background(), app))

	assert.True(t, app.IsAccepted())
	assert.Equal(t, testutil.ApplicantName, got.name)
	assert.Equal(t, testutil.ApplicantAge, got.age)
	assert.Equal(t, testutil.ApplicantAddress, got.address)
}
