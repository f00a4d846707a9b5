package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"adserve/internal/adapter/paystack"
	"adserve/internal/core/domain"
	"adserve/internal/core/port"
	"adserve/internal/core/port/mocks"
)

const webhookSecret = "sk_test_secret"

type paymentEnv struct {
	*env
	gateway  *mocks.MockPaymentGateway
	signer   *paystack.Signer
	payments *PaymentUseCase
}

func newPaymentEnv(t *testing.T) *paymentEnv {
	t.Helper()
	e := newEnv(t)
	gw := mocks.NewMockPaymentGateway(t)
	signer := paystack.NewSigner(webhookSecret)
	svc := NewPaymentUseCase(e.store.Payments(), e.store.Campaigns(), gw, signer, testLogger)
	svc.now = fixedNow
	return &paymentEnv{env: e, gateway: gw, signer: signer, payments: svc}
}

// initialize starts a payment for the full budget of a fresh campaign.
func (p *paymentEnv) initialize(t *testing.T, budget int64) (*domain.Campaign, *port.PaymentInit) {
	t.Helper()
	c := p.draft(t, budget)
	p.gateway.EXPECT().
		Initialize(mock.Anything, mock.MatchedBy(func(req port.InitializeRequest) bool {
			return req.Amount == budget && req.Email == p.owner.Email && req.Reference != ""
		})).
		RunAndReturn(func(_ context.Context, req port.InitializeRequest) (*port.Authorization, error) {
			return &port.Authorization{
				AuthorizationURL: "https://checkout.paystack.com/" + req.Reference,
				AccessCode:       "code",
				Reference:        req.Reference,
			}, nil
		}).
		Once()
	started, err := p.payments.Initialize(context.Background(), p.owner, c.ID, budget)
	require.NoError(t, err)
	return c, started
}

func chargeEvent(event, reference string, amount int64) []byte {
	return []byte(fmt.Sprintf(
		`{"event":%q,"data":{"id":4099260516,"reference":%q,"status":"success","amount":%d}}`,
		event, reference, amount))
}

func TestInitializePayment(t *testing.T) {
	p := newPaymentEnv(t)
	c, started := p.initialize(t, 5000)

	assert.Equal(t, int64(5000), started.Amount)
	assert.Contains(t, started.RedirectURL, started.Reference)

	got, err := p.store.Campaigns().Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignPendingPayment, got.Status)

	pay, err := p.store.Payments().GetByReference(context.Background(), started.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, pay.Status)
	assert.Equal(t, domain.PaymentAdvertisement, pay.Type)
}

func TestInitializeRejectsWrongAmount(t *testing.T) {
	p := newPaymentEnv(t)
	c := p.draft(t, 5000)

	for _, amount := range []int64{0, -10, 4999, 5001} {
		_, err := p.payments.Initialize(context.Background(), p.owner, c.ID, amount)
		assert.True(t, domain.IsValidation(err), "amount %d", amount)
	}
	got, _ := p.store.Campaigns().Get(context.Background(), c.ID)
	assert.Equal(t, domain.CampaignDraft, got.Status, "rejected initialize must not submit")
}

func TestInitializeGatewayFailureMarksPaymentFailed(t *testing.T) {
	p := newPaymentEnv(t)
	c := p.draft(t, 100)
	p.gateway.EXPECT().Initialize(mock.Anything, mock.Anything).Return(nil, errors.New("gateway down")).Once()

	_, err := p.payments.Initialize(context.Background(), p.owner, c.ID, 100)
	require.Error(t, err)

	list, err := p.payments.List(context.Background(), p.owner, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.PaymentFailed, list[0].Status)
}

func TestWebhookFundsOnce(t *testing.T) {
	p := newPaymentEnv(t)
	c, started := p.initialize(t, 5000)
	body := chargeEvent("charge.success", started.Reference, 5000)
	sig := p.signer.Sign(body)

	require.NoError(t, p.payments.HandleWebhook(context.Background(), body, sig))
	require.NoError(t, p.payments.HandleWebhook(context.Background(), body, sig))

	got, err := p.store.Campaigns().Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignActive, got.Status)

	pay, err := p.store.Payments().GetByReference(context.Background(), started.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccessful, pay.Status)
	require.NotNil(t, pay.VerifiedAt)
	require.NotNil(t, pay.ProviderReference)
	assert.Equal(t, "4099260516", *pay.ProviderReference)

	sum, err := p.store.Payments().SumSuccessful(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), sum)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	p := newPaymentEnv(t)
	c, started := p.initialize(t, 5000)
	body := chargeEvent("charge.success", started.Reference, 5000)

	for _, sig := range []string{"", "deadbeef", paystack.NewSigner("other").Sign(body)} {
		err := p.payments.HandleWebhook(context.Background(), body, sig)
		assert.True(t, domain.IsAuthentication(err))
		assert.ErrorIs(t, err, domain.ErrInvalidSignature)
	}

	got, _ := p.store.Campaigns().Get(context.Background(), c.ID)
	assert.Equal(t, domain.CampaignPendingPayment, got.Status)
}

func TestWebhookAfterWindowExpires(t *testing.T) {
	p := newPaymentEnv(t)
	c, started := p.initialize(t, 5000)
	p.payments.now = func() time.Time { return c.EndDate.Add(time.Minute) }

	body := chargeEvent("charge.success", started.Reference, 5000)
	require.NoError(t, p.payments.HandleWebhook(context.Background(), body, p.signer.Sign(body)))

	got, _ := p.store.Campaigns().Get(context.Background(), c.ID)
	assert.Equal(t, domain.CampaignExpired, got.Status)
	pay, _ := p.store.Payments().GetByReference(context.Background(), started.Reference)
	assert.Equal(t, domain.PaymentSuccessful, pay.Status)
}

func TestWebhookAmountMismatch(t *testing.T) {
	p := newPaymentEnv(t)
	c, started := p.initialize(t, 5000)
	body := chargeEvent("charge.success", started.Reference, 10)

	err := p.payments.HandleWebhook(context.Background(), body, p.signer.Sign(body))
	assert.True(t, domain.IsValidation(err))
	got, _ := p.store.Campaigns().Get(context.Background(), c.ID)
	assert.Equal(t, domain.CampaignPendingPayment, got.Status)
}

func TestWebhookFailedCharge(t *testing.T) {
	p := newPaymentEnv(t)
	c, started := p.initialize(t, 5000)
	body := chargeEvent("charge.failed", started.Reference, 5000)

	require.NoError(t, p.payments.HandleWebhook(context.Background(), body, p.signer.Sign(body)))

	pay, _ := p.store.Payments().GetByReference(context.Background(), started.Reference)
	assert.Equal(t, domain.PaymentFailed, pay.Status)
	got, _ := p.store.Campaigns().Get(context.Background(), c.ID)
	assert.Equal(t, domain.CampaignPendingPayment, got.Status)

	ignored := []byte(`{"event":"transfer.success","data":{"reference":"x"}}`)
	assert.NoError(t, p.payments.HandleWebhook(context.Background(), ignored, p.signer.Sign(ignored)))
}

func TestVerifyConcurrentWithWebhook(t *testing.T) {
	p := newPaymentEnv(t)
	c, started := p.initialize(t, 5000)
	body := chargeEvent("charge.success", started.Reference, 5000)
	sig := p.signer.Sign(body)

	paidAt := testNow
	p.gateway.EXPECT().Verify(mock.Anything, started.Reference).Return(&port.Verification{
		Reference:         started.Reference,
		ProviderReference: "4099260516",
		Status:            port.GatewaySuccess,
		Amount:            5000,
		PaidAt:            &paidAt,
	}, nil).Maybe()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.payments.HandleWebhook(context.Background(), body, sig))
		}()
		go func() {
			defer wg.Done()
			pay, err := p.payments.Verify(context.Background(), p.owner, started.Reference)
			assert.NoError(t, err)
			if pay != nil {
				assert.Equal(t, domain.PaymentSuccessful, pay.Status)
			}
		}()
	}
	wg.Wait()

	sum, err := p.store.Payments().SumSuccessful(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), sum)
	got, _ := p.store.Campaigns().Get(context.Background(), c.ID)
	assert.Equal(t, domain.CampaignActive, got.Status)

	_, err = p.payments.Initialize(context.Background(), p.owner, c.ID, 5000)
	assert.True(t, domain.IsConflict(err), "funded campaign is not awaiting payment")
}

func TestVerifyPendingAndAbandoned(t *testing.T) {
	p := newPaymentEnv(t)
	_, started := p.initialize(t, 5000)

	p.gateway.EXPECT().Verify(mock.Anything, started.Reference).
		Return(&port.Verification{Reference: started.Reference, Status: port.GatewayPending}, nil).Once()
	pay, err := p.payments.Verify(context.Background(), p.owner, started.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, pay.Status)

	p.gateway.EXPECT().Verify(mock.Anything, started.Reference).
		Return(&port.Verification{Reference: started.Reference, Status: port.GatewayAbandoned}, nil).Once()
	pay, err = p.payments.Verify(context.Background(), p.owner, started.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, pay.Status)

	// settled payments are answered from the store
	pay, err = p.payments.Verify(context.Background(), p.owner, started.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, pay.Status)

	_, err = p.payments.Verify(context.Background(), p.admin, "missing")
	assert.True(t, domain.IsNotFound(err))
}
