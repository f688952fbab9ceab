package storefront

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storebot/backend/internal/domain/commerce"
	"github.com/storebot/backend/internal/domain/storefront"
)

const testAdminChat int64 = 1000

// completeCheckout walks user 42 through a full checkout and returns the
// resulting draft.
func completeCheckout(t *testing.T, engine *CheckoutEngine, carts *CartService) *storefront.OrderDraft {
	fillCart(t, carts, 42)
	_, err := engine.Start(42)
	require.NoError(t, err)
	for _, reply := range []string{"Jane Doe", "555"} {
		_, err = engine.Reply(42, reply)
		require.NoError(t, err)
	}
	result, err := engine.Reply(42, "-")
	require.NoError(t, err)
	require.NotNil(t, result.Draft)
	return result.Draft
}

func TestBuildOrderRequest(t *testing.T) {
	draft := &storefront.OrderDraft{
		UserID: 42,
		Name:   "Jane Doe",
		Phone:  "555",
		Email:  "",
		Cart: storefront.Cart{
			{ProductID: 7, Name: "Mug", Quantity: 2},
		},
	}

	req := BuildOrderRequest(draft)

	assert.Equal(t, "cod", req.PaymentMethod)
	assert.Equal(t, "Payment upon receipt", req.PaymentMethodTitle)
	assert.False(t, req.SetPaid)

	assert.Equal(t, "Jane", req.Billing.FirstName)
	assert.Equal(t, "Doe", req.Billing.LastName)
	assert.Equal(t, "", req.Billing.Email)
	assert.Equal(t, "555", req.Billing.Phone)

	// Shipping carries the identity but not the contact details.
	assert.Equal(t, "Jane", req.Shipping.FirstName)
	assert.Empty(t, req.Shipping.Email)
	assert.Empty(t, req.Shipping.Phone)

	// Line items carry product id and quantity only; no prices are resent.
	require.Len(t, req.LineItems, 1)
	assert.Equal(t, commerce.LineItem{ProductID: 7, Quantity: 2}, req.LineItems[0])
}

func TestOrderSubmitter_Submit_Success(t *testing.T) {
	carts := NewCartService(zap.NewNop())
	engine := NewCheckoutEngine(carts, zap.NewNop())
	platform := new(MockPlatform)
	messenger := new(MockMessenger)
	submitter := NewOrderSubmitter(platform, messenger, carts, engine, testAdminChat, zap.NewNop())

	draft := completeCheckout(t, engine, carts)

	platform.On("CreateOrder", mock.Anything, mock.Anything).
		Return(&commerce.OrderConfirmation{ID: 123}, nil)
	messenger.On("SendText", mock.Anything, int64(42), msgOrderPlaced, (*MessageOptions)(nil)).Return(nil)
	messenger.On("SendText", mock.Anything, testAdminChat, mock.Anything, (*MessageOptions)(nil)).Return(nil)

	err := submitter.Submit(context.Background(), draft)
	require.NoError(t, err)

	// Cart and conversation are cleared together.
	assert.True(t, carts.Cart(42).IsEmpty())
	assert.False(t, engine.Active(42))

	platform.AssertExpectations(t)
	messenger.AssertExpectations(t)
}

func TestOrderSubmitter_Submit_AdminSummary(t *testing.T) {
	carts := NewCartService(zap.NewNop())
	engine := NewCheckoutEngine(carts, zap.NewNop())
	platform := new(MockPlatform)
	messenger := new(MockMessenger)
	submitter := NewOrderSubmitter(platform, messenger, carts, engine, testAdminChat, zap.NewNop())

	draft := completeCheckout(t, engine, carts)

	var summary string
	platform.On("CreateOrder", mock.Anything, mock.Anything).
		Return(&commerce.OrderConfirmation{ID: 123}, nil)
	messenger.On("SendText", mock.Anything, int64(42), mock.Anything, mock.Anything).Return(nil)
	messenger.On("SendText", mock.Anything, testAdminChat, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { summary = args.String(2) }).
		Return(nil)

	require.NoError(t, submitter.Submit(context.Background(), draft))

	assert.Contains(t, summary, "New order")
	assert.Contains(t, summary, "Jane Doe")
	assert.Contains(t, summary, "555")
	assert.Contains(t, summary, "Mug x2")
}

func TestOrderSubmitter_Submit_FailureKeepsSession(t *testing.T) {
	carts := NewCartService(zap.NewNop())
	engine := NewCheckoutEngine(carts, zap.NewNop())
	platform := new(MockPlatform)
	messenger := new(MockMessenger)
	submitter := NewOrderSubmitter(platform, messenger, carts, engine, testAdminChat, zap.NewNop())

	draft := completeCheckout(t, engine, carts)

	platform.On("CreateOrder", mock.Anything, mock.Anything).
		Return(nil, commerce.ErrPlatformUnavailable)
	messenger.On("SendText", mock.Anything, int64(42), msgOrderFailed, (*MessageOptions)(nil)).Return(nil)

	err := submitter.Submit(context.Background(), draft)
	assert.ErrorIs(t, err, commerce.ErrPlatformUnavailable)

	// Cart untouched, conversation reopened at the email step.
	require.Len(t, carts.Cart(42), 1)
	assert.True(t, engine.Active(42))

	result, err := engine.Reply(42, "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, result.Draft)
	assert.Equal(t, "Jane Doe", result.Draft.Name)

	// No admin notification for a failed order.
	messenger.AssertNumberOfCalls(t, "SendText", 1)
}
