package storefront

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/storebot/backend/internal/domain/commerce"
	"github.com/storebot/backend/internal/domain/storefront"
)

// Fixed order payload values. The storefront collects no address, so the
// backend gets the same placeholders the store operators expect.
const (
	orderPaymentMethod      = "cod"
	orderPaymentMethodTitle = "Payment upon receipt"
	orderAddress1           = "N/A"
	orderCity               = "Telegram"
	orderState              = "TG"
	orderPostcode           = "00000"
	orderCountry            = "LV"
)

// OrderSubmitter turns a completed checkout conversation into a backend
// order. On success it clears the user's cart and conversation together; on
// failure it leaves both intact so the user does not re-enter their data.
type OrderSubmitter struct {
	platform  commerce.Platform
	messenger Messenger
	carts     *CartService
	engine    *CheckoutEngine
	adminChat int64
	log       *zap.Logger
}

// NewOrderSubmitter creates an order submitter. adminChat is the chat that
// receives a summary of every placed order.
func NewOrderSubmitter(platform commerce.Platform, messenger Messenger, carts *CartService, engine *CheckoutEngine, adminChat int64, log *zap.Logger) *OrderSubmitter {
	return &OrderSubmitter{
		platform:  platform,
		messenger: messenger,
		carts:     carts,
		engine:    engine,
		adminChat: adminChat,
		log:       log,
	}
}

// Submit sends the order draft to the commerce backend. There is no
// automatic retry: a failure is surfaced to the user and the conversation is
// reopened at the email step for a manual retry.
func (s *OrderSubmitter) Submit(ctx context.Context, draft *storefront.OrderDraft) error {
	log := s.log.With(
		zap.Int64("user_id", draft.UserID),
		zap.String("conversation_id", draft.ConversationID.String()),
	)

	confirmation, err := s.platform.CreateOrder(ctx, BuildOrderRequest(draft))
	if err != nil {
		log.Error("order submission failed", zap.Error(err))
		s.engine.Reopen(draft.UserID)
		if sendErr := s.messenger.SendText(ctx, draft.UserID, msgOrderFailed, nil); sendErr != nil {
			log.Warn("failed to notify user of order failure", zap.Error(sendErr))
		}
		return err
	}

	// Cart and conversation must be cleared together; clearing only one
	// would leave the session inconsistent.
	s.carts.Clear(draft.UserID)
	s.engine.Finish(draft.UserID)

	log.Info("order placed", zap.Int64("order_id", confirmation.ID))

	if err := s.messenger.SendText(ctx, draft.UserID, msgOrderPlaced, nil); err != nil {
		log.Warn("failed to notify user of placed order", zap.Error(err))
	}
	if err := s.messenger.SendText(ctx, s.adminChat, adminSummary(draft), nil); err != nil {
		log.Warn("failed to notify admin of placed order", zap.Error(err))
	}
	return nil
}

// BuildOrderRequest assembles the backend payload from a draft. Line items
// carry product id and quantity only; the backend prices the order.
func BuildOrderRequest(draft *storefront.OrderDraft) *commerce.OrderRequest {
	first, last := draft.SplitName()

	address := commerce.Address{
		FirstName: first,
		LastName:  last,
		Address1:  orderAddress1,
		City:      orderCity,
		State:     orderState,
		Postcode:  orderPostcode,
		Country:   orderCountry,
	}

	billing := address
	billing.Email = draft.Email
	billing.Phone = draft.Phone

	items := make([]commerce.LineItem, 0, len(draft.Cart))
	for _, item := range draft.Cart {
		items = append(items, commerce.LineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return &commerce.OrderRequest{
		PaymentMethod:      orderPaymentMethod,
		PaymentMethodTitle: orderPaymentMethodTitle,
		SetPaid:            false,
		Billing:            billing,
		Shipping:           address,
		LineItems:          items,
	}
}

// adminSummary renders the order notification pushed to the admin chat.
func adminSummary(draft *storefront.OrderDraft) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🛍 New order:\n👤 %s\n📞 %s\n📧 %s\n\n", draft.Name, draft.Phone, draft.Email)
	for _, item := range draft.Cart {
		fmt.Fprintf(&b, "• %s x%d\n", item.Name, item.Quantity)
	}
	return strings.TrimRight(b.String(), "\n")
}
