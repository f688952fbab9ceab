package storefront

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/storebot/backend/internal/domain/commerce"
	"github.com/storebot/backend/internal/domain/storefront"
)

// Commands understood by the dispatcher.
const (
	CommandStart    = "start"
	CommandProducts = "products"
	CommandCart     = "cart"
	CommandCheckout = "checkout"
)

// Callback data carried by inline buttons.
const (
	callbackAddPrefix = "add_"
	callbackCheckout  = "checkout"
)

// userQueueCapacity bounds a user's pending events. A full queue drops new
// events rather than stalling other users' processing.
const userQueueCapacity = 64

// Event is one inbound chat event tagged with its sender.
type Event interface {
	// UserID identifies the chat participant the event belongs to.
	UserID() int64
}

// CommandEvent is a slash command such as /products.
type CommandEvent struct {
	ChatID int64
	Name   string
}

func (e CommandEvent) UserID() int64 { return e.ChatID }

// ButtonEvent is an inline button press.
type ButtonEvent struct {
	ChatID     int64
	CallbackID string
	Data       string
}

func (e ButtonEvent) UserID() int64 { return e.ChatID }

// TextEvent is a free-text message.
type TextEvent struct {
	ChatID int64
	Body   string
}

func (e TextEvent) UserID() int64 { return e.ChatID }

// Dispatcher routes inbound events to the catalog, the cart store and the
// checkout engine. It holds no conversational state itself; it only keys on
// the event shape and the engine's per-user state.
//
// Events for the same user are processed in arrival order through a per-user
// serial queue, so a reply arriving while a backend call is still in flight
// cannot observe stale conversation state. Different users never share a
// queue.
type Dispatcher struct {
	platform  commerce.Platform
	carts     *CartService
	engine    *CheckoutEngine
	submitter *OrderSubmitter
	messenger Messenger
	pageSize  int
	log       *zap.Logger

	mu     sync.Mutex
	queues map[int64]chan Event
}

// NewDispatcher creates a dispatcher. pageSize controls how many products a
// catalog listing fetches.
func NewDispatcher(platform commerce.Platform, carts *CartService, engine *CheckoutEngine, submitter *OrderSubmitter, messenger Messenger, pageSize int, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		platform:  platform,
		carts:     carts,
		engine:    engine,
		submitter: submitter,
		messenger: messenger,
		pageSize:  pageSize,
		log:       log,
		queues:    make(map[int64]chan Event),
	}
}

// Enqueue hands the event to the sender's serial queue, lazily starting the
// queue's worker. The worker lives until ctx is cancelled.
func (d *Dispatcher) Enqueue(ctx context.Context, ev Event) {
	d.mu.Lock()
	q, ok := d.queues[ev.UserID()]
	if !ok {
		q = make(chan Event, userQueueCapacity)
		d.queues[ev.UserID()] = q
		go d.work(ctx, q)
	}
	d.mu.Unlock()

	select {
	case q <- ev:
	default:
		d.log.Warn("user event queue full, dropping event", zap.Int64("user_id", ev.UserID()))
	}
}

func (d *Dispatcher) work(ctx context.Context, q chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-q:
			d.Dispatch(ctx, ev)
		}
	}
}

// Dispatch handles a single event to completion, including any backend
// calls. A failure is confined to the sending user's session.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) {
	switch e := ev.(type) {
	case CommandEvent:
		d.handleCommand(ctx, e)
	case ButtonEvent:
		d.handleButton(ctx, e)
	case TextEvent:
		d.handleText(ctx, e)
	default:
		d.log.Warn("unknown event type", zap.Int64("user_id", ev.UserID()))
	}
}

func (d *Dispatcher) handleCommand(ctx context.Context, e CommandEvent) {
	switch e.Name {
	case CommandStart:
		d.send(ctx, e.ChatID, msgWelcome, nil)
	case CommandProducts:
		d.listProducts(ctx, e.ChatID)
	case CommandCart:
		d.showCart(ctx, e.ChatID)
	case CommandCheckout:
		d.startCheckout(ctx, e.ChatID)
	default:
		d.log.Debug("ignoring unknown command",
			zap.Int64("user_id", e.ChatID),
			zap.String("command", e.Name),
		)
	}
}

func (d *Dispatcher) handleButton(ctx context.Context, e ButtonEvent) {
	switch {
	case strings.HasPrefix(e.Data, callbackAddPrefix):
		d.addToCart(ctx, e)
	case e.Data == callbackCheckout:
		if err := d.messenger.AckCallback(ctx, e.CallbackID, ""); err != nil {
			d.log.Warn("failed to ack callback", zap.Error(err))
		}
		d.startCheckout(ctx, e.ChatID)
	default:
		d.log.Debug("ignoring unknown callback",
			zap.Int64("user_id", e.ChatID),
			zap.String("data", e.Data),
		)
	}
}

// handleText hands free-text to the checkout engine. Text from users without
// an active conversation, command-shaped text and replies racing an
// in-flight submission are ignored, not treated as field data.
func (d *Dispatcher) handleText(ctx context.Context, e TextEvent) {
	result, err := d.engine.Reply(e.ChatID, e.Body)
	if err != nil {
		if IsReplyIgnored(err) {
			d.log.Debug("ignoring text message",
				zap.Int64("user_id", e.ChatID),
				zap.Error(err),
			)
			return
		}
		d.log.Error("checkout reply failed", zap.Int64("user_id", e.ChatID), zap.Error(err))
		return
	}

	if result.Draft != nil {
		// Submission errors are logged and surfaced to the user by the
		// submitter; the conversation stays open for a manual retry.
		_ = d.submitter.Submit(ctx, result.Draft)
		return
	}
	d.send(ctx, e.ChatID, result.Prompt, promptOptions())
}

func (d *Dispatcher) listProducts(ctx context.Context, chatID int64) {
	products, err := d.platform.ListProducts(ctx, d.pageSize)
	if err != nil {
		d.log.Error("failed to list products", zap.Int64("user_id", chatID), zap.Error(err))
		d.send(ctx, chatID, msgCatalogError, nil)
		return
	}

	for _, p := range products {
		caption := fmt.Sprintf("*%s*\n%s₽\n\n%s", p.Name, p.Price.StringFixed(2), p.ShortDescription)
		opts := &MessageOptions{
			Markdown: true,
			Buttons: [][]Button{{{
				Label: fmt.Sprintf("🛒 Add to cart (%s₽)", p.Price.StringFixed(2)),
				Data:  callbackAddPrefix + strconv.FormatInt(p.ID, 10),
			}}},
		}

		if p.ImageURL == "" {
			d.send(ctx, chatID, caption, opts)
			continue
		}
		if err := d.messenger.SendPhoto(ctx, chatID, p.ImageURL, caption, opts); err != nil {
			d.log.Warn("failed to send product photo",
				zap.Int64("user_id", chatID),
				zap.Int64("product_id", p.ID),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) showCart(ctx context.Context, chatID int64) {
	cart := d.carts.Cart(chatID)
	if cart.IsEmpty() {
		d.send(ctx, chatID, msgCartEmpty, nil)
		return
	}

	var b strings.Builder
	b.WriteString("🛒 Your cart:\n\n")
	for _, item := range cart {
		fmt.Fprintf(&b, "• %s x%d — %s₽\n", item.Name, item.Quantity, item.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "\n💰 Total: %s₽", cart.Total().StringFixed(2))

	d.send(ctx, chatID, b.String(), &MessageOptions{
		Buttons: [][]Button{{{Label: "✅ Place an order", Data: callbackCheckout}}},
	})
}

func (d *Dispatcher) addToCart(ctx context.Context, e ButtonEvent) {
	productID, err := strconv.ParseInt(strings.TrimPrefix(e.Data, callbackAddPrefix), 10, 64)
	if err != nil {
		d.log.Warn("malformed add-to-cart callback",
			zap.Int64("user_id", e.ChatID),
			zap.String("data", e.Data),
		)
		d.ack(ctx, e.CallbackID, toastError)
		return
	}

	product, err := d.platform.GetProduct(ctx, productID)
	if err != nil {
		d.log.Error("failed to fetch product",
			zap.Int64("user_id", e.ChatID),
			zap.Int64("product_id", productID),
			zap.Error(err),
		)
		d.ack(ctx, e.CallbackID, toastError)
		return
	}

	if _, err := d.carts.AddItem(e.ChatID, *product, 1); err != nil {
		if errors.Is(err, storefront.ErrInvalidProduct) {
			d.log.Warn("refusing to add product without a valid price",
				zap.Int64("user_id", e.ChatID),
				zap.Int64("product_id", productID),
			)
		} else {
			d.log.Error("failed to add product to cart", zap.Int64("user_id", e.ChatID), zap.Error(err))
		}
		d.ack(ctx, e.CallbackID, toastError)
		return
	}
	d.ack(ctx, e.CallbackID, toastAddedToCart)
}

// startCheckout begins (or restarts) the checkout conversation. An empty
// cart is expected control flow, not an error.
func (d *Dispatcher) startCheckout(ctx context.Context, chatID int64) {
	prompt, err := d.engine.Start(chatID)
	if err != nil {
		switch {
		case errors.Is(err, storefront.ErrEmptyCart):
			d.send(ctx, chatID, msgCheckoutCartEmpty, nil)
		case errors.Is(err, storefront.ErrSubmissionInFlight):
			d.log.Debug("checkout restart rejected, submission in flight", zap.Int64("user_id", chatID))
		default:
			d.log.Error("failed to start checkout", zap.Int64("user_id", chatID), zap.Error(err))
		}
		return
	}
	d.send(ctx, chatID, prompt, promptOptions())
}

func (d *Dispatcher) send(ctx context.Context, chatID int64, text string, opts *MessageOptions) {
	if err := d.messenger.SendText(ctx, chatID, text, opts); err != nil {
		d.log.Warn("failed to send message", zap.Int64("user_id", chatID), zap.Error(err))
	}
}

func (d *Dispatcher) ack(ctx context.Context, callbackID, text string) {
	if err := d.messenger.AckCallback(ctx, callbackID, text); err != nil {
		d.log.Warn("failed to ack callback", zap.Error(err))
	}
}
